package api

import (
	"encoding/json"
	"testing"
)

func TestHistoryPage_DecodesBothShapes(t *testing.T) {
	var wrapped HistoryPage
	if err := json.Unmarshal([]byte(`{"total":2,"items":[{"id":1},{"id":2}]}`), &wrapped); err != nil {
		t.Fatalf("wrapped decode returned error: %v", err)
	}
	if wrapped.Total != 2 || len(wrapped.Items) != 2 {
		t.Fatalf("wrapped page = %#v", wrapped)
	}

	var bare HistoryPage
	if err := json.Unmarshal([]byte(`[{"id":3}]`), &bare); err != nil {
		t.Fatalf("bare decode returned error: %v", err)
	}
	if bare.Total != 1 || len(bare.Items) != 1 {
		t.Fatalf("bare page = %#v", bare)
	}

	var scalar HistoryPage
	if err := json.Unmarshal([]byte(`42`), &scalar); err == nil {
		t.Fatal("scalar payload decoded without error")
	}
}

func TestProfile_MergeIsShallowUnionNewValuesWin(t *testing.T) {
	cached := Profile{"id": float64(7), "email": "old@example.com", "bio": "keep me"}
	fetched := Profile{"email": "new@example.com", "username": "ada"}

	merged := cached.Merge(fetched)
	if merged.Email() != "new@example.com" {
		t.Fatalf("email = %q, want fetched value", merged.Email())
	}
	if merged["bio"] != "keep me" {
		t.Fatalf("bio = %v, want cached value preserved", merged["bio"])
	}
	if merged.ID() != "7" {
		t.Fatalf("id = %q, want 7", merged.ID())
	}
	if cached.Username() != "" {
		t.Fatal("Merge mutated its receiver")
	}
}

func TestProfile_DisplayNamePreference(t *testing.T) {
	p := Profile{"email": "a@b.c", "username": "ada", "name": "Ada"}
	if p.DisplayName() != "Ada" {
		t.Fatalf("DisplayName = %q", p.DisplayName())
	}
	delete(p, "name")
	if p.DisplayName() != "ada" {
		t.Fatalf("DisplayName = %q", p.DisplayName())
	}
}

func TestTask_Identity(t *testing.T) {
	submitted := Task{TaskID: "t-1", Status: TaskPending}
	if submitted.Identifier() != "t-1" || submitted.Done() {
		t.Fatalf("submitted task = %#v", submitted)
	}
	detail := Task{ID: "t-1", Status: TaskCompleted}
	if detail.Identifier() != "t-1" || !detail.Done() || detail.Failed() {
		t.Fatalf("detail task = %#v", detail)
	}
	failed := Task{ID: "t-2", Status: TaskFailed}
	if !failed.Done() || !failed.Failed() {
		t.Fatalf("failed task = %#v", failed)
	}
}
