package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cantoapp/canto/internal/api"
)

func TestPollTask_ReturnsOnCompletion(t *testing.T) {
	states := []string{api.TaskPending, api.TaskProcessing, api.TaskCompleted}
	calls := 0
	fetch := func(ctx context.Context, id string) (*api.Task, error) {
		task := &api.Task{ID: id, Status: states[calls]}
		if calls < len(states)-1 {
			calls++
		}
		return task, nil
	}

	task, err := PollTask(context.Background(), fetch, "t-1", time.Millisecond)
	if err != nil {
		t.Fatalf("PollTask: %v", err)
	}
	if task.Status != api.TaskCompleted {
		t.Fatalf("status = %q", task.Status)
	}
	if calls < 2 {
		t.Fatalf("fetch calls = %d, want polling through non-terminal states", calls)
	}
}

func TestPollTask_FailedTaskReturnsMessage(t *testing.T) {
	fetch := func(ctx context.Context, id string) (*api.Task, error) {
		return &api.Task{ID: id, Status: api.TaskFailed, Message: "模型超时"}, nil
	}

	task, err := PollTask(context.Background(), fetch, "t-2", time.Millisecond)
	if err == nil || err.Error() != "模型超时" {
		t.Fatalf("err = %v, want task message", err)
	}
	if task == nil || !task.Failed() {
		t.Fatalf("task = %#v", task)
	}
}

func TestPollTask_RetriesTransientErrors(t *testing.T) {
	calls := 0
	fetch := func(ctx context.Context, id string) (*api.Task, error) {
		calls++
		if calls < 3 {
			return nil, errors.New("connection refused")
		}
		return &api.Task{ID: id, Status: api.TaskCompleted}, nil
	}

	task, err := PollTask(context.Background(), fetch, "t-3", time.Millisecond)
	if err != nil {
		t.Fatalf("PollTask: %v", err)
	}
	if task == nil || !task.Done() {
		t.Fatalf("task = %#v", task)
	}
}

func TestPollTask_ContextCancelReturnsLastError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	fetch := func(ctx context.Context, id string) (*api.Task, error) {
		cancel()
		return nil, errors.New("backend down")
	}

	if _, err := PollTask(ctx, fetch, "t-4", time.Millisecond); err == nil || err.Error() != "backend down" {
		t.Fatalf("err = %v, want last fetch error", err)
	}
}
