package nav

import "testing"

func TestLookup_MatchesParameterRoutes(t *testing.T) {
	tests := []struct {
		path string
		name string
		ok   bool
	}{
		{"/", "home", true},
		{"/works", "works", true},
		{"/song/42", "song", true},
		{"/user/7", "user", true},
		{"/song/", "", false},
		{"/song/42/extra", "", false},
		{"/nope", "", false},
	}
	for _, tt := range tests {
		route, ok := Lookup(tt.path)
		if ok != tt.ok {
			t.Fatalf("Lookup(%q) ok = %v, want %v", tt.path, ok, tt.ok)
		}
		if ok && route.Name != tt.name {
			t.Fatalf("Lookup(%q) = %q, want %q", tt.path, route.Name, tt.name)
		}
	}
}

func TestGuard_OnlyWorksRequiresAuth(t *testing.T) {
	for _, r := range Routes() {
		if r.RequiresAuth != (r.Path == "/works") {
			t.Fatalf("route %q RequiresAuth = %v", r.Path, r.RequiresAuth)
		}
	}
}

func TestGuard_LoggedInPassesEverywhere(t *testing.T) {
	for _, r := range Routes() {
		if got := Guard("/", r.Path, true); got.Decision != Allow {
			t.Fatalf("Guard(/, %q, logged in) = %#v", r.Path, got)
		}
	}
}

func TestGuard_LoggedOutProtectedFromRoot(t *testing.T) {
	got := Guard("/", "/works", false)
	if got.Decision != Redirect || got.Target != "/" {
		t.Fatalf("result = %#v, want redirect home", got)
	}
	if got.Message != LoginRequiredMessage || !got.OpenLogin {
		t.Fatalf("result = %#v, want login prompt", got)
	}
}

func TestGuard_LoggedOutProtectedFromElsewhereBlocks(t *testing.T) {
	got := Guard("/search", "/works", false)
	if got.Decision != Block || got.Target != "/search" {
		t.Fatalf("result = %#v, want to stay on /search", got)
	}
	if got.Message != LoginRequiredMessage || !got.OpenLogin {
		t.Fatalf("result = %#v, want login prompt", got)
	}
}

func TestGuard_LoggedOutPublicAllowed(t *testing.T) {
	for _, path := range []string{"/", "/generate", "/history", "/song/3"} {
		if got := Guard("/works", path, false); got.Decision != Allow {
			t.Fatalf("Guard(/works, %q, logged out) = %#v", path, got)
		}
	}
}
