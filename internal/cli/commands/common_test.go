package commands

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/campus-dev/campus/internal/cli/guard"
)

// identityServer serves GET /api/me for the given role, counting requests.
func identityServer(t *testing.T, role string, requests *atomic.Int64) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)

		if r.URL.Path != "/api/me" {
			t.Errorf("unexpected path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":    "user-1",
			"name":  "Test User",
			"email": "user@example.com",
			"role":  role,
		})
	}))
}

func TestRequireAccess_NotSignedIn(t *testing.T) {
	var requests atomic.Int64
	server := identityServer(t, "student", &requests)
	defer server.Close()

	t.Setenv("CAMPUS_SERVER", server.URL)
	useMemoryStore(t)

	client, store, err := newPortal()
	if err != nil {
		t.Fatalf("newPortal failed: %v", err)
	}

	_, err = requireAccess(context.Background(), client, store, guard.RouteDashboard)
	if err == nil {
		t.Fatal("expected error for unauthenticated access, got nil")
	}
	if err.Error() != "not signed in" {
		t.Errorf("expected 'not signed in', got %q", err.Error())
	}

	// A mount without a token must not touch the network
	if requests.Load() != 0 {
		t.Errorf("expected zero identity requests, got %d", requests.Load())
	}
}

func TestRequireAccess_StudentOnAdminRoute(t *testing.T) {
	var requests atomic.Int64
	server := identityServer(t, "student", &requests)
	defer server.Close()

	t.Setenv("CAMPUS_SERVER", server.URL)
	store := useMemoryStore(t)
	store.Set("valid-token")

	client, _, err := newPortal()
	if err != nil {
		t.Fatalf("newPortal failed: %v", err)
	}

	_, err = requireAccess(context.Background(), client, store, guard.RouteAdminCourses)
	if err == nil {
		t.Fatal("expected error for student on admin route, got nil")
	}
	if err.Error() != "admin access required" {
		t.Errorf("expected 'admin access required', got %q", err.Error())
	}

	// The session survives the role redirect
	if _, present := store.Get(); !present {
		t.Error("expected token to be retained after role redirect")
	}
}

func TestRequireAccess_AdminOnAdminRoute(t *testing.T) {
	var requests atomic.Int64
	server := identityServer(t, "admin", &requests)
	defer server.Close()

	t.Setenv("CAMPUS_SERVER", server.URL)
	store := useMemoryStore(t)
	store.Set("valid-token")

	client, _, err := newPortal()
	if err != nil {
		t.Fatalf("newPortal failed: %v", err)
	}

	user, err := requireAccess(context.Background(), client, store, guard.RouteAdminCourses)
	if err != nil {
		t.Fatalf("expected admin access to be granted, got: %v", err)
	}
	if user.Role != "admin" {
		t.Errorf("expected resolved admin user, got role %q", user.Role)
	}
	if requests.Load() != 1 {
		t.Errorf("expected exactly one identity request, got %d", requests.Load())
	}
}

func TestRequireAccess_StudentOnPrivateRoute(t *testing.T) {
	var requests atomic.Int64
	server := identityServer(t, "student", &requests)
	defer server.Close()

	t.Setenv("CAMPUS_SERVER", server.URL)
	store := useMemoryStore(t)
	store.Set("valid-token")

	client, _, err := newPortal()
	if err != nil {
		t.Fatalf("newPortal failed: %v", err)
	}

	user, err := requireAccess(context.Background(), client, store, guard.RouteJourney)
	if err != nil {
		t.Fatalf("expected access to be granted, got: %v", err)
	}
	if user.Email != "user@example.com" {
		t.Errorf("expected resolved user, got %q", user.Email)
	}
}

func TestNewPortal_NoServerConfigured(t *testing.T) {
	t.Setenv("CAMPUS_SERVER", "")
	t.Setenv("HOME", t.TempDir())

	_, _, err := newPortal()
	if err == nil {
		t.Fatal("expected error when no server is configured, got nil")
	}
}
