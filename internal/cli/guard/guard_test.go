package guard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/campus-dev/campus/internal/cli/api"
	"github.com/campus-dev/campus/internal/cli/session"
)

// recordingNavigator captures navigation decisions instead of moving anywhere
type recordingNavigator struct {
	routes []Route
}

func (n *recordingNavigator) Navigate(route Route) {
	n.routes = append(n.routes, route)
}

// newTestGuard wires a guard against a live httptest server
func newTestGuard(store session.Store, nav Navigator, serverURL string) *Guard {
	client := api.New(serverURL, store)
	g := New(store, client, nav, zerolog.Nop())
	g.SetTimeout(2 * time.Second)
	return g
}

func meHandler(t *testing.T, requests *int32, status int, body interface{}) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/me" {
			t.Errorf("unexpected path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		atomic.AddInt32(requests, 1)
		w.WriteHeader(status)
		if body != nil {
			json.NewEncoder(w).Encode(body)
		}
	})
}

func TestEvaluate_NoToken_RedirectsWithoutNetworkCall(t *testing.T) {
	var requests int32
	server := httptest.NewServer(meHandler(t, &requests, http.StatusOK, nil))
	defer server.Close()

	store := session.NewMemory()
	nav := &recordingNavigator{}
	g := newTestGuard(store, nav, server.URL)

	res, err := g.Evaluate(context.Background())
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	if got := atomic.LoadInt32(&requests); got != 0 {
		t.Errorf("expected zero network calls, got %d", got)
	}
	if res.State != StateRejected {
		t.Errorf("expected StateRejected, got %v", res.State)
	}
	if res.Class != ClassNoCredential {
		t.Errorf("expected ClassNoCredential, got %v", res.Class)
	}
	if res.Loading() {
		t.Error("expected loading to be finished")
	}
	if len(nav.routes) != 1 || nav.routes[0] != RouteLogin {
		t.Errorf("expected one navigation to %q, got %v", RouteLogin, nav.routes)
	}
}

func TestEvaluate_ValidToken_ResolvesUser(t *testing.T) {
	var requests int32
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		atomic.AddInt32(&requests, 1)
		json.NewEncoder(w).Encode(api.User{ID: "user-1", Email: "ana@example.com", Name: "Ana", Role: "student"})
	}))
	defer server.Close()

	store := session.NewMemoryWithToken("abc123")
	nav := &recordingNavigator{}
	g := newTestGuard(store, nav, server.URL)

	res, err := g.Evaluate(context.Background())
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	if gotAuth != "Bearer abc123" {
		t.Errorf("expected bearer credential, got %q", gotAuth)
	}
	if got := atomic.LoadInt32(&requests); got != 1 {
		t.Errorf("expected exactly one validation call, got %d", got)
	}
	if res.State != StateResolved {
		t.Fatalf("expected StateResolved, got %v", res.State)
	}
	if res.User == nil || res.User.Email != "ana@example.com" || res.User.Role != "student" {
		t.Errorf("unexpected user record: %+v", res.User)
	}
	if res.Degraded {
		t.Error("expected a clean resolution, got degraded")
	}

	// Token retained, no navigation
	if token, present := store.Get(); !present || token != "abc123" {
		t.Errorf("expected token to be retained, got %q (present=%v)", token, present)
	}
	if len(nav.routes) != 0 {
		t.Errorf("expected no navigation, got %v", nav.routes)
	}
}

func TestEvaluate_RejectedToken_ClearsStoreAndRedirects(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		var requests int32
		server := httptest.NewServer(meHandler(t, &requests, status, map[string]string{"error": "Invalid or expired token"}))

		store := session.NewMemoryWithToken("stale-token")
		nav := &recordingNavigator{}
		g := newTestGuard(store, nav, server.URL)

		res, err := g.Evaluate(context.Background())
		if err != nil {
			t.Fatalf("status %d: Evaluate failed: %v", status, err)
		}

		if res.State != StateRejected {
			t.Errorf("status %d: expected StateRejected, got %v", status, res.State)
		}
		if res.Class != ClassInvalidCredential {
			t.Errorf("status %d: expected ClassInvalidCredential, got %v", status, res.Class)
		}
		if _, present := store.Get(); present {
			t.Errorf("status %d: expected token to be cleared", status)
		}
		if len(nav.routes) != 1 || nav.routes[0] != RouteLogin {
			t.Errorf("status %d: expected one navigation to login, got %v", status, nav.routes)
		}

		server.Close()
	}
}

func TestEvaluate_MissingEndpoint_OptimisticAccept(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		http.NotFound(w, r)
	}))
	defer server.Close()

	store := session.NewMemoryWithToken("abc123")
	nav := &recordingNavigator{}
	g := newTestGuard(store, nav, server.URL)

	res, err := g.Evaluate(context.Background())
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	if res.State != StateResolved {
		t.Errorf("expected StateResolved (optimistic accept), got %v", res.State)
	}
	if res.Class != ClassEndpointUnavailable {
		t.Errorf("expected ClassEndpointUnavailable, got %v", res.Class)
	}
	if !res.Degraded {
		t.Error("expected degraded resolution")
	}
	if token, present := store.Get(); !present || token != "abc123" {
		t.Error("expected token to be retained when the endpoint is missing")
	}
	if len(nav.routes) != 0 {
		t.Errorf("expected no navigation, got %v", nav.routes)
	}
}

func TestEvaluate_InfrastructureFailure_RetainsToken(t *testing.T) {
	cases := []struct {
		name  string
		setup func(t *testing.T) (url string, cleanup func())
	}{
		{
			name: "server error",
			setup: func(t *testing.T) (string, func()) {
				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusInternalServerError)
				}))
				return server.URL, server.Close
			},
		},
		{
			name: "connection refused",
			setup: func(t *testing.T) (string, func()) {
				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
				url := server.URL
				server.Close() // nothing listens anymore
				return url, func() {}
			},
		},
		{
			name: "timeout",
			setup: func(t *testing.T) (string, func()) {
				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					time.Sleep(500 * time.Millisecond)
				}))
				return server.URL, server.Close
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			url, cleanup := tc.setup(t)
			defer cleanup()

			store := session.NewMemoryWithToken("abc123")
			nav := &recordingNavigator{}
			g := newTestGuard(store, nav, url)
			g.SetTimeout(200 * time.Millisecond)

			// Several mounts in sequence must never log the user out
			for i := 0; i < 3; i++ {
				res, err := g.Evaluate(context.Background())
				if err != nil {
					t.Fatalf("mount %d: Evaluate failed: %v", i, err)
				}

				if res.State != StateResolved || !res.Degraded {
					t.Errorf("mount %d: expected degraded resolution, got state=%v degraded=%v", i, res.State, res.Degraded)
				}
				if res.Class != ClassInfrastructureFailure {
					t.Errorf("mount %d: expected ClassInfrastructureFailure, got %v", i, res.Class)
				}
				if token, present := store.Get(); !present || token != "abc123" {
					t.Fatalf("mount %d: token was not retained", i)
				}
				if len(nav.routes) != 0 {
					t.Fatalf("mount %d: expected no navigation, got %v", i, nav.routes)
				}
			}
		})
	}
}

func TestEvaluate_CanceledMidFlight_NoSideEffects(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()
	defer close(release)

	store := session.NewMemoryWithToken("abc123")
	nav := &recordingNavigator{}
	g := newTestGuard(store, nav, server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	var res Result
	var evalErr error
	go func() {
		res, evalErr = g.Evaluate(ctx)
		close(done)
	}()

	// The page unmounts while the round trip is in flight
	<-started
	cancel()
	<-done

	if evalErr == nil {
		t.Fatal("expected a context error from a canceled evaluation")
	}
	if res.State != StatePending {
		t.Errorf("expected no terminal state after cancellation, got %v", res.State)
	}
	if token, present := store.Get(); !present || token != "abc123" {
		t.Error("canceled evaluation must not touch the session store")
	}
	if len(nav.routes) != 0 {
		t.Errorf("canceled evaluation must not navigate, got %v", nav.routes)
	}
}

func TestLogoutThenMount(t *testing.T) {
	var requests int32
	server := httptest.NewServer(meHandler(t, &requests, http.StatusOK, api.User{ID: "u", Role: "student"}))
	defer server.Close()

	store := session.NewMemoryWithToken("abc123")
	nav := &recordingNavigator{}
	g := newTestGuard(store, nav, server.URL)

	// Explicit logout clears the store
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, present := store.Get(); present {
		t.Fatal("expected store to be empty after logout")
	}

	// The next mount behaves like a logged-out visit
	res, err := g.Evaluate(context.Background())
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if res.State != StateRejected || res.Class != ClassNoCredential {
		t.Errorf("expected no-credential rejection, got state=%v class=%v", res.State, res.Class)
	}
	if got := atomic.LoadInt32(&requests); got != 0 {
		t.Errorf("expected zero network calls after logout, got %d", got)
	}
	if len(nav.routes) != 1 || nav.routes[0] != RouteLogin {
		t.Errorf("expected one navigation to login, got %v", nav.routes)
	}
}
