package guard

import (
	"testing"

	"github.com/campus-dev/campus/internal/cli/api"
)

func TestRequirementFor_KnownRoutes(t *testing.T) {
	cases := []struct {
		route Route
		want  Requirement
	}{
		{RouteLogin, Public},
		{RouteRegister, Public},
		{RouteDashboard, RequireUser},
		{RouteJourney, RequireUser},
		{RouteNotices, RequireUser},
		{RouteAdminCourses, RequireAdmin},
		{RouteAdminLessons, RequireAdmin},
	}

	for _, tc := range cases {
		got, known := RequirementFor(tc.route)
		if !known {
			t.Errorf("route %q should be known", tc.route)
		}
		if got != tc.want {
			t.Errorf("route %q: expected requirement %v, got %v", tc.route, tc.want, got)
		}
	}
}

func TestRequirementFor_UnknownRouteFallsBackToLogin(t *testing.T) {
	req, known := RequirementFor(Route("/no-such-page"))
	if known {
		t.Error("unknown route should not be known")
	}
	if req != RequireUser {
		t.Errorf("unknown routes must demand a user (redirect to login), got %v", req)
	}
}

func TestLandingRoute(t *testing.T) {
	if got := LandingRoute("admin"); got != RouteAdminCourses {
		t.Errorf("admin landing: expected %q, got %q", RouteAdminCourses, got)
	}
	if got := LandingRoute("student"); got != RouteDashboard {
		t.Errorf("student landing: expected %q, got %q", RouteDashboard, got)
	}
	if got := LandingRoute(""); got != RouteDashboard {
		t.Errorf("unknown role landing: expected %q, got %q", RouteDashboard, got)
	}
}

func TestGate_WhileLoadingRendersNothing(t *testing.T) {
	nav := &recordingNavigator{}
	gate := NewGate(nav)

	allowed := gate.Check(Result{State: StatePending}, RequireAdmin)
	if allowed {
		t.Error("gate must not allow rendering while loading")
	}
	if len(nav.routes) != 0 {
		t.Errorf("gate must not navigate while loading, got %v", nav.routes)
	}
}

func TestGate_StudentOnAdminRoute(t *testing.T) {
	nav := &recordingNavigator{}
	gate := NewGate(nav)

	res := Result{State: StateResolved, User: &api.User{Role: "student"}}
	allowed := gate.Check(res, RequireAdmin)

	if allowed {
		t.Error("student must not pass an admin gate")
	}
	if len(nav.routes) != 1 || nav.routes[0] != RouteDashboard {
		t.Errorf("expected navigation to %q, got %v", RouteDashboard, nav.routes)
	}
}

func TestGate_AdminOnAdminRoute(t *testing.T) {
	nav := &recordingNavigator{}
	gate := NewGate(nav)

	res := Result{State: StateResolved, User: &api.User{Role: "admin"}}
	allowed := gate.Check(res, RequireAdmin)

	if !allowed {
		t.Error("admin must pass an admin gate")
	}
	if len(nav.routes) != 0 {
		t.Errorf("expected no navigation, got %v", nav.routes)
	}
}

func TestGate_UnauthenticatedOnPrivateRoute(t *testing.T) {
	nav := &recordingNavigator{}
	gate := NewGate(nav)

	res := Result{State: StateRejected, Class: ClassNoCredential}
	if gate.Check(res, RequireUser) {
		t.Error("unauthenticated visitor must not pass a private gate")
	}
	if len(nav.routes) != 1 || nav.routes[0] != RouteLogin {
		t.Errorf("expected navigation to %q, got %v", RouteLogin, nav.routes)
	}
}

func TestGate_CheckIsIdempotent(t *testing.T) {
	nav := &recordingNavigator{}
	gate := NewGate(nav)

	res := Result{State: StateResolved, User: &api.User{Role: "student"}}

	// Two checks with identical inputs produce at most one navigation
	gate.Check(res, RequireAdmin)
	gate.Check(res, RequireAdmin)

	if len(nav.routes) != 1 {
		t.Errorf("expected exactly one navigation, got %v", nav.routes)
	}
	if !gate.Navigated() {
		t.Error("gate should report that it navigated")
	}
}

func TestGate_DegradedUserOnAdminRoute(t *testing.T) {
	// A degraded resolution carries an unknown user record: it can render
	// student pages but must not open admin pages.
	nav := &recordingNavigator{}
	gate := NewGate(nav)

	res := Result{State: StateResolved, User: &api.User{}, Class: ClassInfrastructureFailure, Degraded: true}

	if !NewGate(&recordingNavigator{}).Check(res, RequireUser) {
		t.Error("degraded resolution should still render private student pages")
	}
	if gate.Check(res, RequireAdmin) {
		t.Error("degraded resolution must not open admin pages")
	}
	if len(nav.routes) != 1 || nav.routes[0] != RouteDashboard {
		t.Errorf("expected navigation to %q, got %v", RouteDashboard, nav.routes)
	}
}
