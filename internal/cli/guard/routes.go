package guard

// Route is a portal navigation target, kept as the path strings the web
// frontend uses so redirects read the same everywhere.
type Route string

const (
	RouteLogin        Route = "/"
	RouteRegister     Route = "/register"
	RouteDashboard    Route = "/dashboard"
	RouteJourney      Route = "/journey"
	RouteCatalog      Route = "/catalog"
	RouteMyCourses    Route = "/courses"
	RouteExams        Route = "/exams"
	RouteNotices      Route = "/notices"
	RouteProfile      Route = "/profile"
	RouteAdminCourses Route = "/admin/courses"
	RouteAdminModules Route = "/admin/modules"
	RouteAdminLessons Route = "/admin/lessons"
)

// Requirement is the access level a route demands
type Requirement int

const (
	Public Requirement = iota
	RequireUser
	RequireAdmin
)

var routeRequirements = map[Route]Requirement{
	RouteLogin:        Public,
	RouteRegister:     Public,
	RouteDashboard:    RequireUser,
	RouteJourney:      RequireUser,
	RouteCatalog:      RequireUser,
	RouteMyCourses:    RequireUser,
	RouteExams:        RequireUser,
	RouteNotices:      RequireUser,
	RouteProfile:      RequireUser,
	RouteAdminCourses: RequireAdmin,
	RouteAdminModules: RequireAdmin,
	RouteAdminLessons: RequireAdmin,
}

// RequirementFor returns the access level for a route. Unknown routes demand
// a user so the gate sends the visitor back to the login page.
func RequirementFor(route Route) (Requirement, bool) {
	req, known := routeRequirements[route]
	if !known {
		return RequireUser, false
	}
	return req, true
}

// LandingRoute is where a freshly logged-in user is sent, based on role
func LandingRoute(role string) Route {
	if role == "admin" {
		return RouteAdminCourses
	}
	return RouteDashboard
}

// Gate applies the route access policy for one page mount. It is idempotent:
// once it has navigated, re-checking with the same inputs is a no-op.
type Gate struct {
	nav       Navigator
	navigated bool
}

// NewGate creates a gate bound to a navigator for the lifetime of one mount
func NewGate(nav Navigator) *Gate {
	return &Gate{nav: nav}
}

// Navigated reports whether this gate already redirected the visitor
func (g *Gate) Navigated() bool {
	return g.navigated
}

// Check decides whether the page may render given the guard's result and the
// route's requirement. While the result is still loading no decision is made
// and nothing privileged may render. Returns true when the page may proceed.
func (g *Gate) Check(res Result, require Requirement) bool {
	if res.Loading() {
		return false
	}

	if g.navigated {
		return false
	}

	switch require {
	case Public:
		return true

	case RequireUser:
		if res.State != StateResolved || res.User == nil {
			g.navigated = true
			g.nav.Navigate(RouteLogin)
			return false
		}
		return true

	case RequireAdmin:
		if res.State != StateResolved || res.User == nil {
			g.navigated = true
			g.nav.Navigate(RouteLogin)
			return false
		}
		if res.User.Role != "admin" {
			// Non-admins land on the student dashboard, not the login page
			g.navigated = true
			g.nav.Navigate(RouteDashboard)
			return false
		}
		return true
	}

	return false
}
