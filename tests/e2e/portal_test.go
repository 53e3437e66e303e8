package e2e

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-dev/campus/internal/cli/api"
	"github.com/campus-dev/campus/internal/cli/guard"
	"github.com/campus-dev/campus/internal/cli/session"
	"github.com/campus-dev/campus/internal/config"
	"github.com/campus-dev/campus/internal/server"
)

type recordingNavigator struct {
	routes []guard.Route
}

func (n *recordingNavigator) Navigate(route guard.Route) {
	n.routes = append(n.routes, route)
}

// startPlatform boots the full API server on an ephemeral listener and
// returns a portal client wired to it.
func startPlatform(t *testing.T) (*api.Client, *session.Memory, *httptest.Server) {
	t.Helper()

	t.Setenv("JWT_SECRET", "e2e-secret")

	cfg := &config.Config{
		HTTP:     config.HTTPConfig{Addr: ":0"},
		Database: config.DatabaseConfig{URL: filepath.Join(t.TempDir(), "campus-e2e.sqlite")},
		Redis:    config.RedisConfig{Address: "localhost:6379"},
		Logging:  config.LoggingConfig{Level: "error", Format: "json"},
	}

	s, err := server.New(cfg, zerolog.Nop(), "e2e")
	require.NoError(t, err)

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	store := session.NewMemory()
	return api.New(ts.URL, store), store, ts
}

// TestPortalSessionLifecycle walks the whole portal flow against a real
// server: register, sign in, browse, enroll, complete a lesson, sign out.
func TestPortalSessionLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E test in short mode")
	}

	client, store, _ := startPlatform(t)
	ctx := context.Background()

	// First account bootstraps as admin
	require.NoError(t, client.Register(ctx, "Admin", "admin@example.com", "password123"))

	adminToken, err := client.Login(ctx, "admin@example.com", "password123")
	require.NoError(t, err)
	require.NoError(t, store.Set(adminToken))

	// The guard resolves the admin identity
	nav := &recordingNavigator{}
	g := guard.New(store, client, nav, zerolog.Nop())
	res, err := g.Evaluate(ctx)
	require.NoError(t, err)
	require.Equal(t, guard.StateResolved, res.State)
	assert.Equal(t, "admin", res.User.Role)
	assert.Empty(t, nav.routes)

	// Admin publishes a course with content
	course, err := client.CreateCourse(ctx, api.CreateCoursePayload{
		Title:     "Intro to Go",
		Slug:      "intro-to-go",
		Published: true,
	})
	require.NoError(t, err)

	module, err := client.CreateModule(ctx, course.ID, api.CreateModulePayload{Title: "Basics", Position: 1})
	require.NoError(t, err)

	lesson, err := client.CreateLesson(ctx, module.ID, api.CreateLessonPayload{Title: "Hello World", Position: 1})
	require.NoError(t, err)

	// A student signs up and takes the course
	require.NoError(t, client.Register(ctx, "Student", "student@example.com", "password123"))

	studentToken, err := client.Login(ctx, "student@example.com", "password123")
	require.NoError(t, err)
	require.NoError(t, store.Set(studentToken))

	catalog, err := client.Courses(ctx)
	require.NoError(t, err)
	require.Len(t, catalog, 1)

	_, err = client.Enroll(ctx, course.ID)
	require.NoError(t, err)

	require.NoError(t, client.CompleteLesson(ctx, lesson.ID))

	journey, err := client.Journey(ctx)
	require.NoError(t, err)
	require.Len(t, journey, 1)
	assert.Equal(t, int64(1), journey[0].CompletedLessons)
	assert.InDelta(t, 100.0, journey[0].Percent, 0.01)

	// The route policy keeps the student off admin pages
	nav = &recordingNavigator{}
	g = guard.New(store, client, nav, zerolog.Nop())
	res, err = g.Evaluate(ctx)
	require.NoError(t, err)

	req, _ := guard.RequirementFor(guard.RouteAdminCourses)
	gate := guard.NewGate(nav)
	assert.False(t, gate.Check(res, req))
	require.Len(t, nav.routes, 1)
	assert.Equal(t, guard.RouteDashboard, nav.routes[0])

	// Sign out: the next mount redirects to login without a network call
	require.NoError(t, store.Clear())

	nav = &recordingNavigator{}
	g = guard.New(store, client, nav, zerolog.Nop())
	res, err = g.Evaluate(ctx)
	require.NoError(t, err)
	assert.Equal(t, guard.StateRejected, res.State)
	assert.Equal(t, guard.ClassNoCredential, res.Class)
	require.Len(t, nav.routes, 1)
	assert.Equal(t, guard.RouteLogin, nav.routes[0])
}

// TestPortalRevokedSession covers the stale-credential path end to end: a
// suspension server-side turns an existing token invalid, and the next guard
// evaluation clears it and sends the visitor to login.
func TestPortalRevokedSession(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E test in short mode")
	}

	client, store, _ := startPlatform(t)
	ctx := context.Background()

	require.NoError(t, client.Register(ctx, "Admin", "admin@example.com", "password123"))
	require.NoError(t, client.Register(ctx, "Student", "student@example.com", "password123"))

	studentToken, err := client.Login(ctx, "student@example.com", "password123")
	require.NoError(t, err)

	adminToken, err := client.Login(ctx, "admin@example.com", "password123")
	require.NoError(t, err)

	// Admin finds and suspends the student
	require.NoError(t, store.Set(adminToken))
	users, err := client.Users(ctx)
	require.NoError(t, err)

	var studentID string
	for _, u := range users {
		if u.Email == "student@example.com" {
			studentID = u.ID
		}
	}
	require.NotEmpty(t, studentID)

	_, err = client.SuspendUser(ctx, studentID)
	require.NoError(t, err)

	// The student's existing session now fails closed
	require.NoError(t, store.Set(studentToken))

	nav := &recordingNavigator{}
	g := guard.New(store, client, nav, zerolog.Nop())
	res, err := g.Evaluate(ctx)
	require.NoError(t, err)

	assert.Equal(t, guard.StateRejected, res.State)
	assert.Equal(t, guard.ClassInvalidCredential, res.Class)

	_, present := store.Get()
	assert.False(t, present, "revoked token should be cleared")

	require.Len(t, nav.routes, 1)
	assert.Equal(t, guard.RouteLogin, nav.routes[0])
}
