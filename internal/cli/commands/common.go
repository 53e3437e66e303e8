package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/campus-dev/campus/internal/cli/api"
	"github.com/campus-dev/campus/internal/cli/guard"
	"github.com/campus-dev/campus/internal/cli/session"
	"github.com/campus-dev/campus/internal/cli/userconfig"
)

// sessionStoreFactory builds the token store for a server. Swapped for an
// in-memory store in tests.
var sessionStoreFactory = func(serverURL string) session.Store {
	return session.NewKeyring(serverURL)
}

// newPortal wires the API client and session store for the configured server.
// This is common logic used by every command.
func newPortal() (*api.Client, session.Store, error) {
	serverURL, err := userconfig.GetServerURL()
	if err != nil {
		return nil, nil, err
	}

	store := sessionStoreFactory(serverURL)
	return api.New(serverURL, store), store, nil
}

// cliNavigator interprets the guard's navigation decisions for a terminal:
// it prints where the visitor was sent and how to proceed.
type cliNavigator struct{}

func (cliNavigator) Navigate(route guard.Route) {
	switch route {
	case guard.RouteLogin:
		fmt.Println("→ redirected to the login page. Run 'campus login' to sign in.")
	case guard.RouteDashboard:
		fmt.Printf("→ redirected to %s. This page needs admin access.\n", route)
	default:
		fmt.Printf("→ redirected to %s\n", route)
	}
}

// requireAccess runs the auth guard and the route access policy for one
// command invocation ("page mount"). It returns the resolved user when the
// page may render, or an error after the navigator has explained the
// redirect.
func requireAccess(ctx context.Context, client *api.Client, store session.Store, route guard.Route) (*api.User, error) {
	nav := cliNavigator{}
	g := guard.New(store, client, nav, zerolog.Nop())

	res, err := g.Evaluate(ctx)
	if err != nil {
		// Canceled mid-flight; the result is discarded
		return nil, err
	}

	require, _ := guard.RequirementFor(route)
	gate := guard.NewGate(nav)
	if !gate.Check(res, require) {
		if require == guard.RequireAdmin && res.State == guard.StateResolved {
			return nil, fmt.Errorf("admin access required")
		}
		return nil, fmt.Errorf("not signed in")
	}

	return res.User, nil
}
