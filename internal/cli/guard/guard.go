// Package guard decides, on behalf of a portal page, whether the current
// visitor may proceed, and supplies the resolved identity. Every private
// command runs one evaluation before rendering anything; the guard absorbs
// and classifies all transport failures so callers only ever see a tri-state
// result plus an optional user record.
package guard

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/campus-dev/campus/internal/cli/api"
	"github.com/campus-dev/campus/internal/cli/session"
)

// State is the tri-state outcome of one evaluation
type State int

const (
	StatePending State = iota
	StateResolved
	StateRejected
)

// Class classifies why an evaluation did not resolve cleanly
type Class int

const (
	ClassNone Class = iota

	// ClassNoCredential: no token present locally; resolved without a
	// network call.
	ClassNoCredential

	// ClassInvalidCredential: the server explicitly rejected the token
	// (401/403). Fatal: the stored token is cleared.
	ClassInvalidCredential

	// ClassEndpointUnavailable: the identity-check endpoint itself is
	// missing (404). A deployment/versioning condition, not a credential
	// failure. Policy here is optimistic accept with a warning.
	ClassEndpointUnavailable

	// ClassInfrastructureFailure: network error, timeout or 5xx. The
	// credential was not proven invalid, so the token is retained.
	ClassInfrastructureFailure
)

func (c Class) String() string {
	switch c {
	case ClassNoCredential:
		return "no-credential"
	case ClassInvalidCredential:
		return "invalid-credential"
	case ClassEndpointUnavailable:
		return "endpoint-unavailable"
	case ClassInfrastructureFailure:
		return "infrastructure-failure"
	default:
		return "none"
	}
}

// Result is what consuming pages observe: the tri-state, the resolved user
// (when any), the failure classification and whether the identity could not
// be confirmed (degraded rendering).
type Result struct {
	State    State
	User     *api.User
	Class    Class
	Degraded bool
}

// Loading reports whether the evaluation has reached a terminal state.
// While loading, dependent pages must not render privileged content or make
// a redirect decision.
func (r Result) Loading() bool {
	return r.State == StatePending
}

// Identity is the validation round trip against the backend's
// identity-check endpoint. *api.Client satisfies it.
type Identity interface {
	Me(ctx context.Context) (*api.User, error)
}

// Navigator interprets the guard's navigation decisions. Modeling the
// redirect as an explicit command keeps the guard testable without a real
// location object.
type Navigator interface {
	Navigate(route Route)
}

// DefaultTimeout bounds the validation round trip. A timeout is an
// infrastructure failure, not a credential failure.
const DefaultTimeout = 10 * time.Second

// Guard evaluates whether the current visitor may proceed. Evaluations are
// independent per invocation: concurrent guards share only the session
// store, and only the fatal-failure path mutates it.
type Guard struct {
	store    session.Store
	identity Identity
	nav      Navigator
	timeout  time.Duration
	log      zerolog.Logger
}

// New creates a guard over the given store, identity client and navigator
func New(store session.Store, identity Identity, nav Navigator, log zerolog.Logger) *Guard {
	return &Guard{
		store:    store,
		identity: identity,
		nav:      nav,
		timeout:  DefaultTimeout,
		log:      log,
	}
}

// SetTimeout overrides the validation round-trip timeout
func (g *Guard) SetTimeout(timeout time.Duration) {
	g.timeout = timeout
}

// Evaluate runs the session check once:
//
//  1. no stored token: no network call, navigate to the login route,
//     rejected;
//  2. token present: exactly one GET /me round trip;
//  3. 2xx: resolved with the response user, token retained, no navigation;
//  4. 401/403: clear the store, navigate to the login route, rejected;
//  5. 404: the endpoint is missing, not the credential - optimistic accept
//     with an unknown user and a warning;
//  6. anything else (network, timeout, 5xx): degraded accept with an
//     unknown user; the token is never cleared and no redirect happens.
//
// If ctx is canceled before the round trip resolves (the page went away),
// Evaluate returns the context error and performs no side effects; the
// caller discards the result.
func (g *Guard) Evaluate(ctx context.Context) (Result, error) {
	token, present := g.store.Get()
	if !present {
		g.nav.Navigate(RouteLogin)
		return Result{State: StateRejected, Class: ClassNoCredential}, nil
	}
	_ = token // attached by the client's request layer

	reqCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	user, err := g.identity.Me(reqCtx)
	if err == nil {
		return Result{State: StateResolved, User: user}, nil
	}

	// The caller's context went away mid-flight: discard everything. No
	// store mutation, no navigation, no terminal state.
	if ctx.Err() != nil && errors.Is(ctx.Err(), context.Canceled) {
		return Result{}, ctx.Err()
	}

	switch class := classify(err); class {
	case ClassInvalidCredential:
		// Fatal: the server rejected the credential itself
		if clearErr := g.store.Clear(); clearErr != nil {
			g.log.Warn().Err(clearErr).Msg("Failed to clear rejected session token")
		}
		g.nav.Navigate(RouteLogin)
		return Result{State: StateRejected, Class: class}, nil

	case ClassEndpointUnavailable:
		// The deployment predates /me. Accept optimistically so the portal
		// stays usable, but say so.
		g.log.Warn().Err(err).Msg("Identity endpoint missing; accepting session without validation")
		return Result{State: StateResolved, User: &api.User{}, Class: class, Degraded: true}, nil

	default:
		// Infrastructure failure: we couldn't confirm the credential, which
		// is not the same as the credential being invalid. Keep the token.
		g.log.Warn().Err(err).Msg("Could not validate session; continuing in degraded mode")
		return Result{State: StateResolved, User: &api.User{}, Class: ClassInfrastructureFailure, Degraded: true}, nil
	}
}

// classify maps a validation error to a failure class. 401/403 are the only
// statuses that condemn the credential; 404 means the endpoint is absent;
// everything else is infrastructure.
func classify(err error) Class {
	var statusErr *api.StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.StatusCode {
		case 401, 403:
			return ClassInvalidCredential
		case 404:
			return ClassEndpointUnavailable
		}
	}
	return ClassInfrastructureFailure
}
