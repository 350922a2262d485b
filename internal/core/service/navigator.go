package service

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/lybfish/ironbull/internal/core/domain"
	"github.com/lybfish/ironbull/internal/core/ports"
	"github.com/lybfish/ironbull/internal/pkg/metrics"
)

// RegistrationState is the lifecycle of the materialized route table.
type RegistrationState int32

const (
	StateEmpty RegistrationState = iota
	StateMaterializing
	StateMaterialized
)

func (s RegistrationState) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateMaterializing:
		return "materializing"
	case StateMaterialized:
		return "materialized"
	}
	return "unknown"
}

// Navigator materializes the static menu into the live route table and
// gates every navigation. Materialization happens at most once per login
// session: the first guarded navigation after login resolves the operator's
// identity, builds the route table as a pure function of the menu, and
// swaps it in atomically. Logout resets to empty, so the next login builds
// a fresh table instead of piling entries onto the old one.
type Navigator struct {
	menu           domain.MenuTable
	configuredHome string
	identity       ports.IdentityClient
	creds          *CredentialStore
	log            zerolog.Logger

	state  atomic.Int32
	routes atomic.Pointer[domain.RouteTable]
	mu     sync.Mutex // serializes Materialize; overlapping callers wait for the first
}

func NewNavigator(menu domain.MenuTable, configuredHome string, identity ports.IdentityClient, creds *CredentialStore, log zerolog.Logger) *Navigator {
	return &Navigator{
		menu:           menu,
		configuredHome: configuredHome,
		identity:       identity,
		creds:          creds,
		log:            log,
	}
}

// State returns the current registration state.
func (n *Navigator) State() RegistrationState {
	return RegistrationState(n.state.Load())
}

// Routes returns the active route table, or nil before materialization.
func (n *Navigator) Routes() *domain.RouteTable {
	return n.routes.Load()
}

// Materialize builds and activates the route table for the current session.
// Safe to call from overlapping navigations: the first caller does the
// work, the rest observe the finished table. When the identity fetch fails
// the operator is not locked out — navigation proceeds with the permissive
// wildcard identity and the failure is logged and counted. A 401 is the
// exception: the pipeline has already torn the session down by the time the
// fetch returns, so Materialize leaves the navigator empty and returns nil
// instead of building a table no session backs.
func (n *Navigator) Materialize(ctx context.Context) *domain.RouteTable {
	if rt := n.routes.Load(); rt != nil {
		return rt
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if rt := n.routes.Load(); rt != nil {
		return rt
	}
	n.state.Store(int32(StateMaterializing))

	id, err := n.identity.FetchIdentity(ctx)
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		n.state.Store(int32(StateEmpty))
		return nil
	case err != nil:
		metrics.MaterializationFailuresTotal.Inc()
		n.log.Warn().Err(err).Msg("identity fetch failed, using permissive fallback")
		id = domain.PermissiveIdentity()
	default:
		id.Normalize()
	}
	n.creds.SetIdentity(ctx, id)

	rt := domain.BuildRouteTable(n.menu, n.configuredHome, id.HomePath)
	n.routes.Store(rt)
	n.state.Store(int32(StateMaterialized))

	n.log.Info().
		Int("routes", rt.Len()).
		Str("home", rt.Home).
		Msg("console routes materialized")
	return rt
}

// Reset tears the route table down. Called on logout and on 401 teardown so
// the next login materializes from scratch. Lock-free: the pipeline's
// teardown hook invokes it on the goroutine whose Materialize may be
// holding the lock.
func (n *Navigator) Reset() {
	n.routes.Store(nil)
	n.state.Store(int32(StateEmpty))
}

// Decision is the outcome of one guard evaluation.
type Decision struct {
	Allow      bool
	RedirectTo string
}

func allow() Decision             { return Decision{Allow: true} }
func redirect(to string) Decision { return Decision{RedirectTo: to} }

// Guard is evaluated before every navigation:
//
//	public target, session exists    → redirect home
//	public target, no session        → allow
//	no session, target requires auth → redirect to login with return hint
//	session, routes not materialized → materialize, then allow
//	session, routes materialized     → allow
func (n *Navigator) Guard(ctx context.Context, target string) Decision {
	token := n.creds.Token(ctx)

	if domain.PublicPath(target) {
		if token != "" && target == domain.LoginPath {
			return redirect(n.homePath())
		}
		return allow()
	}

	if token == "" {
		return redirect(loginRedirect(target))
	}

	if n.routes.Load() == nil && n.Materialize(ctx) == nil {
		// Session torn down mid-materialization.
		return redirect(loginRedirect(target))
	}
	return allow()
}

// loginRedirect builds the login URL with an escaped return hint.
func loginRedirect(target string) string {
	if target == "" || target == "/" {
		return domain.LoginPath
	}
	return domain.LoginPath + "?" + url.Values{"from": {target}}.Encode()
}

// homePath resolves the landing page even before materialization.
func (n *Navigator) homePath() string {
	if rt := n.routes.Load(); rt != nil {
		return rt.Home
	}
	return domain.ResolveHome(n.configuredHome, "")
}
