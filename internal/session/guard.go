package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/postclinics/clinic-dashboard/internal/gateway"
	"github.com/postclinics/clinic-dashboard/pkg/logging"
)

// ErrNoSession is returned by guarded operations when no usable session
// exists; callers send the user to the login entry point.
var ErrNoSession = errors.New("session: not authenticated")

// Guard gates dashboard entry on a presumed-valid session and tears the
// session down when the gateway signals it is gone. Unauthorized and
// unreachable both tear down: the transport cannot tell an expired token
// from a dead tunnel, and re-login recovers either.
type Guard struct {
	store      Store
	onRedirect func()
	now        func() time.Time
	logger     *logging.Logger
}

// NewGuard creates a session guard. onRedirect is invoked (if non-nil)
// whenever the user must be sent back to login.
func NewGuard(store Store, onRedirect func(), logger *logging.Logger) *Guard {
	if logger == nil {
		logger = logging.Default()
	}
	return &Guard{
		store:      store,
		onRedirect: onRedirect,
		now:        time.Now,
		logger:     logger,
	}
}

// Token exposes the underlying store as a gateway token source.
func (g *Guard) Token() (string, bool) { return g.store.Token() }

// Authenticated reports whether a presumed-valid token is present.
// Tokens that parse as JWTs are additionally checked against their exp
// claim (unverified parse; verification is the gateway's job), which
// pre-empts a guaranteed 401 round trip. Opaque tokens are presumed
// valid until the gateway says otherwise.
func (g *Guard) Authenticated() bool {
	token, ok := g.store.Token()
	if !ok {
		return false
	}
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return true
	}
	if claims.ExpiresAt != nil && g.now().After(claims.ExpiresAt.Time) {
		return false
	}
	return true
}

// RequireSession returns ErrNoSession (after firing the redirect hook)
// when no authenticated session exists. No data fetch should be attempted
// past a failed RequireSession.
func (g *Guard) RequireSession() error {
	if g.Authenticated() {
		return nil
	}
	g.redirect()
	return ErrNoSession
}

// Login stores a freshly issued token.
func (g *Guard) Login(token string) error {
	return g.store.Set(token)
}

// Logout destroys the session explicitly.
func (g *Guard) Logout() error {
	return g.store.Clear()
}

// Resolve inspects a gateway failure. Session-class failures clear the
// token, fire the redirect hook and come back as ErrNoSession; anything
// else is returned unchanged with the token preserved so the user can
// simply retry.
func (g *Guard) Resolve(err error) error {
	if err == nil {
		return nil
	}
	if !gateway.IsSessionFailure(err) {
		return err
	}
	g.logger.Info("session torn down after gateway failure", "error", err)
	if clearErr := g.store.Clear(); clearErr != nil {
		g.logger.Error("failed to clear session token", "error", clearErr)
	}
	g.redirect()
	return ErrNoSession
}

func (g *Guard) redirect() {
	if g.onRedirect != nil {
		g.onRedirect()
	}
}
