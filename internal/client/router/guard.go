package router

import (
	"context"

	"github.com/dmitrijs2005/myadmin/internal/client/models"
	"github.com/dmitrijs2005/myadmin/internal/common"
	"github.com/dmitrijs2005/myadmin/internal/logging"
)

// Session is the part of the session the guard inspects.
type Session interface {
	Token() string
	User() *models.User
	IsAuthenticated() bool
	Expired() bool
	Clear(ctx context.Context) error
}

// Auth loads the profile and logs out.
type Auth interface {
	FetchProfile(ctx context.Context) (*models.User, error)
	Logout(ctx context.Context) error
}

type Guard struct {
	session Session
	auth    Auth
	log     logging.Logger
}

func NewGuard(s Session, a Auth, log logging.Logger) *Guard {
	return &Guard{session: s, auth: a, log: log.With("component", "guard")}
}

// Resolve decides where a navigation to `to` actually lands:
//   - a token without a user triggers a profile fetch; failure logs out
//     and lands on login,
//   - an expired token is dropped and lands on login,
//   - unauthenticated navigation lands on login,
//   - authenticated navigation to login lands on the dashboard.
func (g *Guard) Resolve(ctx context.Context, to Route) Route {
	if g.session.Token() != "" && g.session.Expired() {
		g.log.Info(ctx, "dropping session", "reason", common.ErrTokenExpired)
		if err := g.session.Clear(ctx); err != nil {
			g.log.Warn(ctx, "failed to clear expired session", "error", err)
		}
		return ByName(Login)
	}

	if g.session.Token() != "" && g.session.User() == nil {
		if _, err := g.auth.FetchProfile(ctx); err != nil {
			g.log.Warn(ctx, "profile fetch failed, logging out", "error", err)
			if err := g.auth.Logout(ctx); err != nil {
				g.log.Debug(ctx, "logout after failed profile fetch", "error", err)
			}
			return ByName(Login)
		}
	}

	authenticated := g.session.IsAuthenticated()
	switch {
	case !authenticated && to.Name != Login:
		return ByName(Login)
	case authenticated && to.Name == Login:
		return ByName(Dashboard)
	}
	return to
}
