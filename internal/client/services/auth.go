// Package services contains the stateful stores of the dashboard client.
// This file defines the authentication service: login with the admin role
// check, profile loading, logout and the last-login bookkeeping kept in
// local storage.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/dmitrijs2005/myadmin/internal/client/client"
	"github.com/dmitrijs2005/myadmin/internal/client/models"
	"github.com/dmitrijs2005/myadmin/internal/client/repositories/localstore"
	"github.com/dmitrijs2005/myadmin/internal/client/session"
	"github.com/dmitrijs2005/myadmin/internal/common"
	"github.com/dmitrijs2005/myadmin/internal/dbx"
	"github.com/dmitrijs2005/myadmin/internal/logging"
)

// AuthService defines authentication operations for the dashboard.
//
// Contract:
//   - Login: exchange credentials for a token, load the profile and require
//     the configured role. Any failure leaves no persisted token.
//   - FetchProfile: load /api/me into the session; failure clears the session.
//   - Logout: tell the server, then clear the session whatever it answered.
//   - Clear: drop the session locally.
//   - LastLogin: the login before the current one, if recorded.
type AuthService interface {
	Login(ctx context.Context, creds models.Credentials) (*models.User, error)
	FetchProfile(ctx context.Context) (*models.User, error)
	Logout(ctx context.Context) error
	Clear(ctx context.Context) error
	LastLogin(ctx context.Context) (time.Time, bool)
}

type authService struct {
	client       client.Client
	session      *session.Session
	db           *sql.DB
	nav          client.Navigator
	requiredRole string
	log          logging.Logger
	nowFn        func() time.Time
}

// NewAuthService wires the service. An empty requiredRole means
// common.DefaultRequiredRole; nav may be nil when nothing tracks location.
func NewAuthService(c client.Client, s *session.Session, db *sql.DB, nav client.Navigator, requiredRole string, log logging.Logger) AuthService {
	if requiredRole == "" {
		requiredRole = common.DefaultRequiredRole
	}
	return &authService{
		client:       c,
		session:      s,
		db:           db,
		nav:          nav,
		requiredRole: requiredRole,
		log:          log.With("store", "auth"),
		nowFn:        time.Now,
	}
}

func (a *authService) Login(ctx context.Context, creds models.Credentials) (*models.User, error) {
	a.session.BeginAuth()

	form := url.Values{
		"email_or_phone": {creds.Email},
		"password":       {string(creds.Password)},
	}
	resp, err := a.client.Do(ctx, client.Post("/api/login", client.Form(form)))
	if err != nil {
		a.clear(ctx)
		return nil, err
	}

	token := resp.JSON().Get("data.token").String()
	if token == "" {
		a.clear(ctx)
		return nil, common.ErrNoToken
	}
	if err := a.session.SetToken(ctx, token); err != nil {
		a.clear(ctx)
		return nil, err
	}

	user, err := a.FetchProfile(ctx)
	if err != nil {
		return nil, err
	}

	if err := a.rotateLastLogin(ctx); err != nil {
		a.log.Warn(ctx, "failed to record login time", "error", err)
	}

	a.log.Info(ctx, "logged in", "user_id", user.ID)
	return user, nil
}

func (a *authService) FetchProfile(ctx context.Context) (*models.User, error) {
	resp, err := a.client.Do(ctx, client.Get("/api/me", nil))
	if err != nil {
		a.clear(ctx)
		return nil, err
	}

	rec, err := client.DecodeObject(resp.Body)
	if err != nil {
		a.clear(ctx)
		return nil, fmt.Errorf("decode profile: %w", err)
	}

	user := models.UserFromRecord(rec)
	if !user.HasRole(a.requiredRole) {
		a.log.Warn(ctx, "profile rejected: missing role", "user_id", user.ID, "role", a.requiredRole)
		a.clear(ctx)
		return nil, common.ErrNotAdmin
	}
	a.session.SetUser(user)
	return user, nil
}

func (a *authService) Logout(ctx context.Context) error {
	_, err := a.client.Do(ctx, client.Delete("/api/logout"))

	a.clear(ctx)
	if a.nav != nil {
		a.nav.Redirect(common.LoginPath)
	}

	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (a *authService) Clear(ctx context.Context) error {
	return a.session.Clear(ctx)
}

func (a *authService) LastLogin(ctx context.Context) (time.Time, bool) {
	v, err := localstore.NewSQLiteRepository(a.db).Get(ctx, common.PreviousLoginKey)
	if err != nil {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// clear drops the session. Failures are only logged.
func (a *authService) clear(ctx context.Context) {
	if err := a.session.Clear(ctx); err != nil {
		a.log.Error(ctx, "failed to clear session", "error", err)
	}
}

// rotateLastLogin moves last_login_at into previous_login_at and stamps
// the current time, in a single transaction.
func (a *authService) rotateLastLogin(ctx context.Context) error {
	now := a.nowFn().UTC().Format(time.RFC3339)

	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := localstore.NewSQLiteRepository(tx)

		last, err := repo.Get(ctx, common.LastLoginKey)
		switch {
		case errors.Is(err, common.ErrorNotFound):
		case err != nil:
			return err
		default:
			if err := repo.Set(ctx, common.PreviousLoginKey, last); err != nil {
				return err
			}
		}
		return repo.Set(ctx, common.LastLoginKey, now)
	})
}
