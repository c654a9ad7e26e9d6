package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/myadmin/internal/client/models"
	"github.com/dmitrijs2005/myadmin/internal/client/router"
	"github.com/dmitrijs2005/myadmin/internal/client/validation"
	"github.com/dmitrijs2005/myadmin/internal/common"
	"github.com/dmitrijs2005/myadmin/internal/timex"
)

// Input seams, swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getConfirm    = GetConfirm
	getPairs      = GetPairs
)

// Login asks for credentials (the email may be given as the first argument)
// and signs in. Only users holding the configured role get through.
func (a *App) Login(ctx context.Context, args []string) error {
	if route, _ := a.navigate(ctx, common.LoginPath); route.Name != router.Login {
		a.printf("Already logged in as %s\n", a.session.User().DisplayName())
		return nil
	}

	var (
		email string
		err   error
	)
	if len(args) > 0 {
		email = args[0]
	} else if email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	form := validation.NewForm(map[string]any{"email": email, "password": string(password)}, loginRules)
	if !form.Validate() {
		return formError(form)
	}

	user, err := a.auth.Login(ctx, models.Credentials{Email: email, Password: password})
	if err != nil {
		return err
	}

	a.printf("Welcome, %s!\n", user.DisplayName())
	if last, ok := a.auth.LastLogin(ctx); ok {
		a.printf("Last login %s\n", timex.Ago(last, a.nowFn()))
	}
	a.router.PushName(ctx, router.Dashboard)
	return nil
}

// Logout ends the session. The local session is dropped even when the
// server call fails.
func (a *App) Logout(ctx context.Context, _ []string) error {
	err := a.auth.Logout(ctx)
	a.router.Push(ctx, common.LoginPath)
	a.printf("Logged out\n")
	return err
}

// Profile refreshes and prints the signed-in user.
func (a *App) Profile(ctx context.Context, _ []string) error {
	if _, err := a.navigate(ctx, router.ByName(router.Profile).Path); err != nil {
		return err
	}

	u, err := a.auth.FetchProfile(ctx)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	a.printf("Name:   %s\n", u.Name)
	a.printf("Email:  %s\n", u.Email)
	a.printf("Roles:  %s\n", strings.Join(u.Roles, ", "))
	if !u.CreatedAt.IsZero() {
		a.printf("Member: since %s\n", u.CreatedAt.Format("2006-01-02"))
	}
	if last, ok := a.auth.LastLogin(ctx); ok {
		a.printf("Last login: %s (%s)\n", last.Local().Format("2006-01-02 15:04"), timex.Ago(last, a.nowFn()))
	}
	return nil
}
