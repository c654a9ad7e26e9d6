package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/myadmin/internal/client/services"
)

// Theme prints or changes the theme: "dark", "light" or "toggle".
func (a *App) Theme(ctx context.Context, args []string) error {
	if len(args) > 0 {
		var err error
		switch strings.ToLower(args[0]) {
		case services.ThemeDark:
			err = a.theme.Set(ctx, true)
		case services.ThemeLight:
			err = a.theme.Set(ctx, false)
		case "toggle":
			err = a.theme.Toggle(ctx)
		default:
			return fmt.Errorf("%w: theme [dark|light|toggle]", errUsage)
		}
		if err != nil {
			return err
		}
	}
	a.printf("Theme: %s\n", a.theme.Name())
	return nil
}

// Back returns to the previous page, through the guard.
func (a *App) Back(ctx context.Context, _ []string) error {
	path, ok := a.history.Back()
	if !ok {
		a.printf("No previous page\n")
		return nil
	}
	route := a.router.Push(ctx, path)
	a.printf("%s\n", route.WindowTitle())
	return nil
}
