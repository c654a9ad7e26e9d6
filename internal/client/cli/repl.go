package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/myadmin/internal/client/services"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies
// it; tests use a recording stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	Profile(ctx context.Context, args []string) error
	Dashboard(ctx context.Context, args []string) error
	Activity(ctx context.Context, args []string) error
	List(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Create(ctx context.Context, args []string) error
	Update(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
	Theme(ctx context.Context, args []string) error
	Back(ctx context.Context, args []string) error
}

const helpAnonymous = `Available commands:
  login                          sign in
  theme [dark|light|toggle]      show or change the theme
  help                           this text
  exit | quit                    leave`

var helpLoggedIn = `Available commands:
  dashboard                      summary widgets
  list <entity> [page=N] [search=..] [name=..] [email=..] [force]
  show <entity> <id>
  create <entity> [name=value ... | @file]
  update <entity> <id> [name=value ...]
  delete <entity> <id>
  export <entity> <csv|json|print> [file name]
  activity [limit]               recent changes made from this client
  profile | me                   the signed-in admin
  theme [dark|light|toggle]
  back                           previous page
  logout
  exit | quit
Entities: ` + entityNames()

func entityNames() string {
	names := make([]string, 0, 6)
	for _, r := range services.AllResources() {
		names = append(names, r.Name)
	}
	return strings.Join(names, ", ")
}

// runREPL reads commands line by line from reader and dispatches them to a.
// It returns on EOF or on "exit"/"quit". Command errors are printed and the
// loop carries on.
func runREPL(ctx context.Context, a execIface, promptFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(promptFn())

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		var cmdErr error
		switch cmd {
		case "help", "?":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpAnonymous)
			}
		case "login":
			cmdErr = a.Login(ctx, args)
		case "logout":
			cmdErr = a.Logout(ctx, args)
		case "me", "profile":
			cmdErr = a.Profile(ctx, args)
		case "dashboard", "dash", "home":
			cmdErr = a.Dashboard(ctx, args)
		case "activity":
			cmdErr = a.Activity(ctx, args)
		case "l", "list":
			cmdErr = a.List(ctx, args)
		case "show":
			cmdErr = a.Show(ctx, args)
		case "create", "add":
			cmdErr = a.Create(ctx, args)
		case "update", "edit":
			cmdErr = a.Update(ctx, args)
		case "delete", "rm":
			cmdErr = a.Delete(ctx, args)
		case "export":
			cmdErr = a.Export(ctx, args)
		case "theme":
			cmdErr = a.Theme(ctx, args)
		case "back":
			cmdErr = a.Back(ctx, args)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
		if err != nil {
			return
		}
	}
}

const (
	ansiReset = "\033[0m"
	ansiCyan  = "\033[96m"
	ansiBlue  = "\033[34m"
)

// prompt shows the window title and the signed-in user, tinted by theme.
func (a *App) prompt() string {
	status := a.router.Title()
	if u := a.session.User(); u != nil {
		status += " (" + u.DisplayName() + ")"
	}

	color := ansiBlue
	if a.theme.IsDark() {
		color = ansiCyan
	}
	return color + "myadmin " + status + " >" + ansiReset
}
