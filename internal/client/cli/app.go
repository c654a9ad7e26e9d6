package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/myadmin/internal/client/client"
	"github.com/dmitrijs2005/myadmin/internal/client/config"
	"github.com/dmitrijs2005/myadmin/internal/client/dashboard"
	"github.com/dmitrijs2005/myadmin/internal/client/router"
	"github.com/dmitrijs2005/myadmin/internal/client/services"
	"github.com/dmitrijs2005/myadmin/internal/client/session"
	"github.com/dmitrijs2005/myadmin/internal/common"
	"github.com/dmitrijs2005/myadmin/internal/logging"
)

// ErrLoginRequired is returned by commands the guard redirected to login.
var ErrLoginRequired = errors.New("login required")

type storeConstructor func(client.Client, ...services.StoreOption) (*services.EntityStore, error)

var storeConstructors = []struct {
	res  services.Resource
	ctor storeConstructor
}{
	{services.Skills, services.NewSkillStore},
	{services.Schools, services.NewSchoolStore},
	{services.Degrees, services.NewDegreeStore},
	{services.Subjects, services.NewSubjectStore},
	{services.Categories, services.NewCategoryStore},
	{services.Users, services.NewUserStore},
}

// App is the interactive front-end. It owns every store and the router.
type App struct {
	cfg *config.Config
	log logging.Logger
	db  *sql.DB

	session  *session.Session
	history  *router.History
	router   *router.Router
	auth     services.AuthService
	stores   map[string]*services.EntityStore
	dash     *dashboard.Store
	theme    *services.ThemeService
	activity *services.ActivityService

	reader *bufio.Reader
	out    io.Writer
	nowFn  func() time.Time
}

// NewApp opens the local database and wires the application.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	a, err := newApp(ctx, cfg, log, db, bufio.NewReader(os.Stdin), os.Stdout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return a, nil
}

func newApp(ctx context.Context, cfg *config.Config, log logging.Logger, db *sql.DB, in *bufio.Reader, out io.Writer) (*App, error) {
	repos := client.NewRepositories(db)

	sess := session.New(repos.Local)
	if err := sess.Restore(ctx); err != nil {
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}

	history := router.NewHistory(common.DashboardPath)

	api, err := client.NewHTTPClient(cfg.APIBaseURL,
		client.WithTokenSource(sess),
		client.WithUnauthorizedHandler(history, sess),
		client.WithTimeout(cfg.RequestTimeout),
		client.WithRateLimit(cfg.RequestsPerSecond),
		client.WithLogger(log.With("component", "http")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create api client: %w", err)
	}

	auth := services.NewAuthService(api, sess, db, history, cfg.RequiredRole, log)
	activity := services.NewActivityService(repos.Activities, log)

	theme, err := services.NewThemeService(ctx, repos.Local)
	if err != nil {
		return nil, fmt.Errorf("failed to load theme: %w", err)
	}
	if err := theme.Init(ctx, true); err != nil {
		log.Warn(ctx, "failed to save initial theme", "error", err)
	}

	stores := make(map[string]*services.EntityStore, len(storeConstructors))
	for _, sc := range storeConstructors {
		s, err := sc.ctor(api,
			services.WithActivityRecorder(activity),
			services.WithStoreLogger(log),
			services.WithCacheSize(cfg.UsersCacheSize),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s store: %w", sc.res.Name, err)
		}
		stores[sc.res.Name] = s
	}

	return &App{
		cfg:      cfg,
		log:      log,
		db:       db,
		session:  sess,
		history:  history,
		router:   router.New(history, router.NewGuard(sess, auth, log)),
		auth:     auth,
		stores:   stores,
		dash:     dashboard.New(api, dashboard.WithConcurrency(cfg.DashboardConcurrency), dashboard.WithLogger(log)),
		theme:    theme,
		activity: activity,
		reader:   in,
		out:      out,
		nowFn:    time.Now,
	}, nil
}

// Run shows the landing page, asks for credentials when needed and then
// blocks in the REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.printf("Welcome to %s (type 'help' for commands)\n", common.AppTitle)

	if a.router.Push(ctx, a.history.Location()).Name == router.Login {
		if err := a.Login(ctx, nil); err != nil {
			a.printf("Error: %v\n", err)
		}
	}

	runREPL(ctx, a, a.prompt, a.reader)
}

// Close releases the local database.
func (a *App) Close() {
	if a.db == nil {
		return
	}
	if err := a.db.Close(); err != nil {
		a.log.Warn(context.Background(), "failed to close database", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// navigate runs the guard for path. It reports ErrLoginRequired when the
// guard sent the user to the login page instead.
func (a *App) navigate(ctx context.Context, path string) (router.Route, error) {
	route := a.router.Push(ctx, path)
	if route.Name == router.Login && path != common.LoginPath {
		return route, ErrLoginRequired
	}
	return route, nil
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
