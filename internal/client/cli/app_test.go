package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/myadmin/internal/client/client"
	"github.com/dmitrijs2005/myadmin/internal/client/config"
	"github.com/dmitrijs2005/myadmin/internal/client/router"
	"github.com/dmitrijs2005/myadmin/internal/common"
	"github.com/dmitrijs2005/myadmin/internal/logging"
)

const testToken = "tok-1"

// fakeAPI is an in-memory stand-in for the admin REST API.
type fakeAPI struct {
	mu       sync.Mutex
	roles    string
	skills   []map[string]any
	nextID   int
	hits     map[string]int
	failWith map[string]int
	lastBody map[string]any
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		roles: `[{"name":"admin"}]`,
		skills: []map[string]any{
			{"id": 1, "name": "Go"},
			{"id": 2, "name": "SQL, advanced"},
		},
		nextID:   3,
		hits:     map[string]int{},
		failWith: map[string]int{},
	}
}

func (f *fakeAPI) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[key]
}

func (f *fakeAPI) fail(key string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failWith[key] = status
}

func (f *fakeAPI) setRoles(roles string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.roles = roles
}

func (f *fakeAPI) created() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastBody
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path

	f.mu.Lock()
	defer f.mu.Unlock()
	f.hits[key]++

	w.Header().Set("Content-Type", "application/json")
	if status, ok := f.failWith[key]; ok {
		w.WriteHeader(status)
		io.WriteString(w, `{"message":"forced failure"}`)
		return
	}

	if key == "POST /api/login" {
		if r.FormValue("password") != "secret12" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			io.WriteString(w, `{"errors":{"email_or_phone":["These credentials do not match our records."]}}`)
			return
		}
		io.WriteString(w, `{"data":{"token":"`+testToken+`"}}`)
		return
	}

	if r.Header.Get("Authorization") != "Bearer "+testToken {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"message":"Unauthenticated."}`)
		return
	}

	switch {
	case key == "GET /api/me":
		io.WriteString(w, `{"data":{"id":1,"name":"Root","email":"root@example.com","roles":`+f.roles+`}}`)
	case key == "DELETE /api/logout":
		io.WriteString(w, `{"message":"ok"}`)
	case key == "GET /api/skills":
		_ = json.NewEncoder(w).Encode(map[string]any{"data": f.skills})
	case key == "POST /api/skills":
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.lastBody = maps.Clone(body)
		body["id"] = f.nextID
		f.nextID++
		f.skills = append(f.skills, body)
		_ = json.NewEncoder(w).Encode(map[string]any{"data": body})
	case strings.HasPrefix(key, "DELETE /api/skills/"):
		io.WriteString(w, `{"message":"deleted"}`)
	case key == "GET /api/users":
		io.WriteString(w, `{"data":{"items":[
			{"id":1,"name":"Ann","email":"ann@example.com","created_at":"2026-01-01T00:00:00Z"},
			{"id":2,"name":"Bob","email":"bob@example.com","created_at":"2026-02-01T00:00:00Z"}
		],"current_page":1,"last_page":3,"total":41,"per_page":20}}`)
	case strings.HasPrefix(key, "GET /api/"):
		io.WriteString(w, `{"data":[{"id":1,"name":"one"}]}`)
	default:
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"message":"not found"}`)
	}
}

type testApp struct {
	*App
	api *fakeAPI
	out *bytes.Buffer
}

func newTestApp(t *testing.T, input string) *testApp {
	t.Helper()
	ctx := context.Background()

	api := newFakeAPI()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	db, err := client.InitDatabase(ctx, ":memory:")
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.APIBaseURL = srv.URL
	cfg.RequestsPerSecond = 0
	cfg.ExportDir = t.TempDir()

	out := &bytes.Buffer{}
	app, err := newApp(ctx, cfg, logging.Nop(), db, bufio.NewReader(strings.NewReader(input)), out)
	require.NoError(t, err)
	t.Cleanup(app.Close)

	stubPassword(t, "secret12")
	return &testApp{App: app, api: api, out: out}
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(*bufio.Reader, io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

func loggedIn(t *testing.T, input string) *testApp {
	t.Helper()
	a := newTestApp(t, input)
	require.NoError(t, a.Login(context.Background(), []string{"root@example.com"}))
	a.out.Reset()
	return a
}

func TestLogin_Success(t *testing.T) {
	a := newTestApp(t, "")

	require.NoError(t, a.Login(context.Background(), []string{"root@example.com"}))

	assert.True(t, a.isLoggedIn())
	assert.Contains(t, a.out.String(), "Welcome, Root!")
	assert.Equal(t, router.Dashboard, a.router.Current().Name)
	assert.Equal(t, "Dashboard - My Admin", a.router.Title())
}

func TestLogin_PromptsForEmail(t *testing.T) {
	a := newTestApp(t, "root@example.com\n")

	require.NoError(t, a.Login(context.Background(), nil))
	assert.True(t, a.isLoggedIn())
	assert.Contains(t, a.out.String(), "Email: ")
}

func TestLogin_FormValidationSkipsRequest(t *testing.T) {
	a := newTestApp(t, "")

	err := a.Login(context.Background(), []string{"not-an-email"})
	require.ErrorIs(t, err, common.ErrInvalidPayload)
	assert.Contains(t, err.Error(), "email: Please enter a valid email address")
	assert.Zero(t, a.api.count("POST /api/login"))
}

func TestLogin_WrongPasswordShowsServerMessage(t *testing.T) {
	a := newTestApp(t, "")
	stubPassword(t, "wrong-password")

	err := a.Login(context.Background(), []string{"root@example.com"})
	require.Error(t, err)
	assert.Equal(t, "These credentials do not match our records.", err.Error())
	assert.False(t, a.isLoggedIn())
}

func TestLogin_NonAdminRejected(t *testing.T) {
	a := newTestApp(t, "")
	a.api.setRoles(`["editor"]`)

	err := a.Login(context.Background(), []string{"root@example.com"})
	require.ErrorIs(t, err, common.ErrNotAdmin)
	assert.False(t, a.isLoggedIn())
	assert.Empty(t, a.session.Token())
}

func TestLogin_AlreadyLoggedIn(t *testing.T) {
	a := loggedIn(t, "")

	require.NoError(t, a.Login(context.Background(), nil))
	assert.Contains(t, a.out.String(), "Already logged in as Root")
	assert.Equal(t, 1, a.api.count("POST /api/login"))
}

func TestCommands_RequireLogin(t *testing.T) {
	a := newTestApp(t, "")
	ctx := context.Background()

	assert.ErrorIs(t, a.List(ctx, []string{"skills"}), ErrLoginRequired)
	assert.ErrorIs(t, a.Dashboard(ctx, nil), ErrLoginRequired)
	assert.ErrorIs(t, a.Profile(ctx, nil), ErrLoginRequired)
	assert.Zero(t, a.api.count("GET /api/skills"))
	assert.Equal(t, router.Login, a.router.Current().Name)
}

func TestList_Skills(t *testing.T) {
	a := loggedIn(t, "")

	require.NoError(t, a.List(context.Background(), []string{"skill"}))
	out := a.out.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "SQL, advanced")
	assert.Equal(t, "/skill", a.history.Location())
	assert.Equal(t, "Skill List - My Admin", a.router.Title())
	assert.Len(t, a.dash.Collection("skills"), 2, "dashboard sees the refreshed collection")
	assert.Zero(t, a.api.count("GET /api/schools"))
}

func TestList_UsersShowsPagination(t *testing.T) {
	a := loggedIn(t, "")

	require.NoError(t, a.List(context.Background(), []string{"users", "page=1"}))
	assert.Contains(t, a.out.String(), "Page 1 of 3, 41 total")

	require.NoError(t, a.List(context.Background(), []string{"users", "page=1"}))
	assert.Equal(t, 1, a.api.count("GET /api/users"), "second page-1 listing is served from cache")
}

func TestList_Errors(t *testing.T) {
	a := loggedIn(t, "")
	ctx := context.Background()

	assert.ErrorIs(t, a.List(ctx, nil), errUsage)
	assert.ErrorIs(t, a.List(ctx, []string{"skills", "bogus"}), errUsage)
	assert.ErrorContains(t, a.List(ctx, []string{"planets"}), `unknown entity "planets"`)
}

func TestCreateDeleteAndActivity(t *testing.T) {
	a := loggedIn(t, "y\n")
	ctx := context.Background()

	require.NoError(t, a.Create(ctx, []string{"skills", "name=Rust"}))
	assert.Contains(t, a.out.String(), "Created skill #3")
	assert.Equal(t, map[string]any{"name": "Rust"}, a.api.created())

	require.NoError(t, a.Delete(ctx, []string{"skills", "3"}))
	assert.Contains(t, a.out.String(), "Deleted skill #3")
	assert.Equal(t, 1, a.api.count("DELETE /api/skills/3"))

	a.out.Reset()
	require.NoError(t, a.Activity(ctx, nil))
	out := a.out.String()
	assert.Contains(t, out, "Skill deleted")
	assert.Contains(t, out, "New skill added")
	assert.Less(t, strings.Index(out, "Skill deleted"), strings.Index(out, "New skill added"), "newest first")
}

func TestCreate_InteractivePairs(t *testing.T) {
	a := loggedIn(t, "name=Kotlin\n\n")

	require.NoError(t, a.Create(context.Background(), []string{"skills"}))
	assert.Equal(t, map[string]any{"name": "Kotlin"}, a.api.created())
}

func TestCreate_FormValidationSkipsRequest(t *testing.T) {
	a := loggedIn(t, "")

	err := a.Create(context.Background(), []string{"skills", "level=3"})
	require.ErrorIs(t, err, common.ErrInvalidPayload)
	assert.Contains(t, err.Error(), "name: This field is required")
	assert.Zero(t, a.api.count("POST /api/skills"))
}

func TestUpdate_PartialValidation(t *testing.T) {
	a := loggedIn(t, "")

	err := a.Update(context.Background(), []string{"users", "5", "email=broken"})
	require.ErrorIs(t, err, common.ErrInvalidPayload)
	assert.NotContains(t, err.Error(), "name:")

	assert.ErrorIs(t, a.Update(context.Background(), []string{"users"}), errUsage)
}

func TestDelete_Cancelled(t *testing.T) {
	a := loggedIn(t, "n\n")

	require.NoError(t, a.Delete(context.Background(), []string{"skills", "1"}))
	assert.Contains(t, a.out.String(), "Cancelled")
	assert.Zero(t, a.api.count("DELETE /api/skills/1"))
}

func TestUnauthorizedResponseLogsOut(t *testing.T) {
	a := loggedIn(t, "")
	a.api.fail("GET /api/skills", http.StatusUnauthorized)

	err := a.List(context.Background(), []string{"skills"})
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.False(t, a.isLoggedIn())
	assert.Equal(t, common.LoginPath, a.history.Location())
}

func TestDashboard(t *testing.T) {
	a := loggedIn(t, "")

	require.NoError(t, a.Dashboard(context.Background(), nil))
	out := a.out.String()
	assert.Contains(t, out, "Total Skills")
	assert.Contains(t, out, "total records 6")
	assert.Contains(t, out, "Recent users")
	assert.Less(t, strings.Index(out, "Bob"), strings.Index(out, "Ann"))
}

func TestDashboard_PartialFailure(t *testing.T) {
	a := loggedIn(t, "")
	a.api.fail("GET /api/schools", http.StatusInternalServerError)

	err := a.Dashboard(context.Background(), nil)
	require.ErrorIs(t, err, client.ErrUnavailable)
	assert.Contains(t, a.out.String(), "total records 5")
}

func TestExport_CSV(t *testing.T) {
	a := loggedIn(t, "")

	require.NoError(t, a.Export(context.Background(), []string{"skills", "csv", "skills"}))
	assert.Contains(t, a.out.String(), "Exported 2 skills to ")

	b, err := os.ReadFile(a.cfg.ExportDir + "/skills.csv")
	require.NoError(t, err)
	assert.Equal(t, "\"id\",\"name\"\n\"1\",\"Go\"\n\"2\",\"SQL, advanced\"", string(b))
}

func TestExport_BadFormat(t *testing.T) {
	a := loggedIn(t, "")
	assert.Error(t, a.Export(context.Background(), []string{"skills", "xml"}))
	assert.ErrorIs(t, a.Export(context.Background(), []string{"skills"}), errUsage)
}

func TestProfileAndLogout(t *testing.T) {
	a := loggedIn(t, "")
	ctx := context.Background()

	require.NoError(t, a.Profile(ctx, nil))
	assert.Contains(t, a.out.String(), "Roles:  admin")

	require.NoError(t, a.Logout(ctx, nil))
	assert.False(t, a.isLoggedIn())
	assert.Equal(t, 1, a.api.count("DELETE /api/logout"))
	assert.Equal(t, router.Login, a.router.Current().Name)
}

func TestThemeAndBack(t *testing.T) {
	a := loggedIn(t, "")
	ctx := context.Background()

	require.NoError(t, a.Theme(ctx, []string{"light"}))
	assert.False(t, a.theme.IsDark())
	require.NoError(t, a.Theme(ctx, []string{"toggle"}))
	assert.True(t, a.theme.IsDark())
	assert.ErrorIs(t, a.Theme(ctx, []string{"blue"}), errUsage)

	require.NoError(t, a.List(ctx, []string{"skills"}))
	require.NoError(t, a.Back(ctx, nil))
	assert.Equal(t, router.Dashboard, a.router.Current().Name)
}

func TestRun_LoginThenCommands(t *testing.T) {
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSpace(fmt.Sprintln(a...)))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })

	a := newTestApp(t, "root@example.com\nlist skills\nfoo\nexit\n")
	a.Run(context.Background())

	assert.Contains(t, a.out.String(), "Welcome, Root!")
	assert.Contains(t, a.out.String(), "SQL, advanced")
	assert.Contains(t, lines, "Unknown command: foo")
	assert.Contains(t, lines, "Bye!")
}
