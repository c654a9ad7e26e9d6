// Package router is the navigation layer of the dashboard: the route
// table, the history that owns the current location, and the guard run
// before every navigation.
package router

import (
	"strings"

	"github.com/dmitrijs2005/myadmin/internal/common"
)

// Route names.
const (
	Dashboard = "dashboard"
	Analytics = "analytics.index"
	Skill     = "skill.index"
	School    = "school.index"
	Degree    = "degree.index"
	Subject   = "subject.index"
	Category  = "category.index"
	User      = "user.index"
	Profile   = "profile.index"
	Login     = "login"
	NotFound  = "page.404"
)

type Route struct {
	Name  string
	Path  string
	Title string
}

// WindowTitle is "<Title> - My Admin", or just the app title for untitled
// routes.
func (r Route) WindowTitle() string {
	if r.Title == "" {
		return common.AppTitle
	}
	return r.Title + " - " + common.AppTitle
}

var routes = []Route{
	{Name: Dashboard, Path: common.DashboardPath, Title: "Dashboard"},
	{Name: Analytics, Path: "/analytics", Title: "Analytics"},
	{Name: Skill, Path: "/skill", Title: "Skill List"},
	{Name: School, Path: "/school", Title: "School List"},
	{Name: Degree, Path: "/degree", Title: "Degree List"},
	{Name: Subject, Path: "/subject", Title: "Subject List"},
	{Name: Category, Path: "/category", Title: "Category List"},
	{Name: User, Path: "/user", Title: "User List"},
	{Name: Profile, Path: "/profile", Title: "Profile"},
	{Name: Login, Path: common.LoginPath},
	{Name: NotFound, Path: "/404", Title: "404 Not Found"},
}

// Routes returns the route table.
func Routes() []Route {
	return append([]Route(nil), routes...)
}

// ByName panics on unknown names; names are constants of this package.
func ByName(name string) Route {
	for _, r := range routes {
		if r.Name == name {
			return r
		}
	}
	panic("router: unknown route " + name)
}

// Match resolves a path. Unknown paths resolve to the 404 route, keeping
// the requested path.
func Match(path string) Route {
	p := "/" + strings.Trim(strings.TrimSpace(path), "/")
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	for _, r := range routes {
		if r.Path == p && r.Name != NotFound {
			return r
		}
	}
	nf := ByName(NotFound)
	nf.Path = p
	return nf
}
