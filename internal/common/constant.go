// Package common contains constants and sentinel errors shared by the
// myadmin client packages.
package common

// AppTitle is the suffix appended to every window title.
const AppTitle = "My Admin"

// HTTP headers set on outbound API requests.
const (
	AuthorizationHeader = "Authorization"
	RequestIDHeader     = "X-Request-ID"
)

// Well-known navigation paths.
const (
	LoginPath     = "/login"
	DashboardPath = "/"
)

// Local storage keys.
const (
	TokenKey         = "token"
	ThemeKey         = "theme"
	LastLoginKey     = "last_login_at"
	PreviousLoginKey = "previous_login_at"
)

// DefaultRequiredRole is the role a profile must carry to use the dashboard.
const DefaultRequiredRole = "admin"
