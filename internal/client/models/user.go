package models

import (
	"strings"
	"time"
)

// User is the signed-in profile returned by /api/me.
type User struct {
	ID        string
	Name      string
	Email     string
	Roles     []string
	CreatedAt time.Time
	Raw       Record
}

// UserFromRecord reads a profile. Roles are accepted as a list of strings,
// a list of {"name": ...} objects, or a single "role" string.
func UserFromRecord(r Record) *User {
	u := &User{
		ID:    r.ID(),
		Name:  r.String("name"),
		Email: r.String("email"),
		Raw:   r,
	}
	u.CreatedAt, _ = r.Time("created_at")

	switch roles := r["roles"].(type) {
	case []any:
		for _, item := range roles {
			switch role := item.(type) {
			case string:
				u.Roles = append(u.Roles, role)
			case map[string]any:
				if name, ok := role["name"].(string); ok {
					u.Roles = append(u.Roles, name)
				}
			}
		}
	case string:
		u.Roles = append(u.Roles, roles)
	}
	if role, ok := r["role"].(string); ok && role != "" {
		u.Roles = append(u.Roles, role)
	}
	return u
}

// HasRole matches case-insensitively.
func (u *User) HasRole(role string) bool {
	if u == nil {
		return false
	}
	for _, r := range u.Roles {
		if strings.EqualFold(r, role) {
			return true
		}
	}
	return false
}

// DisplayName prefers the name and falls back to the email.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
