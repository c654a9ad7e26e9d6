package models

import "time"

// Activity methods, as shown on the feed badge.
const (
	ActivityCreate = "POST"
	ActivityUpdate = "PUT"
	ActivityDelete = "DEL"
)

// Activity is one write performed from this client.
type Activity struct {
	ID        int64
	Method    string
	Resource  string
	Title     string
	Meta      string
	CreatedAt time.Time
}

// Credentials are the login form values. Password should be wiped after use.
type Credentials struct {
	Email    string
	Password []byte
}
