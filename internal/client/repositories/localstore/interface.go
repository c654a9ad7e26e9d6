// Package localstore is the client's "local storage": a string key/value
// table in the local SQLite database holding the auth token, the theme flag
// and the last-login timestamps.
package localstore

import "context"

// Repository reads and writes local storage entries.
//
// Get returns common.ErrorNotFound when the key is absent. Delete of a
// missing key is not an error.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
}
