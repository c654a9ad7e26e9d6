// Package client contains the transport layer of the myadmin dashboard.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) that the
//     stores use to call the admin REST API.
//  2. A concrete HTTP implementation (see HTTPClient) that attaches the
//     bearer token to every request, stamps a request id, optionally rate
//     limits, and reacts to 401 responses by clearing the session and
//     sending the navigator to the login page.
//  3. Helpers for the API's envelopes (ExtractList, ExtractObject,
//     ExtractPagination) and its assorted error shapes (NormalizeMessage).
//  4. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database with embedded goose migrations.
//
// # Error Handling
//
// Every response with status >= 400 becomes an *APIError whose message is
// the normalized server message. It unwraps to one of the sentinels
// ErrUnauthorized, ErrForbidden, ErrNotFound, ErrValidation or
// ErrUnavailable, so callers can match with errors.Is. Transport failures
// wrap ErrUnavailable.
//
// # Concurrency
//
// HTTPClient is safe for concurrent use. The token is read from the
// TokenSource on every request.
package client
