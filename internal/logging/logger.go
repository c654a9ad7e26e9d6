// Package logging defines the structured-logging interface used across
// myadmin together with slog and zerolog backed implementations.
package logging

import "context"

// Logger writes leveled records. Trailing args are alternating keys and
// values:
//
//	log.Error(ctx, "fetch failed", "resource", "skills", "err", err)
//
// Pairs attached to ctx with ContextWith are logged ahead of args.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a Logger that adds args to each record.
	With(args ...any) Logger
}
