// Package activities persists the local log of writes performed from this
// client. The dashboard's "recent activity" feed reads it.
package activities

import (
	"context"

	"github.com/dmitrijs2005/myadmin/internal/client/models"
)

type Repository interface {
	// Insert stores a and returns its id.
	Insert(ctx context.Context, a models.Activity) (int64, error)

	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]models.Activity, error)

	// Prune keeps only the newest keep entries.
	Prune(ctx context.Context, keep int) error
}
