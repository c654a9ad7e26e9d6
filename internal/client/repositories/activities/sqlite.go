package activities

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/myadmin/internal/client/models"
	"github.com/dmitrijs2005/myadmin/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Insert(ctx context.Context, a models.Activity) (int64, error) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO activities (method, resource, title, meta, created_at) VALUES (?, ?, ?, ?, ?)`,
		a.Method, a.Resource, a.Title, a.Meta, a.CreatedAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to insert activity: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get activity id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) Recent(ctx context.Context, limit int) ([]models.Activity, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, method, resource, title, meta, created_at FROM activities ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select activities: %w", err)
	}
	defer rows.Close()

	result := make([]models.Activity, 0, limit)
	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(&a.ID, &a.Method, &a.Resource, &a.Title, &a.Meta, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activities: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Prune(ctx context.Context, keep int) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM activities WHERE id NOT IN (SELECT id FROM activities ORDER BY created_at DESC, id DESC LIMIT ?)`, keep)
	if err != nil {
		return fmt.Errorf("failed to prune activities: %w", err)
	}
	return nil
}
