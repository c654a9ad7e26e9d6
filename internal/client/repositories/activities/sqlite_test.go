package activities

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/myadmin/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE activities (
  id         INTEGER PRIMARY KEY AUTOINCREMENT,
  method     TEXT NOT NULL,
  resource   TEXT NOT NULL,
  title      TEXT NOT NULL,
  meta       TEXT NOT NULL DEFAULT '',
  created_at TIMESTAMP NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func TestInsertAndRecent_NewestFirst(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	base := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

	for i, title := range []string{"New skill added", "School updated", "Degree deleted"} {
		_, err := r.Insert(ctx, models.Activity{
			Method:    models.ActivityCreate,
			Resource:  "skills",
			Title:     title,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	got, err := r.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Degree deleted", got[0].Title)
	assert.Equal(t, "School updated", got[1].Title)
	assert.True(t, got[0].CreatedAt.Equal(base.Add(2*time.Minute)))
}

func TestPrune_KeepsNewest(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	base := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		_, err := r.Insert(ctx, models.Activity{Method: "PUT", Resource: "schools", Title: "x", CreatedAt: base.Add(time.Duration(i) * time.Second)})
		require.NoError(t, err)
	}
	require.NoError(t, r.Prune(ctx, 3))

	got, err := r.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestInsert_DefaultsCreatedAt(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	id, err := r.Insert(ctx, models.Activity{Method: "DEL", Resource: "degrees", Title: "Degree deleted"})
	require.NoError(t, err)
	assert.Positive(t, id)

	got, err := r.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.False(t, got[0].CreatedAt.IsZero())
}

func TestInsert_ErrorWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO activities`).WillReturnError(errors.New("readonly"))

	_, err = NewSQLiteRepository(db).Insert(context.Background(), models.Activity{Method: "POST"})
	require.ErrorContains(t, err, "failed to insert activity: readonly")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecent_ErrorWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, method`).WillReturnError(errors.New("gone"))

	_, err = NewSQLiteRepository(db).Recent(context.Background(), 5)
	require.ErrorContains(t, err, "failed to select activities: gone")
}
