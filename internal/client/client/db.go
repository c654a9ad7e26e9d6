package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/myadmin/internal/client/migrations"
	"github.com/dmitrijs2005/myadmin/internal/client/repositories/activities"
	"github.com/dmitrijs2005/myadmin/internal/client/repositories/localstore"
	"github.com/dmitrijs2005/myadmin/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// Repositories groups the local persistence the client owns.
type Repositories struct {
	Local      localstore.Repository
	Activities activities.Repository
}

func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Local:      localstore.NewSQLiteRepository(db),
		Activities: activities.NewSQLiteRepository(db),
	}
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// InitDatabase opens the SQLite file at dsn, creating its directory when
// needed, and applies the embedded migrations.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	if dsn != ":memory:" {
		if err := filex.EnsureParentDir(dsn); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection keeps a :memory: database alive across calls.
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
