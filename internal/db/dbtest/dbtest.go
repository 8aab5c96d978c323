// Package dbtest provides a migrated SQLite database for tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/fyzahq/fyza/internal/db"
)

// New opens a fresh SQLite database in a temporary directory and applies
// every migration. The database is closed when the test completes.
func New(t testing.TB) *sqlx.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "fyza.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

	database, err := db.Init(context.Background(), db.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	if err := db.RunMigrations(context.Background(), database.DB, db.DriverSQLite); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return database
}
