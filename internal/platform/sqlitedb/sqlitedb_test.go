package sqlitedb_test

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"

	"wearlog/internal/platform/sqlitedb"
)

func TestOpenAppliesMigrationsOnce(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "wearlog.db")
	db, err := sqlitedb.Open(ctx, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	var applied int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(1) FROM schema_migrations`).Scan(&applied); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if applied != 2 {
		t.Fatalf("expected 2 applied migrations, got %d", applied)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := sqlitedb.Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	if err := reopened.QueryRowContext(ctx, `SELECT COUNT(1) FROM schema_migrations`).Scan(&applied); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if applied != 2 {
		t.Fatalf("migrations must not be re-applied, got %d rows", applied)
	}
}

func TestSingleOpenSessionIndex(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db, err := sqlitedb.Open(ctx, filepath.Join(t.TempDir(), "wearlog.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	if _, err := db.ExecContext(ctx, `INSERT INTO wearing_sessions (id, started_at) VALUES ('a', '2024-01-01T08:00:00Z')`); err != nil {
		t.Fatalf("insert first open session: %v", err)
	}
	if _, err := db.ExecContext(ctx, `INSERT INTO wearing_sessions (id, started_at) VALUES ('b', '2024-01-01T09:00:00Z')`); err == nil {
		t.Fatalf("second open session must violate the unique index")
	}
}

func TestApplyMigrationsReportsBrokenSQL(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db, err := sqlitedb.Open(ctx, filepath.Join(t.TempDir(), "wearlog.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	broken := fstest.MapFS{"m/0001_broken.sql": {Data: []byte("CREATE TABLE (")}}
	if err := sqlitedb.ApplyMigrations(ctx, db, broken, "m"); err == nil {
		t.Fatalf("expected broken migration to fail")
	}
}
