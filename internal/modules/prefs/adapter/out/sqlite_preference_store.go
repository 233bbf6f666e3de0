package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	prefsout "wearlog/internal/modules/prefs/port/out"
	apperrors "wearlog/internal/platform/errors"
	"wearlog/internal/platform/tx"
)

type SQLitePreferenceStore struct {
	db *sql.DB
}

func NewSQLitePreferenceStore(db *sql.DB) prefsout.PreferenceStore {
	return &SQLitePreferenceStore{db: db}
}

func (s *SQLitePreferenceStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := tx.Executor(ctx, s.db).QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperrors.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get preference %s: %w", key, err)
	}
	return value, nil
}

func (s *SQLitePreferenceStore) Put(ctx context.Context, key, value string, at time.Time) error {
	const stmt = `
INSERT INTO preferences (key, value, updated_at)
VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET
  value=excluded.value,
  updated_at=excluded.updated_at;
`
	if _, err := tx.Executor(ctx, s.db).ExecContext(ctx, stmt, key, value, at.UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("put preference %s: %w", key, err)
	}
	return nil
}

func (s *SQLitePreferenceStore) DeleteAll(ctx context.Context) error {
	if _, err := tx.Executor(ctx, s.db).ExecContext(ctx, `DELETE FROM preferences`); err != nil {
		return fmt.Errorf("delete preferences: %w", err)
	}
	return nil
}
