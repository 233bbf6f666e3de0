package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"wearlog/internal/modules/wear/domain"
	wearout "wearlog/internal/modules/wear/port/out"
	apperrors "wearlog/internal/platform/errors"
	"wearlog/internal/platform/tx"
)

const timeLayout = time.RFC3339

// SQLiteSessionStore persists sessions in the wearing_sessions table. Times
// are stored in UTC and read back in loc.
type SQLiteSessionStore struct {
	db  *sql.DB
	loc *time.Location
}

func NewSQLiteSessionStore(db *sql.DB, loc *time.Location) wearout.SessionStore {
	if loc == nil {
		loc = time.Local
	}
	return &SQLiteSessionStore{db: db, loc: loc}
}

func (s *SQLiteSessionStore) Insert(ctx context.Context, session domain.WearingSession) error {
	const stmt = `INSERT INTO wearing_sessions (id, started_at, ended_at) VALUES (?, ?, ?)`
	_, err := tx.Executor(ctx, s.db).ExecContext(ctx, stmt, session.ID, formatTime(session.Start), formatOptional(session.End))
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (s *SQLiteSessionStore) Finish(ctx context.Context, id string, endedAt time.Time) error {
	const stmt = `UPDATE wearing_sessions SET ended_at = ? WHERE id = ? AND ended_at IS NULL`
	res, err := tx.Executor(ctx, s.db).ExecContext(ctx, stmt, formatTime(endedAt), id)
	if err != nil {
		return fmt.Errorf("finish session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish session: %w", err)
	}
	if n == 0 {
		return apperrors.ErrNoActiveSession
	}
	return nil
}

func (s *SQLiteSessionStore) LoadOpen(ctx context.Context) (domain.WearingSession, error) {
	const query = `SELECT id, started_at, ended_at FROM wearing_sessions WHERE ended_at IS NULL LIMIT 1`
	session, err := s.scan(tx.Executor(ctx, s.db).QueryRowContext(ctx, query))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.WearingSession{}, apperrors.ErrNoActiveSession
	}
	return session, err
}

func (s *SQLiteSessionStore) Latest(ctx context.Context) (domain.WearingSession, error) {
	const query = `SELECT id, started_at, ended_at FROM wearing_sessions ORDER BY started_at DESC LIMIT 1`
	session, err := s.scan(tx.Executor(ctx, s.db).QueryRowContext(ctx, query))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.WearingSession{}, apperrors.ErrNotFound
	}
	return session, err
}

func (s *SQLiteSessionStore) List(ctx context.Context) ([]domain.WearingSession, error) {
	const query = `SELECT id, started_at, ended_at FROM wearing_sessions ORDER BY started_at ASC`
	rows, err := tx.Executor(ctx, s.db).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.WearingSession
	for rows.Next() {
		session, err := s.scan(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

func (s *SQLiteSessionStore) DeleteAll(ctx context.Context) error {
	if _, err := tx.Executor(ctx, s.db).ExecContext(ctx, `DELETE FROM wearing_sessions`); err != nil {
		return fmt.Errorf("delete sessions: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (s *SQLiteSessionStore) scan(row scanner) (domain.WearingSession, error) {
	var (
		id, started string
		ended       sql.NullString
	)
	if err := row.Scan(&id, &started, &ended); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.WearingSession{}, err
		}
		return domain.WearingSession{}, fmt.Errorf("scan session: %w", err)
	}
	start, err := time.Parse(timeLayout, started)
	if err != nil {
		return domain.WearingSession{}, fmt.Errorf("parse started_at of %s: %w", id, err)
	}
	session := domain.WearingSession{ID: id, Start: start.In(s.loc)}
	if ended.Valid {
		end, err := time.Parse(timeLayout, ended.String)
		if err != nil {
			return domain.WearingSession{}, fmt.Errorf("parse ended_at of %s: %w", id, err)
		}
		end = end.In(s.loc)
		session.End = &end
	}
	return session, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func formatOptional(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}
