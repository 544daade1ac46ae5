// Package calendar implements the calendar effect provider on a local
// sqlite store. The stored rows are the created events themselves; callers
// surface them to whatever calendar UI sits on top.
package calendar

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS events (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	location    TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	start_at    TIMESTAMP NOT NULL,
	end_at      TIMESTAMP NOT NULL,
	created_at  TIMESTAMP NOT NULL
);`

type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (creating if needed) the event store at path. Use ":memory:"
// for an ephemeral store in tests.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open calendar store: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init calendar schema: %w", err)
	}
	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// CreateCalendarEntry implements dispatch.CalendarProvider.
func (s *Store) CreateCalendarEntry(ctx context.Context, title string, start, end time.Time, location, description string) (string, error) {
	id := uuid.New().String()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (id, title, location, description, start_at, end_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, title, location, description, start.UTC(), end.UTC(), time.Now().UTC(),
	)
	if err != nil {
		s.logger.Error("calendar.create.failed", "title", title, "error", err)
		return "", fmt.Errorf("insert event: %w", err)
	}

	s.logger.Info("calendar.create.ok", "event_id", id, "title", title, "start", start)
	return id, nil
}

// Event is one stored calendar entry.
type Event struct {
	ID          string
	Title       string
	Location    string
	Description string
	StartAt     time.Time
	EndAt       time.Time
	CreatedAt   time.Time
}

// ListEvents returns stored events ordered by start time, for export and
// inspection tooling.
func (s *Store) ListEvents(ctx context.Context) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, location, description, start_at, end_at, created_at
		 FROM events ORDER BY start_at`)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			s.logger.Warn("calendar.rows.close", "error", err)
		}
	}()

	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Location, &e.Description, &e.StartAt, &e.EndAt, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
