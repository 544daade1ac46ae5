// Package todo implements the todo/reminder effect provider on a local
// sqlite store.
package todo

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
CREATE TABLE IF NOT EXISTS todos (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	content    TEXT NOT NULL DEFAULT '',
	done       INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMP NOT NULL
);`

type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (creating if needed) the todo store at path.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open todo store: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init todo schema: %w", err)
	}
	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// CreateTodo implements dispatch.TodoProvider.
func (s *Store) CreateTodo(ctx context.Context, title, content string) (bool, error) {
	id := uuid.New().String()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO todos (id, title, content, created_at) VALUES (?, ?, ?, ?)`,
		id, title, content, time.Now().UTC(),
	)
	if err != nil {
		s.logger.Error("todo.create.failed", "title", title, "error", err)
		return false, fmt.Errorf("insert todo: %w", err)
	}

	s.logger.Info("todo.create.ok", "todo_id", id, "title", title)
	return true, nil
}

// Item is one stored todo.
type Item struct {
	ID        string
	Title     string
	Content   string
	Done      bool
	CreatedAt time.Time
}

// ListTodos returns stored todos, newest first.
func (s *Store) ListTodos(ctx context.Context) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, content, done, created_at FROM todos ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query todos: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			s.logger.Warn("todo.rows.close", "error", err)
		}
	}()

	var out []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Title, &it.Content, &it.Done, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
