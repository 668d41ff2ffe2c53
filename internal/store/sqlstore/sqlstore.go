// Package sqlstore provides a SQLite-backed todo store.
package sqlstore

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/idilsaglam/todoprompt/internal/logging"
	"github.com/idilsaglam/todoprompt/internal/model"
	"github.com/idilsaglam/todoprompt/internal/store"
)

//go:embed schema.sql
var schemaSQL string

// Store persists todos in a single SQLite table, one row per todo.
type Store struct {
	sqlDB  *sql.DB
	logger *log.Logger
}

// Open opens the database at path and creates the todos table if needed.
func Open(path string, logger *log.Logger) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if logger == nil {
		logger = logging.Discard()
	}
	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schemaSQL); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	logger.Debug("sqlite store opened", "path", cleanPath)
	return &Store{sqlDB: sqlDB, logger: logger}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// List returns every todo in insertion order.
func (s *Store) List(ctx context.Context) (model.List, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT id, message, done FROM todos ORDER BY rowid`)
	if err != nil {
		return nil, &store.BackendError{Op: "list todos", Err: err}
	}
	defer rows.Close()

	list := model.List{}
	for rows.Next() {
		var (
			rawID string
			todo  model.Todo
		)
		if err := rows.Scan(&rawID, &todo.Message, &todo.Done); err != nil {
			return nil, &store.BackendError{Op: "scan todo", Err: err}
		}
		id, err := uuid.Parse(rawID)
		if err != nil {
			return nil, fmt.Errorf("todo %q: %w: %w", rawID, store.ErrMalformedRecord, err)
		}
		todo.ID = id
		list = append(list, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, &store.BackendError{Op: "list todos", Err: err}
	}
	return list, nil
}

// Add inserts one todo row.
func (s *Store) Add(ctx context.Context, todo model.Todo) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO todos (id, message, done) VALUES (?, ?, ?)`,
		todo.ID.String(), todo.Message, todo.Done,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", store.ErrDuplicateID, todo.ID)
		}
		return &store.BackendError{Op: "add todo", Write: true, Err: err}
	}
	s.logger.Debug("add", "id", todo.ID)
	return nil
}

// Remove deletes the row with the given id.
func (s *Store) Remove(ctx context.Context, id uuid.UUID) (int64, error) {
	return s.exec(ctx, "remove todo", `DELETE FROM todos WHERE id = ?`, id.String())
}

// MarkDone sets done on the row with the given id. The update is
// unconditional, so a todo that is already done still counts as modified.
func (s *Store) MarkDone(ctx context.Context, id uuid.UUID) (int64, error) {
	return s.exec(ctx, "mark todo done", `UPDATE todos SET done = true WHERE id = ?`, id.String())
}

// Clear deletes every row.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.exec(ctx, "clear todos", `DELETE FROM todos`)
	return err
}

func (s *Store) exec(ctx context.Context, op, query string, args ...any) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	res, err := s.sqlDB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, &store.BackendError{Op: op, Write: true, Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, &store.BackendError{Op: op, Write: true, Err: err}
	}
	s.logger.Debug(op, "modified", n)
	return n, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

var _ store.Store = (*Store)(nil)
