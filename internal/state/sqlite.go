// Package state keeps a transcript of evaluated SHJI inputs in SQLite.
//
// Every REPL or run invocation opens a session; each unit of input evaluated
// within it is appended as an evaluation row together with its rendered
// result or error message.
package state

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver (pure Go)
)

// Session is one host invocation that recorded evaluations.
type Session struct {
	ID        string
	Source    string
	StartedAt time.Time
}

// Evaluation is a single recorded unit of input.
type Evaluation struct {
	ID        int64
	SessionID string
	Input     string
	Output    string
	Error     string
	CreatedAt time.Time
}

// Failed reports whether the evaluation ended in an error.
func (e *Evaluation) Failed() bool {
	return e.Error != ""
}

// Store records and lists transcript entries.
type Store interface {
	StartSession(ctx context.Context, source string) (*Session, error)
	RecordEvaluation(ctx context.Context, e *Evaluation) error
	ListEvaluations(ctx context.Context, limit int) ([]*Evaluation, error)
	Close() error
}

var _ Store = (*SQLiteStore)(nil)

// SQLiteStore implements Store on top of database/sql.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// NewSQLiteStore creates a store. A nil logger discards output.
func NewSQLiteStore(logger *slog.Logger) *SQLiteStore {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &SQLiteStore{logger: logger}
}

// NewWithDB wraps an existing connection, mainly for tests.
func NewWithDB(db *sql.DB, logger *slog.Logger) *SQLiteStore {
	s := NewSQLiteStore(logger)
	s.db = db
	return s
}

// Open opens a connection to the SQLite database at path.
// Use ":memory:" for an in-memory database.
func (s *SQLiteStore) Open(path string) error {
	dsn := path + "?_pragma=foreign_keys(1)"
	if path != ":memory:" {
		dsn += "&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	// A single connection keeps an in-memory database alive and shared.
	db.SetMaxOpenConns(1)

	s.db = db
	s.path = path
	s.logger.Debug("transcript opened", slog.String("path", path))
	return nil
}

// Path returns the path the store was opened with.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close closes the SQLite database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// StartSession inserts a new session row identified by a random UUID.
func (s *SQLiteStore) StartSession(ctx context.Context, source string) (*Session, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	sess := &Session{
		ID:        generateID(),
		Source:    source,
		StartedAt: time.Now().UTC(),
	}

	s.logger.Debug("starting session", slog.String("id", sess.ID), slog.String("source", source))

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, source, started_at) VALUES (?, ?, ?)`,
		sess.ID, sess.Source, sess.StartedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	return sess, nil
}

// RecordEvaluation appends e to the transcript and fills in its ID and timestamp.
func (s *SQLiteStore) RecordEvaluation(ctx context.Context, e *Evaluation) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	if e.SessionID == "" {
		return fmt.Errorf("evaluation has no session")
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO evaluations (session_id, input, output, error, created_at) VALUES (?, ?, ?, ?, ?)`,
		e.SessionID, e.Input, e.Output, e.Error, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record evaluation: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read evaluation id: %w", err)
	}
	e.ID = id

	s.logger.Debug("recorded evaluation",
		slog.String("session", e.SessionID),
		slog.Int64("id", id),
		slog.Bool("failed", e.Failed()))
	return nil
}

// ListEvaluations returns the most recent evaluations, newest first.
// A non-positive limit returns all of them.
func (s *SQLiteStore) ListEvaluations(ctx context.Context, limit int) ([]*Evaluation, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, input, output, error, created_at
		   FROM evaluations
		  ORDER BY id DESC
		  LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*Evaluation
	for rows.Next() {
		e := &Evaluation{}
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Input, &e.Output, &e.Error, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan evaluation: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate evaluations: %w", err)
	}
	return out, nil
}

// generateID creates a new UUID.
func generateID() string {
	return uuid.New().String()
}
