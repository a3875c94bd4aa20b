package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ashureev/vocalhire/internal/domain"
	"github.com/ashureev/vocalhire/internal/shared"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Repository using SQLite.
type SQLiteStore struct {
	db        *sql.DB
	sessionMu sync.Mutex // serialize snapshot writes to avoid SQLITE_BUSY
}

// NewSQLite creates a new SQLite-backed repository.
func NewSQLite(dbPath string) (Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// Open database with WAL mode for better concurrency.
	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS interview_sessions (
		session_id TEXT PRIMARY KEY,
		state_json TEXT NOT NULL,
		feedback_json TEXT,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_interview_sessions_updated ON interview_sessions(updated_at);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// SaveSession inserts or replaces the snapshot for its session id.
func (s *SQLiteStore) SaveSession(ctx context.Context, snapshot *domain.Snapshot) error {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()

	stateJSON, err := json.Marshal(snapshot.State)
	if err != nil {
		return fmt.Errorf("marshal session state: %w", err)
	}

	var feedbackJSON any
	if snapshot.Feedback != nil {
		data, err := json.Marshal(snapshot.Feedback)
		if err != nil {
			return fmt.Errorf("marshal feedback: %w", err)
		}
		feedbackJSON = string(data)
	}

	now := time.Now()
	snapshot.UpdatedAt = now
	if snapshot.CreatedAt.IsZero() {
		snapshot.CreatedAt = now
	}

	query := `
	INSERT INTO interview_sessions (session_id, state_json, feedback_json, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(session_id) DO UPDATE SET
		state_json = excluded.state_json,
		feedback_json = excluded.feedback_json,
		updated_at = excluded.updated_at`

	_, err = s.db.ExecContext(ctx, query,
		snapshot.SessionID, string(stateJSON), feedbackJSON,
		snapshot.CreatedAt.Unix(), snapshot.UpdatedAt.Unix(),
	)
	if shared.IsSQLiteConflictError(err) {
		// One retry after SQLITE_BUSY; the busy_timeout pragma already
		// waited, so a second attempt usually succeeds.
		slog.Warn("sqlite busy during snapshot save, retrying", "session_id", snapshot.SessionID)
		_, err = s.db.ExecContext(ctx, query,
			snapshot.SessionID, string(stateJSON), feedbackJSON,
			snapshot.CreatedAt.Unix(), snapshot.UpdatedAt.Unix(),
		)
	}
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// LoadSession retrieves a snapshot by session id.
func (s *SQLiteStore) LoadSession(ctx context.Context, sessionID string) (*domain.Snapshot, error) {
	query := `
		SELECT session_id, state_json, feedback_json, created_at, updated_at
		FROM interview_sessions WHERE session_id = ?`

	row := s.db.QueryRowContext(ctx, query, sessionID)

	var snapshot domain.Snapshot
	var stateJSON string
	var feedbackJSON sql.NullString
	var createdAt, updatedAt int64

	err := row.Scan(&snapshot.SessionID, &stateJSON, &feedbackJSON, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan session row: %w", err)
	}

	snapshot.State = &domain.SessionState{}
	if err := json.Unmarshal([]byte(stateJSON), snapshot.State); err != nil {
		return nil, fmt.Errorf("unmarshal session state: %w", err)
	}
	if feedbackJSON.Valid && feedbackJSON.String != "" {
		snapshot.Feedback = &domain.Feedback{}
		if err := json.Unmarshal([]byte(feedbackJSON.String), snapshot.Feedback); err != nil {
			return nil, fmt.Errorf("unmarshal feedback: %w", err)
		}
	}
	snapshot.CreatedAt = time.Unix(createdAt, 0)
	snapshot.UpdatedAt = time.Unix(updatedAt, 0)

	return &snapshot, nil
}

// DeleteSession removes a stored session.
func (s *SQLiteStore) DeleteSession(ctx context.Context, sessionID string) error {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM interview_sessions WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// ListSessions returns all stored session ids, most recent first.
func (s *SQLiteStore) ListSessions(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT session_id FROM interview_sessions ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close session rows", "error", closeErr)
		}
	}()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan session id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}

	return ids, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}
