// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"

	"github.com/ashureev/vocalhire/internal/domain"
)

// Repository defines the interface for persisting interview sessions.
// One snapshot per session id, last write wins, no versioning.
type Repository interface {
	// SaveSession inserts or replaces the snapshot for its session id.
	SaveSession(ctx context.Context, snapshot *domain.Snapshot) error

	// LoadSession retrieves a snapshot by session id. Returns (nil, nil)
	// when the session does not exist.
	LoadSession(ctx context.Context, sessionID string) (*domain.Snapshot, error)

	// DeleteSession removes a stored session.
	DeleteSession(ctx context.Context, sessionID string) error

	// ListSessions returns all stored session ids, most recent first.
	ListSessions(ctx context.Context) ([]string, error)

	// Ping verifies database connectivity and returns an error if the
	// database is unreachable.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}
