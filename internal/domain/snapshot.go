package domain

import "time"

// Snapshot is the full persisted form of a session: state plus the final
// feedback once it exists. One snapshot per session, last write wins.
type Snapshot struct {
	SessionID string        `json:"session_id"`
	State     *SessionState `json:"state"`
	Feedback  *Feedback     `json:"feedback,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
