package domain

import "time"

// AnswerRecord accumulates everything a candidate said for one question.
// Follow-up rounds append to AnswerText rather than creating new records,
// so there is at most one record per category in a session.
type AnswerRecord struct {
	Category      QuestionCategory `json:"question_category"`
	QuestionText  string           `json:"question_text"`
	AnswerText    string           `json:"answer_text"`
	FollowUpCount int              `json:"follow_up_count"`
	IsComplete    bool             `json:"is_complete"`
	CreatedAt     time.Time        `json:"timestamp"`
}

// SessionState is the aggregate root for one interview run.
// CurrentQuestionIndex is a 0-based cursor into the catalog; it only ever
// moves forward and stays within [0, catalog size].
type SessionState struct {
	SessionID            string          `json:"session_id"`
	CurrentQuestionIndex int             `json:"current_question_index"`
	Answers              []*AnswerRecord `json:"answers"`
	IsCompleted          bool            `json:"is_completed"`
	StartedAt            time.Time       `json:"started_at"`
	CompletedAt          *time.Time      `json:"completed_at,omitempty"`
}

// NewSessionState creates a fresh session positioned at the first question.
func NewSessionState(sessionID string) *SessionState {
	return &SessionState{
		SessionID: sessionID,
		StartedAt: time.Now(),
	}
}

// AnswerFor returns the answer record for the given category, or nil if the
// category has not been answered yet.
func (s *SessionState) AnswerFor(category QuestionCategory) *AnswerRecord {
	for _, a := range s.Answers {
		if a.Category == category {
			return a
		}
	}
	return nil
}

// Complete marks the session terminal. It is a no-op if the session is
// already completed; the completion timestamp is set exactly once.
func (s *SessionState) Complete(now time.Time) {
	if s.IsCompleted {
		return
	}
	s.IsCompleted = true
	s.CompletedAt = &now
}
