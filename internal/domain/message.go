package domain

import "time"

// MessageType categorizes messages exchanged over the interview WebSocket.
type MessageType string

const (
	// MessageQuestion is the bot asking a question (or a follow-up).
	MessageQuestion MessageType = "question"
	// MessageAnswer is the candidate submitting an answer.
	MessageAnswer MessageType = "answer"
	// MessageFeedback carries the final structured feedback.
	MessageFeedback MessageType = "feedback"
	// MessageError is a user-facing corrective prompt.
	MessageError MessageType = "error"
	// MessageStatus is a progress update while the bot is working.
	MessageStatus MessageType = "status"
	// MessageSessionStart announces a newly initialized session.
	MessageSessionStart MessageType = "session_start"
	// MessageSessionEnd announces session completion.
	MessageSessionEnd MessageType = "session_end"
)

// Message is the WebSocket wire format shared by client and server.
type Message struct {
	Type      MessageType    `json:"type"`
	Content   string         `json:"content"`
	SessionID string         `json:"session_id,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// NewMessage builds an outbound message stamped with the current time.
func NewMessage(t MessageType, sessionID, content string) Message {
	return Message{
		Type:      t,
		Content:   content,
		SessionID: sessionID,
		Timestamp: time.Now(),
	}
}
