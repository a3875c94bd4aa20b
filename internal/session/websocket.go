package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/ashureev/vocalhire/internal/domain"
	"github.com/ashureev/vocalhire/internal/feedback"
	"github.com/ashureev/vocalhire/internal/interview"
	"github.com/ashureev/vocalhire/internal/store"
)

// maxAnswerLength caps a single answer submission. Longer input is
// rejected at the boundary before it reaches the controller.
const maxAnswerLength = 2000

// WebSocketHandler runs one full interview conversation per connection.
type WebSocketHandler struct {
	repo          store.Repository
	controller    *interview.Controller
	compiler      feedback.Compiler
	manager       *Manager
	allowedOrigin string
	isDev         bool
}

// NewWebSocketHandler creates a new WebSocket handler.
func NewWebSocketHandler(repo store.Repository, controller *interview.Controller, compiler feedback.Compiler, manager *Manager, allowedOrigin string, isDev bool) *WebSocketHandler {
	return &WebSocketHandler{
		repo:          repo,
		controller:    controller,
		compiler:      compiler,
		manager:       manager,
		allowedOrigin: allowedOrigin,
		isDev:         isDev,
	}
}

// inboundMessage is the client-to-server wire format. Clients may also
// send a bare string payload, which is treated as answer text.
type inboundMessage struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// ServeHTTP implements http.Handler for WebSocket upgrade.
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !h.checkOrigin(r) {
		http.Error(w, "origin not allowed", http.StatusForbidden)
		return
	}

	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		slog.Error("Failed to accept WebSocket", "error", err, "ip", r.RemoteAddr)
		return
	}

	sessionID := uuid.NewString()
	slog.Info("Interview session started", "session_id", sessionID, "ip", r.RemoteAddr)

	defer func() {
		if closeErr := ws.Close(websocket.StatusNormalClosure, "session ended"); closeErr != nil {
			slog.Debug("Failed to close websocket", "error", closeErr, "session_id", sessionID)
		}
	}()

	h.manager.Register(sessionID, ws)
	defer h.manager.Unregister(sessionID, ws)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	h.run(ctx, ws, sessionID)
	slog.Info("Interview session ended", "session_id", sessionID)
}

// run drives the conversation loop until the interview completes or the
// client disconnects. Turns are strictly sequential: the next answer is
// not read until the previous turn, including its oracle and storage
// calls, has finished.
func (h *WebSocketHandler) run(ctx context.Context, ws *websocket.Conn, sessionID string) {
	state := domain.NewSessionState(sessionID)
	snapshot := &domain.Snapshot{SessionID: sessionID, State: state}
	h.saveSnapshot(ctx, ws, snapshot)

	start := domain.NewMessage(domain.MessageSessionStart, sessionID, sessionID)
	start.Metadata = map[string]any{"message": "Session initialized"}
	if err := h.writeMessage(ctx, ws, start); err != nil {
		return
	}

	greeting := domain.NewMessage(domain.MessageQuestion, sessionID, h.controller.Greeting())
	greeting.Metadata = map[string]any{"is_greeting": true}
	if err := h.writeMessage(ctx, ws, greeting); err != nil {
		return
	}

	if question, ok := h.controller.CurrentQuestion(state); ok {
		msg := domain.NewMessage(domain.MessageQuestion, sessionID, question.Prompt)
		msg.Metadata = map[string]any{
			"category": string(question.Category),
			"progress": h.controller.Progress(state),
		}
		if err := h.writeMessage(ctx, ws, msg); err != nil {
			return
		}
	}

	for {
		answerText, err := h.readAnswer(ctx, ws)
		if err != nil {
			if websocket.CloseStatus(err) != -1 || errors.Is(err, context.Canceled) {
				slog.Info("Client disconnected", "session_id", sessionID)
			} else {
				slog.Warn("WebSocket read failed", "session_id", sessionID, "error", err)
			}
			return
		}

		if strings.TrimSpace(answerText) == "" {
			h.sendError(ctx, ws, sessionID, "I didn't catch that. Could you please repeat your answer?")
			continue
		}
		if len(answerText) > maxAnswerLength {
			h.sendError(ctx, ws, sessionID,
				fmt.Sprintf("Your answer is too long. Please keep it under %d characters.", maxAnswerLength))
			continue
		}

		action, err := h.controller.HandleAnswer(ctx, state, answerText)
		if errors.Is(err, interview.ErrSessionCompleted) {
			slog.Warn("Answer received after completion, rejecting", "session_id", sessionID)
			h.sendError(ctx, ws, sessionID, "This interview has already finished.")
			continue
		}
		if err != nil {
			slog.Error("Turn failed", "session_id", sessionID, "error", err)
			h.sendError(ctx, ws, sessionID, "Something went wrong. Could you please repeat your answer?")
			continue
		}

		h.saveSnapshot(ctx, ws, snapshot)

		switch interview.Route(action) {
		case "ask_next":
			msg := domain.NewMessage(domain.MessageQuestion, sessionID, action.Message)
			msg.Metadata = map[string]any{
				"category": string(action.Category),
				"progress": h.controller.Progress(state),
			}
			if err := h.writeMessage(ctx, ws, msg); err != nil {
				return
			}

		case "follow_up":
			msg := domain.NewMessage(domain.MessageQuestion, sessionID, action.Message)
			msg.Metadata = map[string]any{
				"is_follow_up": true,
				"category":     string(action.Category),
				"progress":     h.controller.Progress(state),
			}
			if err := h.writeMessage(ctx, ws, msg); err != nil {
				return
			}

		case "finalize":
			h.finalize(ctx, ws, snapshot)
			return
		}
	}
}

// finalize compiles feedback (substituting the deterministic fallback on
// failure), persists the final snapshot, and closes out the conversation.
func (h *WebSocketHandler) finalize(ctx context.Context, ws *websocket.Conn, snapshot *domain.Snapshot) {
	sessionID := snapshot.SessionID
	slog.Info("Generating feedback", "session_id", sessionID)

	status := domain.NewMessage(domain.MessageStatus, sessionID, "Generating your personalized feedback...")
	if err := h.writeMessage(ctx, ws, status); err != nil {
		return
	}

	fb, err := h.compiler.Compile(ctx, sessionID, snapshot.State.Answers)
	if err != nil {
		slog.Warn("Feedback compilation failed, using fallback", "session_id", sessionID, "error", err)
		fb = feedback.Fallback(sessionID, snapshot.State.Answers)
	}

	snapshot.Feedback = fb
	h.saveSnapshot(ctx, ws, snapshot)

	msg := domain.NewMessage(domain.MessageFeedback, sessionID, feedback.FormatMessage(fb))
	msg.Metadata = map[string]any{"feedback": fb}
	if err := h.writeMessage(ctx, ws, msg); err != nil {
		return
	}

	end := domain.NewMessage(domain.MessageSessionEnd, sessionID, "Interview completed successfully!")
	if err := h.writeMessage(ctx, ws, end); err != nil {
		return
	}

	slog.Info("Interview completed", "session_id", sessionID)
}

// readAnswer reads the next client message and extracts its answer text.
func (h *WebSocketHandler) readAnswer(ctx context.Context, ws *websocket.Conn) (string, error) {
	_, data, err := ws.Read(ctx)
	if err != nil {
		return "", err
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var inbound inboundMessage
		if err := json.Unmarshal(trimmed, &inbound); err == nil {
			return inbound.Content, nil
		}
	}
	var plain string
	if err := json.Unmarshal(trimmed, &plain); err == nil {
		return plain, nil
	}
	return string(data), nil
}

// saveSnapshot persists the session. Persistence failure is surfaced as
// a status warning; the in-memory state stays authoritative and the
// interview continues.
func (h *WebSocketHandler) saveSnapshot(ctx context.Context, ws *websocket.Conn, snapshot *domain.Snapshot) {
	if err := h.repo.SaveSession(ctx, snapshot); err != nil {
		slog.Error("Failed to save session", "session_id", snapshot.SessionID, "error", err)
		status := domain.NewMessage(domain.MessageStatus, snapshot.SessionID,
			"Having trouble saving your progress. The interview will continue.")
		if writeErr := h.writeMessage(ctx, ws, status); writeErr != nil {
			slog.Debug("Failed to send storage warning", "session_id", snapshot.SessionID, "error", writeErr)
		}
	}
}

func (h *WebSocketHandler) sendError(ctx context.Context, ws *websocket.Conn, sessionID, content string) {
	msg := domain.NewMessage(domain.MessageError, sessionID, content)
	if err := h.writeMessage(ctx, ws, msg); err != nil {
		slog.Debug("Failed to send error message", "session_id", sessionID, "error", err)
	}
}

func (h *WebSocketHandler) writeMessage(ctx context.Context, ws *websocket.Conn, msg domain.Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	writeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := ws.Write(writeCtx, websocket.MessageText, data); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	return nil
}

func (h *WebSocketHandler) checkOrigin(r *http.Request) bool {
	if h.isDev {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" || h.allowedOrigin == "*" {
		return true
	}
	if origin == h.allowedOrigin {
		return true
	}
	slog.Warn("WebSocket origin rejected", "origin", origin, "allowed", h.allowedOrigin)
	return false
}
