package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"

	"github.com/ashureev/vocalhire/internal/catalog"
	"github.com/ashureev/vocalhire/internal/domain"
	"github.com/ashureev/vocalhire/internal/interview"
	"github.com/ashureev/vocalhire/internal/oracle"
	"github.com/ashureev/vocalhire/internal/store"
)

// failingCompiler always errors, forcing the deterministic fallback path.
type failingCompiler struct{}

func (failingCompiler) Compile(context.Context, string, []*domain.AnswerRecord) (*domain.Feedback, error) {
	return nil, errors.New("feedback model unavailable")
}

// scriptedOracle judges the very first submission incomplete and
// everything after it complete.
type scriptedOracle struct {
	calls int
}

func (s *scriptedOracle) Validate(context.Context, string, string, []string) (oracle.Verdict, error) {
	s.calls++
	if s.calls == 1 {
		return oracle.Verdict{IsComplete: false, FollowUp: "Which institute did you attend?"}, nil
	}
	return oracle.Verdict{IsComplete: true}, nil
}

func newTestServer(t *testing.T) (*httptest.Server, store.Repository) {
	t.Helper()

	repo, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	ctrl := interview.NewController(catalog.New(), &scriptedOracle{})
	handler := NewWebSocketHandler(repo, ctrl, failingCompiler{}, NewManager(), "*", true)

	r := chi.NewRouter()
	r.Get("/ws/interview", handler.ServeHTTP)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, repo
}

func dial(t *testing.T, ctx context.Context, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/interview"
	conn, resp, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	t.Cleanup(func() { _ = conn.Close(websocket.StatusNormalClosure, "test done") })
	return conn
}

func readMessage(t *testing.T, ctx context.Context, conn *websocket.Conn) domain.Message {
	t.Helper()
	_, data, err := conn.Read(ctx)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	var msg domain.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("unmarshal message: %v", err)
	}
	return msg
}

func sendAnswer(t *testing.T, ctx context.Context, conn *websocket.Conn, text string) {
	t.Helper()
	payload, err := json.Marshal(map[string]string{"type": "answer", "content": text})
	if err != nil {
		t.Fatal(err)
	}
	if err := conn.Write(ctx, websocket.MessageText, payload); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

func TestFullInterviewOverWebSocket(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	srv, repo := newTestServer(t)
	conn := dial(t, ctx, srv)

	start := readMessage(t, ctx, conn)
	if start.Type != domain.MessageSessionStart {
		t.Fatalf("expected session_start, got %s", start.Type)
	}
	sessionID := start.SessionID
	if sessionID == "" {
		t.Fatal("session_start must carry a session id")
	}

	greeting := readMessage(t, ctx, conn)
	if greeting.Type != domain.MessageQuestion || greeting.Metadata["is_greeting"] != true {
		t.Fatalf("expected greeting, got %+v", greeting)
	}

	first := readMessage(t, ctx, conn)
	if first.Type != domain.MessageQuestion {
		t.Fatalf("expected first question, got %s", first.Type)
	}
	if first.Metadata["progress"] != "Question 1 of 8" {
		t.Errorf("unexpected progress: %v", first.Metadata["progress"])
	}

	// Empty submission is rejected at the boundary without advancing.
	sendAnswer(t, ctx, conn, "   ")
	if msg := readMessage(t, ctx, conn); msg.Type != domain.MessageError {
		t.Fatalf("expected error for empty answer, got %s", msg.Type)
	}

	// Oversized submission is rejected the same way.
	sendAnswer(t, ctx, conn, strings.Repeat("x", maxAnswerLength+1))
	if msg := readMessage(t, ctx, conn); msg.Type != domain.MessageError {
		t.Fatalf("expected error for long answer, got %s", msg.Type)
	}

	// First real answer is judged incomplete once.
	sendAnswer(t, ctx, conn, "My name is Asha.")
	followUp := readMessage(t, ctx, conn)
	if followUp.Type != domain.MessageQuestion || followUp.Metadata["is_follow_up"] != true {
		t.Fatalf("expected follow-up, got %+v", followUp)
	}
	if followUp.Content != "Which institute did you attend?" {
		t.Errorf("unexpected follow-up text: %q", followUp.Content)
	}

	// Answer the follow-up, then the remaining seven questions.
	sendAnswer(t, ctx, conn, "I studied at the local ITI and support my family.")
	for i := 1; i < 8; i++ {
		question := readMessage(t, ctx, conn)
		if question.Type != domain.MessageQuestion {
			t.Fatalf("expected question %d, got %s", i+1, question.Type)
		}
		sendAnswer(t, ctx, conn, "A complete and thoughtful answer.")
	}

	status := readMessage(t, ctx, conn)
	if status.Type != domain.MessageStatus {
		t.Fatalf("expected feedback status, got %s", status.Type)
	}
	fb := readMessage(t, ctx, conn)
	if fb.Type != domain.MessageFeedback {
		t.Fatalf("expected feedback, got %s", fb.Type)
	}
	if !strings.Contains(fb.Content, "OVERALL ASSESSMENT:") {
		t.Error("feedback message missing assessment section")
	}
	end := readMessage(t, ctx, conn)
	if end.Type != domain.MessageSessionEnd {
		t.Fatalf("expected session_end, got %s", end.Type)
	}

	// The stored snapshot reflects the finished interview.
	snapshot, err := repo.LoadSession(ctx, sessionID)
	if err != nil {
		t.Fatal(err)
	}
	if snapshot == nil {
		t.Fatal("expected persisted snapshot")
	}
	if !snapshot.State.IsCompleted {
		t.Error("persisted state should be completed")
	}
	if len(snapshot.State.Answers) != 8 {
		t.Errorf("expected 8 answer records, got %d", len(snapshot.State.Answers))
	}
	if snapshot.State.Answers[0].FollowUpCount != 1 {
		t.Errorf("first record should have one follow-up, got %d", snapshot.State.Answers[0].FollowUpCount)
	}
	if snapshot.Feedback == nil {
		t.Error("persisted snapshot should carry feedback")
	}
}

func TestOriginRejectedInProduction(t *testing.T) {
	t.Parallel()

	handler := NewWebSocketHandler(nil, nil, nil, NewManager(), "https://app.vocalhire.example", false)

	req := httptest.NewRequest("GET", "/ws/interview", nil)
	req.Header.Set("Origin", "https://evil.example")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)
	if w.Code != 403 {
		t.Errorf("expected 403 for disallowed origin, got %d", w.Code)
	}
}
