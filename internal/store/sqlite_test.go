package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ashureev/vocalhire/internal/domain"
)

func newTestStore(t *testing.T) Repository {
	t.Helper()
	repo, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestSaveAndLoadSession(t *testing.T) {
	t.Parallel()

	repo := newTestStore(t)
	ctx := context.Background()

	state := domain.NewSessionState("sess-1")
	state.CurrentQuestionIndex = 2
	state.Answers = append(state.Answers, &domain.AnswerRecord{
		Category:      domain.CategoryIntroduction,
		QuestionText:  "Tell me about yourself",
		AnswerText:    "I am Ravi from Pune.",
		FollowUpCount: 1,
	})

	if err := repo.SaveSession(ctx, &domain.Snapshot{SessionID: "sess-1", State: state}); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}

	got, err := repo.LoadSession(ctx, "sess-1")
	if err != nil {
		t.Fatalf("LoadSession failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected snapshot, got nil")
	}
	if got.State.CurrentQuestionIndex != 2 {
		t.Errorf("cursor not persisted: %d", got.State.CurrentQuestionIndex)
	}
	if len(got.State.Answers) != 1 || got.State.Answers[0].AnswerText != "I am Ravi from Pune." {
		t.Errorf("answers not persisted: %+v", got.State.Answers)
	}
	if got.Feedback != nil {
		t.Error("feedback should be absent before completion")
	}
}

func TestSaveSessionLastWriteWins(t *testing.T) {
	t.Parallel()

	repo := newTestStore(t)
	ctx := context.Background()

	state := domain.NewSessionState("sess-1")
	if err := repo.SaveSession(ctx, &domain.Snapshot{SessionID: "sess-1", State: state}); err != nil {
		t.Fatal(err)
	}

	state.CurrentQuestionIndex = 5
	snapshot := &domain.Snapshot{
		SessionID: "sess-1",
		State:     state,
		Feedback:  &domain.Feedback{SessionID: "sess-1", OverallAssessment: "Well done"},
	}
	if err := repo.SaveSession(ctx, snapshot); err != nil {
		t.Fatal(err)
	}

	got, err := repo.LoadSession(ctx, "sess-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.State.CurrentQuestionIndex != 5 {
		t.Errorf("expected overwritten cursor 5, got %d", got.State.CurrentQuestionIndex)
	}
	if got.Feedback == nil || got.Feedback.OverallAssessment != "Well done" {
		t.Errorf("feedback not persisted: %+v", got.Feedback)
	}
}

func TestLoadMissingSessionReturnsNil(t *testing.T) {
	t.Parallel()

	repo := newTestStore(t)
	got, err := repo.LoadSession(context.Background(), "nope")
	if err != nil {
		t.Fatalf("LoadSession failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing session, got %+v", got)
	}
}

func TestListAndDeleteSessions(t *testing.T) {
	t.Parallel()

	repo := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b"} {
		if err := repo.SaveSession(ctx, &domain.Snapshot{SessionID: id, State: domain.NewSessionState(id)}); err != nil {
			t.Fatal(err)
		}
	}

	ids, err := repo.ListSessions(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 sessions, got %v", ids)
	}

	if err := repo.DeleteSession(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	ids, err = repo.ListSessions(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 1 || ids[0] != "b" {
		t.Errorf("expected only session b, got %v", ids)
	}
}
