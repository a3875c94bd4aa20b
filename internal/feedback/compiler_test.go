package feedback

import (
	"strings"
	"testing"

	"github.com/ashureev/vocalhire/internal/domain"
)

func sampleAnswers() []*domain.AnswerRecord {
	return []*domain.AnswerRecord{
		{
			Category:     domain.CategoryIntroduction,
			QuestionText: "Tell me something about yourself",
			AnswerText:   strings.Repeat("I studied electronics at an industrial training institute. ", 3),
		},
		{
			Category:     domain.CategoryMotivation,
			QuestionText: "What motivated you?",
			AnswerText:   "Short answer.",
		},
	}
}

func TestTranscriptIncludesAllAnswers(t *testing.T) {
	t.Parallel()

	got := Transcript(sampleAnswers())
	if !strings.Contains(got, "Q1 (Introduction):") {
		t.Errorf("missing first question header:\n%s", got)
	}
	if !strings.Contains(got, "Q2 (Motivation):") {
		t.Errorf("missing second question header:\n%s", got)
	}
	if !strings.Contains(got, "Short answer.") {
		t.Error("missing answer text")
	}
}

func TestFallbackIsDeterministicAndComplete(t *testing.T) {
	t.Parallel()

	fb := Fallback("sess-1", sampleAnswers())
	if fb.SessionID != "sess-1" {
		t.Errorf("unexpected session id %q", fb.SessionID)
	}
	if fb.OverallAssessment == "" || fb.Encouragement == "" {
		t.Error("fallback must carry assessment and encouragement text")
	}
	if len(fb.Strengths) == 0 || len(fb.AreasForImprovement) == 0 || len(fb.SpecificSuggestions) == 0 {
		t.Error("fallback lists must be non-empty")
	}
	if len(fb.CategoryFeedback) != 2 {
		t.Fatalf("expected 2 category sections, got %d", len(fb.CategoryFeedback))
	}
	if !strings.Contains(fb.CategoryFeedback[0].Content, "good detail") {
		t.Errorf("long answer should be noted as detailed: %q", fb.CategoryFeedback[0].Content)
	}
	if !strings.Contains(fb.CategoryFeedback[1].Content, "brief response") {
		t.Errorf("short answer should be noted as brief: %q", fb.CategoryFeedback[1].Content)
	}
}

func TestFormatMessageRendersAllSections(t *testing.T) {
	t.Parallel()

	msg := FormatMessage(Fallback("sess-1", nil))
	for _, want := range []string{
		"OVERALL ASSESSMENT:",
		"YOUR STRENGTHS:",
		"AREAS FOR IMPROVEMENT:",
		"SPECIFIC SUGGESTIONS:",
		"WORDS OF ENCOURAGEMENT:",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("formatted feedback missing %q", want)
		}
	}
}
