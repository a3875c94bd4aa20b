// Package feedback compiles structured end-of-interview feedback from
// the accumulated answers.
package feedback

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ashureev/vocalhire/internal/domain"
	"github.com/ashureev/vocalhire/internal/gemini"
)

// DefaultTimeout bounds one feedback generation call.
const DefaultTimeout = 60 * time.Second

// Compiler produces feedback for a finished session. Implementations may
// fail; callers must substitute Fallback so the candidate always receives
// a feedback message.
type Compiler interface {
	Compile(ctx context.Context, sessionID string, answers []*domain.AnswerRecord) (*domain.Feedback, error)
}

// GeminiCompiler generates feedback with the Gemini API.
type GeminiCompiler struct {
	client  *gemini.Client
	timeout time.Duration
}

// NewGemini creates a Gemini-backed compiler. A non-positive timeout
// falls back to DefaultTimeout.
func NewGemini(client *gemini.Client, timeout time.Duration) *GeminiCompiler {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &GeminiCompiler{client: client, timeout: timeout}
}

// feedbackPayload is the JSON shape the model is asked to produce.
type feedbackPayload struct {
	OverallAssessment   string   `json:"overall_assessment"`
	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areas_for_improvement"`
	SpecificSuggestions []string `json:"specific_suggestions"`
	Encouragement       string   `json:"encouragement"`
}

// Compile implements Compiler.
func (c *GeminiCompiler) Compile(ctx context.Context, sessionID string, answers []*domain.AnswerRecord) (*domain.Feedback, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	raw, err := c.client.Generate(ctx, "You are a supportive interview coach.", buildPrompt(answers))
	if err != nil {
		return nil, fmt.Errorf("generate feedback: %w", err)
	}

	var payload feedbackPayload
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &payload); err != nil {
		return nil, fmt.Errorf("parse feedback: %w", err)
	}

	return &domain.Feedback{
		SessionID:           sessionID,
		OverallAssessment:   payload.OverallAssessment,
		Strengths:           payload.Strengths,
		AreasForImprovement: payload.AreasForImprovement,
		SpecificSuggestions: payload.SpecificSuggestions,
		Encouragement:       payload.Encouragement,
		CategoryFeedback:    categorySections(answers),
		GeneratedAt:         time.Now(),
	}, nil
}

func buildPrompt(answers []*domain.AnswerRecord) string {
	return fmt.Sprintf(`You are an experienced interviewer providing constructive feedback to a vocational training student in India who just completed a mock interview.

INTERVIEW TRANSCRIPT:
%s

Generate comprehensive, encouraging feedback following these guidelines:

1. OVERALL ASSESSMENT: A brief 2-3 sentence summary of their performance
2. STRENGTHS: Identify 3-4 specific positive aspects you observed
3. AREAS FOR IMPROVEMENT: Point out 2-3 areas where they can improve (be constructive and specific)
4. SPECIFIC SUGGESTIONS: Provide 3-4 actionable tips they can implement
5. ENCOURAGEMENT: End with 1-2 sentences of genuine encouragement

IMPORTANT:
- Be supportive and positive in tone
- Acknowledge their effort
- Make suggestions specific and actionable
- Focus on practical, implementable advice
- Keep language simple and clear

Respond in this exact JSON format:
{
    "overall_assessment": "Your overall assessment here",
    "strengths": ["strength1", "strength2", "strength3"],
    "areas_for_improvement": ["area1", "area2", "area3"],
    "specific_suggestions": ["suggestion1", "suggestion2", "suggestion3"],
    "encouragement": "Your encouraging message here"
}
`, Transcript(answers))
}

// Transcript renders the answers as a readable Q/A record for the
// feedback prompt.
func Transcript(answers []*domain.AnswerRecord) string {
	var b strings.Builder
	for i, answer := range answers {
		fmt.Fprintf(&b, "\nQ%d (%s):\n%s\n\n", i+1, answer.Category.Title(), answer.QuestionText)
		fmt.Fprintf(&b, "Candidate's Answer:\n%s\n", answer.AnswerText)
		b.WriteString(strings.Repeat("-", 80) + "\n")
	}
	return b.String()
}

func categorySections(answers []*domain.AnswerRecord) []domain.FeedbackSection {
	sections := make([]domain.FeedbackSection, 0, len(answers))
	for _, answer := range answers {
		detail := "a brief response"
		if len(answer.AnswerText) > 100 {
			detail = "good detail"
		}
		sections = append(sections, domain.FeedbackSection{
			Title:   answer.Category.Title(),
			Content: fmt.Sprintf("You addressed this question with %s.", detail),
		})
	}
	return sections
}

// Fallback returns a fixed, deterministic feedback value used when
// generation fails, so the session still ends with presentable feedback.
func Fallback(sessionID string, answers []*domain.AnswerRecord) *domain.Feedback {
	return &domain.Feedback{
		SessionID:         sessionID,
		OverallAssessment: "Thank you for completing the mock interview. You showed good effort in answering all questions.",
		Strengths: []string{
			"Completed all interview questions",
			"Showed willingness to participate",
			"Provided thoughtful responses",
		},
		AreasForImprovement: []string{
			"Try to provide more detailed responses",
			"Include specific examples when possible",
			"Structure your answers clearly",
		},
		SpecificSuggestions: []string{
			"Practice the STAR method (Situation, Task, Action, Result) for behavioral questions",
			"Prepare specific examples from your experience beforehand",
			"Take a moment to organize your thoughts before answering",
		},
		Encouragement:    "Keep practicing and you will continue to improve. Every interview is a learning opportunity!",
		CategoryFeedback: categorySections(answers),
		GeneratedAt:      time.Now(),
	}
}

// FormatMessage renders feedback as the plain-text message shown to the
// candidate at the end of the session.
func FormatMessage(f *domain.Feedback) string {
	var b strings.Builder
	b.WriteString("Interview Complete! Here's Your Personalized Feedback:\n\n")
	b.WriteString("OVERALL ASSESSMENT:\n" + f.OverallAssessment + "\n\n")

	b.WriteString("YOUR STRENGTHS:\n")
	for i, s := range f.Strengths {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, s)
	}

	b.WriteString("\nAREAS FOR IMPROVEMENT:\n")
	for i, a := range f.AreasForImprovement {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, a)
	}

	b.WriteString("\nSPECIFIC SUGGESTIONS:\n")
	for i, s := range f.SpecificSuggestions {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, s)
	}

	b.WriteString("\nWORDS OF ENCOURAGEMENT:\n" + f.Encouragement + "\n")
	b.WriteString("\n---\nThank you for using VocalHire! Keep practicing and you'll excel in your next interview!")
	return b.String()
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
