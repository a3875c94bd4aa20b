package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ashureev/vocalhire/internal/gemini"
)

// DefaultTimeout bounds a single validation call so a hung model request
// cannot stall the interview turn.
const DefaultTimeout = 30 * time.Second

// GeminiValidator judges answer completeness with the Gemini API.
type GeminiValidator struct {
	client  *gemini.Client
	timeout time.Duration
}

// NewGemini creates a Gemini-backed validator. A non-positive timeout
// falls back to DefaultTimeout.
func NewGemini(client *gemini.Client, timeout time.Duration) *GeminiValidator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &GeminiValidator{client: client, timeout: timeout}
}

// Validate implements Validator.
func (v *GeminiValidator) Validate(ctx context.Context, question, answer string, expectedCoverage []string) (Verdict, error) {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	raw, err := v.client.Generate(ctx, "", buildPrompt(question, answer, expectedCoverage))
	if err != nil {
		return Verdict{}, fmt.Errorf("validate answer: %w", err)
	}

	verdict, err := parseVerdict(raw)
	if err != nil {
		return Verdict{}, fmt.Errorf("parse verdict: %w", err)
	}
	return verdict, nil
}

func buildPrompt(question, answer string, expectedCoverage []string) string {
	var coverage string
	if len(expectedCoverage) > 0 {
		coverage = "\nExpected coverage points: " + strings.Join(expectedCoverage, ", ")
	}

	return fmt.Sprintf(`You are evaluating a candidate's answer in a mock interview for vocational training students in India.

Question: %s%s

Candidate's Answer: %s

Evaluate if the answer adequately addresses the question. Consider:
1. Does it cover the main points expected?
2. Is it detailed enough or too vague?
3. If coverage points are listed, are they addressed?

Respond in this exact JSON format:
{
    "is_complete": true/false,
    "missing_points": ["point1", "point2"],
    "follow_up": "A brief, encouraging follow-up question if incomplete, or empty string if complete"
}
`, question, coverage, answer)
}

// parseVerdict decodes the model's JSON reply, tolerating markdown code
// fences around the payload.
func parseVerdict(raw string) (Verdict, error) {
	var verdict Verdict
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &verdict); err != nil {
		return Verdict{}, err
	}
	return verdict, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		// Drop the language tag on the opening fence line.
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
