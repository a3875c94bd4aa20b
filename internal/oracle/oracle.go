// Package oracle judges whether an interview answer sufficiently covers
// its question.
package oracle

import "context"

// Verdict is the oracle's judgment of one accumulated answer.
type Verdict struct {
	IsComplete    bool     `json:"is_complete"`
	MissingPoints []string `json:"missing_points"`
	FollowUp      string   `json:"follow_up"`
}

// Validator decides answer completeness. Implementations may fail
// transiently; callers are expected to fail open (treat the answer as
// complete) rather than block the candidate.
type Validator interface {
	Validate(ctx context.Context, question, answer string, expectedCoverage []string) (Verdict, error)
}

// ValidatorFunc adapts a function to the Validator interface.
type ValidatorFunc func(ctx context.Context, question, answer string, expectedCoverage []string) (Verdict, error)

// Validate implements Validator.
func (f ValidatorFunc) Validate(ctx context.Context, question, answer string, expectedCoverage []string) (Verdict, error) {
	return f(ctx, question, answer, expectedCoverage)
}
