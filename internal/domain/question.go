package domain

// QuestionSpec describes one interview question. Specs are built once at
// startup and never mutated.
type QuestionSpec struct {
	Category QuestionCategory `json:"category"`
	Prompt   string           `json:"question_text"`
	// ExpectedCoverage lists the points a complete answer must touch.
	// Nil means the oracle judges completeness on its own.
	ExpectedCoverage []string `json:"expected_coverage,omitempty"`
}
