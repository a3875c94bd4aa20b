package domain

import "time"

// FeedbackSection is a per-category note inside the final feedback.
type FeedbackSection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Score   *int   `json:"score,omitempty"`
}

// Feedback is the structured result produced once after the last question.
type Feedback struct {
	SessionID           string            `json:"session_id"`
	OverallAssessment   string            `json:"overall_assessment"`
	Strengths           []string          `json:"strengths"`
	AreasForImprovement []string          `json:"areas_for_improvement"`
	SpecificSuggestions []string          `json:"specific_suggestions"`
	Encouragement       string            `json:"encouragement"`
	CategoryFeedback    []FeedbackSection `json:"category_feedback,omitempty"`
	GeneratedAt         time.Time         `json:"generated_at"`
}
