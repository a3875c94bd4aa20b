package interview

import (
	"time"

	"github.com/ashureev/vocalhire/internal/domain"
)

// MergeAnswer folds a raw answer fragment into the session's record for
// the given question. The first fragment creates the record; follow-up
// fragments append to the existing answer text with a single space so
// completeness is always judged against the full accumulated answer.
// Nothing previously captured is ever discarded.
func MergeAnswer(state *domain.SessionState, question domain.QuestionSpec, rawText string) *domain.AnswerRecord {
	if existing := state.AnswerFor(question.Category); existing != nil {
		existing.AnswerText += " " + rawText
		return existing
	}

	record := &domain.AnswerRecord{
		Category:     question.Category,
		QuestionText: question.Prompt,
		AnswerText:   rawText,
		CreatedAt:    time.Now(),
	}
	state.Answers = append(state.Answers, record)
	return record
}
