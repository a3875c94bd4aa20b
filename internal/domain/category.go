// Package domain defines the core interview data model.
package domain

import "strings"

// QuestionCategory identifies which of the fixed interview questions an
// answer belongs to.
type QuestionCategory string

const (
	CategoryIntroduction        QuestionCategory = "introduction"
	CategoryMotivation          QuestionCategory = "motivation"
	CategoryIndustryExperience  QuestionCategory = "industry_experience"
	CategoryLearnings           QuestionCategory = "learnings"
	CategoryStrengthsWeaknesses QuestionCategory = "strengths_weaknesses"
	CategoryFutureVision        QuestionCategory = "future_vision"
	CategoryUniqueValue         QuestionCategory = "unique_value"
	CategoryAvailability        QuestionCategory = "availability"
)

// Categories lists all question categories in interview order.
func Categories() []QuestionCategory {
	return []QuestionCategory{
		CategoryIntroduction,
		CategoryMotivation,
		CategoryIndustryExperience,
		CategoryLearnings,
		CategoryStrengthsWeaknesses,
		CategoryFutureVision,
		CategoryUniqueValue,
		CategoryAvailability,
	}
}

// Valid reports whether c is one of the known categories.
func (c QuestionCategory) Valid() bool {
	switch c {
	case CategoryIntroduction, CategoryMotivation, CategoryIndustryExperience,
		CategoryLearnings, CategoryStrengthsWeaknesses, CategoryFutureVision,
		CategoryUniqueValue, CategoryAvailability:
		return true
	}
	return false
}

// Title returns a human-readable form of the category, e.g.
// "industry_experience" becomes "Industry Experience".
func (c QuestionCategory) Title() string {
	words := strings.Split(string(c), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
