// Package catalog holds the fixed, ordered interview question list.
package catalog

import (
	"fmt"

	"github.com/ashureev/vocalhire/internal/domain"
)

// Catalog is an immutable ordered sequence of question specs. Question
// order is part of the external contract: a returning session must see
// the same sequence.
type Catalog struct {
	questions []domain.QuestionSpec
}

// New builds the standard eight-question interview catalog.
func New() *Catalog {
	return &Catalog{questions: []domain.QuestionSpec{
		{
			Category: domain.CategoryIntroduction,
			Prompt:   "Tell me something about yourself (Include your name, family background, educational background, and whether you are an earning member of the family.)",
			ExpectedCoverage: []string{
				"name",
				"family background",
				"educational background",
				"earning member status",
			},
		},
		{
			Category: domain.CategoryMotivation,
			Prompt:   "What motivated you to pursue a career in this field?",
		},
		{
			Category: domain.CategoryIndustryExperience,
			Prompt:   "How many internships or industrial training programs have you completed so far? (Please include the names, durations, and the departments where you were trained.)",
			ExpectedCoverage: []string{
				"number of internships",
				"names of organizations",
				"durations",
				"departments",
			},
		},
		{
			Category: domain.CategoryLearnings,
			Prompt:   "Tell me five things you have learned from the internships",
		},
		{
			Category: domain.CategoryStrengthsWeaknesses,
			Prompt:   "Tell me two positive qualities about yourself and two areas where you think you need improvement.",
		},
		{
			Category: domain.CategoryFutureVision,
			Prompt:   "Where do you see yourself in five years?",
		},
		{
			Category: domain.CategoryUniqueValue,
			Prompt:   "Give me a strong reason why I should hire you and how you are different from other candidates.",
		},
		{
			Category: domain.CategoryAvailability,
			Prompt:   "Are you available to start work immediately, or do you need time to complete other commitments?",
		},
	}}
}

// Get returns the question at index, or false if index is out of range.
func (c *Catalog) Get(index int) (domain.QuestionSpec, bool) {
	if index < 0 || index >= len(c.questions) {
		return domain.QuestionSpec{}, false
	}
	return c.questions[index], true
}

// Size returns the number of questions.
func (c *Catalog) Size() int {
	return len(c.questions)
}

// Progress returns a human-readable position marker such as
// "Question 3 of 8". The index is clamped to the catalog bounds.
func (c *Catalog) Progress(index int) string {
	if index < 0 {
		index = 0
	}
	if index >= len(c.questions) {
		index = len(c.questions) - 1
	}
	return fmt.Sprintf("Question %d of %d", index+1, len(c.questions))
}
