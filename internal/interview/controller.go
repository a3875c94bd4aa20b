// Package interview implements the turn-by-turn state machine that
// drives a mock interview session.
package interview

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ashureev/vocalhire/internal/catalog"
	"github.com/ashureev/vocalhire/internal/domain"
	"github.com/ashureev/vocalhire/internal/oracle"
)

// MaxFollowUps bounds the clarifying re-prompts per question. With the
// initial answer this caps a question at three turns.
const MaxFollowUps = 2

// defaultFollowUp is used when the oracle judges an answer incomplete but
// supplies no follow-up text of its own.
const defaultFollowUp = "Could you tell me more about that?"

// ErrSessionCompleted is returned when an answer arrives for a session
// that already reached its terminal state.
var ErrSessionCompleted = errors.New("session already completed")

// ActionKind discriminates the directives a turn can produce.
type ActionKind int

const (
	// ActionNextQuestion advances the interview to the next question.
	ActionNextQuestion ActionKind = iota
	// ActionFollowUp re-prompts the current question for more detail.
	ActionFollowUp
	// ActionFinalize ends the interview; the caller compiles feedback.
	ActionFinalize
)

// Action is the directive produced by one controller turn. Message holds
// the text to present to the candidate; Category identifies the question
// the message belongs to (unset on Finalize).
type Action struct {
	Kind     ActionKind
	Message  string
	Category domain.QuestionCategory
}

// Route maps an action to the transport-level route name, so the
// presentation layer never re-derives business logic.
func Route(a Action) string {
	switch a.Kind {
	case ActionFollowUp:
		return "follow_up"
	case ActionFinalize:
		return "finalize"
	default:
		return "ask_next"
	}
}

// Controller owns the session state for the duration of a turn. Callers
// must not run concurrent turns for the same session; the WebSocket
// read loop serializes turns per connection.
type Controller struct {
	catalog   *catalog.Catalog
	validator oracle.Validator
}

// NewController creates a controller over the given catalog and oracle.
func NewController(cat *catalog.Catalog, validator oracle.Validator) *Controller {
	return &Controller{catalog: cat, validator: validator}
}

// Greeting returns the opening message sent before the first question.
func (c *Controller) Greeting() string {
	return "Hello! I am your AI interview assistant from VocalHire. " +
		"I'm here to help you practice your interview skills in a supportive environment. " +
		"I will ask you a series of questions commonly asked in job interviews. " +
		"Please take your time to answer each question thoughtfully. " +
		"If I feel your answer needs more detail, I may ask follow-up questions. " +
		"This is a practice session, so there's no pressure - just be yourself and do your best. " +
		"Are you ready? Let's begin with the first question."
}

// CurrentQuestion returns the question the session cursor points at, or
// false once the catalog is exhausted.
func (c *Controller) CurrentQuestion(state *domain.SessionState) (domain.QuestionSpec, bool) {
	return c.catalog.Get(state.CurrentQuestionIndex)
}

// Progress returns a "Question i of n" marker for the current cursor.
func (c *Controller) Progress(state *domain.SessionState) string {
	return c.catalog.Progress(state.CurrentQuestionIndex)
}

// HandleAnswer runs one turn: merge the raw answer into the active
// record, judge completeness, and decide whether to advance, probe
// further, or conclude. The session state is mutated in place.
//
// An oracle failure is treated as a complete answer (fail-open) so an
// unavailable model never blocks the candidate.
func (c *Controller) HandleAnswer(ctx context.Context, state *domain.SessionState, rawText string) (Action, error) {
	if state.IsCompleted {
		return Action{}, ErrSessionCompleted
	}

	question, ok := c.catalog.Get(state.CurrentQuestionIndex)
	if !ok {
		// Cursor past the catalog without a terminal state. Should not
		// happen while invariants hold; conclude rather than wedge.
		slog.Warn("question cursor out of range, finalizing",
			"session_id", state.SessionID, "index", state.CurrentQuestionIndex)
		state.Complete(time.Now())
		return c.finalizeAction(), nil
	}

	record := MergeAnswer(state, question, rawText)

	verdict, err := c.validator.Validate(ctx, question.Prompt, record.AnswerText, question.ExpectedCoverage)
	if err != nil {
		slog.Warn("answer validation failed, accepting answer",
			"session_id", state.SessionID, "category", question.Category, "error", err)
		verdict = oracle.Verdict{IsComplete: true}
	}
	record.IsComplete = verdict.IsComplete

	if record.IsComplete || record.FollowUpCount >= MaxFollowUps {
		return c.advance(state), nil
	}

	record.FollowUpCount++
	followUp := verdict.FollowUp
	if followUp == "" {
		followUp = defaultFollowUp
	}
	return Action{
		Kind:     ActionFollowUp,
		Message:  followUp,
		Category: question.Category,
	}, nil
}

func (c *Controller) advance(state *domain.SessionState) Action {
	state.CurrentQuestionIndex++

	next, ok := c.catalog.Get(state.CurrentQuestionIndex)
	if !ok {
		state.Complete(time.Now())
		return c.finalizeAction()
	}

	return Action{
		Kind:     ActionNextQuestion,
		Message:  next.Prompt,
		Category: next.Category,
	}
}

func (c *Controller) finalizeAction() Action {
	return Action{
		Kind:    ActionFinalize,
		Message: "Thank you for completing all the questions! I'm now preparing your feedback.",
	}
}
