package session

import (
	"time"

	"github.com/abhisek/mathcamp/internal/problemgen"
)

// Phase is the orchestrator's lifecycle state.
type Phase int

const (
	PhaseIdle           Phase = iota // No session in progress
	PhaseAwaitingAnswer              // A question is on screen
	PhaseComplete                    // Last answer recorded, result available
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingAnswer:
		return "awaiting-answer"
	case PhaseComplete:
		return "session-complete"
	default:
		return "idle"
	}
}

// State tracks the runtime state of one session.
type State struct {
	Phase Phase

	// SessionID comes from the progress recorder. Empty when it could not
	// start a session.
	SessionID string

	Plan *Plan

	// Index is the zero-based position of Current within Plan.Items.
	Index int

	// Current is the question on screen (nil when idle).
	Current *problemgen.Problem

	Correct int

	// Streak counts consecutive correct answers in this session.
	Streak int

	StartedAt         time.Time
	QuestionStartedAt time.Time

	// HintsUsed counts hints shown for Current.
	HintsUsed int

	// seen holds the text of fresh problems already asked.
	seen map[string]bool
}

// Total is the number of questions in the session.
func (s State) Total() int {
	if s.Plan == nil {
		return 0
	}
	return s.Plan.Len()
}

// QuestionNumber is the 1-based position of the current question.
func (s State) QuestionNumber() int { return s.Index + 1 }

// IsLastQuestion reports whether Current is the final plan item.
func (s State) IsLastQuestion() bool { return s.Index >= s.Total()-1 }
