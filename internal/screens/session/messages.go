package session

import (
	"github.com/abhisek/mathcamp/internal/problemgen"
	sess "github.com/abhisek/mathcamp/internal/session"
)

// startedMsg carries the first question of a new session.
type startedMsg struct {
	Problem *problemgen.Problem
	Err     error
}

// answeredMsg carries the outcome of the submitted answer.
type answeredMsg struct {
	Answer  string
	Outcome *sess.Outcome
	Err     error
}

// feedbackDoneMsg ends the feedback pause. Token ties it to the answer
// that started the pause; stale ticks are dropped.
type feedbackDoneMsg struct {
	Token int
}
