package session

import (
	"math"
	"time"

	"github.com/abhisek/mathcamp/internal/achievements"
	"github.com/abhisek/mathcamp/internal/problemgen"
)

// Outcome is what HandleAnswer reports back to the UI.
type Outcome struct {
	Correct bool

	// Expected is the correct answer for the question just answered.
	Expected string

	// Next is the following question, nil when the session is complete.
	Next *problemgen.Problem

	// Result is set on the last question.
	Result *Result
}

// Complete reports whether the answer finished the session.
func (o *Outcome) Complete() bool { return o.Result != nil }

// Result summarizes a finished session.
type Result struct {
	SessionID  string
	Type       problemgen.ProblemType
	Difficulty problemgen.Difficulty
	Total      int
	Correct    int
	Duration   time.Duration

	// Repeats is copied from the plan.
	Repeats int

	// NewAchievements were unlocked by this session.
	NewAchievements []achievements.Achievement
}

// Score is the percentage of correct answers, rounded.
func (r *Result) Score() int {
	if r.Total == 0 {
		return 0
	}
	return int(math.Round(float64(r.Correct) / float64(r.Total) * 100))
}

// Accuracy is Correct/Total in [0, 1].
func (r *Result) Accuracy() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Total)
}

// Perfect reports whether every question was answered correctly.
func (r *Result) Perfect() bool {
	return r.Total > 0 && r.Correct == r.Total
}

// Stars maps the score to a 1-3 star rating for the summary screen.
func (r *Result) Stars() int {
	switch s := r.Score(); {
	case s >= 90:
		return 3
	case s >= 60:
		return 2
	default:
		return 1
	}
}
