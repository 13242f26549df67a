package progress

import (
	"math"
	"time"

	"github.com/abhisek/mathcamp/internal/problemgen"
)

// AttemptedProblem is a problem together with the learner's answer.
// It is never modified after it is recorded.
type AttemptedProblem struct {
	// ID is assigned by the tracker when empty.
	ID        string
	SessionID string

	Problem    problemgen.Problem
	UserAnswer string
	Correct    bool
	TimeSpent  time.Duration

	// Attempts is the number of submissions for this problem.
	Attempts  int
	HintsUsed int

	AnsweredAt time.Time
}

// Session aggregates the attempts of one play-through.
type Session struct {
	ID         string
	Type       problemgen.ProblemType
	Difficulty problemgen.Difficulty
	StartedAt  time.Time
	EndedAt    time.Time
	Attempts   []AttemptedProblem

	// Set when the session ends.
	Score    int
	Duration time.Duration

	// ProblemCount and CorrectCount are kept for sessions loaded from the
	// store, whose attempts are not loaded.
	ProblemCount int
	CorrectCount int
}

// Correct counts the correct attempts.
func (s *Session) Correct() int {
	if len(s.Attempts) == 0 {
		return s.CorrectCount
	}
	n := 0
	for _, a := range s.Attempts {
		if a.Correct {
			n++
		}
	}
	return n
}

// Len is the number of answered problems.
func (s *Session) Len() int {
	if len(s.Attempts) == 0 {
		return s.ProblemCount
	}
	return len(s.Attempts)
}

// SessionScore returns round(correct/total*100), or 0 for an empty session.
func SessionScore(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// Summary is the lifetime progress overview.
type Summary struct {
	TotalProblems    int
	CorrectAnswers   int
	CurrentStreak    int
	LongestStreak    int
	FavoriteActivity problemgen.ProblemType
	LastPracticed    time.Time
}

// Accuracy is CorrectAnswers/TotalProblems in [0, 1].
func (s Summary) Accuracy() float64 {
	if s.TotalProblems == 0 {
		return 0
	}
	return float64(s.CorrectAnswers) / float64(s.TotalProblems)
}
