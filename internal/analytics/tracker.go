package analytics

import (
	"context"
	"time"

	"github.com/abhisek/mathcamp/internal/problemgen"
)

// Tracker receives usage events. Calls are fire-and-forget: failures are
// handled inside the implementation.
type Tracker interface {
	TrackAppStarted(ctx context.Context)
	TrackSessionStart(ctx context.Context, sessionID string, t problemgen.ProblemType)
	TrackActivitySelected(ctx context.Context, sessionID string, t problemgen.ProblemType, problemCount int)
	TrackProblemAnswered(ctx context.Context, e ProblemAnswered)
	TrackSessionCompleted(ctx context.Context, e SessionCompleted)
}

// ProblemAnswered describes one scored answer.
type ProblemAnswered struct {
	SessionID      string
	Type           problemgen.ProblemType
	Difficulty     problemgen.Difficulty
	QuestionNumber int
	Correct        bool
	TimeSpent      time.Duration
	HintsUsed      int
}

// SessionCompleted describes a finished session.
type SessionCompleted struct {
	SessionID  string
	Type       problemgen.ProblemType
	Difficulty problemgen.Difficulty
	Total      int
	Correct    int
	Duration   time.Duration
	Perfect    bool
}

// Accuracy is Correct/Total in [0, 1].
func (e SessionCompleted) Accuracy() float64 {
	if e.Total == 0 {
		return 0
	}
	return float64(e.Correct) / float64(e.Total)
}

// Nop discards every event.
type Nop struct{}

func (Nop) TrackAppStarted(context.Context)                                            {}
func (Nop) TrackSessionStart(context.Context, string, problemgen.ProblemType)          {}
func (Nop) TrackActivitySelected(context.Context, string, problemgen.ProblemType, int) {}
func (Nop) TrackProblemAnswered(context.Context, ProblemAnswered)                      {}
func (Nop) TrackSessionCompleted(context.Context, SessionCompleted)                    {}
