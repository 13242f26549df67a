package analytics

import (
	"context"

	"go.uber.org/zap"

	"github.com/abhisek/mathcamp/internal/problemgen"
)

// Logging decorates a Tracker with debug logs of every call.
type Logging struct {
	next   Tracker
	logger *zap.Logger
}

// WithLogging wraps next.
func WithLogging(next Tracker, logger *zap.Logger) *Logging {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Logging{next: next, logger: logger.Named("analytics")}
}

func (l *Logging) TrackAppStarted(ctx context.Context) {
	l.logger.Debug(EventAppStarted)
	l.next.TrackAppStarted(ctx)
}

func (l *Logging) TrackSessionStart(ctx context.Context, sessionID string, t problemgen.ProblemType) {
	l.logger.Debug(EventSessionStart, zap.String("session_id", sessionID), zap.String("activity", string(t)))
	l.next.TrackSessionStart(ctx, sessionID, t)
}

func (l *Logging) TrackActivitySelected(ctx context.Context, sessionID string, t problemgen.ProblemType, problemCount int) {
	l.logger.Debug(EventActivitySelected,
		zap.String("session_id", sessionID),
		zap.String("activity", string(t)),
		zap.Int("problem_count", problemCount))
	l.next.TrackActivitySelected(ctx, sessionID, t, problemCount)
}

func (l *Logging) TrackProblemAnswered(ctx context.Context, e ProblemAnswered) {
	l.logger.Debug(EventProblemAnswered,
		zap.String("session_id", e.SessionID),
		zap.String("activity", string(e.Type)),
		zap.Bool("correct", e.Correct),
		zap.Duration("time_spent", e.TimeSpent))
	l.next.TrackProblemAnswered(ctx, e)
}

func (l *Logging) TrackSessionCompleted(ctx context.Context, e SessionCompleted) {
	l.logger.Debug(EventSessionCompleted,
		zap.String("session_id", e.SessionID),
		zap.String("activity", string(e.Type)),
		zap.Int("total", e.Total),
		zap.Int("correct", e.Correct),
		zap.Bool("perfect", e.Perfect))
	l.next.TrackSessionCompleted(ctx, e)
}
