package analytics

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/mathcamp/internal/problemgen"
)

// Sink stores or forwards events.
type Sink interface {
	Write(ctx context.Context, e Event) error
}

// Client converts tracked calls into Events and writes them to a sink.
// Sink errors are logged and dropped.
type Client struct {
	sink   Sink
	logger *zap.Logger
	clock  func() time.Time
}

// NewClient returns a Client writing to sink.
func NewClient(sink Sink, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{sink: sink, logger: logger, clock: time.Now}
}

func (c *Client) emit(ctx context.Context, name, sessionID string, props map[string]any) {
	e := Event{Name: name, SessionID: sessionID, Properties: props, Timestamp: c.clock()}
	if err := c.sink.Write(ctx, e); err != nil {
		c.logger.Warn("analytics event dropped", zap.String("event", name), zap.Error(err))
	}
}

func (c *Client) TrackAppStarted(ctx context.Context) {
	c.emit(ctx, EventAppStarted, "", map[string]any{})
}

func (c *Client) TrackSessionStart(ctx context.Context, sessionID string, t problemgen.ProblemType) {
	c.emit(ctx, EventSessionStart, sessionID, map[string]any{"activity": string(t)})
}

func (c *Client) TrackActivitySelected(ctx context.Context, sessionID string, t problemgen.ProblemType, problemCount int) {
	c.emit(ctx, EventActivitySelected, sessionID, map[string]any{
		"activity":      string(t),
		"problem_count": problemCount,
	})
}

func (c *Client) TrackProblemAnswered(ctx context.Context, e ProblemAnswered) {
	c.emit(ctx, EventProblemAnswered, e.SessionID, map[string]any{
		"activity":        string(e.Type),
		"difficulty":      string(e.Difficulty),
		"question_number": e.QuestionNumber,
		"correct":         e.Correct,
		"time_spent_ms":   e.TimeSpent.Milliseconds(),
		"hints_used":      e.HintsUsed,
	})
}

func (c *Client) TrackSessionCompleted(ctx context.Context, e SessionCompleted) {
	c.emit(ctx, EventSessionCompleted, e.SessionID, map[string]any{
		"activity":        string(e.Type),
		"difficulty":      string(e.Difficulty),
		"total":           e.Total,
		"correct":         e.Correct,
		"accuracy":        e.Accuracy(),
		"duration_bucket": DurationBucket(e.Duration),
		"perfect":         e.Perfect,
	})
}
