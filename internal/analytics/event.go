package analytics

import "time"

// Event names as stored.
const (
	EventAppStarted       = "app_started"
	EventSessionStart     = "session_start"
	EventActivitySelected = "activity_selected"
	EventProblemAnswered  = "problem_answered"
	EventSessionCompleted = "session_completed"
)

// Event is the generic form every tracked call is converted to before
// it reaches a Sink.
type Event struct {
	Name       string
	SessionID  string
	Properties map[string]any
	Timestamp  time.Time
}

// DurationBucket groups session lengths for reporting.
func DurationBucket(d time.Duration) string {
	switch {
	case d < 5*time.Minute:
		return "0-5min"
	case d < 10*time.Minute:
		return "5-10min"
	case d < 20*time.Minute:
		return "10-20min"
	default:
		return "20+min"
	}
}
