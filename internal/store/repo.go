package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // recorded_at >= From
	To     time.Time // recorded_at <= To
	Name   string    // event name (analytics only)
}

// SessionRecord is a stored session.
type SessionRecord struct {
	ID           string
	ProblemType  string
	Difficulty   string
	StartedAt    time.Time
	EndedAt      *time.Time
	ProblemCount int
	CorrectCount int
	Score        int
	Duration     time.Duration
}

// AttemptRecord is a stored answer.
type AttemptRecord struct {
	AttemptID     string
	SessionID     string
	ProblemID     string
	ProblemType   string
	Difficulty    string
	Question      string
	CorrectAnswer string
	UserAnswer    string
	Correct       bool
	TimeSpent     time.Duration
	HintsUsed     int
	Tries         int

	// Set by AppendAttempt.
	Sequence  int64
	Timestamp time.Time
}

// AchievementRecord is an unlocked achievement.
type AchievementRecord struct {
	ID         string
	SessionID  string
	UnlockedAt time.Time
}

// MasteryRecord is the stored skill estimate for one activity.
type MasteryRecord struct {
	ProblemType   string
	Attempted     int
	Correct       int
	Level         int
	AverageTimeMs float64
	LastPracticed time.Time
	Recent        []bool
}

// ProfileRecord holds lifetime totals.
type ProfileRecord struct {
	TotalProblems    int
	CorrectAnswers   int
	CurrentStreak    int
	LongestStreak    int
	FavoriteActivity string
	LastPracticed    *time.Time
}

// AnalyticsEventRecord is a stored analytics event.
type AnalyticsEventRecord struct {
	Name       string
	SessionID  string
	Properties map[string]any
	Sequence   int64
	Timestamp  time.Time
}

// SessionRepo stores finished sessions.
type SessionRepo interface {
	// SaveSession inserts or replaces a session by ID.
	SaveSession(ctx context.Context, rec SessionRecord) error

	// RecentSessions returns the newest sessions first.
	RecentSessions(ctx context.Context, limit int) ([]SessionRecord, error)
}

// AttemptRepo stores answered problems.
type AttemptRepo interface {
	AppendAttempt(ctx context.Context, rec AttemptRecord) error
	SessionAttempts(ctx context.Context, sessionID string) ([]AttemptRecord, error)
	AttemptCountsByType(ctx context.Context) (map[string]int, error)
}

// ProfileRepo stores the lifetime totals row.
type ProfileRepo interface {
	// LoadProfile returns nil when nothing has been saved yet.
	LoadProfile(ctx context.Context) (*ProfileRecord, error)
	SaveProfile(ctx context.Context, rec ProfileRecord) error
}

// MasteryRepo stores per-activity mastery.
type MasteryRepo interface {
	LoadMastery(ctx context.Context) ([]MasteryRecord, error)
	SaveMastery(ctx context.Context, rec MasteryRecord) error
}

// AchievementRepo stores unlocked achievements.
type AchievementRepo interface {
	// UnlockAchievement records rec and reports whether it was new.
	UnlockAchievement(ctx context.Context, rec AchievementRecord) (bool, error)
	Achievements(ctx context.Context) ([]AchievementRecord, error)
}

// ProgressRepo is everything the progress tracker persists.
type ProgressRepo interface {
	SessionRepo
	AttemptRepo
	ProfileRepo
	MasteryRepo
	AchievementRepo
}

// AnalyticsRepo stores analytics events.
type AnalyticsRepo interface {
	AppendAnalyticsEvent(ctx context.Context, rec AnalyticsEventRecord) error
	QueryAnalyticsEvents(ctx context.Context, opts QueryOpts) ([]AnalyticsEventRecord, error)
	AnalyticsEventCounts(ctx context.Context) (map[string]int, error)
}
