package progress

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/abhisek/mathcamp/internal/achievements"
	"github.com/abhisek/mathcamp/internal/problemgen"
	"github.com/abhisek/mathcamp/internal/store"
)

// ErrNoActiveSession is logged when an attempt or session end arrives
// with no session in progress. Callers never see it as a returned error.
var ErrNoActiveSession = errors.New("no active session")

// Tracker keeps lifetime progress and the session in progress. State is
// held in memory and written through to the repository when one is set.
type Tracker struct {
	mu sync.Mutex

	repo   store.ProgressRepo
	logger *zap.Logger
	clock  func() time.Time

	summary  Summary
	mastery  map[problemgen.ProblemType]*Mastery
	counts   map[problemgen.ProblemType]int
	unlocked map[achievements.ID]time.Time

	active *Session
	last   *Session
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithRepo persists progress through repo.
func WithRepo(repo store.ProgressRepo) Option {
	return func(t *Tracker) { t.repo = repo }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithClock overrides time.Now.
func WithClock(clock func() time.Time) Option {
	return func(t *Tracker) { t.clock = clock }
}

// NewTracker builds a tracker and loads any stored progress.
func NewTracker(ctx context.Context, opts ...Option) (*Tracker, error) {
	t := &Tracker{
		logger:   zap.NewNop(),
		clock:    time.Now,
		mastery:  make(map[problemgen.ProblemType]*Mastery),
		counts:   make(map[problemgen.ProblemType]int),
		unlocked: make(map[achievements.ID]time.Time),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.repo != nil {
		if err := t.load(ctx); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Tracker) load(ctx context.Context) error {
	profile, err := t.repo.LoadProfile(ctx)
	if err != nil {
		return err
	}
	if profile != nil {
		t.summary = Summary{
			TotalProblems:    profile.TotalProblems,
			CorrectAnswers:   profile.CorrectAnswers,
			CurrentStreak:    profile.CurrentStreak,
			LongestStreak:    profile.LongestStreak,
			FavoriteActivity: problemgen.ProblemType(profile.FavoriteActivity),
		}
		if profile.LastPracticed != nil {
			t.summary.LastPracticed = *profile.LastPracticed
		}
	}

	records, err := t.repo.LoadMastery(ctx)
	if err != nil {
		return err
	}
	for _, r := range records {
		pt := problemgen.ProblemType(r.ProblemType)
		t.mastery[pt] = &Mastery{
			Type:          pt,
			Level:         r.Level,
			Attempted:     r.Attempted,
			Correct:       r.Correct,
			AverageTime:   time.Duration(r.AverageTimeMs * float64(time.Millisecond)),
			LastPracticed: r.LastPracticed,
			Recent:        r.Recent,
		}
	}

	counts, err := t.repo.AttemptCountsByType(ctx)
	if err != nil {
		return err
	}
	for k, n := range counts {
		t.counts[problemgen.ProblemType(k)] = n
	}

	unlocked, err := t.repo.Achievements(ctx)
	if err != nil {
		return err
	}
	for _, a := range unlocked {
		t.unlocked[achievements.ID(a.ID)] = a.UnlockedAt
	}
	return nil
}

// StartSession opens a new session and returns its ID. An unfinished
// session is replaced.
func (t *Tracker) StartSession(_ context.Context, pt problemgen.ProblemType, d problemgen.Difficulty) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active != nil {
		t.logger.Debug("replacing unfinished session", zap.String("session_id", t.active.ID))
	}
	t.active = &Session{
		ID:         uuid.NewString(),
		Type:       pt,
		Difficulty: d,
		StartedAt:  t.clock(),
	}
	return t.active.ID, nil
}

// AddProblemAttempt records an answer in the active session and updates
// totals, streaks, the favourite activity and mastery. Without an active
// session the attempt is dropped and a warning logged.
func (t *Tracker) AddProblemAttempt(ctx context.Context, a AttemptedProblem) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active == nil || (a.SessionID != "" && a.SessionID != t.active.ID) {
		t.logger.Warn("attempt ignored", zap.Error(ErrNoActiveSession), zap.String("session_id", a.SessionID))
		return nil
	}
	if a.ID == "" {
		a.ID = ulid.Make().String()
	}
	if a.AnsweredAt.IsZero() {
		a.AnsweredAt = t.clock()
	}
	a.SessionID = t.active.ID
	t.active.Attempts = append(t.active.Attempts, a)

	pt := a.Problem.Type
	s := &t.summary
	s.TotalProblems++
	if a.Correct {
		s.CorrectAnswers++
		s.CurrentStreak++
		s.LongestStreak = max(s.LongestStreak, s.CurrentStreak)
	} else {
		s.CurrentStreak = 0
	}
	s.LastPracticed = a.AnsweredAt
	t.counts[pt]++
	s.FavoriteActivity = t.favorite()

	m := t.mastery[pt]
	if m == nil {
		m = &Mastery{Type: pt}
		t.mastery[pt] = m
	}
	m.Record(a.Correct, a.TimeSpent, a.AnsweredAt)

	if t.repo == nil {
		return nil
	}
	return t.persistAttempt(ctx, a, m)
}

func (t *Tracker) persistAttempt(ctx context.Context, a AttemptedProblem, m *Mastery) error {
	p := a.Problem
	if err := t.repo.AppendAttempt(ctx, store.AttemptRecord{
		AttemptID:     a.ID,
		SessionID:     a.SessionID,
		ProblemID:     p.ID,
		ProblemType:   string(p.Type),
		Difficulty:    string(p.Difficulty),
		Question:      p.Text,
		CorrectAnswer: p.Answer,
		UserAnswer:    a.UserAnswer,
		Correct:       a.Correct,
		TimeSpent:     a.TimeSpent,
		HintsUsed:     a.HintsUsed,
		Tries:         a.Attempts,
		Timestamp:     a.AnsweredAt,
	}); err != nil {
		return err
	}
	if err := t.repo.SaveProfile(ctx, t.profileRecord()); err != nil {
		return err
	}
	return t.repo.SaveMastery(ctx, store.MasteryRecord{
		ProblemType:   string(m.Type),
		Attempted:     m.Attempted,
		Correct:       m.Correct,
		Level:         m.Level,
		AverageTimeMs: float64(m.AverageTime) / float64(time.Millisecond),
		LastPracticed: m.LastPracticed,
		Recent:        m.Recent,
	})
}

// favorite is the most attempted activity; ties go to the earlier menu
// entry.
func (t *Tracker) favorite() problemgen.ProblemType {
	var (
		best  problemgen.ProblemType
		count int
	)
	for _, pt := range problemgen.AllProblemTypes() {
		if n := t.counts[pt]; n > count {
			best, count = pt, n
		}
	}
	return best
}

func (t *Tracker) profileRecord() store.ProfileRecord {
	rec := store.ProfileRecord{
		TotalProblems:    t.summary.TotalProblems,
		CorrectAnswers:   t.summary.CorrectAnswers,
		CurrentStreak:    t.summary.CurrentStreak,
		LongestStreak:    t.summary.LongestStreak,
		FavoriteActivity: string(t.summary.FavoriteActivity),
	}
	if !t.summary.LastPracticed.IsZero() {
		last := t.summary.LastPracticed
		rec.LastPracticed = &last
	}
	return rec
}

// EndSession finalizes the active session: duration and score are
// computed and the session is saved. A missing session or an ID that does
// not match the active one is logged and ignored.
func (t *Tracker) EndSession(ctx context.Context, sessionID string) (*Session, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active == nil || (sessionID != "" && sessionID != t.active.ID) {
		t.logger.Warn("session end ignored", zap.Error(ErrNoActiveSession), zap.String("session_id", sessionID))
		return nil, nil
	}

	s := t.active
	s.EndedAt = t.clock()
	s.Duration = s.EndedAt.Sub(s.StartedAt)
	s.ProblemCount = len(s.Attempts)
	s.CorrectCount = s.Correct()
	s.Score = SessionScore(s.CorrectCount, s.ProblemCount)
	t.active = nil
	t.last = s

	if t.repo == nil {
		return s, nil
	}
	ended := s.EndedAt
	err := t.repo.SaveSession(ctx, store.SessionRecord{
		ID:           s.ID,
		ProblemType:  string(s.Type),
		Difficulty:   string(s.Difficulty),
		StartedAt:    s.StartedAt,
		EndedAt:      &ended,
		ProblemCount: s.ProblemCount,
		CorrectCount: s.CorrectCount,
		Score:        s.Score,
		Duration:     s.Duration,
	})
	if err != nil {
		return s, fmt.Errorf("persist session: %w", err)
	}
	return s, nil
}

// CheckAchievements unlocks and returns achievements earned since the
// last check.
func (t *Tracker) CheckAchievements(ctx context.Context) ([]achievements.Achievement, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	stats := achievements.Stats{
		TotalProblems: t.summary.TotalProblems,
		CurrentStreak: t.summary.CurrentStreak,
	}
	sessionID := ""
	if t.last != nil {
		stats.LastSessionScore = t.last.Score
		stats.LastSessionProblems = t.last.ProblemCount
		sessionID = t.last.ID
	}

	have := make(map[achievements.ID]bool, len(t.unlocked))
	for id := range t.unlocked {
		have[id] = true
	}
	fresh := achievements.Newly(stats, have, t.clock())

	var errs []error
	for _, a := range fresh {
		t.unlocked[a.ID] = a.UnlockedAt
		if t.repo == nil {
			continue
		}
		_, err := t.repo.UnlockAchievement(ctx, store.AchievementRecord{
			ID:         string(a.ID),
			SessionID:  sessionID,
			UnlockedAt: a.UnlockedAt,
		})
		if err != nil {
			errs = append(errs, err)
		}
	}
	return fresh, errors.Join(errs...)
}

// Summary returns the lifetime totals.
func (t *Tracker) Summary() Summary {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.summary
}

// Mastery returns the per-activity estimates in menu order, skipping
// activities never played.
func (t *Tracker) Mastery() []Mastery {
	t.mu.Lock()
	defer t.mu.Unlock()

	var out []Mastery
	for _, pt := range problemgen.AllProblemTypes() {
		if m := t.mastery[pt]; m != nil {
			cp := *m
			cp.Recent = slices.Clone(m.Recent)
			out = append(out, cp)
		}
	}
	return out
}

// Achievements returns the whole catalog with unlock times filled in.
func (t *Tracker) Achievements() []achievements.Achievement {
	t.mu.Lock()
	defer t.mu.Unlock()

	all := achievements.All()
	for i := range all {
		all[i].UnlockedAt = t.unlocked[all[i].ID]
	}
	return all
}

// ActiveSession returns a copy of the session in progress, or nil.
func (t *Tracker) ActiveSession() *Session {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active == nil {
		return nil
	}
	cp := *t.active
	cp.Attempts = slices.Clone(t.active.Attempts)
	return &cp
}

// RecentSessions returns stored sessions, newest first. Without a
// repository only the last finished session is known.
func (t *Tracker) RecentSessions(ctx context.Context, limit int) ([]Session, error) {
	if t.repo == nil {
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.last == nil {
			return nil, nil
		}
		return []Session{*t.last}, nil
	}

	records, err := t.repo.RecentSessions(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]Session, len(records))
	for i, r := range records {
		out[i] = Session{
			ID:           r.ID,
			Type:         problemgen.ProblemType(r.ProblemType),
			Difficulty:   problemgen.Difficulty(r.Difficulty),
			StartedAt:    r.StartedAt,
			Score:        r.Score,
			Duration:     r.Duration,
			ProblemCount: r.ProblemCount,
			CorrectCount: r.CorrectCount,
		}
		if r.EndedAt != nil {
			out[i].EndedAt = *r.EndedAt
		}
	}
	return out, nil
}
