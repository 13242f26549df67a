package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/mathcamp/internal/achievements"
	"github.com/abhisek/mathcamp/internal/analytics"
	"github.com/abhisek/mathcamp/internal/problemgen"
	"github.com/abhisek/mathcamp/internal/progress"
)

var (
	// ErrNotAwaitingAnswer is returned by HandleAnswer outside a session.
	ErrNotAwaitingAnswer = errors.New("no question is awaiting an answer")

	// ErrActivityDisabled is returned by StartGame for a flagged-off activity.
	ErrActivityDisabled = errors.New("activity is disabled")
)

// freshAttempts bounds the search for a fresh problem not yet asked in
// this session.
const freshAttempts = 5

// ProgressRecorder receives session lifecycle and attempt updates.
// *progress.Tracker implements it.
type ProgressRecorder interface {
	StartSession(ctx context.Context, t problemgen.ProblemType, d problemgen.Difficulty) (string, error)
	AddProblemAttempt(ctx context.Context, a progress.AttemptedProblem) error
	EndSession(ctx context.Context, sessionID string) (*progress.Session, error)
	CheckAchievements(ctx context.Context) ([]achievements.Achievement, error)
}

// FeatureGate decides whether an activity can be played and whether
// finished sessions award badges.
type FeatureGate interface {
	ActivityEnabled(t problemgen.ProblemType) bool
	AchievementsEnabled() bool
}

// Config holds the per-session settings.
type Config struct {
	Difficulty   problemgen.Difficulty
	ProblemCount int
}

// Deps are the orchestrator's collaborators. Planner and Generator are
// required; the rest fall back to no-ops.
type Deps struct {
	Planner   Planner
	Generator ProblemBuilder
	Progress  ProgressRecorder
	Analytics analytics.Tracker
	Flags     FeatureGate
	Clock     func() time.Time
	Logger    *zap.Logger
}

// Orchestrator walks a plan one question at a time. It is driven from a
// single goroutine (the UI event loop) and is not safe for concurrent use.
type Orchestrator struct {
	cfg   Config
	deps  Deps
	state State
}

// NewOrchestrator wires an orchestrator.
func NewOrchestrator(cfg Config, deps Deps) *Orchestrator {
	if deps.Analytics == nil {
		deps.Analytics = analytics.Nop{}
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Orchestrator{cfg: cfg, deps: deps}
}

// Config returns the session settings.
func (o *Orchestrator) Config() Config { return o.cfg }

// SetConfig replaces the settings used by the next StartGame.
func (o *Orchestrator) SetConfig(cfg Config) { o.cfg = cfg }

// State returns a copy of the current state.
func (o *Orchestrator) State() State { return o.state }

// Phase returns the lifecycle phase.
func (o *Orchestrator) Phase() Phase { return o.state.Phase }

// Current returns the question on screen, or nil.
func (o *Orchestrator) Current() *problemgen.Problem { return o.state.Current }

// StartGame begins a session of type t. Any previous session state is
// discarded.
func (o *Orchestrator) StartGame(ctx context.Context, t problemgen.ProblemType) (*problemgen.Problem, error) {
	if o.deps.Flags != nil && !o.deps.Flags.ActivityEnabled(t) {
		return nil, fmt.Errorf("%w: %s", ErrActivityDisabled, t)
	}
	o.state = State{}
	log := o.deps.Logger.With(zap.String("type", string(t)))

	// Collaborators hear about the session only once the plan and the
	// first question exist.
	plan, err := o.deps.Planner.BuildPlan(t, o.cfg.ProblemCount, o.cfg.Difficulty)
	if err != nil {
		return nil, fmt.Errorf("build plan: %w", err)
	}
	o.state = State{
		Plan: plan,
		seen: make(map[string]bool),
	}
	p, err := o.problemAt(0)
	if err != nil {
		o.state = State{}
		return nil, err
	}

	var sessionID string
	if o.deps.Progress != nil {
		id, err := o.deps.Progress.StartSession(ctx, t, o.cfg.Difficulty)
		if err != nil {
			log.Warn("progress start session failed", zap.Error(err))
		}
		sessionID = id
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	o.deps.Analytics.TrackSessionStart(ctx, sessionID, t)
	o.deps.Analytics.TrackActivitySelected(ctx, sessionID, t, o.cfg.ProblemCount)

	o.state.Phase = PhaseAwaitingAnswer
	o.state.SessionID = sessionID
	o.state.StartedAt = o.deps.Clock()
	o.present(p)

	log.Debug("session started",
		zap.String("session_id", sessionID),
		zap.Int("questions", plan.Len()),
		zap.Int("repeats", plan.Repeats))
	return p, nil
}

// UseHint records that the hint for the current question was shown.
func (o *Orchestrator) UseHint() (string, error) {
	if o.state.Phase != PhaseAwaitingAnswer {
		return "", ErrNotAwaitingAnswer
	}
	o.state.HintsUsed++
	return o.state.Current.Hint, nil
}

// HandleAnswer scores the answer to the current question and advances.
// The session ends after the last item of the plan.
func (o *Orchestrator) HandleAnswer(ctx context.Context, answer string) (*Outcome, error) {
	if o.state.Phase != PhaseAwaitingAnswer {
		return nil, ErrNotAwaitingAnswer
	}

	st := &o.state
	q := st.Current
	now := o.deps.Clock()
	spent := now.Sub(st.QuestionStartedAt)
	correct := problemgen.CheckAnswer(answer, q)

	if correct {
		st.Correct++
		st.Streak++
	} else {
		st.Streak = 0
	}

	if o.deps.Progress != nil {
		err := o.deps.Progress.AddProblemAttempt(ctx, progress.AttemptedProblem{
			Problem:    *q,
			SessionID:  st.SessionID,
			UserAnswer: answer,
			Correct:    correct,
			TimeSpent:  spent,
			Attempts:   1,
			HintsUsed:  st.HintsUsed,
			AnsweredAt: now,
		})
		if err != nil {
			o.deps.Logger.Warn("progress record attempt failed", zap.Error(err))
		}
	}
	o.deps.Analytics.TrackProblemAnswered(ctx, analytics.ProblemAnswered{
		SessionID:      st.SessionID,
		Type:           q.Type,
		Difficulty:     q.Difficulty,
		QuestionNumber: st.QuestionNumber(),
		Correct:        correct,
		TimeSpent:      spent,
		HintsUsed:      st.HintsUsed,
	})

	out := &Outcome{Correct: correct, Expected: q.Answer}

	if st.IsLastQuestion() {
		out.Result = o.finish(ctx, now)
		return out, nil
	}

	st.Index++
	next, err := o.problemAt(st.Index)
	if err != nil {
		o.deps.Logger.Error("next question unavailable", zap.Int("index", st.Index), zap.Error(err))
		o.state = State{}
		return nil, err
	}
	o.present(next)
	out.Next = next
	return out, nil
}

// Abandon drops the session in progress without finishing it.
func (o *Orchestrator) Abandon() {
	if o.state.Phase == PhaseAwaitingAnswer {
		o.deps.Logger.Debug("session abandoned",
			zap.String("session_id", o.state.SessionID),
			zap.Int("answered", o.state.Index))
	}
	o.state = State{}
}

func (o *Orchestrator) present(p *problemgen.Problem) {
	o.state.Current = p
	o.state.HintsUsed = 0
	o.state.QuestionStartedAt = o.deps.Clock()
}

// problemAt renders the plan item at index. A planned item that cannot be
// rendered falls back to one fresh generation of the plan's type.
func (o *Orchestrator) problemAt(index int) (*problemgen.Problem, error) {
	plan := o.state.Plan
	item := plan.Items[index]

	if _, fresh := item.(FreshItem); fresh {
		return o.freshProblem(plan)
	}

	p, err := Render(o.deps.Generator, plan, item)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, problemgen.ErrGenerationFailed) {
		return nil, err
	}
	o.deps.Logger.Warn("plan item failed to render, generating fresh problem",
		zap.String("key", item.Key()), zap.Error(err))
	return o.deps.Generator.Generate(plan.Type, plan.Difficulty)
}

// freshProblem generates a problem whose text has not been asked yet in
// this session, accepting a repeat after freshAttempts tries.
func (o *Orchestrator) freshProblem(plan *Plan) (*problemgen.Problem, error) {
	var p *problemgen.Problem
	for range freshAttempts {
		var err error
		p, err = Render(o.deps.Generator, plan, FreshItem{Index: o.state.Index})
		if err != nil {
			return nil, err
		}
		if !o.state.seen[p.Text] {
			break
		}
	}
	o.state.seen[p.Text] = true
	return p, nil
}

func (o *Orchestrator) finish(ctx context.Context, now time.Time) *Result {
	st := &o.state
	res := &Result{
		SessionID:  st.SessionID,
		Type:       st.Plan.Type,
		Difficulty: st.Plan.Difficulty,
		Total:      st.Plan.Len(),
		Correct:    st.Correct,
		Duration:   now.Sub(st.StartedAt),
		Repeats:    st.Plan.Repeats,
	}

	if o.deps.Progress != nil {
		if _, err := o.deps.Progress.EndSession(ctx, st.SessionID); err != nil {
			o.deps.Logger.Warn("progress end session failed", zap.Error(err))
		}
		if o.deps.Flags == nil || o.deps.Flags.AchievementsEnabled() {
			unlocked, err := o.deps.Progress.CheckAchievements(ctx)
			if err != nil {
				o.deps.Logger.Warn("achievement check failed", zap.Error(err))
			}
			res.NewAchievements = unlocked
		}
	}

	o.deps.Analytics.TrackSessionCompleted(ctx, analytics.SessionCompleted{
		SessionID:  res.SessionID,
		Type:       res.Type,
		Difficulty: res.Difficulty,
		Total:      res.Total,
		Correct:    res.Correct,
		Duration:   res.Duration,
		Perfect:    res.Perfect(),
	})

	st.Phase = PhaseComplete
	st.Current = nil
	return res
}
