// Package screens holds what every screen of the app shares.
package screens

import (
	"go.uber.org/zap"

	"github.com/abhisek/mathcamp/internal/analytics"
	"github.com/abhisek/mathcamp/internal/progress"
	"github.com/abhisek/mathcamp/internal/session"
)

// Env is passed from screen to screen. Progress may be nil when no
// database is open.
type Env struct {
	Orchestrator *session.Orchestrator
	Progress     *progress.Tracker
	Flags        *analytics.Flags
	Logger       *zap.Logger
}

// Log returns the logger or a no-op one.
func (e *Env) Log() *zap.Logger {
	if e == nil || e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

// BadgesEnabled reports whether badges are awarded and shown.
func (e *Env) BadgesEnabled() bool {
	return e == nil || e.Flags == nil || e.Flags.AchievementsEnabled()
}

// HintsEnabled reports whether the hint key is offered.
func (e *Env) HintsEnabled() bool {
	return e.Flags == nil || e.Flags.IsEnabled(analytics.FlagHints)
}
