package achievements

import "time"

// ID identifies an achievement.
type ID string

const (
	FirstProblem   ID = "first-problem"
	TenProblems    ID = "ten-problems"
	PerfectSession ID = "perfect-session"
	StreakFive     ID = "streak-5"
)

// Achievement is a badge the learner can unlock once.
type Achievement struct {
	ID          ID
	Name        string
	Description string
	Icon        string
	Rarity      Rarity

	// UnlockedAt is zero for achievements that are still locked.
	UnlockedAt time.Time
}

// Unlocked reports whether the achievement has been earned.
func (a Achievement) Unlocked() bool { return !a.UnlockedAt.IsZero() }

var catalog = []Achievement{
	{ID: FirstProblem, Name: "First Steps", Description: "Solve your first problem", Icon: "👣", Rarity: RarityCommon},
	{ID: TenProblems, Name: "Problem Solver", Description: "Solve 10 problems", Icon: "🧠", Rarity: RarityRare},
	{ID: PerfectSession, Name: "Perfect Score", Description: "Get 100% in a session of 5 or more problems", Icon: "⭐", Rarity: RarityEpic},
	{ID: StreakFive, Name: "On Fire", Description: "Answer 5 problems correctly in a row", Icon: "🔥", Rarity: RarityRare},
}

// All returns every achievement in display order, all locked.
func All() []Achievement {
	out := make([]Achievement, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the catalog entry for id.
func Lookup(id ID) (Achievement, bool) {
	for _, a := range catalog {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}
