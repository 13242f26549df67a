package achievements

import "time"

// PerfectSessionMinProblems is the smallest session that can earn
// PerfectSession.
const PerfectSessionMinProblems = 5

// Stats is the progress snapshot achievements are judged against.
type Stats struct {
	TotalProblems int
	CurrentStreak int

	// LastSessionScore and LastSessionProblems describe the most recently
	// finished session. Zero when none has finished.
	LastSessionScore    int
	LastSessionProblems int
}

// Earned returns the IDs whose conditions stats satisfies, in catalog
// order.
func Earned(s Stats) []ID {
	var ids []ID
	if s.TotalProblems >= 1 {
		ids = append(ids, FirstProblem)
	}
	if s.TotalProblems >= 10 {
		ids = append(ids, TenProblems)
	}
	if s.LastSessionScore == 100 && s.LastSessionProblems >= PerfectSessionMinProblems {
		ids = append(ids, PerfectSession)
	}
	if s.CurrentStreak >= BaseStreakThreshold {
		ids = append(ids, StreakFive)
	}
	return ids
}

// Newly returns the achievements earned by s that are not in have,
// stamped with now.
func Newly(s Stats, have map[ID]bool, now time.Time) []Achievement {
	var out []Achievement
	for _, id := range Earned(s) {
		if have[id] {
			continue
		}
		a, ok := Lookup(id)
		if !ok {
			continue
		}
		a.UnlockedAt = now
		out = append(out, a)
	}
	return out
}
