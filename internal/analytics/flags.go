package analytics

import (
	"maps"
	"slices"

	"github.com/abhisek/mathcamp/internal/problemgen"
)

// Flag names a feature switch.
type Flag string

const (
	FlagMultiplication   Flag = "multiplication-activity"
	FlagDivision         Flag = "division-activity"
	FlagComparison       Flag = "comparison-activity"
	FlagWordProblems     Flag = "word-problems"
	FlagFactFamilies     Flag = "fact-families"
	FlagCounting         Flag = "counting"
	FlagCountingSequence Flag = "counting-sequence"
	FlagAchievements     Flag = "achievements"
	FlagHints            Flag = "hints"
)

var defaultFlags = map[Flag]bool{
	FlagMultiplication:   false,
	FlagDivision:         false,
	FlagComparison:       true,
	FlagWordProblems:     true,
	FlagFactFamilies:     true,
	FlagCounting:         true,
	FlagCountingSequence: true,
	FlagAchievements:     true,
	FlagHints:            true,
}

var activityFlags = map[problemgen.ProblemType]Flag{
	problemgen.TypeMultiplication:   FlagMultiplication,
	problemgen.TypeDivision:         FlagDivision,
	problemgen.TypeComparison:       FlagComparison,
	problemgen.TypeWordProblem:      FlagWordProblems,
	problemgen.TypeFactFamily:       FlagFactFamilies,
	problemgen.TypeCounting:         FlagCounting,
	problemgen.TypeCountingSequence: FlagCountingSequence,
}

// Flags is a read-only set of feature switches.
type Flags struct {
	values map[Flag]bool
}

// NewFlags applies overrides on top of the defaults. Unknown names are
// kept so they can be listed, but nothing reads them.
func NewFlags(overrides map[string]bool) *Flags {
	values := maps.Clone(defaultFlags)
	for k, v := range overrides {
		values[Flag(k)] = v
	}
	return &Flags{values: values}
}

// IsEnabled reports the value of flag. Unknown flags are off.
func (f *Flags) IsEnabled(flag Flag) bool {
	return f.values[flag]
}

// ActivityEnabled reports whether activity t can be played. Addition and
// subtraction have no flag and are always on.
func (f *Flags) ActivityEnabled(t problemgen.ProblemType) bool {
	flag, ok := activityFlags[t]
	if !ok {
		return true
	}
	return f.IsEnabled(flag)
}

// AchievementsEnabled reports whether badges are awarded.
func (f *Flags) AchievementsEnabled() bool {
	return f.IsEnabled(FlagAchievements)
}

// EnabledActivities returns the playable activities in menu order.
func (f *Flags) EnabledActivities() []problemgen.ProblemType {
	var out []problemgen.ProblemType
	for _, t := range problemgen.AllProblemTypes() {
		if f.ActivityEnabled(t) {
			out = append(out, t)
		}
	}
	return out
}

// Names returns every known flag name, sorted.
func (f *Flags) Names() []Flag {
	return slices.Sorted(maps.Keys(f.values))
}
