package session

import "github.com/abhisek/mathcamp/internal/problemgen"

// stepCoverage chooses step sizes for counting-sequence plans.
//
// Medium and hard plans must contain every coverage step at least once
// when the plan is long enough. A step with no accepted item yet is
// forced while the slot index is below count-reserve; the reserve leaves
// the tail of the plan to the weighted draw. Easy plans only draw.
type stepCoverage struct {
	difficulty problemgen.Difficulty
	required   []int
	reserve    int
	counts     map[int]int
}

type weightedStep struct {
	below float64
	step  int
}

var (
	mediumWeights = []weightedStep{{0.15, 1}, {0.35, 2}, {0.55, 3}, {1, 5}}
	hardWeights   = []weightedStep{{0.10, 1}, {0.25, 2}, {0.40, 3}, {0.65, 5}, {1, 10}}
)

func newStepCoverage(d problemgen.Difficulty) *stepCoverage {
	c := &stepCoverage{difficulty: d, counts: make(map[int]int)}
	switch d {
	case problemgen.DifficultyMedium:
		c.required, c.reserve = []int{2, 3, 5}, 2
	case problemgen.DifficultyHard:
		c.required, c.reserve = []int{2, 3, 5, 10}, 3
	}
	return c
}

// next returns the step for slot, given how many items are already
// planned out of count.
func (c *stepCoverage) next(r problemgen.Rand, slot, planned, count int) int {
	if c.difficulty == problemgen.DifficultyEasy || len(c.required) == 0 {
		if r.Float64() < 0.3 {
			return 1
		}
		return 2
	}

	if slot < count-c.reserve && planned < count-1 {
		for _, s := range c.required {
			if c.counts[s] == 0 {
				return s
			}
		}
	}

	weights := mediumWeights
	if c.difficulty == problemgen.DifficultyHard {
		weights = hardWeights
	}
	roll := r.Float64()
	for _, w := range weights {
		if roll < w.below {
			return w.step
		}
	}
	return weights[len(weights)-1].step
}

func (c *stepCoverage) record(step int) {
	c.counts[step]++
}

// RequiredSteps returns the step sizes a plan of count items at d is
// guaranteed to contain.
func RequiredSteps(d problemgen.Difficulty, count int) []int {
	c := newStepCoverage(d)
	limit := min(count-c.reserve, count-1)
	if limit <= 0 {
		return nil
	}
	return c.required[:min(limit, len(c.required))]
}
