package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/mathcamp/internal/problemgen"
)

func newTestPlanner(seed uint64) *DefaultPlanner {
	return NewPlanner(problemgen.NewRand(seed), nil, nil)
}

func TestBuildPlanExactCount(t *testing.T) {
	p := newTestPlanner(1)
	for _, pt := range problemgen.AllProblemTypes() {
		for _, d := range problemgen.Difficulties {
			for _, n := range []int{1, 5, 10, MaxProblemCount} {
				plan, err := p.BuildPlan(pt, n, d)
				require.NoError(t, err, "%s/%s/%d", pt, d, n)
				assert.Equal(t, n, plan.Len(), "%s/%s/%d", pt, d, n)
				assert.Equal(t, n, plan.Requested)
			}
		}
	}
}

func TestBuildPlanRejectsBadInput(t *testing.T) {
	p := newTestPlanner(1)

	_, err := p.BuildPlan(problemgen.TypeAddition, 0, problemgen.DifficultyEasy)
	assert.Error(t, err)
	_, err = p.BuildPlan(problemgen.TypeAddition, MaxProblemCount+1, problemgen.DifficultyEasy)
	assert.Error(t, err)
	_, err = p.BuildPlan(problemgen.TypeAddition, 5, "impossible")
	assert.ErrorIs(t, err, problemgen.ErrUnknownDifficulty)
	_, err = p.BuildPlan("algebra", 5, problemgen.DifficultyEasy)
	assert.ErrorIs(t, err, problemgen.ErrUnknownProblemType)
}

// Repeats counts exactly the items whose key was already used.
func TestBuildPlanRepeatsMatchDuplicateKeys(t *testing.T) {
	p := newTestPlanner(7)
	for _, pt := range []problemgen.ProblemType{
		problemgen.TypeAddition,
		problemgen.TypeSubtraction,
		problemgen.TypeFactFamily,
		problemgen.TypeWordProblem,
		problemgen.TypeCountingSequence,
	} {
		plan, err := p.BuildPlan(pt, 20, problemgen.DifficultyEasy)
		require.NoError(t, err)

		seen := map[string]bool{}
		dups := 0
		for _, item := range plan.Items {
			if seen[item.Key()] {
				dups++
			}
			seen[item.Key()] = true
		}
		assert.Equal(t, dups, plan.Repeats, "type %s", pt)
	}
}

func TestBuildPlanUniqueWhenRoomExists(t *testing.T) {
	p := newTestPlanner(3)
	plan, err := p.BuildPlan(problemgen.TypeAddition, 8, problemgen.DifficultyHard)
	require.NoError(t, err)
	assert.Zero(t, plan.Repeats)
}

func TestBuildPlanEasyAdditionRepeatsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	p := NewPlanner(problemgen.NewRand(11), nil, zap.New(core))

	// Easy sums span 2..10, so twenty items must repeat.
	plan, err := p.BuildPlan(problemgen.TypeAddition, 20, problemgen.DifficultyEasy)
	require.NoError(t, err)
	assert.Equal(t, 20, plan.Len())
	assert.GreaterOrEqual(t, plan.Repeats, 11)
	assert.Equal(t, 1, logs.FilterMessage("plan contains repeated answers").Len())
}

func TestArithmeticItemsWithinRange(t *testing.T) {
	p := newTestPlanner(5)
	for _, d := range problemgen.Difficulties {
		plan, err := p.BuildPlan(problemgen.TypeAddition, 30, d)
		require.NoError(t, err)
		maxA, maxB := problemgen.PlanOperandLimits(d)
		for _, item := range plan.Items {
			it := item.(ArithmeticItem)
			assert.Equal(t, problemgen.OpAdd, it.Op)
			assert.True(t, it.Num1 >= 1 && it.Num1 <= maxA)
			assert.True(t, it.Num2 >= 1 && it.Num2 <= maxB)
			assert.Equal(t, it.Num1+it.Num2, it.Answer)
		}
	}
}

func TestArithmeticPlanBounds(t *testing.T) {
	tests := []struct {
		pt         problemgen.ProblemType
		d          problemgen.Difficulty
		maxA, maxB int
	}{
		{problemgen.TypeAddition, problemgen.DifficultyEasy, 5, 5},
		{problemgen.TypeAddition, problemgen.DifficultyHard, 15, 10},
		{problemgen.TypeSubtraction, problemgen.DifficultyEasy, 5, 5},
		{problemgen.TypeSubtraction, problemgen.DifficultyMedium, 10, 10},
		{problemgen.TypeSubtraction, problemgen.DifficultyHard, 15, 10},
	}

	for _, tc := range tests {
		for seed := uint64(1); seed <= 50; seed++ {
			plan, err := newTestPlanner(seed).BuildPlan(tc.pt, 20, tc.d)
			require.NoError(t, err)
			for _, item := range plan.Items {
				it := item.(ArithmeticItem)
				// Subtraction orders operands larger first, so either
				// operand may come from the wider bound.
				hi := max(tc.maxA, tc.maxB)
				if tc.pt == problemgen.TypeAddition {
					if it.Num1 > tc.maxA || it.Num2 > tc.maxB {
						t.Errorf("%s/%s: operands %d, %d exceed %d, %d", tc.pt, tc.d, it.Num1, it.Num2, tc.maxA, tc.maxB)
					}
				} else if it.Num1 > hi || it.Num2 > hi {
					t.Errorf("%s/%s: operands %d, %d exceed %d", tc.pt, tc.d, it.Num1, it.Num2, hi)
				}
			}
		}
	}
}

func TestSubtractionItemsNonNegative(t *testing.T) {
	p := newTestPlanner(9)
	for _, d := range problemgen.Difficulties {
		plan, err := p.BuildPlan(problemgen.TypeSubtraction, 40, d)
		require.NoError(t, err)
		for _, item := range plan.Items {
			it := item.(ArithmeticItem)
			assert.GreaterOrEqual(t, it.Num1, it.Num2)
			assert.GreaterOrEqual(t, it.Answer, 0)
			assert.Equal(t, it.Num1-it.Num2, it.Answer)
		}
	}
}

func TestFactFamilyItems(t *testing.T) {
	p := newTestPlanner(2)
	plan, err := p.BuildPlan(problemgen.TypeFactFamily, 10, problemgen.DifficultyMedium)
	require.NoError(t, err)
	limit := problemgen.FactFamilyMax(problemgen.DifficultyMedium)
	for _, item := range plan.Items {
		n := item.(FactFamilyItem).Numbers
		assert.True(t, n[0] >= 1 && n[0] <= limit)
		assert.True(t, n[1] >= 1 && n[1] <= limit)
		assert.Equal(t, n[0]+n[1], n[2])
	}
}

func TestWordProblemItemsFromCatalog(t *testing.T) {
	catalog, err := problemgen.DefaultCatalog()
	require.NoError(t, err)
	p := NewPlanner(problemgen.NewRand(4), catalog, nil)

	plan, err := p.BuildPlan(problemgen.TypeWordProblem, 6, problemgen.DifficultyEasy)
	require.NoError(t, err)
	for _, item := range plan.Items {
		it := item.(WordProblemItem)
		assert.Contains(t, catalog.Themes(), it.Theme)
		assert.Contains(t, catalog.Operations(), it.Operation)
		assert.Equal(t, it.Theme+"-"+string(it.Operation), it.Key())
	}
}

func TestCountingItemsNeverRepeat(t *testing.T) {
	p := newTestPlanner(6)
	plan, err := p.BuildPlan(problemgen.TypeCounting, 12, problemgen.DifficultyEasy)
	require.NoError(t, err)
	assert.Zero(t, plan.Repeats)
	for i, item := range plan.Items {
		it := item.(CountingItem)
		assert.Equal(t, i, it.Index)
		assert.Contains(t, problemgen.Layouts(problemgen.DifficultyEasy), it.Layout)
	}
}

func TestSequenceItemsStartOnBoundary(t *testing.T) {
	p := newTestPlanner(8)
	for _, d := range problemgen.Difficulties {
		plan, err := p.BuildPlan(problemgen.TypeCountingSequence, 25, d)
		require.NoError(t, err)
		length := problemgen.SequenceLength(d)
		for _, item := range plan.Items {
			it := item.(SequenceItem)
			assert.Contains(t, problemgen.SequenceSteps(d), it.StepSize)
			assert.Contains(t, problemgen.ValidStarts(it.StepSize), it.StartNum)
			assert.Equal(t, it.StartNum+length*it.StepSize, it.CorrectAnswer)
		}
	}
}

func TestFreshTypesGetFreshItems(t *testing.T) {
	p := newTestPlanner(1)
	for _, pt := range []problemgen.ProblemType{
		problemgen.TypeMultiplication,
		problemgen.TypeDivision,
		problemgen.TypeComparison,
	} {
		plan, err := p.BuildPlan(pt, 4, problemgen.DifficultyEasy)
		require.NoError(t, err)
		for i, item := range plan.Items {
			assert.Equal(t, FreshItem{Index: i}, item)
		}
	}
}
