package session

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/mathcamp/internal/problemgen"
)

// Planner builds session plans.
type Planner interface {
	BuildPlan(t problemgen.ProblemType, count int, d problemgen.Difficulty) (*Plan, error)
}

// DefaultPlanner draws plans from a random source. Types without
// pre-planned parameters get FreshItem slots.
type DefaultPlanner struct {
	rand    problemgen.Rand
	catalog *problemgen.Catalog
	logger  *zap.Logger
}

// NewPlanner returns a planner. A nil logger disables logging.
func NewPlanner(r problemgen.Rand, catalog *problemgen.Catalog, logger *zap.Logger) *DefaultPlanner {
	if r == nil {
		r = problemgen.DefaultRand()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultPlanner{rand: r, catalog: catalog, logger: logger}
}

// BuildPlan returns exactly count items for the given type. Items with a
// unique key are preferred; when a slot exhausts its attempt budget the
// last candidate is accepted as a repeat and counted in Plan.Repeats.
func (p *DefaultPlanner) BuildPlan(t problemgen.ProblemType, count int, d problemgen.Difficulty) (*Plan, error) {
	if count < 1 || count > MaxProblemCount {
		return nil, fmt.Errorf("problem count %d out of range [1, %d]", count, MaxProblemCount)
	}
	if _, err := problemgen.ParseDifficulty(string(d)); err != nil {
		return nil, err
	}

	plan := &Plan{Type: t, Difficulty: d, Requested: count}

	switch t {
	case problemgen.TypeAddition:
		p.fill(plan, ArithmeticAttempts, func(int) PlanItem { return p.arithmeticItem(problemgen.OpAdd, d) })
	case problemgen.TypeSubtraction:
		p.fill(plan, ArithmeticAttempts, func(int) PlanItem { return p.arithmeticItem(problemgen.OpSub, d) })
	case problemgen.TypeFactFamily:
		p.fill(plan, FactFamilyAttempts, func(int) PlanItem { return p.factFamilyItem(d) })
	case problemgen.TypeWordProblem:
		themes, ops, err := p.wordChoices()
		if err != nil {
			return nil, err
		}
		p.fill(plan, WordProblemAttempts, func(int) PlanItem {
			return WordProblemItem{
				Theme:     problemgen.Pick(p.rand, themes),
				Operation: problemgen.Pick(p.rand, ops),
			}
		})
	case problemgen.TypeCounting:
		layouts := problemgen.Layouts(d)
		p.fill(plan, 1, func(i int) PlanItem {
			return CountingItem{Layout: problemgen.Pick(p.rand, layouts), Index: i}
		})
	case problemgen.TypeCountingSequence:
		cov := newStepCoverage(d)
		p.fill(plan, SequenceAttempts, func(i int) PlanItem {
			return p.sequenceItem(d, cov.next(p.rand, i, len(plan.Items), count))
		}, func(item PlanItem) {
			cov.record(item.(SequenceItem).StepSize)
		})
	case problemgen.TypeMultiplication, problemgen.TypeDivision, problemgen.TypeComparison:
		for i := range count {
			plan.Items = append(plan.Items, FreshItem{Index: i})
		}
	default:
		return nil, fmt.Errorf("%w: %q", problemgen.ErrUnknownProblemType, t)
	}

	if plan.Repeats > 0 {
		p.logger.Warn("plan contains repeated answers",
			zap.String("type", string(t)),
			zap.String("difficulty", string(d)),
			zap.Int("count", count),
			zap.Int("repeats", plan.Repeats))
	}
	return plan, nil
}

// fill appends items until the plan holds Requested entries. Each slot
// draws up to attempts candidates looking for an unused key. onAccept
// hooks run after a candidate is appended.
func (p *DefaultPlanner) fill(plan *Plan, attempts int, draw func(slot int) PlanItem, onAccept ...func(PlanItem)) {
	used := make(map[string]bool, plan.Requested)
	for slot := 0; len(plan.Items) < plan.Requested; slot++ {
		var item PlanItem
		unique := false
		for range attempts {
			item = draw(slot)
			if !used[item.Key()] {
				unique = true
				break
			}
		}
		if !unique {
			plan.Repeats++
		}
		used[item.Key()] = true
		plan.Items = append(plan.Items, item)
		for _, fn := range onAccept {
			fn(item)
		}
	}
}

func (p *DefaultPlanner) arithmeticItem(op problemgen.Operation, d problemgen.Difficulty) PlanItem {
	maxA, maxB := problemgen.PlanOperandLimits(d)
	a := problemgen.IntBetween(p.rand, 1, maxA)
	b := problemgen.IntBetween(p.rand, 1, maxB)
	if op == problemgen.OpSub && b > a {
		a, b = b, a
	}
	return ArithmeticItem{Op: op, Num1: a, Num2: b, Answer: op.Apply(a, b)}
}

func (p *DefaultPlanner) factFamilyItem(d problemgen.Difficulty) PlanItem {
	limit := problemgen.FactFamilyMax(d)
	a := problemgen.IntBetween(p.rand, 1, limit)
	b := problemgen.IntBetween(p.rand, 1, limit)
	return FactFamilyItem{Numbers: [3]int{a, b, a + b}}
}

func (p *DefaultPlanner) wordChoices() ([]string, []problemgen.WordOperation, error) {
	catalog := p.catalog
	if catalog == nil {
		var err error
		if catalog, err = problemgen.DefaultCatalog(); err != nil {
			return nil, nil, fmt.Errorf("load word problem catalog: %w", err)
		}
	}
	return catalog.Themes(), catalog.Operations(), nil
}

func (p *DefaultPlanner) sequenceItem(d problemgen.Difficulty, step int) PlanItem {
	start := problemgen.Pick(p.rand, problemgen.ValidStarts(step))
	length := problemgen.SequenceLength(d)
	return SequenceItem{
		StepSize:      step,
		StartNum:      start,
		CorrectAnswer: start + length*step,
	}
}
