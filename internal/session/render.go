package session

import (
	"fmt"

	"github.com/abhisek/mathcamp/internal/problemgen"
)

// ProblemBuilder turns parameters into validated problems.
// *problemgen.Generator implements it.
type ProblemBuilder interface {
	Generate(t problemgen.ProblemType, d problemgen.Difficulty) (*problemgen.Problem, error)
	Arithmetic(d problemgen.Difficulty, op problemgen.Operation, a, b int) (*problemgen.Problem, error)
	FactFamily(d problemgen.Difficulty, a, b int) (*problemgen.Problem, error)
	WordProblem(d problemgen.Difficulty, theme string, op problemgen.WordOperation) (*problemgen.Problem, error)
	Counting(d problemgen.Difficulty, layout problemgen.Layout) (*problemgen.Problem, error)
	Sequence(d problemgen.Difficulty, step, start int) (*problemgen.Problem, error)
}

// Render converts one plan item into a problem.
func Render(b ProblemBuilder, plan *Plan, item PlanItem) (*problemgen.Problem, error) {
	d := plan.Difficulty
	switch it := item.(type) {
	case ArithmeticItem:
		return b.Arithmetic(d, it.Op, it.Num1, it.Num2)
	case FactFamilyItem:
		return b.FactFamily(d, it.Numbers[0], it.Numbers[1])
	case WordProblemItem:
		return b.WordProblem(d, it.Theme, it.Operation)
	case CountingItem:
		return b.Counting(d, it.Layout)
	case SequenceItem:
		return b.Sequence(d, it.StepSize, it.StartNum)
	case FreshItem:
		return b.Generate(plan.Type, d)
	default:
		return nil, fmt.Errorf("unsupported plan item %T", item)
	}
}
