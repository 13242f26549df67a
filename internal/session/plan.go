package session

import (
	"fmt"
	"strconv"

	"github.com/abhisek/mathcamp/internal/problemgen"
)

// PlanItem is the precomputed parameter tuple for one question. The set
// of implementations is closed; Render switches on the concrete type.
type PlanItem interface {
	// Key is the value that must not repeat within a plan, normally the
	// item's correct answer.
	Key() string

	planItem()
}

// ArithmeticItem is an addition or subtraction slot.
type ArithmeticItem struct {
	Op     problemgen.Operation
	Num1   int
	Num2   int
	Answer int
}

// FactFamilyItem holds two addends and their sum.
type FactFamilyItem struct {
	Numbers [3]int
}

// WordProblemItem selects a story theme and operation. Numbers are drawn
// when the item is rendered.
type WordProblemItem struct {
	Theme     string
	Operation problemgen.WordOperation
}

// CountingItem selects a layout for one counting round.
type CountingItem struct {
	Layout problemgen.Layout
	Index  int
}

// SequenceItem is one skip-counting question.
type SequenceItem struct {
	StepSize      int
	StartNum      int
	CorrectAnswer int
}

// FreshItem marks a slot whose problem is generated at render time.
type FreshItem struct {
	Index int
}

func (i ArithmeticItem) Key() string  { return strconv.Itoa(i.Answer) }
func (i FactFamilyItem) Key() string  { return strconv.Itoa(i.Numbers[2]) }
func (i WordProblemItem) Key() string { return fmt.Sprintf("%s-%s", i.Theme, i.Operation) }
func (i CountingItem) Key() string    { return strconv.Itoa(i.Index) }
func (i SequenceItem) Key() string    { return strconv.Itoa(i.CorrectAnswer) }
func (i FreshItem) Key() string       { return strconv.Itoa(i.Index) }

func (ArithmeticItem) planItem()  {}
func (FactFamilyItem) planItem()  {}
func (WordProblemItem) planItem() {}
func (CountingItem) planItem()    {}
func (SequenceItem) planItem()    {}
func (FreshItem) planItem()       {}

// Plan is the ordered, fixed-length list of items for one session.
type Plan struct {
	Type       problemgen.ProblemType
	Difficulty problemgen.Difficulty
	Items      []PlanItem

	// Requested is the problem count the plan was built for. len(Items)
	// always equals Requested.
	Requested int

	// Repeats counts slots whose key duplicates an earlier slot because
	// the uniqueness search ran out of attempts.
	Repeats int
}

// Len returns the number of questions in the plan.
func (p *Plan) Len() int { return len(p.Items) }

// Retry budgets per slot.
const (
	ArithmeticAttempts  = 30
	FactFamilyAttempts  = 30
	WordProblemAttempts = 30
	SequenceAttempts    = 50
)

// MaxProblemCount caps the number of questions in one session.
const MaxProblemCount = 50
