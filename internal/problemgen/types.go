package problemgen

import (
	"fmt"
	"strconv"
	"strings"
)

// Difficulty controls numeric ranges and sequence lengths for every generator.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists all difficulty levels in increasing order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// ParseDifficulty parses a difficulty name (case-insensitive).
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
}

func (d Difficulty) String() string { return string(d) }

// ProblemType identifies an activity category.
type ProblemType string

const (
	TypeAddition         ProblemType = "addition"
	TypeSubtraction      ProblemType = "subtraction"
	TypeMultiplication   ProblemType = "multiplication"
	TypeDivision         ProblemType = "division"
	TypeComparison       ProblemType = "comparison"
	TypeFactFamily       ProblemType = "fact-family"
	TypeWordProblem      ProblemType = "word-problem"
	TypeCounting         ProblemType = "counting"
	TypeCountingSequence ProblemType = "counting-sequence"
)

// AllProblemTypes returns every activity in menu order.
func AllProblemTypes() []ProblemType {
	return []ProblemType{
		TypeAddition,
		TypeSubtraction,
		TypeFactFamily,
		TypeWordProblem,
		TypeCounting,
		TypeCountingSequence,
		TypeComparison,
		TypeMultiplication,
		TypeDivision,
	}
}

// ParseProblemType parses an activity name such as "fact-family".
func ParseProblemType(s string) (ProblemType, error) {
	t := ProblemType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllProblemTypes() {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownProblemType, s)
}

// DisplayName returns the menu label for the activity.
func (t ProblemType) DisplayName() string {
	switch t {
	case TypeAddition:
		return "Addition"
	case TypeSubtraction:
		return "Subtraction"
	case TypeMultiplication:
		return "Multiplication"
	case TypeDivision:
		return "Division"
	case TypeComparison:
		return "Comparison"
	case TypeFactFamily:
		return "Fact Families"
	case TypeWordProblem:
		return "Word Problems"
	case TypeCounting:
		return "Counting"
	case TypeCountingSequence:
		return "Number Sequences"
	default:
		return string(t)
	}
}

// Icon returns a short symbol for the activity.
func (t ProblemType) Icon() string {
	switch t {
	case TypeAddition:
		return "+"
	case TypeSubtraction:
		return "-"
	case TypeMultiplication:
		return "×"
	case TypeDivision:
		return "÷"
	case TypeComparison:
		return "<>"
	case TypeFactFamily:
		return "⌂"
	case TypeWordProblem:
		return "✎"
	case TypeCounting:
		return "#"
	case TypeCountingSequence:
		return "»"
	default:
		return "?"
	}
}

// AnswerFormat describes how the learner provides their answer.
type AnswerFormat string

const (
	// FormatMultipleChoice means the learner picks one of Choices.
	FormatMultipleChoice AnswerFormat = "multiple_choice"

	// FormatNumeric means the learner types a single number.
	FormatNumeric AnswerFormat = "numeric"

	// FormatNumericList means the learner types several numbers separated
	// by spaces, one per blank (fact families).
	FormatNumericList AnswerFormat = "numeric_list"
)

// Problem is a single renderable question. Problems are immutable once
// returned by a Generator.
type Problem struct {
	ID         string
	Type       ProblemType
	Difficulty Difficulty

	// Text is the prompt or expression shown to the learner, e.g. "3 + 4".
	Text string

	Format AnswerFormat

	// Answer is the canonical correct answer. Numbers are decimal strings,
	// comparisons are one of ">", "<", "=". Fact families hold the four
	// expected values separated by single spaces.
	Answer string

	// Choices is populated only for FormatMultipleChoice.
	Choices []string

	Hint string

	Payload Payload
}

// NumericAnswer returns the answer as an int when it is a single number.
func (p *Problem) NumericAnswer() (int, bool) {
	n, err := strconv.Atoi(p.Answer)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Payload carries the type-specific parameters of a Problem. The set of
// implementations is closed; switch on the concrete type.
type Payload interface {
	payload()
}

// Operation is an arithmetic operator.
type Operation string

const (
	OpAdd Operation = "+"
	OpSub Operation = "-"
	OpMul Operation = "×"
	OpDiv Operation = "÷"
)

// Apply computes a op b. Division truncates.
func (o Operation) Apply(a, b int) int {
	switch o {
	case OpAdd:
		return a + b
	case OpSub:
		return a - b
	case OpMul:
		return a * b
	case OpDiv:
		if b == 0 {
			return 0
		}
		return a / b
	}
	return 0
}

// Arithmetic is the payload for addition, subtraction, multiplication and
// division problems.
type Arithmetic struct {
	Op Operation
	A  int
	B  int
}

// Comparison is the payload for "A ? B" symbol problems.
type Comparison struct {
	A int
	B int
}

// Equation is one member of a fact family with its expected result.
type Equation struct {
	Text     string // e.g. "3 + 4 = ?"
	Expected int
}

// FactFamily is two addends, their sum and the four related equations.
type FactFamily struct {
	A, B, Sum int
	Equations []Equation
}

// WordOperation is the arithmetic a word-problem story asks for.
type WordOperation string

const (
	WordAdd      WordOperation = "add"
	WordSubtract WordOperation = "subtract"
	WordCompare  WordOperation = "compare"
)

// WordProblem is a rendered story from the template catalog.
type WordProblem struct {
	Theme     string
	Operation WordOperation
	Story     string
	A, B      int
}

// Layout is how counting items are arranged on screen.
type Layout string

const (
	LayoutLine      Layout = "line"
	LayoutScattered Layout = "scattered"
	LayoutGrid      Layout = "grid"
)

// Counting asks how many Target items appear among Items.
type Counting struct {
	Layout      Layout
	Target      string
	TargetCount int
	Items       []string
}

// Sequence is a skip-counting run; the answer is the term after the last.
type Sequence struct {
	Step  int
	Start int
	Terms []int
}

func (Arithmetic) payload()  {}
func (Comparison) payload()  {}
func (FactFamily) payload()  {}
func (WordProblem) payload() {}
func (Counting) payload()    {}
func (Sequence) payload()    {}
