package problemgen

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// Generator builds problems. Every exported method is bounded: a problem
// that fails validation is rebuilt from scratch up to MaxAttempts times,
// then *GenerationFailedError is returned.
type Generator struct {
	rand    Rand
	catalog *Catalog
	config  Config
	logger  *zap.Logger
}

// New creates a Generator. A missing catalog falls back to the embedded one.
func New(cfg Config) (*Generator, error) {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.OptionCount <= 0 {
		cfg.OptionCount = DefaultOptionCount
	}
	r := cfg.Rand
	if r == nil {
		r = DefaultRand()
	}
	catalog := cfg.Catalog
	if catalog == nil {
		var err error
		if catalog, err = DefaultCatalog(); err != nil {
			return nil, fmt.Errorf("load word-problem catalog: %w", err)
		}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{rand: r, catalog: catalog, config: cfg, logger: logger}, nil
}

// Catalog returns the word-problem catalog in use.
func (g *Generator) Catalog() *Catalog { return g.catalog }

// Rand returns the generator's randomness source.
func (g *Generator) Rand() Rand { return g.rand }

// Generate produces a fresh problem of type t with parameters drawn from
// the difficulty's ranges.
func (g *Generator) Generate(t ProblemType, d Difficulty) (*Problem, error) {
	var build func() (*Problem, error)

	switch t {
	case TypeAddition, TypeSubtraction, TypeMultiplication, TypeDivision:
		op := opForType(t)
		build = func() (*Problem, error) {
			a, b := DrawOperands(g.rand, op, d)
			return g.buildArithmetic(d, op, a, b)
		}
	case TypeComparison:
		build = func() (*Problem, error) {
			maxN := ComparisonMax(d)
			return g.buildComparison(d, IntBetween(g.rand, 1, maxN), IntBetween(g.rand, 1, maxN))
		}
	case TypeFactFamily:
		build = func() (*Problem, error) {
			half := FactFamilyMax(d) / 2
			return g.buildFactFamily(d, IntBetween(g.rand, 1, half), IntBetween(g.rand, 1, half))
		}
	case TypeWordProblem:
		build = func() (*Problem, error) {
			op := Pick(g.rand, g.catalog.Operations())
			return g.buildWordProblem(d, Pick(g.rand, g.catalog.Find("", op)))
		}
	case TypeCounting:
		build = func() (*Problem, error) {
			return g.buildCounting(d, Pick(g.rand, Layouts(d)))
		}
	case TypeCountingSequence:
		build = func() (*Problem, error) {
			step := Pick(g.rand, SequenceSteps(d))
			return g.buildSequence(d, step, Pick(g.rand, ValidStarts(step)))
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProblemType, t)
	}

	return g.attempt(t, d, build)
}

// Arithmetic renders a fixed operand pair. Used for planned sessions.
func (g *Generator) Arithmetic(d Difficulty, op Operation, a, b int) (*Problem, error) {
	return g.attempt(typeForOp(op), d, func() (*Problem, error) {
		return g.buildArithmetic(d, op, a, b)
	})
}

// Comparison renders a fixed "a ? b" problem.
func (g *Generator) Comparison(d Difficulty, a, b int) (*Problem, error) {
	return g.attempt(TypeComparison, d, func() (*Problem, error) {
		return g.buildComparison(d, a, b)
	})
}

// FactFamily renders the family of two addends.
func (g *Generator) FactFamily(d Difficulty, a, b int) (*Problem, error) {
	return g.attempt(TypeFactFamily, d, func() (*Problem, error) {
		return g.buildFactFamily(d, a, b)
	})
}

// WordProblem renders a story for the theme and operation with freshly
// drawn numbers. Falls back to any theme if the catalog has no template
// for the pair.
func (g *Generator) WordProblem(d Difficulty, theme string, op WordOperation) (*Problem, error) {
	candidates := g.catalog.Find(theme, op)
	if len(candidates) == 0 {
		candidates = g.catalog.Find("", op)
	}
	if len(candidates) == 0 {
		return nil, &GenerationFailedError{
			Type:       TypeWordProblem,
			Difficulty: d,
			Err:        fmt.Errorf("no template for operation %q", op),
		}
	}
	return g.attempt(TypeWordProblem, d, func() (*Problem, error) {
		return g.buildWordProblem(d, Pick(g.rand, candidates))
	})
}

// Counting renders a counting exercise in the given layout.
func (g *Generator) Counting(d Difficulty, layout Layout) (*Problem, error) {
	return g.attempt(TypeCounting, d, func() (*Problem, error) {
		return g.buildCounting(d, layout)
	})
}

// Sequence renders a skip-counting sequence.
func (g *Generator) Sequence(d Difficulty, step, start int) (*Problem, error) {
	return g.attempt(TypeCountingSequence, d, func() (*Problem, error) {
		return g.buildSequence(d, step, start)
	})
}

// attempt runs build until a problem passes validation or the budget is
// spent.
func (g *Generator) attempt(t ProblemType, d Difficulty, build func() (*Problem, error)) (*Problem, error) {
	var lastErr error
	for range g.config.MaxAttempts {
		p, err := build()
		if err == nil {
			err = runValidators(p, g.config.Validators)
		}
		if err == nil {
			p.ID = newProblemID(t)
			return p, nil
		}
		lastErr = err
	}

	g.logger.Warn("problem generation exhausted",
		zap.String("type", string(t)),
		zap.String("difficulty", string(d)),
		zap.Int("attempts", g.config.MaxAttempts),
		zap.Error(lastErr),
	)
	return nil, &GenerationFailedError{Type: t, Difficulty: d, Attempts: g.config.MaxAttempts, Err: lastErr}
}

// errOptionsExhausted is returned by builders when option generation
// reports an invalid set.
func errOptionsExhausted(correct int) error {
	return &ValidationError{
		Validator: "options",
		Message:   fmt.Sprintf("could not build a valid option set for %d", correct),
	}
}

func (g *Generator) numericChoices(correct, minValue int) ([]string, error) {
	set := GenerateOptions(g.rand, correct, g.config.OptionCount, minValue)
	if !set.Valid {
		return nil, errOptionsExhausted(correct)
	}
	return formatOptions(set.Options), nil
}

func (g *Generator) buildArithmetic(d Difficulty, op Operation, a, b int) (*Problem, error) {
	answer := op.Apply(a, b)
	minValue := 1
	if op == OpSub || op == OpDiv {
		minValue = 0
	}
	choices, err := g.numericChoices(answer, minValue)
	if err != nil {
		return nil, err
	}
	return &Problem{
		Type:       typeForOp(op),
		Difficulty: d,
		Text:       fmt.Sprintf("%d %s %d", a, op, b),
		Format:     FormatMultipleChoice,
		Answer:     strconv.Itoa(answer),
		Choices:    choices,
		Hint:       arithmeticHint(op, a, b),
		Payload:    Arithmetic{Op: op, A: a, B: b},
	}, nil
}

func arithmeticHint(op Operation, a, b int) string {
	switch op {
	case OpAdd:
		return fmt.Sprintf("Count %d objects, then add %d more!", a, b)
	case OpSub:
		return fmt.Sprintf("Start with %d objects and take away %d!", a, b)
	case OpMul:
		return fmt.Sprintf("Make %d groups of %d and count them all!", a, b)
	case OpDiv:
		return fmt.Sprintf("Share %d objects into %d equal groups!", a, b)
	}
	return ""
}

func (g *Generator) buildComparison(d Difficulty, a, b int) (*Problem, error) {
	return &Problem{
		Type:       TypeComparison,
		Difficulty: d,
		Text:       fmt.Sprintf("%d ? %d", a, b),
		Format:     FormatMultipleChoice,
		Answer:     compareSymbol(a, b),
		Choices:    []string{">", "<", "="},
		Hint:       "Which number is bigger? Use > for bigger, < for smaller, = for same!",
		Payload:    Comparison{A: a, B: b},
	}, nil
}

func (g *Generator) buildFactFamily(d Difficulty, a, b int) (*Problem, error) {
	sum := a + b
	eqs := []Equation{
		{Text: fmt.Sprintf("%d + %d = ?", a, b), Expected: sum},
		{Text: fmt.Sprintf("%d + %d = ?", b, a), Expected: sum},
		{Text: fmt.Sprintf("%d - %d = ?", sum, a), Expected: b},
		{Text: fmt.Sprintf("%d - %d = ?", sum, b), Expected: a},
	}
	answers := make([]string, len(eqs))
	for i, eq := range eqs {
		answers[i] = strconv.Itoa(eq.Expected)
	}
	return &Problem{
		Type:       TypeFactFamily,
		Difficulty: d,
		Text:       fmt.Sprintf("Fact family of %d, %d and %d", a, b, sum),
		Format:     FormatNumericList,
		Answer:     strings.Join(answers, " "),
		Hint:       fmt.Sprintf("%d and %d make %d. Take one part away to find the other!", a, b, sum),
		Payload:    FactFamily{A: a, B: b, Sum: sum, Equations: eqs},
	}, nil
}

func (g *Generator) buildWordProblem(d Difficulty, t *Template) (*Problem, error) {
	maxA, maxB := WordOperandLimits(d)
	a, b := IntBetween(g.rand, 1, maxA), IntBetween(g.rand, 1, maxB)
	switch t.Operation {
	case WordSubtract:
		if b > a {
			a, b = b, a
		}
	case WordCompare:
		for a == b {
			b = IntBetween(g.rand, 1, maxB)
		}
	}

	story, question, err := t.Render(a, b)
	if err != nil {
		return nil, err
	}
	answer := wordAnswer(t.Operation, a, b)
	choices, err := g.numericChoices(answer, 0)
	if err != nil {
		return nil, err
	}
	return &Problem{
		Type:       TypeWordProblem,
		Difficulty: d,
		Text:       question,
		Format:     FormatMultipleChoice,
		Answer:     strconv.Itoa(answer),
		Choices:    choices,
		Hint:       wordHint(t.Operation),
		Payload:    WordProblem{Theme: t.Theme, Operation: t.Operation, Story: story, A: a, B: b},
	}, nil
}

func wordHint(op WordOperation) string {
	switch op {
	case WordSubtract:
		return "Some went away. Take them away from the start!"
	case WordCompare:
		return "Line them up and count the extras!"
	default:
		return "Put both groups together and count them all!"
	}
}

func (g *Generator) buildCounting(d Difficulty, layout Layout) (*Problem, error) {
	minTarget, maxTarget, minExtra, maxExtra := countingRange(d)
	targetCount := IntBetween(g.rand, minTarget, maxTarget)
	extra := IntBetween(g.rand, minExtra, maxExtra)

	target := Pick(g.rand, CountingItems)
	others := slices.DeleteFunc(slices.Clone(CountingItems), func(s string) bool { return s == target })

	items := make([]string, 0, targetCount+extra)
	for range targetCount {
		items = append(items, target)
	}
	for range extra {
		items = append(items, Pick(g.rand, others))
	}
	g.rand.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })

	choices, err := g.numericChoices(targetCount, 1)
	if err != nil {
		return nil, err
	}
	return &Problem{
		Type:       TypeCounting,
		Difficulty: d,
		Text:       fmt.Sprintf("How many %s can you count?", target+"s"),
		Format:     FormatMultipleChoice,
		Answer:     strconv.Itoa(targetCount),
		Choices:    choices,
		Hint:       fmt.Sprintf("Touch each %s as you count it!", target),
		Payload:    Counting{Layout: layout, Target: target, TargetCount: targetCount, Items: items},
	}, nil
}

func (g *Generator) buildSequence(d Difficulty, step, start int) (*Problem, error) {
	n := SequenceLength(d)
	terms := make([]int, n)
	for i := range terms {
		terms[i] = start + i*step
	}
	answer := start + n*step

	options, err := g.sequenceOptions(answer, step, terms[n-1])
	if err != nil {
		return nil, err
	}

	shown := make([]string, 0, n+1)
	for _, t := range terms {
		shown = append(shown, strconv.Itoa(t))
	}
	text := strings.Join(append(shown, "?"), ", ")

	return &Problem{
		Type:       TypeCountingSequence,
		Difficulty: d,
		Text:       text,
		Format:     FormatMultipleChoice,
		Answer:     strconv.Itoa(answer),
		Choices:    formatOptions(options),
		Hint:       fmt.Sprintf("Count by %ds!", step),
		Payload:    Sequence{Step: step, Start: start, Terms: terms},
	}, nil
}

// sequenceOptions prefers distractors that mirror common counting
// mistakes, then tops up from GenerateOptions.
func (g *Generator) sequenceOptions(answer, step, last int) ([]int, error) {
	count := g.config.OptionCount
	candidates := []int{answer - step, answer + 2*step, last, answer - 1, answer + 1}
	if step > 1 {
		candidates = append(candidates, answer-step/2)
	}

	options := []int{answer}
	for _, c := range candidates {
		if len(options) == count {
			break
		}
		if c > 0 && !slices.Contains(options, c) {
			options = append(options, c)
		}
	}
	if len(options) < count {
		set := GenerateOptions(g.rand, answer, count, 1)
		for _, c := range set.Options {
			if len(options) == count {
				break
			}
			if !slices.Contains(options, c) {
				options = append(options, c)
			}
		}
	}
	if len(options) != count {
		return nil, errOptionsExhausted(answer)
	}
	g.rand.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })
	return options, nil
}

func opForType(t ProblemType) Operation {
	switch t {
	case TypeSubtraction:
		return OpSub
	case TypeMultiplication:
		return OpMul
	case TypeDivision:
		return OpDiv
	default:
		return OpAdd
	}
}

func typeForOp(op Operation) ProblemType {
	switch op {
	case OpSub:
		return TypeSubtraction
	case OpMul:
		return TypeMultiplication
	case OpDiv:
		return TypeDivision
	default:
		return TypeAddition
	}
}

var idPrefixes = map[ProblemType]string{
	TypeAddition:         "add",
	TypeSubtraction:      "sub",
	TypeMultiplication:   "mul",
	TypeDivision:         "div",
	TypeComparison:       "cmp",
	TypeFactFamily:       "ff",
	TypeWordProblem:      "wp",
	TypeCounting:         "cnt",
	TypeCountingSequence: "seq",
}

func newProblemID(t ProblemType) string {
	return idPrefixes[t] + "-" + ulid.Make().String()
}
