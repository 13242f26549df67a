package problemgen

import (
	"errors"
	"slices"
	"strconv"
	"strings"
	"testing"
)

func testGenerator(t *testing.T, seed uint64) *Generator {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Rand = NewRand(seed)
	g, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func TestGenerate_AllTypesPassValidation(t *testing.T) {
	g := testGenerator(t, 1)
	for _, pt := range AllProblemTypes() {
		for _, d := range Difficulties {
			for range 25 {
				p, err := g.Generate(pt, d)
				if err != nil {
					t.Fatalf("Generate(%s, %s): %v", pt, d, err)
				}
				if p.Type != pt {
					t.Errorf("Type = %s, want %s", p.Type, pt)
				}
				if p.Difficulty != d {
					t.Errorf("Difficulty = %s, want %s", p.Difficulty, d)
				}
				if p.ID == "" {
					t.Error("expected an ID")
				}
				if p.Format == FormatMultipleChoice && !slices.Contains(p.Choices, p.Answer) {
					t.Errorf("%s: answer %q not in choices %v", pt, p.Answer, p.Choices)
				}
			}
		}
	}
}

func TestGenerate_UnknownType(t *testing.T) {
	g := testGenerator(t, 1)
	_, err := g.Generate("pattern", DifficultyEasy)
	if !errors.Is(err, ErrUnknownProblemType) {
		t.Errorf("err = %v, want ErrUnknownProblemType", err)
	}
}

func TestGenerate_AdditionRanges(t *testing.T) {
	g := testGenerator(t, 2)
	tests := []struct {
		d          Difficulty
		maxA, maxB int
	}{
		{DifficultyEasy, 5, 5},
		{DifficultyMedium, 10, 10},
		{DifficultyHard, 15, 15},
	}
	for _, tc := range tests {
		for range 100 {
			p, err := g.Generate(TypeAddition, tc.d)
			if err != nil {
				t.Fatal(err)
			}
			a := p.Payload.(Arithmetic)
			if a.A < 1 || a.A > tc.maxA || a.B < 1 || a.B > tc.maxB {
				t.Errorf("%s: operands %d, %d outside [1,%d]x[1,%d]", tc.d, a.A, a.B, tc.maxA, tc.maxB)
			}
			if p.Text != strconv.Itoa(a.A)+" + "+strconv.Itoa(a.B) {
				t.Errorf("Text = %q", p.Text)
			}
		}
	}
}

func TestGenerate_NeverNegative(t *testing.T) {
	g := testGenerator(t, 3)
	for _, pt := range []ProblemType{TypeSubtraction, TypeDivision} {
		for _, d := range Difficulties {
			for range 200 {
				p, err := g.Generate(pt, d)
				if err != nil {
					t.Fatal(err)
				}
				n, ok := p.NumericAnswer()
				if !ok || n < 0 {
					t.Errorf("%s/%s: answer %q is negative or not a number", pt, d, p.Answer)
				}
			}
		}
	}
}

func TestGenerate_DivisionIsWhole(t *testing.T) {
	g := testGenerator(t, 4)
	for _, d := range Difficulties {
		for range 200 {
			p, err := g.Generate(TypeDivision, d)
			if err != nil {
				t.Fatal(err)
			}
			a := p.Payload.(Arithmetic)
			if a.B == 0 || a.A%a.B != 0 {
				t.Errorf("%d ÷ %d is not whole", a.A, a.B)
			}
		}
	}
}

func TestGenerate_MultiplicationEasyRange(t *testing.T) {
	g := testGenerator(t, 5)
	for range 100 {
		p, err := g.Generate(TypeMultiplication, DifficultyEasy)
		if err != nil {
			t.Fatal(err)
		}
		a := p.Payload.(Arithmetic)
		if a.A < 1 || a.A > 5 || a.B < 1 || a.B > 3 {
			t.Errorf("factors %d × %d outside [1,5]x[1,3]", a.A, a.B)
		}
	}
}

func TestGenerate_ComparisonUsesFixedSymbols(t *testing.T) {
	g := testGenerator(t, 6)
	for range 100 {
		p, err := g.Generate(TypeComparison, DifficultyMedium)
		if err != nil {
			t.Fatal(err)
		}
		if !slices.Equal(p.Choices, []string{">", "<", "="}) {
			t.Errorf("Choices = %v", p.Choices)
		}
		c := p.Payload.(Comparison)
		if want := compareSymbol(c.A, c.B); p.Answer != want {
			t.Errorf("%d ? %d: Answer = %q, want %q", c.A, c.B, p.Answer, want)
		}
	}
}

func TestFactFamily(t *testing.T) {
	g := testGenerator(t, 7)
	p, err := g.FactFamily(DifficultyEasy, 3, 4)
	if err != nil {
		t.Fatal(err)
	}
	if p.Format != FormatNumericList {
		t.Errorf("Format = %s, want numeric_list", p.Format)
	}
	if p.Answer != "7 7 4 3" {
		t.Errorf("Answer = %q, want %q", p.Answer, "7 7 4 3")
	}
	ff := p.Payload.(FactFamily)
	wantEq := []string{"3 + 4 = ?", "4 + 3 = ?", "7 - 3 = ?", "7 - 4 = ?"}
	for i, eq := range ff.Equations {
		if eq.Text != wantEq[i] {
			t.Errorf("equation %d = %q, want %q", i, eq.Text, wantEq[i])
		}
	}
}

func TestWordProblem_ThemeAndOperation(t *testing.T) {
	g := testGenerator(t, 8)
	for _, theme := range g.Catalog().Themes() {
		for _, op := range g.Catalog().Operations() {
			p, err := g.WordProblem(DifficultyHard, theme, op)
			if err != nil {
				t.Fatalf("WordProblem(%s, %s): %v", theme, op, err)
			}
			wp := p.Payload.(WordProblem)
			if wp.Theme != theme || wp.Operation != op {
				t.Errorf("got %s/%s, want %s/%s", wp.Theme, wp.Operation, theme, op)
			}
			if strings.Contains(wp.Story, "{{") || strings.Contains(p.Text, "{{") {
				t.Errorf("unrendered template: %q / %q", wp.Story, p.Text)
			}
			if op == WordCompare && wp.A == wp.B {
				t.Errorf("compare numbers must differ, got %d and %d", wp.A, wp.B)
			}
			if op == WordSubtract && wp.A < wp.B {
				t.Errorf("subtract numbers out of order: %d - %d", wp.A, wp.B)
			}
		}
	}
}

func TestCounting_TargetCountMatchesItems(t *testing.T) {
	g := testGenerator(t, 9)
	tests := []struct {
		d                    Difficulty
		minTarget, maxTarget int
	}{
		{DifficultyEasy, 2, 5},
		{DifficultyMedium, 4, 8},
		{DifficultyHard, 6, 11},
	}
	for _, tc := range tests {
		for range 50 {
			p, err := g.Counting(tc.d, LayoutGrid)
			if err != nil {
				t.Fatal(err)
			}
			c := p.Payload.(Counting)
			if c.TargetCount < tc.minTarget || c.TargetCount > tc.maxTarget {
				t.Errorf("%s: target count %d outside [%d,%d]", tc.d, c.TargetCount, tc.minTarget, tc.maxTarget)
			}
			if c.Layout != LayoutGrid {
				t.Errorf("Layout = %s, want grid", c.Layout)
			}
			if len(c.Items) <= c.TargetCount {
				t.Errorf("expected distractor items, got %d items for %d targets", len(c.Items), c.TargetCount)
			}
		}
	}
}

func TestSequence(t *testing.T) {
	g := testGenerator(t, 10)
	p, err := g.Sequence(DifficultyMedium, 3, 6)
	if err != nil {
		t.Fatal(err)
	}
	if p.Text != "6, 9, 12, 15, 18, ?" {
		t.Errorf("Text = %q", p.Text)
	}
	if p.Answer != "21" {
		t.Errorf("Answer = %q, want 21", p.Answer)
	}
	if len(p.Choices) != DefaultOptionCount {
		t.Errorf("len(Choices) = %d, want %d", len(p.Choices), DefaultOptionCount)
	}
}

func TestGenerate_StartsOnBoundary(t *testing.T) {
	g := testGenerator(t, 11)
	for range 200 {
		p, err := g.Generate(TypeCountingSequence, DifficultyHard)
		if err != nil {
			t.Fatal(err)
		}
		s := p.Payload.(Sequence)
		if !slices.Contains(ValidStarts(s.Step), s.Start) {
			t.Errorf("start %d not valid for step %d", s.Start, s.Step)
		}
	}
}

// rejectAll fails every problem, forcing the retry budget to run out.
type rejectAll struct{ calls int }

func (v *rejectAll) Name() string { return "reject-all" }

func (v *rejectAll) Validate(*Problem) *ValidationError {
	v.calls++
	return &ValidationError{Validator: v.Name(), Message: "nope"}
}

func TestGenerate_BoundedRetry(t *testing.T) {
	reject := &rejectAll{}
	cfg := DefaultConfig()
	cfg.Rand = NewRand(1)
	cfg.MaxAttempts = 4
	cfg.Validators = []Validator{reject}
	g, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	_, err = g.Generate(TypeAddition, DifficultyEasy)
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("err = %v, want ErrGenerationFailed", err)
	}
	var gf *GenerationFailedError
	if !errors.As(err, &gf) {
		t.Fatalf("expected *GenerationFailedError, got %T", err)
	}
	if gf.Attempts != 4 || gf.Type != TypeAddition {
		t.Errorf("got %+v", gf)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Validator != "reject-all" {
		t.Errorf("expected wrapped validation error, got %v", err)
	}
	if reject.calls != 4 {
		t.Errorf("validator called %d times, want 4", reject.calls)
	}
}

func TestGenerate_OptionExhaustionIsBounded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rand = NewRand(1)
	cfg.OptionCount = 40 // never satisfiable
	cfg.MaxAttempts = 3
	cfg.Validators = nil
	g, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	_, err = g.Arithmetic(DifficultyEasy, OpAdd, 1, 1)
	if !errors.Is(err, ErrGenerationFailed) {
		t.Errorf("err = %v, want ErrGenerationFailed", err)
	}
}
