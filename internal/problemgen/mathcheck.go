package problemgen

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MathCheckValidator independently recomputes the answer from the payload
// and, for arithmetic, from the expression in the text.
type MathCheckValidator struct{}

func (v *MathCheckValidator) Name() string { return "math-check" }

// arithExprRe matches "a op b" as rendered by the arithmetic builders.
var arithExprRe = regexp.MustCompile(`^(\d+)\s*([+\-×÷])\s*(\d+)$`)

func (v *MathCheckValidator) Validate(p *Problem) *ValidationError {
	computed, err := computeAnswer(p)
	if err != nil {
		return &ValidationError{Validator: v.Name(), Message: err.Error()}
	}
	if computed != p.Answer {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("computed %q but problem claims %q", computed, p.Answer),
		}
	}

	if a, ok := p.Payload.(Arithmetic); ok {
		m := arithExprRe.FindStringSubmatch(p.Text)
		if m == nil {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("text %q is not an expression", p.Text)}
		}
		x, _ := strconv.Atoi(m[1])
		y, _ := strconv.Atoi(m[3])
		if x != a.A || y != a.B || Operation(m[2]) != a.Op {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("text %q does not match operands", p.Text)}
		}
		if a.Op == OpDiv && (a.B == 0 || a.A%a.B != 0) {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("%d ÷ %d is not a whole number", a.A, a.B)}
		}
	}
	return nil
}

// computeAnswer derives the canonical answer string from a payload.
func computeAnswer(p *Problem) (string, error) {
	switch pl := p.Payload.(type) {
	case Arithmetic:
		return strconv.Itoa(pl.Op.Apply(pl.A, pl.B)), nil
	case Comparison:
		return compareSymbol(pl.A, pl.B), nil
	case FactFamily:
		vals := make([]string, len(pl.Equations))
		for i, eq := range pl.Equations {
			vals[i] = strconv.Itoa(eq.Expected)
		}
		if pl.A+pl.B != pl.Sum {
			return "", fmt.Errorf("fact family %d + %d != %d", pl.A, pl.B, pl.Sum)
		}
		return strings.Join(vals, " "), nil
	case WordProblem:
		return strconv.Itoa(wordAnswer(pl.Operation, pl.A, pl.B)), nil
	case Counting:
		n := 0
		for _, item := range pl.Items {
			if item == pl.Target {
				n++
			}
		}
		if n != pl.TargetCount {
			return "", fmt.Errorf("counted %d %s items, payload says %d", n, pl.Target, pl.TargetCount)
		}
		return strconv.Itoa(n), nil
	case Sequence:
		return strconv.Itoa(pl.Start + len(pl.Terms)*pl.Step), nil
	case nil:
		return "", fmt.Errorf("payload is missing")
	default:
		return "", fmt.Errorf("unsupported payload %T", pl)
	}
}

func compareSymbol(a, b int) string {
	switch {
	case a > b:
		return ">"
	case a < b:
		return "<"
	default:
		return "="
	}
}
