package problemgen

import (
	"strconv"
	"strings"
)

// CheckAnswer compares the learner's input against the problem's answer.
//
// Normalization rules:
// - Whitespace is trimmed
// - Integers ignore leading zeros ("007" matches "7")
// - Multiple choice matches the choice text or its 1-based index
// - Fact families compare each space-separated value in order
func CheckAnswer(input string, p *Problem) bool {
	input = strings.TrimSpace(input)
	if input == "" {
		return false
	}

	switch p.Format {
	case FormatMultipleChoice:
		return checkMultipleChoice(input, p)
	case FormatNumericList:
		results := CheckEquations(input, p)
		if results == nil {
			return false
		}
		for _, ok := range results {
			if !ok {
				return false
			}
		}
		return true
	default:
		return numbersEqual(input, p.Answer)
	}
}

// CheckEquations reports, per expected value of a numeric-list answer,
// whether the learner's value in the same position matches. It returns
// nil when the number of values differs.
func CheckEquations(input string, p *Problem) []bool {
	got := splitAnswer(input)
	want := strings.Fields(p.Answer)
	if len(got) != len(want) {
		return nil
	}
	results := make([]bool, len(want))
	for i := range want {
		results[i] = numbersEqual(got[i], want[i])
	}
	return results
}

// ResolveChoice maps a learner's input to the choice text it selects.
// Index input ("1".."n") resolves to the choice at that position only when
// no choice is a number, so a numeric answer is never read as an index.
func ResolveChoice(input string, p *Problem) string {
	input = strings.TrimSpace(input)
	for _, c := range p.Choices {
		if strings.EqualFold(strings.TrimSpace(c), input) {
			return c
		}
	}
	if hasNumericChoice(p.Choices) {
		return input
	}
	if idx, err := strconv.Atoi(input); err == nil && idx >= 1 && idx <= len(p.Choices) {
		return p.Choices[idx-1]
	}
	return input
}

func hasNumericChoice(choices []string) bool {
	for _, c := range choices {
		if _, err := strconv.Atoi(strings.TrimSpace(c)); err == nil {
			return true
		}
	}
	return false
}

func checkMultipleChoice(input string, p *Problem) bool {
	chosen := strings.TrimSpace(ResolveChoice(input, p))
	return chosen == p.Answer || numbersEqual(chosen, p.Answer)
}

func numbersEqual(a, b string) bool {
	x, err := strconv.Atoi(strings.TrimSpace(a))
	if err != nil {
		return false
	}
	y, err := strconv.Atoi(strings.TrimSpace(b))
	if err != nil {
		return false
	}
	return x == y
}

// splitAnswer splits on spaces and commas.
func splitAnswer(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
}
