package problemgen

import (
	"fmt"
	"math"
	"slices"
	"strconv"
)

const (
	// DefaultOptionCount is the number of choices shown for numeric problems.
	DefaultOptionCount = 4

	optionAttempts = 100
	fallbackSpan   = 20
)

// OptionSet is the result of GenerateOptions. When Valid is false the
// caller must discard the whole problem, not only the options.
type OptionSet struct {
	Options []int
	Valid   bool
}

// GenerateOptions returns count distinct values, each >= minValue, that
// contain correct exactly once, in random order.
//
// Distractors are correct ± a magnitude drawn from [1, max(5, ceil(correct/2))].
// If random sampling cannot fill the set within its attempt budget, the
// remaining slots are filled with ascending values above correct, up to
// correct+20.
func GenerateOptions(r Rand, correct, count, minValue int) OptionSet {
	if count < 1 {
		return OptionSet{}
	}

	options := make([]int, 0, count)
	options = append(options, correct)

	maxOffset := max(5, int(math.Ceil(float64(correct)*0.5)))
	for attempt := 0; len(options) < count && attempt < optionAttempts; attempt++ {
		magnitude := r.IntN(maxOffset) + 1
		if r.IntN(2) == 0 {
			magnitude = -magnitude
		}
		candidate := correct + magnitude
		if candidate >= minValue && !slices.Contains(options, candidate) {
			options = append(options, candidate)
		}
	}

	for candidate := correct + 1; len(options) < count && candidate <= correct+fallbackSpan; candidate++ {
		if candidate >= minValue && !slices.Contains(options, candidate) {
			options = append(options, candidate)
		}
	}

	r.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })

	occurrences := 0
	for _, o := range options {
		if o == correct {
			occurrences++
		}
	}
	return OptionSet{
		Options: options,
		Valid:   occurrences == 1 && len(options) == count,
	}
}

// OptionReport is the result of ValidateOptions.
type OptionReport struct {
	Valid  bool
	Errors []string
}

// ValidateOptions checks that correct appears exactly once, that no
// option repeats, and, when correct is numeric, that every option is a
// number.
func ValidateOptions(options []string, correct string) OptionReport {
	var errs []string

	correctCount := 0
	seen := make(map[string]bool, len(options))
	duplicates := 0
	for _, o := range options {
		if o == correct {
			correctCount++
		}
		if seen[o] {
			duplicates++
		}
		seen[o] = true
	}

	switch {
	case correctCount == 0:
		errs = append(errs, "no correct answer in options")
	case correctCount > 1:
		errs = append(errs, fmt.Sprintf("multiple correct answers found (%d)", correctCount))
	}
	if duplicates > 0 {
		errs = append(errs, fmt.Sprintf("duplicate options found (%d duplicates)", duplicates))
	}

	if _, err := strconv.Atoi(correct); err == nil {
		for _, o := range options {
			if _, err := strconv.Atoi(o); err != nil {
				errs = append(errs, "invalid option values (non-number)")
				break
			}
		}
	}

	return OptionReport{Valid: len(errs) == 0, Errors: errs}
}

// formatOptions renders numeric options as choice strings.
func formatOptions(options []int) []string {
	out := make([]string, len(options))
	for i, o := range options {
		out[i] = strconv.Itoa(o)
	}
	return out
}
