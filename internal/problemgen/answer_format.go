package problemgen

import (
	"fmt"
	"strconv"
	"strings"
)

// AnswerFormatValidator checks that the answer matches the declared format
// and that multiple choice constraints hold.
type AnswerFormatValidator struct {
	// OptionCount is the required number of numeric choices. Zero means
	// DefaultOptionCount.
	OptionCount int
}

func (v *AnswerFormatValidator) Name() string { return "answer-format" }

func (v *AnswerFormatValidator) Validate(p *Problem) *ValidationError {
	switch p.Format {
	case FormatMultipleChoice:
		report := ValidateOptions(p.Choices, p.Answer)
		if !report.Valid {
			return &ValidationError{
				Validator: v.Name(),
				Message:   strings.Join(report.Errors, "; "),
			}
		}
		if _, numeric := p.NumericAnswer(); numeric && len(p.Choices) != v.optionCount() {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("expected %d choices, got %d", v.optionCount(), len(p.Choices)),
			}
		}

	case FormatNumeric:
		if len(p.Choices) > 0 {
			return &ValidationError{Validator: v.Name(), Message: "numeric format must have empty choices"}
		}
		if err := validateInteger(p.Answer); err != nil {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("invalid integer answer %q: %s", p.Answer, err),
			}
		}

	case FormatNumericList:
		fields := strings.Fields(p.Answer)
		if len(fields) == 0 {
			return &ValidationError{Validator: v.Name(), Message: "answer list is empty"}
		}
		for _, f := range fields {
			if err := validateInteger(f); err != nil {
				return &ValidationError{
					Validator: v.Name(),
					Message:   fmt.Sprintf("invalid integer %q in answer list: %s", f, err),
				}
			}
		}
	}

	// Results shown to children are never negative.
	for _, f := range strings.Fields(p.Answer) {
		if n, err := strconv.Atoi(f); err == nil && n < 0 {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("negative answer %d", n),
			}
		}
	}

	return nil
}

func (v *AnswerFormatValidator) optionCount() int {
	if v.OptionCount > 0 {
		return v.OptionCount
	}
	return DefaultOptionCount
}

// validateInteger checks that s is a valid integer string with no leading zeros.
func validateInteger(s string) error {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("not a valid integer")
	}
	if strconv.FormatInt(n, 10) != s {
		return fmt.Errorf("has leading zeros")
	}
	return nil
}
