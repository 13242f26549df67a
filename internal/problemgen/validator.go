package problemgen

import "fmt"

// Validator checks a generated problem before it is handed out.
// Implementations should be stateless.
type Validator interface {
	// Name returns a short identifier used in error messages, e.g.
	// "structural", "answer-format", "math-check".
	Name() string

	// Validate returns nil if the problem passes.
	Validate(p *Problem) *ValidationError
}

// ValidationError describes why a problem failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// runValidators runs vs in order and returns the first failure.
func runValidators(p *Problem, vs []Validator) error {
	for _, v := range vs {
		if verr := v.Validate(p); verr != nil {
			return verr
		}
	}
	return nil
}
