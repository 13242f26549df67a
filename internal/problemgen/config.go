package problemgen

import "go.uber.org/zap"

// DefaultMaxAttempts bounds how often a problem is rebuilt after failing
// validation before GenerationFailedError is returned.
const DefaultMaxAttempts = 10

// Config controls the behavior of the Generator.
type Config struct {
	// Validators is the ordered list of validators to run on every
	// generated problem. The first failure stops the pipeline.
	Validators []Validator

	// MaxAttempts is the per-problem retry budget.
	MaxAttempts int

	// OptionCount is the number of choices for numeric multiple choice.
	OptionCount int

	// Rand is the randomness source. Nil means DefaultRand().
	Rand Rand

	// Catalog holds word-problem templates. Nil means the embedded catalog.
	Catalog *Catalog

	Logger *zap.Logger
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&AnswerFormatValidator{OptionCount: DefaultOptionCount},
			&MathCheckValidator{},
		},
		MaxAttempts: DefaultMaxAttempts,
		OptionCount: DefaultOptionCount,
	}
}
