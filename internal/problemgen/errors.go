package problemgen

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownProblemType is returned for activity names outside AllProblemTypes.
	ErrUnknownProblemType = errors.New("unknown problem type")

	// ErrUnknownDifficulty is returned for difficulty names other than easy, medium, hard.
	ErrUnknownDifficulty = errors.New("unknown difficulty")

	// ErrGenerationFailed matches any *GenerationFailedError via errors.Is.
	ErrGenerationFailed = errors.New("problem generation failed")
)

// GenerationFailedError is returned when a problem could not be produced
// within the generator's attempt budget.
type GenerationFailedError struct {
	Type       ProblemType
	Difficulty Difficulty
	Attempts   int
	Err        error // last failure
}

func (e *GenerationFailedError) Error() string {
	return fmt.Sprintf("generate %s (%s): gave up after %d attempts: %v", e.Type, e.Difficulty, e.Attempts, e.Err)
}

func (e *GenerationFailedError) Unwrap() error { return e.Err }

func (e *GenerationFailedError) Is(target error) bool { return target == ErrGenerationFailed }
