package problemgen

import (
	"strings"
	"testing"
)

func validProblem() *Problem {
	return &Problem{
		Type:       TypeAddition,
		Difficulty: DifficultyEasy,
		Text:       "3 + 4",
		Format:     FormatMultipleChoice,
		Answer:     "7",
		Choices:    []string{"5", "7", "9", "6"},
		Payload:    Arithmetic{Op: OpAdd, A: 3, B: 4},
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Validator: "test-validator", Message: "something went wrong"}
	expected := `validator "test-validator": something went wrong`
	if err.Error() != expected {
		t.Errorf("got %q, want %q", err.Error(), expected)
	}
}

func TestDefaultConfig_ValidatorChain(t *testing.T) {
	cfg := DefaultConfig()
	names := []string{"structural", "answer-format", "math-check"}
	if len(cfg.Validators) != len(names) {
		t.Fatalf("expected %d validators, got %d", len(names), len(cfg.Validators))
	}
	for i, v := range cfg.Validators {
		if v.Name() != names[i] {
			t.Errorf("validator %d: expected %q, got %q", i, names[i], v.Name())
		}
	}
	if cfg.MaxAttempts != DefaultMaxAttempts {
		t.Errorf("MaxAttempts = %d, want %d", cfg.MaxAttempts, DefaultMaxAttempts)
	}
}

func TestValidators_ValidProblem(t *testing.T) {
	for _, v := range DefaultConfig().Validators {
		if err := v.Validate(validProblem()); err != nil {
			t.Errorf("%s: unexpected error %v", v.Name(), err)
		}
	}
}

func TestValidators_Failures(t *testing.T) {
	tests := []struct {
		name      string
		validator Validator
		mutate    func(p *Problem)
		wantMsg   string
	}{
		{"empty text", &StructuralValidator{}, func(p *Problem) { p.Text = "" }, "text is empty"},
		{"long text", &StructuralValidator{}, func(p *Problem) { p.Text = strings.Repeat("a", 501) }, "exceeds 500"},
		{"bad type", &StructuralValidator{}, func(p *Problem) { p.Type = "pattern" }, "unknown problem type"},
		{"bad format", &StructuralValidator{}, func(p *Problem) { p.Format = "essay" }, "format must be"},
		{"no payload", &StructuralValidator{}, func(p *Problem) { p.Payload = nil }, "payload is missing"},
		{"answer missing from choices", &AnswerFormatValidator{}, func(p *Problem) { p.Choices = []string{"1", "2", "3", "4"} }, "no correct answer"},
		{"three choices", &AnswerFormatValidator{}, func(p *Problem) { p.Choices = []string{"5", "7", "9"} }, "expected 4 choices"},
		{"negative", &AnswerFormatValidator{}, func(p *Problem) {
			p.Answer = "-1"
			p.Choices = []string{"-1", "0", "1", "2"}
		}, "negative answer"},
		{"numeric with choices", &AnswerFormatValidator{}, func(p *Problem) { p.Format = FormatNumeric }, "empty choices"},
		{"wrong answer", &MathCheckValidator{}, func(p *Problem) { p.Answer = "8" }, `computed "7"`},
		{"text mismatch", &MathCheckValidator{}, func(p *Problem) { p.Text = "3 + 5" }, "does not match"},
		{"uneven division", &MathCheckValidator{}, func(p *Problem) {
			p.Text = "7 ÷ 2"
			p.Answer = "3"
			p.Payload = Arithmetic{Op: OpDiv, A: 7, B: 2}
		}, "not a whole number"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := validProblem()
			tc.mutate(p)
			err := tc.validator.Validate(p)
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Validator != tc.validator.Name() {
				t.Errorf("Validator = %q, want %q", err.Validator, tc.validator.Name())
			}
			if !strings.Contains(err.Message, tc.wantMsg) {
				t.Errorf("Message = %q, want it to contain %q", err.Message, tc.wantMsg)
			}
		})
	}
}
