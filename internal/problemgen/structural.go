package problemgen

// StructuralValidator checks that required fields are present, within
// length limits, and have valid enum values.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(p *Problem) *ValidationError {
	if p.Text == "" {
		return &ValidationError{Validator: v.Name(), Message: "text is empty"}
	}
	if len(p.Text) > 500 {
		return &ValidationError{Validator: v.Name(), Message: "text exceeds 500 characters"}
	}
	if p.Answer == "" {
		return &ValidationError{Validator: v.Name(), Message: "answer is empty"}
	}
	if _, err := ParseProblemType(string(p.Type)); err != nil {
		return &ValidationError{Validator: v.Name(), Message: err.Error()}
	}
	if _, err := ParseDifficulty(string(p.Difficulty)); err != nil {
		return &ValidationError{Validator: v.Name(), Message: err.Error()}
	}
	switch p.Format {
	case FormatMultipleChoice, FormatNumeric, FormatNumericList:
	default:
		return &ValidationError{
			Validator: v.Name(),
			Message:   "format must be \"multiple_choice\", \"numeric\", or \"numeric_list\"",
		}
	}
	if p.Payload == nil {
		return &ValidationError{Validator: v.Name(), Message: "payload is missing"}
	}
	return nil
}
