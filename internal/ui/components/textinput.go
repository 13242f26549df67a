package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathcamp/internal/ui/theme"
)

// AnswerInput is a focused text field that accepts digits plus the
// separators used by multi-value answers.
type AnswerInput struct {
	Model     textinput.Model
	submitted bool
	valid     bool
}

// NewAnswerInput creates a focused input.
func NewAnswerInput(placeholder string, limit int) AnswerInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	if limit > 0 {
		ti.CharLimit = limit
	}
	ti.Focus()
	return AnswerInput{Model: ti}
}

// Init starts the cursor blink.
func (a AnswerInput) Init() tea.Cmd {
	return a.Model.Focus()
}

// Update drops keys that cannot be part of an answer.
func (a AnswerInput) Update(msg tea.Msg) (AnswerInput, tea.Cmd) {
	if a.submitted {
		return a, nil
	}
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		if text := kmsg.Text; len(text) == 1 && !allowedRune(text[0]) {
			return a, nil
		}
	}
	var cmd tea.Cmd
	a.Model, cmd = a.Model.Update(msg)
	return a, cmd
}

func allowedRune(c byte) bool {
	return (c >= '0' && c <= '9') || c == ' ' || c == ','
}

// View renders the field with a check or cross after submission.
func (a AnswerInput) View() string {
	view := a.Model.View()
	if a.submitted {
		if a.valid {
			view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		} else {
			view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
	}
	return view
}

// Value returns the typed text.
func (a AnswerInput) Value() string {
	return a.Model.Value()
}

// Submit freezes the field and records the result for View.
func (a *AnswerInput) Submit(valid bool) {
	a.submitted = true
	a.valid = valid
	a.Model.Blur()
}
