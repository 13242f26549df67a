package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathcamp/internal/ui/theme"
)

// ChoiceSubmittedMsg is emitted when a choice is picked.
type ChoiceSubmittedMsg struct {
	Index int
	Value string
}

// MultiChoice lets the child pick one of a few options with arrows or
// the number keys 1..n.
type MultiChoice struct {
	Options  []string
	Selected int
	Locked   bool
}

// NewMultiChoice creates a selector over options.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{Options: options}
}

// Update handles navigation. A pick locks the component until Reset.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || m.Locked || len(m.Options) == 0 {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k", "left":
		if m.Selected > 0 {
			m.Selected--
		}
		return m, nil
	case "down", "j", "right":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
		return m, nil
	case "enter", "space":
		return m.submit()
	}

	if len(key) == 1 && key[0] >= '1' && int(key[0]-'0') <= len(m.Options) {
		m.Selected = int(key[0] - '1')
		return m.submit()
	}
	return m, nil
}

func (m MultiChoice) submit() (MultiChoice, tea.Cmd) {
	m.Locked = true
	idx, val := m.Selected, m.Options[m.Selected]
	return m, func() tea.Msg { return ChoiceSubmittedMsg{Index: idx, Value: val} }
}

// Reset unlocks the component for new options.
func (m *MultiChoice) Reset(options []string) {
	m.Options = options
	m.Selected = 0
	m.Locked = false
}

// View renders the options. When reveal is set, the correct option is
// green and a wrong pick red.
func (m MultiChoice) View(width int, reveal bool, correct string) string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !reveal {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		style := theme.Unselected
		switch {
		case reveal && opt == correct:
			style = theme.Correct
		case reveal && i == m.Selected:
			style = theme.Incorrect
		case reveal:
			style = theme.Disabled
		case i == m.Selected:
			style = theme.Selected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.TrimRight(b.String(), "\n"))
}
