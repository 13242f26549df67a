package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathcamp/internal/router"
	"github.com/abhisek/mathcamp/internal/screen"
	"github.com/abhisek/mathcamp/internal/session"
	"github.com/abhisek/mathcamp/internal/ui/components"
	"github.com/abhisek/mathcamp/internal/ui/layout"
	"github.com/abhisek/mathcamp/internal/ui/theme"
)

var buttons = []string{"Play again", "Home"}

// SummaryScreen shows the result of a finished session.
type SummaryScreen struct {
	result    *session.Result
	playAgain func() screen.Screen
	selected  int
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a summary screen. playAgain builds the screen for another
// round of the same activity.
func New(result *session.Result, playAgain func() screen.Screen) *SummaryScreen {
	return &SummaryScreen{result: result, playAgain: playAgain}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Well Done"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Choose"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "left", "h", "shift+tab":
		s.selected = max(s.selected-1, 0)
	case "right", "l", "tab":
		s.selected = min(s.selected+1, len(buttons)-1)
	case "esc":
		return s, router.Pop()
	case "enter", "space":
		if s.selected == 0 && s.playAgain != nil {
			next := s.playAgain()
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		}
		return s, router.Pop()
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	r := s.result
	if r == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Centered(theme.Title, width, headline(r)))
	b.WriteString("\n\n")
	b.WriteString(theme.Centered(lipgloss.NewStyle(), width, components.Stars(r.Stars(), 3)))
	b.WriteString("\n\n")

	stats := []string{
		fmt.Sprintf("%s %s", r.Type.Icon(), r.Type.DisplayName()),
		fmt.Sprintf("You got %d of %d right", r.Correct, r.Total),
		fmt.Sprintf("Score: %d%%", r.Score()),
		fmt.Sprintf("Time: %s", formatDuration(r.Duration.Seconds())),
	}
	card := components.Card(strings.Join(stats, "\n"), components.ContentWidth(width))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))
	b.WriteString("\n\n")

	if len(r.NewAchievements) > 0 {
		b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.Star).Bold(true), width, "New badge!"))
		b.WriteString("\n")
		for _, a := range r.NewAchievements {
			line := lipgloss.NewStyle().
				Foreground(theme.RarityColor(string(a.Rarity))).
				Render(fmt.Sprintf("%s %s: %s", a.Icon, a.Name, a.Description))
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(components.ButtonRow(buttons, s.selected, width))
	return b.String()
}

func headline(r *session.Result) string {
	switch r.Stars() {
	case 3:
		return "Perfect! You are a math star!"
	case 2:
		return "Great work!"
	case 1:
		return "Nice try! Keep practicing!"
	default:
		return "Every try makes you stronger!"
	}
}

func formatDuration(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
