package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathcamp/internal/ui/theme"
)

// ButtonRow renders labels side by side with selected highlighted.
func ButtonRow(labels []string, selected, width int) string {
	buttons := make([]string, len(labels))
	for i, l := range labels {
		if i == selected {
			buttons[i] = theme.ButtonSelected.Render("▸ " + l)
		} else {
			buttons[i] = theme.ButtonNormal.Render(l)
		}
	}
	row := lipgloss.JoinHorizontal(lipgloss.Center, interleave(buttons, "  ")...)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, row)
}

func interleave(items []string, sep string) []string {
	out := make([]string, 0, len(items)*2)
	for i, it := range items {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, it)
	}
	return out
}

// Stars renders n of max stars.
func Stars(n, maxStars int) string {
	n = min(max(n, 0), maxStars)
	return lipgloss.NewStyle().Foreground(theme.Star).Render(strings.Repeat("★ ", n)) +
		theme.Disabled.Render(strings.Repeat("☆ ", maxStars-n))
}
