package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathcamp/internal/ui/theme"
)

// ProgressBar is a horizontal bar with an optional label and percent.
type ProgressBar struct {
	Label       string
	LabelWidth  int
	Percent     float64
	ShowPercent bool
	Width       int
	Fill        color.Color
}

// View renders the bar in Width columns.
func (p ProgressBar) View() string {
	var result string
	if p.Label != "" {
		result = lipgloss.NewStyle().Foreground(theme.Text).Width(p.LabelWidth).Render(p.Label) + "  "
	}

	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6
	}
	barWidth := max(p.Width-lipgloss.Width(result)-percentWidth, 4)
	filled := min(max(int(float64(barWidth)*p.Percent), 0), barWidth)

	fill := p.Fill
	if fill == nil {
		fill = theme.Secondary
	}
	result += lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))

	if p.ShowPercent {
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %3d%%", int(p.Percent*100)))
	}
	return result
}

// Dots renders question progress as one dot per question: green for
// correct, red for wrong, dim for not yet answered.
func Dots(results []bool, total int) string {
	var b strings.Builder
	for i := range total {
		switch {
		case i >= len(results):
			b.WriteString(theme.Disabled.Render("○"))
		case results[i]:
			b.WriteString(theme.Correct.Render("●"))
		default:
			b.WriteString(theme.Incorrect.Render("●"))
		}
		if i < total-1 {
			b.WriteString(" ")
		}
	}
	return b.String()
}
