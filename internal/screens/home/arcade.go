package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathcamp/internal/problemgen"
	"github.com/abhisek/mathcamp/internal/progress"
	"github.com/abhisek/mathcamp/internal/ui/components"
	"github.com/abhisek/mathcamp/internal/ui/theme"
)

const titleFull = `╔╦╗╔═╗╔╦╗╦ ╦  ╔═╗╔═╗╔╦╗╔═╗
║║║╠═╣ ║ ╠═╣  ║  ╠═╣║║║╠═╝
╩ ╩╩ ╩ ╩ ╩ ╩  ╚═╝╩ ╩╩ ╩╩  `

const titleCompact = "M A T H   C A M P"

// menuWidth is the padded width of one menu line.
const menuWidth = 30

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Star).
		Bold(true)

	title := titleFull
	if compact {
		title = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// renderStatsBar shows lifetime totals and the session difficulty.
func renderStatsBar(sum progress.Summary, d problemgen.Difficulty, cw int, compact bool) string {
	solved := lipgloss.NewStyle().Foreground(theme.Star).Bold(true)
	streak := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	level := lipgloss.NewStyle().Foreground(theme.Sky).Bold(true)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			solved.Render(fmt.Sprintf("✔%d", sum.CorrectAnswers)),
			streak.Render(fmt.Sprintf("🔥%d", sum.CurrentStreak)),
			level.Render(string(d)),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			solved.Render(fmt.Sprintf("✔ %d SOLVED", sum.CorrectAnswers)),
			streak.Render(fmt.Sprintf("🔥 %d STREAK", sum.CurrentStreak)),
			level.Render("LEVEL: "+string(d)),
		)
	}
	return components.StatsBar(stats, cw)
}

func renderMascotBox(v MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(v))
}
