package session

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathcamp/internal/problemgen"
	"github.com/abhisek/mathcamp/internal/ui/components"
	"github.com/abhisek/mathcamp/internal/ui/theme"
)

// itemIcons draws counting items.
var itemIcons = map[string]string{
	"pizza":  "🍕",
	"pie":    "🥧",
	"cookie": "🍪",
	"star":   "⭐",
	"heart":  "❤️",
	"flower": "🌸",
	"apple":  "🍎",
	"banana": "🍌",
}

func itemIcon(name string) string {
	if icon, ok := itemIcons[name]; ok {
		return icon
	}
	return name
}

func (s *SessionScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return renderError(width, s.errMsg)
	case s.problem == nil:
		return renderLoading(width)
	case s.confirmQuit:
		return renderQuitConfirm(width)
	}

	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	b.WriteString(renderQuestion(s.problem, width, s.feedbackFor()))
	b.WriteString("\n\n")

	if s.problem.Format == problemgen.FormatMultipleChoice {
		b.WriteString(s.choices.View(width, s.outcome != nil, s.problem.Answer))
	} else {
		b.WriteString(theme.Centered(lipgloss.NewStyle(), width, s.input.View()))
	}
	b.WriteString("\n\n")

	switch {
	case s.outcome != nil:
		b.WriteString(s.renderFeedback(width))
	case s.hint != "":
		b.WriteString(theme.Centered(theme.Hint, width, "💡 "+s.hint))
	}
	return b.String()
}

// feedbackFor returns the learner's last numeric-list answer while its
// feedback is showing.
func (s *SessionScreen) feedbackFor() string {
	if s.outcome == nil {
		return ""
	}
	return s.lastAnswer
}

func (s *SessionScreen) renderInfoLine(width int) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s %s", s.ptype.Icon(), s.ptype.DisplayName()))

	number := min(len(s.results)+1, s.total)
	if s.outcome != nil {
		number = len(s.results)
	}
	right := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Question %d of %d  ", number, s.total))
	if s.streak >= 2 {
		right = lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("🔥 %d  ", s.streak)) + right
	}

	dots := components.Dots(s.results, s.total)
	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap > lipgloss.Width(dots)+4 {
		pad := (gap - lipgloss.Width(dots)) / 2
		return left + strings.Repeat(" ", pad) + dots + strings.Repeat(" ", gap-pad-lipgloss.Width(dots)) + right
	}
	return left + strings.Repeat(" ", max(gap, 1)) + right
}

// renderQuestion draws the problem body according to its payload. answer
// is set while feedback for a fact family is on screen.
func renderQuestion(p *problemgen.Problem, width int, answer string) string {
	switch pl := p.Payload.(type) {
	case problemgen.Arithmetic:
		return theme.Centered(theme.Question, width, p.Text+" = ?")

	case problemgen.Comparison:
		return theme.Centered(theme.Question, width, p.Text) + "\n\n" +
			theme.Centered(theme.Subtitle, width, "Is it >, < or = ?")

	case problemgen.FactFamily:
		return renderFactFamily(p, pl, width, answer)

	case problemgen.WordProblem:
		story := lipgloss.NewStyle().
			Width(min(width-8, 60)).
			Foreground(theme.Text).
			Render(pl.Story)
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, story) + "\n\n" +
			theme.Centered(theme.Question, width, p.Text)

	case problemgen.Counting:
		return renderCounting(pl, width) + "\n\n" +
			theme.Centered(theme.Question, width, p.Text)

	case problemgen.Sequence:
		return theme.Centered(theme.Subtitle, width, "What comes next?") + "\n\n" +
			theme.Centered(theme.Question, width, p.Text)
	}
	return theme.Centered(theme.Question, width, p.Text)
}

func renderFactFamily(p *problemgen.Problem, ff problemgen.FactFamily, width int, answer string) string {
	var marks []bool
	if answer != "" {
		marks = problemgen.CheckEquations(answer, p)
	}

	lines := make([]string, len(ff.Equations))
	for i, eq := range ff.Equations {
		line := eq.Text
		switch {
		case marks == nil && answer != "":
			line = theme.Incorrect.Render(line + "  " + strconv.Itoa(eq.Expected))
		case marks != nil && marks[i]:
			line = theme.Correct.Render(line + "  ✓")
		case marks != nil:
			line = theme.Incorrect.Render(line + "  " + strconv.Itoa(eq.Expected))
		default:
			line = theme.Body.Render(line)
		}
		lines[i] = line
	}
	block := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return theme.Centered(theme.Question, width, p.Text) + "\n\n" +
		lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}

// renderCounting lays the items out the way the problem asks.
func renderCounting(c problemgen.Counting, width int) string {
	icons := make([]string, len(c.Items))
	for i, it := range c.Items {
		icons[i] = itemIcon(it)
	}

	var rows []string
	switch c.Layout {
	case problemgen.LayoutGrid:
		for i := 0; i < len(icons); i += 5 {
			rows = append(rows, strings.Join(icons[i:min(i+5, len(icons))], "  "))
		}
	case problemgen.LayoutScattered:
		for i := 0; i < len(icons); i += 4 {
			row := icons[i:min(i+4, len(icons))]
			indent := strings.Repeat(" ", (i*7)%9)
			rows = append(rows, indent+strings.Join(row, strings.Repeat(" ", 2+(i%3))))
		}
	default:
		rows = append(rows, strings.Join(icons, " "))
	}

	block := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 2).
		Render(strings.Join(rows, "\n"))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}

func (s *SessionScreen) renderFeedback(width int) string {
	var b strings.Builder
	if s.outcome.Correct {
		b.WriteString(theme.Centered(theme.Correct, width, cheer(s.streak)))
	} else {
		b.WriteString(theme.Centered(theme.Incorrect, width, "Not quite!"))
		if s.problem.Format != problemgen.FormatNumericList {
			b.WriteString("\n")
			b.WriteString(theme.Centered(theme.Body, width, "The answer is "+s.outcome.Expected))
		}
	}
	b.WriteString("\n\n")
	b.WriteString(theme.Centered(theme.Hint, width, "Press any key to continue..."))
	return b.String()
}

func cheer(streak int) string {
	switch {
	case streak >= 5:
		return "Amazing! 🔥 " + strconv.Itoa(streak) + " in a row!"
	case streak >= 3:
		return "Great job! Keep it up!"
	default:
		return "Correct! ✓"
	}
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(theme.Centered(theme.Title, width, "Stop playing?"))
	b.WriteString("\n")
	b.WriteString(theme.Centered(theme.Hint, width, "This round will not be saved."))
	b.WriteString("\n\n")
	b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.Error), width, "[Y] Yes, stop"))
	b.WriteString("\n")
	b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.Success), width, "[N] No, keep going"))
	return b.String()
}

func renderLoading(width int) string {
	return theme.Centered(theme.Hint, width, "\n\n\nGetting your problems ready...")
}

func renderError(width int, errMsg string) string {
	return theme.Centered(lipgloss.NewStyle().Foreground(theme.Error), width,
		fmt.Sprintf("\n\n\n%s\n\nPress Enter to go home.", errMsg))
}
