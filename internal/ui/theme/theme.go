package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette: campfire colors on a night-sky background.
var (
	Primary   = lipgloss.Color("#8B5CF6") // purple
	Secondary = lipgloss.Color("#14B8A6") // teal
	Accent    = lipgloss.Color("#F97316") // orange
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgDark    = lipgloss.Color("#0F172A")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")

	Star = lipgloss.Color("#FACC15") // yellow, stars and selected buttons
	Sky  = lipgloss.Color("#38BDF8") // stats bar
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Question = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true)
)

var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Disabled = lipgloss.NewStyle().
			Foreground(TextDim)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

var (
	ButtonSelected = lipgloss.NewStyle().
			Bold(true).
			Foreground(BgDark).
			Background(Star).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Star).
			Padding(0, 1)

	ButtonNormal = lipgloss.NewStyle().
			Foreground(Text).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1)
)

// RarityColor maps an achievement rarity name to a color.
func RarityColor(rarity string) color.Color {
	switch rarity {
	case "rare":
		return Secondary
	case "epic":
		return Primary
	default:
		return Text
	}
}

// Centered renders s centered in width.
func Centered(s lipgloss.Style, width int, text string) string {
	return s.Width(width).Align(lipgloss.Center).Render(text)
}
