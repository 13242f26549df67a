package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathcamp/internal/ui/theme"
)

// ContentWidth is the shared inner width of boxed sections so they line
// up inside a CabinetFrame.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 60)
}

// CabinetFrame wraps content in a double border centered in the area.
func CabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(max(height-2, 0)).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card wraps content in a rounded border at content width cw.
func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(content)
}

// StatsBar renders a one-line double-bordered box.
func StatsBar(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Sky).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(content)
}
