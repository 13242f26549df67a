package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathcamp/internal/ui/theme"
)

// MenuItem is one entry of a Menu.
type MenuItem struct {
	Label    string
	Icon     string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list of buttons. Disabled items are skipped by the
// cursor.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu selects the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	for i, item := range items {
		if !item.Disabled {
			m.Selected = i
			break
		}
	}
	return m
}

// Update moves the cursor and runs the selected action on enter.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		m.Selected = m.step(-1)
	case "down", "j", "tab":
		m.Selected = m.step(1)
	case "enter", "space":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			item := m.Items[m.Selected]
			if item.Action != nil && !item.Disabled {
				return m, item.Action()
			}
		}
	}
	return m, nil
}

func (m Menu) step(dir int) int {
	for i := m.Selected + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			return i
		}
	}
	return m.Selected
}

// View renders one line per item, padded to itemWidth and centered in
// width.
func (m Menu) View(itemWidth, width int) string {
	lines := make([]string, 0, len(m.Items))
	for i, item := range m.Items {
		label := item.Label
		if item.Icon != "" {
			label = item.Icon + "  " + label
		}
		switch {
		case item.Disabled:
			lines = append(lines, menuDisabled.Width(itemWidth).Render("   "+label+"  🔒"))
		case i == m.Selected:
			lines = append(lines, menuSelected.Width(itemWidth).Render(" ▸ "+label))
		default:
			lines = append(lines, menuNormal.Width(itemWidth).Render("   "+label))
		}
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

var (
	menuSelected = lipgloss.NewStyle().Foreground(theme.BgDark).Background(theme.Star).Bold(true)
	menuNormal   = lipgloss.NewStyle().Foreground(theme.Text)
	menuDisabled = lipgloss.NewStyle().Foreground(theme.TextDim)
)
