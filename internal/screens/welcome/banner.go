package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathcamp/internal/ui/theme"
)

const bannerArt = `
 ███╗   ███╗ █████╗ ████████╗██╗  ██╗     ██████╗ █████╗ ███╗   ███╗██████╗
 ████╗ ████║██╔══██╗╚══██╔══╝██║  ██║    ██╔════╝██╔══██╗████╗ ████║██╔══██╗
 ██╔████╔██║███████║   ██║   ███████║    ██║     ███████║██╔████╔██║██████╔╝
 ██║╚██╔╝██║██╔══██║   ██║   ██╔══██║    ██║     ██╔══██║██║╚██╔╝██║██╔═══╝
 ██║ ╚═╝ ██║██║  ██║   ██║   ██║  ██║    ╚██████╗██║  ██║██║ ╚═╝ ██║██║
 ╚═╝     ╚═╝╚═╝  ╚═╝   ╚═╝   ╚═╝  ╚═╝     ╚═════╝╚═╝  ╚═╝╚═╝     ╚═╝╚═╝`

const bannerCompact = "M A T H   C A M P"

// bannerWidth is the widest line of bannerArt.
const bannerWidth = 76

// RenderBanner returns the MATH CAMP banner, or a one-line fallback when
// the art does not fit.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
