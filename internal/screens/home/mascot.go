package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathcamp/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Default purple
	MascotCelebrating                      // Gold, star eyes: on a streak
	MascotWaving                           // Orange: nothing played yet
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ +−× │
└─────┘`

const mascotCelebrating = `┌─────┐
│ ★ ★ │
│  ▿  │
│ +−× │
└─╥═╥─┘
  ╚═╝`

const mascotWaving = `┌─────┐
│ ◉ ◉ │ /
│  ◡  │/
│ +−× │
└─────┘`

// mascotFor picks the mascot for the learner's totals.
func mascotFor(totalProblems, streak int) MascotVariant {
	switch {
	case totalProblems == 0:
		return MascotWaving
	case streak >= 3:
		return MascotCelebrating
	default:
		return MascotIdle
	}
}

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(v MascotVariant) string {
	art := mascotIdle
	fg := theme.Primary

	switch v {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.Star
	case MascotWaving:
		art = mascotWaving
		fg = theme.Accent
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
