package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathcamp/internal/ui/layout"
)

// Screen is one page of the app. The router owns a stack of them.
type Screen interface {
	Init() tea.Cmd

	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area only; the app draws header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Closer is implemented by screens that hold timers or sessions. The
// router calls Close when the screen leaves the stack; late messages for
// a closed screen must be ignored.
type Closer interface {
	Close()
}

// BackHandler is implemented by screens that handle Esc themselves
// instead of letting the app pop them.
type BackHandler interface {
	HandlesBack() bool
}
