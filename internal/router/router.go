package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathcamp/internal/screen"
)

// PushScreenMsg pushes a screen on top of the stack.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg pops the active screen.
type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the active screen for another at the same depth.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// HomeMsg pops everything above the root screen.
type HomeMsg struct{}

// Router manages a stack of screens. The root screen is never popped.
type Router struct {
	stack []screen.Screen
}

// New creates a Router with initial as the root.
func New(initial screen.Screen) *Router {
	return &Router{stack: []screen.Screen{initial}}
}

// Push adds s on top and runs its Init.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop removes the top screen. It is a no-op at the root.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	closeScreen(r.stack[len(r.stack)-1])
	r.stack = r.stack[:len(r.stack)-1]
	return r.refresh()
}

// Replace swaps the active screen for s and runs its Init.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	closeScreen(r.stack[len(r.stack)-1])
	r.stack[len(r.stack)-1] = s
	return s.Init()
}

// Home pops back to the root screen.
func (r *Router) Home() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	for i := len(r.stack) - 1; i >= 1; i-- {
		closeScreen(r.stack[i])
	}
	r.stack = r.stack[:1]
	return r.refresh()
}

// refresh re-runs Init on a screen that becomes active again so it can
// reload anything that changed underneath it.
func (r *Router) refresh() tea.Cmd {
	if rf, ok := r.Active().(Refresher); ok {
		return rf.Refresh()
	}
	return nil
}

// Refresher is implemented by screens that reload when uncovered.
type Refresher interface {
	Refresh() tea.Cmd
}

// Active returns the top screen.
func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

// Depth returns the number of screens on the stack.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Update handles navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case HomeMsg:
		return r.Home()
	}

	active := r.Active()
	if active == nil {
		return nil
	}

	updated, cmd := active.Update(msg)
	r.stack[len(r.stack)-1] = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	active := r.Active()
	if active == nil {
		return ""
	}
	return active.View(width, height)
}

func closeScreen(s screen.Screen) {
	if c, ok := s.(screen.Closer); ok {
		c.Close()
	}
}

// Pop returns a command that pops the active screen.
func Pop() tea.Cmd {
	return func() tea.Msg { return PopScreenMsg{} }
}

// Push returns a command that pushes s.
func Push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return PushScreenMsg{Screen: s} }
}

// Home returns a command that returns to the root screen.
func Home() tea.Cmd {
	return func() tea.Msg { return HomeMsg{} }
}
