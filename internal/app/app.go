package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathcamp/internal/analytics"
	"github.com/abhisek/mathcamp/internal/problemgen"
	"github.com/abhisek/mathcamp/internal/router"
	"github.com/abhisek/mathcamp/internal/screen"
	"github.com/abhisek/mathcamp/internal/screens"
	"github.com/abhisek/mathcamp/internal/screens/home"
	sessionscreen "github.com/abhisek/mathcamp/internal/screens/session"
	"github.com/abhisek/mathcamp/internal/screens/welcome"
	"github.com/abhisek/mathcamp/internal/ui/layout"
)

// Options holds the dependencies for the TUI.
type Options struct {
	Env       *screens.Env
	Analytics analytics.Tracker

	// Activity, when set, skips the menus and starts a session right away.
	Activity problemgen.ProblemType

	SkipWelcome bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router    *router.Router
	env       *screens.Env
	analytics analytics.Tracker
	start     tea.Cmd
	width     int
	height    int
}

// newAppModel creates an AppModel starting at the welcome screen, the
// home screen, or directly in a session.
func newAppModel(opts Options) AppModel {
	env := opts.Env
	homeFactory := func() screen.Screen { return home.New(env) }

	var root screen.Screen
	var start tea.Cmd
	switch {
	case opts.Activity != "":
		root = homeFactory()
		start = router.Push(sessionscreen.New(env, opts.Activity))
	case opts.SkipWelcome:
		root = homeFactory()
	default:
		root = welcome.New(homeFactory)
	}

	tracker := opts.Analytics
	if tracker == nil {
		tracker = analytics.Nop{}
	}
	return AppModel{
		router:    router.New(root),
		env:       env,
		analytics: tracker,
		start:     start,
	}
}

func (m AppModel) Init() tea.Cmd {
	m.analytics.TrackAppStarted(context.Background())
	return tea.Batch(m.router.Active().Init(), m.start)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if bh, ok := m.router.Active().(screen.BackHandler); ok && bh.HandlesBack() {
				break
			}
			if m.router.Depth() > 1 {
				return m, router.Pop()
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) headerStats() layout.HeaderStats {
	if m.env == nil || m.env.Progress == nil {
		return layout.HeaderStats{}
	}
	sum := m.env.Progress.Summary()
	return layout.HeaderStats{Streak: sum.CurrentStreak, TotalProblems: sum.TotalProblems}
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Any key", Description: "Start"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.SetContent(m.render())
	return v
}

func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	header := layout.RenderHeader(active.Title(), m.headerStats(), m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	content := m.router.View(m.width, layout.ContentHeight(header, footer, m.height))
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
