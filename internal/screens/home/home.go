package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathcamp/internal/problemgen"
	"github.com/abhisek/mathcamp/internal/progress"
	"github.com/abhisek/mathcamp/internal/router"
	"github.com/abhisek/mathcamp/internal/screen"
	"github.com/abhisek/mathcamp/internal/screens"
	progressscreen "github.com/abhisek/mathcamp/internal/screens/progress"
	sessionscreen "github.com/abhisek/mathcamp/internal/screens/session"
	"github.com/abhisek/mathcamp/internal/ui/components"
	"github.com/abhisek/mathcamp/internal/ui/layout"
)

// HomeScreen is the activity menu.
type HomeScreen struct {
	env     *screens.Env
	menu    components.Menu
	summary progress.Summary
}

var (
	_ screen.Screen          = (*HomeScreen)(nil)
	_ screen.KeyHintProvider = (*HomeScreen)(nil)
	_ router.Refresher       = (*HomeScreen)(nil)
)

// New creates the home screen.
func New(env *screens.Env) *HomeScreen {
	h := &HomeScreen{env: env}
	h.menu = components.NewMenu(h.items())
	h.loadSummary()
	return h
}

func (h *HomeScreen) items() []components.MenuItem {
	env := h.env
	var items []components.MenuItem
	for _, t := range problemgen.AllProblemTypes() {
		items = append(items, components.MenuItem{
			Label:    t.DisplayName(),
			Icon:     t.Icon(),
			Disabled: env.Flags != nil && !env.Flags.ActivityEnabled(t),
			Action: func() tea.Cmd {
				return router.Push(sessionscreen.New(env, t))
			},
		})
	}
	items = append(items,
		components.MenuItem{Label: "My Progress", Icon: "📈", Action: func() tea.Cmd {
			return router.Push(progressscreen.New(env))
		}},
		components.MenuItem{Label: "Exit", Icon: "👋", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)
	return items
}

func (h *HomeScreen) loadSummary() {
	if h.env.Progress != nil {
		h.summary = h.env.Progress.Summary()
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Refresh reloads the totals after a session.
func (h *HomeScreen) Refresh() tea.Cmd {
	h.loadSummary()
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Play"},
		{Key: "D", Description: "Level"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && (kmsg.String() == "d" || kmsg.String() == "D") {
		h.cycleDifficulty()
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

// cycleDifficulty moves to the next difficulty for the following sessions.
func (h *HomeScreen) cycleDifficulty() {
	cfg := h.env.Orchestrator.Config()
	cfg.Difficulty = nextDifficulty(cfg.Difficulty)
	h.env.Orchestrator.SetConfig(cfg)
}

func nextDifficulty(d problemgen.Difficulty) problemgen.Difficulty {
	all := problemgen.Difficulties
	for i, x := range all {
		if x == d {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

func (h *HomeScreen) View(width, height int) string {
	compact := height < 26 || width < layout.CompactWidthThreshold
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if height >= 36 {
		sections = append(sections, renderMascotBox(mascotFor(h.summary.TotalProblems, h.summary.CurrentStreak), cw))
	}
	sections = append(sections,
		renderStatsBar(h.summary, h.env.Orchestrator.Config().Difficulty, cw, compact),
		h.menu.View(menuWidth, cw),
	)

	sep := "\n\n"
	if compact {
		sep = "\n"
	}
	return components.CabinetFrame(strings.Join(sections, sep), width, height)
}

