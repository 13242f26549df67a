package progress

import (
	"context"
	"fmt"
	"image/color"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/mathcamp/internal/achievements"
	prog "github.com/abhisek/mathcamp/internal/progress"
	"github.com/abhisek/mathcamp/internal/router"
	"github.com/abhisek/mathcamp/internal/screen"
	"github.com/abhisek/mathcamp/internal/screens"
	"github.com/abhisek/mathcamp/internal/ui/components"
	"github.com/abhisek/mathcamp/internal/ui/layout"
	"github.com/abhisek/mathcamp/internal/ui/theme"
)

// recentLimit is how many past sessions the history tab lists.
const recentLimit = 20

type tab int

const (
	tabOverview tab = iota
	tabSkills
	tabBadges
	tabHistory
)

var tabNames = []string{"Overview", "Skills", "Badges", "History"}

type historyLoadedMsg struct {
	Sessions []prog.Session
	Err      error
}

// ProgressScreen shows lifetime totals, per-activity mastery, badges and
// past sessions on four tabs.
type ProgressScreen struct {
	env      *screens.Env
	tab      tab
	summary  prog.Summary
	mastery  []prog.Mastery
	badges   []achievements.Achievement
	sessions []prog.Session
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*ProgressScreen)(nil)
var _ screen.KeyHintProvider = (*ProgressScreen)(nil)

// New creates a progress screen.
func New(env *screens.Env) *ProgressScreen {
	s := &ProgressScreen{env: env, badges: achievements.All()}
	if t := env.Progress; t != nil {
		s.summary = t.Summary()
		s.mastery = t.Mastery()
		s.badges = t.Achievements()
	}
	return s
}

func (s *ProgressScreen) Init() tea.Cmd {
	tracker := s.env.Progress
	if tracker == nil {
		s.loaded = true
		return nil
	}
	return func() tea.Msg {
		sessions, err := tracker.RecentSessions(context.Background(), recentLimit)
		return historyLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (s *ProgressScreen) Title() string {
	return "My Progress"
}

func (s *ProgressScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Tabs"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ProgressScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.env.Log().Warn("load recent sessions failed", zap.Error(msg.Err))
			s.errMsg = "Could not load past sessions."
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc", "q":
			return s, router.Pop()
		case "left", "h", "shift+tab":
			s.tab = (s.tab + tab(len(tabNames)) - 1) % tab(len(tabNames))
		case "right", "l", "tab":
			s.tab = (s.tab + 1) % tab(len(tabNames))
		case "1", "2", "3", "4":
			s.tab = tab(msg.String()[0] - '1')
		}
	}
	return s, nil
}

func (s *ProgressScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var body string
	switch s.tab {
	case tabSkills:
		body = s.renderSkills(cw)
	case tabBadges:
		body = s.renderBadges(cw)
	case tabHistory:
		body = s.renderHistory(max(height-6, 3))
	default:
		body = s.renderOverview(cw)
	}

	return renderTabs(s.tab, width) + "\n\n" +
		lipgloss.PlaceHorizontal(width, lipgloss.Center, body)
}

func renderTabs(active tab, width int) string {
	parts := make([]string, len(tabNames))
	for i, name := range tabNames {
		if tab(i) == active {
			parts[i] = theme.Selected.Underline(true).Render(name)
		} else {
			parts[i] = theme.Unselected.Render(name)
		}
	}
	return theme.Centered(lipgloss.NewStyle(), width, strings.Join(parts, "   "))
}

func (s *ProgressScreen) renderOverview(cw int) string {
	sum := s.summary
	if sum.TotalProblems == 0 {
		return theme.Hint.Render("No problems solved yet. Pick an activity to start!")
	}

	favorite := "-"
	if sum.FavoriteActivity != "" {
		favorite = sum.FavoriteActivity.Icon() + " " + sum.FavoriteActivity.DisplayName()
	}
	last := "-"
	if !sum.LastPracticed.IsZero() {
		last = sum.LastPracticed.Local().Format("Jan 2, 15:04")
	}

	rows := [][2]string{
		{"Problems solved", fmt.Sprintf("%d", sum.TotalProblems)},
		{"Correct answers", fmt.Sprintf("%d", sum.CorrectAnswers)},
		{"Accuracy", fmt.Sprintf("%d%%", int(sum.Accuracy()*100+0.5))},
		{"Current streak", fmt.Sprintf("🔥 %d", sum.CurrentStreak)},
		{"Best streak", fmt.Sprintf("%d", sum.LongestStreak)},
		{"Favorite", favorite},
		{"Last played", last},
	}
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = theme.Hint.Width(18).Render(r[0]) + theme.Body.Render(r[1])
	}
	return components.Card(strings.Join(lines, "\n"), cw)
}

func (s *ProgressScreen) renderSkills(cw int) string {
	if len(s.mastery) == 0 {
		return theme.Hint.Render("Play an activity to see your skills grow.")
	}
	lines := make([]string, 0, len(s.mastery))
	for _, m := range s.mastery {
		bar := components.ProgressBar{
			Label:       m.Type.Icon() + " " + m.Type.DisplayName(),
			LabelWidth:  22,
			Percent:     float64(m.Level) / 100,
			ShowPercent: true,
			Width:       cw - 4,
			Fill:        levelColor(m.Level),
		}
		lines = append(lines, bar.View()+" "+trendArrow(m.Trend()))
	}
	return strings.Join(lines, "\n")
}

func levelColor(level int) color.Color {
	switch {
	case level >= 80:
		return theme.Success
	case level >= 50:
		return theme.Secondary
	default:
		return theme.Accent
	}
}

func trendArrow(t prog.Trend) string {
	switch t {
	case prog.TrendImproving:
		return theme.Correct.Render("↑")
	case prog.TrendDeclining:
		return theme.Incorrect.Render("↓")
	default:
		return theme.Hint.Render("→")
	}
}

func (s *ProgressScreen) renderBadges(cw int) string {
	if !s.env.BadgesEnabled() {
		return theme.Subtitle.Render("Badges are switched off.")
	}
	unlocked := 0
	lines := make([]string, 0, len(s.badges)+2)
	for _, a := range s.badges {
		if a.Unlocked() {
			unlocked++
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.RarityColor(string(a.Rarity))).
				Render(fmt.Sprintf("%s  %-16s %s", a.Icon, a.Name, a.Description)))
			continue
		}
		lines = append(lines, theme.Disabled.Render(fmt.Sprintf("🔒  %-16s %s", a.Name, a.Description)))
	}
	header := theme.Subtitle.Render(fmt.Sprintf("%d of %d badges", unlocked, len(s.badges)))
	return header + "\n\n" + lipgloss.NewStyle().Width(cw).Render(strings.Join(lines, "\n"))
}

func (s *ProgressScreen) renderHistory(rows int) string {
	switch {
	case s.errMsg != "":
		return lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg)
	case !s.loaded:
		return theme.Hint.Render("Loading...")
	case len(s.sessions) == 0:
		return theme.Hint.Render("No sessions yet.")
	}

	lines := make([]string, 0, min(rows, len(s.sessions)))
	for _, sess := range s.sessions[:min(rows, len(s.sessions))] {
		lines = append(lines, fmt.Sprintf("%-12s %s %-18s %-6s %3d%%  %d/%d  %s",
			sess.StartedAt.Local().Format("Jan 2 15:04"),
			sess.Type.Icon(),
			sess.Type.DisplayName(),
			sess.Difficulty,
			sess.Score,
			sess.Correct(),
			sess.Len(),
			sess.Duration.Round(time.Second),
		))
	}
	return lipgloss.NewStyle().Foreground(theme.Text).Render(strings.Join(lines, "\n"))
}
