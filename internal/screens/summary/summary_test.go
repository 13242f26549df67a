package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathcamp/internal/achievements"
	"github.com/abhisek/mathcamp/internal/problemgen"
	"github.com/abhisek/mathcamp/internal/router"
	"github.com/abhisek/mathcamp/internal/screen"
	"github.com/abhisek/mathcamp/internal/session"
)

func testResult() *session.Result {
	first, _ := achievements.Lookup(achievements.FirstProblem)
	return &session.Result{
		SessionID:       "s1",
		Type:            problemgen.TypeAddition,
		Difficulty:      problemgen.DifficultyEasy,
		Total:           4,
		Correct:         3,
		Duration:        95 * time.Second,
		NewAchievements: []achievements.Achievement{first},
	}
}

type stubScreen struct{}

func (stubScreen) Init() tea.Cmd                           { return nil }
func (stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return stubScreen{}, nil }
func (stubScreen) View(int, int) string                    { return "stub" }
func (stubScreen) Title() string                           { return "Stub" }

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testResult(), nil)
	if s.Title() != "Well Done" {
		t.Errorf("Title = %q, want %q", s.Title(), "Well Done")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testResult(), nil)
	view := s.View(80, 24)
	for _, want := range []string{"Great work!", "You got 3 of 4 right", "Score: 75%", "Time: 1:35", "First Steps", "Play again"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_NoBadgeSection(t *testing.T) {
	r := testResult()
	r.NewAchievements = nil
	view := New(r, nil).View(80, 24)
	if strings.Contains(view, "New badge!") {
		t.Error("badge section shown without new achievements")
	}
}

func TestSummaryScreen_PlayAgain(t *testing.T) {
	built := 0
	s := New(testResult(), func() screen.Screen {
		built++
		return stubScreen{}
	})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if _, ok := msg.Screen.(stubScreen); !ok {
		t.Errorf("replacement screen = %T", msg.Screen)
	}
	if built != 1 {
		t.Errorf("playAgain called %d times, want 1", built)
	}
}

func TestSummaryScreen_HomeButton(t *testing.T) {
	s := New(testResult(), func() screen.Screen { return stubScreen{} })
	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("Home button should pop back to the menu")
	}
}

func TestSummaryScreen_Navigation_Esc(t *testing.T) {
	s := New(testResult(), nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command on Esc (pop)")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("Esc should pop")
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testResult(), nil)
	if hints := s.KeyHints(); len(hints) != 3 {
		t.Errorf("KeyHints length = %d, want 3", len(hints))
	}
}
