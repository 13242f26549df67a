package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathcamp/internal/analytics"
	"github.com/abhisek/mathcamp/internal/problemgen"
	"github.com/abhisek/mathcamp/internal/router"
	"github.com/abhisek/mathcamp/internal/screens"
	"github.com/abhisek/mathcamp/internal/session"
)

func testEnv(t *testing.T) *screens.Env {
	t.Helper()
	gen, err := problemgen.New(problemgen.Config{Rand: problemgen.NewRand(1)})
	if err != nil {
		t.Fatalf("generator: %v", err)
	}
	flags := analytics.NewFlags(nil)
	orch := session.NewOrchestrator(
		session.Config{Difficulty: problemgen.DifficultyEasy, ProblemCount: 3},
		session.Deps{Planner: session.NewPlanner(problemgen.NewRand(2), gen.Catalog(), nil), Generator: gen, Flags: flags},
	)
	return &screens.Env{Orchestrator: orch, Flags: flags}
}

func sized(m AppModel) AppModel {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 32})
	return updated.(AppModel)
}

func TestStartsAtWelcome(t *testing.T) {
	m := sized(newAppModel(Options{Env: testEnv(t)}))
	if m.router.Active().Title() != "" {
		t.Errorf("root title = %q, want welcome", m.router.Active().Title())
	}
}

func TestSkipWelcome(t *testing.T) {
	m := sized(newAppModel(Options{Env: testEnv(t), SkipWelcome: true}))
	if m.router.Active().Title() != "Home" {
		t.Errorf("root title = %q, want Home", m.router.Active().Title())
	}
	if !strings.Contains(m.render(), "Math Camp") {
		t.Error("header should be drawn")
	}
}

func TestAppStartedTracked(t *testing.T) {
	sink := &analytics.MemorySink{}
	m := newAppModel(Options{Env: testEnv(t), SkipWelcome: true, Analytics: analytics.NewClient(sink, nil)})
	m.Init()
	if n := sink.Count(analytics.EventAppStarted); n != 1 {
		t.Errorf("app_started events = %d, want 1", n)
	}
}

func TestActivityStartsSession(t *testing.T) {
	m := sized(newAppModel(Options{Env: testEnv(t), Activity: problemgen.TypeCounting}))
	if m.start == nil {
		t.Fatal("expected a start command")
	}
	msg, ok := m.start().(router.PushScreenMsg)
	if !ok {
		t.Fatal("start should push the session screen")
	}
	m.Update(msg)
	if m.router.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", m.router.Depth())
	}

	// The session screen handles Esc itself and asks before quitting.
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		if _, isPop := cmd().(router.PopScreenMsg); isPop {
			t.Error("Esc in a session should not pop immediately")
		}
	}
	if m.router.Depth() != 2 {
		t.Error("session should still be on screen")
	}
}

func TestEscPopsOtherScreens(t *testing.T) {
	m := sized(newAppModel(Options{Env: testEnv(t), SkipWelcome: true}))
	// Walk the menu down to My Progress, which does not handle Esc.
	for range 20 {
		m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
		_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
		if cmd == nil {
			t.Fatal("expected a command on Enter")
		}
		if push, ok := cmd().(router.PushScreenMsg); ok && push.Screen.Title() == "My Progress" {
			m.Update(push)
			break
		}
	}
	if m.router.Depth() != 2 {
		t.Fatal("could not open My Progress")
	}

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("Esc should pop")
	}
}

func TestTooSmall(t *testing.T) {
	m := newAppModel(Options{Env: testEnv(t), SkipWelcome: true})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(updated.(AppModel).render(), "bigger") {
		t.Error("expected the minimum size message")
	}
}
