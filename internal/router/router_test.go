package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathcamp/internal/screen"
)

type stubScreen struct {
	title     string
	initRan   bool
	closed    bool
	refreshed int
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }
func (s *stubScreen) Close()                                  { s.closed = true }
func (s *stubScreen) Refresh() tea.Cmd {
	s.refreshed++
	return nil
}

func TestPush(t *testing.T) {
	r := New(&stubScreen{title: "home"})

	s2 := &stubScreen{title: "session"}
	r.Push(s2)

	if r.Depth() != 2 {
		t.Errorf("Depth() = %d, want 2", r.Depth())
	}
	if r.Active().Title() != "session" {
		t.Errorf("Active() = %q, want session", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("Init() did not run on pushed screen")
	}
}

func TestPopClosesAndRefreshes(t *testing.T) {
	root := &stubScreen{title: "home"}
	r := New(root)
	s2 := &stubScreen{title: "session"}
	r.Push(s2)

	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", r.Depth())
	}
	if !s2.closed {
		t.Error("popped screen was not closed")
	}
	if root.refreshed != 1 {
		t.Errorf("root refreshed %d times, want 1", root.refreshed)
	}
}

func TestPopNoopAtRoot(t *testing.T) {
	root := &stubScreen{title: "home"}
	r := New(root)

	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", r.Depth())
	}
	if root.closed {
		t.Error("root must never be closed by Pop")
	}
}

func TestReplaceKeepsDepth(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	s2 := &stubScreen{title: "session"}
	r.Push(s2)

	s3 := &stubScreen{title: "summary"}
	r.Update(ReplaceScreenMsg{Screen: s3})

	if r.Depth() != 2 {
		t.Errorf("Depth() = %d, want 2", r.Depth())
	}
	if r.Active().Title() != "summary" {
		t.Errorf("Active() = %q, want summary", r.Active().Title())
	}
	if !s2.closed || !s3.initRan {
		t.Errorf("closed=%v init=%v, want both true", s2.closed, s3.initRan)
	}
}

func TestHomeUnwindsStack(t *testing.T) {
	root := &stubScreen{title: "home"}
	r := New(root)
	a := &stubScreen{title: "a"}
	b := &stubScreen{title: "b"}
	r.Push(a)
	r.Push(b)

	r.Update(HomeMsg{})

	if r.Depth() != 1 || r.Active() != root {
		t.Fatalf("Depth() = %d, want root only", r.Depth())
	}
	if !a.closed || !b.closed {
		t.Errorf("closed a=%v b=%v, want both", a.closed, b.closed)
	}
	if root.refreshed != 1 {
		t.Errorf("root refreshed %d times, want 1", root.refreshed)
	}
}

func TestCommandHelpers(t *testing.T) {
	s := &stubScreen{title: "x"}
	if _, ok := Push(s)().(PushScreenMsg); !ok {
		t.Error("Push() did not produce PushScreenMsg")
	}
	if _, ok := Pop()().(PopScreenMsg); !ok {
		t.Error("Pop() did not produce PopScreenMsg")
	}
	if _, ok := Home()().(HomeMsg); !ok {
		t.Error("Home() did not produce HomeMsg")
	}
}
