package session

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/mathcamp/internal/problemgen"
	"github.com/abhisek/mathcamp/internal/router"
	"github.com/abhisek/mathcamp/internal/screen"
	"github.com/abhisek/mathcamp/internal/screens"
	"github.com/abhisek/mathcamp/internal/screens/summary"
	sess "github.com/abhisek/mathcamp/internal/session"
	"github.com/abhisek/mathcamp/internal/ui/components"
	"github.com/abhisek/mathcamp/internal/ui/layout"
)

const (
	feedbackCorrect = 1200 * time.Millisecond
	feedbackWrong   = 2500 * time.Millisecond
)

// SessionScreen plays one session of a single activity.
type SessionScreen struct {
	env   *screens.Env
	ptype problemgen.ProblemType

	problem *problemgen.Problem
	choices components.MultiChoice
	input   components.AnswerInput
	total   int
	results []bool
	streak  int
	hint    string

	// Set while the feedback for the last answer is on screen.
	outcome    *sess.Outcome
	lastAnswer string

	confirmQuit bool
	busy        bool
	token       int
	closed      bool
	errMsg      string
}

var (
	_ screen.Screen          = (*SessionScreen)(nil)
	_ screen.KeyHintProvider = (*SessionScreen)(nil)
	_ screen.Closer          = (*SessionScreen)(nil)
	_ screen.BackHandler     = (*SessionScreen)(nil)
)

// New creates a session screen for activity t.
func New(env *screens.Env, t problemgen.ProblemType) *SessionScreen {
	return &SessionScreen{env: env, ptype: t, busy: true}
}

func (s *SessionScreen) Init() tea.Cmd {
	orch := s.env.Orchestrator
	t := s.ptype
	return func() tea.Msg {
		p, err := orch.StartGame(context.Background(), t)
		return startedMsg{Problem: p, Err: err}
	}
}

func (s *SessionScreen) Title() string {
	return s.ptype.DisplayName()
}

func (s *SessionScreen) HandlesBack() bool { return true }

// Close drops the session and invalidates pending feedback ticks.
func (s *SessionScreen) Close() {
	s.closed = true
	s.token++
	if !s.busy && s.env.Orchestrator.Phase() == sess.PhaseAwaitingAnswer {
		s.env.Orchestrator.Abandon()
	}
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "Enter", Description: "Home"}}
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "Stop playing"},
			{Key: "N", Description: "Keep going"},
		}
	case s.outcome != nil:
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	}

	hints := []layout.KeyHint{}
	if s.problem != nil && s.problem.Format == problemgen.FormatMultipleChoice {
		hints = append(hints,
			layout.KeyHint{Key: "↑↓", Description: "Choose"},
			layout.KeyHint{Key: "1-4", Description: "Pick"})
	}
	hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Answer"})
	if s.env.HintsEnabled() {
		hints = append(hints, layout.KeyHint{Key: "H", Description: "Hint"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Quit"})
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.closed {
		return s, nil
	}

	switch msg := msg.(type) {
	case startedMsg:
		return s.handleStarted(msg)

	case answeredMsg:
		return s.handleAnswered(msg)

	case feedbackDoneMsg:
		if msg.Token != s.token || s.outcome == nil {
			return s, nil
		}
		return s.advance()

	case components.ChoiceSubmittedMsg:
		return s.submit(msg.Value)

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	if s.acceptsText() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SessionScreen) acceptsText() bool {
	return s.problem != nil && !s.busy && s.outcome == nil && !s.confirmQuit &&
		s.problem.Format != problemgen.FormatMultipleChoice
}

func (s *SessionScreen) handleStarted(msg startedMsg) (screen.Screen, tea.Cmd) {
	s.busy = false
	if msg.Err != nil {
		s.env.Log().Error("session start failed", zap.String("type", string(s.ptype)), zap.Error(msg.Err))
		s.errMsg = startErrorText(msg.Err)
		return s, nil
	}
	st := s.env.Orchestrator.State()
	s.total = st.Total()
	return s, s.present(msg.Problem)
}

func startErrorText(err error) string {
	if errors.Is(err, sess.ErrActivityDisabled) {
		return "This activity is switched off right now."
	}
	return "Oops! We could not make any problems. Try another activity."
}

func (s *SessionScreen) present(p *problemgen.Problem) tea.Cmd {
	s.problem = p
	s.hint = ""
	s.lastAnswer = ""
	if p.Format == problemgen.FormatMultipleChoice {
		s.choices = components.NewMultiChoice(p.Choices)
		return nil
	}
	s.input = components.NewAnswerInput(inputPlaceholder(p), 32)
	return s.input.Init()
}

func inputPlaceholder(p *problemgen.Problem) string {
	if p.Format == problemgen.FormatNumericList {
		return "four numbers, like 7 7 14 14"
	}
	return "type your answer"
}

func (s *SessionScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		if key == "enter" || key == "esc" {
			return s, router.Home()
		}
		return s, nil
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.env.Orchestrator.Abandon()
			return s, router.Pop()
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	if s.busy || s.problem == nil {
		return s, nil
	}

	if s.outcome != nil {
		return s.advance()
	}

	switch key {
	case "esc":
		s.confirmQuit = true
		return s, nil
	case "h", "H":
		if s.env.HintsEnabled() && s.hint == "" {
			if hint, err := s.env.Orchestrator.UseHint(); err == nil {
				s.hint = hint
			}
		}
		return s, nil
	}

	if s.problem.Format == problemgen.FormatMultipleChoice {
		var cmd tea.Cmd
		s.choices, cmd = s.choices.Update(msg)
		return s, cmd
	}

	if key == "enter" {
		if strings.TrimSpace(s.input.Value()) == "" {
			return s, nil
		}
		return s.submit(s.input.Value())
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *SessionScreen) submit(answer string) (screen.Screen, tea.Cmd) {
	if s.busy || s.outcome != nil {
		return s, nil
	}
	s.busy = true
	orch := s.env.Orchestrator
	return s, func() tea.Msg {
		out, err := orch.HandleAnswer(context.Background(), answer)
		return answeredMsg{Answer: answer, Outcome: out, Err: err}
	}
}

func (s *SessionScreen) handleAnswered(msg answeredMsg) (screen.Screen, tea.Cmd) {
	s.busy = false
	if msg.Err != nil {
		s.env.Log().Error("answer failed", zap.Error(msg.Err))
		s.errMsg = "Something went wrong with the next question."
		return s, nil
	}

	out := msg.Outcome
	s.outcome = out
	s.lastAnswer = msg.Answer
	s.results = append(s.results, out.Correct)
	if out.Correct {
		s.streak++
	} else {
		s.streak = 0
	}
	if s.problem.Format != problemgen.FormatMultipleChoice {
		s.input.Submit(out.Correct)
	}

	s.token++
	token := s.token
	wait := feedbackWrong
	if out.Correct {
		wait = feedbackCorrect
	}
	return s, tea.Tick(wait, func(time.Time) tea.Msg {
		return feedbackDoneMsg{Token: token}
	})
}

func (s *SessionScreen) advance() (screen.Screen, tea.Cmd) {
	out := s.outcome
	s.outcome = nil
	s.token++

	if out.Complete() {
		env, t := s.env, s.ptype
		next := summary.New(out.Result, func() screen.Screen { return New(env, t) })
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	}
	return s, s.present(out.Next)
}
