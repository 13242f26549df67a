package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathcamp/internal/config"
	"github.com/abhisek/mathcamp/internal/problemgen"
	"github.com/abhisek/mathcamp/internal/progress"
	"github.com/abhisek/mathcamp/internal/session"
)

func testGenerator(t *testing.T) *problemgen.Generator {
	t.Helper()
	cfg := problemgen.DefaultConfig()
	cfg.Rand = problemgen.NewRand(1)
	g, err := problemgen.New(cfg)
	require.NoError(t, err)
	return g
}

func TestPrintPlan(t *testing.T) {
	g := testGenerator(t)
	p := session.NewPlanner(problemgen.NewRand(2), g.Catalog(), nil)
	plan, err := p.BuildPlan(problemgen.TypeAddition, 5, problemgen.DifficultyEasy)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, printPlan(&buf, g, plan))

	out := buf.String()
	assert.Contains(t, out, "Addition (easy), 5 questions")
	assert.Contains(t, out, "  1.  ")
	assert.Contains(t, out, "  5.  ")
	assert.NotContains(t, out, "  6.  ")
}

func TestPrintProblemListsChoices(t *testing.T) {
	g := testGenerator(t)
	p, err := g.Arithmetic(problemgen.DifficultyEasy, problemgen.OpAdd, 3, 4)
	require.NoError(t, err)

	var buf bytes.Buffer
	printProblem(&buf, p)

	out := buf.String()
	assert.Contains(t, out, "3 + 4")
	assert.Contains(t, out, "Answer: 7")
	for i := range p.Choices {
		assert.Contains(t, out, "  "+string(rune('1'+i))+") ")
	}
}

func TestPrintStatsEmpty(t *testing.T) {
	tr, err := progress.NewTracker(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	printStats(&buf, tr)
	assert.Equal(t, "No problems solved yet.\n", buf.String())
}

func TestPrintStatsAfterSession(t *testing.T) {
	ctx := context.Background()
	tr, err := progress.NewTracker(ctx)
	require.NoError(t, err)

	id, err := tr.StartSession(ctx, problemgen.TypeAddition, problemgen.DifficultyEasy)
	require.NoError(t, err)
	for _, ok := range []bool{true, true, false, true} {
		require.NoError(t, tr.AddProblemAttempt(ctx, progress.AttemptedProblem{
			SessionID:  id,
			Problem:    problemgen.Problem{ID: "p", Type: problemgen.TypeAddition, Text: "1 + 1", Answer: "2"},
			UserAnswer: "2",
			Correct:    ok,
			Attempts:   1,
		}))
	}
	_, err = tr.EndSession(ctx, id)
	require.NoError(t, err)
	_, err = tr.CheckAchievements(ctx)
	require.NoError(t, err)

	var buf bytes.Buffer
	printStats(&buf, tr)

	out := buf.String()
	assert.Contains(t, out, "Problems solved:  4")
	assert.Contains(t, out, "Correct answers:  3 (75%)")
	assert.Contains(t, out, "Addition")
	assert.Contains(t, out, "Badges: ")
}

func TestSessionOverrides(t *testing.T) {
	newCmd := func(args ...string) *cobra.Command {
		c := &cobra.Command{Use: "x"}
		addSessionFlags(c)
		require.NoError(t, c.ParseFlags(args))
		return c
	}

	cfg := &config.Config{Difficulty: problemgen.DifficultyEasy, ProblemCount: 10}
	apply, err := sessionOverrides(newCmd("--difficulty", "hard", "--count", "3"))
	require.NoError(t, err)
	apply(cfg)
	assert.Equal(t, problemgen.DifficultyHard, cfg.Difficulty)
	assert.Equal(t, 3, cfg.ProblemCount)

	cfg = &config.Config{Difficulty: problemgen.DifficultyMedium, ProblemCount: 10}
	apply, err = sessionOverrides(newCmd())
	require.NoError(t, err)
	apply(cfg)
	assert.Equal(t, problemgen.DifficultyMedium, cfg.Difficulty)
	assert.Equal(t, 10, cfg.ProblemCount)

	_, err = sessionOverrides(newCmd("--difficulty", "impossible"))
	assert.Error(t, err)

	_, err = sessionOverrides(newCmd("--count", "-1"))
	assert.Error(t, err)
}

func TestSettingsSetWritesConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"settings", "set", "difficulty", "hard", "--config", path})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "difficulty = hard\n", out.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "difficulty: hard"), string(data))

	cfg, err := config.NewLoader(path).Load()
	require.NoError(t, err)
	assert.Equal(t, problemgen.DifficultyHard, cfg.Difficulty)
}
