package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathcamp/internal/problemgen"
	"github.com/abhisek/mathcamp/internal/session"
)

var planCmd = &cobra.Command{
	Use:   "plan <activity>",
	Short: "Print the question plan for a session (no database)",
	Long: `Build a session plan and print every question without playing it.

This is a stateless developer tool: nothing is recorded.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := problemgen.ParseProblemType(args[0])
		if err != nil {
			return err
		}
		_, cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		override, err := sessionOverrides(cmd)
		if err != nil {
			return err
		}
		override(cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}

		rt, err := openRuntime(cmd, cfg, runtimeOptions{})
		if err != nil {
			return err
		}
		defer rt.Close()

		if seed, _ := cmd.Flags().GetUint64("seed"); seed != 0 {
			rt.planner = session.NewPlanner(problemgen.NewRand(seed), rt.generator.Catalog(), rt.logger)
		}

		plan, err := rt.planner.BuildPlan(t, cfg.ProblemCount, cfg.Difficulty)
		if err != nil {
			return err
		}
		return printPlan(cmd.OutOrStdout(), rt.generator, plan)
	},
}

func init() {
	addSessionFlags(planCmd)
	planCmd.Flags().Uint64("seed", 0, "Seed for a reproducible plan")
}

func printPlan(w io.Writer, b session.ProblemBuilder, plan *session.Plan) error {
	fmt.Fprintf(w, "%s (%s), %d questions\n", plan.Type.DisplayName(), plan.Difficulty, plan.Len())
	fmt.Fprintln(w, strings.Repeat("─", 60))

	for i, item := range plan.Items {
		p, err := session.Render(b, plan, item)
		if err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
		fmt.Fprintf(w, "%3d.  %-36s  %s\n", i+1, oneLine(p.Text), p.Answer)
	}

	if plan.Repeats > 0 {
		fmt.Fprintf(w, "\n%d repeated questions\n", plan.Repeats)
	}
	return nil
}

func oneLine(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > 36 {
		s = s[:33] + "..."
	}
	return s
}
