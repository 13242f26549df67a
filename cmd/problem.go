package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathcamp/internal/problemgen"
)

var problemCmd = &cobra.Command{
	Use:   "problem <activity>",
	Short: "Generate a single problem and print it (no database)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := problemgen.ParseProblemType(args[0])
		if err != nil {
			return err
		}
		raw, _ := cmd.Flags().GetString("difficulty")
		d, err := problemgen.ParseDifficulty(raw)
		if err != nil {
			return err
		}
		_, cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		rt, err := openRuntime(cmd, cfg, runtimeOptions{})
		if err != nil {
			return err
		}
		defer rt.Close()

		p, err := rt.generator.Generate(t, d)
		if err != nil {
			return err
		}
		printProblem(cmd.OutOrStdout(), p)
		return nil
	},
}

func init() {
	problemCmd.Flags().String("difficulty", string(problemgen.DifficultyEasy), "Difficulty: easy, medium or hard")
}

func printProblem(w io.Writer, p *problemgen.Problem) {
	fmt.Fprintf(w, "%s %s (%s)\n\n", p.Type.Icon(), p.Type.DisplayName(), p.Difficulty)
	fmt.Fprintln(w, p.Text)
	if len(p.Choices) > 0 {
		fmt.Fprintln(w)
		for i, c := range p.Choices {
			fmt.Fprintf(w, "  %d) %s\n", i+1, c)
		}
	}
	fmt.Fprintf(w, "\nAnswer: %s\n", p.Answer)
	if p.Hint != "" {
		fmt.Fprintf(w, "Hint:   %s\n", p.Hint)
	}
}
