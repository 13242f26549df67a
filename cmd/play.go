package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathcamp/internal/config"
	"github.com/abhisek/mathcamp/internal/problemgen"
)

var playCmd = &cobra.Command{
	Use:   "play <activity>",
	Short: "Jump straight into an activity",
	Long: `Start a practice session for one activity without going through the menu.

Activities: addition, subtraction, multiplication, division, comparison,
fact-family, word-problem, counting, counting-sequence.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := problemgen.ParseProblemType(args[0])
		if err != nil {
			return err
		}
		override, err := sessionOverrides(cmd)
		if err != nil {
			return err
		}
		return runAppWith(cmd, t, override)
	},
}

func init() {
	addSessionFlags(playCmd)
}

// addSessionFlags registers --difficulty and --count.
func addSessionFlags(c *cobra.Command) {
	c.Flags().String("difficulty", "", "Difficulty: easy, medium or hard (default from config)")
	c.Flags().Int("count", 0, "Number of questions (default from config)")
}

// sessionOverrides applies --difficulty and --count on top of the loaded
// config.
func sessionOverrides(cmd *cobra.Command) (func(*config.Config), error) {
	raw, _ := cmd.Flags().GetString("difficulty")
	count, _ := cmd.Flags().GetInt("count")

	var d problemgen.Difficulty
	if raw != "" {
		parsed, err := problemgen.ParseDifficulty(raw)
		if err != nil {
			return nil, err
		}
		d = parsed
	}
	if count < 0 {
		return nil, fmt.Errorf("--count must be positive, got %d", count)
	}

	return func(cfg *config.Config) {
		if d != "" {
			cfg.Difficulty = d
		}
		if count > 0 {
			cfg.ProblemCount = count
		}
	}, nil
}
