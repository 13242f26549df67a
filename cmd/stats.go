package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathcamp/internal/progress"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		rt, err := openRuntime(cmd, cfg, runtimeOptions{withStore: true})
		if err != nil {
			return err
		}
		defer rt.Close()

		printStats(cmd.OutOrStdout(), rt.tracker)
		return nil
	},
}

func printStats(w io.Writer, t *progress.Tracker) {
	s := t.Summary()
	if s.TotalProblems == 0 {
		fmt.Fprintln(w, "No problems solved yet.")
		return
	}

	fmt.Fprintf(w, "Problems solved:  %d\n", s.TotalProblems)
	fmt.Fprintf(w, "Correct answers:  %d (%.0f%%)\n", s.CorrectAnswers, s.Accuracy()*100)
	fmt.Fprintf(w, "Current streak:   %d\n", s.CurrentStreak)
	fmt.Fprintf(w, "Longest streak:   %d\n", s.LongestStreak)
	if s.FavoriteActivity != "" {
		fmt.Fprintf(w, "Favorite:         %s\n", s.FavoriteActivity.DisplayName())
	}
	if !s.LastPracticed.IsZero() {
		fmt.Fprintf(w, "Last practiced:   %s\n", s.LastPracticed.Format("2006-01-02 15:04"))
	}

	if ms := t.Mastery(); len(ms) > 0 {
		fmt.Fprintf(w, "\n%-20s  %5s  %9s  %8s  %s\n", "Activity", "Level", "Attempted", "Accuracy", "Trend")
		fmt.Fprintln(w, strings.Repeat("─", 60))
		for _, m := range ms {
			fmt.Fprintf(w, "%-20s  %5d  %9d  %7.0f%%  %s\n",
				m.Type.DisplayName(), m.Level, m.Attempted, m.Accuracy()*100, m.Trend())
		}
	}

	var earned []string
	all := t.Achievements()
	for _, a := range all {
		if a.Unlocked() {
			earned = append(earned, a.Icon+" "+a.Name)
		}
	}
	fmt.Fprintf(w, "\nBadges: %d of %d\n", len(earned), len(all))
	for _, e := range earned {
		fmt.Fprintf(w, "  %s\n", e)
	}
}
