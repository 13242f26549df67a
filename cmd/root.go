package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mathcamp",
	Short: "Math practice games for kids",
	Long:  "Math Camp is a terminal app where young learners practice addition, subtraction, counting and more.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/mathcamp/config.yaml)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MATHCAMP_DB env var)")
	rootCmd.Flags().Bool("no-splash", false, "Skip the welcome animation")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(problemCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}
