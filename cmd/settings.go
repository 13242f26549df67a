package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print every setting",
	RunE: func(cmd *cobra.Command, args []string) error {
		loader, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		path, err := loader.Path()
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "# %s\n", path)
		for _, kv := range loader.Settings() {
			fmt.Fprintf(w, "%-28s %s\n", kv[0], kv[1])
		}
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting and save it",
	Long: `Change a setting and write the config file.

Keys: difficulty, problem_count, db_path, log.level, log.format, log.file,
flags.<name> (e.g. flags.division-activity).`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		loader, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := loader.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := loader.Save(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}
