package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall <slug>",
	Short: "Remove an installed bundle",
	Long: `Remove the bundle, desktop entry, icon and launcher recorded for <slug>.
Run "list" to see installed slugs.`,
	Args: exactArgs(1, "exactly one slug"),
	RunE: runUninstall,
}

func init() {
	rootCmd.AddCommand(uninstallCmd)
}

func runUninstall(cmd *cobra.Command, args []string) error {
	inst, err := newInstaller()
	if err != nil {
		return err
	}
	rec, err := inst.Uninstall(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s (%s)\n", rec.Name, rec.Slug)
	return nil
}
