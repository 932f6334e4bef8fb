package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lt-rawlins/AppImage-Install/internal/installer"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed bundles",
	Long:  `List the bundles recorded in the install ledger (~/.appimage-install/installed.yaml).`,
	Args:  exactArgs(0, "no arguments"),
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	inst, err := newInstaller()
	if err != nil {
		return err
	}
	records, err := inst.List()
	if err != nil {
		return fmt.Errorf("reading install ledger: %w", err)
	}

	if listJSON {
		return printListJSON(cmd, records)
	}
	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No bundles installed yet.")
		return nil
	}
	return printListTable(cmd, records)
}

func printListTable(cmd *cobra.Command, records []installer.Record) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "SLUG\tNAME\tVERSION\tINSTALLED")
	for _, r := range records {
		version := r.Version
		if version == "" {
			version = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Slug, r.Name, version, r.InstalledAt.Local().Format("2006-01-02"))
	}
	return w.Flush()
}

func printListJSON(cmd *cobra.Command, records []installer.Record) error {
	if records == nil {
		records = []installer.Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
