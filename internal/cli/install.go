package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lt-rawlins/AppImage-Install/internal/apperr"
	"github.com/lt-rawlins/AppImage-Install/internal/config"
	"github.com/lt-rawlins/AppImage-Install/internal/installer"
	"github.com/lt-rawlins/AppImage-Install/internal/layout"
)

var (
	installName       string
	installCategories string
	installComment    string
	installIcon       string
	installExecArgs   string
	installForce      bool
)

func init() {
	f := rootCmd.Flags()
	f.StringVar(&installName, "name", "", "Display name (default: bundle file name without extension)")
	f.StringVar(&installCategories, "categories", "", `Menu categories, e.g. "Graphics;2DGraphics;" (default from config, "Utility;")`)
	f.StringVar(&installComment, "comment", "", "Tooltip shown by the menu")
	f.StringVar(&installIcon, "icon", "", "Icon file to use instead of the bundle's own (.png, .svg or .xpm)")
	f.StringVar(&installExecArgs, "exec-args", "", "Extra arguments passed to the bundle on every launch")
	f.BoolVar(&installForce, "force", false, "Overwrite an existing install of the same name")
}

// newInstaller builds an installer from the effective configuration.
func newInstaller() (*installer.Installer, error) {
	dirs, err := layout.Resolve()
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeFilesystem, "resolving install directories", "", err)
	}
	ledgerPath, err := layout.GetRecordsPath()
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeFilesystem, "resolving install ledger", "", err)
	}

	s := config.Current()
	fs := newFs()
	return installer.New(fs, dirs,
		installer.WithSettings(installer.Settings{
			DefaultCategories: s.DefaultCategories,
			LauncherSuffix:    s.LauncherSuffix,
			CompatFlag:        s.CompatFlag,
			FuseLibrary:       s.FuseLibrary,
			ExtractEnv:        s.ExtractEnv,
		}),
		installer.WithLedger(installer.NewLedger(fs, ledgerPath)),
		installer.WithLogger(logger()),
	), nil
}

func runInstall(cmd *cobra.Command, args []string) error {
	inst, err := newInstaller()
	if err != nil {
		return err
	}

	res, err := inst.Install(cmd.Context(), installer.Request{
		BundlePath: args[0],
		Name:       installName,
		Categories: installCategories,
		Comment:    installComment,
		IconPath:   installIcon,
		ExecArgs:   installExecArgs,
		Force:      installForce,
	})
	if err != nil {
		return err
	}
	return printSummary(cmd.OutOrStdout(), res)
}

func printSummary(out io.Writer, res *installer.Result) error {
	fmt.Fprintf(out, "Installed %s (%s)\n", res.Name, res.Slug)

	icon := res.IconPath
	if res.IconFallback {
		icon += " (no icon found, using the bundle)"
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  bundle:\t%s\n", res.BundlePath)
	fmt.Fprintf(w, "  desktop entry:\t%s\n", res.DesktopPath)
	fmt.Fprintf(w, "  icon:\t%s\n", icon)
	fmt.Fprintf(w, "  launcher:\t%s\n", res.LauncherPath)
	if res.Version != "" {
		fmt.Fprintf(w, "  version:\t%s\n", res.Version)
	}
	return w.Flush()
}
