package cli

import (
	"context"
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/lt-rawlins/AppImage-Install/internal/apperr"
	"github.com/lt-rawlins/AppImage-Install/internal/branding"
	"github.com/lt-rawlins/AppImage-Install/internal/config"
	"github.com/lt-rawlins/AppImage-Install/internal/logging"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string

	verbose bool

	// log is set up in PersistentPreRunE; reportError falls back to a fresh
	// logger when parsing failed before that.
	log *logrus.Logger

	// newFs returns the filesystem commands operate on.
	newFs = afero.NewOsFs
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName() + " <bundle>",
	Short: branding.Description(),
	Long: heredoc.Docf(`
		%s copies an AppImage into ~/Applications and adds it to the desktop
		application menu for the current user, without administrative privileges.

		It writes a .desktop entry, installs the bundle's icon, and generates a
		launcher in ~/.local/bin that retries a failed start with a compatibility
		flag (--no-sandbox by default).

		A bundle whose file name matches a subcommand (list, uninstall, config,
		version) must be given with a path, for example ./list.`, branding.DisplayName()),
	Example: heredoc.Docf(`
		$ %[1]s ~/Downloads/MyApp.AppImage
		$ %[1]s --name "My App" --exec-args "--flag1 --flag2" MyApp.AppImage
		$ %[1]s --icon logo.svg --categories "Graphics;2DGraphics;" Krita-5.2.2-x86_64.AppImage
		$ %[1]s --force MyApp.AppImage
		$ %[1]s ./list`, branding.CLIName()),
	Args:          bundleArg,
	RunE:          runInstall,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		level := config.Current().LogLevel
		if verbose {
			level = logging.DEBUG
		}
		log = logging.New(cmd.ErrOrStderr(), level)

		issues, err := config.Check()
		if err != nil {
			log.Warnf("could not validate %s: %v", config.FilePath(), err)
		}
		for _, issue := range issues {
			log.Warnf("config %s: %s", config.FilePath(), issue)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every step")
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return apperr.Wrap(apperr.CodeInvalidInput, "", "", err)
	})
}

// Execute runs the root command with build info injected via ldflags.
// Errors are logged before they are returned.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	rootCmd.Version = version
	return execute(context.Background())
}

func execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		reportError(err)
	}
	return err
}

// logger returns the command logger, or a discarding one before setup.
func logger() logrus.FieldLogger {
	if log == nil {
		return logging.Discard()
	}
	return log
}

func reportError(err error) {
	l := log
	if l == nil {
		l = logging.New(rootCmd.ErrOrStderr(), logging.INFO)
	}
	entry := logrus.NewEntry(l)
	if code := apperr.CodeOf(err); code != "" {
		entry = entry.WithField("code", string(code))
	}
	entry.Error(err)
	if apperr.Is(err, apperr.CodeInvalidInput) {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Run '%s --help' for usage.\n", branding.CLIName())
	}
}

// exactArgs is cobra.ExactArgs with errors classified as usage errors.
func exactArgs(n int, what string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return apperr.New(apperr.CodeInvalidInput, "%s expects %s, got %d argument(s)", cmd.CommandPath(), what, len(args))
		}
		return nil
	}
}

func bundleArg(cmd *cobra.Command, args []string) error {
	return exactArgs(1, "exactly one bundle path")(cmd, args)
}
