package installer

import (
	"context"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/lt-rawlins/AppImage-Install/internal/apperr"
	"github.com/lt-rawlins/AppImage-Install/internal/desktop"
	"github.com/lt-rawlins/AppImage-Install/internal/icon"
	"github.com/lt-rawlins/AppImage-Install/internal/launcher"
	"github.com/lt-rawlins/AppImage-Install/internal/layout"
	"github.com/lt-rawlins/AppImage-Install/internal/logging"
	"github.com/lt-rawlins/AppImage-Install/internal/platform"
)

// IconResolver finds an icon inside a bundle. *icon.Resolver implements it.
type IconResolver interface {
	Resolve(ctx context.Context, bundlePath string) (*icon.Candidate, error)
}

// Settings are the tunables an install reads from configuration.
type Settings struct {
	DefaultCategories string
	LauncherSuffix    string
	CompatFlag        string
	FuseLibrary       string
	ExtractEnv        string
}

// Result lists the artifacts of a finished install.
type Result struct {
	Identity
	Version      string
	BundlePath   string // installed copy
	DesktopPath  string
	IconPath     string // installed icon, or BundlePath when IconFallback is set
	LauncherPath string
	IconFallback bool
}

// Installer performs installs into a fixed set of directories.
type Installer struct {
	fs       afero.Fs
	dirs     layout.Dirs
	settings Settings
	icons    IconResolver
	ledger   *Ledger
	log      logrus.FieldLogger
	now      func() time.Time
}

// Option configures an Installer.
type Option func(*Installer)

// WithSettings overrides the default settings. Empty fields keep their defaults.
func WithSettings(s Settings) Option {
	return func(i *Installer) {
		if s.DefaultCategories != "" {
			i.settings.DefaultCategories = s.DefaultCategories
		}
		if s.LauncherSuffix != "" {
			i.settings.LauncherSuffix = s.LauncherSuffix
		}
		if s.CompatFlag != "" {
			i.settings.CompatFlag = s.CompatFlag
		}
		if s.FuseLibrary != "" {
			i.settings.FuseLibrary = s.FuseLibrary
		}
		if s.ExtractEnv != "" {
			i.settings.ExtractEnv = s.ExtractEnv
		}
	}
}

// WithIconResolver replaces the extraction-based icon resolver.
func WithIconResolver(r IconResolver) Option {
	return func(i *Installer) { i.icons = r }
}

// WithLedger records successful installs in l.
func WithLedger(l *Ledger) Option {
	return func(i *Installer) { i.ledger = l }
}

// WithLogger sets the logger for warnings and progress.
func WithLogger(log logrus.FieldLogger) Option {
	return func(i *Installer) { i.log = log }
}

// WithClock sets the time source for ledger timestamps.
func WithClock(now func() time.Time) Option {
	return func(i *Installer) { i.now = now }
}

// New returns an Installer writing into dirs on fs.
func New(fs afero.Fs, dirs layout.Dirs, opts ...Option) *Installer {
	i := &Installer{
		fs:   fs,
		dirs: absDirs(dirs),
		settings: Settings{
			DefaultCategories: desktop.DefaultCategories,
			LauncherSuffix:    launcher.DefaultSuffix,
			CompatFlag:        launcher.DefaultCompatFlag,
			FuseLibrary:       launcher.DefaultFuseLibrary,
			ExtractEnv:        launcher.DefaultExtractEnv,
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	i.log = logging.OrDiscard(i.log)
	if i.icons == nil {
		i.icons = icon.NewResolver(fs, i.log)
	}
	return i
}

// Install runs one install. Failures before the bundle copy leave the
// filesystem untouched apart from the source's executable bit.
func (i *Installer) Install(ctx context.Context, req Request) (*Result, error) {
	source, err := i.validate(req)
	if err != nil {
		return nil, err
	}

	id, err := ResolveIdentity(req)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Identity:     id,
		Version:      DetectVersion(source),
		BundlePath:   filepath.Join(i.dirs.Install, bundleFileName(id, source)),
		DesktopPath:  filepath.Join(i.dirs.Applications, desktop.FileName(id.Slug)),
		LauncherPath: filepath.Join(i.dirs.Bin, launcher.FileName(id.Slug, i.settings.LauncherSuffix)),
	}
	log := i.log.WithField("slug", id.Slug)

	exists, err := platform.Exists(i.fs, res.BundlePath)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeFilesystem, "checking", res.BundlePath, err)
	}
	if exists && !req.Force {
		return nil, apperr.New(apperr.CodeAlreadyExists,
			"%s is already installed at %s (use --force to overwrite)", id.Name, res.BundlePath)
	}

	for _, dir := range i.dirs.All() {
		if err := i.fs.MkdirAll(dir, layout.DirPermNormal); err != nil {
			return nil, apperr.Wrap(apperr.CodeFilesystem, "creating directory", dir, err)
		}
	}

	if source == res.BundlePath {
		log.Debugf("bundle already in place at %s", source)
		if err := platform.Chmod(i.fs, source, layout.FilePermExec); err != nil {
			return nil, apperr.Wrap(apperr.CodeFilesystem, "setting mode on", source, err)
		}
	} else if err := platform.CopyFile(i.fs, source, res.BundlePath, layout.FilePermExec); err != nil {
		return nil, apperr.Wrap(apperr.CodeFilesystem, "copying bundle to", res.BundlePath, err)
	}
	log.Debugf("copied bundle to %s", res.BundlePath)

	if exists {
		i.removeStaleIcons(log, id.Slug, req.IconPath)
	}
	res.IconPath, err = i.installIcon(ctx, req, res)
	if err != nil {
		log.Warnf("%v; using the bundle as its icon", err)
		res.IconPath = res.BundlePath
		res.IconFallback = true
	}

	if err := launcher.Write(i.fs, res.LauncherPath, launcher.Params{
		BundlePath:  res.BundlePath,
		ExtraArgs:   req.ExecArgs,
		CompatFlag:  i.settings.CompatFlag,
		FuseLibrary: i.settings.FuseLibrary,
		ExtractEnv:  i.settings.ExtractEnv,
	}); err != nil {
		return nil, apperr.Wrap(apperr.CodeFilesystem, "writing launcher", res.LauncherPath, err)
	}

	categories := req.Categories
	if categories == "" {
		categories = i.settings.DefaultCategories
	}
	if err := desktop.Write(i.fs, res.DesktopPath, desktop.Entry{
		Name:       id.Name,
		Exec:       desktop.ExecLine(res.LauncherPath),
		Path:       i.dirs.Install,
		Icon:       desktop.IconField(res.IconPath, i.dirs.Icons, id.Slug),
		Categories: categories,
		TryExec:    res.BundlePath,
		Comment:    req.Comment,
	}); err != nil {
		return nil, apperr.Wrap(apperr.CodeFilesystem, "writing desktop entry", res.DesktopPath, err)
	}

	i.record(log, source, res)
	return res, nil
}

// validate checks the request and returns the absolute source path.
func (i *Installer) validate(req Request) (string, error) {
	if req.BundlePath == "" {
		return "", apperr.New(apperr.CodeInvalidInput, "no bundle given")
	}
	source, err := filepath.Abs(req.BundlePath)
	if err != nil {
		return "", apperr.Wrap(apperr.CodeInvalidInput, "resolving", req.BundlePath, err)
	}

	info, err := i.fs.Stat(source)
	if err != nil {
		return "", apperr.Wrap(apperr.CodeInvalidInput, "bundle", req.BundlePath, err)
	}
	if !info.Mode().IsRegular() {
		return "", apperr.New(apperr.CodeInvalidInput, "%s is not a regular file", req.BundlePath)
	}
	f, err := i.fs.Open(source)
	if err != nil {
		return "", apperr.Wrap(apperr.CodeInvalidInput, "opening bundle", req.BundlePath, err)
	}
	f.Close()

	if req.IconPath != "" {
		if _, ok := icon.CustomFormat(req.IconPath); !ok {
			return "", apperr.New(apperr.CodeUnsupportedIconType,
				"unsupported icon type %q (use .png, .svg or .xpm)", filepath.Ext(req.IconPath))
		}
		info, err := i.fs.Stat(req.IconPath)
		if err != nil {
			return "", apperr.Wrap(apperr.CodeInvalidInput, "icon", req.IconPath, err)
		}
		if info.IsDir() {
			return "", apperr.New(apperr.CodeInvalidInput, "icon %s is a directory", req.IconPath)
		}
	}

	if ok, _ := platform.IsExecutable(i.fs, source); !ok {
		i.log.Debugf("marking %s executable", source)
		if err := platform.MakeExecutable(i.fs, source); err != nil {
			i.log.Warnf("could not mark %s executable: %v", source, err)
		}
	}
	return source, nil
}

func (i *Installer) installIcon(ctx context.Context, req Request, res *Result) (string, error) {
	if req.IconPath != "" {
		return icon.InstallCustom(i.fs, req.IconPath, i.dirs.Icons, res.Slug)
	}
	c, err := i.icons.Resolve(ctx, res.BundlePath)
	if err != nil {
		return "", err
	}
	i.log.Debugf("using icon %s", c)
	return icon.Install(i.fs, c, i.dirs.Icons, res.Slug)
}

// removeStaleIcons deletes icons left by an earlier install of the same slug.
// keep is the custom icon for this run, which may already be one of them.
func (i *Installer) removeStaleIcons(log logrus.FieldLogger, slug, keep string) {
	if keep != "" {
		if abs, err := filepath.Abs(keep); err == nil {
			keep = abs
		}
	}
	for _, f := range []icon.Format{icon.FormatPNG, icon.FormatSVG, icon.FormatXPM} {
		path := filepath.Join(i.dirs.Icons, slug+f.Ext())
		if path == keep {
			continue
		}
		if err := platform.RemoveIfExists(i.fs, path); err != nil {
			log.Warnf("could not remove old icon %s: %v", path, err)
		}
	}
}

func (i *Installer) record(log logrus.FieldLogger, source string, res *Result) {
	if i.ledger == nil {
		return
	}
	err := i.ledger.Put(Record{
		Slug:        res.Slug,
		Name:        res.Name,
		Version:     res.Version,
		Source:      source,
		Bundle:      res.BundlePath,
		Desktop:     res.DesktopPath,
		Icon:        res.IconPath,
		Launcher:    res.LauncherPath,
		InstalledAt: i.now().UTC(),
	})
	if err != nil {
		log.Warnf("could not update install ledger %s: %v", i.ledger.Path(), err)
	}
}

func absDirs(d layout.Dirs) layout.Dirs {
	abs := func(p string) string {
		if p == "" {
			return p
		}
		if a, err := filepath.Abs(p); err == nil {
			return a
		}
		return p
	}
	return layout.Dirs{
		Install:      abs(d.Install),
		Applications: abs(d.Applications),
		Icons:        abs(d.Icons),
		Bin:          abs(d.Bin),
	}
}
