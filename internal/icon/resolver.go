package icon

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/lt-rawlins/AppImage-Install/internal/apperr"
	"github.com/lt-rawlins/AppImage-Install/internal/layout"
	"github.com/lt-rawlins/AppImage-Install/internal/logging"
	"github.com/lt-rawlins/AppImage-Install/internal/platform"
)

// workspacePrefix names the temporary extraction directories.
const workspacePrefix = "appimage-install-extract-"

// Candidate is an icon pulled out of a bundle. Data holds the file contents
// because the extraction workspace is gone by the time Resolve returns.
type Candidate struct {
	Path   string // path inside the (deleted) extraction tree
	Format Format
	Data   []byte
}

// Resolver extracts a bundle and picks its icon.
type Resolver struct {
	Fs        afero.Fs
	Extractor Extractor
	Log       logrus.FieldLogger
}

// NewResolver returns a Resolver on fs that extracts by running the bundle.
func NewResolver(fs afero.Fs, log logrus.FieldLogger) *Resolver {
	return &Resolver{Fs: fs, Extractor: &CommandExtractor{}, Log: log}
}

// Resolve extracts bundlePath into a temporary workspace and returns the
// best icon in it. Every failure, including "nothing found", is an
// ICON_EXTRACTION_FAILURE error. The workspace is removed on every path.
func (r *Resolver) Resolve(ctx context.Context, bundlePath string) (*Candidate, error) {
	log := logging.OrDiscard(r.Log)

	workspace, err := afero.TempDir(r.Fs, "", workspacePrefix)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeIconExtraction, "creating extraction workspace", "", err)
	}
	defer func() {
		if err := r.Fs.RemoveAll(workspace); err != nil {
			log.WithError(err).Warnf("could not remove extraction workspace %s", workspace)
		}
	}()

	root, err := r.Extractor.Extract(ctx, bundlePath, workspace)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeIconExtraction, "extracting", bundlePath, err)
	}
	if root == "" || !isDir(r.Fs, root) {
		return nil, apperr.New(apperr.CodeIconExtraction, "extracting %s produced no extraction root", bundlePath)
	}

	path, err := Find(r.Fs, root)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeIconExtraction, "searching for icon in", root, err)
	}
	if path == "" {
		return nil, apperr.New(apperr.CodeIconExtraction, "no icon found in %s", filepath.Base(bundlePath))
	}

	// .DirIcon is usually a symlink; read and classify its target.
	target, _ := resolveInRoot(r.Fs, root, path)
	data, err := afero.ReadFile(r.Fs, target)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeIconExtraction, "reading icon", path, err)
	}

	c := &Candidate{Path: path, Format: Classify(target, data), Data: data}
	rel, _ := filepath.Rel(root, path)
	log.Debugf("found icon %s (%s)", rel, c.Format)
	return c, nil
}

// Install writes the candidate into iconsDir as <slug>.<format> and returns
// the new path.
func Install(fs afero.Fs, c *Candidate, iconsDir, slug string) (string, error) {
	dst := filepath.Join(iconsDir, slug+c.Format.Ext())
	if err := platform.WriteFile(fs, dst, c.Data, layout.FilePermNormal); err != nil {
		return "", apperr.Wrap(apperr.CodeFilesystem, "writing icon", dst, err)
	}
	return dst, nil
}

// InstallCustom copies a user-supplied icon into iconsDir as <slug>.<ext>,
// keeping its extension. An icon already at that path is left in place.
// Unknown extensions are UNSUPPORTED_ICON_TYPE errors.
func InstallCustom(fs afero.Fs, src, iconsDir, slug string) (string, error) {
	format, ok := CustomFormat(src)
	if !ok {
		return "", apperr.New(apperr.CodeUnsupportedIconType, "unsupported icon type %q (use .png, .svg or .xpm)", filepath.Ext(src))
	}
	dst := filepath.Join(iconsDir, slug+format.Ext())
	if samePath(src, dst) {
		return dst, nil
	}
	if err := platform.CopyFile(fs, src, dst, layout.FilePermNormal); err != nil {
		return "", apperr.Wrap(apperr.CodeFilesystem, "copying icon", src, err)
	}
	return dst, nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// String implements fmt.Stringer for log output.
func (c *Candidate) String() string {
	return fmt.Sprintf("%s (%s, %d bytes)", c.Path, c.Format, len(c.Data))
}
