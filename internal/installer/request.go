package installer

import (
	"path/filepath"
	"strings"

	"github.com/lt-rawlins/AppImage-Install/internal/apperr"
	"github.com/lt-rawlins/AppImage-Install/internal/slug"
)

// DefaultBundleExt is used for the installed file when the source has no extension.
const DefaultBundleExt = ".AppImage"

// Request is the input of one install.
type Request struct {
	BundlePath string // required
	Name       string // display name; defaults to the bundle file name without extension
	Categories string // passed to the descriptor verbatim
	Comment    string
	IconPath   string // custom icon; skips extraction when set
	ExecArgs   string // extra launch arguments, word-split at launch time
	Force      bool   // overwrite an existing install
}

// Identity is the name pair derived from a request.
type Identity struct {
	Name string
	Slug string
}

// ResolveIdentity derives the display name and slug for req.
func ResolveIdentity(req Request) (Identity, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		base := filepath.Base(req.BundlePath)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if strings.ContainsRune(name, '/') || name == "." || name == ".." {
		return Identity{}, apperr.New(apperr.CodeInvalidName, "name %q cannot be used as a file name", name)
	}
	s, err := slug.Make(name)
	if err != nil {
		return Identity{}, err
	}
	return Identity{Name: name, Slug: s}, nil
}

// bundleFileName returns the installed bundle's file name: the display name
// with the source's extension.
func bundleFileName(id Identity, source string) string {
	ext := filepath.Ext(source)
	if ext == "" {
		ext = DefaultBundleExt
	}
	return id.Name + ext
}
