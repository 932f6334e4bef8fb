// Package desktop writes freedesktop .desktop menu entries.
package desktop

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/lt-rawlins/AppImage-Install/internal/platform"
)

// FileExt is the descriptor file extension.
const FileExt = ".desktop"

// DefaultCategories is used when no categories are given.
const DefaultCategories = "Utility;"

// Entry holds the values of one menu entry. Categories is passed through
// verbatim; the menu indexer interprets it.
type Entry struct {
	Name       string
	Exec       string
	Path       string
	Icon       string
	Categories string
	TryExec    string
	Comment    string
}

// FileName returns the descriptor name for slug.
func FileName(slug string) string { return slug + FileExt }

// ExecLine returns the Exec value that runs the launcher with the URLs the
// menu passes in.
func ExecLine(launcherPath string) string {
	return fmt.Sprintf(`"%s" %%U`, quoteExecArg(launcherPath))
}

var (
	execQuoteEscaper  = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "`", "\\`", `$`, `\$`)
	execStringEscaper = strings.NewReplacer(`\`, `\\`)
)

// quoteExecArg escapes s for use inside a double-quoted Exec argument. The
// quoting level is applied first, then the string level doubles every
// backslash again, and a literal % becomes %%.
func quoteExecArg(s string) string {
	s = execStringEscaper.Replace(execQuoteEscaper.Replace(s))
	return strings.ReplaceAll(s, "%", "%%")
}

// IconField returns the bare slug when iconPath is <iconsDir>/<slug>.png or
// <iconsDir>/<slug>.svg, so the desktop resolves it as a theme name.
// Anything else is referenced by absolute path.
func IconField(iconPath, iconsDir, slug string) string {
	if filepath.Clean(filepath.Dir(iconPath)) == filepath.Clean(iconsDir) {
		switch filepath.Base(iconPath) {
		case slug + ".png", slug + ".svg":
			return slug
		}
	}
	if abs, err := filepath.Abs(iconPath); err == nil {
		return abs
	}
	return iconPath
}

// Render returns the descriptor text. Fields are always emitted, in a fixed order.
func Render(e Entry) []byte {
	categories := e.Categories
	if categories == "" {
		categories = DefaultCategories
	}

	var b bytes.Buffer
	b.WriteString("[Desktop Entry]\n")
	line(&b, "Type", "Application")
	line(&b, "Name", e.Name)
	line(&b, "Exec", e.Exec)
	line(&b, "Path", e.Path)
	line(&b, "Icon", e.Icon)
	line(&b, "Terminal", "false")
	line(&b, "Categories", categories)
	line(&b, "TryExec", e.TryExec)
	line(&b, "Comment", e.Comment)
	line(&b, "StartupNotify", "true")
	return b.Bytes()
}

// Write renders e to path. The file is marked executable, which some
// desktops require before they trust a user entry.
func Write(fs afero.Fs, path string, e Entry) error {
	if err := platform.WriteFile(fs, path, Render(e), 0755); err != nil {
		return fmt.Errorf("writing desktop entry %s: %w", path, err)
	}
	return nil
}

// line writes key=value. Values are single-line by definition, so embedded
// newlines are flattened.
func line(b *bytes.Buffer, key, value string) {
	value = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(value)
	b.WriteString(key)
	b.WriteByte('=')
	b.WriteString(value)
	b.WriteByte('\n')
}
