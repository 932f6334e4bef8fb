package launcher

import (
	"bytes"
	_ "embed"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"github.com/spf13/afero"

	"github.com/lt-rawlins/AppImage-Install/internal/branding"
	"github.com/lt-rawlins/AppImage-Install/internal/platform"
)

//go:embed templates/launcher.sh.tmpl
var launcherTemplate string

// Defaults for the configurable parts of the script.
const (
	DefaultSuffix      = "launcher"
	DefaultCompatFlag  = "--no-sandbox"
	DefaultFuseLibrary = "libfuse.so.2"
	DefaultExtractEnv  = "APPIMAGE_EXTRACT_AND_RUN"
)

var (
	envNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	// compat flags and library names land outside quotes, keep them plain.
	plainWordPattern = regexp.MustCompile(`^[A-Za-z0-9._+=:/-]+$`)
)

// Params fills the wrapper template. BundlePath and ExtraArgs are baked in
// at generation time; the script never re-reads them.
type Params struct {
	BundlePath  string
	ExtraArgs   string
	CompatFlag  string
	FuseLibrary string
	ExtractEnv  string
}

type templateData struct {
	Params
	BundleName string
	Generator  string
}

var tmpl = template.Must(template.New("launcher").Funcs(template.FuncMap{
	"quote": escapeDoubleQuoted,
}).Parse(launcherTemplate))

// FileName returns the wrapper's file name for slug, e.g. "my-app-launcher".
func FileName(slug, suffix string) string {
	if suffix == "" {
		suffix = DefaultSuffix
	}
	return slug + "-" + suffix
}

// withDefaults fills empty fields.
func (p Params) withDefaults() Params {
	if p.CompatFlag == "" {
		p.CompatFlag = DefaultCompatFlag
	}
	if p.FuseLibrary == "" {
		p.FuseLibrary = DefaultFuseLibrary
	}
	if p.ExtractEnv == "" {
		p.ExtractEnv = DefaultExtractEnv
	}
	return p
}

func (p Params) validate() error {
	if p.BundlePath == "" {
		return fmt.Errorf("bundle path is required")
	}
	if !filepath.IsAbs(p.BundlePath) {
		return fmt.Errorf("bundle path %q must be absolute", p.BundlePath)
	}
	if !envNamePattern.MatchString(p.ExtractEnv) {
		return fmt.Errorf("invalid environment variable name %q", p.ExtractEnv)
	}
	if !plainWordPattern.MatchString(p.CompatFlag) {
		return fmt.Errorf("compatibility flag %q must be a single plain word", p.CompatFlag)
	}
	if !plainWordPattern.MatchString(p.FuseLibrary) {
		return fmt.Errorf("library name %q must be a single plain word", p.FuseLibrary)
	}
	return nil
}

// Render returns the wrapper script for p.
func Render(p Params) ([]byte, error) {
	p = p.withDefaults()
	if err := p.validate(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err := tmpl.Execute(&buf, templateData{
		Params:     p,
		BundleName: filepath.Base(p.BundlePath),
		Generator:  branding.CLIName(),
	})
	if err != nil {
		return nil, fmt.Errorf("executing launcher template: %w", err)
	}
	return buf.Bytes(), nil
}

// Write renders p into path with mode 0755.
func Write(fs afero.Fs, path string, p Params) error {
	data, err := Render(p)
	if err != nil {
		return err
	}
	if err := platform.WriteFile(fs, path, data, 0755); err != nil {
		return fmt.Errorf("writing launcher %s: %w", path, err)
	}
	return nil
}

// escapeDoubleQuoted escapes s for use between double quotes in bash.
// Newlines are flattened to spaces so the value stays on one line.
func escapeDoubleQuoted(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		`$`, `\$`,
		"`", "\\`",
		"\n", " ",
		"\r", " ",
	)
	return r.Replace(s)
}
