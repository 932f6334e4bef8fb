package installer

import (
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// DetectVersion pulls a version out of a bundle file name such as
// "Krita-5.2.2-x86_64.AppImage". It returns "" when no dotted field parses
// as a version.
func DetectVersion(fileName string) string {
	base := filepath.Base(fileName)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	fields := strings.FieldsFunc(base, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	for _, f := range fields {
		candidate := strings.TrimPrefix(strings.TrimPrefix(f, "v"), "V")
		if !strings.Contains(candidate, ".") {
			continue
		}
		if v, err := semver.NewVersion(candidate); err == nil {
			return v.Original()
		}
	}
	return ""
}
