// Package slug turns display names into filesystem- and identifier-safe tokens.
package slug

import (
	"strings"

	"github.com/lt-rawlins/AppImage-Install/internal/apperr"
)

// Normalize lowercases name and reduces it to [a-z0-9.-]. Spaces and
// underscores become hyphens, every other character outside the set is
// dropped (so "Café" becomes "caf"), hyphen runs collapse, and leading or
// trailing hyphens are trimmed. The result may be empty.
func Normalize(name string) string {
	folded := strings.ToLower(name)

	var b strings.Builder
	b.Grow(len(folded))
	lastHyphen := false
	for _, r := range folded {
		switch {
		case r == ' ' || r == '_' || r == '-':
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '.':
			b.WriteRune(r)
			lastHyphen = false
		}
	}
	return strings.Trim(b.String(), "-")
}

// Make is Normalize that fails with an INVALID_NAME error when nothing is left.
func Make(name string) (string, error) {
	s := Normalize(name)
	if s == "" {
		return "", apperr.New(apperr.CodeInvalidName, "name %q does not produce a usable slug", name)
	}
	return s, nil
}
