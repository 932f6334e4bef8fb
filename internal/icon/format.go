package icon

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Format is an icon file format, used as the installed file's extension.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
	FormatXPM Format = "xpm"
)

// Ext returns the format as a file extension with the leading dot.
func (f Format) Ext() string { return "." + string(f) }

// Classify picks a format from the file extension, falling back to content
// sniffing when the extension is missing or unknown. Anything that still
// cannot be told apart is treated as PNG.
func Classify(path string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return FormatSVG
	case ".png":
		return FormatPNG
	}

	mt := mimetype.Detect(data)
	switch {
	case mt.Is("image/svg+xml"):
		return FormatSVG
	case mt.Is("image/png"):
		return FormatPNG
	}
	return FormatPNG
}

// CustomFormat returns the format for a user-supplied icon path. Custom
// icons are copied verbatim, so only the extension counts.
func CustomFormat(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return FormatSVG, true
	case ".png":
		return FormatPNG, true
	case ".xpm":
		return FormatXPM, true
	}
	return "", false
}
