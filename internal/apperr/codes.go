package apperr

// Code identifies a class of failure. Codes are strings so they read well in
// log output.
type Code string

const (
	// CodeInvalidInput covers a missing or unreadable bundle, a missing
	// option value, or an unknown flag.
	CodeInvalidInput Code = "INVALID_INPUT"

	// CodeInvalidName means the display name reduced to an empty slug.
	CodeInvalidName Code = "INVALID_NAME"

	// CodeAlreadyExists means the destination bundle is present and no
	// overwrite was requested.
	CodeAlreadyExists Code = "ALREADY_EXISTS"

	// CodeUnsupportedIconType means a custom icon has an unrecognized extension.
	CodeUnsupportedIconType Code = "UNSUPPORTED_ICON_TYPE"

	// CodeIconExtraction means no icon could be pulled out of the bundle.
	// The installer recovers from it.
	CodeIconExtraction Code = "ICON_EXTRACTION_FAILURE"

	// CodeFilesystem covers copy, mkdir, write and chmod failures.
	CodeFilesystem Code = "FILESYSTEM_ERROR"

	// CodeNotFound means an install record does not exist.
	CodeNotFound Code = "NOT_FOUND"
)
