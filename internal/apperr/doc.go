// Package apperr defines the error kinds reported by the installer. Every
// failure that reaches the command layer carries a Code so the CLI can pick
// an exit status and tell validation problems apart from filesystem ones.
package apperr
