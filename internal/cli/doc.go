// Package cli defines the Cobra command tree for appimage-install. The root
// command installs a bundle; list, uninstall, config and version are
// registered from their own files. Commands delegate to internal packages
// and only handle flag parsing, output formatting and exit codes.
package cli
