package layout

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lt-rawlins/AppImage-Install/internal/branding"
)

// Directory name constants for the default layout.
const (
	ApplicationsRootDir = "Applications"
	DesktopEntriesDir   = "applications"
	IconsDir            = "icons"
	LocalDir            = ".local"
	ShareDir            = "share"
	BinDir              = "bin"
	RecordsFile         = "installed.yaml"
)

// Permission constants.
const (
	DirPermNormal  os.FileMode = 0755
	FilePermNormal os.FileMode = 0644
	FilePermExec   os.FileMode = 0755
)

// Dirs is the set of destination directories for one run.
type Dirs struct {
	Install      string // copied bundles
	Applications string // .desktop descriptors
	Icons        string // <slug>.<ext> icons
	Bin          string // launcher wrappers
}

// All returns the directories in creation order.
func (d Dirs) All() []string {
	return []string{d.Install, d.Applications, d.Icons, d.Bin}
}

// Resolve returns the directories for the current user.
func Resolve() (Dirs, error) {
	var d Dirs
	var err error
	if d.Install, err = GetInstallDir(); err != nil {
		return Dirs{}, err
	}
	if d.Applications, err = GetApplicationsDir(); err != nil {
		return Dirs{}, err
	}
	if d.Icons, err = GetIconsDir(); err != nil {
		return Dirs{}, err
	}
	if d.Bin, err = GetBinDir(); err != nil {
		return Dirs{}, err
	}
	return d, nil
}

// GetInstallDir returns the directory bundles are copied into.
// It checks APPIMAGE_INSTALL_APPS_ROOT first, then falls back to ~/Applications.
func GetInstallDir() (string, error) {
	if v := os.Getenv(branding.EnvVar("APPS_ROOT")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ApplicationsRootDir), nil
}

// GetApplicationsDir returns the freedesktop applications directory.
// It checks APPIMAGE_INSTALL_DESKTOP_DIR, then $XDG_DATA_HOME/applications.
func GetApplicationsDir() (string, error) {
	if v := os.Getenv(branding.EnvVar("DESKTOP_DIR")); v != "" {
		return v, nil
	}
	data, err := GetDataHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(data, DesktopEntriesDir), nil
}

// GetIconsDir returns the user icon store.
// It checks APPIMAGE_INSTALL_ICONS_DIR, then $XDG_DATA_HOME/icons.
func GetIconsDir() (string, error) {
	if v := os.Getenv(branding.EnvVar("ICONS_DIR")); v != "" {
		return v, nil
	}
	data, err := GetDataHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(data, IconsDir), nil
}

// GetBinDir returns the directory launchers are written to.
// It checks APPIMAGE_INSTALL_BIN_DIR, then ~/.local/bin.
func GetBinDir() (string, error) {
	if v := os.Getenv(branding.EnvVar("BIN_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, LocalDir, BinDir), nil
}

// GetDataHome returns $XDG_DATA_HOME, defaulting to ~/.local/share.
// Relative values are ignored, as XDG requires.
func GetDataHome() (string, error) {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" && filepath.IsAbs(v) {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, LocalDir, ShareDir), nil
}

// GetStateDir returns the tool's own directory (~/.appimage-install).
// APPIMAGE_INSTALL_HOME overrides it.
func GetStateDir() (string, error) {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, branding.HomeDir()), nil
}

// GetRecordsPath returns the path of the install ledger.
func GetRecordsPath() (string, error) {
	dir, err := GetStateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, RecordsFile), nil
}
