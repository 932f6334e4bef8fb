package branding

import "testing"

func TestEnvVar(t *testing.T) {
	tests := []struct {
		suffix string
		want   string
	}{
		{"bin_dir", "APPIMAGE_INSTALL_BIN_DIR"},
		{"ICONS_DIR", "APPIMAGE_INSTALL_ICONS_DIR"},
	}
	for _, tt := range tests {
		if got := EnvVar(tt.suffix); got != tt.want {
			t.Errorf("EnvVar(%q) = %q, want %q", tt.suffix, got, tt.want)
		}
	}
}

func TestEmbeddedValues(t *testing.T) {
	if CLIName() != "appimage-install" {
		t.Errorf("CLIName() = %q", CLIName())
	}
	if HomeDir() != ".appimage-install" {
		t.Errorf("HomeDir() = %q", HomeDir())
	}
}
