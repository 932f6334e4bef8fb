package icon

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/afero"
)

func writeTree(t *testing.T, fs afero.Fs, root string, files map[string][]byte) {
	t.Helper()
	for rel, data := range files {
		p := filepath.Join(root, rel)
		if err := fs.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := afero.WriteFile(fs, p, data, 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestFindPriority(t *testing.T) {
	tests := []struct {
		name  string
		files map[string][]byte
		want  string
	}{
		{
			name: "dir icon wins over everything",
			files: map[string][]byte{
				".DirIcon": pngBytes,
				"usr/share/icons/hicolor/scalable/apps/a.svg": svgBytes,
			},
			want: ".DirIcon",
		},
		{
			name: "svg preferred within a directory",
			files: map[string][]byte{
				"usr/share/icons/hicolor/256x256/apps/a.png":  pngBytes,
				"usr/share/icons/hicolor/scalable/apps/z.svg": svgBytes,
			},
			want: "usr/share/icons/hicolor/scalable/apps/z.svg",
		},
		{
			name: "earlier directory png beats later directory svg",
			files: map[string][]byte{
				"usr/share/icons/hicolor/48x48/apps/a.png": pngBytes,
				"usr/share/pixmaps/a.svg":                  svgBytes,
				"a.svg":                                    svgBytes,
			},
			want: "usr/share/icons/hicolor/48x48/apps/a.png",
		},
		{
			name: "pixmaps before root",
			files: map[string][]byte{
				"usr/share/pixmaps/a.png": pngBytes,
				"a.svg":                   svgBytes,
			},
			want: "usr/share/pixmaps/a.png",
		},
		{
			name: "root as last resort",
			files: map[string][]byte{
				"AppRun":  []byte("#!/bin/sh"),
				"app.png": pngBytes,
			},
			want: "app.png",
		},
		{
			name: "extension match ignores case",
			files: map[string][]byte{
				"usr/share/pixmaps/APP.SVG": svgBytes,
			},
			want: "usr/share/pixmaps/APP.SVG",
		},
		{
			name: "lexical order within a directory",
			files: map[string][]byte{
				"usr/share/icons/b/x.png": pngBytes,
				"usr/share/icons/a/y.png": pngBytes,
			},
			want: "usr/share/icons/a/y.png",
		},
		{
			name: "nothing usable",
			files: map[string][]byte{
				"AppRun":      []byte("#!/bin/sh"),
				"app.desktop": []byte("[Desktop Entry]"),
			},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			root := "/ws/squashfs-root"
			writeTree(t, fs, root, tt.files)

			got, err := Find(fs, root)
			if err != nil {
				t.Fatalf("Find: %v", err)
			}
			want := ""
			if tt.want != "" {
				want = filepath.Join(root, tt.want)
			}
			if got != want {
				t.Errorf("Find = %q, want %q", got, want)
			}
		})
	}
}

func TestFindDirIconSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need developer mode on Windows")
	}
	root := t.TempDir()
	fs := afero.NewOsFs()
	writeTree(t, fs, root, map[string][]byte{"myapp.svg": svgBytes})

	// Absolute targets are relative to the AppDir, not the host.
	if err := os.Symlink("/myapp.svg", filepath.Join(root, DirIconName)); err != nil {
		t.Fatal(err)
	}

	got, err := Find(fs, root)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got != filepath.Join(root, "myapp.svg") {
		t.Errorf("Find = %q, want resolved myapp.svg", got)
	}
}

func TestFindDirIconEscapingSymlinkIgnored(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need developer mode on Windows")
	}
	outside := t.TempDir()
	root := t.TempDir()
	fs := afero.NewOsFs()
	writeTree(t, fs, outside, map[string][]byte{"host.png": pngBytes})
	writeTree(t, fs, root, map[string][]byte{"usr/share/pixmaps/app.png": pngBytes})

	rel, err := filepath.Rel(root, filepath.Join(outside, "host.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(rel, filepath.Join(root, DirIconName)); err != nil {
		t.Fatal(err)
	}

	got, err := Find(fs, root)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got != filepath.Join(root, "usr/share/pixmaps/app.png") {
		t.Errorf("Find = %q, want pixmaps icon", got)
	}
}

func TestFindSymlinkedIcons(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need developer mode on Windows")
	}

	tests := []struct {
		name   string
		target string // link target for usr/share/icons/hicolor/scalable/app.svg
		want   string
	}{
		{"svg link inside root beats png", "../../../pixmaps/real.svg", "usr/share/icons/hicolor/scalable/app.svg"},
		{"dangling svg link skipped", "../../../pixmaps/missing.svg", "usr/share/icons/hicolor/48x48/app.png"},
		{"svg link leaving root skipped", "../../../../../../../etc/hostname", "usr/share/icons/hicolor/48x48/app.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			fs := afero.NewOsFs()
			writeTree(t, fs, root, map[string][]byte{
				"usr/share/pixmaps/real.svg":            svgBytes,
				"usr/share/icons/hicolor/48x48/app.png": pngBytes,
			})
			link := filepath.Join(root, "usr/share/icons/hicolor/scalable/app.svg")
			if err := os.MkdirAll(filepath.Dir(link), 0755); err != nil {
				t.Fatal(err)
			}
			if err := os.Symlink(tt.target, link); err != nil {
				t.Fatal(err)
			}

			got, err := Find(fs, root)
			if err != nil {
				t.Fatalf("Find: %v", err)
			}
			if want := filepath.Join(root, tt.want); got != want {
				t.Errorf("Find = %q, want %q", got, want)
			}
		})
	}
}
