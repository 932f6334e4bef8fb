package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/afero"
)

func TestChmod(t *testing.T) {
	fs := afero.NewOsFs()
	tmp := t.TempDir()
	path := filepath.Join(tmp, "test.txt")
	if err := os.WriteFile(path, []byte("test"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Chmod(fs, path, 0600); err != nil {
		t.Fatalf("Chmod failed: %v", err)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("permissions = %o, want %o", perm, 0600)
		}
	}
}

func TestMakeExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not supported on Windows")
	}

	tests := []struct {
		name string
		mode os.FileMode
		want os.FileMode
	}{
		{"world readable", 0644, 0755},
		{"owner only", 0600, 0700},
		{"already executable", 0700, 0700},
		{"group exec only", 0654, 0654},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			if err := afero.WriteFile(fs, "/bundle", []byte("x"), tt.mode); err != nil {
				t.Fatal(err)
			}
			if err := fs.Chmod("/bundle", tt.mode); err != nil {
				t.Fatal(err)
			}
			if err := MakeExecutable(fs, "/bundle"); err != nil {
				t.Fatalf("MakeExecutable: %v", err)
			}
			info, err := fs.Stat("/bundle")
			if err != nil {
				t.Fatal(err)
			}
			if got := info.Mode().Perm(); got != tt.want {
				t.Errorf("mode = %o, want %o", got, tt.want)
			}
		})
	}
}

func TestIsExecutable(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/plain", []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	ok, err := IsExecutable(fs, "/plain")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("0644 file reported executable")
	}
	if _, err := IsExecutable(fs, "/missing"); err == nil {
		t.Error("expected error for missing file")
	}
}
