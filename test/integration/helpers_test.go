//go:build integration

package integration_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/lt-rawlins/AppImage-Install/internal/layout"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	Root     string
	SrcDir   string // where downloaded bundles live
	StateDir string // APPIMAGE_INSTALL_HOME
	Dirs     layout.Dirs
}

// setupTestEnv creates isolated temp directories and points every
// APPIMAGE_INSTALL_* override at them. The env vars are restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("bundles and launchers are shell scripts")
	}
	for _, tool := range []string{"sh", "bash"} {
		if _, err := exec.LookPath(tool); err != nil {
			t.Skipf("%s not available", tool)
		}
	}

	root := t.TempDir()
	env := &testEnv{
		Root:     root,
		SrcDir:   filepath.Join(root, "Downloads"),
		StateDir: filepath.Join(root, "state"),
	}
	t.Setenv("APPIMAGE_INSTALL_APPS_ROOT", filepath.Join(root, "Applications"))
	t.Setenv("APPIMAGE_INSTALL_DESKTOP_DIR", filepath.Join(root, "share", "applications"))
	t.Setenv("APPIMAGE_INSTALL_ICONS_DIR", filepath.Join(root, "share", "icons"))
	t.Setenv("APPIMAGE_INSTALL_BIN_DIR", filepath.Join(root, "bin"))
	t.Setenv("APPIMAGE_INSTALL_HOME", env.StateDir)

	dirs, err := layout.Resolve()
	if err != nil {
		t.Fatalf("resolving layout: %v", err)
	}
	env.Dirs = dirs

	if err := os.MkdirAll(env.SrcDir, 0755); err != nil {
		t.Fatalf("creating %s: %v", env.SrcDir, err)
	}
	return env
}

// fakeBundle is a shell script that behaves like an AppImage: it extracts a
// small tree on --appimage-extract, and otherwise logs its arguments to
// $LAUNCH_LOG. A run without the compatibility flag exits with
// $PRIMARY_STATUS (default 0); a run with it exits 0.
const fakeBundle = `#!/bin/sh
if [ "$1" = "--appimage-extract" ]; then
	mkdir -p squashfs-root/usr/share/pixmaps squashfs-root/usr/share/icons/hicolor/48x48/apps
	printf 'PNGDATA' > squashfs-root/usr/share/icons/hicolor/48x48/apps/app.png
	printf '<svg xmlns="http://www.w3.org/2000/svg"/>' > squashfs-root/usr/share/pixmaps/app.svg
	ln -s usr/share/icons/hicolor/48x48/apps/app.png squashfs-root/.DirIcon
	exit 0
fi
echo "$*" >> "$LAUNCH_LOG"
if [ "$1" = "--no-sandbox" ]; then
	exit 0
fi
exit "${PRIMARY_STATUS:-0}"
`

// writeBundle writes fakeBundle as name in the source directory. The file is
// left non-executable, as a fresh download would be.
func writeBundle(t *testing.T, env *testEnv, name string) string {
	t.Helper()
	path := filepath.Join(env.SrcDir, name)
	writeFile(t, path, fakeBundle)
	return path
}

// writeFile creates a file with the given content, creating parent dirs as needed.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating parent dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// readFile returns the content of path.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// assertFileExists fails the test if path does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file %s to exist: %v", path, err)
	}
}

// assertNotExists fails the test if path exists.
func assertNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); !os.IsNotExist(err) {
		t.Errorf("expected %s to not exist", path)
	}
}

// assertExecutable fails the test if path has no execute bit.
func assertExecutable(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat %s: %v", path, err)
	}
	if info.Mode().Perm()&0111 == 0 {
		t.Errorf("%s is not executable (mode %o)", path, info.Mode().Perm())
	}
}

// launch runs the launcher and returns the lines the fake bundle logged.
func launch(t *testing.T, launcher string, primaryStatus string, args ...string) ([]string, error) {
	t.Helper()
	logPath := filepath.Join(t.TempDir(), "launch.log")

	cmd := exec.Command(launcher, args...)
	cmd.Env = append(os.Environ(), "LAUNCH_LOG="+logPath, "PRIMARY_STATUS="+primaryStatus)
	runErr := cmd.Run()

	data, err := os.ReadFile(logPath)
	if err != nil && !os.IsNotExist(err) {
		t.Fatalf("reading launch log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) == 1 && lines[0] == "" {
		lines = nil
	}
	return lines, runErr
}
