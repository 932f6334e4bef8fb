package icon

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
)

// ExtractFlag makes a type 2 AppImage unpack itself into ./squashfs-root.
const (
	ExtractFlag = "--appimage-extract"
	ExtractRoot = "squashfs-root"
)

// Extractor unpacks a bundle into workspace and returns the extraction root.
type Extractor interface {
	Extract(ctx context.Context, bundlePath, workspace string) (string, error)
}

// CommandExtractor runs the bundle with ExtractFlag inside the workspace.
type CommandExtractor struct {
	// Stdout and Stderr receive the bundle's output; nil discards it.
	Stdout io.Writer
	Stderr io.Writer
}

// Extract implements Extractor.
func (c *CommandExtractor) Extract(ctx context.Context, bundlePath, workspace string) (string, error) {
	abs, err := filepath.Abs(bundlePath)
	if err != nil {
		return "", fmt.Errorf("resolving bundle path: %w", err)
	}

	cmd := exec.CommandContext(ctx, abs, ExtractFlag)
	cmd.Dir = workspace
	cmd.Stdout = orDiscard(c.Stdout)
	cmd.Stderr = orDiscard(c.Stderr)

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("running %s %s: %w", filepath.Base(abs), ExtractFlag, err)
	}

	root := filepath.Join(workspace, ExtractRoot)
	info, err := os.Stat(root)
	if err != nil {
		return "", fmt.Errorf("extraction produced no %s: %w", ExtractRoot, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", root)
	}
	return root, nil
}

func orDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}
