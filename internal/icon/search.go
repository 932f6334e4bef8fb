package icon

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// DirIconName is the AppDir's top-level icon, usually a symlink to the real file.
const DirIconName = ".DirIcon"

// SearchDirs are scanned in order after DirIconName. Order matters: a PNG in
// an earlier directory beats an SVG in a later one.
var SearchDirs = []string{
	filepath.Join("usr", "share", "icons"),
	filepath.Join("usr", "share", "pixmaps"),
	".",
}

// SearchExts are tried in order within each directory.
var SearchExts = []string{".svg", ".png"}

// maxLinkHops bounds symlink resolution inside the extraction root.
const maxLinkHops = 8

var errFound = errors.New("found")

// Find returns the best icon under root, or "" when there is none.
// Priority is DirIconName, then directory order, then extension order.
func Find(fs afero.Fs, root string) (string, error) {
	if p, ok := resolveInRoot(fs, root, filepath.Join(root, DirIconName)); ok {
		return p, nil
	}

	for _, dir := range SearchDirs {
		base := filepath.Join(root, dir)
		if !isDir(fs, base) {
			continue
		}
		for _, ext := range SearchExts {
			hit, err := firstWithExt(fs, root, base, ext)
			if err != nil {
				return "", err
			}
			if hit != "" {
				return hit, nil
			}
		}
	}
	return "", nil
}

// firstWithExt walks base in lexical order and returns the first regular
// file whose extension matches ext, ignoring case. Symlinks count when they
// resolve to a regular file inside root.
func firstWithExt(fs afero.Fs, root, base, ext string) (string, error) {
	var hit string
	err := afero.Walk(fs, base, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped, not fatal.
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ext) {
			return nil
		}
		if info.Mode()&os.ModeSymlink != 0 {
			if _, ok := resolveInRoot(fs, root, path); !ok {
				return nil
			}
		} else if !info.Mode().IsRegular() {
			return nil
		}
		hit = path
		return errFound
	})
	if err != nil && !errors.Is(err, errFound) {
		return "", err
	}
	return hit, nil
}

// resolveInRoot follows symlinks at path without leaving root. Absolute link
// targets are taken relative to root, since they were written for the
// mounted AppDir. It reports false when the final target is not a regular file.
func resolveInRoot(fs afero.Fs, root, path string) (string, bool) {
	lstater, canLstat := fs.(afero.Lstater)
	reader, canRead := fs.(afero.LinkReader)

	for hop := 0; hop <= maxLinkHops; hop++ {
		var info os.FileInfo
		var err error
		if canLstat {
			info, _, err = lstater.LstatIfPossible(path)
		} else {
			info, err = fs.Stat(path)
		}
		if err != nil {
			return "", false
		}
		if info.Mode()&os.ModeSymlink == 0 {
			return path, info.Mode().IsRegular()
		}
		if !canRead {
			return "", false
		}
		target, err := reader.ReadlinkIfPossible(path)
		if err != nil {
			return "", false
		}
		if filepath.IsAbs(target) {
			path = filepath.Join(root, target)
		} else {
			path = filepath.Join(filepath.Dir(path), target)
		}
		if !within(root, path) {
			return "", false
		}
	}
	return "", false
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func isDir(fs afero.Fs, path string) bool {
	info, err := fs.Stat(path)
	return err == nil && info.IsDir()
}
