package platform

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
)

// Exists reports whether path exists. Errors other than not-exist are returned.
func Exists(fs afero.Fs, path string) (bool, error) {
	_, err := fs.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case os.IsNotExist(err):
		return false, nil
	default:
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
}

// CopyFile copies src to dst with the given mode, truncating dst if it exists.
// The mode is applied after the copy so an existing dst picks it up too.
func CopyFile(fs afero.Fs, src, dst string, mode os.FileMode) error {
	in, err := fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := fs.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return Chmod(fs, dst, mode)
}

// WriteFile writes data to path and forces mode, replacing any previous file.
func WriteFile(fs afero.Fs, path string, data []byte, mode os.FileMode) error {
	if err := afero.WriteFile(fs, path, data, mode); err != nil {
		return err
	}
	return Chmod(fs, path, mode)
}

// RemoveIfExists removes path and ignores a missing file.
func RemoveIfExists(fs afero.Fs, path string) error {
	if err := fs.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
