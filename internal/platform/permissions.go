package platform

import (
	"os"
	"runtime"

	"github.com/spf13/afero"
)

// execBits is the user/group/other execute mask.
const execBits os.FileMode = 0111

// Chmod sets file permissions. On Windows this is a no-op because Windows
// does not support Unix-style permission bits.
func Chmod(fs afero.Fs, path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return fs.Chmod(path, mode)
}

// IsExecutable reports whether any execute bit is set on path.
func IsExecutable(fs afero.Fs, path string) (bool, error) {
	info, err := fs.Stat(path)
	if err != nil {
		return false, err
	}
	return info.Mode().Perm()&execBits != 0, nil
}

// MakeExecutable adds execute bits wherever read bits are set, the way
// `chmod +x` does under a 022 umask. Files that are already executable are
// left untouched.
func MakeExecutable(fs afero.Fs, path string) error {
	info, err := fs.Stat(path)
	if err != nil {
		return err
	}
	perm := info.Mode().Perm()
	if perm&execBits != 0 {
		return nil
	}
	return Chmod(fs, path, perm|(perm&0444)>>2)
}
