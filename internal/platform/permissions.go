package platform

import (
	"fmt"
	"os"
	"runtime"
)

// Permission constants for state documents and their directories.
const (
	DirPermSecure  os.FileMode = 0700
	FilePermSecure os.FileMode = 0600
	DirPermNormal  os.FileMode = 0755
)

// Chmod sets file permissions. On Windows this is a no-op because Windows
// does not support Unix-style permission bits.
func Chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}

// EnsureSecureDir creates dir (and parents) with secure permissions and
// tightens the mode if the directory already exists with a looser one.
func EnsureSecureDir(dir string) error {
	if err := os.MkdirAll(dir, DirPermSecure); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	// MkdirAll does not chmod pre-existing directories.
	return Chmod(dir, DirPermSecure)
}

// CheckPerm reports whether path has exactly the wanted permission bits.
// On Windows it always reports true.
func CheckPerm(path string, want os.FileMode) (bool, error) {
	if runtime.GOOS == "windows" {
		return true, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	return info.Mode().Perm() == want, nil
}
