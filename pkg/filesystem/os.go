package filesystem

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/spf13/afero"
)

// NewOS returns the host filesystem
func NewOS() afero.Fs {
	return afero.NewOsFs()
}

// Lstat returns file info without following a final symlink when the
// filesystem supports it, and falls back to Stat otherwise.
func Lstat(fsys afero.Fs, name string) (fs.FileInfo, error) {
	if lfs, ok := fsys.(afero.Lstater); ok {
		info, _, err := lfs.LstatIfPossible(name)
		return info, err
	}
	return fsys.Stat(name)
}

// Lexists reports whether name exists, counting dangling symlinks as
// existing. Missing paths and paths below a non-directory report false
// without error; any other failure is returned.
func Lexists(fsys afero.Fs, name string) (bool, error) {
	_, err := Lstat(fsys, name)
	if err == nil {
		return true, nil
	}
	if isNotExist(err) {
		return false, nil
	}
	return false, err
}

// IsDir reports whether name is a directory, following symlinks
func IsDir(fsys afero.Fs, name string) (bool, error) {
	info, err := fsys.Stat(name)
	if err != nil {
		if isNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

// Canonical returns the absolute path of name with every symlink resolved.
// This always consults the host filesystem.
func Canonical(name string) (string, error) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

func isNotExist(err error) bool {
	return os.IsNotExist(err) || stderrors.Is(err, syscall.ENOTDIR)
}
