package utils

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// CanonicalPath returns the canonical form of the given filesystem path.
// The returned path is absolute with all symlinks resolved, so two
// different spellings of the same location always canonicalise to the
// same string. The path must exist.
func CanonicalPath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("unable to resolve absolute path err:%w", err)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}

	return resolved, nil
}

// DirSize walks given dir and returns the total size of all regular files
// in bytes. Entries removed mid walk (git gc, concurrent maintenance) are
// skipped.
func DirSize(dir string) (int64, error) {
	var size int64

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path != dir {
				return nil
			}
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		size += info.Size()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("unable to measure dir size err:%w", err)
	}

	return size, nil
}
