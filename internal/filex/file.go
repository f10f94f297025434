// Package filex has filesystem helpers for the CLI.
package filex

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// EnsureDir creates dir (relative paths resolve against the working
// directory) and returns its absolute path.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}
	if err := os.MkdirAll(abs, 0o750); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}
	return abs, nil
}

// CreateNumbered creates the first free file named fmt.Sprintf(pattern, n)
// in dir, counting n up from start. It never overwrites an existing file.
func CreateNumbered(dir, pattern string, start int) (*os.File, error) {
	for n := start; n < start+10000; n++ {
		path := filepath.Join(dir, fmt.Sprintf(pattern, n))
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", path, err)
		}
		return f, nil
	}
	return nil, fmt.Errorf("no free file name for %s in %s", pattern, dir)
}
