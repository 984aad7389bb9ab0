package tokenstore

import (
	"os"
	"path/filepath"
)

// DefaultDir is where stores opened without a path live: ~/.workdesk, or
// the platform config dir when there is no home directory. It is created
// with 0700 permissions.
func DefaultDir() (string, error) {
	var dir string
	if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, ".workdesk")
	} else {
		cfg, cerr := os.UserConfigDir()
		if cerr != nil {
			return "", cerr
		}
		dir = filepath.Join(cfg, "workdesk")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

// DefaultPath is name inside DefaultDir.
func DefaultPath(name string) (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}
