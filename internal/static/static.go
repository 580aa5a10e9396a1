// Package static embeds static files into the binary and copies them to the
// filesystem
package static

import (
	"embed"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/timetrackerpro/timetracker/internal/osutil"
)

const (
	filesDir = "files"
	iconFile = "icon.svg"
)

//go:embed files/*
var embeddedFiles embed.FS

// Install copies the embedded files into dataDir, leaving existing files
// untouched, and returns the path of the notification icon.
func Install(dataDir string) (string, error) {
	err := fs.WalkDir(
		embeddedFiles,
		filesDir,
		func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				return nil
			}

			rel, err := filepath.Rel(filesDir, path)
			if err != nil {
				return err
			}

			destPath := filepath.Join(dataDir, "static", rel)

			// Only write if file does not already exist
			if _, err := os.Stat(destPath); !errors.Is(err, os.ErrNotExist) {
				return err
			}

			b, err := embeddedFiles.ReadFile(path)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(filepath.Dir(destPath), osutil.DirPermission); err != nil {
				return err
			}

			return os.WriteFile(destPath, b, osutil.FilePermission)
		},
	)
	if err != nil {
		return "", err
	}

	return filepath.Join(dataDir, "static", iconFile), nil
}
