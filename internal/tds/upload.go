package tds

import (
	"fmt"
	"os"
	"path/filepath"
)

// DirUploader writes rendered files to a local directory and returns their
// path. Used by the CLIs; the dashboard injects its storage uploader instead.
func DirUploader(dir string) Uploader {
	return func(filename string, data []byte) (string, error) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
		path := filepath.Join(dir, filename)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return "", fmt.Errorf("writing %s: %w", path, err)
		}
		return path, nil
	}
}
