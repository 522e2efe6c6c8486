package tex2speech

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FindFileContaining returns the first file in dir, in lexical order, whose
// name ends with ext and whose content contains needle. An empty ext
// matches every file. Subdirectories are not searched.
func FindFileContaining(dir, needle, ext string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMainDocumentNotFound, err)
	}

	// ReadDir returns entries sorted by filename.
	for _, e := range entries {
		if !e.Type().IsRegular() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path) // #nosec G304 -- path is inside dir
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", e.Name(), err)
		}
		if bytes.Contains(data, []byte(needle)) {
			return path, nil
		}
	}

	return "", fmt.Errorf("%w: no %s file in %s contains %q", ErrMainDocumentNotFound, describeExt(ext), dir, needle)
}

func describeExt(ext string) string {
	if ext == "" {
		return "regular"
	}
	return "*" + ext
}
