// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsafePath is returned when a relative name would escape its root.
var ErrUnsafePath = errors.New("path escapes destination directory")

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "default" -> false (name)
//   - "./tex2speech.yaml" -> true (relative path)
//   - "/etc/tex2speech.yaml" -> true (absolute)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// SanitizeName makes s usable as a single path element by replacing
// path separators and NUL bytes with underscores.
//
// Examples:
//   - "input/output" -> "input_output"
//   - "astro-ph/0601001" -> "astro-ph_0601001"
func SanitizeName(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return '_'
		}
		return r
	}, s)
}

// SafeJoin joins root and a slash-separated relative name, refusing names
// that are absolute or climb out of root (e.g. "../x", "/etc/passwd").
func SafeJoin(root, name string) (string, error) {
	local := filepath.FromSlash(name)
	if !filepath.IsLocal(local) {
		return "", fmt.Errorf("%w: %q", ErrUnsafePath, name)
	}
	return filepath.Join(root, local), nil
}

// RemoveFiles removes every path, ignoring ones already gone.
// It returns the joined errors of the removals that failed.
func RemoveFiles(paths []string) error {
	var errs []error
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
