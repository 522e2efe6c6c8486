package fetch

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyID is returned for a blank article identifier.
var ErrEmptyID = errors.New("article id cannot be empty")

// DefaultLegacyArchive is the archive used for bare old-style identifiers.
const DefaultLegacyArchive = "astro-ph"

// EPrintURL builds the source download URL for an article.
//
// Examples with base "http://arxiv.org/e-print/":
//   - "2101.00001" -> "http://arxiv.org/e-print/2101.00001"
//   - "hep-th/9901001" -> "http://arxiv.org/e-print/hep-th/9901001"
//   - "0601001" -> "http://arxiv.org/e-print/astro-ph/0601001"
func EPrintURL(base, legacyArchive, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrEmptyID
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	if strings.Contains(id, ".") || strings.Contains(id, "/") {
		return base + id, nil
	}
	if legacyArchive == "" {
		legacyArchive = DefaultLegacyArchive
	}
	return fmt.Sprintf("%s%s/%s", base, legacyArchive, id), nil
}
