package main

import (
	"context"
	"errors"
	"os"

	tex2speech "github.com/alnah/go-tex2speech"
	"github.com/alnah/go-tex2speech/internal/config"
)

// Exit codes for the tex2speech CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess   = 0 // All segments narrated
	ExitGeneral   = 1 // General error, interruption, or failed segments
	ExitUsage     = 2 // Invalid flags, arguments, or config
	ExitIO        = 3 // Main document not found, permission denied
	ExitDocument  = 4 // Malformed boundary or no sections
	ExitRetrieval = 5 // Download or extraction failed
	ExitTool      = 6 // detex or narration tool not found
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Interruption wins over whatever stage it surfaced in.
	if errors.Is(err, context.Canceled) {
		return ExitGeneral
	}

	// Tool errors (exit 6)
	if errors.Is(err, tex2speech.ErrToolNotFound) {
		return ExitTool
	}

	// Retrieval errors (exit 5)
	if errors.Is(err, tex2speech.ErrFetch) ||
		errors.Is(err, tex2speech.ErrDownload) ||
		errors.Is(err, tex2speech.ErrExtract) ||
		errors.Is(err, tex2speech.ErrNoSource) ||
		errors.Is(err, tex2speech.ErrTooLarge) {
		return ExitRetrieval
	}

	// Document errors (exit 4)
	if errors.Is(err, tex2speech.ErrMalformedBoundary) ||
		errors.Is(err, tex2speech.ErrNoSegments) {
		return ExitDocument
	}

	// Usage/config errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, tex2speech.ErrEmptyID) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidConfig) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, tex2speech.ErrMainDocumentNotFound) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	return ExitGeneral
}
