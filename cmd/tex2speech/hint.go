package main

import (
	"errors"

	tex2speech "github.com/alnah/go-tex2speech"
	"github.com/alnah/go-tex2speech/internal/config"
	"github.com/alnah/go-tex2speech/internal/hints"
)

// hintFor returns the hint appended to an error message, or "".
// Work directory lock hints are added by run, which knows the lock path.
func hintFor(err error) string {
	var toolErr *tex2speech.ToolNotFoundError
	switch {
	case errors.As(err, &toolErr):
		return hints.ForToolNotFound(toolErr.Tool)
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.SearchPaths("tex2speech"))
	case errors.Is(err, tex2speech.ErrFetch):
		return hints.ForFetch()
	case errors.Is(err, tex2speech.ErrMainDocumentNotFound):
		return hints.ForMainDocument()
	case errors.Is(err, tex2speech.ErrNoSegments):
		return hints.ForNoSegments()
	}
	return ""
}
