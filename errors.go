package tex2speech

import (
	"errors"
	"fmt"

	"github.com/alnah/go-tex2speech/internal/fetch"
	"github.com/alnah/go-tex2speech/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrEmptyID              = fetch.ErrEmptyID
	ErrMainDocumentNotFound = errors.New("main document not found")
	ErrMalformedBoundary    = pipeline.ErrMalformedBoundary
	ErrNoSegments           = errors.New("document has no section boundaries")
	ErrWorkDirLocked        = errors.New("work directory is in use by another run")

	// Retrieval errors.
	ErrFetch    = errors.New("source retrieval failed")
	ErrDownload = fetch.ErrDownload
	ErrTooLarge = fetch.ErrTooLarge
	ErrExtract  = fetch.ErrExtract
	ErrNoSource = fetch.ErrNoSource

	// External tool errors.
	ErrToolNotFound   = errors.New("external tool not found")
	ErrDetex          = errors.New("detagging failed")
	ErrNarrate        = errors.New("narration failed")
	ErrSegmentsFailed = errors.New("some segments failed")
)

// ToolNotFoundError reports a detag or narration command missing from PATH.
type ToolNotFoundError struct {
	Tool string
	Err  error
}

func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("%v: %s", ErrToolNotFound, e.Tool)
}

// Unwrap matches both ErrToolNotFound and the lookup error.
func (e *ToolNotFoundError) Unwrap() []error {
	return []error{ErrToolNotFound, e.Err}
}
