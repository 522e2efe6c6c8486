package tex2speech

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alnah/go-tex2speech/internal/fileutil"
	"github.com/alnah/go-tex2speech/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ Normalizer = (*pipeline.CitationStripper)(nil)
	_ Normalizer = NormalizerFunc(nil)
)

// Default boundary markers.
const (
	SectionPattern     = `\section`
	EndDocumentPattern = `\end{document}`
	BeginDocumentMark  = `\begin{document}`
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Normalizer rewrites a block of markup before it is written.
type Normalizer interface {
	Normalize(ctx context.Context, content string) string
}

// NormalizerFunc adapts a plain function to Normalizer.
type NormalizerFunc func(content string) string

// Normalize calls f(content).
func (f NormalizerFunc) Normalize(_ context.Context, content string) string {
	return f(content)
}

// Segment is one section of a document, as written to disk.
type Segment struct {
	Index   int
	Heading string
	Raw     string // lines as read, terminators included
	Cleaned string // Raw after normalization, the file content
	Path    string
}

// Segmenter splits a document into per-section files.
// The zero value has no patterns and finds no segments; use DefaultSegmenter.
type Segmenter struct {
	Patterns   []string   // boundary substrings
	Terminal   string     // end-of-document boundary, "" for none
	MaxLines   int        // keep only the last MaxLines lines per segment (0 = all)
	Extension  string     // output file extension, dot included
	Normalizer Normalizer // nil writes Raw unchanged
}

// DefaultSegmenter splits at \section, stops at \end{document}, and strips
// citations, footnotes, labels and references.
func DefaultSegmenter() *Segmenter {
	return &Segmenter{
		Patterns:   []string{SectionPattern},
		Terminal:   EndDocumentPattern,
		Extension:  ".tex",
		Normalizer: &pipeline.CitationStripper{},
	}
}

// SplitFile splits filename with DefaultSegmenter and returns the written
// paths in order.
func SplitFile(filename, dir, prefix string) ([]string, error) {
	segments, err := DefaultSegmenter().Split(context.Background(), filename, dir, prefix)
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(segments))
	for i, seg := range segments {
		paths[i] = seg.Path
	}
	return paths, nil
}

// Split reads filename, writes one file per segment into dir and returns
// the segments in scan order.
//
// The document is scanned completely before anything is written. If a write
// fails, the files already written are removed, so on error no segment file
// from this call is left behind.
func (s *Segmenter) Split(ctx context.Context, filename, dir, prefix string) ([]Segment, error) {
	f, err := os.Open(filename) // #nosec G304 -- path located by the caller
	if err != nil {
		return nil, fmt.Errorf("opening document: %w", err)
	}
	defer f.Close()

	segments, err := s.Scan(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(filename), err)
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoSegments, filepath.Base(filename))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return nil, fmt.Errorf("creating segment directory: %w", err)
	}

	written := make([]string, 0, len(segments))
	for i := range segments {
		path := filepath.Join(dir, SegmentFileName(prefix, segments[i].Index, segments[i].Heading, s.Extension))
		if err := os.WriteFile(path, []byte(segments[i].Cleaned), filePermissions); err != nil {
			if rmErr := fileutil.RemoveFiles(written); rmErr != nil {
				return nil, fmt.Errorf("writing segment %d: %w (cleanup: %v)", segments[i].Index, err, rmErr)
			}
			return nil, fmt.Errorf("writing segment %d: %w", segments[i].Index, err)
		}
		written = append(written, path)
		segments[i].Path = path
	}

	return segments, nil
}

// Scan splits r into normalized segments without writing anything.
// It stops with ctx.Err() once ctx is canceled, so every returned segment
// has been normalized.
func (s *Segmenter) Scan(ctx context.Context, r io.Reader) ([]Segment, error) {
	opts := []pipeline.ScanOption{pipeline.WithMaxLines(s.MaxLines)}
	if s.Terminal != "" {
		opts = append(opts, pipeline.WithTerminal(s.Terminal))
	}

	var segments []Segment
	sc := pipeline.NewScanner(r, s.Patterns, opts...)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sec := sc.Section()
		raw := sec.Text()
		cleaned := raw
		if s.Normalizer != nil {
			cleaned = s.Normalizer.Normalize(ctx, raw)
		}
		segments = append(segments, Segment{
			Index:   sec.Index,
			Heading: sec.Heading,
			Raw:     raw,
			Cleaned: cleaned,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return segments, nil
}

// SegmentFileName builds "{prefix}_{counter}_{heading}{ext}", or
// "{counter}_{heading}{ext}" without a prefix. Path separators in prefix and
// heading become underscores, so the name is always a single path element.
func SegmentFileName(prefix string, counter int, heading, ext string) string {
	name := strconv.Itoa(counter) + "_" + fileutil.SanitizeName(heading) + ext
	if prefix != "" {
		name = fileutil.SanitizeName(prefix) + "_" + name
	}
	return name
}

// SegmentPrefix builds the file prefix for an article: "arxiv{id}", plus
// "_{keyword}" when keyword is set.
func SegmentPrefix(id, keyword string) string {
	prefix := "arxiv" + id
	if keyword != "" {
		prefix += "_" + keyword
	}
	return fileutil.SanitizeName(prefix)
}
