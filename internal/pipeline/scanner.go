package pipeline

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrMalformedBoundary is returned when a boundary line carries no {label}.
var ErrMalformedBoundary = errors.New("boundary line has no {label}")

// HeaderLabel names the section preceding the first boundary.
const HeaderLabel = "header"

// labelPattern captures the first brace group on a line (non-greedy).
var labelPattern = regexp.MustCompile(`\{(.*?)\}`)

// Section is one span of lines between two boundaries.
type Section struct {
	Index   int
	Heading string
	Lines   []string // owned by the caller, never reused by the Scanner
}

// Text joins the section lines. Lines keep their terminators.
func (s Section) Text() string {
	return strings.Join(s.Lines, "")
}

// ScanOption configures a Scanner.
type ScanOption func(*Scanner)

// WithMaxLines caps the rolling buffer. Only the last n lines of a long
// section are kept. Zero or less keeps every line.
func WithMaxLines(n int) ScanOption {
	return func(s *Scanner) {
		s.maxLines = n
	}
}

// WithTerminal marks pattern as the end-of-document boundary.
// A line containing it yields the pending section and ends the scan.
func WithTerminal(pattern string) ScanOption {
	return func(s *Scanner) {
		s.terminal = pattern
	}
}

// Scanner splits a line stream into sections at boundary lines.
//
// A line is a boundary when it contains any of the patterns. Each boundary
// yields the lines collected since the previous one, named by the previous
// boundary's label (HeaderLabel for the first). The boundary line itself
// opens the next section. Lines after the last boundary are never yielded.
//
// A Scanner reads its input once and only moves forward: after Scan returns
// false it keeps returning false.
type Scanner struct {
	reader   *bufio.Reader
	patterns []string
	terminal string
	maxLines int

	buf     *Ring[string]
	pending string
	lineNo  int
	index   int
	section Section
	err     error
	done    bool
}

// NewScanner creates a Scanner reading lines from r.
func NewScanner(r io.Reader, patterns []string, opts ...ScanOption) *Scanner {
	s := &Scanner{
		reader:   bufio.NewReader(r),
		patterns: append([]string(nil), patterns...),
		pending:  HeaderLabel,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.buf = NewRing[string](s.maxLines)
	return s
}

// Scan advances to the next section. It returns false at the end of the
// input or on the first error, which Err then reports.
func (s *Scanner) Scan() bool {
	for !s.done {
		line, readErr := s.reader.ReadString('\n')
		if line != "" {
			s.lineNo++
			yielded, err := s.handle(line)
			if err != nil {
				s.fail(err)
				return false
			}
			if yielded {
				return true
			}
		}
		if readErr != nil {
			if !errors.Is(readErr, io.EOF) {
				s.fail(fmt.Errorf("reading line %d: %w", s.lineNo+1, readErr))
				return false
			}
			s.finish()
		}
	}
	return false
}

// Section returns the section produced by the last successful Scan.
func (s *Scanner) Section() Section {
	return s.section
}

// Err returns the first error encountered, or nil at a clean end of input.
func (s *Scanner) Err() error {
	return s.err
}

// handle buffers one line and reports whether it produced a section.
func (s *Scanner) handle(line string) (bool, error) {
	if !s.isBoundary(line) {
		s.buf.Push(line)
		return false, nil
	}

	label, err := HeadingFromLine(line)
	if err != nil {
		return false, fmt.Errorf("line %d: %w", s.lineNo, err)
	}

	s.section = Section{Index: s.index, Heading: s.pending, Lines: s.buf.Snapshot()}
	s.index++
	s.pending = label
	s.buf.Reset()

	if s.terminal != "" && strings.Contains(line, s.terminal) {
		s.finish()
		return true, nil
	}

	s.buf.Push(line)
	return true, nil
}

func (s *Scanner) isBoundary(line string) bool {
	if s.terminal != "" && strings.Contains(line, s.terminal) {
		return true
	}
	for _, p := range s.patterns {
		if p != "" && strings.Contains(line, p) {
			return true
		}
	}
	return false
}

func (s *Scanner) fail(err error) {
	s.err = err
	s.section = Section{}
	s.finish()
}

func (s *Scanner) finish() {
	s.done = true
	s.buf.Reset()
}

// HeadingFromLine derives a heading from the first {label} on a line.
func HeadingFromLine(line string) (string, error) {
	m := labelPattern.FindStringSubmatch(line)
	if m == nil {
		return "", ErrMalformedBoundary
	}
	return NormalizeHeading(m[1]), nil
}

// NormalizeHeading replaces spaces with underscores and lowercases the label.
func NormalizeHeading(label string) string {
	return cases.Lower(language.Und).String(strings.ReplaceAll(label, " ", "_"))
}
