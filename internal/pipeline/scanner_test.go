package pipeline

// Notes:
// - Scanner: we test section alignment (a label names the section that
//   follows its boundary), the terminal pattern, label errors, the bounded
//   buffer, and that sections reconstruct the input.
// - We don't test read errors from the underlying reader beyond a single
//   failing reader; bufio behavior is not ours to test.

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
)

var texPatterns = []string{`\section`, `\end{document}`}

// scanAll drains a scanner into a slice of sections.
func scanAll(s *Scanner) []Section {
	var out []Section
	for s.Scan() {
		out = append(out, s.Section())
	}
	return out
}

// ---------------------------------------------------------------------------
// TestScanner_Alignment - Headings name the section after their boundary
// ---------------------------------------------------------------------------

func TestScanner_Alignment(t *testing.T) {
	t.Parallel()

	input := "\\begin{document}\n" +
		"intro line\n" +
		"\\section{Intro}\n" +
		"body line\n" +
		"\\end{document}\n"

	s := NewScanner(strings.NewReader(input), texPatterns, WithTerminal(`\end{document}`))
	got := scanAll(s)
	if err := s.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}

	want := []Section{
		{Index: 0, Heading: "header", Lines: []string{"\\begin{document}\n", "intro line\n"}},
		{Index: 1, Heading: "intro", Lines: []string{"\\section{Intro}\n", "body line\n"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sections = %#v\nwant %#v", got, want)
	}
}

func TestScanner_EndLabelIsDocument(t *testing.T) {
	t.Parallel()

	// Without a terminal, \end{document} is an ordinary boundary whose
	// label "document" names the trailing lines, which are never yielded.
	input := "a\n\\section{One}\nb\n\\end{document}\ntrailing\n"

	s := NewScanner(strings.NewReader(input), texPatterns)
	got := scanAll(s)
	if err := s.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d sections, want 2", len(got))
	}
	if got[1].Heading != "one" {
		t.Errorf("second heading = %q, want %q", got[1].Heading, "one")
	}
	for _, sec := range got {
		for _, line := range sec.Lines {
			if line == "trailing\n" {
				t.Error("lines after the last boundary must not be yielded")
			}
		}
	}
}

func TestScanner_TerminalStopsScan(t *testing.T) {
	t.Parallel()

	input := "a\n\\end{document}\n\\section{Appendix}\nb\n\\section{More}\n"

	s := NewScanner(strings.NewReader(input), texPatterns, WithTerminal(`\end{document}`))
	got := scanAll(s)
	if len(got) != 1 {
		t.Fatalf("got %d sections, want 1", len(got))
	}
	if got[0].Heading != HeaderLabel {
		t.Errorf("heading = %q, want %q", got[0].Heading, HeaderLabel)
	}
	if s.Scan() {
		t.Error("Scan() after end returned true")
	}
}

// ---------------------------------------------------------------------------
// TestScanner_Reconstruction - Sections partition the stream
// ---------------------------------------------------------------------------

func TestScanner_Reconstruction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		lines []string
	}{
		{
			name:  "boundary first",
			lines: []string{"\\section{A}\n", "x\n", "\\section{B}\n", "y\n", "\\end{document}\n"},
		},
		{
			name:  "preamble then sections",
			lines: []string{"\\documentclass{article}\n", "\\begin{document}\n", "\\section{Intro}\n", "one\n", "two\n", "\\section{Method}\n", "\\end{document}\n"},
		},
		{
			name:  "adjacent boundaries",
			lines: []string{"\\section{A}\n", "\\section{B}\n", "\\section{C}\n", "\\end{document}\n"},
		},
		{
			name:  "no trailing newline",
			lines: []string{"p\n", "\\section{A}\n", "q\n", "\\end{document}"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			input := strings.Join(tt.lines, "")
			s := NewScanner(strings.NewReader(input), texPatterns)
			sections := scanAll(s)
			if err := s.Err(); err != nil {
				t.Fatalf("Err() = %v", err)
			}

			// Everything up to (excluding) the last boundary line is yielded exactly once.
			last := -1
			for i, line := range tt.lines {
				if strings.Contains(line, `\section`) || strings.Contains(line, `\end{document}`) {
					last = i
				}
			}
			want := strings.Join(tt.lines[:last], "")

			var b strings.Builder
			for i, sec := range sections {
				if sec.Index != i {
					t.Errorf("section %d has Index %d", i, sec.Index)
				}
				b.WriteString(sec.Text())
			}
			if b.String() != want {
				t.Errorf("concatenation = %q, want %q", b.String(), want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestScanner_Errors - Malformed boundaries and empty input
// ---------------------------------------------------------------------------

func TestScanner_MalformedBoundary(t *testing.T) {
	t.Parallel()

	input := "a\n\\section{Ok}\nb\n\\section*\nc\n\\section{Later}\n"

	s := NewScanner(strings.NewReader(input), texPatterns)
	got := scanAll(s)

	err := s.Err()
	if !errors.Is(err, ErrMalformedBoundary) {
		t.Fatalf("Err() = %v, want ErrMalformedBoundary", err)
	}
	if !strings.Contains(err.Error(), "line 4") {
		t.Errorf("error %q should name line 4", err)
	}
	if len(got) != 1 {
		t.Errorf("got %d sections before the error, want 1", len(got))
	}
	if s.Scan() {
		t.Error("Scan() after error returned true")
	}
}

func TestScanner_NoBoundaries(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	for i := 0; i < 50; i++ {
		fmt.Fprintf(&b, "line %d\n", i)
	}

	s := NewScanner(strings.NewReader(b.String()), texPatterns)
	if s.Scan() {
		t.Fatal("Scan() = true for a document without boundaries")
	}
	if err := s.Err(); err != nil {
		t.Errorf("Err() = %v, want nil", err)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestScanner_ReadError(t *testing.T) {
	t.Parallel()

	s := NewScanner(failingReader{}, texPatterns)
	if s.Scan() {
		t.Fatal("Scan() = true on failing reader")
	}
	if s.Err() == nil || !strings.Contains(s.Err().Error(), "disk on fire") {
		t.Errorf("Err() = %v, want read error", s.Err())
	}
}

// ---------------------------------------------------------------------------
// TestScanner_MaxLines - Bounded buffer keeps the tail
// ---------------------------------------------------------------------------

func TestScanner_MaxLines(t *testing.T) {
	t.Parallel()

	input := "1\n2\n3\n4\n5\n\\section{A}\nx\n\\end{document}\n"

	s := NewScanner(strings.NewReader(input), texPatterns, WithMaxLines(2))
	got := scanAll(s)
	if len(got) != 2 {
		t.Fatalf("got %d sections, want 2", len(got))
	}
	if !reflect.DeepEqual(got[0].Lines, []string{"4\n", "5\n"}) {
		t.Errorf("first section = %q, want last two lines", got[0].Lines)
	}
	if !reflect.DeepEqual(got[1].Lines, []string{"\\section{A}\n", "x\n"}) {
		t.Errorf("second section = %q", got[1].Lines)
	}
}

func TestScanner_SectionsDoNotShareStorage(t *testing.T) {
	t.Parallel()

	input := "a\n\\section{A}\nb\n\\section{B}\n"
	s := NewScanner(strings.NewReader(input), texPatterns, WithMaxLines(4))

	if !s.Scan() {
		t.Fatal("first Scan() = false")
	}
	first := s.Section()
	if !s.Scan() {
		t.Fatal("second Scan() = false")
	}
	if !reflect.DeepEqual(first.Lines, []string{"a\n"}) {
		t.Errorf("first section changed to %q after next Scan", first.Lines)
	}
}

// ---------------------------------------------------------------------------
// TestHeading - Label derivation
// ---------------------------------------------------------------------------

func TestHeadingFromLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line    string
		want    string
		wantErr bool
	}{
		{"\\section{Intro Section}\n", "intro_section", false},
		{"\\section{Results}\n", "results", false},
		{"\\section*{Acknowledgments}\n", "acknowledgments", false},
		{"\\section[short]{Long Title}\n", "long_title", false},
		{"\\section{A {nested} title}\n", "a_{nested", false},
		{"\\end{document}\n", "document", false},
		{"\\section{}\n", "", false},
		{"\\section\n", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()

			got, err := HeadingFromLine(tt.line)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedBoundary) {
					t.Errorf("HeadingFromLine(%q) error = %v, want ErrMalformedBoundary", tt.line, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("HeadingFromLine(%q) error = %v", tt.line, err)
			}
			if got != tt.want {
				t.Errorf("HeadingFromLine(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}
