package tex2speech

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/alnah/go-tex2speech/internal/config"
	"github.com/alnah/go-tex2speech/internal/process"
)

// Command and Runner describe an external tool invocation.
type (
	Command = process.Command
	Runner  = process.Runner
)

// Fetcher retrieves the source bundle of an article into dest.
type Fetcher interface {
	Fetch(ctx context.Context, id, dest string) error
}

// FetcherFunc adapts a plain function to Fetcher.
type FetcherFunc func(ctx context.Context, id, dest string) error

// Fetch calls f(ctx, id, dest).
func (f FetcherFunc) Fetch(ctx context.Context, id, dest string) error {
	return f(ctx, id, dest)
}

// Tool is an external command with an argument template.
// "{input}" and "{output}" in Args are replaced per segment.
type Tool struct {
	Command string
	Args    []string
}

// Expand returns the arguments with placeholders replaced.
// The template itself is left untouched.
func (t Tool) Expand(input, output string) []string {
	r := strings.NewReplacer(config.InputPlaceholder, input, config.OutputPlaceholder, output)
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = r.Replace(a)
	}
	return args
}

// Input describes one narration run.
type Input struct {
	ID      string // arXiv identifier, e.g. "2101.00001" or "hep-th/9901001"
	Keyword string // optional, appended to the file prefix
	Debug   bool   // keep the work directory and skip narration
}

// Result describes a finished run.
type Result struct {
	ID           string
	RunID        string
	WorkDir      string
	MainDocument string
	Debug        bool
	Segments     []SegmentResult
}

// Failed returns the number of segments that did not complete.
func (r *Result) Failed() int {
	n := 0
	for _, s := range r.Segments {
		if s.Err != nil {
			n++
		}
	}
	return n
}

// SegmentResult describes the processing of one segment.
type SegmentResult struct {
	Index     int
	Heading   string
	TexPath   string
	TextPath  string
	AudioPath string // empty in debug mode or on failure
	Err       error
	Duration  time.Duration
}

// Option configures a Narrator.
type Option func(*Narrator)

// WithOutputDir sets where audio files are written.
func WithOutputDir(dir string) Option {
	return func(n *Narrator) {
		n.cfg.outputDir = dir
	}
}

// WithWorkRoot sets the parent of the per-article work directory.
// The {id}_render.lock file for each article also lives there and stays
// after the run.
func WithWorkRoot(dir string) Option {
	return func(n *Narrator) {
		n.cfg.workRoot = dir
	}
}

// WithAudioFormat sets the audio file extension, without dot.
func WithAudioFormat(ext string) Option {
	return func(n *Narrator) {
		n.cfg.audioFormat = ext
	}
}

// WithFetchTimeout bounds source retrieval. Zero disables the bound.
// Panics if d < 0 (programmer error, similar to time.NewTicker).
func WithFetchTimeout(d time.Duration) Option {
	if d < 0 {
		panic("tex2speech: WithFetchTimeout duration must not be negative")
	}
	return func(n *Narrator) {
		n.cfg.fetchTimeout = d
	}
}

// WithDetexTool sets the detagging command. Its stdout becomes the text file.
func WithDetexTool(t Tool) Option {
	return func(n *Narrator) {
		n.cfg.detex = t
	}
}

// WithNarrateTool sets the narration command.
func WithNarrateTool(t Tool) Option {
	return func(n *Narrator) {
		n.cfg.narrate = t
	}
}

// WithSegmenter replaces the default segmenter.
func WithSegmenter(s *Segmenter) Option {
	return func(n *Narrator) {
		n.segmenter = s
	}
}

// WithFetcher replaces the HTTP source retrieval.
func WithFetcher(f Fetcher) Option {
	return func(n *Narrator) {
		n.fetcher = f
	}
}

// WithRunner replaces the external command runner.
func WithRunner(r Runner) Option {
	return func(n *Narrator) {
		n.runner = r
	}
}

// WithLookPath replaces the PATH lookup used to check tools before a run.
func WithLookPath(fn func(string) (string, error)) Option {
	return func(n *Narrator) {
		n.lookPath = fn
	}
}

// WithLogger sets the diagnostic logger. nil discards logs.
func WithLogger(l *slog.Logger) Option {
	return func(n *Narrator) {
		n.logger = l
	}
}
