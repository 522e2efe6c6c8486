package tex2speech

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"github.com/alnah/go-tex2speech/internal/config"
	"github.com/alnah/go-tex2speech/internal/fetch"
	"github.com/alnah/go-tex2speech/internal/fileutil"
	"github.com/alnah/go-tex2speech/internal/logging"
	"github.com/alnah/go-tex2speech/internal/process"
)

// Compile-time interface implementation checks.
var (
	_ Fetcher = (*fetch.Client)(nil)
	_ Runner  = process.ExecRunner{}
)

// workDirSuffix is appended to the sanitized id to name the work directory.
const workDirSuffix = "_render"

// narratorConfig holds the plain settings of a Narrator.
type narratorConfig struct {
	outputDir    string
	workRoot     string
	audioFormat  string
	fetchTimeout time.Duration
	detex        Tool
	narrate      Tool
}

// Narrator runs the fetch, segment, detag and narrate pipeline for one
// article at a time. Runs on different articles may proceed concurrently;
// runs on the same article are serialized by a lock file next to the work
// directory. The lock file, {id}_render.lock in the work root, is left in
// place after the run; removing it would let a concurrent run lock a
// different inode.
type Narrator struct {
	cfg       narratorConfig
	segmenter *Segmenter
	fetcher   Fetcher
	runner    Runner
	lookPath  func(string) (string, error)
	logger    *slog.Logger
}

// NewNarrator creates a Narrator with the defaults of config.DefaultConfig:
// sources from arxiv.org, detex for detagging and say for narration.
func NewNarrator(opts ...Option) *Narrator {
	def := config.DefaultConfig()
	timeout, _ := def.FetchTimeout()

	n := &Narrator{
		cfg: narratorConfig{
			outputDir:    def.Output.Dir,
			workRoot:     def.Work.Root,
			audioFormat:  def.Output.AudioFormat,
			fetchTimeout: timeout,
			detex:        Tool(def.Tools.Detex),
			narrate:      Tool(def.Tools.Narrate),
		},
		segmenter: DefaultSegmenter(),
		fetcher:   NewFetchClient(def.Fetch),
		runner:    process.ExecRunner{},
		lookPath:  process.LookPath,
	}

	for _, opt := range opts {
		opt(n)
	}

	if n.logger == nil {
		n.logger = logging.Nop()
	}
	return n
}

// NewFetchClient builds the HTTP source retrieval from configuration.
func NewFetchClient(c config.FetchConfig) *fetch.Client {
	return &fetch.Client{
		BaseURL:       c.BaseURL,
		LegacyArchive: c.LegacyArchive,
		UserAgent:     c.UserAgent,
		MaxBytes:      c.MaxBytes,
	}
}

// WorkDir returns the work directory used for id.
func (n *Narrator) WorkDir(id string) string {
	return filepath.Join(n.cfg.workRoot, fileutil.SanitizeName(strings.TrimSpace(id))+workDirSuffix)
}

// Narrate processes one article.
//
// Fatal errors (bad id, missing tool, busy work directory, retrieval,
// missing main document, segmentation) return a nil Result. Once segments
// exist, each one is processed even if an earlier one failed; the Result
// is returned together with an ErrSegmentsFailed error if any did.
//
// Unless in.Debug is set the work directory is removed before returning,
// whatever the outcome.
func (n *Narrator) Narrate(ctx context.Context, in Input) (*Result, error) {
	id := strings.TrimSpace(in.ID)
	if id == "" {
		return nil, ErrEmptyID
	}

	runID := uuid.NewString()
	log := n.logger.With(slog.String("run", runID), slog.String("id", id))

	if err := n.checkTools(in.Debug); err != nil {
		return nil, err
	}

	workDir := n.WorkDir(id)
	if err := os.MkdirAll(filepath.Dir(workDir), dirPermissions); err != nil {
		return nil, fmt.Errorf("creating work root: %w", err)
	}

	lock := flock.New(workDir + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrWorkDirLocked, lock.Path())
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			log.Warn("failed to release work directory lock", slog.Any("error", err))
		}
	}()

	// Leftovers from an earlier debug run would confuse the main document lookup.
	if err := os.RemoveAll(workDir); err != nil {
		return nil, fmt.Errorf("clearing work directory: %w", err)
	}
	defer n.cleanup(log, workDir, in.Debug)

	log.Info("fetching source", slog.String("work_dir", workDir))
	if err := n.fetch(ctx, id, workDir); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFetch, id, err)
	}

	mainDoc, err := FindFileContaining(workDir, BeginDocumentMark, ".tex")
	if err != nil {
		return nil, err
	}
	log.Debug("main document located", slog.String("path", mainDoc))

	segments, err := n.segmenter.Split(ctx, mainDoc, workDir, SegmentPrefix(id, in.Keyword))
	if err != nil {
		return nil, err
	}
	log.Info("document segmented", slog.Int("segments", len(segments)))

	if !in.Debug {
		if err := os.MkdirAll(n.cfg.outputDir, dirPermissions); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}

	result := &Result{
		ID:           id,
		RunID:        runID,
		WorkDir:      workDir,
		MainDocument: mainDoc,
		Debug:        in.Debug,
		Segments:     make([]SegmentResult, 0, len(segments)),
	}
	for _, seg := range segments {
		sr := n.processSegment(ctx, seg, in.Debug)
		if sr.Err != nil {
			log.Error("segment failed",
				slog.Int("index", sr.Index),
				slog.String("heading", sr.Heading),
				slog.Any("error", sr.Err))
		} else {
			log.Debug("segment done",
				slog.Int("index", sr.Index),
				slog.String("heading", sr.Heading),
				slog.Duration("duration", sr.Duration))
		}
		result.Segments = append(result.Segments, sr)
	}

	if failed := result.Failed(); failed > 0 {
		return result, fmt.Errorf("%w: %d of %d", ErrSegmentsFailed, failed, len(result.Segments))
	}
	log.Info("narration complete", slog.Int("segments", len(result.Segments)))
	return result, nil
}

// checkTools resolves the commands a run needs before any work starts.
func (n *Narrator) checkTools(debug bool) error {
	tools := []Tool{n.cfg.detex}
	if !debug {
		tools = append(tools, n.cfg.narrate)
	}
	for _, t := range tools {
		if _, err := n.lookPath(t.Command); err != nil {
			return &ToolNotFoundError{Tool: t.Command, Err: err}
		}
	}
	return nil
}

func (n *Narrator) fetch(ctx context.Context, id, dest string) error {
	if n.cfg.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.cfg.fetchTimeout)
		defer cancel()
	}
	return n.fetcher.Fetch(ctx, id, dest)
}

// processSegment detags one segment and, outside debug mode, narrates it.
// A canceled context marks the segment failed without running anything.
func (n *Narrator) processSegment(ctx context.Context, seg Segment, debug bool) (sr SegmentResult) {
	start := time.Now()
	defer func() { sr.Duration = time.Since(start) }()

	base := strings.TrimSuffix(seg.Path, filepath.Ext(seg.Path))
	sr = SegmentResult{
		Index:    seg.Index,
		Heading:  seg.Heading,
		TexPath:  seg.Path,
		TextPath: base + ".txt",
	}

	if err := ctx.Err(); err != nil {
		sr.Err = err
		return sr
	}

	if err := n.detag(ctx, sr.TexPath, sr.TextPath); err != nil {
		sr.Err = fmt.Errorf("%w: %s: %w", ErrDetex, filepath.Base(sr.TexPath), err)
		return sr
	}
	if debug {
		return sr
	}

	audio := filepath.Join(n.cfg.outputDir, filepath.Base(base)+"."+n.cfg.audioFormat)
	cmd := Command{Name: n.cfg.narrate.Command, Args: n.cfg.narrate.Expand(sr.TextPath, audio)}
	if err := n.runner.Run(ctx, cmd); err != nil {
		sr.Err = fmt.Errorf("%w: %s: %w", ErrNarrate, filepath.Base(sr.TextPath), err)
		return sr
	}
	sr.AudioPath = audio
	return sr
}

// detag runs the detex tool with its stdout redirected to output.
func (n *Narrator) detag(ctx context.Context, input, output string) (err error) {
	f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermissions) // #nosec G304 -- path derived from segment path
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	cmd := Command{Name: n.cfg.detex.Command, Args: n.cfg.detex.Expand(input, output), Stdout: f}
	return n.runner.Run(ctx, cmd)
}

func (n *Narrator) cleanup(log *slog.Logger, workDir string, debug bool) {
	if debug {
		log.Info("keeping work directory", slog.String("path", workDir))
		return
	}
	if err := os.RemoveAll(workDir); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn("failed to remove work directory", slog.String("path", workDir), slog.Any("error", err))
	}
}
