// Package pipeline assembles lessons from paginated document text.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/memty/internal/blanks"
	"github.com/abhisek/memty/internal/chunker"
	"github.com/abhisek/memty/internal/extract"
	"github.com/abhisek/memty/internal/lesson"
	"github.com/abhisek/memty/internal/logger"
	"github.com/abhisek/memty/internal/quizgen"
)

// Progress milestones reported during assembly.
const (
	ProgressReading   = 20
	ProgressSplit     = 40
	ProgressPagesSpan = 40
	ProgressFinal     = 90
	ProgressDone      = 100
)

// ProgressFunc receives assembly progress as a percentage.
type ProgressFunc func(percent int)

// Config controls an Assembler.
type Config struct {
	// Concurrency bounds the number of pages synthesized at once.
	Concurrency int

	// Progress is optional.
	Progress ProgressFunc

	// Now defaults to time.Now.
	Now func() time.Time

	Logger *logger.Logger
}

// DefaultConfig runs synthesis one page at a time.
func DefaultConfig() Config {
	return Config{
		Concurrency: 1,
		Now:         time.Now,
		Logger:      logger.Nop(),
	}
}

// Assembler turns page text into a LessonData.
type Assembler struct {
	extractor   *extract.Extractor
	selector    *blanks.Selector
	synthesizer quizgen.Synthesizer
	cfg         Config
}

// NewAssembler creates an Assembler. Zero-valued config fields take their
// defaults.
func NewAssembler(extractor *extract.Extractor, selector *blanks.Selector, synth quizgen.Synthesizer, cfg Config) *Assembler {
	def := DefaultConfig()
	if cfg.Concurrency < 1 {
		cfg.Concurrency = def.Concurrency
	}
	if cfg.Now == nil {
		cfg.Now = def.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = def.Logger
	}
	if extractor == nil {
		extractor = extract.New()
	}
	if selector == nil {
		selector = blanks.NewSelector(nil)
	}
	if synth == nil {
		synth = quizgen.NewTemplate()
	}
	return &Assembler{extractor: extractor, selector: selector, synthesizer: synth, cfg: cfg}
}

// AssembleFile extracts the document at path and assembles it. Validation
// errors are returned as is, before any progress is reported.
func (a *Assembler) AssembleFile(ctx context.Context, path string, chunkSize int) (*lesson.LessonData, error) {
	if err := a.extractor.Validate(path); err != nil {
		return nil, extractionError(path, err)
	}
	a.report(ProgressReading)

	doc, err := a.extractor.Extract(ctx, path)
	if err != nil {
		return nil, extractionError(path, err)
	}

	return a.Assemble(ctx, doc.Title, doc.Pages, chunkSize)
}

func extractionError(path string, err error) error {
	var verr *extract.ValidationError
	if errors.As(err, &verr) {
		return err
	}
	return &ContentExtractionError{Path: path, Err: err}
}

// Assemble builds a lesson from page texts. Pages empty after trimming are
// skipped and page ids are sequential over the kept pages.
func (a *Assembler) Assemble(ctx context.Context, title string, pages []string, chunkSize int) (*lesson.LessonData, error) {
	var texts []string
	for _, p := range pages {
		if t := strings.TrimSpace(p); t != "" {
			texts = append(texts, t)
		}
	}
	a.report(ProgressSplit)

	out := make([]lesson.LessonPage, len(texts))
	for i, text := range texts {
		out[i] = lesson.LessonPage{
			ID:         fmt.Sprintf("page-%d", i),
			PageNumber: i + 1,
			Chunks:     a.selector.ApplyAll(chunker.Chunk(text, chunkSize)),
		}
	}

	if err := a.synthesize(ctx, texts, out); err != nil {
		return nil, err
	}

	a.report(ProgressFinal)
	now := a.cfg.Now()
	data := &lesson.LessonData{
		ID:         "lesson-" + uuid.NewString(),
		Title:      title,
		TotalPages: len(out),
		Pages:      out,
		Progress:   lesson.NewProgress(now),
		CreatedAt:  now,
	}
	a.cfg.Logger.Info("lesson assembled",
		"lesson_id", data.ID,
		"pages", data.TotalPages,
		"chunks", data.TotalChunks())
	a.report(ProgressDone)

	return data, nil
}

func (a *Assembler) synthesize(ctx context.Context, texts []string, pages []lesson.LessonPage) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Concurrency)

	progress := make(chan struct{}, len(texts))
	for i, text := range texts {
		g.Go(func() error {
			qs, err := a.synthesizer.Synthesize(gctx, text, pages[i].PageNumber)
			if err != nil {
				return &SynthesisError{PageNumber: pages[i].PageNumber, Err: err}
			}
			pages[i].Questions = qs
			progress <- struct{}{}
			return nil
		})
	}

	done := make(chan error, 1)
	go func() {
		done <- g.Wait()
		close(progress)
	}()

	n, total := 0, len(texts)
	for range progress {
		n++
		a.report(ProgressSplit + n*ProgressPagesSpan/total)
	}
	return <-done
}

func (a *Assembler) report(percent int) {
	if a.cfg.Progress != nil {
		a.cfg.Progress(percent)
	}
}
