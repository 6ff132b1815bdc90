package batch

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/dirschema/internal/config"
	"github.com/nao1215/dirschema/internal/model"
	"github.com/nao1215/dirschema/internal/schema"
)

// DefaultConcurrency is used when no positive concurrency is configured.
const DefaultConcurrency = config.DefaultConcurrency

// ProcessFunc extracts one schema.
type ProcessFunc func(ctx context.Context, opts config.SchemaOptions) error

// Result is the outcome of one input.
type Result struct {
	// Options are the per-input options that were processed.
	Options config.SchemaOptions

	// Status classifies Err.
	Status model.RunStatus

	// Err is the processing error, nil on success.
	Err error

	// Elapsed is how long the input took.
	Elapsed time.Duration
}

// Processor extracts schemas for many inputs.
type Processor struct {
	// process handles a single input.
	process ProcessFunc

	// concurrency is the maximum number of inputs processed at once.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets a custom logger for batch processing.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent inputs.
// Non-positive values keep the default.
func WithConcurrency(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithProcessFunc replaces the per-input function. Mostly useful in tests.
func WithProcessFunc(fn ProcessFunc) Option {
	return func(p *Processor) {
		if fn != nil {
			p.process = fn
		}
	}
}

// NewProcessor creates a Processor that runs schema.Process for each input.
func NewProcessor(opts ...Option) *Processor {
	p := &Processor{
		process: func(_ context.Context, o config.SchemaOptions) error {
			return schema.Process(o)
		},
		concurrency: DefaultConcurrency,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// Run processes every input and returns one result per input, in order.
// The returned error is non-nil only when ctx was canceled; inputs that never
// started then carry the context error.
//
// Results live in a slice allocated up front with one slot per input. Each
// goroutine writes only the slot at its own index, and the slice is read only
// after g.Wait returns, so no mutex is needed and the results keep the input
// order no matter which extraction finishes first. Per-input failures are
// stored in their slot instead of being returned to the errgroup, so one bad
// document never cancels the others.
func (p *Processor) Run(ctx context.Context, inputs []config.SchemaOptions) ([]Result, error) {
	p.logger.Debug("starting batch extraction",
		"inputs", len(inputs),
		"concurrency", p.concurrency,
	)
	start := time.Now()

	// Each goroutine writes only its own slot.
	results := make([]Result, len(inputs))

	var g errgroup.Group
	g.SetLimit(p.concurrency)

	for i, in := range inputs {
		g.Go(func() error {
			results[i].Options = in
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				results[i].Status = model.RunFailed
				return nil
			}

			p.logger.Debug("extracting schema",
				"input", in.Input,
				"output", in.Output,
				"index", i+1,
				"total", len(inputs),
			)

			began := time.Now()
			err := p.process(ctx, in)
			results[i].Err = err
			results[i].Status = schema.Status(err)
			results[i].Elapsed = time.Since(began)

			if err != nil {
				p.logger.Debug("schema extraction failed", "input", in.Input, "error", err)
			}
			return nil
		})
	}

	// Goroutines never return errors; failures live in the results.
	_ = g.Wait()

	p.logger.Debug("batch extraction complete",
		"inputs", len(inputs),
		"elapsed", time.Since(start),
	)
	return results, ctx.Err()
}
