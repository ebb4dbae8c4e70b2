package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/pwaudit/internal/model"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of passwords scored in parallel when
// WithConcurrency is not given.
const DefaultConcurrency = 4

// Scorer produces an AnalysisResult for one password.
// *analyzer.Analyzer satisfies this interface.
type Scorer interface {
	Analyze(password string) model.AnalysisResult
}

// BatchProcessor scores many passwords concurrently.
type BatchProcessor struct {
	// scorer is shared by every goroutine; it must be safe for concurrent use.
	scorer Scorer

	// concurrency is the maximum number of passwords scored at once.
	concurrency int

	// logger is used for batch-level logging. Passwords are never logged.
	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent scorings.
// Non-positive values keep the default.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a BatchProcessor around scorer.
func NewBatchProcessor(scorer Scorer, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		scorer:      scorer,
		concurrency: DefaultConcurrency,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// Process scores every password and returns the results in input order.
// If ctx is cancelled, passwords not yet started are skipped and the
// context error is returned along with the partial results; skipped
// entries are left as zero values.
func (bp *BatchProcessor) Process(ctx context.Context, passwords []string) ([]model.AnalysisResult, error) {
	bp.logger.Info("starting batch scoring",
		"total", len(passwords),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()

	// Each goroutine writes only its own index, so no lock is needed.
	results := make([]model.AnalysisResult, len(passwords))

	err := bp.run(ctx, passwords, func(result model.AnalysisResult, index int) {
		results[index] = result
	})

	bp.logger.Info("batch scoring complete",
		"total", len(passwords),
		"elapsed", time.Since(startTime),
	)

	return results, err
}

// ProcessWithCallback scores every password and calls callback as each one
// completes. Callbacks run on worker goroutines, possibly out of order, so
// callback must be safe for concurrent use.
func (bp *BatchProcessor) ProcessWithCallback(
	ctx context.Context,
	passwords []string,
	callback func(result model.AnalysisResult, index int),
) error {
	bp.logger.Info("starting batch scoring with callback",
		"total", len(passwords),
		"concurrency", bp.concurrency,
	)
	return bp.run(ctx, passwords, callback)
}

// run fans the passwords out over an errgroup.
func (bp *BatchProcessor) run(
	ctx context.Context,
	passwords []string,
	callback func(result model.AnalysisResult, index int),
) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, password := range passwords {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			result := bp.scorer.Analyze(password)
			bp.logger.Debug("password scored",
				"index", i+1,
				"strength", result.Strength.String(),
			)

			callback(result, i)
			return nil
		})
	}

	return g.Wait()
}
