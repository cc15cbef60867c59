// Package processor classifies batches of texts with a bounded worker pool.
package processor

import (
	"context"
	"fmt"
	"sync"
	"time"

	infralogger "github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/infrastructure/logger"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/classifier"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/domain"
	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/telemetry"
)

const defaultConcurrency = 8

// BatchProcessor classifies multiple texts in parallel using a worker pool.
type BatchProcessor struct {
	classifier  classifier.Classifier
	concurrency int
	logger      infralogger.Logger
	telemetry   *telemetry.Provider
}

type job struct {
	index int
	text  string
}

// NewBatchProcessor creates a new batch processor. p may be nil.
func NewBatchProcessor(c classifier.Classifier, concurrency int, log infralogger.Logger, p *telemetry.Provider) *BatchProcessor {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	if log == nil {
		log = infralogger.NewNop()
	}

	return &BatchProcessor{
		classifier:  c,
		concurrency: concurrency,
		logger:      log,
		telemetry:   p,
	}
}

// Process classifies texts and returns results in input order. If ctx ends
// before every text is classified, the partial results are discarded and
// the context error is returned.
func (b *BatchProcessor) Process(ctx context.Context, texts []string) ([]domain.Result, error) {
	if len(texts) == 0 {
		return []domain.Result{}, nil
	}
	b.telemetry.RecordBatchSize(len(texts))

	startTime := time.Now()
	workers := min(b.concurrency, len(texts))

	jobs := make(chan job, len(texts))
	results := make([]domain.Result, len(texts))

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go b.worker(ctx, i, jobs, results, &wg)
	}

	for i, text := range texts {
		jobs <- job{index: i, text: text}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		b.logger.Warn("Batch cancelled",
			infralogger.Int("batch_size", len(texts)),
			infralogger.Error(err),
		)
		return nil, fmt.Errorf("batch cancelled: %w", err)
	}

	duration := time.Since(startTime)
	b.logger.Info("Batch classification complete",
		infralogger.Int("total", len(texts)),
		infralogger.Int("workers", workers),
		infralogger.Int64("duration_ms", duration.Milliseconds()),
	)

	return results, nil
}

// worker writes each result into its own slot, so no two workers share an index.
func (b *BatchProcessor) worker(
	ctx context.Context,
	id int,
	jobs <-chan job,
	results []domain.Result,
	wg *sync.WaitGroup,
) {
	defer wg.Done()

	for j := range jobs {
		select {
		case <-ctx.Done():
			b.logger.Debug("Worker stopping due to context cancellation", infralogger.Int("worker_id", id))
			return
		default:
		}

		results[j.index] = b.classifier.Classify(ctx, j.text)
	}
}

// Concurrency returns the worker pool size.
func (b *BatchProcessor) Concurrency() int {
	return b.concurrency
}
