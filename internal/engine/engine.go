// Package engine orchestrates the scoring pipeline: it fans a batch of
// items out across a fixed-size worker pool, runs each item through
// extraction, classification, scoring, and verification, and funnels
// completions through a single collector that owns progress and
// persistence.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/forgeworks/idea-forge/internal/common"
	"github.com/forgeworks/idea-forge/internal/extract"
	"github.com/forgeworks/idea-forge/internal/model"
)

// DefaultWorkers is the worker pool size when none is configured.
const DefaultWorkers = 8

// Batch is one processing run.
type Batch struct {
	ID     string
	Items  []*model.Item
	Rubric model.Rubric
}

// Config tunes a pipeline run.
type Config struct {
	// Workers is the fixed worker pool size.
	Workers int
	// OnItemDone, if set, is called from the collector after each item
	// is persisted. Used for interactive progress display.
	OnItemDone func(item *model.Item)
}

// Engine runs batches through the pipeline stages.
type Engine struct {
	extractor  ContentExtractor
	classifier Classifier
	scorer     Scorer
	verifier   Verifier
	sink       ResultSink
	store      Store
	progress   ProgressPublisher
	logger     *slog.Logger
	cfg        Config
}

// New creates a pipeline engine. The store may be nil; everything else is
// required.
func New(
	extractor ContentExtractor,
	classifier Classifier,
	scorer Scorer,
	verifier Verifier,
	sink ResultSink,
	store Store,
	progress ProgressPublisher,
	logger *slog.Logger,
	cfg Config,
) *Engine {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	return &Engine{
		extractor:  extractor,
		classifier: classifier,
		scorer:     scorer,
		verifier:   verifier,
		sink:       sink,
		store:      store,
		progress:   progress,
		logger:     logger,
		cfg:        cfg,
	}
}

// completion carries one finished item back to the collector.
type completion struct {
	item    *model.Item
	elapsed time.Duration
}

// Run processes every item in the batch. Per-item failures become failed
// item records; Run itself errors only on empty input or a cancelled
// context. The batch always finishes with one result per input item.
func (e *Engine) Run(ctx context.Context, batch Batch) error {
	if len(batch.Items) == 0 {
		return common.ErrEmptyBatch
	}
	if len(batch.Rubric.Criteria) == 0 {
		return common.ErrEmptyRubric
	}

	total := len(batch.Items)
	e.logger.Info("starting batch",
		"batch_id", batch.ID,
		"items", total,
		"workers", e.cfg.Workers,
		"criteria", len(batch.Rubric.Criteria))

	if e.store != nil {
		if err := e.store.CreateBatch(ctx, batch.ID, total); err != nil {
			e.logger.Error("failed to record batch in store, continuing without it",
				"batch_id", batch.ID, "error", err)
		}
	}

	e.publishProgress(model.BatchProgress{
		TotalIdeas: total,
		Status:     model.BatchProcessing,
	})
	e.updateStoreBatch(ctx, batch.ID, model.BatchProcessing, 0)

	workChan := make(chan *model.Item, total)
	for _, item := range batch.Items {
		item.Status = model.ItemQueued
		workChan <- item
	}
	close(workChan)

	completions := make(chan completion, total)

	var wg sync.WaitGroup
	wg.Add(e.cfg.Workers)
	for i := 0; i < e.cfg.Workers; i++ {
		go func(workerID int) {
			defer wg.Done()
			for item := range workChan {
				select {
				case <-ctx.Done():
					item.Status = model.ItemFailed
					item.Error = ctx.Err().Error()
					completions <- completion{item: item}
					continue
				default:
				}

				start := time.Now()
				e.runItem(ctx, item, batch.Rubric, workerID)
				completions <- completion{item: item, elapsed: time.Since(start)}
			}
		}(i)
	}

	go func() {
		wg.Wait()
		close(completions)
	}()

	// Single collector owns the sink, the store, and progress.
	processed := 0
	var totalElapsed time.Duration
	for c := range completions {
		processed++
		totalElapsed += c.elapsed

		if err := e.sink.Append(c.item); err != nil {
			e.logger.Error("failed to append item result",
				"idea_id", c.item.ID, "error", err)
		}
		if e.store != nil {
			if err := e.store.SaveItemResult(ctx, batch.ID, c.item); err != nil {
				e.logger.Error("failed to persist item result, durable record may be incomplete",
					"idea_id", c.item.ID, "error", err)
			}
		}

		e.publishProgress(model.BatchProgress{
			ProcessedIdeas:         processed,
			TotalIdeas:             total,
			Status:                 model.BatchProcessing,
			EstimatedTimeRemaining: estimateRemaining(totalElapsed, processed, total-processed),
		})
		e.updateStoreBatch(ctx, batch.ID, model.BatchProcessing, processed)

		if e.cfg.OnItemDone != nil {
			e.cfg.OnItemDone(c.item)
		}
	}

	// A cancelled run is a failed batch: items that never started carry a
	// cancellation error, and the progress file is what a poller trusts.
	if err := ctx.Err(); err != nil {
		e.publishProgress(model.BatchProgress{
			ProcessedIdeas: processed,
			TotalIdeas:     total,
			Status:         model.BatchFailed,
			Error:          err.Error(),
		})
		e.updateStoreBatch(context.WithoutCancel(ctx), batch.ID, model.BatchFailed, processed)
		e.logger.Warn("batch cancelled",
			"batch_id", batch.ID,
			"processed", processed,
			"error", err)
		return fmt.Errorf("batch cancelled: %w", err)
	}

	e.publishProgress(model.BatchProgress{
		ProcessedIdeas: processed,
		TotalIdeas:     total,
		Status:         model.BatchCompleted,
	})
	e.updateStoreBatch(ctx, batch.ID, model.BatchCompleted, processed)

	e.logger.Info("batch complete",
		"batch_id", batch.ID,
		"items", processed,
		"elapsed", totalElapsed.Round(time.Millisecond))

	return nil
}

// runItem runs one item through every stage. Errors and panics become a
// failed item record; siblings are never affected.
func (e *Engine) runItem(ctx context.Context, item *model.Item, rubric model.Rubric, workerID int) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("panic while processing item",
				"idea_id", item.ID, "worker_id", workerID, "panic", r)
			item.Status = model.ItemFailed
			item.Error = fmt.Sprintf("panic: %v", r)
		}
	}()

	item.Status = model.ItemRunning
	logger := e.logger.With("idea_id", item.ID, "worker_id", workerID)

	// Stage 1: extraction and aggregation. Never fails the item.
	fileResults := make([]extract.FileResult, 0, len(item.Files))
	for _, path := range item.Files {
		fileResults = append(fileResults, extract.FileResult{
			Name:   filepath.Base(path),
			Result: e.extractor.Extract(ctx, path),
		})
	}
	item.ExtractedContent, item.ContentCategory = extract.Aggregate(fileResults)
	logger.Debug("extraction complete",
		"files", len(fileResults),
		"content_type", item.ContentCategory)

	// Stage 2: classification. A parse failure fails the item rather
	// than inventing a default.
	classification, err := e.classifier.Classify(ctx, item.ClassificationText())
	if err != nil {
		logger.Error("classification failed", "error", err)
		item.Status = model.ItemFailed
		item.Error = fmt.Sprintf("classification failed: %v", err)
		return
	}
	item.Classification = &classification

	// Stage 3: scoring. The scorer absorbs its own parse failures; only
	// exhausted call retries surface here.
	record, err := e.scorer.Score(ctx, item, rubric)
	if err != nil {
		logger.Error("scoring failed", "error", err)
		item.Status = model.ItemFailed
		item.Error = fmt.Sprintf("scoring failed: %v", err)
		return
	}
	item.Evaluation = &record

	// Stage 4: verification. Always produces a report.
	report := e.verifier.Verify(record, item.ContentCategory, item.NarrativeFields())
	item.Verification = &report

	item.Status = model.ItemCompleted
	logger.Debug("item complete",
		"weighted_total", record.WeightedTotal,
		"recommendation", record.Recommendation,
		"verification", report.Status)
}

func (e *Engine) publishProgress(progress model.BatchProgress) {
	if err := e.progress.Publish(progress); err != nil {
		e.logger.Error("failed to publish progress", "error", err)
	}
}

func (e *Engine) updateStoreBatch(ctx context.Context, batchID string, status model.BatchStatus, processed int) {
	if e.store == nil {
		return
	}
	if err := e.store.UpdateBatchStatus(ctx, batchID, status, processed); err != nil {
		e.logger.Error("failed to update batch status in store",
			"batch_id", batchID, "error", err)
	}
}

// estimateRemaining projects the remaining runtime from the average
// elapsed time per completed item.
func estimateRemaining(totalElapsed time.Duration, processed, remaining int) string {
	if processed == 0 || remaining <= 0 {
		return "0s"
	}
	avg := totalElapsed / time.Duration(processed)
	return (avg * time.Duration(remaining)).Round(time.Second).String()
}
