package engine

import (
	"context"

	"github.com/forgeworks/idea-forge/internal/extract"
	"github.com/forgeworks/idea-forge/internal/model"
)

// ContentExtractor turns one attached file into extracted content.
type ContentExtractor interface {
	Extract(ctx context.Context, path string) extract.Result
}

// Classifier assigns taxonomy labels to an item's combined text.
type Classifier interface {
	Classify(ctx context.Context, itemText string) (model.Classification, error)
}

// Scorer evaluates an item against the batch rubric.
type Scorer interface {
	Score(ctx context.Context, item *model.Item, rubric model.Rubric) (model.ScoreRecord, error)
}

// Verifier checks a completed score record for consistency.
type Verifier interface {
	Verify(record model.ScoreRecord, category model.ContentCategory, narratives []string) model.VerificationReport
}

// ResultSink receives each item as it finishes, in completion order.
type ResultSink interface {
	Append(item *model.Item) error
}

// Store is the optional relational sink written alongside the result
// artifact. Failures are logged, never fatal to the batch.
type Store interface {
	CreateBatch(ctx context.Context, batchID string, totalItems int) error
	UpdateBatchStatus(ctx context.Context, batchID string, status model.BatchStatus, processed int) error
	SaveItemResult(ctx context.Context, batchID string, item *model.Item) error
}

// ProgressPublisher receives a progress snapshot after every completion.
type ProgressPublisher interface {
	Publish(progress model.BatchProgress) error
}
