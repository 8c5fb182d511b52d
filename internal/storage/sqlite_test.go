package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgeworks/idea-forge/internal/model"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	s, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func completedItem() *model.Item {
	return &model.Item{
		ID:               "idea-1",
		Title:            "AI triage assistant",
		Summary:          "Routes support tickets with an LLM.",
		ExtractedContent: "--- Content from demo.png ---\nScreenshot of the running app",
		ContentCategory:  model.CategoryPrototype,
		Classification: &model.Classification{
			PrimaryTheme:    "Generative AI",
			SecondaryThemes: []string{"Agentic AI"},
			ThemeConfidence: 0.9,
			IndustryName:    "Technology & Software",
			Technologies:    []string{"RAG"},
		},
		Evaluation: &model.ScoreRecord{
			Scores: map[model.CriterionKey]model.CriterionScore{
				"novelty":     {Score: 8, Justification: "new angle"},
				"feasibility": {Score: 6, Justification: "standard stack"},
			},
			Recommendation: model.RecommendInvest,
			ReportedTotal:  9.0,
			WeightedTotal:  7.0,
		},
		Verification: &model.VerificationReport{
			Status:       model.VerificationCompleted,
			ChecksPassed: 4,
		},
		Status: model.ItemCompleted,
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	s := newTestStorage(t)
	require.NoError(t, s.Migrate(context.Background()))
}

func TestBatchLifecycle(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.CreateBatch(ctx, "batch-1", 5))
	require.NoError(t, s.UpdateBatchStatus(ctx, "batch-1", model.BatchProcessing, 2))
	require.NoError(t, s.UpdateBatchStatus(ctx, "batch-1", model.BatchCompleted, 5))

	assert.Error(t, s.UpdateBatchStatus(ctx, "missing", model.BatchCompleted, 0))
}

func TestSaveItemResultRoundTrip(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.CreateBatch(ctx, "batch-1", 1))
	require.NoError(t, s.SaveItemResult(ctx, "batch-1", completedItem()))

	count, err := s.ItemCount(ctx, "batch-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	restored, err := s.LoadSnapshot(ctx, "idea-1")
	require.NoError(t, err)
	assert.Equal(t, "AI triage assistant", restored.Title)
	assert.Equal(t, model.CategoryPrototype, restored.ContentCategory)
	require.NotNil(t, restored.Evaluation)
	assert.InDelta(t, 7.0, restored.Evaluation.WeightedTotal, 0.001)
	require.NotNil(t, restored.Verification)
	assert.Equal(t, model.VerificationCompleted, restored.Verification.Status)
}

func TestSaveItemResultIsRepeatable(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.CreateBatch(ctx, "batch-1", 1))

	item := completedItem()
	require.NoError(t, s.SaveItemResult(ctx, "batch-1", item))

	item.Evaluation.Scores["novelty"] = model.CriterionScore{Score: 9, Justification: "revised"}
	require.NoError(t, s.SaveItemResult(ctx, "batch-1", item))

	count, err := s.ItemCount(ctx, "batch-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	restored, err := s.LoadSnapshot(ctx, "idea-1")
	require.NoError(t, err)
	assert.Equal(t, 9, restored.Evaluation.Scores["novelty"].Score)
}

func TestSaveFailedItemWithoutStages(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.CreateBatch(ctx, "batch-1", 1))

	failed := &model.Item{
		ID:     "idea-2",
		Title:  "Broken submission",
		Status: model.ItemFailed,
		Error:  "classification parse failure",
	}
	require.NoError(t, s.SaveItemResult(ctx, "batch-1", failed))

	restored, err := s.LoadSnapshot(ctx, "idea-2")
	require.NoError(t, err)
	assert.Equal(t, model.ItemFailed, restored.Status)
	assert.Equal(t, "classification parse failure", restored.Error)
	assert.Nil(t, restored.Evaluation)
}
