package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgeworks/idea-forge/internal/model"
)

func twoCriterionRubric() model.Rubric {
	return model.Rubric{Criteria: []model.Criterion{
		{Name: "Novelty", Weight: 0.5},
		{Name: "Feasibility", Weight: 0.5},
	}}
}

func longNarratives() []string {
	long := "This submission describes a complete working system with enough detail to evaluate every aspect of it carefully."
	return []string{long, long}
}

func record(novelty, feasibility int, reported float64) model.ScoreRecord {
	return model.ScoreRecord{
		Scores: map[model.CriterionKey]model.CriterionScore{
			"novelty":     {Score: novelty, Justification: "reasoned"},
			"feasibility": {Score: feasibility, Justification: "reasoned"},
		},
		Recommendation: model.RecommendConsider,
		ReportedTotal:  reported,
	}
}

func TestVerifyAccurateTextItem(t *testing.T) {
	v := New(twoCriterionRubric())

	report := v.Verify(record(8, 6, 7.00), model.CategoryText, longNarratives())

	assert.Equal(t, model.VerificationCompleted, report.Status)
	assert.Equal(t, 4, report.ChecksPassed)
	assert.Equal(t, 0, report.ChecksFailed)
	assert.Empty(t, report.Warnings)
	assert.InDelta(t, 7.00, report.WeightedScore.ManualTotal, 0.001)
	assert.InDelta(t, 0.00, report.WeightedScore.Difference, 0.001)
	assert.True(t, report.WeightedScore.IsAccurate)
	assert.InDelta(t, 0.0, report.WeightedScore.BonusApplied, 0.001)
}

func TestVerifyPrototypeBonusSubtracted(t *testing.T) {
	v := New(twoCriterionRubric())

	report := v.Verify(record(8, 6, 9.00), model.CategoryPrototype, longNarratives())

	assert.Equal(t, model.VerificationCompleted, report.Status)
	assert.InDelta(t, 2.0, report.WeightedScore.BonusApplied, 0.001)
	assert.InDelta(t, 0.00, report.WeightedScore.Difference, 0.001)
	assert.True(t, report.WeightedScore.IsAccurate)
}

func TestVerifyTextItemGetsNoBonus(t *testing.T) {
	v := New(twoCriterionRubric())

	report := v.Verify(record(8, 6, 9.00), model.CategoryText, longNarratives())

	assert.InDelta(t, 0.0, report.WeightedScore.BonusApplied, 0.001)
	assert.InDelta(t, 2.00, report.WeightedScore.Difference, 0.001)
	assert.False(t, report.WeightedScore.IsAccurate)
	assert.Equal(t, model.CheckWarning, report.WeightedScore.Status)
	// Arithmetic disagreement warns but never fails the item.
	assert.Equal(t, model.VerificationCompleted, report.Status)
	assert.NotEmpty(t, report.Warnings)
}

func TestVerifyHallucinationWarning(t *testing.T) {
	v := New(twoCriterionRubric())
	rec := record(9, 6, 7.50)

	report := v.Verify(rec, model.CategoryText, []string{"Simple Test Idea", "A basic idea"})

	assert.Equal(t, model.CheckWarning, report.Hallucination.Status)
	assert.False(t, report.Hallucination.IsHallucinationFree)
	require.Len(t, report.Hallucination.Suspicions, 1)
	assert.Contains(t, report.Hallucination.Suspicions[0], "novelty")
	assert.Equal(t, model.VerificationCompleted, report.Status)
}

func TestVerifyHallucinationSuppressedByInsufficientInfoFlag(t *testing.T) {
	v := New(twoCriterionRubric())
	rec := record(9, 6, 7.50)
	rec.Scores["novelty"] = model.CriterionScore{Score: 9, InsufficientInfo: true}

	report := v.Verify(rec, model.CategoryText, []string{"Simple Test Idea", "A basic idea"})

	assert.True(t, report.Hallucination.IsHallucinationFree)
	assert.Equal(t, model.CheckPassed, report.Hallucination.Status)
}

func TestVerifyHallucinationSkippedWithRealNarratives(t *testing.T) {
	v := New(twoCriterionRubric())

	report := v.Verify(record(9, 8, 8.50), model.CategoryText, longNarratives())

	assert.True(t, report.Hallucination.IsHallucinationFree)
}

func TestVerifyMissingCriterionFailsCoverage(t *testing.T) {
	v := New(model.Rubric{Criteria: []model.Criterion{
		{Name: "Novelty", Weight: 0.5},
		{Name: "Clarity", Weight: 0.5},
	}})

	rec := model.ScoreRecord{
		Scores: map[model.CriterionKey]model.CriterionScore{
			"novelty": {Score: 8, Justification: "ok"},
		},
		Recommendation: model.RecommendInvest,
		ReportedTotal:  4.0,
	}

	report := v.Verify(rec, model.CategoryText, longNarratives())

	assert.Equal(t, model.CheckFailed, report.Coverage.Status)
	assert.Equal(t, []model.CriterionKey{"clarity"}, report.Coverage.MissingCriteria)
	assert.Equal(t, 1, report.Coverage.MatchedCriteria)
	assert.Equal(t, 2, report.Coverage.RequiredCriteria)
	assert.Equal(t, model.VerificationFailed, report.Status)
	// Partial matching loosens the arithmetic tolerance.
	assert.InDelta(t, 2.5, report.WeightedScore.Tolerance, 0.001)
}

func TestVerifyStructureFailures(t *testing.T) {
	v := New(twoCriterionRubric())

	t.Run("missing recommendation", func(t *testing.T) {
		rec := record(8, 6, 7.0)
		rec.Recommendation = ""

		report := v.Verify(rec, model.CategoryText, longNarratives())

		assert.Equal(t, model.CheckFailed, report.Structure.Status)
		assert.Equal(t, model.VerificationFailed, report.Status)
	})

	t.Run("score out of range", func(t *testing.T) {
		rec := record(11, 6, 8.5)

		report := v.Verify(rec, model.CategoryText, longNarratives())

		assert.Equal(t, model.CheckFailed, report.Structure.Status)
		require.Len(t, report.Structure.Problems, 1)
		assert.Contains(t, report.Structure.Problems[0], "novelty")
	})

	t.Run("empty scores", func(t *testing.T) {
		rec := model.ScoreRecord{Recommendation: model.RecommendConsider}

		report := v.Verify(rec, model.CategoryText, longNarratives())

		assert.Equal(t, model.CheckFailed, report.Structure.Status)
	})
}
