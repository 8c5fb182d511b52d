// Package verify runs consistency checks over a completed score record.
//
// Verification never throws: it always returns a report. Only rubric
// coverage and structural validity can mark an item failed; the
// hallucination heuristic and weighted-score disagreement only warn.
package verify

import (
	"fmt"
	"math"

	"github.com/forgeworks/idea-forge/internal/model"
)

const (
	// PrototypeBonus is the fixed additive adjustment the scoring model
	// is allowed to fold into its reported total for prototype items.
	PrototypeBonus = 2.0

	// toleranceStrict applies when every rubric criterion matched a
	// scored entry, so the arithmetic is fully checkable.
	toleranceStrict = 0.1

	// toleranceLoose applies when criterion matching was incomplete and
	// the manual total is only a partial reconstruction.
	toleranceLoose = 2.5

	// minNarrativeLen is the per-field length below which an item counts
	// as having minimal source text.
	minNarrativeLen = 80

	// confidentScore is the threshold above which a score on a minimal
	// item needs an insufficient-info flag to escape suspicion.
	confidentScore = 7
)

// Verifier checks score records against a fixed rubric.
type Verifier struct {
	rubric model.Rubric
}

// New creates a verifier for one batch's rubric.
func New(rubric model.Rubric) *Verifier {
	return &Verifier{rubric: rubric}
}

// Verify runs all checks over one item's score record. The narratives
// argument is the item's free-text fields plus extracted file content.
func (v *Verifier) Verify(record model.ScoreRecord, category model.ContentCategory, narratives []string) model.VerificationReport {
	report := model.VerificationReport{
		Status:   model.VerificationCompleted,
		Warnings: []string{},
	}

	report.Coverage = v.checkCoverage(record)
	report.Structure = v.checkStructure(record)
	report.Hallucination = v.checkHallucination(record, narratives)
	report.WeightedScore = v.checkWeightedScore(record, category, report.Coverage)

	for _, status := range []model.CheckStatus{
		report.Coverage.Status,
		report.Structure.Status,
		report.Hallucination.Status,
		report.WeightedScore.Status,
	} {
		switch status {
		case model.CheckPassed:
			report.ChecksPassed++
		case model.CheckFailed:
			report.ChecksFailed++
			report.Status = model.VerificationFailed
		}
	}

	for _, s := range report.Hallucination.Suspicions {
		report.Warnings = append(report.Warnings, s)
	}
	if report.WeightedScore.Status == model.CheckWarning {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("weighted total off by %.2f (tolerance %.2f)",
				report.WeightedScore.Difference, report.WeightedScore.Tolerance))
	}

	return report
}

// checkCoverage requires every rubric criterion, by normalized key, to
// appear among the scored criteria.
func (v *Verifier) checkCoverage(record model.ScoreRecord) model.CoverageCheck {
	check := model.CoverageCheck{
		Status:           model.CheckPassed,
		MissingCriteria:  []model.CriterionKey{},
		RequiredCriteria: len(v.rubric.Criteria),
	}

	for _, key := range v.rubric.Keys() {
		if _, ok := record.Scores[key]; ok {
			check.MatchedCriteria++
		} else {
			check.MissingCriteria = append(check.MissingCriteria, key)
		}
	}

	if len(check.MissingCriteria) > 0 {
		check.Status = model.CheckFailed
	}

	return check
}

// checkStructure requires the top-level fields to be present and every
// criterion score to be in range.
func (v *Verifier) checkStructure(record model.ScoreRecord) model.StructureCheck {
	check := model.StructureCheck{
		Status:   model.CheckPassed,
		Problems: []string{},
	}

	if len(record.Scores) == 0 {
		check.Problems = append(check.Problems, "no criterion scores present")
	}
	if record.Recommendation == "" {
		check.Problems = append(check.Problems, "missing investment recommendation")
	}
	for key, cs := range record.Scores {
		if cs.Score < 1 || cs.Score > 10 {
			check.Problems = append(check.Problems,
				fmt.Sprintf("%s score %d out of range [1,10]", key, cs.Score))
		}
	}

	if len(check.Problems) > 0 {
		check.Status = model.CheckFailed
	}

	return check
}

// checkHallucination flags confident scores on items with almost no
// source text. Warning only; it never fails an item.
func (v *Verifier) checkHallucination(record model.ScoreRecord, narratives []string) model.HallucinationCheck {
	check := model.HallucinationCheck{
		Status:              model.CheckPassed,
		IsHallucinationFree: true,
		Suspicions:          []string{},
	}

	for _, field := range narratives {
		if len(field) >= minNarrativeLen {
			return check
		}
	}

	for _, key := range v.rubric.Keys() {
		cs, ok := record.Scores[key]
		if !ok {
			continue
		}
		if cs.Score > confidentScore && !cs.InsufficientInfo {
			check.Suspicions = append(check.Suspicions,
				fmt.Sprintf("%s scored %d/10 despite minimal source text", key, cs.Score))
		}
	}

	if len(check.Suspicions) > 0 {
		check.Status = model.CheckWarning
		check.IsHallucinationFree = false
	}

	return check
}

// checkWeightedScore recomputes the weighted total and compares it to the
// model's reported total, net of the prototype bonus. Disagreement warns
// rather than fails; the recomputed total is authoritative downstream
// either way.
func (v *Verifier) checkWeightedScore(record model.ScoreRecord, category model.ContentCategory, coverage model.CoverageCheck) model.WeightedScoreCheck {
	manual := v.rubric.RecomputeTotal(record.Scores)

	bonus := 0.0
	if category == model.CategoryPrototype {
		bonus = PrototypeBonus
	}

	tolerance := toleranceLoose
	if coverage.MatchedCriteria == coverage.RequiredCriteria {
		tolerance = toleranceStrict
	}

	difference := math.Abs(manual - (record.ReportedTotal - bonus))

	check := model.WeightedScoreCheck{
		Status:        model.CheckPassed,
		ManualTotal:   manual,
		ReportedTotal: record.ReportedTotal,
		BonusApplied:  bonus,
		Difference:    math.Round(difference*100) / 100,
		Tolerance:     tolerance,
		IsAccurate:    difference < tolerance,
	}

	if !check.IsAccurate {
		check.Status = model.CheckWarning
	}

	return check
}
