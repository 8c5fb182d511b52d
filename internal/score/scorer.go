// Package score evaluates a submission against a weighted rubric with a
// single structured inference call.
//
// Scoring is deliberately lenient about response shape: criteria may
// arrive under a "scores" or "criteria" wrapper or at the top level, and
// criterion names are matched after normalization. A response that cannot
// be parsed at all degrades to a mid-point fallback record rather than
// failing the item, so a batch never loses a submission to one malformed
// response.
package score

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/forgeworks/idea-forge/internal/common"
	"github.com/forgeworks/idea-forge/internal/llm"
	"github.com/forgeworks/idea-forge/internal/model"
)

const systemPrompt = "You are an expert evaluator for a hackathon."

const midScore = 5

// Scorer evaluates items against a rubric.
type Scorer struct {
	client    llm.Client
	logger    *slog.Logger
	retryOpts common.RetryOptions
}

// New creates a scorer.
func New(client llm.Client, logger *slog.Logger, retryOpts common.RetryOptions) *Scorer {
	return &Scorer{client: client, logger: logger, retryOpts: retryOpts}
}

// Score evaluates one item. The returned record's WeightedTotal is always
// recomputed from the individual scores and the rubric weights; the
// model's own arithmetic is kept only as ReportedTotal.
func (s *Scorer) Score(ctx context.Context, item *model.Item, rubric model.Rubric) (model.ScoreRecord, error) {
	if len(rubric.Criteria) == 0 {
		return model.ScoreRecord{}, common.ErrEmptyRubric
	}

	prompt := buildPrompt(item, rubric)

	var response string
	err := common.WithRetry(ctx, func() error {
		var callErr error
		response, callErr = s.client.GenerateStructured(ctx, llm.Request{
			System: systemPrompt,
			Prompt: prompt,
		})
		return callErr
	}, s.retryOpts)
	if err != nil {
		return model.ScoreRecord{}, fmt.Errorf("evaluation call failed: %w", err)
	}

	record, err := parseRecord(response, rubric)
	if err != nil {
		s.logger.Error("failed to parse evaluation response, using fallback scores",
			"idea_id", item.ID,
			"error", err)
		record = fallbackRecord(rubric)
	}

	record.WeightedTotal = rubric.RecomputeTotal(record.Scores)

	return record, nil
}

// buildPrompt renders the rubric with exact weights and the explicit
// weighted-total formula, then the item fields and extracted content.
func buildPrompt(item *model.Item, rubric model.Rubric) string {
	var b strings.Builder

	b.WriteString("Please evaluate the following idea based on the provided rubrics.\n\n")
	b.WriteString("RUBRICS AND WEIGHTS (score each criterion 1-10, then use exact weights below):\n")
	for _, criterion := range rubric.Criteria {
		fmt.Fprintf(&b, "- %s: Weight = %g (%.1f%%)\n",
			criterion.Key().DisplayName(), criterion.Weight, criterion.Weight*100)
		if criterion.Description != "" {
			fmt.Fprintf(&b, "  %s\n", criterion.Description)
		}
	}

	b.WriteString("\nIMPORTANT - WEIGHTED TOTAL CALCULATION:\nweighted_total = ")
	terms := make([]string, 0, len(rubric.Criteria))
	for _, criterion := range rubric.Criteria {
		terms = append(terms, fmt.Sprintf("(%g x %s_score)", criterion.Weight, criterion.Key()))
	}
	b.WriteString(strings.Join(terms, " + "))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Idea Details:\nTitle: %s\nSummary: %s\nChallenge/Opportunity: %s\nNovelty/Benefits/Risks: %s\n",
		truncate(item.Title, 500),
		truncate(item.Summary, 2000),
		truncate(item.Challenge, 2000),
		truncate(item.Novelty, 2000))

	theme, industry, technologies := "Not classified", "Not classified", ""
	if item.Classification != nil {
		theme = orDefault(item.Classification.PrimaryTheme, theme)
		industry = orDefault(item.Classification.IndustryName, industry)
		technologies = strings.Join(item.Classification.Technologies, ", ")
	}
	fmt.Fprintf(&b, "Primary Theme: %s\nIndustry: %s\nTechnologies: %s\n",
		theme, industry, truncate(technologies, 500))

	fmt.Fprintf(&b, "\nExtracted Content from Files:\n%s\n", truncate(item.ExtractedContent, 5000))

	b.WriteString(`
Respond with a single JSON object:
{
  "scores": {
    "<criterion_key>": {
      "score": <1-10>,
      "justification": "<1-2 sentences>",
      "insufficient_info": <true if the submission lacks the information to judge this criterion>
    },
    ...one entry per criterion above...
  },
  "weighted_total": <the weighted sum>,
  "investment_recommendation": "invest" | "consider-with-mitigations" | "do-not-invest",
  "key_strengths": ["...", ...],
  "key_concerns": ["...", ...]
}`)

	return b.String()
}

// parseRecord decodes an evaluation response, tolerating the criterion
// entries living under "scores", "criteria", or at the top level.
func parseRecord(response string, rubric model.Rubric) (model.ScoreRecord, error) {
	obj, err := llm.DecodeObject(response)
	if err != nil {
		return model.ScoreRecord{}, err
	}

	entries := obj
	for _, wrapper := range []string{"scores", "criteria"} {
		if nested, ok := obj[wrapper].(map[string]any); ok {
			entries = nested
			break
		}
	}

	scores := make(map[model.CriterionKey]model.CriterionScore)
	for rawKey, rawEntry := range entries {
		entry, ok := rawEntry.(map[string]any)
		if !ok {
			continue
		}
		key := model.NormalizeCriterion(rawKey)
		if _, known := rubric.Lookup(key); !known {
			continue
		}
		scores[key] = model.CriterionScore{
			Score:            int(llm.Float(entry, "score")),
			Justification:    llm.String(entry, "justification"),
			InsufficientInfo: boolField(entry, "insufficient_info"),
		}
	}

	if len(scores) == 0 {
		return model.ScoreRecord{}, fmt.Errorf("response contains no recognizable criterion scores")
	}

	return model.ScoreRecord{
		Scores:         scores,
		KeyStrengths:   llm.StringList(obj, "key_strengths"),
		KeyConcerns:    llm.StringList(obj, "key_concerns"),
		Recommendation: recommendation(llm.String(obj, "investment_recommendation")),
		ReportedTotal:  llm.Float(obj, "weighted_total"),
	}, nil
}

// fallbackRecord gives every criterion the mid score with an explicit
// insufficient-info marker so downstream verification flags it rather
// than the batch losing the item.
func fallbackRecord(rubric model.Rubric) model.ScoreRecord {
	scores := make(map[model.CriterionKey]model.CriterionScore, len(rubric.Criteria))
	for _, criterion := range rubric.Criteria {
		scores[criterion.Key()] = model.CriterionScore{
			Score:            midScore,
			Justification:    "Parsing failed",
			InsufficientInfo: true,
		}
	}

	return model.ScoreRecord{
		Scores:         scores,
		KeyStrengths:   []string{},
		KeyConcerns:    []string{"Evaluation parsing failed"},
		Recommendation: model.RecommendConsider,
		ParseFallback:  true,
	}
}

func recommendation(raw string) model.Recommendation {
	switch model.Recommendation(strings.ToLower(strings.TrimSpace(raw))) {
	case model.RecommendInvest:
		return model.RecommendInvest
	case model.RecommendDecline:
		return model.RecommendDecline
	default:
		return model.RecommendConsider
	}
}

func boolField(obj map[string]any, key string) bool {
	v, _ := obj[key].(bool)
	return v
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// truncate clips s to at most limit bytes without splitting a rune.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
