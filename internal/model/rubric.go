package model

import (
	"math"
	"strings"
)

// CriterionKey is the normalized identity of a rubric criterion. Caller
// rubrics and model output frequently disagree on casing and spacing, so
// every lookup goes through NormalizeCriterion rather than raw names.
type CriterionKey string

// NormalizeCriterion lowers the name and replaces spaces with underscores.
func NormalizeCriterion(name string) CriterionKey {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, " ", "_")
	return CriterionKey(n)
}

// DisplayName renders a key back into a human-readable criterion name.
func (k CriterionKey) DisplayName() string {
	words := strings.Split(string(k), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Criterion is one named, weighted scoring criterion.
type Criterion struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Weight      float64 `json:"weight"`
}

// Key returns the criterion's normalized lookup key.
func (c Criterion) Key() CriterionKey {
	return NormalizeCriterion(c.Name)
}

// Rubric is the ordered set of criteria supplied once per batch. It is
// immutable during a run.
type Rubric struct {
	Criteria []Criterion
}

// TotalWeight sums all criterion weights. Weights that do not sum to 1.0
// are a caller error, surfaced as a warning at load time, never rejected.
func (r Rubric) TotalWeight() float64 {
	total := 0.0
	for _, c := range r.Criteria {
		total += c.Weight
	}
	return total
}

// Lookup finds a criterion by normalized key.
func (r Rubric) Lookup(key CriterionKey) (Criterion, bool) {
	for _, c := range r.Criteria {
		if c.Key() == key {
			return c, true
		}
	}
	return Criterion{}, false
}

// Keys returns the normalized keys in rubric order.
func (r Rubric) Keys() []CriterionKey {
	keys := make([]CriterionKey, len(r.Criteria))
	for i, c := range r.Criteria {
		keys[i] = c.Key()
	}
	return keys
}

// RecomputeTotal derives the authoritative weighted total from individual
// criterion scores: Σ(weight × score), rounded to 2 decimals. Criteria
// missing from the score set contribute nothing. The model's self-reported
// total is never used for downstream decisions; this value is.
func (r Rubric) RecomputeTotal(scores map[CriterionKey]CriterionScore) float64 {
	total := 0.0
	for _, c := range r.Criteria {
		if entry, ok := scores[c.Key()]; ok {
			total += c.Weight * float64(entry.Score)
		}
	}
	return math.Round(total*100) / 100
}
