package discovery

import (
	"slices"

	"github.com/jonwraymond/sitesearch/index"
)

// ScoreType indicates the source of a search result's score.
type ScoreType string

const (
	// ScoreWeighted indicates the score came from the additive rule engine.
	ScoreWeighted ScoreType = "weighted"

	// ScoreBM25 indicates the score came from BM25 full-text search.
	ScoreBM25 ScoreType = "bm25"

	// ScoreHybrid indicates the score is a weighted combination of both.
	ScoreHybrid ScoreType = "hybrid"
)

// Result represents a unified search result with score details.
type Result struct {
	// Summary contains the entry's listing metadata, including its URL.
	Summary index.Summary `json:"summary"`

	// Score is the relevance score for this result.
	// The score's interpretation depends on ScoreType.
	Score float64 `json:"score"`

	// MatchedFields lists the fields and keyword tags that contributed.
	MatchedFields []string `json:"matchedFields,omitempty"`

	// ScoreType indicates how the Score was computed.
	ScoreType ScoreType `json:"scoreType"`
}

// Results is a slice of Result with helper methods.
type Results []Result

// IDs returns just the entry IDs from the results.
func (r Results) IDs() []int {
	ids := make([]int, len(r))
	for i, result := range r {
		ids[i] = result.Summary.ID
	}
	return ids
}

// Summaries returns just the summaries from the results.
func (r Results) Summaries() []index.Summary {
	summaries := make([]index.Summary, len(r))
	for i, result := range r {
		summaries[i] = result.Summary
	}
	return summaries
}

// FilterByCategory returns results in the given category.
func (r Results) FilterByCategory(category string) Results {
	var filtered Results
	for _, result := range r {
		if result.Summary.Category == category {
			filtered = append(filtered, result)
		}
	}
	return filtered
}

// FilterByMinScore returns results with score >= minScore.
func (r Results) FilterByMinScore(minScore float64) Results {
	var filtered Results
	for _, result := range r {
		if result.Score >= minScore {
			filtered = append(filtered, result)
		}
	}
	return filtered
}

// Clone returns a deep copy of the results.
func (r Results) Clone() Results {
	if r == nil {
		return nil
	}
	out := make(Results, len(r))
	for i, result := range r {
		result.MatchedFields = slices.Clone(result.MatchedFields)
		out[i] = result
	}
	return out
}

func resultsFromHits(hits []index.Hit, st ScoreType) Results {
	results := make(Results, len(hits))
	for i, h := range hits {
		results[i] = Result{
			Summary:       h.Summary,
			Score:         h.Score,
			MatchedFields: h.MatchedFields,
			ScoreType:     st,
		}
	}
	return results
}
