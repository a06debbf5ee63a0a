package index

import (
	"github.com/jonwraymond/sitesearch/content"
	"github.com/jonwraymond/sitesearch/scoring"
)

// WeightedSearcher adapts the scoring engine to the Searcher interface.
type WeightedSearcher struct {
	engine scoring.Engine
}

// NewWeightedSearcher returns a searcher backed by eng. The engine's
// MaxResults is replaced by the limit of each call.
func NewWeightedSearcher(eng scoring.Engine) *WeightedSearcher {
	return &WeightedSearcher{engine: eng}
}

// Search implements Searcher.
func (s *WeightedSearcher) Search(query string, limit int, docs []SearchDoc) ([]Match, error) {
	if limit <= 0 {
		return []Match{}, nil
	}
	entries := make([]content.Entry, len(docs))
	for i, d := range docs {
		entries[i] = d.Entry
	}

	eng := s.engine
	eng.MaxResults = limit
	scored := eng.Search(query, entries)

	out := make([]Match, len(scored))
	for i, se := range scored {
		out[i] = Match{
			ID:            se.ID,
			Score:         float64(se.Score),
			MatchedFields: se.MatchedFields,
		}
	}
	return out, nil
}

// Deterministic reports whether this searcher provides deterministic ordering.
func (s *WeightedSearcher) Deterministic() bool {
	return true
}
