package discovery

import (
	"cmp"
	"errors"
	"slices"

	"github.com/jonwraymond/sitesearch/index"
)

// ErrInvalidHybridConfig is returned for an alpha outside [0, 1] or a
// missing component searcher.
var ErrInvalidHybridConfig = errors.New("invalid hybrid search config")

// HybridSearcher blends the weighted rule engine with BM25 full-text
// ranking. Each component's scores are normalized to [0, 1] by its best
// score before blending.
type HybridSearcher struct {
	weighted index.Searcher
	bm25     index.Searcher
	alpha    float64 // weighted share; BM25 gets 1-alpha
}

// HybridOptions configures a HybridSearcher.
type HybridOptions struct {
	// Weighted is the rule-based searcher. Required.
	Weighted index.Searcher
	// BM25 is the full-text searcher. Required.
	BM25 index.Searcher
	// Alpha is the weighted share (0.0 to 1.0).
	Alpha float64
}

// NewHybridSearcher creates a hybrid searcher.
func NewHybridSearcher(opts HybridOptions) (*HybridSearcher, error) {
	if opts.Weighted == nil || opts.BM25 == nil {
		return nil, ErrInvalidHybridConfig
	}
	if opts.Alpha < 0 || opts.Alpha > 1 {
		return nil, ErrInvalidHybridConfig
	}
	return &HybridSearcher{
		weighted: opts.Weighted,
		bm25:     opts.BM25,
		alpha:    opts.Alpha,
	}, nil
}

// Search implements index.Searcher using hybrid scoring.
func (h *HybridSearcher) Search(query string, limit int, docs []index.SearchDoc) ([]index.Match, error) {
	if limit <= 0 || len(docs) == 0 {
		return []index.Match{}, nil
	}

	// Both components rank the whole set so blending sees every candidate.
	weighted, err := h.weighted.Search(query, len(docs), docs)
	if err != nil {
		return nil, err
	}
	bm25, err := h.bm25.Search(query, len(docs), docs)
	if err != nil {
		return nil, err
	}

	type blended struct {
		score  float64
		fields []string
	}
	byID := make(map[int]*blended)
	add := func(matches []index.Match, share float64) {
		top := maxScore(matches)
		if top <= 0 {
			return
		}
		for _, m := range matches {
			b, ok := byID[m.ID]
			if !ok {
				b = &blended{}
				byID[m.ID] = b
			}
			b.score += share * (m.Score / top)
			for _, f := range m.MatchedFields {
				if !slices.Contains(b.fields, f) {
					b.fields = append(b.fields, f)
				}
			}
		}
	}
	add(weighted, h.alpha)
	add(bm25, 1-h.alpha)

	out := make([]index.Match, 0, len(byID))
	for id, b := range byID {
		if b.score > 0 {
			out = append(out, index.Match{ID: id, Score: b.score, MatchedFields: b.fields})
		}
	}
	sortMatches(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Alpha returns the weighted share.
func (h *HybridSearcher) Alpha() float64 {
	return h.alpha
}

// Deterministic reports whether this searcher provides deterministic ordering.
func (h *HybridSearcher) Deterministic() bool {
	return true
}

func maxScore(matches []index.Match) float64 {
	top := 0.0
	for _, m := range matches {
		top = max(top, m.Score)
	}
	return top
}

// sortMatches sorts by score descending, then by ID ascending for determinism.
func sortMatches(matches []index.Match) {
	slices.SortFunc(matches, func(a, b index.Match) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
