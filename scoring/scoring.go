// Package scoring ranks site entries against a free-text query using
// additive, weighted substring rules.
//
// The whole query is matched against each field first; then each
// whitespace token longer than two characters is matched independently.
// Both contributions stack. Entries scoring zero are dropped, the rest are
// stable-sorted by descending score and capped.
//
// Search is a pure function: nothing is cached between calls.
package scoring

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/jonwraymond/sitesearch/content"
)

// MaxResults is the default cap on returned entries.
const MaxResults = 8

// minTokenLen is the shortest token that takes part in per-token scoring.
const minTokenLen = 3

// Field tags recorded in ScoredEntry.MatchedFields.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldCategory    = "category"
	keywordPrefix    = "keyword:"
)

// KeywordField returns the matched-field tag for a keyword.
func KeywordField(keyword string) string {
	return keywordPrefix + keyword
}

// Weights are the points awarded per rule.
type Weights struct {
	Title       int
	Featured    int
	Description int
	Category    int
	Keyword     int

	TokenTitle       int
	TokenDescription int
	TokenKeyword     int
	TokenCategory    int
}

// DefaultWeights returns the site's ranking weights.
func DefaultWeights() Weights {
	return Weights{
		Title:       20,
		Featured:    5,
		Description: 8,
		Category:    6,
		Keyword:     3,

		TokenTitle:       4,
		TokenDescription: 2,
		TokenKeyword:     3,
		TokenCategory:    3,
	}
}

// ScoredEntry is an entry with its relevance for one query.
type ScoredEntry struct {
	content.Entry
	Score         int
	MatchedFields []string
}

// Engine scores entries with configurable weights and result cap.
// The zero value uses DefaultWeights and MaxResults.
type Engine struct {
	Weights    *Weights
	MaxResults int
}

// Search ranks entries against query with the default engine.
func Search(query string, entries []content.Entry) []ScoredEntry {
	return Engine{}.Search(query, entries)
}

// Search ranks entries against query. An empty or whitespace-only query
// yields an empty, non-nil slice.
func (eng Engine) Search(query string, entries []content.Entry) []ScoredEntry {
	q := normalize(query)
	if q == "" {
		return []ScoredEntry{}
	}
	w := eng.weights()
	tokens := tokenize(q)

	out := make([]ScoredEntry, 0, len(entries))
	for _, e := range entries {
		s := score(w, q, tokens, e)
		if s.Score > 0 {
			out = append(out, s)
		}
	}

	slices.SortStableFunc(out, func(a, b ScoredEntry) int {
		return b.Score - a.Score
	})

	limit := eng.MaxResults
	if limit <= 0 {
		limit = MaxResults
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ScoreEntry scores a single entry. The result may have a zero score.
func (eng Engine) ScoreEntry(query string, e content.Entry) ScoredEntry {
	q := normalize(query)
	if q == "" {
		return ScoredEntry{Entry: e.Clone()}
	}
	return score(eng.weights(), q, tokenize(q), e)
}

func (eng Engine) weights() Weights {
	if eng.Weights != nil {
		return *eng.Weights
	}
	return DefaultWeights()
}

// score applies every rule. q and tokens are already lowercased.
func score(w Weights, q string, tokens []string, e content.Entry) ScoredEntry {
	title := strings.ToLower(e.Title)
	desc := strings.ToLower(e.Description)
	cat := strings.ToLower(e.Category)
	keywords := make([]string, len(e.Keywords))
	for i, k := range e.Keywords {
		keywords[i] = strings.ToLower(k)
	}

	var m matches

	if strings.Contains(title, q) {
		m.add(w.Title, FieldTitle)
	}
	if strings.Contains(desc, q) {
		m.add(w.Description, FieldDescription)
	}
	if strings.Contains(cat, q) {
		m.add(w.Category, FieldCategory)
	}
	for i, k := range keywords {
		if strings.Contains(k, q) {
			m.add(w.Keyword, KeywordField(e.Keywords[i]))
		}
	}

	for _, tok := range tokens {
		if strings.Contains(title, tok) {
			m.add(w.TokenTitle, FieldTitle)
		}
		if strings.Contains(desc, tok) {
			m.add(w.TokenDescription, FieldDescription)
		}
		// One award per token, however many keywords contain it.
		for i, k := range keywords {
			if strings.Contains(k, tok) {
				m.add(w.TokenKeyword, KeywordField(e.Keywords[i]))
				break
			}
		}
		if strings.Contains(cat, tok) {
			m.add(w.TokenCategory, FieldCategory)
		}
	}

	// The featured bonus only lifts entries that matched something.
	if m.score > 0 && e.Featured {
		m.score += w.Featured
	}

	return ScoredEntry{
		Entry:         e.Clone(),
		Score:         m.score,
		MatchedFields: m.fields,
	}
}

type matches struct {
	score  int
	fields []string
}

func (m *matches) add(points int, field string) {
	if points <= 0 {
		return
	}
	m.score += points
	if !slices.Contains(m.fields, field) {
		m.fields = append(m.fields, field)
	}
}

func normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

func tokenize(q string) []string {
	fields := strings.Fields(q)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) < minTokenLen {
			continue
		}
		out = append(out, f)
	}
	return out
}
