package index

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonwraymond/sitesearch/content"
	"github.com/jonwraymond/sitesearch/scoring"
)

// MaxShortDescriptionLen bounds Summary.ShortDescription.
const MaxShortDescriptionLen = 120

// Error values for index operations.
var (
	ErrNotFound      = errors.New("entry not found")
	ErrInvalidCursor = errors.New("invalid cursor")
	ErrNilCatalog    = errors.New("catalog is required")
)

// Summary is the lightweight view of an entry used for listings.
type Summary struct {
	ID               int    `json:"id"`
	Title            string `json:"title"`
	Category         string `json:"category,omitempty"`
	URL              string `json:"url"`
	ShortDescription string `json:"shortDescription,omitempty"`
	Featured         bool   `json:"featured,omitempty"`
}

// SearchDoc is the searchable form of an entry handed to a Searcher.
type SearchDoc struct {
	ID int
	// DocText is the lowercased concatenation of every searchable field.
	DocText string
	Entry   content.Entry
}

// Match is one ranked hit produced by a Searcher.
type Match struct {
	ID            int
	Score         float64
	MatchedFields []string
}

// Hit is a Match resolved against the index.
type Hit struct {
	Summary       Summary
	Score         float64
	MatchedFields []string
}

// Searcher ranks docs against a query. Implementations must return at most
// limit matches, never include zero scores, and order equal scores
// deterministically.
type Searcher interface {
	Search(query string, limit int, docs []SearchDoc) ([]Match, error)
}

// IndexOptions configures an InMemoryIndex.
type IndexOptions struct {
	// Searcher ranks entries. If nil, a WeightedSearcher with default
	// weights is used.
	Searcher Searcher
}

// InMemoryIndex is a read-only index over a content catalog.
type InMemoryIndex struct {
	catalog  *content.Catalog
	docs     []SearchDoc
	byID     map[int]int
	searcher Searcher
}

// NewInMemoryIndex builds an index over cat.
func NewInMemoryIndex(cat *content.Catalog, opts ...IndexOptions) (*InMemoryIndex, error) {
	if cat == nil {
		return nil, ErrNilCatalog
	}
	var o IndexOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.Searcher == nil {
		o.Searcher = NewWeightedSearcher(scoring.Engine{})
	}

	entries := cat.Entries()
	idx := &InMemoryIndex{
		catalog:  cat,
		docs:     make([]SearchDoc, len(entries)),
		byID:     make(map[int]int, len(entries)),
		searcher: o.Searcher,
	}
	for i, e := range entries {
		idx.docs[i] = SearchDoc{ID: e.ID, DocText: BuildDocText(e), Entry: e}
		idx.byID[e.ID] = i
	}
	return idx, nil
}

// BuildDocText returns the lowercased search text for an entry.
func BuildDocText(e content.Entry) string {
	parts := make([]string, 0, 3+len(e.Keywords))
	parts = append(parts, e.Title, e.Category, e.Description)
	parts = append(parts, e.Keywords...)
	return strings.ToLower(strings.Join(parts, " "))
}

// SummaryOf builds the summary for an entry.
func SummaryOf(e content.Entry) Summary {
	short := e.Description
	if r := []rune(short); len(r) > MaxShortDescriptionLen {
		short = string(r[:MaxShortDescriptionLen])
	}
	return Summary{
		ID:               e.ID,
		Title:            e.Title,
		Category:         e.Category,
		URL:              e.URL,
		ShortDescription: short,
		Featured:         e.Featured,
	}
}

// Catalog returns the underlying catalog.
func (idx *InMemoryIndex) Catalog() *content.Catalog {
	return idx.catalog
}

// Searcher returns the configured searcher.
func (idx *InMemoryIndex) Searcher() Searcher {
	return idx.searcher
}

// Len returns the number of indexed entries.
func (idx *InMemoryIndex) Len() int {
	return len(idx.docs)
}

// Get returns the full entry for id.
func (idx *InMemoryIndex) Get(id int) (content.Entry, error) {
	i, ok := idx.byID[id]
	if !ok {
		return content.Entry{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return idx.docs[i].Entry.Clone(), nil
}

// List returns summaries of every entry in catalog order.
func (idx *InMemoryIndex) List() []Summary {
	out := make([]Summary, len(idx.docs))
	for i, d := range idx.docs {
		out[i] = SummaryOf(d.Entry)
	}
	return out
}

// Docs returns a copy of the search documents.
func (idx *InMemoryIndex) Docs() []SearchDoc {
	out := make([]SearchDoc, len(idx.docs))
	for i, d := range idx.docs {
		d.Entry = d.Entry.Clone()
		out[i] = d
	}
	return out
}

// Categories returns the distinct categories in catalog order.
func (idx *InMemoryIndex) Categories() []string {
	return idx.catalog.Categories()
}

// Featured returns summaries of featured entries.
func (idx *InMemoryIndex) Featured() []Summary {
	var out []Summary
	for _, d := range idx.docs {
		if d.Entry.Featured {
			out = append(out, SummaryOf(d.Entry))
		}
	}
	return out
}

// Search ranks entries for query, returning at most limit hits.
// An empty query returns no hits.
func (idx *InMemoryIndex) Search(query string, limit int) ([]Hit, error) {
	if limit <= 0 || strings.TrimSpace(query) == "" {
		return []Hit{}, nil
	}
	matches, err := idx.searcher.Search(query, limit, idx.Docs())
	if err != nil {
		return nil, err
	}
	return idx.resolve(matches), nil
}

// SearchPage returns one page of hits and the cursor for the next page.
// The next cursor is empty on the last page.
func (idx *InMemoryIndex) SearchPage(query string, limit int, cursor string) ([]Hit, string, error) {
	offset, err := decodeCursor(cursor)
	if err != nil {
		return nil, "", err
	}
	if limit <= 0 {
		return []Hit{}, "", nil
	}

	// Ask for one extra hit to learn whether another page exists.
	hits, err := idx.Search(query, offset+limit+1)
	if err != nil {
		return nil, "", err
	}
	if offset >= len(hits) {
		return []Hit{}, "", nil
	}
	hits = hits[offset:]
	next := ""
	if len(hits) > limit {
		hits = hits[:limit]
		next = encodeCursor(offset + limit)
	}
	return hits, next, nil
}

func (idx *InMemoryIndex) resolve(matches []Match) []Hit {
	hits := make([]Hit, 0, len(matches))
	for _, m := range matches {
		i, ok := idx.byID[m.ID]
		if !ok {
			continue
		}
		hits = append(hits, Hit{
			Summary:       SummaryOf(idx.docs[i].Entry),
			Score:         m.Score,
			MatchedFields: m.MatchedFields,
		})
	}
	return hits
}

const cursorPrefix = "o:"

func encodeCursor(offset int) string {
	return base64.RawURLEncoding.EncodeToString([]byte(cursorPrefix + strconv.Itoa(offset)))
}

func decodeCursor(cursor string) (int, error) {
	if cursor == "" {
		return 0, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	s, ok := strings.CutPrefix(string(raw), cursorPrefix)
	if !ok {
		return 0, ErrInvalidCursor
	}
	offset, err := strconv.Atoi(s)
	if err != nil || offset < 0 {
		return 0, ErrInvalidCursor
	}
	return offset, nil
}
