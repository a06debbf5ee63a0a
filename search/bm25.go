package search

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/jonwraymond/sitesearch/index"
	"github.com/jonwraymond/sitesearch/scoring"
)

// Indexed field names.
const (
	fieldTitle       = "title"
	fieldCategory    = "category"
	fieldDescription = "description"
	fieldKeywords    = "keywords"
)

// BM25Config configures field boosts and safety limits.
// Zero values select the defaults.
type BM25Config struct {
	// TitleBoost weights title matches. Default: 3.
	TitleBoost float64
	// CategoryBoost weights category matches. Default: 2.
	CategoryBoost float64
	// KeywordsBoost weights keyword matches. Default: 2.
	KeywordsBoost float64

	// MaxDocs limits how many documents are indexed (0 = unlimited).
	MaxDocs int
	// MaxDocTextLen truncates descriptions to this many runes (0 = unlimited).
	MaxDocTextLen int
}

func (c BM25Config) withDefaults() BM25Config {
	if c.TitleBoost <= 0 {
		c.TitleBoost = 3
	}
	if c.CategoryBoost <= 0 {
		c.CategoryBoost = 2
	}
	if c.KeywordsBoost <= 0 {
		c.KeywordsBoost = 2
	}
	return c
}

// BM25Searcher ranks entries with bleve's BM25-style scoring.
// It implements index.Searcher and is safe for concurrent use.
type BM25Searcher struct {
	cfg BM25Config

	mu          sync.RWMutex
	idx         bleve.Index
	fingerprint string
	docs        map[int]index.SearchDoc
	closed      bool
}

// NewBM25Searcher creates a searcher with the given configuration.
func NewBM25Searcher(cfg BM25Config) *BM25Searcher {
	return &BM25Searcher{cfg: cfg.withDefaults()}
}

type bleveDoc struct {
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
}

// Search implements index.Searcher. Results are ordered by score
// descending, then ID ascending.
func (s *BM25Searcher) Search(q string, limit int, docs []index.SearchDoc) ([]index.Match, error) {
	q = strings.TrimSpace(q)
	if limit <= 0 || q == "" || len(docs) == 0 {
		return []index.Match{}, nil
	}
	if s.cfg.MaxDocs > 0 && len(docs) > s.cfg.MaxDocs {
		docs = docs[:s.cfg.MaxDocs]
	}
	fp := computeFingerprint(docs)

	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return nil, ErrClosed
	}
	if s.idx != nil && s.fingerprint == fp {
		defer s.mu.RUnlock()
		return s.query(q, limit)
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	if s.idx == nil || s.fingerprint != fp {
		if err := s.rebuild(docs, fp); err != nil {
			return nil, err
		}
	}
	return s.query(q, limit)
}

// Close releases the underlying bleve index.
func (s *BM25Searcher) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.idx == nil {
		return nil
	}
	err := s.idx.Close()
	s.idx = nil
	s.fingerprint = ""
	return err
}

// Deterministic reports whether this searcher provides deterministic ordering.
func (s *BM25Searcher) Deterministic() bool {
	return true
}

// rebuild replaces the bleve index. Caller holds the write lock.
func (s *BM25Searcher) rebuild(docs []index.SearchDoc, fp string) error {
	if s.idx != nil {
		_ = s.idx.Close()
		s.idx = nil
	}

	bi, err := bleve.NewMemOnly(buildMapping())
	if err != nil {
		return fmt.Errorf("create bleve index: %w", err)
	}

	byID := make(map[int]index.SearchDoc, len(docs))
	batch := bi.NewBatch()
	for _, d := range docs {
		desc := d.Entry.Description
		if s.cfg.MaxDocTextLen > 0 {
			if r := []rune(desc); len(r) > s.cfg.MaxDocTextLen {
				desc = string(r[:s.cfg.MaxDocTextLen])
			}
		}
		err := batch.Index(strconv.Itoa(d.ID), bleveDoc{
			Title:       d.Entry.Title,
			Category:    d.Entry.Category,
			Description: desc,
			Keywords:    d.Entry.Keywords,
		})
		if err != nil {
			_ = bi.Close()
			return fmt.Errorf("index doc %d: %w", d.ID, err)
		}
		byID[d.ID] = d
	}
	if err := bi.Batch(batch); err != nil {
		_ = bi.Close()
		return fmt.Errorf("index batch: %w", err)
	}

	s.idx = bi
	s.fingerprint = fp
	s.docs = byID
	return nil
}

func buildMapping() mapping.IndexMapping {
	text := bleve.NewTextFieldMapping()
	text.Store = false
	text.IncludeTermVectors = true

	doc := bleve.NewDocumentMapping()
	for _, f := range []string{fieldTitle, fieldCategory, fieldDescription, fieldKeywords} {
		doc.AddFieldMappingsAt(f, text)
	}

	im := bleve.NewIndexMapping()
	im.DefaultMapping = doc
	return im
}

// query runs q against the current index. Caller holds a lock.
func (s *BM25Searcher) query(q string, limit int) ([]index.Match, error) {
	boosts := map[string]float64{
		fieldTitle:       s.cfg.TitleBoost,
		fieldCategory:    s.cfg.CategoryBoost,
		fieldDescription: 1,
		fieldKeywords:    s.cfg.KeywordsBoost,
	}
	clauses := make([]query.Query, 0, len(boosts))
	for _, f := range []string{fieldTitle, fieldCategory, fieldDescription, fieldKeywords} {
		mq := bleve.NewMatchQuery(q)
		mq.SetField(f)
		mq.SetBoost(boosts[f])
		clauses = append(clauses, mq)
	}

	// Every document is requested so ties can be broken by ID before the cut.
	req := bleve.NewSearchRequestOptions(bleve.NewDisjunctionQuery(clauses...), len(s.docs), 0, false)
	req.IncludeLocations = true
	res, err := s.idx.Search(req)
	if err != nil {
		return nil, fmt.Errorf("bleve search: %w", err)
	}

	out := make([]index.Match, 0, len(res.Hits))
	for _, hit := range res.Hits {
		if hit.Score <= 0 {
			continue
		}
		id, err := strconv.Atoi(hit.ID)
		if err != nil {
			continue
		}
		doc, ok := s.docs[id]
		if !ok {
			continue
		}
		var fields []string
		for field, terms := range hit.Locations {
			fields = append(fields, matchedFields(field, terms, doc)...)
		}
		slices.Sort(fields)
		fields = slices.Compact(fields)
		out = append(out, index.Match{ID: id, Score: hit.Score, MatchedFields: fields})
	}

	slices.SortFunc(out, func(a, b index.Match) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// matchedFields maps a bleve field hit onto the scoring package's tags.
func matchedFields[V any](field string, terms map[string]V, doc index.SearchDoc) []string {
	switch field {
	case fieldTitle:
		return []string{scoring.FieldTitle}
	case fieldCategory:
		return []string{scoring.FieldCategory}
	case fieldDescription:
		return []string{scoring.FieldDescription}
	case fieldKeywords:
		var out []string
		for _, kw := range doc.Entry.Keywords {
			lower := strings.ToLower(kw)
			for term := range terms {
				if strings.Contains(lower, term) {
					out = append(out, scoring.KeywordField(kw))
					break
				}
			}
		}
		return out
	}
	return nil
}
