package search_test

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/jonwraymond/sitesearch/content"
	"github.com/jonwraymond/sitesearch/index"
	"github.com/jonwraymond/sitesearch/search"
)

func siteDocs() []index.SearchDoc {
	entries := []content.Entry{
		{ID: 1, Title: "Land Registry Platform", Category: "Platform", Description: "Digital land registration with ownership history", Keywords: []string{"registry", "ownership"}},
		{ID: 2, Title: "Cadastral Mapping Suite", Category: "Mapping", Description: "Parcel boundary capture from satellite imagery", Keywords: []string{"cadastre", "parcels", "satellite"}},
		{ID: 3, Title: "Property Tax Assessment", Category: "Revenue", Description: "Valuation and billing linked to registered parcels", Keywords: []string{"tax", "valuation"}},
		{ID: 4, Title: "Dispute Resolution Workflow", Category: "Governance", Description: "Mediation for boundary disputes", Keywords: []string{"disputes", "mediation"}},
	}
	docs := make([]index.SearchDoc, len(entries))
	for i, e := range entries {
		docs[i] = index.SearchDoc{ID: e.ID, DocText: index.BuildDocText(e), Entry: e}
	}
	return docs
}

func newSearcher(t *testing.T, cfg search.BM25Config) *search.BM25Searcher {
	t.Helper()
	s := search.NewBM25Searcher(cfg)
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Fatalf("close failed: %v", err)
		}
	})
	return s
}

func TestBM25_Basic(t *testing.T) {
	searcher := newSearcher(t, search.BM25Config{})
	docs := siteDocs()

	t.Run("title_match_ranks_first", func(t *testing.T) {
		results, err := searcher.Search("registry", 10, docs)
		if err != nil {
			t.Fatalf("Search error: %v", err)
		}
		if len(results) == 0 {
			t.Fatal("expected results for 'registry'")
		}
		if results[0].ID != 1 {
			t.Errorf("expected entry 1 first, got %d", results[0].ID)
		}
	})

	t.Run("matched_fields", func(t *testing.T) {
		results, err := searcher.Search("parcels", 10, docs)
		if err != nil {
			t.Fatalf("Search error: %v", err)
		}
		if len(results) == 0 || results[0].ID != 2 {
			t.Fatalf("expected entry 2 first, got %+v", results)
		}
		found := false
		for _, f := range results[0].MatchedFields {
			if f == "keyword:parcels" {
				found = true
			}
		}
		if !found {
			t.Errorf("expected keyword:parcels in %v", results[0].MatchedFields)
		}
	})

	t.Run("no_matches", func(t *testing.T) {
		results, err := searcher.Search("terraform", 10, docs)
		if err != nil {
			t.Fatalf("Search error: %v", err)
		}
		if len(results) != 0 {
			t.Errorf("expected 0 results, got %d", len(results))
		}
	})

	t.Run("empty_query", func(t *testing.T) {
		results, err := searcher.Search("   ", 10, docs)
		if err != nil {
			t.Fatalf("Search error: %v", err)
		}
		if len(results) != 0 {
			t.Errorf("expected 0 results, got %d", len(results))
		}
	})

	t.Run("limit", func(t *testing.T) {
		results, err := searcher.Search("boundary parcels registry", 1, docs)
		if err != nil {
			t.Fatalf("Search error: %v", err)
		}
		if len(results) != 1 {
			t.Errorf("expected 1 result, got %d", len(results))
		}
	})
}

func TestBM25_DeterministicTies(t *testing.T) {
	searcher := newSearcher(t, search.BM25Config{})

	var docs []index.SearchDoc
	for i := 5; i >= 1; i-- {
		e := content.Entry{ID: i, Title: "Identical parcel entry"}
		docs = append(docs, index.SearchDoc{ID: i, DocText: index.BuildDocText(e), Entry: e})
	}

	results, err := searcher.Search("parcel", 10, docs)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score == results[i-1].Score && results[i].ID < results[i-1].ID {
			t.Errorf("ties not ordered by ID: %d before %d", results[i-1].ID, results[i].ID)
		}
	}
}

func TestBM25_CustomConfig(t *testing.T) {
	t.Run("max_docs_limit", func(t *testing.T) {
		searcher := newSearcher(t, search.BM25Config{MaxDocs: 2})

		var docs []index.SearchDoc
		for i := range 4 {
			e := content.Entry{ID: i, Title: fmt.Sprintf("keyword entry %d", i)}
			docs = append(docs, index.SearchDoc{ID: i, DocText: index.BuildDocText(e), Entry: e})
		}
		results, err := searcher.Search("keyword", 10, docs)
		if err != nil {
			t.Fatalf("Search error: %v", err)
		}
		if len(results) > 2 {
			t.Errorf("expected at most 2 results (MaxDocs), got %d", len(results))
		}
	})

	t.Run("max_doc_text_len", func(t *testing.T) {
		searcher := newSearcher(t, search.BM25Config{MaxDocTextLen: 50})

		e := content.Entry{ID: 1, Title: "Long", Description: strings.Repeat("padding ", 100) + "uniqueword"}
		docs := []index.SearchDoc{{ID: 1, DocText: index.BuildDocText(e), Entry: e}}

		results, err := searcher.Search("uniqueword", 10, docs)
		if err != nil {
			t.Fatalf("Search error: %v", err)
		}
		if len(results) != 0 {
			t.Errorf("expected truncated word to be unsearchable, got %d results", len(results))
		}
	})
}

func TestBM25_RebuildsOnChange(t *testing.T) {
	searcher := newSearcher(t, search.BM25Config{})
	docs := siteDocs()

	if results, _ := searcher.Search("blockchain", 10, docs); len(results) != 0 {
		t.Fatalf("expected no results before change, got %d", len(results))
	}

	e := content.Entry{ID: 9, Title: "Blockchain Title Verification"}
	docs = append(docs, index.SearchDoc{ID: 9, DocText: index.BuildDocText(e), Entry: e})

	results, err := searcher.Search("blockchain", 10, docs)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(results) != 1 || results[0].ID != 9 {
		t.Errorf("expected new doc after rebuild, got %+v", results)
	}
}

func TestBM25_Concurrent(t *testing.T) {
	searcher := newSearcher(t, search.BM25Config{})
	docs := siteDocs()

	var wg sync.WaitGroup
	for range 8 {
		wg.Go(func() {
			for range 10 {
				if _, err := searcher.Search("parcel boundary", 5, docs); err != nil {
					t.Errorf("Search error: %v", err)
					return
				}
			}
		})
	}
	wg.Wait()
}

func TestBM25_Closed(t *testing.T) {
	searcher := search.NewBM25Searcher(search.BM25Config{})
	if err := searcher.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if _, err := searcher.Search("registry", 5, siteDocs()); !errors.Is(err, search.ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}

func TestBM25_WithIndex(t *testing.T) {
	cat, err := content.DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog failed: %v", err)
	}
	searcher := newSearcher(t, search.BM25Config{})
	idx, err := index.NewInMemoryIndex(cat, index.IndexOptions{Searcher: searcher})
	if err != nil {
		t.Fatalf("NewInMemoryIndex failed: %v", err)
	}

	hits, err := idx.Search("dashboard", 3)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(hits) == 0 || hits[0].Summary.Title != "Real-time Analytics Dashboard" {
		t.Errorf("unexpected hits %+v", hits)
	}
}
