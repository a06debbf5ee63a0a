// Package index provides the read-only content index and its pluggable
// search layer.
//
// The index is built once from a [content.Catalog] and never mutated. It
// precomputes a lowercased search document per entry and delegates ranking
// to a [Searcher].
//
// # Usage
//
//	cat, _ := content.DefaultCatalog()
//	idx, err := index.NewInMemoryIndex(cat)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	hits, err := idx.Search("analytics", 8)
//
// # Pluggable Search
//
// The default searcher is [WeightedSearcher], which applies the site's
// additive scoring rules. Any other ranking can be plugged in:
//
//	type MySearcher struct{}
//	func (s *MySearcher) Search(query string, limit int, docs []index.SearchDoc) ([]index.Match, error) {
//	    // Custom ranking
//	}
//
//	idx, _ := index.NewInMemoryIndex(cat, index.IndexOptions{Searcher: &MySearcher{}})
//
// # Progressive Disclosure
//
// Listings and hits carry a [Summary] (ID, title, category, URL, short
// description truncated to 120 runes, featured flag). Use Get for the full
// entry.
//
// # Pagination
//
// Search supports opaque cursor pagination:
//
//	hits, next, err := idx.SearchPage("registry", 4, "")
//	if next != "" {
//	    more, next, err = idx.SearchPage("registry", 4, next)
//	}
package index
