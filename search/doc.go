// Package search provides a BM25 full-text searcher for the index package.
//
// It exists to:
//   - Keep index small and dependency-light
//   - Offer a relevance ranking that tolerates word forms and rare terms,
//     complementing the site's fixed-weight substring rules
//
// # Usage
//
// The primary type is [BM25Searcher], which implements [index.Searcher]:
//
//	idx, _ := index.NewInMemoryIndex(cat, index.IndexOptions{
//	    Searcher: search.NewBM25Searcher(search.BM25Config{}),
//	})
//
// # Configuration
//
// [BM25Config] allows customization of field boosts and safety limits:
//
//	cfg := search.BM25Config{
//	    TitleBoost:    3,    // Boost title matches (default: 3)
//	    CategoryBoost: 2,    // Boost category matches (default: 2)
//	    KeywordsBoost: 2,    // Boost keyword matches (default: 2)
//	    MaxDocs:       1000, // Limit documents to index (0 = unlimited)
//	    MaxDocTextLen: 5000, // Truncate long descriptions (0 = unlimited)
//	}
//
// # Thread Safety
//
// BM25Searcher is safe for concurrent use. It uses an internal RWMutex to
// protect index state and caches the Bleve index based on document
// fingerprints, only rebuilding when the document set changes.
//
// # Behavior
//
// Empty queries return no matches. Non-empty queries use BM25 ranking with
// deterministic tie-breaking (score DESC, then ID ASC).
package search

import "errors"

// ErrClosed is returned by Search after Close.
var ErrClosed = errors.New("searcher closed")
