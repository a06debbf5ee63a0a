// Package discovery provides a unified facade for site search operations.
//
// It combines the content, index, scoring and search packages into a
// single API. This package is the recommended entry point for consumers
// such as the search overlay and the transports.
//
// # Basic Usage
//
// Create a Discovery instance with default options (embedded catalog,
// weighted ranking, 8 results):
//
//	disc, err := discovery.New(discovery.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer disc.Close()
//
//	results, err := disc.Search(ctx, "cadastral mapping", 0)
//
//	// Progressive documentation
//	doc, err := disc.Describe(4, discovery.DetailFull)
//
// # Strategies
//
//   - StrategyWeighted: additive rules over title, description, category
//     and keywords (default)
//   - StrategyBM25: bleve full-text ranking
//   - StrategyHybrid: alpha*weighted + (1-alpha)*bm25, both normalized
//
// Select a strategy through Options:
//
//	disc, err := discovery.New(discovery.Options{
//	    Strategy:    discovery.StrategyHybrid,
//	    HybridAlpha: 0.7, // 70% weighted, 30% BM25
//	})
//
// # Thread Safety
//
// All Discovery methods are safe for concurrent use.
package discovery
