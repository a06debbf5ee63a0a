package discovery

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jonwraymond/sitesearch/content"
	"github.com/jonwraymond/sitesearch/index"
	"github.com/jonwraymond/sitesearch/scoring"
	"github.com/jonwraymond/sitesearch/search"
)

// Error values for discovery operations.
var (
	ErrNotFound        = errors.New("entry not found")
	ErrUnknownStrategy = errors.New("unknown search strategy")
	ErrInvalidLevel    = errors.New("invalid detail level")
)

// Strategy selects how results are ranked.
type Strategy string

const (
	// StrategyWeighted ranks with the additive rule engine (default).
	StrategyWeighted Strategy = "weighted"
	// StrategyBM25 ranks with bleve full-text scoring.
	StrategyBM25 Strategy = "bm25"
	// StrategyHybrid blends both.
	StrategyHybrid Strategy = "hybrid"
)

// ParseStrategy parses a strategy name. The empty string selects weighted.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrategyWeighted:
		return StrategyWeighted, nil
	case StrategyBM25:
		return StrategyBM25, nil
	case StrategyHybrid:
		return StrategyHybrid, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// Options configures a Discovery instance.
type Options struct {
	// Catalog is the content table. If nil, the embedded default is used.
	Catalog *content.Catalog

	// Strategy selects the ranking. Default: StrategyWeighted.
	Strategy Strategy

	// Weights overrides the rule weights of the weighted engine.
	Weights *scoring.Weights

	// BM25Config configures the BM25 searcher.
	// Only used for StrategyBM25 and StrategyHybrid.
	BM25Config search.BM25Config

	// HybridAlpha is the weighted share for hybrid search (0.0 to 1.0).
	// BM25 weight is 1-HybridAlpha. Zero selects the default of 0.5, so a
	// pure BM25 ranking is requested with StrategyBM25 rather than a zero
	// alpha.
	HybridAlpha float64

	// MaxResults is the default result cap. Default: 8.
	MaxResults int

	// Logger receives debug events. Default: no-op.
	Logger *zap.Logger
}

// Discovery is the unified facade for site search operations.
// It combines the content index, the configured ranking and entry
// documentation.
type Discovery struct {
	idx        *index.InMemoryIndex
	bm25       *search.BM25Searcher // nil unless a BM25 strategy is used
	scoreType  ScoreType
	maxResults int
	logger     *zap.Logger
}

// New creates a new Discovery instance with the given options.
func New(opts Options) (*Discovery, error) {
	d := &Discovery{
		maxResults: opts.MaxResults,
		logger:     opts.Logger,
	}
	if d.maxResults <= 0 {
		d.maxResults = scoring.MaxResults
	}
	if d.logger == nil {
		d.logger = zap.NewNop()
	}

	cat := opts.Catalog
	if cat == nil {
		var err error
		cat, err = content.DefaultCatalog()
		if err != nil {
			return nil, err
		}
	}

	strategy, err := ParseStrategy(string(opts.Strategy))
	if err != nil {
		return nil, err
	}

	weighted := index.NewWeightedSearcher(scoring.Engine{Weights: opts.Weights})
	var searcher index.Searcher
	switch strategy {
	case StrategyWeighted:
		searcher = weighted
		d.scoreType = ScoreWeighted
	case StrategyBM25:
		d.bm25 = search.NewBM25Searcher(opts.BM25Config)
		searcher = d.bm25
		d.scoreType = ScoreBM25
	case StrategyHybrid:
		alpha := opts.HybridAlpha
		if alpha == 0 {
			alpha = 0.5 // Default to equal weighting
		}
		d.bm25 = search.NewBM25Searcher(opts.BM25Config)
		hybrid, err := NewHybridSearcher(HybridOptions{
			Weighted: weighted,
			BM25:     d.bm25,
			Alpha:    alpha,
		})
		if err != nil {
			_ = d.bm25.Close()
			return nil, err
		}
		searcher = hybrid
		d.scoreType = ScoreHybrid
	}

	d.idx, err = index.NewInMemoryIndex(cat, index.IndexOptions{Searcher: searcher})
	if err != nil {
		if d.bm25 != nil {
			_ = d.bm25.Close()
		}
		return nil, err
	}

	d.logger.Debug("discovery ready",
		zap.Int("entries", d.idx.Len()),
		zap.String("strategy", string(d.scoreType)),
		zap.Int("max_results", d.maxResults))
	return d, nil
}

// Search performs a search using the configured strategy.
// Returns results ordered by relevance score. A non-positive limit selects
// the configured default. An empty or whitespace-only query yields no
// results.
func (d *Discovery) Search(ctx context.Context, query string, limit int) (Results, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = d.maxResults
	}

	hits, err := d.idx.Search(query, limit)
	if err != nil {
		d.logger.Warn("search failed", zap.String("query", query), zap.Error(err))
		return nil, err
	}

	results := resultsFromHits(hits, d.scoreType)
	d.logger.Debug("search",
		zap.String("query", query),
		zap.Int("results", len(results)),
		zap.String("score_type", string(d.scoreType)))
	return results, nil
}

// SearchPage performs paginated search.
func (d *Discovery) SearchPage(ctx context.Context, query string, limit int, cursor string) (Results, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	if limit <= 0 {
		limit = d.maxResults
	}
	hits, next, err := d.idx.SearchPage(query, limit, cursor)
	if err != nil {
		return nil, "", err
	}
	return resultsFromHits(hits, d.scoreType), next, nil
}

// Get retrieves an entry by ID.
func (d *Discovery) Get(id int) (content.Entry, error) {
	e, err := d.idx.Get(id)
	if errors.Is(err, index.ErrNotFound) {
		return content.Entry{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return e, err
}

// Describe returns documentation for an entry at the specified detail level.
func (d *Discovery) Describe(id int, level DetailLevel) (EntryDoc, error) {
	if !level.Valid() {
		return EntryDoc{}, fmt.Errorf("%w: %q", ErrInvalidLevel, level)
	}
	e, err := d.Get(id)
	if err != nil {
		return EntryDoc{}, err
	}
	return describe(e, level), nil
}

// List returns summaries of every entry in catalog order.
func (d *Discovery) List() []index.Summary {
	return d.idx.List()
}

// Categories returns all categories in catalog order.
func (d *Discovery) Categories() []string {
	return d.idx.Categories()
}

// Featured returns summaries of the featured entries.
func (d *Discovery) Featured() []index.Summary {
	return d.idx.Featured()
}

// ScoreType returns the type of scoring used by this instance.
func (d *Discovery) ScoreType() ScoreType {
	return d.scoreType
}

// MaxResults returns the default result cap.
func (d *Discovery) MaxResults() int {
	return d.maxResults
}

// Index returns the underlying index for advanced operations.
func (d *Discovery) Index() *index.InMemoryIndex {
	return d.idx
}

// Close releases search resources.
func (d *Discovery) Close() error {
	if d.bm25 != nil {
		return d.bm25.Close()
	}
	return nil
}
