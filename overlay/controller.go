package overlay

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bep/debounce"
	"go.uber.org/zap"

	"github.com/jonwraymond/sitesearch/content"
	"github.com/jonwraymond/sitesearch/discovery"
)

// DefaultDebounce is the quiet period between the last keystroke and the
// search it triggers.
const DefaultDebounce = 100 * time.Millisecond

// Error values for overlay operations.
var (
	ErrClosed     = errors.New("overlay is closed")
	ErrNoSuchItem = errors.New("no result at index")
)

// Engine ranks a query. *discovery.Discovery satisfies it.
type Engine interface {
	Search(ctx context.Context, query string, limit int) (discovery.Results, error)
}

// Host performs the page-level side effects of the overlay.
type Host interface {
	FocusInput()
	LockScroll()
	UnlockScroll()
	// Navigate performs a full navigation to a path or absolute URL.
	Navigate(url string)
	// ScrollTo smooth-scrolls to the element with the given fragment id.
	ScrollTo(anchor string)
}

// Options configures a Controller.
type Options struct {
	Engine Engine
	Host   Host

	// Debounce is the search delay. Default: DefaultDebounce.
	Debounce time.Duration

	// Limit caps results. Zero uses the engine's default.
	Limit int

	// OnChange, if set, is called with a snapshot after every state change.
	// It runs without the controller lock held.
	OnChange func(State)

	Logger *zap.Logger
}

// Controller drives an overlay State against an Engine and a Host.
// It is safe for concurrent use.
type Controller struct {
	engine   Engine
	host     Host
	limit    int
	onChange func(State)
	logger   *zap.Logger

	debounced func(func())

	mu     sync.Mutex
	state  State
	gen    uint64 // bumped on every query change and on close
	cancel context.CancelFunc
}

// NewController creates a closed overlay controller.
func NewController(opts Options) (*Controller, error) {
	if opts.Engine == nil {
		return nil, fmt.Errorf("overlay: engine is required")
	}
	if opts.Host == nil {
		opts.Host = NopHost{}
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Controller{
		engine:    opts.Engine,
		host:      opts.Host,
		limit:     opts.Limit,
		onChange:  opts.OnChange,
		logger:    opts.Logger,
		debounced: debounce.New(opts.Debounce),
		state:     State{}.Closed(),
	}, nil
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Open opens the overlay, focuses the input and locks page scroll.
// Opening an open overlay is a no-op.
func (c *Controller) Open() {
	c.mu.Lock()
	if c.state.Open {
		c.mu.Unlock()
		return
	}
	c.state = c.state.Opened()
	snap := c.state.Clone()
	c.mu.Unlock()

	c.host.FocusInput()
	c.host.LockScroll()
	c.logger.Debug("overlay opened")
	c.notify(snap)
}

// Close closes the overlay, restores scroll and clears query and results.
// Pending or in-flight searches are discarded.
func (c *Controller) Close() {
	c.mu.Lock()
	if !c.state.Open {
		c.mu.Unlock()
		return
	}
	c.gen++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.state = c.state.Closed()
	snap := c.state.Clone()
	c.mu.Unlock()

	c.host.UnlockScroll()
	c.logger.Debug("overlay closed")
	c.notify(snap)
}

// Toggle opens a closed overlay and closes an open one.
func (c *Controller) Toggle() {
	c.mu.Lock()
	open := c.state.Open
	c.mu.Unlock()
	if open {
		c.Close()
	} else {
		c.Open()
	}
}

// SetQuery records a query change and schedules a debounced search.
// Changes while the overlay is closed are ignored.
func (c *Controller) SetQuery(q string) {
	c.mu.Lock()
	if !c.state.Open {
		c.mu.Unlock()
		return
	}
	c.state = c.state.WithQuery(q)
	c.gen++
	gen := c.gen
	snap := c.state.Clone()
	c.mu.Unlock()

	c.notify(snap)
	c.debounced(func() { c.run(gen, q) })
}

func (c *Controller) run(gen uint64, q string) {
	ctx, cancel := context.WithCancel(context.Background())

	c.mu.Lock()
	if gen != c.gen || !c.state.Open {
		c.mu.Unlock()
		cancel()
		return
	}
	if c.cancel != nil {
		c.cancel()
	}
	c.cancel = cancel
	c.mu.Unlock()

	results, err := c.engine.Search(ctx, q, c.limit)

	c.mu.Lock()
	stale := gen != c.gen || !c.state.Open
	if !stale {
		c.cancel = nil
	}
	cancel()
	if stale {
		c.mu.Unlock()
		c.logger.Debug("dropping stale results", zap.String("query", q))
		return
	}
	if err != nil {
		c.mu.Unlock()
		c.logger.Warn("overlay search failed", zap.String("query", q), zap.Error(err))
		return
	}
	c.state = c.state.WithResults(results)
	snap := c.state.Clone()
	c.mu.Unlock()

	c.notify(snap)
}

// Select activates the i-th result. Paths and absolute URLs navigate,
// fragments scroll in page. The overlay is closed afterwards.
func (c *Controller) Select(i int) error {
	c.mu.Lock()
	if !c.state.Open {
		c.mu.Unlock()
		return ErrClosed
	}
	if i < 0 || i >= len(c.state.Results) {
		c.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrNoSuchItem, i)
	}
	r := c.state.Results[i]
	c.mu.Unlock()

	target, err := content.ParseTarget(r.Summary.URL)
	if err != nil {
		return err
	}
	switch target.Kind {
	case content.TargetAnchor:
		c.host.ScrollTo(target.Value)
	default:
		c.host.Navigate(target.Value)
	}
	c.logger.Debug("overlay selection",
		zap.Int("id", r.Summary.ID),
		zap.String("target", target.String()))
	c.Close()
	return nil
}

func (c *Controller) notify(s State) {
	if c.onChange != nil {
		c.onChange(s)
	}
}

// NopHost ignores all side effects.
type NopHost struct{}

func (NopHost) FocusInput()     {}
func (NopHost) LockScroll()     {}
func (NopHost) UnlockScroll()   {}
func (NopHost) Navigate(string) {}
func (NopHost) ScrollTo(string) {}
