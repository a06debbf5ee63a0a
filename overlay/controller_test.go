package overlay

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jonwraymond/sitesearch/content"
	"github.com/jonwraymond/sitesearch/discovery"
	"github.com/jonwraymond/sitesearch/index"
)

func TestMain(m *testing.M) {
	// bleve starts its analysis workers at package init.
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("github.com/blevesearch/bleve_index_api.AnalysisWorker"))
}

const testDebounce = 20 * time.Millisecond

type fakeEngine struct {
	mu      sync.Mutex
	queries []string
	results discovery.Results
	block   chan struct{} // if non-nil, Search waits on it
	started chan string
}

func (f *fakeEngine) Search(ctx context.Context, q string, _ int) (discovery.Results, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	block, started := f.block, f.started
	f.mu.Unlock()

	if started != nil {
		started <- q
	}
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.results.Clone(), nil
}

func (f *fakeEngine) Queries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

type recordingHost struct {
	mu     sync.Mutex
	events []string
}

func (h *recordingHost) record(e string) {
	h.mu.Lock()
	h.events = append(h.events, e)
	h.mu.Unlock()
}

func (h *recordingHost) Events() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.events...)
}

func (h *recordingHost) FocusInput()       { h.record("focus") }
func (h *recordingHost) LockScroll()       { h.record("lock") }
func (h *recordingHost) UnlockScroll()     { h.record("unlock") }
func (h *recordingHost) Navigate(u string) { h.record("navigate " + u) }
func (h *recordingHost) ScrollTo(a string) { h.record("scroll " + a) }

func result(id int, title, url string) discovery.Result {
	return discovery.Result{
		Summary:   index.Summary{ID: id, Title: title, URL: url},
		Score:     10,
		ScoreType: discovery.ScoreWeighted,
	}
}

func newController(t *testing.T, eng Engine, host Host) *Controller {
	t.Helper()
	c, err := NewController(Options{Engine: eng, Host: host, Debounce: testDebounce})
	require.NoError(t, err)
	return c
}

func waitResults(t *testing.T, c *Controller, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return len(c.State().Results) == n
	}, time.Second, 5*time.Millisecond)
}

func TestNewController_RequiresEngine(t *testing.T) {
	_, err := NewController(Options{})
	assert.Error(t, err)
}

func TestController_OpenClose(t *testing.T) {
	host := &recordingHost{}
	c := newController(t, &fakeEngine{}, host)

	assert.False(t, c.State().Open)
	c.Open()
	c.Open()
	assert.True(t, c.State().Open)
	c.Close()
	c.Close()

	st := c.State()
	assert.False(t, st.Open)
	assert.Empty(t, st.Query)
	assert.Empty(t, st.Results)
	assert.Equal(t, []string{"focus", "lock", "unlock"}, host.Events())

	c.Toggle()
	assert.True(t, c.State().Open)
	c.Toggle()
	assert.False(t, c.State().Open)
}

func TestController_QueryIgnoredWhileClosed(t *testing.T) {
	eng := &fakeEngine{results: discovery.Results{result(1, "A", "/a")}}
	c := newController(t, eng, nil)

	c.SetQuery("analytics")
	time.Sleep(4 * testDebounce)

	assert.Empty(t, c.State().Query)
	assert.Empty(t, eng.Queries())
}

func TestController_DebouncesQueries(t *testing.T) {
	eng := &fakeEngine{results: discovery.Results{result(2, "Real-time Analytics Dashboard", "/analytics")}}
	c := newController(t, eng, nil)
	c.Open()

	for _, q := range []string{"a", "an", "ana", "analytics"} {
		c.SetQuery(q)
	}
	assert.Equal(t, "analytics", c.State().Query)

	waitResults(t, c, 1)
	time.Sleep(2 * testDebounce)
	assert.Equal(t, []string{"analytics"}, eng.Queries())
	assert.Equal(t, []string{"Real-time Analytics Dashboard"}, c.State().Titles())
}

func TestController_DropsStaleResultsAfterClose(t *testing.T) {
	eng := &fakeEngine{
		results: discovery.Results{result(1, "A", "/a")},
		block:   make(chan struct{}),
		started: make(chan string, 1),
	}
	c := newController(t, eng, nil)
	c.Open()
	c.SetQuery("land")

	select {
	case q := <-eng.started:
		assert.Equal(t, "land", q)
	case <-time.After(time.Second):
		t.Fatal("search never started")
	}

	c.Close()
	close(eng.block)
	time.Sleep(2 * testDebounce)

	st := c.State()
	assert.False(t, st.Open)
	assert.Empty(t, st.Results)
}

func TestController_OnChange(t *testing.T) {
	var mu sync.Mutex
	var seen []State
	eng := &fakeEngine{results: discovery.Results{result(1, "A", "/a")}}
	c, err := NewController(Options{
		Engine:   eng,
		Debounce: testDebounce,
		OnChange: func(s State) {
			mu.Lock()
			seen = append(seen, s)
			mu.Unlock()
		},
	})
	require.NoError(t, err)

	c.Open()
	c.SetQuery("abc")
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 3
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.True(t, seen[0].Open)
	assert.Equal(t, "abc", seen[1].Query)
	assert.Len(t, seen[2].Results, 1)
}

func TestController_Select(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"path", "/analytics", "navigate /analytics"},
		{"anchor", "#global-flow", "scroll global-flow"},
		{"external", "https://example.org/docs", "navigate https://example.org/docs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := &recordingHost{}
			eng := &fakeEngine{results: discovery.Results{result(1, "Entry", tt.url)}}
			c := newController(t, eng, host)
			c.Open()
			c.SetQuery("entry")
			waitResults(t, c, 1)

			require.NoError(t, c.Select(0))
			assert.Equal(t, []string{"focus", "lock", tt.want, "unlock"}, host.Events())
			assert.False(t, c.State().Open)
		})
	}
}

func TestController_SelectErrors(t *testing.T) {
	c := newController(t, &fakeEngine{}, nil)
	assert.ErrorIs(t, c.Select(0), ErrClosed)

	c.Open()
	assert.ErrorIs(t, c.Select(0), ErrNoSuchItem)
	assert.ErrorIs(t, c.Select(-1), ErrNoSuchItem)
	c.Close()
}

func TestController_WithDiscovery(t *testing.T) {
	cat, err := content.NewCatalog([]content.Entry{
		{ID: 1, Title: "Cadastral Mapping", Category: "Mapping", URL: "/mapping"},
		{ID: 2, Title: "Global Data Flow Visualization", Category: "Visualization", URL: "#global-flow"},
	})
	require.NoError(t, err)
	disc, err := discovery.New(discovery.Options{Catalog: cat})
	require.NoError(t, err)
	defer disc.Close()

	host := &recordingHost{}
	c := newController(t, disc, host)
	c.Open()
	c.SetQuery("global flow")
	waitResults(t, c, 1)

	require.NoError(t, c.Select(0))
	assert.Contains(t, host.Events(), "scroll global-flow")
}
