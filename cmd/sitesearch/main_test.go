package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonwraymond/sitesearch/config"
	"github.com/jonwraymond/sitesearch/contact"
	"github.com/jonwraymond/sitesearch/registry"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env")}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "sitesearch dev\n", out)
}

func TestSearch_JSON(t *testing.T) {
	out, err := execute(t, "--json", "search", "analytics")
	require.NoError(t, err)

	var got registry.SearchOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "analytics", got.Query)
	require.NotEmpty(t, got.Results)
	assert.Equal(t, "Real-time Analytics Dashboard", got.Results[0].Summary.Title)
}

func TestSearch_Table(t *testing.T) {
	out, err := execute(t, "search", "global", "flow")
	require.NoError(t, err)
	assert.Contains(t, out, "SCORE")
	assert.Contains(t, out, "#global-flow")

	out, err = execute(t, "search", "zzzzqqq")
	require.NoError(t, err)
	assert.Equal(t, "No results.\n", out)
}

func TestSearch_StrategyFlag(t *testing.T) {
	out, err := execute(t, "--json", "--strategy", "bm25", "search", "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, `"scoreType": "bm25"`)

	_, err = execute(t, "--strategy", "neural", "search", "dashboard")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestSearch_RequiresQuery(t *testing.T) {
	_, err := execute(t, "search")
	assert.Error(t, err)
}

func TestCatalog(t *testing.T) {
	out, err := execute(t, "--json", "catalog", "categories")
	require.NoError(t, err)
	var cats []string
	require.NoError(t, json.Unmarshal([]byte(out), &cats))
	assert.NotEmpty(t, cats)

	out, err = execute(t, "catalog", "featured")
	require.NoError(t, err)
	assert.Contains(t, out, "Real-time Analytics Dashboard")

	out, err = execute(t, "catalog", "list")
	require.NoError(t, err)
	assert.Equal(t, 16, strings.Count(out, "\n"))
}

func TestCatalog_Validate(t *testing.T) {
	_, err := execute(t, "catalog", "validate", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestContact_SubmitAndRecent(t *testing.T) {
	t.Setenv(config.EnvPrefix+"CONTACT_STORE", filepath.Join(t.TempDir(), "contact.db"))

	_, err := execute(t, "contact", "submit", "--name", "Ada", "--email", "ada.example.com", "--org", "Acme", "--message", "short")
	var fe contact.FieldErrors
	require.True(t, errors.As(err, &fe))
	assert.Contains(t, fe, "email")

	out, err := execute(t, "contact", "submit",
		"--name", "Ada", "--email", "ada@example.com", "--org", "Acme",
		"--message", "We would like a demo of the registry.")
	require.NoError(t, err)
	assert.Contains(t, out, "Thanks Ada")

	out, err = execute(t, "contact", "recent")
	require.NoError(t, err)
	assert.Contains(t, out, "ada@example.com")
}

func TestContact_RecentWithoutStore(t *testing.T) {
	_, err := execute(t, "contact", "recent")
	assert.Error(t, err)
}

func TestServe(t *testing.T) {
	t.Setenv(config.EnvPrefix+"ADDR", "127.0.0.1:0")
	t.Setenv(config.EnvPrefix+"CONTACT_DELAY", "1ms")

	a := &app{envFiles: []string{filepath.Join(t.TempDir(), "missing.env")}}
	require.NoError(t, a.init())

	ctx, cancel := context.WithCancel(context.Background())
	ready := make(chan string, 1)
	done := make(chan error, 1)
	go func() { done <- a.serve(ctx, ready) }()

	var addr string
	select {
	case addr = <-ready:
	case err := <-done:
		t.Fatalf("serve exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}

	resp, err := http.Get("http://" + addr + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get("http://" + addr + "/api/search?q=dashboard")
	require.NoError(t, err)
	var out registry.SearchOutput
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	resp.Body.Close()
	require.NotEmpty(t, out.Results)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestMCP_Stream(t *testing.T) {
	t.Setenv(config.EnvPrefix+"CONTACT_DELAY", "1ms")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetIn(strings.NewReader(
		`{"jsonrpc":"2.0","id":1,"method":"tools/list"}` + "\n" +
			`{"jsonrpc":"2.0","method":"notifications/initialized"}` + "\n" +
			`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"site_search","arguments":{"query":"dashboard"}}}` + "\n"))
	root.SetArgs([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env"), "mcp"})
	require.NoError(t, root.ExecuteContext(context.Background()))

	dec := json.NewDecoder(&out)
	var list, call registry.MCPResponse
	require.NoError(t, dec.Decode(&list))
	require.NoError(t, dec.Decode(&call))
	assert.Nil(t, list.Error)
	assert.Nil(t, call.Error)
	assert.False(t, dec.More())
}

func TestServeHelp_MatchesRoutes(t *testing.T) {
	out, err := execute(t, "serve", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "POST /mcp/sse")
	assert.NotContains(t, out, "GET  /mcp/sse")
	assert.Contains(t, out, "GET  /api/categories       categories and featured entries")

	// The help text must agree with the SSE handler's method check.
	rec := httptest.NewRecorder()
	registry.ServeSSE(registry.New(registry.Config{})).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/mcp/sse", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
