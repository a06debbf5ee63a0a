package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func doRequest(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Header().Get("Content-Type") == "application/json" {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("%s %s: invalid JSON %q: %v", method, target, rec.Body.String(), err)
		}
	}
	return rec, out
}

func TestAPI_Search(t *testing.T) {
	h := APIHandler(testSite(t))

	rec, out := doRequest(t, h, http.MethodGet, "/api/search?q=analytics&limit=1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	results := out["results"].([]any)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	_, out = doRequest(t, h, http.MethodGet, "/api/search?q=a&limit=1", "")
	next, _ := out["nextCursor"].(string)
	if next == "" {
		t.Fatal("expected a next cursor for a broad query")
	}
	_, page2 := doRequest(t, h, http.MethodGet, "/api/search?q=a&limit=1&cursor="+next, "")
	if results := page2["results"].([]any); len(results) != 1 {
		t.Errorf("expected second page, got %v", results)
	}

	_, out = doRequest(t, h, http.MethodGet, "/api/search?q=", "")
	if results := out["results"].([]any); len(results) != 0 {
		t.Errorf("expected empty results for empty query, got %v", results)
	}

	rec, _ = doRequest(t, h, http.MethodGet, "/api/search?q=a&limit=x", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad limit: status %d", rec.Code)
	}
	rec, _ = doRequest(t, h, http.MethodGet, "/api/search?q=analytics&cursor=***", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad cursor: status %d", rec.Code)
	}
}

func TestAPI_Entries(t *testing.T) {
	h := APIHandler(testSite(t))

	rec, out := doRequest(t, h, http.MethodGet, "/api/entries/2", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if out["targetKind"] != "anchor" {
		t.Errorf("unexpected doc %v", out)
	}

	_, out = doRequest(t, h, http.MethodGet, "/api/entries/2?level=summary", "")
	if _, ok := out["description"]; ok {
		t.Errorf("summary level should omit description: %v", out)
	}

	tests := []struct {
		target string
		code   int
	}{
		{"/api/entries/99", http.StatusNotFound},
		{"/api/entries/abc", http.StatusBadRequest},
		{"/api/entries/1?level=verbose", http.StatusBadRequest},
	}
	for _, tt := range tests {
		if rec, _ := doRequest(t, h, http.MethodGet, tt.target, ""); rec.Code != tt.code {
			t.Errorf("%s: status %d, want %d", tt.target, rec.Code, tt.code)
		}
	}
}

func TestAPI_Categories(t *testing.T) {
	h := APIHandler(testSite(t))
	rec, out := doRequest(t, h, http.MethodGet, "/api/categories", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if cats := out["categories"].([]any); len(cats) != 3 || cats[0] != "Analytics" {
		t.Errorf("unexpected categories %v", cats)
	}
	featured, _ := out["featured"].([]any)
	if len(featured) != 1 || featured[0].(map[string]any)["title"] != "Real-time Analytics Dashboard" {
		t.Errorf("unexpected featured %v", out["featured"])
	}
}

func TestAPI_Contact(t *testing.T) {
	h := APIHandler(testSite(t))

	body, _ := json.Marshal(validContact())
	rec, out := doRequest(t, h, http.MethodPost, "/api/contact", string(body))
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status %d: %v", rec.Code, out)
	}
	if out["status"] != "submitted" {
		t.Errorf("unexpected output %v", out)
	}

	rec, out = doRequest(t, h, http.MethodPost, "/api/contact", `{"name":"","email":"x","organization":"","message":"short"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status %d", rec.Code)
	}
	if fields := out["fields"].(map[string]any); len(fields) != 4 {
		t.Errorf("expected 4 field errors, got %v", fields)
	}

	rec, _ = doRequest(t, h, http.MethodPost, "/api/contact", `{"name":"x","phone":"1"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown field: status %d", rec.Code)
	}

	rec, _ = doRequest(t, h, http.MethodGet, "/api/contact", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET contact: status %d", rec.Code)
	}
}

func TestAPI_ContactDisabled(t *testing.T) {
	site := testSite(t)
	site.Submitter = nil
	body, _ := json.Marshal(validContact())
	rec, _ := doRequest(t, APIHandler(site), http.MethodPost, "/api/contact", string(body))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status %d", rec.Code)
	}
}

func TestHandler_Health(t *testing.T) {
	reg, site := newSiteRegistry(t)
	h := Handler(reg, site)

	rec, _ := doRequest(t, h, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("before start: status %d", rec.Code)
	}

	if err := reg.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer reg.Stop()

	rec, out := doRequest(t, h, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK || out["status"] != "ok" {
		t.Errorf("after start: %d %v", rec.Code, out)
	}

	rec, out = doRequest(t, h, http.MethodPost, "/mcp", `{"jsonrpc":"2.0","id":1,"method":"ping"}`)
	if rec.Code != http.StatusOK || out["error"] != nil {
		t.Errorf("ping via mux: %d %v", rec.Code, out)
	}

	rec, _ = doRequest(t, h, http.MethodGet, "/api/categories", "")
	if rec.Code != http.StatusOK {
		t.Errorf("api via mux: status %d", rec.Code)
	}
}
