package registry

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/jonwraymond/sitesearch/contact"
	"github.com/jonwraymond/sitesearch/discovery"
	"github.com/jonwraymond/sitesearch/index"
)

// maxBodySize bounds REST request bodies.
const maxBodySize = 64 << 10

type apiError struct {
	Error  string              `json:"error"`
	Fields contact.FieldErrors `json:"fields,omitempty"`
}

// APIHandler returns the REST API for site:
//
//	GET  /api/search?q=&limit=&cursor=&category=
//	GET  /api/entries/{id}?level=summary|full
//	GET  /api/categories
//	POST /api/contact
func APIHandler(site Site) http.Handler {
	mux := http.NewServeMux()
	log := site.logger()

	mux.HandleFunc("GET /api/search", func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query()
		args := SearchArgs{
			Query:    q.Get("q"),
			Cursor:   q.Get("cursor"),
			Category: q.Get("category"),
		}
		if v := q.Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				writeJSON(w, http.StatusBadRequest, apiError{Error: "limit must be a non-negative integer"})
				return
			}
			args.Limit = n
		}
		out, err := site.Search(req.Context(), args)
		if err != nil {
			writeAPIError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	})

	mux.HandleFunc("GET /api/entries/{id}", func(w http.ResponseWriter, req *http.Request) {
		id, err := strconv.Atoi(req.PathValue("id"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, apiError{Error: "id must be an integer"})
			return
		}
		doc, err := site.Describe(DescribeArgs{ID: id, Level: req.URL.Query().Get("level")})
		if err != nil {
			writeAPIError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, doc)
	})

	mux.HandleFunc("GET /api/categories", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, site.Categories())
	})

	mux.HandleFunc("POST /api/contact", func(w http.ResponseWriter, req *http.Request) {
		if site.Submitter == nil {
			writeJSON(w, http.StatusNotFound, apiError{Error: "contact submissions are disabled"})
			return
		}
		var cr contact.Request
		dec := json.NewDecoder(http.MaxBytesReader(w, req.Body, maxBodySize))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cr); err != nil {
			writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid JSON body: " + err.Error()})
			return
		}
		out, err := site.Contact(req.Context(), cr)
		if err != nil {
			writeAPIError(w, log, err)
			return
		}
		writeJSON(w, http.StatusAccepted, out)
	})

	return mux
}

func writeAPIError(w http.ResponseWriter, log *zap.Logger, err error) {
	var fe contact.FieldErrors
	switch {
	case errors.As(err, &fe):
		writeJSON(w, http.StatusUnprocessableEntity, apiError{Error: contact.ErrInvalidRequest.Error(), Fields: fe})
	case errors.Is(err, discovery.ErrNotFound):
		writeJSON(w, http.StatusNotFound, apiError{Error: err.Error()})
	case errors.Is(err, discovery.ErrInvalidLevel), errors.Is(err, index.ErrInvalidCursor):
		writeJSON(w, http.StatusBadRequest, apiError{Error: err.Error()})
	case errors.Is(err, contact.ErrBusy):
		writeJSON(w, http.StatusConflict, apiError{Error: err.Error()})
	default:
		log.Error("api request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, apiError{Error: "internal error"})
	}
}

// Handler mounts every transport on one mux:
//
//	/mcp         JSON-RPC over HTTP POST
//	/mcp/sse     JSON-RPC answered as SSE events
//	/mcp/stream  go-sdk streamable HTTP
//	/api/...     REST API
//	/healthz     registry health
func Handler(r *Registry, site Site) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/mcp", ServeHTTP(r))
	mux.Handle("/mcp/sse", ServeSSE(r))
	mux.Handle("/mcp/stream", StreamableHandler(r))
	mux.Handle("/api/", APIHandler(site))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, req *http.Request) {
		if err := r.HealthCheck(req.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "unavailable", "error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "stats": r.Stats()})
	})
	return mux
}
