package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"cineseek/pkg/movie"
	"cineseek/pkg/wikidata"
)

// Resolver is the engine surface the API depends on.
type Resolver interface {
	Search(ctx context.Context, raw string) ([]movie.Result, error)
}

// SearchHandler handles movie resolution requests.
type SearchHandler struct {
	resolver Resolver
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(r Resolver) *SearchHandler {
	return &SearchHandler{resolver: r}
}

// SearchRequest represents one resolution request.
type SearchRequest struct {
	Query string `json:"query"`
}

// HandleSearch handles POST /api/search. The response is always a JSON
// array: empty on no match, ranked results otherwise. Upstream outage maps
// to 502 so callers can distinguish "no match" from "could not look".
func (h *SearchHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		http.Error(w, "query is required", http.StatusBadRequest)
		return
	}

	results, err := h.resolver.Search(r.Context(), req.Query)
	if err != nil {
		if errors.Is(err, wikidata.ErrUnavailable) {
			http.Error(w, "upstream unavailable", http.StatusBadGateway)
			return
		}
		slog.Error("Search failed", "query", req.Query, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if results == nil {
		results = []movie.Result{}
	}
	if err := json.NewEncoder(w).Encode(results); err != nil {
		slog.Error("Failed to encode search response", "error", err)
	}
}
