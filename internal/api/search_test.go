package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cineseek/pkg/movie"
	"cineseek/pkg/wikidata"
)

type fakeResolver struct {
	results []movie.Result
	err     error
	gotRaw  string
}

func (f *fakeResolver) Search(ctx context.Context, raw string) ([]movie.Result, error) {
	f.gotRaw = raw
	return f.results, f.err
}

func postSearch(t *testing.T, h *SearchHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandleSearch(rec, req)
	return rec
}

func TestHandleSearch(t *testing.T) {
	resolver := &fakeResolver{results: []movie.Result{{
		WikidataID:   "Q845102",
		DisplayTitle: "白宫末日 White House Down (2013)",
		Year:         2013,
		Genres:       []string{"动作片"},
		Countries:    []string{"美国"},
	}}}
	rec := postSearch(t, NewSearchHandler(resolver), `{"query": "White.House.Down.2013.1080p"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	if resolver.gotRaw != "White.House.Down.2013.1080p" {
		t.Errorf("resolver got %q", resolver.gotRaw)
	}

	var results []movie.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &results); err != nil {
		t.Fatalf("response not valid JSON: %v", err)
	}
	if len(results) != 1 || results[0].WikidataID != "Q845102" {
		t.Errorf("results = %+v", results)
	}
}

func TestHandleSearch_NoMatch(t *testing.T) {
	rec := postSearch(t, NewSearchHandler(&fakeResolver{results: []movie.Result{}}), `{"query": "unknown"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("body = %q, want empty JSON array", body)
	}
}

func TestHandleSearch_NilResults(t *testing.T) {
	rec := postSearch(t, NewSearchHandler(&fakeResolver{results: nil}), `{"query": "unknown"}`)

	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("body = %q, nil results must serialize as []", body)
	}
}

func TestHandleSearch_Unavailable(t *testing.T) {
	rec := postSearch(t, NewSearchHandler(&fakeResolver{err: wikidata.ErrUnavailable}), `{"query": "x"}`)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}

func TestHandleSearch_BadRequest(t *testing.T) {
	handler := NewSearchHandler(&fakeResolver{})

	for _, body := range []string{`{`, `{"query": ""}`, `{"query": "   "}`} {
		if rec := postSearch(t, handler, body); rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, rec.Code)
		}
	}
}
