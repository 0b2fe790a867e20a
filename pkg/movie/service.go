package movie

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"cineseek/pkg/config"
	"cineseek/pkg/parser"
	"cineseek/pkg/tracker"
	"cineseek/pkg/wikidata"
	"cineseek/pkg/wikipedia"
)

// Service resolves noisy release names into ranked movie records. It owns
// the parse, search, fetch, rank, assemble pipeline; transport concerns
// live in the upstream clients.
type Service struct {
	cfg       *config.WikidataConfig
	wikidata  *wikidata.Client
	wikipedia *wikipedia.Client
	ranker    *Ranker
	tracker   *tracker.Tracker
	logger    *slog.Logger
}

// New creates a Service wired to the given upstream clients.
func New(cfg *config.Config, wd *wikidata.Client, wp *wikipedia.Client, t *tracker.Tracker, logger *slog.Logger) *Service {
	return &Service{
		cfg:       &cfg.Wikidata,
		wikidata:  wd,
		wikipedia: wp,
		ranker:    NewRanker(&cfg.Ranker),
		tracker:   t,
		logger:    logger,
	}
}

type searchOutcome struct {
	results []wikidata.SearchResult
	err     error
}

// Search resolves a raw release name. An empty slice with a nil error
// means no match; ErrUnavailable is returned only when every upstream
// search failed outright.
func (s *Service) Search(ctx context.Context, raw string) ([]Result, error) {
	reqID := uuid.NewString()[:8]
	log := s.logger.With("req", reqID)

	query := parser.Extract(raw)
	titles := query.Titles()
	log.Info("resolving release name", "raw", raw, "titles", titles, "year", query.Year)
	if len(titles) == 0 {
		return []Result{}, nil
	}

	outcomes := s.searchVariants(ctx, titles)

	failures := 0
	var ids []string
	for i, out := range outcomes {
		if out.err != nil {
			log.Warn("title search failed", "title", titles[i], "error", out.err)
			failures++
			continue
		}
		for _, hit := range out.results {
			ids = append(ids, hit.ID)
		}
	}
	if failures == len(outcomes) {
		return nil, wikidata.ErrUnavailable
	}

	ids = dedupeIDs(ids)
	if limit := s.cfg.MaxCandidates; limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	if len(ids) == 0 {
		log.Info("no candidates found", "raw", raw)
		s.tracker.TrackEmptyResult("wikidata")
		return []Result{}, nil
	}

	// Remember each candidate's position in the merged search output; the
	// ranker uses it to break score ties.
	rank := make(map[string]int, len(ids))
	for i, id := range ids {
		rank[id] = i
	}

	filmMap, err := s.wikidata.FetchFilms(ctx, ids)
	if err != nil {
		return nil, err
	}

	films := make([]*wikidata.Film, 0, len(filmMap))
	for _, id := range ids {
		if film, ok := filmMap[id]; ok {
			film.SearchRank = rank[id]
			films = append(films, film)
		}
	}

	ranked := s.ranker.Rank(query, films)
	log.Info("candidates ranked", "searched", len(ids), "films", len(films), "ranked", len(ranked))
	if len(ranked) == 0 {
		s.tracker.TrackEmptyResult("wikidata")
	}

	results := make([]Result, 0, len(ranked))
	for _, film := range ranked {
		res := assemble(query, film, s.cfg.LocalLanguage)
		if res.PosterURL == "" {
			res.PosterURL = s.fallbackPoster(ctx, film)
		}
		results = append(results, res)
	}

	return results, nil
}

// searchVariants runs one label search per title variant concurrently.
// The language index follows the script of each variant.
func (s *Service) searchVariants(ctx context.Context, titles []string) []searchOutcome {
	outcomes := make([]searchOutcome, len(titles))

	var wg sync.WaitGroup
	for i, title := range titles {
		wg.Add(1)
		go func(i int, title string) {
			defer wg.Done()
			lang := "en"
			if parser.HasCJK(title) {
				lang = s.cfg.LocalLanguage
			}
			results, err := s.wikidata.SearchEntities(ctx, title, lang, s.cfg.SearchLimit)
			outcomes[i] = searchOutcome{results: results, err: err}
		}(i, title)
	}
	wg.Wait()

	return outcomes
}

// fallbackPoster tries the Wikipedia page-summary image when the entity
// itself carries no P18 image, local edition first. Failures leave the
// poster empty; they never fail the search.
func (s *Service) fallbackPoster(ctx context.Context, film *wikidata.Film) string {
	for _, lang := range []string{s.cfg.LocalLanguage, "en"} {
		link := film.Sitelinks[lang]
		if link == "" {
			continue
		}
		src, err := s.wikipedia.GetSummaryThumbnail(ctx, link, lang)
		if err != nil {
			s.logger.Debug("poster fallback failed", "qid", film.QID, "lang", lang, "error", err)
			continue
		}
		if src != "" {
			return src
		}
	}
	return ""
}

func dedupeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
