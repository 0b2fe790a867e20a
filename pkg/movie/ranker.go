package movie

import (
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"
	"golang.org/x/text/cases"

	"cineseek/pkg/config"
	"cineseek/pkg/parser"
	"cineseek/pkg/wikidata"
)

// Ranker orders film candidates against a parsed query. Ranking is
// deterministic: identical inputs always produce the same ordering.
type Ranker struct {
	cfg *config.RankerConfig
}

// NewRanker creates a Ranker with the given scoring weights.
func NewRanker(cfg *config.RankerConfig) *Ranker {
	return &Ranker{cfg: cfg}
}

type scoredFilm struct {
	film  *wikidata.Film
	score float64
}

// Rank scores and filters candidates, best match first. Candidates whose
// best title similarity falls below the configured floor are dropped.
// Output contains one entry per distinct QID.
func (r *Ranker) Rank(q parser.Query, films []*wikidata.Film) []*wikidata.Film {
	variants := normalizedVariants(q)

	seen := make(map[string]struct{}, len(films))
	scored := make([]scoredFilm, 0, len(films))
	for _, film := range films {
		if _, dup := seen[film.QID]; dup {
			continue
		}
		seen[film.QID] = struct{}{}

		sim := titleSimilarity(variants, film.Labels)
		if sim < r.cfg.MinTitleSimilars {
			continue
		}

		score := sim
		score += r.yearScore(q.Year, film.Year)
		if film.Labels["zh"] != "" && film.Labels["en"] != "" {
			// Bilingual candidates display better; small tie-break nudge
			score += r.cfg.BilingualBonus
		}

		scored = append(scored, scoredFilm{film: film, score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		if scored[i].film.SearchRank != scored[j].film.SearchRank {
			return scored[i].film.SearchRank < scored[j].film.SearchRank
		}
		return scored[i].film.QID < scored[j].film.QID
	})

	ranked := make([]*wikidata.Film, len(scored))
	for i, s := range scored {
		ranked[i] = s.film
	}
	return ranked
}

// yearScore prefers an exact year match over everything; a candidate with
// no recorded year beats one with a wrong year.
func (r *Ranker) yearScore(queryYear, filmYear int) float64 {
	if queryYear == 0 {
		return 0
	}
	switch {
	case filmYear == queryYear:
		return r.cfg.YearMatchBonus
	case filmYear == 0:
		return 0
	default:
		return -r.cfg.YearMissPenalty
	}
}

// titleSimilarity returns the best similarity of any query variant against
// any label: 1.0 on a normalized exact match, otherwise the maximum
// Jaro-Winkler similarity.
func titleSimilarity(variants []string, labels map[string]string) float64 {
	best := 0.0
	for _, label := range labels {
		norm := normalizeTitle(label)
		if norm == "" {
			continue
		}
		for _, v := range variants {
			if v == norm {
				return 1.0
			}
			if sim := float64(edlib.JaroWinklerSimilarity(v, norm)); sim > best {
				best = sim
			}
		}
	}
	return best
}

// normalizeTitle case-folds and collapses whitespace for comparison.
// A Caser is stateful, so one is created per call.
func normalizeTitle(s string) string {
	return strings.Join(strings.Fields(cases.Fold().String(s)), " ")
}

func normalizedVariants(q parser.Query) []string {
	titles := q.Titles()
	variants := make([]string, 0, len(titles))
	for _, t := range titles {
		if n := normalizeTitle(t); n != "" {
			variants = append(variants, n)
		}
	}
	return variants
}
