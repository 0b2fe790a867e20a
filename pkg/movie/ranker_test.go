package movie

import (
	"testing"

	"cineseek/pkg/config"
	"cineseek/pkg/parser"
	"cineseek/pkg/wikidata"
)

func testRanker() *Ranker {
	cfg := config.DefaultConfig()
	return NewRanker(&cfg.Ranker)
}

func film(qid string, labels map[string]string, year, rank int) *wikidata.Film {
	return &wikidata.Film{QID: qid, Labels: labels, Year: year, SearchRank: rank}
}

func qids(films []*wikidata.Film) []string {
	out := make([]string, len(films))
	for i, f := range films {
		out[i] = f.QID
	}
	return out
}

func TestRank_YearPreference(t *testing.T) {
	q := parser.Query{Primary: "White House Down", Year: 2013}
	labels := map[string]string{"en": "White House Down"}

	films := []*wikidata.Film{
		film("Q1", labels, 1999, 0), // wrong year
		film("Q2", labels, 0, 1),    // unknown year
		film("Q3", labels, 2013, 2), // exact year
	}

	ranked := testRanker().Rank(q, films)
	if len(ranked) != 3 {
		t.Fatalf("expected 3 ranked, got %d", len(ranked))
	}
	want := []string{"Q3", "Q2", "Q1"}
	for i, w := range want {
		if ranked[i].QID != w {
			t.Fatalf("order = %v, want %v", qids(ranked), want)
		}
	}
}

func TestRank_SimilarityFloor(t *testing.T) {
	q := parser.Query{Primary: "White House Down"}

	films := []*wikidata.Film{
		film("Q1", map[string]string{"en": "White House Down"}, 0, 0),
		film("Q2", map[string]string{"en": "Q"}, 0, 1),
	}

	ranked := testRanker().Rank(q, films)
	if len(ranked) != 1 || ranked[0].QID != "Q1" {
		t.Errorf("ranked = %v, want only Q1", qids(ranked))
	}
}

func TestRank_ExactBeatsFuzzy(t *testing.T) {
	q := parser.Query{Primary: "Alien"}

	films := []*wikidata.Film{
		film("Q1", map[string]string{"en": "Aliens"}, 0, 0),
		film("Q2", map[string]string{"en": "Alien"}, 0, 1),
	}

	ranked := testRanker().Rank(q, films)
	if len(ranked) == 0 || ranked[0].QID != "Q2" {
		t.Errorf("ranked = %v, want Q2 first", qids(ranked))
	}
}

func TestRank_BilingualTieBreak(t *testing.T) {
	q := parser.Query{Primary: "White House Down"}

	films := []*wikidata.Film{
		film("Q1", map[string]string{"en": "White House Down"}, 0, 0),
		film("Q2", map[string]string{"en": "White House Down", "zh": "白宫末日"}, 0, 1),
	}

	ranked := testRanker().Rank(q, films)
	if ranked[0].QID != "Q2" {
		t.Errorf("ranked = %v, want bilingual Q2 first", qids(ranked))
	}
}

func TestRank_Deterministic(t *testing.T) {
	q := parser.Query{Primary: "White House Down", Year: 2013}
	labels := map[string]string{"en": "White House Down"}

	mk := func() []*wikidata.Film {
		return []*wikidata.Film{
			film("Q5", labels, 2013, 2),
			film("Q4", labels, 2013, 1),
			film("Q6", labels, 2013, 2), // same score and rank as Q5, QID decides
		}
	}

	first := qids(testRanker().Rank(q, mk()))
	for i := 0; i < 5; i++ {
		if got := qids(testRanker().Rank(q, mk())); len(got) != len(first) {
			t.Fatalf("run %d: length changed", i)
		} else {
			for j := range got {
				if got[j] != first[j] {
					t.Fatalf("run %d: order %v differs from %v", i, got, first)
				}
			}
		}
	}
	want := []string{"Q4", "Q5", "Q6"}
	for i, w := range want {
		if first[i] != w {
			t.Fatalf("order = %v, want %v", first, want)
		}
	}
}

func TestRank_DuplicateQID(t *testing.T) {
	q := parser.Query{Primary: "Alien"}
	labels := map[string]string{"en": "Alien"}

	ranked := testRanker().Rank(q, []*wikidata.Film{
		film("Q1", labels, 0, 0),
		film("Q1", labels, 0, 3),
	})
	if len(ranked) != 1 {
		t.Errorf("duplicate QID survived: %v", qids(ranked))
	}
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"White  House   Down", "white house down"},
		{"  I Am Legend ", "i am legend"},
		{"我是传奇", "我是传奇"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := normalizeTitle(tt.in); got != tt.want {
			t.Errorf("normalizeTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
