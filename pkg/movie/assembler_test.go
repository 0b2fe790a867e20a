package movie

import (
	"testing"

	"cineseek/pkg/parser"
	"cineseek/pkg/wikidata"
)

func TestAssemble(t *testing.T) {
	q := parser.Query{Primary: "White House Down", Year: 2013}
	f := &wikidata.Film{
		QID:       "Q845102",
		Labels:    map[string]string{"zh": "白宫末日", "en": "White House Down"},
		Year:      2013,
		Genres:    []string{"动作片"},
		Countries: []string{"美国"},
		ImageFile: "White House Down Poster.jpg",
		Sitelinks: map[string]string{
			"zh": "https://zh.wikipedia.org/wiki/白宫末日",
			"en": "https://en.wikipedia.org/wiki/White_House_Down",
		},
	}

	res := assemble(q, f, "zh")
	if res.DisplayTitle != "白宫末日 White House Down (2013)" {
		t.Errorf("DisplayTitle = %q", res.DisplayTitle)
	}
	if res.TitleCN != "白宫末日" || res.TitleEN != "White House Down" {
		t.Errorf("titles = %q / %q", res.TitleCN, res.TitleEN)
	}
	want := "https://commons.wikimedia.org/wiki/Special:FilePath/White%20House%20Down%20Poster.jpg?width=700"
	if res.PosterURL != want {
		t.Errorf("PosterURL = %q, want %q", res.PosterURL, want)
	}
	if len(res.WikipediaLinks) != 2 {
		t.Errorf("WikipediaLinks = %v", res.WikipediaLinks)
	}
}

func TestAssemble_EmptyCollections(t *testing.T) {
	res := assemble(parser.Query{Primary: "x"}, &wikidata.Film{QID: "Q1"}, "zh")
	if res.Genres == nil || res.Countries == nil || res.WikipediaLinks == nil {
		t.Error("collections must not be nil, they serialize as JSON arrays/objects")
	}
	if res.PosterURL != "" {
		t.Errorf("PosterURL = %q, want empty without image", res.PosterURL)
	}
}

func TestDisplayTitle(t *testing.T) {
	tests := []struct {
		name  string
		local string
		en    string
		year  int
		query parser.Query
		want  string
	}{
		{"bilingual", "白宫末日", "White House Down", 2013, parser.Query{}, "白宫末日 White House Down (2013)"},
		{"english only", "", "White House Down", 2013, parser.Query{}, "White House Down (2013)"},
		{"local only", "白宫末日", "", 0, parser.Query{}, "白宫末日"},
		{"identical labels once", "Alien", "alien", 1979, parser.Query{}, "Alien (1979)"},
		{"no labels falls back to query", "", "", 0, parser.Query{Primary: "Obscure Film"}, "Obscure Film"},
		{"no labels alternate fallback", "", "", 2001, parser.Query{Alternate: "Backup Title"}, "Backup Title (2001)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := displayTitle(tt.local, tt.en, tt.year, tt.query)
			if got != tt.want {
				t.Errorf("displayTitle = %q, want %q", got, tt.want)
			}
			if got == "" {
				t.Error("display title must never be empty")
			}
		})
	}
}

func TestPosterURL(t *testing.T) {
	got := posterURL("Im legend ver2.jpg")
	want := "https://commons.wikimedia.org/wiki/Special:FilePath/Im%20legend%20ver2.jpg?width=700"
	if got != want {
		t.Errorf("posterURL = %q, want %q", got, want)
	}
}
