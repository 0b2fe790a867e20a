package movie

import (
	"fmt"
	"net/url"
	"strings"

	"cineseek/pkg/parser"
	"cineseek/pkg/wikidata"
)

const commonsFilePath = "https://commons.wikimedia.org/wiki/Special:FilePath/"

// posterWidth is the thumbnail width requested from Commons.
const posterWidth = 700

// Result is one resolved movie record, ready for presentation.
type Result struct {
	WikidataID     string            `json:"wikidata_id"`
	DisplayTitle   string            `json:"display_title"`
	TitleCN        string            `json:"title_cn,omitempty"`
	TitleEN        string            `json:"title_en,omitempty"`
	Year           int               `json:"year,omitempty"`
	Genres         []string          `json:"genres"`
	Countries      []string          `json:"countries"`
	PosterURL      string            `json:"poster_url,omitempty"`
	WikipediaLinks map[string]string `json:"wikipedia_links"`
}

// assemble builds a presentation record from a ranked film. The display
// title is never empty: bilingual labels are joined, a missing label side
// is dropped, and with no labels at all the query's own title is used.
func assemble(q parser.Query, film *wikidata.Film, localLang string) Result {
	res := Result{
		WikidataID:     film.QID,
		TitleCN:        film.Labels[localLang],
		TitleEN:        film.Labels["en"],
		Year:           film.Year,
		Genres:         film.Genres,
		Countries:      film.Countries,
		WikipediaLinks: film.Sitelinks,
	}
	if res.Genres == nil {
		res.Genres = []string{}
	}
	if res.Countries == nil {
		res.Countries = []string{}
	}
	if res.WikipediaLinks == nil {
		res.WikipediaLinks = map[string]string{}
	}

	res.DisplayTitle = displayTitle(res.TitleCN, res.TitleEN, film.Year, q)

	if film.ImageFile != "" {
		res.PosterURL = posterURL(film.ImageFile)
	}

	return res
}

// displayTitle composes "<local> <en> (year)", dropping absent parts. A
// duplicate label (same text in both languages) appears once.
func displayTitle(local, en string, year int, q parser.Query) string {
	parts := make([]string, 0, 2)
	if local != "" {
		parts = append(parts, local)
	}
	if en != "" && !strings.EqualFold(en, local) {
		parts = append(parts, en)
	}
	if len(parts) == 0 {
		// No labels survived; fall back to what the user asked for.
		if q.Primary != "" {
			parts = append(parts, q.Primary)
		} else {
			parts = append(parts, q.Alternate)
		}
	}

	title := strings.Join(parts, " ")
	if year > 0 {
		title = fmt.Sprintf("%s (%d)", title, year)
	}
	return title
}

// posterURL turns a Commons media filename into a width-bounded thumbnail
// redirect URL.
func posterURL(filename string) string {
	return fmt.Sprintf("%s%s?width=%d", commonsFilePath, url.PathEscape(filename), posterWidth)
}
