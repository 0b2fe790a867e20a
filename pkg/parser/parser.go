// Package parser turns noisy, human-supplied movie release names into a
// structured query: a clean title (possibly split into a CJK and a Latin
// variant) and an optional release-year hint.
package parser

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/width"
)

// Query is the structured interpretation of a raw release name.
// Year is 0 when no plausible year was found.
type Query struct {
	Primary   string
	Alternate string
	Year      int
}

// Titles returns the non-empty title variants, primary first.
func (q Query) Titles() []string {
	titles := make([]string, 0, 2)
	if q.Primary != "" {
		titles = append(titles, q.Primary)
	}
	if q.Alternate != "" && q.Alternate != q.Primary {
		titles = append(titles, q.Alternate)
	}
	return titles
}

// Earliest plausible film year (first motion pictures).
const minYear = 1888

// Extract parses a raw release name. It is total: any input, including
// empty or all-punctuation strings, yields a usable Query. Worst case the
// trimmed raw string comes back verbatim as the primary title.
func Extract(raw string) Query {
	trimmed := strings.TrimSpace(raw)

	// All-numeric input is unparseable: the number is neither title nor year.
	if trimmed != "" && digitsRe.MatchString(trimmed) {
		return Query{Primary: trimmed}
	}

	// Fold full-width punctuation and letters so the CJK bracket variants
	// hit the same rules as their ASCII forms.
	s := width.Narrow.String(trimmed)
	s = cjkBracketReplacer.Replace(s)

	// Bracketed segments are metadata blocks (source notes, group tags,
	// sometimes the year). Capture a year hint, then strip them.
	bracketYear := 0
	s = stripBrackets(s, &bracketYear)

	// Separate a year glued directly onto title text.
	s = gluedYearRe.ReplaceAllString(s, "$1 $2$3")

	tokens := tokenize(s)
	year, yearIdx := pickYear(tokens)
	if year == 0 {
		year = bracketYear
	}

	title := assembleTitle(tokens, yearIdx)
	if title == "" {
		// Year-leading names leave nothing before the cut; rebuild from
		// the full token stream minus the year and metadata.
		title = salvageTitle(tokens, yearIdx)
	}
	if title == "" {
		title = trimmed
	}

	primary, alternate := splitScripts(title)
	return Query{Primary: primary, Alternate: alternate, Year: year}
}

var cjkBracketReplacer = strings.NewReplacer(
	"【", "[", "】", "]",
	"《", " ", "》", " ",
	"「", " ", "」", " ",
)

// stripBrackets removes bracketed segments, recording the first plausible
// year found inside one.
func stripBrackets(s string, year *int) string {
	for _, re := range bracketRes {
		for re.MatchString(s) {
			s = re.ReplaceAllStringFunc(s, func(seg string) string {
				if *year == 0 {
					if y := firstPlausibleYear(seg); y != 0 {
						*year = y
					}
				}
				return " "
			})
		}
	}
	return s
}

func firstPlausibleYear(s string) int {
	for _, m := range yearRe.FindAllString(s, -1) {
		if y := plausibleYear(m); y != 0 {
			return y
		}
	}
	return 0
}

func plausibleYear(tok string) int {
	if len(tok) != 4 {
		return 0
	}
	y := 0
	for _, r := range tok {
		if r < '0' || r > '9' {
			return 0
		}
		y = y*10 + int(r-'0')
	}
	if y < minYear || y > time.Now().Year()+2 {
		return 0
	}
	return y
}

func tokenize(s string) []string {
	parts := delimRe.Split(s, -1)
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		p = trimEdges(p)
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// pickYear selects the release year from the token stream. A year token
// immediately followed by a resolution/source tag (the typical release
// naming position) wins over earlier plausible years; otherwise the first
// plausible year is used. Returns the year and its token index (-1 if none).
func pickYear(tokens []string) (int, int) {
	first := -1
	for i, tok := range tokens {
		y := plausibleYear(tok)
		if y == 0 {
			continue
		}
		if i+1 < len(tokens) && isSourceTag(strings.ToLower(tokens[i+1])) {
			return y, i
		}
		if first == -1 {
			first = i
		}
	}
	if first == -1 {
		return 0, -1
	}
	return plausibleYear(tokens[first]), first
}

// assembleTitle joins the title tokens preceding the metadata tail.
// Everything from the selected year or the first recognized noise token
// onward is release metadata and discarded.
func assembleTitle(tokens []string, yearIdx int) string {
	cut := len(tokens)
	if yearIdx >= 0 && yearIdx < cut {
		cut = yearIdx
	}
	for i, tok := range tokens {
		if i >= cut {
			break
		}
		if isNoiseToken(strings.ToLower(tok)) {
			cut = i
			break
		}
	}

	kept := make([]string, 0, cut)
	for _, tok := range tokens[:cut] {
		if digitsRe.MatchString(tok) && plausibleYear(tok) == 0 {
			// Stray numbers (audio channels, disc numbers) are noise;
			// plausible years inside the kept range stay as title text
			// ("2012", "1917") since the release year was taken elsewhere.
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

// salvageTitle keeps every token that is not the selected year, a noise
// tag, or a stray number. Used when the year precedes the title and the
// positional cut in assembleTitle discards everything.
func salvageTitle(tokens []string, yearIdx int) string {
	kept := make([]string, 0, len(tokens))
	for i, tok := range tokens {
		if i == yearIdx || isNoiseToken(strings.ToLower(tok)) {
			continue
		}
		if digitsRe.MatchString(tok) && plausibleYear(tok) == 0 {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

// trimEdges removes leading/trailing punctuation noise while preserving
// interior characters.
func trimEdges(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// splitScripts detects release names that embed both a localized CJK title
// and an original Latin title, and splits them. The script that appears
// first becomes the primary title.
func splitScripts(title string) (primary, alternate string) {
	var cjk, latin []rune
	firstScript := 0 // 0 unknown, 1 cjk, 2 latin

	for _, r := range title {
		switch {
		case isCJK(r):
			cjk = append(cjk, r)
			if firstScript == 0 {
				firstScript = 1
			}
		default:
			latin = append(latin, r)
			if firstScript == 0 && unicode.IsLetter(r) {
				firstScript = 2
			}
		}
	}

	cjkTitle := strings.TrimSpace(string(cjk))
	latinTitle := strings.Join(strings.Fields(string(latin)), " ")
	latinTitle = trimEdges(latinTitle)

	if cjkTitle == "" || latinTitle == "" {
		return strings.TrimSpace(title), ""
	}
	if firstScript == 1 {
		return cjkTitle, latinTitle
	}
	return latinTitle, cjkTitle
}

func isCJK(r rune) bool {
	return unicode.Is(unicode.Han, r) ||
		unicode.Is(unicode.Hiragana, r) ||
		unicode.Is(unicode.Katakana, r) ||
		unicode.Is(unicode.Hangul, r)
}

// HasCJK reports whether the string contains CJK characters. Used to pick
// the label index language for upstream searches.
func HasCJK(s string) bool {
	for _, r := range s {
		if isCJK(r) {
			return true
		}
	}
	return false
}
