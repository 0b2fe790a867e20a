package wikidata

// SearchResult is one hit from the entity label-search endpoint.
type SearchResult struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// Entity contains raw Wikidata entity data for one QID.
type Entity struct {
	Labels    map[string]string   // language -> label
	Claims    map[string][]string // property -> target QIDs
	Strings   map[string][]string // property -> string values (e.g. P18 filenames)
	Times     map[string][]string // property -> time values (e.g. P577 dates)
	Sitelinks map[string]string   // site (zhwiki/enwiki) -> article URL
}

// Film is a candidate movie entity with its extracted fields. Genres and
// countries are resolved to display strings; the image is kept as the raw
// Commons filename until assembly.
type Film struct {
	QID        string
	Labels     map[string]string
	Year       int
	Genres     []string
	Countries  []string
	ImageFile  string
	Sitelinks  map[string]string // language (zh/en) -> article URL
	SearchRank int               // position in the concatenated search results
}

// Wikidata property identifiers used by the fetcher.
const (
	propInstanceOf      = "P31"
	propPublicationDate = "P577"
	propGenre           = "P136"
	propCountryOfOrigin = "P495"
	propImage           = "P18"
)

// filmTypes is the set of P31 targets accepted as "film" (Q11424 and its
// recognized subtypes). The search endpoint is not type-restricted, so
// actors, novels, and franchises sharing a label must be filtered out here.
var filmTypes = map[string]struct{}{
	"Q11424":    {}, // film
	"Q24869":    {}, // feature film
	"Q24862":    {}, // short film
	"Q202866":   {}, // animated film
	"Q93204":    {}, // documentary film
	"Q506240":   {}, // television film
	"Q229390":   {}, // 3D film
	"Q226730":   {}, // silent film
	"Q20442589": {}, // animated feature film
}

// IsFilmType reports whether any of the instance-of targets is a
// recognized film type.
func IsFilmType(instanceOf []string) bool {
	for _, qid := range instanceOf {
		if _, ok := filmTypes[qid]; ok {
			return true
		}
	}
	return false
}
