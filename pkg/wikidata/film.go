package wikidata

import (
	"context"
	"strconv"
	"strings"
)

// FetchFilms retrieves the candidate ids and reduces them to film entities
// with extracted fields. Non-film entities are dropped before ranking.
// Per-id failures shrink the candidate pool; ErrUnavailable is returned
// only when nothing could be fetched at all.
func (c *Client) FetchFilms(ctx context.Context, ids []string) (map[string]*Film, error) {
	films := make(map[string]*Film)
	if len(ids) == 0 {
		return films, nil
	}

	entities, fetchErr := c.GetEntitiesBatch(ctx, ids)
	if len(entities) == 0 && fetchErr != nil {
		return nil, ErrUnavailable
	}

	local := c.LocalLanguage

	var linkedIDs []string
	for id, ent := range entities {
		if !IsFilmType(ent.Claims[propInstanceOf]) {
			c.Logger.Debug("candidate dropped by type filter", "qid", id)
			continue
		}

		film := &Film{
			QID:       id,
			Labels:    ent.Labels,
			Year:      publicationYear(ent.Times[propPublicationDate]),
			Sitelinks: make(map[string]string, 2),
		}
		if imgs := ent.Strings[propImage]; len(imgs) > 0 {
			film.ImageFile = imgs[0]
		}
		if u, ok := ent.Sitelinks[local+"wiki"]; ok {
			film.Sitelinks[local] = u
		}
		if u, ok := ent.Sitelinks["enwiki"]; ok {
			film.Sitelinks["en"] = u
		}

		films[id] = film
		linkedIDs = append(linkedIDs, ent.Claims[propGenre]...)
		linkedIDs = append(linkedIDs, ent.Claims[propCountryOfOrigin]...)
	}

	if len(films) == 0 {
		return films, nil
	}

	// Resolve genre/country ids to display strings. Failures here degrade
	// the metadata, never the match.
	languages := []string{local, "en"}
	if local == "en" {
		languages = []string{"en"}
	}
	labels, err := c.ResolveLabels(ctx, dedupe(linkedIDs), languages)
	if err != nil {
		c.Logger.Warn("linked label resolution incomplete", "error", err)
	}

	for id, film := range films {
		ent := entities[id]
		film.Genres = labelStrings(ent.Claims[propGenre], labels, local)
		film.Countries = labelStrings(ent.Claims[propCountryOfOrigin], labels, local)
	}

	return films, nil
}

// publicationYear extracts the year from the first parseable P577 time
// value, e.g. "+2013-06-27T00:00:00Z".
func publicationYear(times []string) int {
	for _, ts := range times {
		ts = strings.TrimPrefix(ts, "+")
		if len(ts) < 4 {
			continue
		}
		if y, err := strconv.Atoi(ts[:4]); err == nil && y > 0 {
			return y
		}
	}
	return 0
}

// labelStrings maps linked ids to display labels, preferring the local
// language. Unresolved ids are silently omitted rather than shown as QIDs.
func labelStrings(ids []string, labels map[string]map[string]string, local string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, id := range ids {
		langs, ok := labels[id]
		if !ok {
			continue
		}
		label := langs[local]
		if label == "" {
			label = langs["en"]
		}
		if label == "" {
			continue
		}
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}
	return out
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
