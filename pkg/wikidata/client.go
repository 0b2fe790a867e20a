package wikidata

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"cineseek/pkg/request"
)

const apiEndpoint = "https://www.wikidata.org/w/api.php"

// Wikidata allows max 50 IDs per wbgetentities request.
const batchSize = 50

// Client talks to the Wikidata action API.
type Client struct {
	request     *request.Client
	APIEndpoint string
	// CacheRefs enables transport caching for reference-data lookups
	// (linked-entity labels). Entity details and searches are never cached.
	CacheRefs bool
	// LocalLanguage selects the non-English wiki edition and label index
	// for sitelinks and linked-label resolution.
	LocalLanguage string
	Logger        *slog.Logger
}

// NewClient creates a new Wikidata client.
func NewClient(r *request.Client, logger *slog.Logger) *Client {
	return &Client{
		request:       r,
		APIEndpoint:   apiEndpoint,
		LocalLanguage: "zh",
		Logger:        logger,
	}
}

// SearchEntities searches for items in Wikidata by label. The language
// selects the label index to search; limit bounds the fan-out.
func (c *Client) SearchEntities(ctx context.Context, query, language string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 5
	}

	u, _ := url.Parse(c.APIEndpoint)
	q := u.Query()
	q.Add("action", "wbsearchentities")
	q.Add("search", query)
	q.Add("language", language)
	q.Add("uselang", language)
	q.Add("format", "json")
	q.Add("type", "item")
	q.Add("limit", strconv.Itoa(limit))
	u.RawQuery = q.Encode()

	body, err := c.request.Get(ctx, u.String(), "")
	if err != nil {
		return nil, err
	}

	var result struct {
		Search []SearchResult `json:"search"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	return result.Search, nil
}

// GetEntitiesBatch fetches labels, claims, and sitelinks for multiple
// entities, chunked to the API's batch limit. A failed chunk drops its ids
// from the result; the error of the last failed chunk is returned alongside
// whatever succeeded, so the caller can distinguish partial from total loss.
func (c *Client) GetEntitiesBatch(ctx context.Context, ids []string) (map[string]Entity, error) {
	resultMap := make(map[string]Entity)
	if len(ids) == 0 {
		return resultMap, nil
	}

	// Sort a copy for deterministic chunking.
	sortedIDs := make([]string, len(ids))
	copy(sortedIDs, ids)
	sort.Strings(sortedIDs)

	var lastErr error
	for i := 0; i < len(sortedIDs); i += batchSize {
		end := i + batchSize
		if end > len(sortedIDs) {
			end = len(sortedIDs)
		}
		chunk := sortedIDs[i:end]

		u, _ := url.Parse(c.APIEndpoint)
		q := u.Query()
		q.Add("action", "wbgetentities")
		q.Add("format", "json")
		q.Add("ids", strings.Join(chunk, "|"))
		q.Add("props", "claims|labels|sitelinks/urls")
		q.Add("sitefilter", c.LocalLanguage+"wiki|enwiki")
		u.RawQuery = q.Encode()

		body, err := c.request.Get(ctx, u.String(), "")
		if err != nil {
			c.Logger.Warn("entity batch fetch failed", "ids", len(chunk), "error", err)
			lastErr = err
			continue
		}

		var result entityResponse
		if err := json.Unmarshal(body, &result); err != nil {
			c.Logger.Warn("entity batch decode failed", "error", err)
			lastErr = fmt.Errorf("%w: %v", ErrParse, err)
			continue
		}

		for id, ent := range result.Entities {
			resultMap[id] = parseEntity(ent)
		}
	}

	return resultMap, lastErr
}

// ResolveLabels fetches display labels for linked entities (genres,
// countries) in the given languages. Unresolvable ids are omitted. This is
// stable reference data, so it may go through the transport cache.
func (c *Client) ResolveLabels(ctx context.Context, ids []string, languages []string) (map[string]map[string]string, error) {
	labels := make(map[string]map[string]string)
	if len(ids) == 0 {
		return labels, nil
	}

	sortedIDs := make([]string, len(ids))
	copy(sortedIDs, ids)
	sort.Strings(sortedIDs)

	langParam := strings.Join(languages, "|")

	var lastErr error
	for i := 0; i < len(sortedIDs); i += batchSize {
		end := i + batchSize
		if end > len(sortedIDs) {
			end = len(sortedIDs)
		}
		chunk := sortedIDs[i:end]
		idStr := strings.Join(chunk, "|")

		u, _ := url.Parse(c.APIEndpoint)
		q := u.Query()
		q.Add("action", "wbgetentities")
		q.Add("format", "json")
		q.Add("ids", idStr)
		q.Add("props", "labels")
		q.Add("languages", langParam)
		u.RawQuery = q.Encode()

		cacheKey := ""
		if c.CacheRefs {
			hash := md5.Sum([]byte(idStr + "|" + langParam))
			cacheKey = "wd_labels_" + hex.EncodeToString(hash[:])
		}

		body, err := c.request.Get(ctx, u.String(), cacheKey)
		if err != nil {
			c.Logger.Warn("label resolution failed", "ids", len(chunk), "error", err)
			lastErr = err
			continue
		}

		var result entityResponse
		if err := json.Unmarshal(body, &result); err != nil {
			lastErr = fmt.Errorf("%w: %v", ErrParse, err)
			continue
		}

		for id, ent := range result.Entities {
			if len(ent.Labels) == 0 {
				continue
			}
			m := make(map[string]string, len(ent.Labels))
			for lang, lbl := range ent.Labels {
				m[lang] = lbl.Value
			}
			labels[id] = m
		}
	}

	return labels, lastErr
}

// -- Internal parsing structs --

type entityResponse struct {
	Entities map[string]rawEntity `json:"entities"`
}

type rawEntity struct {
	Labels map[string]struct {
		Value string `json:"value"`
	} `json:"labels"`
	Claims map[string][]struct {
		Mainsnak map[string]interface{} `json:"mainsnak"`
	} `json:"claims"`
	Sitelinks map[string]struct {
		Site  string `json:"site"`
		Title string `json:"title"`
		URL   string `json:"url"`
	} `json:"sitelinks"`
}

// parseEntity converts the loosely-typed API payload into an Entity.
// Malformed claim values are skipped, never fatal.
func parseEntity(ent rawEntity) Entity {
	e := Entity{
		Labels:    make(map[string]string, len(ent.Labels)),
		Claims:    make(map[string][]string),
		Strings:   make(map[string][]string),
		Times:     make(map[string][]string),
		Sitelinks: make(map[string]string),
	}

	for lang, lbl := range ent.Labels {
		e.Labels[lang] = lbl.Value
	}

	for prop, claims := range ent.Claims {
		for _, claim := range claims {
			datavalue, ok := claim.Mainsnak["datavalue"].(map[string]interface{})
			if !ok {
				continue
			}
			switch val := datavalue["value"].(type) {
			case map[string]interface{}:
				if id, ok := val["id"].(string); ok {
					e.Claims[prop] = append(e.Claims[prop], id)
				} else if ts, ok := val["time"].(string); ok {
					e.Times[prop] = append(e.Times[prop], ts)
				}
			case string:
				e.Strings[prop] = append(e.Strings[prop], val)
			}
		}
	}

	for site, link := range ent.Sitelinks {
		if link.URL != "" {
			e.Sitelinks[site] = link.URL
		}
	}

	return e
}
