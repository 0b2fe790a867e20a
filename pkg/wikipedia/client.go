package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"cineseek/pkg/request"
)

// Client handles Wikipedia REST API interactions.
type Client struct {
	request      *request.Client
	RESTEndpoint string // Optional override for testing
}

// NewClient creates a new Wikipedia client.
func NewClient(r *request.Client) *Client {
	return &Client{request: r}
}

// GetSummaryThumbnail fetches the page-summary thumbnail for an article,
// given its full URL and language edition. Returns an empty string when the
// page has no usable image.
func (c *Client) GetSummaryThumbnail(ctx context.Context, articleURL, lang string) (string, error) {
	title := articleTitle(articleURL)
	if title == "" {
		return "", fmt.Errorf("no article title in url: %s", articleURL)
	}
	if lang == "" {
		lang = "en"
	}

	var endpoint string
	if c.RESTEndpoint != "" {
		endpoint = c.RESTEndpoint
	} else {
		endpoint = fmt.Sprintf("https://%s.wikipedia.org/api/rest_v1", lang)
	}

	u := endpoint + "/page/summary/" + url.PathEscape(title)

	headers := map[string]string{"Accept": "application/json"}
	body, err := c.request.GetWithHeaders(ctx, u, headers, "")
	if err != nil {
		return "", err
	}

	var summary struct {
		Thumbnail struct {
			Source string `json:"source"`
		} `json:"thumbnail"`
		OriginalImage struct {
			Source string `json:"source"`
		} `json:"originalimage"`
	}
	if err := json.Unmarshal(body, &summary); err != nil {
		return "", fmt.Errorf("failed to decode summary json: %w", err)
	}

	if summary.OriginalImage.Source != "" {
		return summary.OriginalImage.Source, nil
	}
	return summary.Thumbnail.Source, nil
}

// articleTitle extracts the title segment from a /wiki/<title> URL.
func articleTitle(articleURL string) string {
	parsed, err := url.Parse(articleURL)
	if err != nil {
		return ""
	}
	path := parsed.Path
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		path = path[idx+1:]
	}
	// Sitelink URLs are percent-encoded; the REST path wants the raw title.
	if decoded, err := url.PathUnescape(path); err == nil {
		return decoded
	}
	return path
}
