package wikidata

import "errors"

var (
	// ErrUnavailable indicates that every request avenue toward the
	// upstream API failed for this call.
	ErrUnavailable = errors.New("wikidata unavailable")
	// ErrParse indicates a failure to parse an upstream response.
	ErrParse = errors.New("wikidata parse error")
)
