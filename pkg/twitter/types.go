package twitter

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
)

// Credentials holds the keys for the Twitter v1.1 REST API. ConsumerKey
// and AccessToken are required; when both secrets are also set, requests
// are signed with OAuth 1.0a instead of the application bearer token.
type Credentials struct {
	ConsumerKey    string
	ConsumerSecret string
	AccessToken    string
	AccessSecret   string
}

// SearchParams are the query parameters for GET search/tweets.
type SearchParams struct {
	Query   string
	Count   int
	Geocode string
	SinceID *int64
	MaxID   *int64
}

// Coordinates is a GeoJSON-style point attached to a tweet, ordered
// longitude first.
type Coordinates struct {
	Type   string    `json:"type"`
	Points []float64 `json:"coordinates"`
}

// Longitude returns the first coordinate.
func (c Coordinates) Longitude() float64 { return c.Points[0] }

// Latitude returns the second coordinate.
func (c Coordinates) Latitude() float64 { return c.Points[1] }

// MediaEntity is one element of entities.media on a tweet.
type MediaEntity struct {
	Type          string `json:"type"`
	MediaURL      string `json:"media_url"`
	MediaURLHTTPS string `json:"media_url_https"`
}

// URL returns the preferred address for the entity's content.
func (m MediaEntity) URL() string {
	if m.MediaURLHTTPS != "" {
		return m.MediaURLHTTPS
	}
	return m.MediaURL
}

// Entities holds the attachments of a tweet.
type Entities struct {
	Media []MediaEntity `json:"media"`
}

// Tweet is one status from a search page. Raw preserves the provider's
// record verbatim for pass-through into feature properties.
type Tweet struct {
	ID          *int64       `json:"id"`
	Text        *string      `json:"text"`
	Coordinates *Coordinates `json:"coordinates"`
	Entities    Entities     `json:"entities"`

	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the typed fields and keeps the original bytes.
func (t *Tweet) UnmarshalJSON(data []byte) error {
	type alias Tweet
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*t = Tweet(a)
	t.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// SearchMetadata is the pagination block of a search response.
type SearchMetadata struct {
	NextResults string `json:"next_results"`
}

// SearchResponse is one page of GET search/tweets. Statuses is a pointer
// so a page missing the container entirely is distinguishable from an
// empty page.
type SearchResponse struct {
	Statuses *[]Tweet        `json:"statuses"`
	Metadata *SearchMetadata `json:"search_metadata"`
}

// NextMaxID extracts the max_id cursor from search_metadata.next_results
// (a query-string fragment such as "?max_id=123&q=..."). It returns
// false when the provider signals no further page.
func (r *SearchResponse) NextMaxID() (int64, bool) {
	if r.Metadata == nil || r.Metadata.NextResults == "" {
		return 0, false
	}
	values, err := url.ParseQuery(strings.TrimPrefix(r.Metadata.NextResults, "?"))
	if err != nil {
		return 0, false
	}
	id, err := strconv.ParseInt(values.Get("max_id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// RateLimit is the search budget reported by the provider.
type RateLimit struct {
	Limit     int   `json:"limit"`
	Remaining int   `json:"remaining"`
	Reset     int64 `json:"reset"`
}
