package twitter

import (
	"strconv"
	"strings"

	"github.com/openfusion/geofetch/internal/model"
)

// imageHintToken narrows a search to tweets with (or without) attached
// pictures; the provider treats a leading "-" as exclusion.
const imageHintToken = "pic.twitter.com"

// searchPageCap is the maximum count accepted by GET search/tweets.
const searchPageCap = 100

// supportedMedia is the subset of media kinds the provider can search.
var supportedMedia = []model.MediaKind{model.MediaImage, model.MediaText}

// providerQuery is the sanitized, provider-specific form of a request.
// It is computed once per fetch and never mutated.
type providerQuery struct {
	media    []model.MediaKind
	keyword  string
	quantity int
	geocode  string
	sinceID  *int64
	maxID    *int64
}

// sanitizeRequest converts a generic request into a providerQuery.
// Unsupported media are dropped silently; when exactly one supported
// medium remains the keyword gains a disambiguating hint. It fails only
// when neither a keyword nor a geocode survives sanitization.
func sanitizeRequest(req model.Request) (providerQuery, error) {
	var media []model.MediaKind
	for _, want := range supportedMedia {
		if req.HasMedium(want) {
			media = append(media, want)
		}
	}

	keyword := req.Keyword
	if len(media) == 1 {
		switch media[0] {
		case model.MediaImage:
			keyword += " " + imageHintToken
		case model.MediaText:
			keyword += " -" + imageHintToken
		}
	}
	keyword = strings.TrimSpace(keyword)

	geocode := ""
	if req.Location != nil && req.Location.Radius > 0 {
		geocode = geocodeFromLocation(*req.Location)
	}

	if (keyword == "" || keyword == "-"+imageHintToken) && geocode == "" {
		return providerQuery{}, ErrNoSearchCriteria
	}

	var sinceID, maxID *int64
	if req.Interval != nil {
		interval := req.Interval.Normalize()
		since := IDFromTime(interval.Earliest)
		max := IDFromTime(interval.Latest)
		sinceID, maxID = &since, &max
	}

	return providerQuery{
		media:    media,
		keyword:  keyword,
		quantity: req.Quantity,
		geocode:  geocode,
		sinceID:  sinceID,
		maxID:    maxID,
	}, nil
}

// geocodeFromLocation renders a location as "<lat>,<lon>,<radius><unit>".
func geocodeFromLocation(l model.Location) string {
	return formatCoord(l.Latitude) + "," + formatCoord(l.Longitude) + "," + formatCoord(l.Radius) + string(l.Unit)
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
