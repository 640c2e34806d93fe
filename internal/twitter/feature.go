package twitter

import (
	"context"
	"encoding/base64"
	"math"
	"strings"
	"time"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/openfusion/geofetch/internal/fetcher"
	"github.com/openfusion/geofetch/internal/model"
	api "github.com/openfusion/geofetch/pkg/twitter"
)

// sourceName tags every emitted feature with its origin.
const sourceName = "twitter"

// buildFeature converts one geotagged, timestamped tweet into a GeoJSON
// Feature. The raw provider record rides along under "original".
// Strict mode restricts text and image properties to the media kinds
// that were explicitly requested.
func buildFeature(ctx context.Context, tweet api.Tweet, media []model.MediaKind, strict bool, images fetcher.Fetcher) (*geojson.Feature, error) {
	properties := map[string]interface{}{
		"source":   sourceName,
		"time":     isoTime(TimeFromID(*tweet.ID)),
		"original": tweet.Raw,
	}

	if tweet.Text != nil && (hasMedium(media, model.MediaText) || !strict) {
		properties["text"] = *tweet.Text
	}

	if hasMedium(media, model.MediaImage) || !strict {
		for _, entity := range tweet.Entities.Media {
			if !strings.EqualFold(entity.Type, "photo") || entity.URL() == "" {
				continue
			}
			data, err := images.Fetch(ctx, entity.URL())
			if err != nil {
				return nil, &ImageFetchError{URL: entity.URL(), Err: err}
			}
			properties["image"] = base64.StdEncoding.EncodeToString(data)
			break
		}
	}

	return &geojson.Feature{
		Geometry:   geom.NewPointFlat(geom.XY, []float64{tweet.Coordinates.Longitude(), tweet.Coordinates.Latitude()}),
		Properties: properties,
	}, nil
}

// isoTime renders a POSIX timestamp as UTC ISO-8601 with a trailing Z.
// Snowflake-derived timestamps are millisecond aligned, so microsecond
// precision is only printed when the fraction is nonzero.
func isoTime(ts float64) string {
	t := time.UnixMilli(int64(math.Round(ts * 1000))).UTC()
	if t.Nanosecond() == 0 {
		return t.Format("2006-01-02T15:04:05") + "Z"
	}
	return t.Format("2006-01-02T15:04:05.000000") + "Z"
}

func hasMedium(media []model.MediaKind, kind model.MediaKind) bool {
	for _, m := range media {
		if m == kind {
			return true
		}
	}
	return false
}
