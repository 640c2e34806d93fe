package twitter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openfusion/geofetch/internal/model"
)

func TestSanitizeRequest_DropsUnsupportedMedia(t *testing.T) {
	t.Parallel()

	query, err := sanitizeRequest(model.Request{
		Media:   []model.MediaKind{model.MediaSound, model.MediaVideo, model.MediaText, model.MediaImage},
		Keyword: "spam",
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []model.MediaKind{model.MediaImage, model.MediaText}, query.media)
	// Both supported kinds remain, so the keyword gains no hint.
	assert.Equal(t, "spam", query.keyword)
}

func TestSanitizeRequest_ImageOnlyHint(t *testing.T) {
	t.Parallel()

	query, err := sanitizeRequest(model.Request{
		Media:   []model.MediaKind{model.MediaImage},
		Keyword: "spam",
	})
	require.NoError(t, err)
	assert.Equal(t, "spam pic.twitter.com", query.keyword)
}

func TestSanitizeRequest_TextOnlyHint(t *testing.T) {
	t.Parallel()

	query, err := sanitizeRequest(model.Request{
		Media:   []model.MediaKind{model.MediaText},
		Keyword: "spam",
	})
	require.NoError(t, err)
	assert.Equal(t, "spam -pic.twitter.com", query.keyword)
}

func TestSanitizeRequest_TrimsKeyword(t *testing.T) {
	t.Parallel()

	query, err := sanitizeRequest(model.Request{
		Media:   []model.MediaKind{model.MediaImage, model.MediaText},
		Keyword: "  spam  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "spam", query.keyword)
}

func TestSanitizeRequest_NoCriteria(t *testing.T) {
	t.Parallel()

	cases := map[string]model.Request{
		"empty keyword, no location": {
			Media: []model.MediaKind{model.MediaImage, model.MediaText},
		},
		"exclusion hint alone": {
			// A text-only request turns an empty keyword into the bare
			// exclusion token, which is still nothing to search on.
			Media: []model.MediaKind{model.MediaText},
		},
		"zero radius location": {
			Media:    []model.MediaKind{model.MediaImage, model.MediaText},
			Location: &model.Location{Latitude: 0, Longitude: 0.1, Radius: 0, Unit: model.UnitKilometers},
		},
	}
	for name, req := range cases {
		req := req
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := sanitizeRequest(req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrNoSearchCriteria))
		})
	}
}

func TestSanitizeRequest_LocationAloneSuffices(t *testing.T) {
	t.Parallel()

	query, err := sanitizeRequest(model.Request{
		Media:    []model.MediaKind{model.MediaImage, model.MediaText},
		Location: &model.Location{Latitude: 0, Longitude: 0.1, Radius: 2, Unit: model.UnitKilometers},
	})
	require.NoError(t, err)
	assert.Equal(t, "0,0.1,2km", query.geocode)
	assert.Empty(t, query.keyword)
}

func TestGeocodeFromLocation(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "45.5,-122.675,10mi", geocodeFromLocation(model.Location{
		Latitude:  45.5,
		Longitude: -122.675,
		Radius:    10,
		Unit:      model.UnitMiles,
	}))
}

func TestSanitizeRequest_IntervalBounds(t *testing.T) {
	t.Parallel()

	query, err := sanitizeRequest(model.Request{
		Media:    []model.MediaKind{model.MediaImage, model.MediaText},
		Keyword:  "spam",
		Interval: &model.Interval{Earliest: 1325376000, Latest: 1388534400},
	})
	require.NoError(t, err)

	require.NotNil(t, query.sinceID)
	require.NotNil(t, query.maxID)
	assert.Equal(t, IDFromTime(1325376000), *query.sinceID)
	assert.Equal(t, IDFromTime(1388534400), *query.maxID)
	assert.Less(t, *query.sinceID, *query.maxID)
}

func TestSanitizeRequest_IntervalNormalized(t *testing.T) {
	t.Parallel()

	// Reversed bounds are swapped before ID computation.
	query, err := sanitizeRequest(model.Request{
		Media:    []model.MediaKind{model.MediaImage, model.MediaText},
		Keyword:  "spam",
		Interval: &model.Interval{Earliest: 1388534400, Latest: 1325376000},
	})
	require.NoError(t, err)

	assert.Equal(t, IDFromTime(1325376000), *query.sinceID)
	assert.Equal(t, IDFromTime(1388534400), *query.maxID)
}

func TestSanitizeRequest_NoInterval(t *testing.T) {
	t.Parallel()

	query, err := sanitizeRequest(model.Request{
		Media:   []model.MediaKind{model.MediaText, model.MediaImage},
		Keyword: "spam",
	})
	require.NoError(t, err)
	assert.Nil(t, query.sinceID)
	assert.Nil(t, query.maxID)
}
