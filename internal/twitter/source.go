// Package twitter implements the Twitter source: it sanitizes generic
// requests into provider queries, checks the remaining search budget,
// and pages through GET search/tweets until the requested quantity is
// satisfied or the budget runs out.
package twitter

import (
	"context"

	"github.com/google/uuid"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"

	"github.com/openfusion/geofetch/internal/fetcher"
	"github.com/openfusion/geofetch/internal/model"
	"github.com/openfusion/geofetch/internal/source"
	api "github.com/openfusion/geofetch/pkg/twitter"
)

// Source fetches geotagged tweets. It holds no per-fetch state, so one
// Source may serve concurrent fetches; concurrent fetches are not
// coordinated against the provider's shared rate limit.
type Source struct {
	client api.Client
	images fetcher.Fetcher
	log    *zap.Logger
}

// New creates a Twitter source backed by the given search client and
// attachment transport.
func New(client api.Client, images fetcher.Fetcher, log *zap.Logger) *Source {
	return &Source{client: client, images: images, log: log}
}

// Name implements source.Source.
func (s *Source) Name() string { return sourceName }

// Fetch implements source.Source. It returns between zero and
// req.Quantity features; fewer when the page budget or the provider's
// results are exhausted first. Every error is terminal: nothing is
// retried and accumulated features are discarded.
func (s *Source) Fetch(ctx context.Context, req model.Request, opts source.Options) (*geojson.FeatureCollection, error) {
	query, err := sanitizeRequest(req)
	if err != nil {
		return nil, err
	}

	log := s.log.With(zap.String("qid", uuid.NewString()[:8]))

	collection := &geojson.FeatureCollection{Features: []*geojson.Feature{}}
	if len(query.media) == 0 || query.quantity < 1 || opts.MaxPages < 1 {
		log.Info("twitter: no results were requested")
		return collection, nil
	}

	limit, err := s.client.SearchRateLimit(ctx)
	if err != nil {
		return nil, &QuotaError{Err: err}
	}
	log.Info("twitter: search budget",
		zap.Int("remaining", limit.Remaining),
		zap.Int64("reset", limit.Reset),
	)

	budget := min(limit.Remaining, opts.MaxPages)
	pages := 0
	cursor := query.maxID
	for len(collection.Features) < query.quantity {
		if pages >= budget {
			log.Warn("twitter: the query limit has been reached", zap.Int("pages", pages))
			break
		}

		page, err := s.client.Search(ctx, api.SearchParams{
			Query:   query.keyword,
			Count:   min(query.quantity-len(collection.Features), searchPageCap),
			Geocode: query.geocode,
			SinceID: query.sinceID,
			MaxID:   cursor,
		})
		pages++
		if err != nil {
			return nil, err
		}
		if page.Statuses == nil {
			log.Warn("twitter: search page missing statuses")
			return nil, ErrMalformedResponse
		}

		// Results must be geotagged and timestamped; everything else is
		// dropped. Duplicates across pages are trusted as distinct.
		for _, tweet := range *page.Statuses {
			if tweet.Coordinates == nil || tweet.ID == nil {
				continue
			}
			feature, err := buildFeature(ctx, tweet, query.media, opts.Strict, s.images)
			if err != nil {
				return nil, err
			}
			collection.Features = append(collection.Features, feature)
		}

		next, ok := page.NextMaxID()
		if !ok {
			log.Info("twitter: all available results have been retrieved")
			break
		}
		cursor = &next
	}

	log.Debug("twitter: fetch complete",
		zap.Int("pages", pages),
		zap.Int("budget", budget),
		zap.Int("features", len(collection.Features)),
		zap.Int("requested", query.quantity),
	)
	return collection, nil
}
