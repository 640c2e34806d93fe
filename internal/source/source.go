// Package source defines the capability interface for geotagged-post
// sources and the registry that dispatches requests to them.
package source

import (
	"context"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/openfusion/geofetch/internal/model"
)

// Options are runtime modifiers applied to every source.
type Options struct {
	// Strict restricts emitted properties to the media kinds that were
	// explicitly requested.
	Strict bool
	// MaxPages caps the number of search calls one fetch may issue.
	// A cap below one yields an empty result without contacting the
	// provider, so callers must pass an explicit budget.
	MaxPages int
}

// Source fetches geotagged posts from one public API.
type Source interface {
	// Name returns the source identifier used for registry dispatch.
	Name() string
	// Fetch retrieves up to req.Quantity features matching the request.
	Fetch(ctx context.Context, req model.Request, opts Options) (*geojson.FeatureCollection, error)
}

// Registry manages available sources.
type Registry struct {
	mu      sync.RWMutex
	sources map[string]Source
}

// NewRegistry creates an empty source registry.
func NewRegistry() *Registry {
	return &Registry{
		sources: make(map[string]Source),
	}
}

// Register adds a source to the registry.
func (r *Registry) Register(s Source) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[strings.ToLower(s.Name())] = s
}

// Get returns a source by name (case-insensitive), or nil if not found.
func (r *Registry) Get(name string) Source {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sources[strings.ToLower(name)]
}

// List returns all registered source names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	return names
}

// FetchAll validates the request, dispatches it to each named source in
// order, and merges the returned features into one collection. Empty
// media or a zero quantity short-circuits before any source is
// consulted. An unrecognized name or a failing source aborts the whole
// call; features from earlier sources are discarded.
func (r *Registry) FetchAll(ctx context.Context, names []string, req model.Request, opts Options) (*geojson.FeatureCollection, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	collection := &geojson.FeatureCollection{Features: []*geojson.Feature{}}
	if len(req.Media) == 0 || req.Quantity <= 0 {
		return collection, nil
	}

	for _, name := range names {
		src := r.Get(name)
		if src == nil {
			return nil, eris.Errorf("source: %q is an unrecognized source; valid sources are %v", name, r.List())
		}
		part, err := src.Fetch(ctx, req, opts)
		if err != nil {
			return nil, err
		}
		collection.Features = append(collection.Features, part.Features...)
	}
	return collection, nil
}
