package twitter

import (
	"fmt"

	"github.com/rotisserie/eris"
)

// Sentinel errors callers can branch on with errors.Is.
var (
	// ErrNoSearchCriteria means the sanitized query has neither a keyword
	// nor a location, so there is nothing to search on.
	ErrNoSearchCriteria = eris.New("twitter: specify either a keyword or a location")

	// ErrMalformedResponse means a search page came back without its
	// results container. The provider signals an overly complex query
	// this way, so the whole fetch fails rather than returning a
	// partial collection.
	ErrMalformedResponse = eris.New("twitter: the request is too complex")
)

// QuotaError reports that the search budget could not be determined
// before the first page. No search call is attempted.
type QuotaError struct {
	Err error
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("twitter: limits are not available: %v", e.Err)
}

func (e *QuotaError) Unwrap() error { return e.Err }

// ImageFetchError reports a failed attachment download. The fetch is
// aborted rather than emitting a feature without its requested image.
type ImageFetchError struct {
	URL string
	Err error
}

func (e *ImageFetchError) Error() string {
	return fmt.Sprintf("twitter: fetch image %s: %v", e.URL, e.Err)
}

func (e *ImageFetchError) Unwrap() error { return e.Err }
