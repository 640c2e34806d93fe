package twitter

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/require"

	api "github.com/openfusion/geofetch/pkg/twitter"
)

// fakeImages is an in-memory fetcher.Fetcher.
type fakeImages struct {
	data  map[string][]byte
	err   error
	calls []string
}

func (f *fakeImages) Fetch(_ context.Context, rawURL string) ([]byte, error) {
	f.calls = append(f.calls, rawURL)
	if f.err != nil {
		return nil, f.err
	}
	if data, ok := f.data[rawURL]; ok {
		return data, nil
	}
	return nil, eris.Errorf("no image at %s", rawURL)
}

// fakeClient is a scripted api.Client that returns canned pages in order.
type fakeClient struct {
	limit      *api.RateLimit
	limitErr   error
	limitCalls int

	pages       []*api.SearchResponse
	searchErr   error
	searchCalls []api.SearchParams
}

func (f *fakeClient) SearchRateLimit(context.Context) (*api.RateLimit, error) {
	f.limitCalls++
	if f.limitErr != nil {
		return nil, f.limitErr
	}
	return f.limit, nil
}

func (f *fakeClient) Search(_ context.Context, params api.SearchParams) (*api.SearchResponse, error) {
	f.searchCalls = append(f.searchCalls, params)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	page := f.pages[0]
	if len(f.pages) > 1 {
		f.pages = f.pages[1:]
	}
	return page, nil
}

func tweetFromJSON(t *testing.T, raw string) api.Tweet {
	t.Helper()
	var tweet api.Tweet
	require.NoError(t, json.Unmarshal([]byte(raw), &tweet))
	return tweet
}

func pageFromJSON(t *testing.T, raw string) *api.SearchResponse {
	t.Helper()
	var page api.SearchResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &page))
	return &page
}
