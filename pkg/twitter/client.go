// Package twitter provides a client for the Twitter v1.1 search and
// rate-limit-status endpoints.
package twitter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dghubble/oauth1"
	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// Client defines the Twitter v1.1 operations used by the fetch pipeline.
type Client interface {
	// Search fetches one page of GET search/tweets.
	Search(ctx context.Context, params SearchParams) (*SearchResponse, error)
	// SearchRateLimit fetches the remaining budget for the search resource.
	SearchRateLimit(ctx context.Context) (*RateLimit, error)
}

// Option configures the Twitter client.
type Option func(*httpClient)

// WithBaseURL sets a custom API base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit sets the requests-per-second pacing for API calls.
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

type httpClient struct {
	creds   Credentials
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a Twitter v1.1 client. When the credentials carry
// both secrets, requests are OAuth 1.0a signed; otherwise the access
// token is sent as a bearer token.
func NewClient(creds Credentials, opts ...Option) Client {
	c := &httpClient{
		creds:   creds,
		baseURL: "https://api.twitter.com/1.1",
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		// Search allows 450 calls per 15-minute window.
		limiter: rate.NewLimiter(rate.Limit(0.5), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	if creds.ConsumerSecret != "" && creds.AccessSecret != "" {
		signing := oauth1.NewConfig(creds.ConsumerKey, creds.ConsumerSecret)
		token := oauth1.NewToken(creds.AccessToken, creds.AccessSecret)
		base := context.WithValue(context.Background(), oauth1.HTTPClient, c.http)
		c.http = signing.Client(base, token)
	}
	return c
}

// do issues one request. Calls are paced but never retried: a failed
// page fails the whole fetch.
func (c *httpClient) do(ctx context.Context, reqURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "twitter: rate limiter wait")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "twitter: create request")
	}
	req.Header.Set("Accept", "application/json")
	if c.creds.ConsumerSecret == "" || c.creds.AccessSecret == "" {
		req.Header.Set("Authorization", "Bearer "+c.creds.AccessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "twitter: request failed")
	}
	body, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return nil, eris.Wrap(readErr, "twitter: read response body")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("twitter: unexpected status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

func (c *httpClient) Search(ctx context.Context, params SearchParams) (*SearchResponse, error) {
	values := url.Values{}
	values.Set("q", params.Query)
	if params.Count > 0 {
		values.Set("count", strconv.Itoa(params.Count))
	}
	if params.Geocode != "" {
		values.Set("geocode", params.Geocode)
	}
	if params.SinceID != nil {
		values.Set("since_id", strconv.FormatInt(*params.SinceID, 10))
	}
	if params.MaxID != nil {
		values.Set("max_id", strconv.FormatInt(*params.MaxID, 10))
	}

	body, err := c.do(ctx, c.baseURL+"/search/tweets.json?"+values.Encode())
	if err != nil {
		return nil, err
	}

	var result SearchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "twitter: unmarshal search response")
	}
	return &result, nil
}

func (c *httpClient) SearchRateLimit(ctx context.Context) (*RateLimit, error) {
	body, err := c.do(ctx, c.baseURL+"/application/rate_limit_status.json?resources=search")
	if err != nil {
		return nil, err
	}

	var result struct {
		Resources map[string]map[string]*RateLimit `json:"resources"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "twitter: unmarshal rate limit status")
	}

	limit := result.Resources["search"]["/search/tweets"]
	if limit == nil {
		return nil, eris.New("twitter: limits are not available")
	}
	return limit, nil
}
