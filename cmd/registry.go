package main

import (
	"time"

	"go.uber.org/zap"

	"github.com/openfusion/geofetch/internal/fetcher"
	"github.com/openfusion/geofetch/internal/source"
	"github.com/openfusion/geofetch/internal/twitter"
	twitterapi "github.com/openfusion/geofetch/pkg/twitter"
)

// initTwitterClient builds the Twitter API client from configuration.
func initTwitterClient() twitterapi.Client {
	opts := []twitterapi.Option{
		twitterapi.WithBaseURL(cfg.Twitter.BaseURL),
	}
	if cfg.Twitter.RateLimitRPS > 0 {
		opts = append(opts, twitterapi.WithRateLimit(cfg.Twitter.RateLimitRPS))
	}
	return twitterapi.NewClient(twitterapi.Credentials{
		ConsumerKey:    cfg.Twitter.ConsumerKey,
		ConsumerSecret: cfg.Twitter.ConsumerSecret,
		AccessToken:    cfg.Twitter.AccessToken,
		AccessSecret:   cfg.Twitter.AccessSecret,
	}, opts...)
}

// initRegistry wires every supported source into a registry.
func initRegistry() *source.Registry {
	images := fetcher.NewHTTPFetcher(fetcher.Options{
		UserAgent: cfg.Fetch.UserAgent,
		Timeout:   time.Duration(cfg.Fetch.TimeoutSecs) * time.Second,
	})

	registry := source.NewRegistry()
	registry.Register(twitter.New(initTwitterClient(), images, zap.L()))
	return registry
}
