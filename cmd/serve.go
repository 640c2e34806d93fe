package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/openfusion/geofetch/internal/model"
	"github.com/openfusion/geofetch/internal/source"
	"github.com/openfusion/geofetch/internal/twitter"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve fetch requests over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		registry := initRegistry()

		// Set up routes
		mux := http.NewServeMux()

		mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
		})

		mux.HandleFunc("GET /fetch", func(w http.ResponseWriter, r *http.Request) {
			names, req, opts, err := requestFromQuery(r.URL.Query())
			if err != nil {
				http.Error(w, fmt.Sprintf(`{"error":%q}`, err.Error()), http.StatusBadRequest)
				return
			}

			collection, err := registry.FetchAll(r.Context(), names, req, opts)
			if err != nil {
				status := http.StatusBadGateway
				if errors.Is(err, twitter.ErrNoSearchCriteria) {
					status = http.StatusBadRequest
				}
				zap.L().Error("fetch request failed", zap.Error(err))
				http.Error(w, fmt.Sprintf(`{"error":%q}`, err.Error()), status)
				return
			}

			w.Header().Set("Content-Type", "application/geo+json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(collection)
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// requestFromQuery maps /fetch query parameters onto a request and
// fetch options.
func requestFromQuery(values url.Values) ([]string, model.Request, source.Options, error) {
	names := values["source"]
	if len(names) == 0 {
		names = []string{"twitter"}
	}

	quantity := 15
	if raw := values.Get("quantity"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, model.Request{}, source.Options{}, eris.Wrap(err, "serve: parse quantity")
		}
		quantity = n
	}

	var location []string
	if values.Get("latitude") != "" || values.Get("longitude") != "" || values.Get("radius") != "" {
		location = []string{
			values.Get("latitude"),
			values.Get("longitude"),
			values.Get("radius"),
			values.Get("unit"),
		}
	}

	var interval []string
	if values.Get("earliest") != "" || values.Get("latest") != "" {
		interval = []string{values.Get("earliest"), values.Get("latest")}
	}

	req, err := buildRequest(values["media"], values.Get("keyword"), quantity, location, interval)
	if err != nil {
		return nil, model.Request{}, source.Options{}, err
	}

	maxPages := cfg.Fetch.MaxPages
	if raw := values.Get("max_pages"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, model.Request{}, source.Options{}, eris.Wrap(err, "serve: parse max_pages")
		}
		maxPages = n
	}

	opts := source.Options{
		Strict:   values.Get("strict") == "true" || cfg.Fetch.Strict,
		MaxPages: maxPages,
	}
	return names, req, opts, nil
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on (0 = config default)")
	rootCmd.AddCommand(serveCmd)
}
