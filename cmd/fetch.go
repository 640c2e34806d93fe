package main

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/openfusion/geofetch/internal/model"
	"github.com/openfusion/geofetch/internal/source"
)

var (
	fetchSources  []string
	fetchMedia    []string
	fetchKeyword  string
	fetchQuantity int
	fetchLocation []string
	fetchInterval []string
	fetchStrict   bool
	fetchMaxPages int
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch geotagged posts and print them as GeoJSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := buildRequest(fetchMedia, fetchKeyword, fetchQuantity, fetchLocation, fetchInterval)
		if err != nil {
			return err
		}

		maxPages := fetchMaxPages
		if maxPages == 0 {
			maxPages = cfg.Fetch.MaxPages
		}

		collection, err := initRegistry().FetchAll(cmd.Context(), fetchSources, req, source.Options{
			Strict:   fetchStrict || cfg.Fetch.Strict,
			MaxPages: maxPages,
		})
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(collection, "", "    ")
		if err != nil {
			return eris.Wrap(err, "fetch: encode feature collection")
		}
		_, _ = os.Stdout.Write(append(out, '\n'))
		return nil
	},
}

// buildRequest assembles and validates a model.Request from CLI flags.
func buildRequest(media []string, keyword string, quantity int, location, interval []string) (model.Request, error) {
	req := model.Request{
		Keyword:  keyword,
		Quantity: quantity,
	}

	if len(media) == 0 {
		req.Media = append(req.Media, model.AllMedia...)
	}
	for _, raw := range media {
		kind, err := model.ParseMediaKind(raw)
		if err != nil {
			return model.Request{}, err
		}
		req.Media = append(req.Media, kind)
	}

	if len(location) > 0 {
		loc, err := parseLocation(location)
		if err != nil {
			return model.Request{}, err
		}
		req.Location = loc
	}

	if len(interval) > 0 {
		ivl, err := parseInterval(interval)
		if err != nil {
			return model.Request{}, err
		}
		req.Interval = ivl
	}

	if err := req.Validate(); err != nil {
		return model.Request{}, err
	}
	return req, nil
}

// parseLocation reads "latitude longitude radius unit" flag values.
func parseLocation(args []string) (*model.Location, error) {
	if len(args) != 4 {
		return nil, eris.New("fetch: usage: --location latitude longitude radius unit")
	}
	latitude, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return nil, eris.Wrap(err, "fetch: parse latitude")
	}
	longitude, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return nil, eris.Wrap(err, "fetch: parse longitude")
	}
	radius, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return nil, eris.Wrap(err, "fetch: parse radius")
	}
	return &model.Location{
		Latitude:  latitude,
		Longitude: longitude,
		Radius:    radius,
		Unit:      model.LengthUnit(strings.ToLower(args[3])),
	}, nil
}

// parseInterval reads "earliest latest" flag values (POSIX timestamps,
// either order).
func parseInterval(args []string) (*model.Interval, error) {
	if len(args) != 2 {
		return nil, eris.New("fetch: usage: --interval earliest latest")
	}
	earliest, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return nil, eris.Wrap(err, "fetch: parse earliest moment")
	}
	latest, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return nil, eris.Wrap(err, "fetch: parse latest moment")
	}
	return &model.Interval{Earliest: earliest, Latest: latest}, nil
}

func init() {
	fetchCmd.Flags().StringSliceVarP(&fetchSources, "source", "s", []string{"twitter"}, "sources to query")
	fetchCmd.Flags().StringSliceVarP(&fetchMedia, "media", "m", nil, "media kinds to fetch (image, sound, text, video)")
	fetchCmd.Flags().StringVarP(&fetchKeyword, "keyword", "k", "", "search criteria")
	fetchCmd.Flags().IntVarP(&fetchQuantity, "quantity", "q", 15, "quota of results to fetch")
	fetchCmd.Flags().StringSliceVarP(&fetchLocation, "location", "l", nil, "place to search: latitude,longitude,radius,unit")
	fetchCmd.Flags().StringSliceVarP(&fetchInterval, "interval", "i", nil, "period to search: earliest,latest (POSIX timestamps)")
	fetchCmd.Flags().BoolVar(&fetchStrict, "strict", false, "emit only explicitly requested media properties")
	fetchCmd.Flags().IntVar(&fetchMaxPages, "max-pages", 0, "cap on search calls per source (0 = config default)")
	rootCmd.AddCommand(fetchCmd)
}
