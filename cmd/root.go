package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/openfusion/geofetch/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "geofetch",
	Short: "Retrieve geotagged social-media posts as GeoJSON",
	Long:  "Searches public social-media APIs for geotagged posts and normalizes the results into a GeoJSON FeatureCollection.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
