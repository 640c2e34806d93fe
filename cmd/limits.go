package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var limitsCmd = &cobra.Command{
	Use:   "limits",
	Short: "Show the provider's remaining search budget",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, err := initTwitterClient().SearchRateLimit(cmd.Context())
		if err != nil {
			return err
		}

		reset := time.Unix(limit.Reset, 0).UTC().Format(time.RFC3339)
		fmt.Printf("twitter: %d of %d search queries remain (resets %s)\n", limit.Remaining, limit.Limit, reset)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(limitsCmd)
}
