package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List available sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		names := initRegistry().List()
		sort.Strings(names)
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}
