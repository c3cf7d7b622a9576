// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Run the full automated pipeline once",
	Long: `Daily runs the scheduled pipeline end to end: search arXiv for papers
submitted in the recent window, score and rank them, drop papers the blog
already covers, generate articles for the top scorers up to the daily
limit, and integrate them into the corpus.`,
	RunE: runDaily,
}

func runDaily(cmd *cobra.Command, args []string) error {
	p := buildPipeline(cmd)

	summary, err := p.RunDaily(cmd.Context(), os.Stdout)
	if err != nil {
		return err
	}
	if summary.HasFailures() {
		fmt.Fprintf(os.Stderr, "warning: %d paper(s) failed generation\n", summary.Failed)
	}
	return nil
}

func init() {
	dailyCmd.Flags().String("query", "", "arXiv search query (default from config)")
	dailyCmd.Flags().Int("max-results", 0, "maximum candidate papers to fetch (default from config)")
	dailyCmd.Flags().Int("days", 0, "recent-search window in days (default from config)")
	dailyCmd.Flags().Int("limit", 0, "maximum articles to publish this run (default from config)")

	rootCmd.AddCommand(dailyCmd)
}
