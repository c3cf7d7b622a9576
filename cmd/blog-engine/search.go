// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/blog-engine/internal/arxiv"
)

var searchCmd = &cobra.Command{
	Use:   "search <topic>",
	Short: "Generate articles from a topic search",
	Long: `Search queries arXiv by topic relevance rather than submission date and
generates articles for the best matches the corpus does not cover yet.
The topic is the remaining command-line arguments, e.g.:

  blog-engine search diffusion models

Use --list to print the matches without generating anything.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	p := buildPipeline(cmd)
	topic := strings.Join(args, " ")

	maxResults, _ := cmd.Flags().GetInt("max-results")
	fetcher := arxiv.NewFetcher(p.Config.Fetch)
	papers, err := fetcher.SearchTopic(cmd.Context(), topic, maxResults)
	if err != nil {
		return err
	}

	listOnly, _ := cmd.Flags().GetBool("list")
	if listOnly {
		jsonOutput, _ := cmd.Flags().GetBool("json")
		return formatPaperList(papers, jsonOutput)
	}

	limit, _ := cmd.Flags().GetInt("limit")
	summary, err := p.RunBatch(cmd.Context(), papers, limit, os.Stdout)
	if err != nil {
		return err
	}
	if summary.HasFailures() {
		return fmt.Errorf("%d paper(s) failed generation", summary.Failed)
	}
	return nil
}

func init() {
	searchCmd.Flags().Int("max-results", 5, "maximum papers to consider")
	searchCmd.Flags().Int("limit", 0, "maximum articles to generate (default from config)")
	searchCmd.Flags().Bool("list", false, "print matches without generating")
	searchCmd.Flags().Bool("json", false, "with --list, output matches as JSON")

	rootCmd.AddCommand(searchCmd)
}
