// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/blog-engine/pkg/types"
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Generate articles from recently submitted papers",
	Long: `Recent searches arXiv for papers submitted within the recent window,
ranks them by relevance score, and generates articles for the top scorers
the corpus does not cover yet.

Use --list to print the ranked candidates without generating anything.`,
	RunE: runRecent,
}

func runRecent(cmd *cobra.Command, args []string) error {
	p := buildPipeline(cmd)
	cfg := p.Config

	papers, err := p.Source.SearchRecent(cmd.Context(), cfg.Fetch.Query, cfg.Fetch.MaxResults, cfg.Fetch.DaysBack)
	if err != nil {
		return err
	}

	listOnly, _ := cmd.Flags().GetBool("list")
	if listOnly {
		jsonOutput, _ := cmd.Flags().GetBool("json")
		return formatPaperList(papers, jsonOutput)
	}

	summary, err := p.RunBatch(cmd.Context(), papers, cfg.DailyLimit, os.Stdout)
	if err != nil {
		return err
	}
	if summary.HasFailures() {
		return fmt.Errorf("%d paper(s) failed generation", summary.Failed)
	}
	return nil
}

func formatPaperList(papers []types.PaperRecord, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(papers)
	}

	if len(papers) == 0 {
		fmt.Println("No papers found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-5s  %-14s  %-60s  %-18s  %s\n",
		"Score", "ID", "Title", "Category", "Published")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))

	for _, p := range papers {
		title := p.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		published := ""
		if !p.Published.IsZero() {
			published = p.Published.Format("2006-01-02")
		}
		fmt.Fprintf(os.Stdout, "%-5d  %-14s  %-60s  %-18s  %s\n",
			p.RelevanceScore, p.ID, title, p.Category, published)
	}

	fmt.Fprintf(os.Stdout, "\n%d papers\n", len(papers))
	return nil
}

func init() {
	recentCmd.Flags().String("query", "", "arXiv search query (default from config)")
	recentCmd.Flags().Int("max-results", 0, "maximum candidate papers to fetch (default from config)")
	recentCmd.Flags().Int("days", 0, "recent-search window in days (default from config)")
	recentCmd.Flags().Int("limit", 0, "maximum articles to generate (default from config)")
	recentCmd.Flags().Bool("list", false, "print ranked candidates without generating")
	recentCmd.Flags().Bool("json", false, "with --list, output candidates as JSON")

	rootCmd.AddCommand(recentCmd)
}
