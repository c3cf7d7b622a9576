// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/blog-engine/internal/corpus"
	"github.com/pdiddy/blog-engine/pkg/types"
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Manage the article search index (index, query, export)",
	Long: `Corpus manages a local SQLite index over the published articles. Use
subcommands to build the index from the corpus file, query it with
full-text search, or export it.`,
}

// --- index subcommand ---

var corpusIndexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the search index from the corpus file",
	Long: `Index reads articles.json from the data directory and upserts every
entry into a SQLite database with FTS5 indexing. Unchanged entries are
skipped on subsequent runs.`,
	RunE: runCorpusIndex,
}

func runCorpusIndex(cmd *cobra.Command, args []string) error {
	cfg := corpusConfig(cmd)

	entries, err := corpus.Load(filepath.Join(cfg.DataDir, corpus.CorpusFile))
	if err != nil {
		return err
	}

	store, err := corpus.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.Index(context.Background(), entries, os.Stdout)
	return err
}

// --- query subcommand ---

var corpusQueryCmd = &cobra.Command{
	Use:   "query [terms]",
	Short: "Query the article index with full-text search and filters",
	Long: `Query searches the article index using FTS5 full-text search over
titles, summaries, excerpts, and concept explanations, optionally
filtered by category slug or source paper ID.`,
	RunE: runCorpusQuery,
}

func runCorpusQuery(cmd *cobra.Command, args []string) error {
	cfg := corpusConfig(cmd)
	store, err := corpus.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := corpusQueryOpts(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide search terms, --category, or --paper")
	}

	results, err := store.Retrieve(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatQueryOutput(results, jsonOutput)
}

func formatQueryOutput(results []types.CorpusEntry, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-40s  %-18s  %-12s  %-10s  %s\n",
		"Slug", "Category", "Published", "Paper", "Summary")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 120))

	for _, e := range results {
		slug := e.ID
		if len(slug) > 40 {
			slug = slug[:37] + "..."
		}
		summary := e.Summary
		if len(summary) > 40 {
			summary = summary[:37] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-40s  %-18s  %-12s  %-10s  %s\n",
			slug, e.CategorySlug, e.PublishDate, e.PaperID, summary)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

// --- export subcommand ---

var corpusExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the article index to YAML or JSON",
	Long: `Export writes the indexed corpus (or a filtered subset) to
data/index/export.yaml or export.json. Supports the same filter flags
as query for partial exports.`,
	RunE: runCorpusExport,
}

func runCorpusExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	cfg := corpusConfig(cmd)
	store, err := corpus.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := corpusQueryOpts(cmd, args)

	switch format {
	case "yaml", "":
		if err := store.ExportYAML(context.Background(), opts); err != nil {
			return err
		}
		fmt.Printf("Exported to %s\n", filepath.Join(cfg.DataDir, "index", "export.yaml"))
	case "json":
		if err := store.ExportJSON(context.Background(), opts); err != nil {
			return err
		}
		fmt.Printf("Exported to %s\n", filepath.Join(cfg.DataDir, "index", "export.json"))
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	return nil
}

// --- shared helpers ---

func corpusQueryOpts(cmd *cobra.Command, args []string) corpus.QueryOptions {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}

	category, _ := cmd.Flags().GetString("category")
	paperID, _ := cmd.Flags().GetString("paper")
	limit, _ := cmd.Flags().GetInt("limit")

	return corpus.QueryOptions{
		Query:      queryText,
		Category:   category,
		PaperID:    paperID,
		MaxResults: limit,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	corpusCmd.PersistentFlags().Int("max-results", 20, "default maximum number of query results")

	// Query flags.
	corpusQueryCmd.Flags().String("query", "", "full-text search query")
	corpusQueryCmd.Flags().String("category", "", "filter by category slug (e.g. foundation-models)")
	corpusQueryCmd.Flags().String("paper", "", "filter by arXiv paper ID")
	corpusQueryCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	corpusQueryCmd.Flags().Bool("json", false, "output results as JSON")

	// Export flags.
	corpusExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	corpusExportCmd.Flags().String("query", "", "full-text search filter for partial export")
	corpusExportCmd.Flags().String("category", "", "filter by category slug for partial export")
	corpusExportCmd.Flags().String("paper", "", "filter by paper ID for partial export")
	corpusExportCmd.Flags().Int("limit", 0, "maximum entries to export (0 = all)")

	// Wire subcommands.
	corpusCmd.AddCommand(corpusIndexCmd)
	corpusCmd.AddCommand(corpusQueryCmd)
	corpusCmd.AddCommand(corpusExportCmd)

	rootCmd.AddCommand(corpusCmd)
}
