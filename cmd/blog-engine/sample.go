// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/blog-engine/internal/article"
	"github.com/pdiddy/blog-engine/internal/arxiv"
	"github.com/pdiddy/blog-engine/internal/pipeline"
	"github.com/pdiddy/blog-engine/pkg/types"
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Generate a single sample article without touching the corpus",
	Long: `Sample generates one article for inspection. It does not deduplicate
against the corpus and does not integrate the result; the article is
written to the articles directory and printed to stdout. By default it
uses the first seed paper; --paper selects an arXiv ID to fetch instead.`,
	RunE: runSample,
}

func runSample(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig(cmd)

	paper, err := samplePaper(cmd, cfg.Fetch)
	if err != nil {
		return err
	}

	gen := article.NewGenerator(article.NewOpenAIBackend(cfg.Generation))

	fmt.Fprintf(os.Stderr, "generating %s (%s)\n", paper.ID, paper.Title)
	art, failures, err := gen.Generate(cmd.Context(), *paper)
	if err != nil {
		return err
	}
	for _, f := range failures {
		fmt.Fprintf(os.Stderr, "degraded section %s: %v\n", f.Template, f.Err)
	}

	if err := os.MkdirAll(cfg.Generation.ArticlesDir, 0o755); err != nil {
		return fmt.Errorf("creating articles directory: %w", err)
	}
	path := filepath.Join(cfg.Generation.ArticlesDir, pipeline.ArticleFileName(paper.ID))
	if err := article.SaveArticle(path, art); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "written to %s\n", path)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(art)
}

func samplePaper(cmd *cobra.Command, cfg types.FetchConfig) (*types.PaperRecord, error) {
	paperID, _ := cmd.Flags().GetString("paper")
	if paperID != "" {
		fetcher := arxiv.NewFetcher(cfg)
		return fetcher.FetchByID(cmd.Context(), paperID)
	}

	papers, err := seedPapers(cfg)
	if err != nil {
		return nil, err
	}
	if len(papers) == 0 {
		return nil, fmt.Errorf("seed list is empty: provide --paper or a non-empty --seed-file")
	}
	return &papers[0], nil
}

func init() {
	sampleCmd.Flags().String("paper", "", "arXiv ID to generate from (default: first seed paper)")
	sampleCmd.Flags().String("seed-file", "", "YAML file of papers to sample from")

	rootCmd.AddCommand(sampleCmd)
}
