// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/blog-engine/internal/arxiv"
	"github.com/pdiddy/blog-engine/pkg/types"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate articles for the classic seed papers",
	Long: `Seed bootstraps an empty corpus from a fixed list of foundational papers
(the Transformer, AlexNet, GANs, BERT, GPT-2). Papers already in the corpus
are skipped, so re-running seed only fills gaps. Use --seed-file to
substitute your own YAML paper list.`,
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	p := buildPipeline(cmd)

	papers, err := seedPapers(p.Config.Fetch)
	if err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		limit = len(papers)
	}

	summary, err := p.RunBatch(cmd.Context(), papers, limit, os.Stdout)
	if err != nil {
		return err
	}
	if summary.HasFailures() {
		return fmt.Errorf("%d paper(s) failed generation", summary.Failed)
	}
	return nil
}

func seedPapers(cfg types.FetchConfig) ([]types.PaperRecord, error) {
	if cfg.SeedFile != "" {
		return arxiv.LoadSeedFile(cfg.SeedFile)
	}
	return arxiv.SeedPapers(), nil
}

func init() {
	seedCmd.Flags().String("seed-file", "", "YAML file of papers to seed from (default: built-in classics)")
	seedCmd.Flags().Int("limit", 0, "maximum articles to generate (default: all seed papers)")

	rootCmd.AddCommand(seedCmd)
}
