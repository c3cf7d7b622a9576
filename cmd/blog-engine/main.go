// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the blog-engine CLI.
// Implements: prd001-fetch, prd002-scoring, prd003-generation,
//             prd004-dedup, prd005-corpus (CLI surface).
// See docs/ARCHITECTURE § Pipeline Interface, § Project Structure.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/blog-engine/internal/article"
	"github.com/pdiddy/blog-engine/internal/arxiv"
	"github.com/pdiddy/blog-engine/internal/pipeline"
	"github.com/pdiddy/blog-engine/internal/secrets"
	"github.com/pdiddy/blog-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback if set, otherwise the secret value for key.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the blog-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "blog-engine",
	Short: "Automated AI-paper blog content pipeline",
	Long: `blog-engine turns arXiv papers into beginner-friendly blog articles. It
fetches recent paper metadata, scores relevance, skips papers the blog
already covers, generates multi-section articles through a text-generation
API, and integrates them into the published article corpus.

Each pipeline mode is a subcommand: daily runs the full scheduled
pipeline; seed, recent, search, and sample generate from specific paper
sets; integrate merges previously generated article files; corpus manages
the local search index.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./blog-engine.yaml or ~/.config/blog-engine/config.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "data", "base directory for corpus data (contains articles.json and index/)")
	rootCmd.PersistentFlags().String("articles-dir", filepath.Join("generated_content", "articles"), "directory for individual article JSON files")
	rootCmd.PersistentFlags().String("model", "", "text-generation model identifier (default from config)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("blog-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "blog-engine"))
		}
	}

	viper.SetEnvPrefix("BLOG_ENGINE")
	viper.AutomaticEnv()

	viper.SetDefault("model", "gpt-5-nano")
	viper.SetDefault("max_retries", 3)
	viper.SetDefault("query", "artificial intelligence OR machine learning OR deep learning")
	viper.SetDefault("max_results", 20)
	viper.SetDefault("days_back", 7)
	viper.SetDefault("daily_limit", 2)
	viper.SetDefault("user_agent", "blog-engine/"+version)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// --- shared config builders ---

func fetchConfig(cmd *cobra.Command) types.FetchConfig {
	maxResults, _ := cmd.Flags().GetInt("max-results")
	if maxResults <= 0 {
		maxResults = viper.GetInt("max_results")
	}
	daysBack, _ := cmd.Flags().GetInt("days")
	if daysBack <= 0 {
		daysBack = viper.GetInt("days_back")
	}
	query, _ := cmd.Flags().GetString("query")
	if query == "" {
		query = viper.GetString("query")
	}
	seedFile, _ := cmd.Flags().GetString("seed-file")

	return types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   30 * time.Second,
			UserAgent: viper.GetString("user_agent"),
		},
		MaxResults: maxResults,
		DaysBack:   daysBack,
		Query:      query,
		SeedFile:   seedFile,
	}
}

func generationConfig(cmd *cobra.Command) types.GenerationConfig {
	model, _ := cmd.Flags().GetString("model")
	if model == "" {
		model = viper.GetString("model")
	}
	articlesDir, _ := cmd.Flags().GetString("articles-dir")

	return types.GenerationConfig{
		AIConfig: types.AIConfig{
			Model:      model,
			APIKey:     secretDefault("openai-api-key", viper.GetString("api_key")),
			MaxRetries: viper.GetInt("max_retries"),
		},
		HTTPConfig: types.HTTPConfig{
			Timeout: 120 * time.Second,
		},
		ArticlesDir: articlesDir,
	}
}

func corpusConfig(cmd *cobra.Command) types.CorpusConfig {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	maxResults, _ := cmd.Flags().GetInt("max-results")

	return types.CorpusConfig{
		DataDir:    dataDir,
		MaxResults: maxResults,
	}
}

func pipelineConfig(cmd *cobra.Command) types.PipelineConfig {
	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		limit = viper.GetInt("daily_limit")
	}

	return types.PipelineConfig{
		Fetch:      fetchConfig(cmd),
		Generation: generationConfig(cmd),
		Corpus:     corpusConfig(cmd),
		DailyLimit: limit,
	}
}

func buildPipeline(cmd *cobra.Command) *pipeline.Pipeline {
	cfg := pipelineConfig(cmd)
	return &pipeline.Pipeline{
		Source:    arxiv.NewFetcher(cfg.Fetch),
		Generator: article.NewGenerator(article.NewOpenAIBackend(cfg.Generation)),
		Config:    cfg,
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
