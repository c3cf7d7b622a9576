// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline orchestrates the daily run: fetch candidates, select
// new papers, generate articles, and integrate them into the corpus.
// Implements: prd004-dedup (R2), prd005-corpus (R2);
//
//	docs/ARCHITECTURE § Pipeline.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/blog-engine/internal/article"
	"github.com/pdiddy/blog-engine/internal/corpus"
	"github.com/pdiddy/blog-engine/pkg/types"
)

// Source supplies candidate papers. *arxiv.Fetcher satisfies it; tests
// supply a stub.
type Source interface {
	SearchRecent(ctx context.Context, query string, maxResults, daysBack int) ([]types.PaperRecord, error)
}

// Generator turns one paper into an article. *article.Generator satisfies
// it; tests supply a stub.
type Generator interface {
	Generate(ctx context.Context, paper types.PaperRecord) (*types.ArticleRecord, []article.SectionFailure, error)
}

// Pipeline wires the stages together.
type Pipeline struct {
	Source    Source
	Generator Generator
	Config    types.PipelineConfig
}

// RunSummary holds counts from a pipeline run.
type RunSummary struct {
	Fetched    int
	Selected   int
	Generated  int
	Degraded   int
	Failed     int
	Integrated int
}

// HasFailures reports whether any papers failed outright.
func (s RunSummary) HasFailures() bool {
	return s.Failed > 0
}

// RunDaily executes the scheduled pipeline: search arXiv for recent
// papers, keep the top scorers the corpus does not cover yet, and publish
// up to the daily limit. An unreachable paper source degrades to a
// zero-candidate run; per-paper generation failures are logged and
// skipped.
func (p *Pipeline) RunDaily(ctx context.Context, w io.Writer) (RunSummary, error) {
	cfg := p.Config

	fmt.Fprintf(w, "searching arXiv (last %d days)\n", cfg.Fetch.DaysBack)
	papers, err := p.Source.SearchRecent(ctx, cfg.Fetch.Query, cfg.Fetch.MaxResults, cfg.Fetch.DaysBack)
	if err != nil {
		var srcErr *types.SourceError
		if !errors.As(err, &srcErr) {
			return RunSummary{}, fmt.Errorf("fetching candidates: %w", err)
		}
		fmt.Fprintf(w, "warning: %v, continuing with zero candidates\n", err)
		papers = nil
	}
	fmt.Fprintf(w, "found %d candidate papers\n", len(papers))

	summary, err := p.RunBatch(ctx, papers, cfg.DailyLimit, w)
	summary.Fetched = len(papers)
	return summary, err
}

// RunBatch generates and integrates articles for the given papers. Papers
// the corpus already covers are dropped first; the survivors are ranked by
// relevance score and capped at limit (non-positive means the default
// daily limit). Generation degrades per paper: a paper that cannot be
// generated is logged and skipped, the rest of the batch continues.
func (p *Pipeline) RunBatch(ctx context.Context, papers []types.PaperRecord, limit int, w io.Writer) (RunSummary, error) {
	cfg := p.Config

	corpusPath := filepath.Join(cfg.Corpus.DataDir, corpus.CorpusFile)
	entries, err := corpus.Load(corpusPath)
	if err != nil {
		return RunSummary{}, fmt.Errorf("loading corpus: %w", err)
	}
	existing := corpus.PaperIDs(entries)

	selected := corpus.Select(papers, existing, limit)
	summary := RunSummary{Selected: len(selected)}
	if len(selected) == 0 {
		fmt.Fprintln(w, "no new papers to write about")
		return summary, nil
	}

	articlesDir := cfg.Generation.ArticlesDir
	if err := os.MkdirAll(articlesDir, 0o755); err != nil {
		return summary, fmt.Errorf("creating articles directory: %w", err)
	}

	var generated []*types.ArticleRecord
	for _, paper := range selected {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		fmt.Fprintf(w, "generating %s (%s, score %d)\n", paper.ID, paper.Title, paper.RelevanceScore)

		art, failures, err := p.Generator.Generate(ctx, paper)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", paper.ID, err)
			summary.Failed++
			continue
		}
		for _, f := range failures {
			fmt.Fprintf(w, "degraded %s: section %s: %v\n", paper.ID, f.Template, f.Err)
		}
		if len(failures) > 0 {
			summary.Degraded++
		}

		path := filepath.Join(articlesDir, ArticleFileName(paper.ID))
		if err := article.SaveArticle(path, art); err != nil {
			fmt.Fprintf(w, "failed  %s: write error: %v\n", paper.ID, err)
			summary.Failed++
			continue
		}

		fmt.Fprintf(w, "generated %s -> %s\n", paper.ID, path)
		summary.Generated++
		generated = append(generated, art)
	}

	if len(generated) == 0 {
		fmt.Fprintln(w, "nothing generated, corpus unchanged")
		return summary, nil
	}

	merged, err := corpus.Integrate(generated, entries)
	if err != nil {
		return summary, fmt.Errorf("integrating articles: %w", err)
	}
	if err := corpus.Save(corpusPath, merged); err != nil {
		return summary, fmt.Errorf("saving corpus: %w", err)
	}
	summary.Integrated = len(generated)

	fmt.Fprintf(w, "\ngenerated: %d, degraded: %d, failed: %d, corpus: %d articles\n",
		summary.Generated, summary.Degraded, summary.Failed, len(merged))

	return summary, nil
}

// IntegrateFiles loads previously generated article files and merges them
// into the corpus, for re-running integration after a partial run.
func (p *Pipeline) IntegrateFiles(paths []string, w io.Writer) (RunSummary, error) {
	corpusPath := filepath.Join(p.Config.Corpus.DataDir, corpus.CorpusFile)
	entries, err := corpus.Load(corpusPath)
	if err != nil {
		return RunSummary{}, fmt.Errorf("loading corpus: %w", err)
	}
	existing := corpus.PaperIDs(entries)

	var summary RunSummary
	var arts []*types.ArticleRecord
	for _, path := range paths {
		art, err := article.LoadArticle(path)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", path, err)
			summary.Failed++
			continue
		}
		if existing[art.PaperID] {
			fmt.Fprintf(w, "skipped %s: already in corpus\n", art.PaperID)
			continue
		}
		existing[art.PaperID] = true
		arts = append(arts, art)
	}

	if len(arts) == 0 {
		fmt.Fprintln(w, "nothing to integrate, corpus unchanged")
		return summary, nil
	}

	merged, err := corpus.Integrate(arts, entries)
	if err != nil {
		return summary, fmt.Errorf("integrating articles: %w", err)
	}
	if err := corpus.Save(corpusPath, merged); err != nil {
		return summary, fmt.Errorf("saving corpus: %w", err)
	}
	summary.Integrated = len(arts)

	fmt.Fprintf(w, "integrated: %d, corpus: %d articles\n", len(arts), len(merged))
	return summary, nil
}

// ArticleFileName derives the on-disk filename for a generated article.
// Old-style arXiv IDs contain slashes, so those are flattened.
func ArticleFileName(paperID string) string {
	return "article_" + strings.ReplaceAll(paperID, "/", "-") + ".json"
}
