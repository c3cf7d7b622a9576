// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var integrateCmd = &cobra.Command{
	Use:   "integrate [files...]",
	Short: "Merge generated article files into the corpus",
	Long: `Integrate loads previously generated article JSON files and merges them
into the corpus, assigning slugs and excerpts. Papers already in the
corpus are skipped. Without arguments it integrates every article file
in the articles directory, which recovers from a run that generated
articles but failed before integration.`,
	RunE: runIntegrate,
}

func runIntegrate(cmd *cobra.Command, args []string) error {
	p := buildPipeline(cmd)

	paths := args
	if len(paths) == 0 {
		var err error
		paths, err = articleFiles(p.Config.Generation.ArticlesDir)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			fmt.Println("No article files to integrate.")
			return nil
		}
	}

	summary, err := p.IntegrateFiles(paths, os.Stdout)
	if err != nil {
		return err
	}
	if summary.HasFailures() {
		return fmt.Errorf("%d file(s) failed to load", summary.Failed)
	}
	return nil
}

func articleFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading articles directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

func init() {
	rootCmd.AddCommand(integrateCmd)
}
