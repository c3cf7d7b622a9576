// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package arxiv

import (
	"strings"
	"time"

	"github.com/pdiddy/blog-engine/pkg/types"
)

// Category tiers for scoring (prd002-scoring R1.1). High-value categories
// are the core AI/ML lists; the medium tier catches adjacent work.
var (
	highValueCategories   = map[string]bool{"cs.AI": true, "cs.LG": true, "cs.CV": true, "cs.CL": true}
	mediumValueCategories = map[string]bool{"cs.NE": true, "stat.ML": true, "cs.IR": true}
)

// importantKeywords is the fixed keyword list for title/abstract matching.
// Title hits weigh 3, abstract hits 1 (R1.2).
var importantKeywords = []string{
	"transformer", "attention", "neural network", "deep learning",
	"machine learning", "artificial intelligence", "generative",
	"classification", "detection", "segmentation", "language model",
	"computer vision", "natural language processing", "reinforcement learning",
	"diffusion", "llm", "large language model", "multimodal", "vision transformer",
}

// Score computes the additive relevance score for a paper at time now.
// Pure and total; higher means more worth generating first. The score only
// orders candidates, it never rejects one (R2.1).
func Score(p types.PaperRecord, now time.Time) int {
	score := 0

	for _, cat := range p.Categories {
		switch {
		case highValueCategories[cat]:
			score += 10
		case mediumValueCategories[cat]:
			score += 5
		}
	}

	title := strings.ToLower(p.Title)
	abstract := strings.ToLower(p.Abstract)
	for _, kw := range importantKeywords {
		switch {
		case strings.Contains(title, kw):
			score += 3
		case strings.Contains(abstract, kw):
			score += 1
		}
	}

	// Recency bonus decays in tiers; not idempotent across time (R1.3).
	if !p.Published.IsZero() {
		days := int(now.Sub(p.Published).Hours() / 24)
		switch {
		case days <= 1:
			score += 5
		case days <= 7:
			score += 3
		case days <= 30:
			score += 1
		}
	}

	// Longer abstracts tend to indicate more substantial work (R1.4).
	switch {
	case len(p.Abstract) > 1000:
		score += 2
	case len(p.Abstract) > 500:
		score += 1
	}

	return score
}

// categoryMapping maps arXiv category tags to blog category slugs. The
// paper's own tag order decides ties: the first mapped tag wins.
var categoryMapping = map[string]types.CategorySlug{
	"cs.LG":   types.CategoryFoundationModels,
	"cs.CL":   types.CategoryFoundationModels,
	"cs.CV":   types.CategoryBasicConcepts,
	"cs.AI":   types.CategoryFoundationModels,
	"cs.NE":   types.CategoryBasicConcepts,
	"stat.ML": types.CategoryFoundationModels,
	"cs.RO":   types.CategoryApplications,
	"cs.HC":   types.CategoryApplications,
	"q-bio":   types.CategoryApplications,
}

// MapCategory maps a paper's raw arXiv category list to a blog category
// slug, defaulting to basic-concepts (prd001-fetch R3.3).
func MapCategory(categories []string) types.CategorySlug {
	for _, cat := range categories {
		if slug, ok := categoryMapping[cat]; ok {
			return slug
		}
	}
	return types.CategoryBasicConcepts
}
