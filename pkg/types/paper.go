// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// CategorySlug identifies a blog category. Per prd001-fetch R3.3 the slug
// set is fixed; unknown arXiv categories map to CategoryBasicConcepts.
type CategorySlug string

const (
	CategoryFoundationModels CategorySlug = "foundation-models"
	CategoryGenerativeModels CategorySlug = "generative-models"
	CategoryOptimization     CategorySlug = "optimization"
	CategoryApplications     CategorySlug = "applications"
	CategoryBasicConcepts    CategorySlug = "basic-concepts"
)

// PaperRecord holds the metadata of one academic paper as returned by the
// paper source. Immutable once fetched. ID is the sole deduplication key
// for "have we already produced an article for this paper" (prd001-fetch R2.1).
type PaperRecord struct {
	// ID is the arXiv identifier (e.g. "1706.03762"), stable across runs.
	ID string `json:"id" yaml:"id"`

	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Abstract is the paper abstract.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Published is the submission or publication date.
	Published time.Time `json:"published" yaml:"published"`

	// Category is the blog category slug mapped from the arXiv categories.
	Category CategorySlug `json:"category" yaml:"category"`

	// Categories is the raw arXiv category tag list (e.g. "cs.LG", "stat.ML").
	// Populated by live search; seed papers carry Category directly.
	Categories []string `json:"categories,omitempty" yaml:"categories,omitempty"`

	// RelevanceScore is the ranking score attached during live search.
	// Ephemeral: recomputed at every run, never persisted with the paper.
	RelevanceScore int `json:"relevance_score,omitempty" yaml:"relevance_score,omitempty"`
}

// URL returns the arXiv abstract page for the paper.
func (p PaperRecord) URL() string {
	return "https://arxiv.org/abs/" + p.ID
}
