// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ArticleContent holds the four independently generated prose sections of
// an article. Sections are never re-derived from one another, so stylistic
// drift between them is accepted (prd003-generation R2.4).
type ArticleContent struct {
	Background   string `json:"background" yaml:"background"`
	Methodology  string `json:"methodology" yaml:"methodology"`
	Results      string `json:"results" yaml:"results"`
	Significance string `json:"significance" yaml:"significance"`
}

// ConceptExplanation is the deep-dive on the single key concept identified
// for the paper.
type ConceptExplanation struct {
	// Title is the framed heading, e.g. "Understanding Self-Attention: The
	// Heart of Attention Is All You Need".
	Title string `json:"title" yaml:"title"`

	// Content is the analogy-first explanation of the concept.
	Content string `json:"content" yaml:"content"`
}

// ArticleRecord is one generated beginner-friendly article. Created by the
// generator; immutable afterwards except for the corpus-assigned fields on
// CorpusEntry. Field names match the data file the front-end reads.
// Per prd003-generation R3.1-R3.4.
type ArticleRecord struct {
	// Title is "Paper Explained: {paper title} - A Beginner's Guide".
	Title string `json:"title" yaml:"title"`

	// Subtitle is a short generated hook (5-10 words).
	Subtitle string `json:"subtitle" yaml:"subtitle"`

	// Category is the display name (e.g. "Foundation Models").
	Category string `json:"category" yaml:"category"`

	// Authors is copied from the paper record.
	Authors []string `json:"authors" yaml:"authors"`

	// PaperID is the source paper's arXiv identifier.
	PaperID string `json:"paperId" yaml:"paper_id"`

	// PaperURL links to the arXiv abstract page.
	PaperURL string `json:"paperUrl" yaml:"paper_url"`

	// ReadTime is the derived estimate, e.g. "4 min read". Always at
	// least one minute.
	ReadTime string `json:"readTime" yaml:"read_time"`

	// PublishDate is the generation date (YYYY-MM-DD), not the paper's
	// publication date.
	PublishDate string `json:"publishDate" yaml:"publish_date"`

	// ConceptExplained names the key concept for list views.
	ConceptExplained string `json:"conceptExplained" yaml:"concept_explained"`

	Content            ArticleContent     `json:"content" yaml:"content"`
	ConceptExplanation ConceptExplanation `json:"conceptExplanation" yaml:"concept_explanation"`

	// Summary is the one-sentence synopsis.
	Summary string `json:"summary" yaml:"summary"`
}

// CorpusEntry is the persisted, renderer-facing projection of an article.
// Entries are created once per paper, appended to the corpus, and never
// mutated or removed by the pipeline (prd005-corpus R1.4).
type CorpusEntry struct {
	// ID is the URL-safe slug derived from the article title, unique
	// within the corpus.
	ID string `json:"id" yaml:"id"`

	Title            string `json:"title" yaml:"title"`
	Subtitle         string `json:"subtitle" yaml:"subtitle"`
	Category         string `json:"category" yaml:"category"`
	CategorySlug     string `json:"categorySlug" yaml:"category_slug"`
	Authors          []string `json:"authors" yaml:"authors"`
	PaperID          string `json:"paperId" yaml:"paper_id"`
	PaperURL         string `json:"paperUrl" yaml:"paper_url"`
	ReadTime         string `json:"readTime" yaml:"read_time"`
	PublishDate      string `json:"publishDate" yaml:"publish_date"`
	ConceptExplained string `json:"conceptExplained" yaml:"concept_explained"`

	Content            ArticleContent     `json:"content" yaml:"content"`
	ConceptExplanation ConceptExplanation `json:"conceptExplanation" yaml:"concept_explanation"`

	Summary string `json:"summary" yaml:"summary"`

	// Excerpt is the first two sentences (or first 200 characters) of the
	// background section, for list views.
	Excerpt string `json:"excerpt" yaml:"excerpt"`
}
