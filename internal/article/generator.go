// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package article turns one paper record into one beginner-friendly
// article through a fixed sequence of prompt-templated generation calls.
// Implements: prd003-generation (R1-R5).
package article

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/pdiddy/blog-engine/pkg/types"
)

// wordsPerMinute is the reading speed assumed for the read-time estimate.
const wordsPerMinute = 200

// Completer abstracts the text-generation service so tests can supply a
// stub keyed by prompt template ID.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// SectionFailure records one failed generation call. The article is still
// produced; the affected field carries a placeholder instead of prose.
type SectionFailure struct {
	Template string
	Err      error
}

// Generator assembles articles from paper records. Papers are processed
// strictly sequentially: each of the generation calls blocks before the
// next begins.
type Generator struct {
	Completer Completer

	// Now supplies the publish timestamp; tests pin it. Nil means time.Now.
	Now func() time.Time
}

// NewGenerator builds a generator backed by the given completion service.
func NewGenerator(c Completer) *Generator {
	return &Generator{Completer: c}
}

// Generate produces the article for one paper. A failed generation call
// degrades to a placeholder in that section and an entry in the returned
// failure list; only a structurally unusable paper record aborts with a
// GenerationError (R2.1-R2.3).
func (g *Generator) Generate(ctx context.Context, paper types.PaperRecord) (*types.ArticleRecord, []SectionFailure, error) {
	if paper.ID == "" || paper.Title == "" || paper.Abstract == "" {
		return nil, nil, &types.GenerationError{
			PaperID: paper.ID,
			Cause:   fmt.Errorf("paper record missing id, title, or abstract"),
		}
	}

	data := promptData{
		Title:     paper.Title,
		Abstract:  paper.Abstract,
		Published: paper.Published.Format("2006-01-02"),
	}

	var failures []SectionFailure
	sections := make(map[string]string, len(sectionTemplates))
	for _, tmpl := range sectionTemplates {
		sections[tmpl.ID] = g.complete(ctx, tmpl, data, &failures)
	}

	// Concept identification and explanation are two distinct calls: the
	// name produced by the first parameterizes the second's prompt.
	conceptName := strings.TrimSpace(g.complete(ctx, conceptNameTemplate, data, &failures))
	conceptData := data
	conceptData.Concept = conceptName
	conceptBody := g.complete(ctx, conceptBodyTemplate, conceptData, &failures)

	summary := strings.TrimSpace(g.complete(ctx, summaryTemplate, data, &failures))
	subtitle := strings.TrimSpace(g.complete(ctx, subtitleTemplate, data, &failures))

	now := time.Now
	if g.Now != nil {
		now = g.Now
	}

	readTime := ReadTime(
		sections[TmplBackground],
		sections[TmplMethodology],
		sections[TmplResults],
		sections[TmplSignificance],
		conceptBody,
	)

	art := &types.ArticleRecord{
		Title:            "Paper Explained: " + paper.Title + " - A Beginner's Guide",
		Subtitle:         subtitle,
		Category:         DisplayCategory(paper.Category),
		Authors:          paper.Authors,
		PaperID:          paper.ID,
		PaperURL:         paper.URL(),
		ReadTime:         fmt.Sprintf("%d min read", readTime),
		PublishDate:      now().Format("2006-01-02"),
		ConceptExplained: conceptName,
		Content: types.ArticleContent{
			Background:   sections[TmplBackground],
			Methodology:  sections[TmplMethodology],
			Results:      sections[TmplResults],
			Significance: sections[TmplSignificance],
		},
		ConceptExplanation: types.ConceptExplanation{
			Title:   fmt.Sprintf("Understanding %s: The Heart of %s", conceptName, titleStem(paper.Title)),
			Content: conceptBody,
		},
		Summary: summary,
	}

	return art, failures, nil
}

// complete runs one generation call. On failure the returned text is a
// visible placeholder carrying the cause, and the failure is recorded;
// the article keeps going (R2.2).
func (g *Generator) complete(ctx context.Context, tmpl PromptTemplate, data promptData, failures *[]SectionFailure) string {
	prompt, err := tmpl.Render(data)
	if err == nil {
		var text string
		text, err = g.Completer.Complete(ctx, tmpl.System, prompt)
		if err == nil {
			return strings.TrimSpace(text)
		}
	}

	svcErr := &types.ServiceError{Template: tmpl.ID, Cause: err}
	*failures = append(*failures, SectionFailure{Template: tmpl.ID, Err: svcErr})
	return fmt.Sprintf("Error generating content: %v", err)
}

// ReadTime estimates reading minutes from the combined word count of the
// given texts at 200 words per minute, rounded, never below one minute.
func ReadTime(texts ...string) int {
	words := 0
	for _, t := range texts {
		words += len(strings.Fields(t))
	}
	minutes := int(math.Round(float64(words) / wordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}

// titleStem returns the part of the title before the first colon, used to
// frame the concept explanation heading.
func titleStem(title string) string {
	if idx := strings.Index(title, ":"); idx >= 0 {
		return title[:idx]
	}
	return title
}

// SaveArticle writes one article to a JSON file.
func SaveArticle(path string, art *types.ArticleRecord) error {
	data, err := json.MarshalIndent(art, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling article: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// LoadArticle reads one article from a JSON file.
func LoadArticle(path string) (*types.ArticleRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading article: %w", err)
	}
	var art types.ArticleRecord
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, fmt.Errorf("parsing article %s: %w", path, err)
	}
	return &art, nil
}
