// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus maintains the persisted article collection: candidate
// selection, slug assignment, integration, and the query index.
// Implements: prd004-dedup (R1-R3), prd005-corpus (R1-R5).
package corpus

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/pdiddy/blog-engine/internal/article"
	"github.com/pdiddy/blog-engine/pkg/types"
)

// CorpusFile is the canonical corpus filename under the data directory.
const CorpusFile = "articles.json"

// Load reads the corpus file. A missing file is an empty corpus; an
// unparseable file is an IntegrationError so callers never overwrite a
// corpus they could not read (prd005-corpus R2.3).
func Load(path string) ([]types.CorpusEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &types.IntegrationError{Cause: fmt.Errorf("reading corpus: %w", err)}
	}

	var entries []types.CorpusEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, &types.IntegrationError{Cause: fmt.Errorf("parsing corpus %s: %w", path, err)}
	}
	return entries, nil
}

// Save writes the corpus file as a whole-file overwrite.
func Save(path string, entries []types.CorpusEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return &types.IntegrationError{Cause: fmt.Errorf("marshaling corpus: %w", err)}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return &types.IntegrationError{Cause: fmt.Errorf("writing corpus: %w", err)}
	}
	return nil
}

// PaperIDs collects the paper identifiers already covered by the corpus.
// This set is the sole deduplication input (prd004-dedup R1.1).
func PaperIDs(entries []types.CorpusEntry) map[string]bool {
	ids := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.PaperID != "" {
			ids[e.PaperID] = true
		}
	}
	return ids
}

// Integrate appends new articles to the corpus, assigning slugs, category
// slugs, and excerpts, and returns the merged corpus sorted by publish
// date descending. It trusts its input is pre-deduplicated by paper id;
// feeding the same paper twice is rejected rather than silently appended
// (prd005-corpus R1.2, R3.1).
func Integrate(articles []*types.ArticleRecord, entries []types.CorpusEntry) ([]types.CorpusEntry, error) {
	taken := make(map[string]string, len(entries)) // slug → paper id
	papers := make(map[string]bool, len(entries))
	for _, e := range entries {
		taken[e.ID] = e.PaperID
		papers[e.PaperID] = true
	}

	merged := append([]types.CorpusEntry(nil), entries...)
	for _, art := range articles {
		if papers[art.PaperID] {
			return nil, &types.IntegrationError{
				Cause: fmt.Errorf("paper %s already integrated: input was not deduplicated", art.PaperID),
			}
		}

		slug := Slugify(art.Title)
		if owner, clash := taken[slug]; clash && owner != art.PaperID {
			// Distinct papers, same slug: disambiguate with a stable hash
			// of the paper id instead of overwriting.
			slug = slug + "-" + shortHash(art.PaperID)
		}
		if _, clash := taken[slug]; clash {
			return nil, &types.IntegrationError{
				Cause: fmt.Errorf("slug %q already in corpus", slug),
			}
		}

		merged = append(merged, entryFromArticle(slug, art))
		taken[slug] = art.PaperID
		papers[art.PaperID] = true
	}

	// Newest first; generation date, not paper publication date. The sort
	// is stable so same-day entries keep their integration order.
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].PublishDate > merged[j].PublishDate
	})
	return merged, nil
}

func entryFromArticle(slug string, art *types.ArticleRecord) types.CorpusEntry {
	return types.CorpusEntry{
		ID:                 slug,
		Title:              art.Title,
		Subtitle:           art.Subtitle,
		Category:           art.Category,
		CategorySlug:       string(article.CategoryToSlug(art.Category)),
		Authors:            art.Authors,
		PaperID:            art.PaperID,
		PaperURL:           art.PaperURL,
		ReadTime:           art.ReadTime,
		PublishDate:        art.PublishDate,
		ConceptExplained:   art.ConceptExplained,
		Content:            art.Content,
		ConceptExplanation: art.ConceptExplanation,
		Summary:            art.Summary,
		Excerpt:            Excerpt(art.Content.Background),
	}
}

const (
	titlePrefix = "Paper Explained: "
)

var (
	slugStrip    = regexp.MustCompile(`[^\w\s-]`)
	slugCollapse = regexp.MustCompile(`[-\s]+`)
)

// Slugify derives the URL-safe corpus id from an article title. The
// generic "Paper Explained: " prefix and the trailing " - …" tagline are
// dropped before slugging. Deterministic and idempotent.
func Slugify(title string) string {
	if rest, ok := strings.CutPrefix(title, titlePrefix); ok {
		title = rest
		if idx := strings.Index(title, " - "); idx >= 0 {
			title = title[:idx]
		}
	}

	slug := strings.ToLower(title)
	slug = slugStrip.ReplaceAllString(slug, "")
	slug = slugCollapse.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// shortHash returns the first 8 hex characters of SHA-256(s), used to
// disambiguate colliding slugs.
func shortHash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return fmt.Sprintf("%x", sum)[:8]
}

// Excerpt returns the first two sentences of the background section, or
// its first 200 characters when it has fewer sentences.
func Excerpt(background string) string {
	parts := strings.Split(background, ". ")
	if len(parts) >= 2 {
		return parts[0] + ". " + parts[1] + "."
	}
	if len(background) > 200 {
		return background[:200] + "..."
	}
	return background
}
