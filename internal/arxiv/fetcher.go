// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package arxiv queries the arXiv API for candidate papers and provides
// the built-in seed list and relevance scoring.
// Implements: prd001-fetch (R1-R5), prd002-scoring (R1-R3).
package arxiv

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/blog-engine/internal/httputil"
	"github.com/pdiddy/blog-engine/pkg/types"
)

// apiBase is the arXiv search endpoint. Declared as a var so tests can
// substitute an httptest server.
var apiBase = "https://export.arxiv.org/api/query"

// relevantCategories is the set of arXiv categories the pipeline covers.
// Papers outside these are dropped from live search results (R1.3).
var relevantCategories = map[string]bool{
	"cs.AI":   true,
	"cs.LG":   true,
	"cs.CV":   true,
	"cs.CL":   true,
	"cs.NE":   true,
	"stat.ML": true,
}

// Fetcher queries the arXiv API.
type Fetcher struct {
	Client *http.Client
	Config types.FetchConfig
}

// NewFetcher builds a fetcher with a client honoring the configured timeout.
func NewFetcher(cfg types.FetchConfig) *Fetcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Fetcher{
		Client: &http.Client{Timeout: timeout},
		Config: cfg,
	}
}

// SearchRecent queries arXiv for papers submitted within the last daysBack
// days that match the query and the relevant category set. Results carry a
// relevance score and are returned highest-scored first (R1.1, R1.2).
func (f *Fetcher) SearchRecent(ctx context.Context, query string, maxResults, daysBack int) ([]types.PaperRecord, error) {
	if maxResults <= 0 {
		maxResults = f.Config.MaxResults
	}
	if maxResults <= 0 {
		maxResults = 20
	}
	if daysBack <= 0 {
		daysBack = f.Config.DaysBack
	}
	if daysBack <= 0 {
		daysBack = 7
	}

	// Over-fetch so the category and date filters still leave enough
	// survivors to fill maxResults.
	entries, err := f.query(ctx, url.Values{
		"search_query": {buildQuery(query)},
		"start":        {"0"},
		"max_results":  {strconv.Itoa(maxResults * 3)},
		"sortBy":       {"submittedDate"},
		"sortOrder":    {"descending"},
	})
	if err != nil {
		return nil, &types.SourceError{Cause: err}
	}

	now := time.Now()
	cutoff := now.AddDate(0, 0, -daysBack)

	var papers []types.PaperRecord
	seen := make(map[string]bool)
	for _, entry := range entries {
		p, ok := entry.toPaper()
		if !ok || seen[p.ID] {
			continue
		}
		if !hasRelevantCategory(p.Categories) || p.Published.Before(cutoff) {
			continue
		}
		p.Category = MapCategory(p.Categories)
		p.RelevanceScore = Score(p, now)
		seen[p.ID] = true
		papers = append(papers, p)
	}

	sort.SliceStable(papers, func(i, j int) bool {
		return papers[i].RelevanceScore > papers[j].RelevanceScore
	})
	if len(papers) > maxResults {
		papers = papers[:maxResults]
	}
	return papers, nil
}

// SearchTopic queries arXiv by topic relevance rather than submission date.
// The same category filter and scoring apply (R1.4).
func (f *Fetcher) SearchTopic(ctx context.Context, topic string, maxResults int) ([]types.PaperRecord, error) {
	if maxResults <= 0 {
		maxResults = 5
	}

	entries, err := f.query(ctx, url.Values{
		"search_query": {buildQuery(topic)},
		"start":        {"0"},
		"max_results":  {strconv.Itoa(maxResults * 2)},
		"sortBy":       {"relevance"},
		"sortOrder":    {"descending"},
	})
	if err != nil {
		return nil, &types.SourceError{Cause: err}
	}

	now := time.Now()
	var papers []types.PaperRecord
	for _, entry := range entries {
		p, ok := entry.toPaper()
		if !ok || !hasRelevantCategory(p.Categories) {
			continue
		}
		p.Category = MapCategory(p.Categories)
		p.RelevanceScore = Score(p, now)
		papers = append(papers, p)
		if len(papers) >= maxResults {
			break
		}
	}
	return papers, nil
}

// FetchByID retrieves the metadata for a single arXiv identifier (R1.5).
func (f *Fetcher) FetchByID(ctx context.Context, id string) (*types.PaperRecord, error) {
	entries, err := f.query(ctx, url.Values{
		"id_list":     {id},
		"max_results": {"1"},
	})
	if err != nil {
		return nil, &types.SourceError{Cause: err}
	}
	if len(entries) == 0 {
		return nil, &types.SourceError{Cause: fmt.Errorf("no paper found for id %q", id)}
	}

	p, ok := entries[0].toPaper()
	if !ok {
		return nil, &types.SourceError{Cause: fmt.Errorf("malformed entry for id %q", id)}
	}
	p.Category = MapCategory(p.Categories)
	return &p, nil
}

// query issues one request against the arXiv Atom API and decodes the feed.
func (f *Fetcher) query(ctx context.Context, params url.Values) ([]atomEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.Config.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, f.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed atomFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}
	return feed.Entries, nil
}

// buildQuery constructs the search_query parameter. "OR"-joined terms are
// passed through; plain phrases become all: clauses.
func buildQuery(q string) string {
	terms := strings.Fields(q)
	if len(terms) == 0 {
		return "all:machine+learning"
	}
	var parts []string
	for _, t := range terms {
		if strings.EqualFold(t, "OR") || strings.EqualFold(t, "AND") {
			parts = append(parts, strings.ToUpper(t))
			continue
		}
		parts = append(parts, "all:"+t)
	}
	return strings.Join(parts, "+")
}

func hasRelevantCategory(categories []string) bool {
	for _, c := range categories {
		if relevantCategories[c] {
			return true
		}
	}
	return false
}

// arXiv Atom feed XML structures.
type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID         string         `xml:"id"`
	Title      string         `xml:"title"`
	Summary    string         `xml:"summary"`
	Published  string         `xml:"published"`
	Authors    []atomAuthor   `xml:"author"`
	Categories []atomCategory `xml:"category"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

type atomCategory struct {
	Term string `xml:"term,attr"`
}

// toPaper converts an Atom entry to a PaperRecord. ok is false when the
// entry lacks a recognizable arXiv ID.
func (e atomEntry) toPaper() (types.PaperRecord, bool) {
	id := extractID(e.ID)
	if id == "" {
		return types.PaperRecord{}, false
	}

	p := types.PaperRecord{
		ID:       id,
		Title:    collapseWhitespace(e.Title),
		Abstract: collapseWhitespace(e.Summary),
	}
	for _, a := range e.Authors {
		p.Authors = append(p.Authors, strings.TrimSpace(a.Name))
	}
	for _, c := range e.Categories {
		if c.Term != "" {
			p.Categories = append(p.Categories, c.Term)
		}
	}
	if t, err := time.Parse(time.RFC3339, e.Published); err == nil {
		p.Published = t
	}
	return p, true
}

// extractID pulls the arXiv ID from the entry's <id> URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" → "2301.07041").
func extractID(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return ""
	}
	id := idURL[idx+len(prefix):]

	// Strip version suffix (e.g. "v1", "v2").
	if vIdx := strings.LastIndex(id, "v"); vIdx > 0 {
		if _, err := strconv.Atoi(id[vIdx+1:]); err == nil {
			id = id[:vIdx]
		}
	}
	return id
}

// collapseWhitespace normalizes the newline-wrapped text arXiv returns in
// titles and abstracts.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
