package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/pdiddy/blog-engine/pkg/types"
)

// --- test helpers ---

func sampleArticle(paperID, title string) *types.ArticleRecord {
	return &types.ArticleRecord{
		Title:            "Paper Explained: " + title + " - A Beginner's Guide",
		Subtitle:         "A short hook",
		Category:         "Foundation Models",
		Authors:          []string{"Author A", "Author B"},
		PaperID:          paperID,
		PaperURL:         "https://arxiv.org/abs/" + paperID,
		ReadTime:         "4 min read",
		PublishDate:      "2026-08-27",
		ConceptExplained: "Self-Attention",
		Content: types.ArticleContent{
			Background:   "First sentence of background. Second sentence here. Third sentence follows.",
			Methodology:  "How it works.",
			Results:      "What they found.",
			Significance: "Why it matters.",
		},
		ConceptExplanation: types.ConceptExplanation{
			Title:   "Understanding Self-Attention: The Heart of " + title,
			Content: "Imagine a cocktail party.",
		},
		Summary: "One sentence summary.",
	}
}

func sampleEntry(paperID, title, publishDate string) types.CorpusEntry {
	art := sampleArticle(paperID, title)
	e := entryFromArticle(Slugify(art.Title), art)
	e.PublishDate = publishDate
	return e
}

// --- Slugify ---

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{
			"full article title",
			"Paper Explained: Attention Is All You Need - A Beginner's Guide",
			"attention-is-all-you-need",
		},
		{
			"punctuation stripped",
			"Paper Explained: BERT: Pre-training of Deep Bidirectional Transformers - A Beginner's Guide",
			"bert-pre-training-of-deep-bidirectional-transformers",
		},
		{
			"bare title without prefix",
			"Generative Adversarial Networks",
			"generative-adversarial-networks",
		},
		{
			"whitespace collapsed",
			"Paper Explained: Deep   Residual  Learning - A Beginner's Guide",
			"deep-residual-learning",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.title); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	title := "Paper Explained: Attention Is All You Need - A Beginner's Guide"
	once := Slugify(title)
	if twice := Slugify(once); twice != once {
		t.Errorf("Slugify not idempotent: %q -> %q", once, twice)
	}
}

// --- Excerpt ---

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name       string
		background string
		want       string
	}{
		{
			"two sentences kept",
			"First sentence. Second sentence. Third sentence.",
			"First sentence. Second sentence.",
		},
		{
			"single short sentence unchanged",
			"Just one sentence without trailing period",
			"Just one sentence without trailing period",
		},
		{
			"single long sentence truncated",
			strings.Repeat("x", 250),
			strings.Repeat("x", 200) + "...",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Excerpt(tt.background); got != tt.want {
				t.Errorf("Excerpt() = %q, want %q", got, tt.want)
			}
		})
	}
}

// --- Load / Save ---

func TestLoadMissingFileIsEmptyCorpus(t *testing.T) {
	entries, err := Load(filepath.Join(t.TempDir(), "articles.json"))
	if err != nil {
		t.Fatal(err)
	}
	if entries != nil {
		t.Errorf("entries = %v, want nil", entries)
	}
}

func TestLoadUnparseableCorpus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "articles.json")
	if err := os.WriteFile(path, []byte(`{"not": "a list"`), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	var intErr *types.IntegrationError
	if !errors.As(err, &intErr) {
		t.Fatalf("error = %T, want *types.IntegrationError", err)
	}

	// The malformed file survives untouched.
	data, readErr := os.ReadFile(path)
	if readErr != nil {
		t.Fatal(readErr)
	}
	if string(data) != `{"not": "a list"` {
		t.Error("malformed corpus file was modified")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "articles.json")
	want := []types.CorpusEntry{
		sampleEntry("1706.03762", "Attention Is All You Need", "2026-08-27"),
		sampleEntry("1810.04805", "BERT", "2026-08-26"),
	}

	if err := Save(path, want); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

// --- PaperIDs ---

func TestPaperIDs(t *testing.T) {
	entries := []types.CorpusEntry{
		sampleEntry("1706.03762", "Attention Is All You Need", "2026-08-27"),
		sampleEntry("1810.04805", "BERT", "2026-08-26"),
	}
	ids := PaperIDs(entries)
	if len(ids) != 2 || !ids["1706.03762"] || !ids["1810.04805"] {
		t.Errorf("PaperIDs() = %v", ids)
	}
}

// --- Integrate ---

func TestIntegrateAppendsEntry(t *testing.T) {
	existing := []types.CorpusEntry{
		sampleEntry("1810.04805", "BERT", "2026-08-26"),
	}
	art := sampleArticle("1706.03762", "Attention Is All You Need")

	merged, err := Integrate([]*types.ArticleRecord{art}, existing)
	if err != nil {
		t.Fatal(err)
	}
	if len(merged) != 2 {
		t.Fatalf("got %d entries, want 2", len(merged))
	}

	var entry types.CorpusEntry
	for _, e := range merged {
		if e.PaperID == "1706.03762" {
			entry = e
		}
	}
	if entry.ID != "attention-is-all-you-need" {
		t.Errorf("slug = %q", entry.ID)
	}
	if entry.CategorySlug != "foundation-models" {
		t.Errorf("category slug = %q", entry.CategorySlug)
	}
	if entry.Excerpt != "First sentence of background. Second sentence here." {
		t.Errorf("excerpt = %q", entry.Excerpt)
	}
}

func TestIntegrateSortsNewestFirst(t *testing.T) {
	existing := []types.CorpusEntry{
		sampleEntry("1810.04805", "BERT", "2026-08-20"),
		sampleEntry("1406.2661", "Generative Adversarial Networks", "2026-08-25"),
	}
	art := sampleArticle("1706.03762", "Attention Is All You Need") // 2026-08-27

	merged, err := Integrate([]*types.ArticleRecord{art}, existing)
	if err != nil {
		t.Fatal(err)
	}

	for i := 1; i < len(merged); i++ {
		if merged[i-1].PublishDate < merged[i].PublishDate {
			t.Errorf("entries not sorted newest first: %q before %q",
				merged[i-1].PublishDate, merged[i].PublishDate)
		}
	}
	if merged[0].PaperID != "1706.03762" {
		t.Errorf("newest entry = %q, want the new article", merged[0].PaperID)
	}
}

func TestIntegrateSlugCollisionGetsSuffix(t *testing.T) {
	existing := []types.CorpusEntry{
		sampleEntry("1706.03762", "Attention Is All You Need", "2026-08-26"),
	}
	// Different paper, identical title.
	art := sampleArticle("2104.00001", "Attention Is All You Need")

	merged, err := Integrate([]*types.ArticleRecord{art}, existing)
	if err != nil {
		t.Fatal(err)
	}
	if len(merged) != 2 {
		t.Fatalf("got %d entries, want 2", len(merged))
	}

	var slug string
	for _, e := range merged {
		if e.PaperID == "2104.00001" {
			slug = e.ID
		}
	}
	if !strings.HasPrefix(slug, "attention-is-all-you-need-") {
		t.Errorf("colliding slug = %q, want suffixed base slug", slug)
	}
	suffix := strings.TrimPrefix(slug, "attention-is-all-you-need-")
	if len(suffix) != 8 {
		t.Errorf("suffix = %q, want 8 hex characters", suffix)
	}
	// Deterministic: same inputs yield the same slug.
	again, err := Integrate([]*types.ArticleRecord{art}, existing)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range again {
		if e.PaperID == "2104.00001" && e.ID != slug {
			t.Errorf("slug not deterministic: %q vs %q", e.ID, slug)
		}
	}
}

func TestIntegrateRejectsDuplicatePaper(t *testing.T) {
	existing := []types.CorpusEntry{
		sampleEntry("1706.03762", "Attention Is All You Need", "2026-08-26"),
	}
	art := sampleArticle("1706.03762", "Attention Is All You Need")

	_, err := Integrate([]*types.ArticleRecord{art}, existing)
	var intErr *types.IntegrationError
	if !errors.As(err, &intErr) {
		t.Fatalf("error = %T, want *types.IntegrationError", err)
	}
}

func TestIntegrateRejectsDuplicateWithinBatch(t *testing.T) {
	arts := []*types.ArticleRecord{
		sampleArticle("1706.03762", "Attention Is All You Need"),
		sampleArticle("1706.03762", "Attention Is All You Need"),
	}

	_, err := Integrate(arts, nil)
	var intErr *types.IntegrationError
	if !errors.As(err, &intErr) {
		t.Fatalf("error = %T, want *types.IntegrationError", err)
	}
}

func TestIntegrateBatchCollisionWithinBatch(t *testing.T) {
	arts := []*types.ArticleRecord{
		sampleArticle("1706.03762", "Attention Is All You Need"),
		sampleArticle("2104.00001", "Attention Is All You Need"),
	}

	merged, err := Integrate(arts, nil)
	if err != nil {
		t.Fatal(err)
	}
	if merged[0].ID == merged[1].ID {
		t.Errorf("batch slugs not unique: %q", merged[0].ID)
	}
}

// --- Select ---

func TestSelectFiltersExisting(t *testing.T) {
	candidates := []types.PaperRecord{
		{ID: "old-1", RelevanceScore: 20},
		{ID: "new-1", RelevanceScore: 10},
		{ID: "new-2", RelevanceScore: 5},
	}
	existing := map[string]bool{"old-1": true}

	got := Select(candidates, existing, 5)
	if len(got) != 2 {
		t.Fatalf("got %d papers, want 2", len(got))
	}
	for _, p := range got {
		if existing[p.ID] {
			t.Errorf("selected already-covered paper %s", p.ID)
		}
	}
}

func TestSelectRanksAndTruncates(t *testing.T) {
	candidates := []types.PaperRecord{
		{ID: "low", RelevanceScore: 3},
		{ID: "high", RelevanceScore: 25},
		{ID: "mid", RelevanceScore: 10},
	}

	got := Select(candidates, nil, 2)
	if len(got) != 2 {
		t.Fatalf("got %d papers, want 2", len(got))
	}
	if got[0].ID != "high" || got[1].ID != "mid" {
		t.Errorf("selection = [%s %s], want [high mid]", got[0].ID, got[1].ID)
	}
}

func TestSelectStableForEqualScores(t *testing.T) {
	candidates := []types.PaperRecord{
		{ID: "first", RelevanceScore: 10},
		{ID: "second", RelevanceScore: 10},
		{ID: "third", RelevanceScore: 10},
	}

	got := Select(candidates, nil, 3)
	want := []string{"first", "second", "third"}
	for i, p := range got {
		if p.ID != want[i] {
			t.Errorf("position %d = %s, want %s", i, p.ID, want[i])
		}
	}
}

func TestSelectDefaultLimit(t *testing.T) {
	var candidates []types.PaperRecord
	for _, id := range []string{"a", "b", "c", "d"} {
		candidates = append(candidates, types.PaperRecord{ID: id, RelevanceScore: 1})
	}

	if got := Select(candidates, nil, 0); len(got) != DefaultDailyLimit {
		t.Errorf("got %d papers, want default limit %d", len(got), DefaultDailyLimit)
	}
}

func TestSelectDropsWithinBatchDuplicates(t *testing.T) {
	candidates := []types.PaperRecord{
		{ID: "dup", RelevanceScore: 10},
		{ID: "dup", RelevanceScore: 10},
		{ID: "other", RelevanceScore: 5},
	}

	got := Select(candidates, nil, 5)
	if len(got) != 2 {
		t.Errorf("got %d papers, want 2 after in-batch dedup", len(got))
	}
}
