package article

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/blog-engine/pkg/types"
)

// --- stub completion service ---

// promptMarkers identify which template produced a prompt, so the stub can
// answer per template ID without the real service.
var promptMarkers = map[string]string{
	TmplBackground:   "Focus on the motivation and context",
	TmplMethodology:  "Focus on WHAT they did and HOW it works",
	TmplResults:      "Focus on the practical impact",
	TmplSignificance: "Focus on the lasting impact",
	TmplConceptName:  "Return only the name of the concept",
	TmplConceptBody:  "explain the concept to someone else",
	TmplSummary:      "One sentence only",
	TmplSubtitle:     "Create an engaging subtitle",
}

type stubCompleter struct {
	responses map[string]string // template ID → reply
	errs      map[string]error  // template ID → forced failure
	calls     []string
}

func (s *stubCompleter) Complete(_ context.Context, _, user string) (string, error) {
	for id, marker := range promptMarkers {
		if strings.Contains(user, marker) {
			s.calls = append(s.calls, id)
			if err := s.errs[id]; err != nil {
				return "", err
			}
			if text, ok := s.responses[id]; ok {
				return text, nil
			}
			return "stub " + id, nil
		}
	}
	return "", fmt.Errorf("unrecognized prompt: %s", user)
}

func attentionPaper() types.PaperRecord {
	return types.PaperRecord{
		ID:        "1706.03762",
		Title:     "Attention Is All You Need",
		Authors:   []string{"Ashish Vaswani", "Noam Shazeer"},
		Abstract:  "We propose the Transformer, based solely on attention mechanisms.",
		Published: time.Date(2017, 6, 12, 0, 0, 0, 0, time.UTC),
		Category:  types.CategoryFoundationModels,
	}
}

func fixedNow() time.Time {
	return time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)
}

// --- Generate ---

func TestGenerateAssemblesArticle(t *testing.T) {
	stub := &stubCompleter{
		responses: map[string]string{
			TmplConceptName: "Self-Attention Mechanism\n",
			TmplSummary:     "This paper introduced the Transformer.",
			TmplSubtitle:    "How the Transformer Architecture Revolutionized AI",
		},
	}
	g := &Generator{Completer: stub, Now: fixedNow}

	art, failures, err := g.Generate(context.Background(), attentionPaper())
	if err != nil {
		t.Fatal(err)
	}
	if len(failures) != 0 {
		t.Fatalf("failures = %v, want none", failures)
	}

	if art.Title != "Paper Explained: Attention Is All You Need - A Beginner's Guide" {
		t.Errorf("Title = %q", art.Title)
	}
	if art.Category != "Foundation Models" {
		t.Errorf("Category = %q, want Foundation Models", art.Category)
	}
	if art.PaperURL != "https://arxiv.org/abs/1706.03762" {
		t.Errorf("PaperURL = %q", art.PaperURL)
	}
	if art.PublishDate != "2026-08-27" {
		t.Errorf("PublishDate = %q, want generation date", art.PublishDate)
	}
	if art.ConceptExplained != "Self-Attention Mechanism" {
		t.Errorf("ConceptExplained = %q", art.ConceptExplained)
	}
	wantConceptTitle := "Understanding Self-Attention Mechanism: The Heart of Attention Is All You Need"
	if art.ConceptExplanation.Title != wantConceptTitle {
		t.Errorf("ConceptExplanation.Title = %q, want %q", art.ConceptExplanation.Title, wantConceptTitle)
	}
	if art.Content.Background != "stub background" {
		t.Errorf("Background = %q", art.Content.Background)
	}
	if art.Summary != "This paper introduced the Transformer." {
		t.Errorf("Summary = %q", art.Summary)
	}
	if !strings.HasSuffix(art.ReadTime, " min read") {
		t.Errorf("ReadTime = %q", art.ReadTime)
	}
}

func TestGenerateCallOrderIsFixed(t *testing.T) {
	stub := &stubCompleter{}
	g := &Generator{Completer: stub, Now: fixedNow}

	if _, _, err := g.Generate(context.Background(), attentionPaper()); err != nil {
		t.Fatal(err)
	}

	want := []string{
		TmplBackground, TmplMethodology, TmplResults, TmplSignificance,
		TmplConceptName, TmplConceptBody, TmplSummary, TmplSubtitle,
	}
	if !reflect.DeepEqual(stub.calls, want) {
		t.Errorf("call order = %v, want %v", stub.calls, want)
	}
}

func TestGenerateConceptNameFeedsExplanationPrompt(t *testing.T) {
	var conceptPrompt string
	stub := &stubCompleter{
		responses: map[string]string{TmplConceptName: "Adversarial Training"},
	}
	g := &Generator{Completer: completerFunc(func(ctx context.Context, system, user string) (string, error) {
		if strings.Contains(user, promptMarkers[TmplConceptBody]) {
			conceptPrompt = user
		}
		return stub.Complete(ctx, system, user)
	}), Now: fixedNow}

	if _, _, err := g.Generate(context.Background(), attentionPaper()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(conceptPrompt, `"Adversarial Training"`) {
		t.Errorf("concept explanation prompt missing concept name:\n%s", conceptPrompt)
	}
}

func TestGenerateSectionFailureDegradesToPlaceholder(t *testing.T) {
	boom := errors.New("rate limited")
	stub := &stubCompleter{errs: map[string]error{TmplMethodology: boom}}
	g := &Generator{Completer: stub, Now: fixedNow}

	art, failures, err := g.Generate(context.Background(), attentionPaper())
	if err != nil {
		t.Fatal(err)
	}

	if len(failures) != 1 {
		t.Fatalf("failures = %v, want exactly one", failures)
	}
	if failures[0].Template != TmplMethodology {
		t.Errorf("failed template = %q", failures[0].Template)
	}
	var svcErr *types.ServiceError
	if !errors.As(failures[0].Err, &svcErr) {
		t.Errorf("failure error = %T, want *types.ServiceError", failures[0].Err)
	}

	if !strings.Contains(art.Content.Methodology, "Error generating content") {
		t.Errorf("Methodology = %q, want placeholder", art.Content.Methodology)
	}
	// Other sections are untouched by the failure.
	if art.Content.Background != "stub background" {
		t.Errorf("Background corrupted by unrelated failure: %q", art.Content.Background)
	}
}

func TestGenerateRejectsIncompletePaper(t *testing.T) {
	g := &Generator{Completer: &stubCompleter{}, Now: fixedNow}

	p := attentionPaper()
	p.Abstract = ""
	_, _, err := g.Generate(context.Background(), p)

	var genErr *types.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("error = %T, want *types.GenerationError", err)
	}
}

func TestGenerateUnmappedCategoryFallsBack(t *testing.T) {
	stub := &stubCompleter{}
	g := &Generator{Completer: stub, Now: fixedNow}

	p := attentionPaper()
	p.Category = "underwater-basket-weaving"
	art, _, err := g.Generate(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if art.Category != "Basic Concepts" {
		t.Errorf("Category = %q, want Basic Concepts fallback", art.Category)
	}
}

// --- ReadTime ---

func TestReadTime(t *testing.T) {
	tests := []struct {
		name  string
		texts []string
		want  int
	}{
		{"zero words still one minute", []string{"", "", ""}, 1},
		{"short text rounds up to one", []string{"a few words only"}, 1},
		{"four hundred words is two minutes", []string{strings.Repeat("word ", 400)}, 2},
		{"rounds to nearest", []string{strings.Repeat("word ", 299)}, 1},
		{"split across sections", []string{strings.Repeat("word ", 300), strings.Repeat("word ", 300)}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReadTime(tt.texts...); got != tt.want {
				t.Errorf("ReadTime() = %d, want %d", got, tt.want)
			}
		})
	}
}

// --- persistence ---

func TestSaveLoadArticleRoundTrip(t *testing.T) {
	g := &Generator{Completer: &stubCompleter{}, Now: fixedNow}
	art, _, err := g.Generate(context.Background(), attentionPaper())
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "article.json")
	if err := SaveArticle(path, art); err != nil {
		t.Fatal(err)
	}
	got, err := LoadArticle(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, art) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, art)
	}
}

func TestTitleStem(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"BERT: Pre-training of Deep Bidirectional Transformers", "BERT"},
		{"Attention Is All You Need", "Attention Is All You Need"},
	}
	for _, tt := range tests {
		if got := titleStem(tt.in); got != tt.want {
			t.Errorf("titleStem(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// completerFunc adapts a function to the Completer interface.
type completerFunc func(ctx context.Context, system, user string) (string, error)

func (f completerFunc) Complete(ctx context.Context, system, user string) (string, error) {
	return f(ctx, system, user)
}
