package article

import (
	"testing"

	"github.com/pdiddy/blog-engine/pkg/types"
)

func TestDisplayCategory(t *testing.T) {
	tests := []struct {
		slug types.CategorySlug
		want string
	}{
		{types.CategoryFoundationModels, "Foundation Models"},
		{types.CategoryGenerativeModels, "Generative Models"},
		{types.CategoryOptimization, "Optimization"},
		{types.CategoryApplications, "Applications"},
		{types.CategoryBasicConcepts, "Basic Concepts"},
		{"no-such-slug", "Basic Concepts"},
	}
	for _, tt := range tests {
		if got := DisplayCategory(tt.slug); got != tt.want {
			t.Errorf("DisplayCategory(%q) = %q, want %q", tt.slug, got, tt.want)
		}
	}
}

func TestCategoryRoundTrip(t *testing.T) {
	for slug := range categoryDisplay {
		if got := CategoryToSlug(DisplayCategory(slug)); got != slug {
			t.Errorf("round trip for %q yielded %q", slug, got)
		}
	}
}

func TestCategoryToSlugFallback(t *testing.T) {
	if got := CategoryToSlug("Quantum Gardening"); got != types.CategoryBasicConcepts {
		t.Errorf("CategoryToSlug fallback = %q, want basic-concepts", got)
	}
}
