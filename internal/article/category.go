// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package article

import "github.com/pdiddy/blog-engine/pkg/types"

// categoryDisplay maps category slugs to the display names the front-end
// shows. Fixed table with an explicit fallback, per prd003-generation R4.2.
var categoryDisplay = map[types.CategorySlug]string{
	types.CategoryFoundationModels: "Foundation Models",
	types.CategoryGenerativeModels: "Generative Models",
	types.CategoryOptimization:     "Optimization",
	types.CategoryApplications:     "Applications",
	types.CategoryBasicConcepts:    "Basic Concepts",
}

// categorySlugs is the inverse of categoryDisplay, used during corpus
// integration to recover the slug from the display name.
var categorySlugs = map[string]types.CategorySlug{
	"Foundation Models": types.CategoryFoundationModels,
	"Generative Models": types.CategoryGenerativeModels,
	"Optimization":      types.CategoryOptimization,
	"Applications":      types.CategoryApplications,
	"Basic Concepts":    types.CategoryBasicConcepts,
}

// DisplayCategory returns the display name for a category slug, falling
// back to "Basic Concepts" for anything outside the fixed set.
func DisplayCategory(slug types.CategorySlug) string {
	if name, ok := categoryDisplay[slug]; ok {
		return name
	}
	return "Basic Concepts"
}

// CategoryToSlug inverts DisplayCategory, falling back to basic-concepts.
func CategoryToSlug(display string) types.CategorySlug {
	if slug, ok := categorySlugs[display]; ok {
		return slug
	}
	return types.CategoryBasicConcepts
}
