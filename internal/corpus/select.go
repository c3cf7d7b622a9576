// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"sort"

	"github.com/pdiddy/blog-engine/pkg/types"
)

// DefaultDailyLimit caps how many articles a daily run produces.
const DefaultDailyLimit = 2

// Select picks which candidate papers to write about: drop papers the
// corpus already covers, rank the rest by relevance score, and keep the
// top limit. The sort is stable, so equally scored papers keep their
// source order. A non-positive limit means DefaultDailyLimit.
// Per prd004-dedup R2.1-R2.3.
func Select(candidates []types.PaperRecord, existing map[string]bool, limit int) []types.PaperRecord {
	if limit <= 0 {
		limit = DefaultDailyLimit
	}

	fresh := make([]types.PaperRecord, 0, len(candidates))
	seen := make(map[string]bool, len(candidates))
	for _, p := range candidates {
		if existing[p.ID] || seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		fresh = append(fresh, p)
	}

	sort.SliceStable(fresh, func(i, j int) bool {
		return fresh[i].RelevanceScore > fresh[j].RelevanceScore
	})

	if len(fresh) > limit {
		fresh = fresh[:limit]
	}
	return fresh
}
