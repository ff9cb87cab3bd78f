package content

import (
	"github.com/agnivade/levenshtein"
)

// Closest returns the post whose slug is nearest to slug by edit
// distance, if it is near enough to be a plausible typo.
func Closest(slug string, posts []PostSummary) (PostSummary, bool) {
	best, bestDist := -1, 0
	for i, p := range posts {
		d := levenshtein.ComputeDistance(slug, p.Slug)
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return PostSummary{}, false
	}
	limit := len(slug) / 3
	if limit < 2 {
		limit = 2
	}
	if bestDist > limit {
		return PostSummary{}, false
	}
	return posts[best], true
}
