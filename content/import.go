package content

import (
	"context"
	"fmt"
)

// ImportResult summarizes one Import run.
type ImportResult struct {
	Saved       int
	Unpublished []string
}

// Import copies every document under src into dst and unpublishes stored
// posts that no longer exist in src.
func Import(ctx context.Context, src *Dir, dst *Store) (ImportResult, error) {
	var res ImportResult
	docs, err := src.Documents(ctx)
	if err != nil {
		return res, err
	}
	present := make(map[string]struct{}, len(docs))
	for _, doc := range docs {
		if err := dst.SaveDocument(ctx, doc); err != nil {
			return res, fmt.Errorf("content: import %q: %w", doc.Slug, err)
		}
		present[doc.Slug] = struct{}{}
		res.Saved++
	}
	stored, err := dst.Slugs(ctx)
	if err != nil {
		return res, err
	}
	for _, slug := range stored {
		if _, ok := present[slug]; ok {
			continue
		}
		if err := dst.Unpublish(ctx, slug); err != nil {
			return res, fmt.Errorf("content: unpublish %q: %w", slug, err)
		}
		res.Unpublished = append(res.Unpublished, slug)
	}
	return res, nil
}
