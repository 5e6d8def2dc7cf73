package feed

import "github.com/anonto42/avida-market/gateway/internal/models"

// InjectBanners inserts a banner marker after every interval-th content item
// (1-indexed), but only when at least one more item follows, so markers sit
// strictly between two content items and never trail the list.
//
// The transformation is not idempotent: it cannot tell a marker from a real
// item, so it must run at most once per raw page.
func InjectBanners(items []any, interval int, category string) []any {
	if interval <= 0 || len(items) == 0 {
		return items
	}

	out := make([]any, 0, len(items)+len(items)/interval)
	for i, item := range items {
		out = append(out, item)
		position := i + 1
		if position%interval == 0 && i < len(items)-1 {
			out = append(out, models.NewBannerMarker(position, category))
		}
	}
	return out
}
