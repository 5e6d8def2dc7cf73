package models

// BannerMarker is the synthetic record inserted between feed items. Position
// is the 1-indexed count of content items emitted before the marker.
type BannerMarker struct {
	Type     string `json:"type"`
	Position int    `json:"position"`
	Category string `json:"category,omitempty"`
}

// NewBannerMarker builds a banner marker for the given slot.
func NewBannerMarker(position int, category string) BannerMarker {
	return BannerMarker{Type: "banner", Position: position, Category: category}
}
