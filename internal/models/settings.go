package models

// Feature-settings keys served by GET /api/feature-settings.
const (
	SettingShowViewCount      = "show_view_count"
	SettingShowSaveCount      = "show_save_count"
	SettingShowDistance       = "show_distance"
	SettingShowTimeAgo        = "show_time_ago"
	SettingShowNegotiableBdg  = "show_negotiable_badge"
	SettingShowFeaturedBdg    = "show_featured_badge"
	SettingShowListingStats   = "show_listing_stats"
	SettingShowSellerStats    = "show_seller_stats"
	SettingLocationMode       = "location_mode"
	SettingDefaultCountry     = "default_country"
	SettingAllowCountryChange = "allow_country_change"
	SettingCurrency           = "currency"
	SettingCurrencySymbol     = "currency_symbol"
	SettingCurrencyPosition   = "currency_position"
)

// DefaultFeatureSettings returns the hard-coded fallback record. Fetched data
// is shallow-merged over this, so every key always has a defined value even
// when the backend omits it or the fetch fails.
func DefaultFeatureSettings() map[string]any {
	return map[string]any{
		SettingShowViewCount:      true,
		SettingShowSaveCount:      true,
		SettingShowDistance:       true,
		SettingShowTimeAgo:        true,
		SettingShowNegotiableBdg:  true,
		SettingShowFeaturedBdg:    true,
		SettingShowListingStats:   true,
		SettingShowSellerStats:    true,
		SettingLocationMode:       "region",
		SettingDefaultCountry:     "KE",
		SettingAllowCountryChange: true,
		SettingCurrency:           "KES",
		SettingCurrencySymbol:     "KSh",
		SettingCurrencyPosition:   "before",
	}
}
