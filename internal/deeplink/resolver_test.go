package deeplink

import (
	"testing"

	"github.com/anonto42/avida-market/gateway/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePathBeatsListingID(t *testing.T) {
	// An explicit path wins over every id field.
	target, rule, ok := Resolve(models.NotificationPayload{
		DeepLinkPath: "/chat/abc",
		ListingID:    "xyz",
	})

	require.True(t, ok)
	assert.Equal(t, RulePath, rule)
	assert.Equal(t, models.ScreenChatThread, target.Screen)
	assert.Equal(t, "abc", target.Params["conversation_id"])
}

func TestResolvePathPrefixes(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		screen string
		param  string
		want   string
	}{
		{"listing", "/listing/42", models.ScreenListingDetail, "listing_id", "42"},
		{"chat", "/chat/th-9", models.ScreenChatThread, "conversation_id", "th-9"},
		{"user", "/user/u-7", models.ScreenPublicProfile, "user_id", "u-7"},
		{"profile alias", "/profile/u-7", models.ScreenPublicProfile, "user_id", "u-7"},
		{"missing leading slash", "listing/42", models.ScreenListingDetail, "listing_id", "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, rule, ok := Resolve(models.NotificationPayload{DeepLinkPath: tt.path})
			require.True(t, ok)
			assert.Equal(t, RulePath, rule)
			assert.Equal(t, tt.screen, target.Screen)
			assert.Equal(t, tt.want, target.Params[tt.param])
		})
	}
}

func TestResolveUnknownPathGoesToNavigator(t *testing.T) {
	target, rule, ok := Resolve(models.NotificationPayload{DeepLinkPath: "/settings/privacy"})

	require.True(t, ok)
	assert.Equal(t, RulePath, rule)
	assert.Equal(t, models.ScreenPath, target.Screen)
	assert.Equal(t, "/settings/privacy", target.Params["path"])
}

func TestResolveUnnavigablePathEndsResolution(t *testing.T) {
	// Once the path branch is taken, the id tiers never run, even when the
	// path itself resolves to nothing.
	_, rule, ok := Resolve(models.NotificationPayload{
		DeepLinkPath: "/",
		ListingID:    "xyz",
	})

	assert.False(t, ok)
	assert.Equal(t, RulePath, rule)
}

func TestResolveIDTierOrder(t *testing.T) {
	target, rule, ok := Resolve(models.NotificationPayload{
		ListingID:      "l-1",
		ConversationID: "c-1",
		UserID:         "u-1",
	})
	require.True(t, ok)
	assert.Equal(t, RuleListingID, rule)
	assert.Equal(t, models.ScreenListingDetail, target.Screen)

	target, rule, ok = Resolve(models.NotificationPayload{
		ConversationID: "c-1",
		UserID:         "u-1",
	})
	require.True(t, ok)
	assert.Equal(t, RuleConversation, rule)
	assert.Equal(t, models.ScreenChatThread, target.Screen)

	target, rule, ok = Resolve(models.NotificationPayload{UserID: "u-1"})
	require.True(t, ok)
	assert.Equal(t, RuleUserID, rule)
	assert.Equal(t, models.ScreenPublicProfile, target.Screen)
}

func TestResolveTriggerFallback(t *testing.T) {
	tests := []struct {
		trigger string
		screen  string
	}{
		{models.TriggerNewListingInCategory, models.ScreenExplore},
		{models.TriggerSimilarListingAlert, models.ScreenExplore},
		{models.TriggerPriceDropSavedItem, models.ScreenFavorites},
		{models.TriggerMessageReceived, models.ScreenInbox},
		{models.TriggerSellerReply, models.ScreenInbox},
		{models.TriggerWeeklyDigest, models.ScreenHome},
	}

	for _, tt := range tests {
		t.Run(tt.trigger, func(t *testing.T) {
			target, rule, ok := Resolve(models.NotificationPayload{TriggerType: tt.trigger})
			require.True(t, ok)
			assert.Equal(t, RuleTrigger, rule)
			assert.Equal(t, tt.screen, target.Screen)
		})
	}
}

func TestResolveUnknownTriggerIsNoOp(t *testing.T) {
	_, rule, ok := Resolve(models.NotificationPayload{TriggerType: "unknown_label"})
	assert.False(t, ok)
	assert.Equal(t, RuleNone, rule)
}

func TestResolveTriggerIgnoredWhenIDPresent(t *testing.T) {
	target, rule, ok := Resolve(models.NotificationPayload{
		UserID:      "u-1",
		TriggerType: models.TriggerWeeklyDigest,
	})

	require.True(t, ok)
	assert.Equal(t, RuleUserID, rule)
	assert.Equal(t, models.ScreenPublicProfile, target.Screen)
}

func TestResolveEmptyPayloadIsNoOp(t *testing.T) {
	_, rule, ok := Resolve(models.NotificationPayload{})
	assert.False(t, ok)
	assert.Equal(t, RuleNone, rule)
}
