package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationPayload is the ephemeral record carried by an incoming push or
// local notification. Any combination of the identifying fields may be set;
// the deep-link resolver picks exactly one navigation target from them.
type NotificationPayload struct {
	DeepLinkPath   string `json:"deep_link_path,omitempty"`
	ListingID      string `json:"listing_id,omitempty"`
	ConversationID string `json:"conversation_id,omitempty"`
	UserID         string `json:"user_id,omitempty"`
	TriggerType    string `json:"trigger_type,omitempty"`
	NotificationID string `json:"notification_id,omitempty"`
}

// Screens the resolver can navigate to.
const (
	ScreenListingDetail = "listing_detail"
	ScreenChatThread    = "chat_thread"
	ScreenPublicProfile = "public_profile"
	ScreenExplore       = "explore"
	ScreenFavorites     = "favorites"
	ScreenInbox         = "inbox"
	ScreenHome          = "home"
	ScreenPath          = "path" // raw path handed to the client navigator
)

// Trigger-type labels assigned by the notification backend.
const (
	TriggerNewListingInCategory = "new_listing_in_category"
	TriggerSimilarListingAlert  = "similar_listing_alert"
	TriggerPriceDropSavedItem   = "price_drop_saved_item"
	TriggerMessageReceived      = "message_received"
	TriggerSellerReply          = "seller_reply"
	TriggerWeeklyDigest         = "weekly_digest"
)

// NavigationTarget is the resolved destination for a notification tap.
type NavigationTarget struct {
	Screen string            `json:"screen"`
	Params map[string]string `json:"params,omitempty"`
}

// ResolutionEvent is the MongoDB record of one deep-link resolution, kept for
// the admin QA view.
type ResolutionEvent struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	NotificationID string             `bson:"notification_id,omitempty" json:"notification_id,omitempty"`
	MatchedRule    string             `bson:"matched_rule" json:"matched_rule"`
	Screen         string             `bson:"screen,omitempty" json:"screen,omitempty"`
	Resolved       bool               `bson:"resolved" json:"resolved"`
	ResolvedAt     time.Time          `bson:"resolved_at" json:"resolved_at"`
}

// TrackConversionRequest is the request body for conversion tracking.
type TrackConversionRequest struct {
	ConversionType  string  `json:"conversion_type" validate:"required"`
	ConversionValue float64 `json:"conversion_value,omitempty"`
	EntityID        string  `json:"entity_id,omitempty"`
}
