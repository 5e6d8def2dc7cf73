package deeplink

import (
	"log"
	"regexp"
	"strings"

	"github.com/anonto42/avida-market/gateway/internal/models"
)

// Rule names recorded in the QA log.
const (
	RulePath         = "deep_link_path"
	RuleListingID    = "listing_id"
	RuleConversation = "conversation_id"
	RuleUserID       = "user_id"
	RuleTrigger      = "trigger_type"
	RuleNone         = "none"
)

// profilePrefix matches both /user/ and /profile/ paths, which are equivalent.
var profilePrefix = regexp.MustCompile(`^/(user|profile)/`)

// triggerScreens maps known trigger-type labels to a fallback screen.
var triggerScreens = map[string]string{
	models.TriggerNewListingInCategory: models.ScreenExplore,
	models.TriggerSimilarListingAlert:  models.ScreenExplore,
	models.TriggerPriceDropSavedItem:   models.ScreenFavorites,
	models.TriggerMessageReceived:      models.ScreenInbox,
	models.TriggerSellerReply:          models.ScreenInbox,
	models.TriggerWeeklyDigest:         models.ScreenHome,
}

// Resolve maps a notification payload to exactly one navigation target. The
// precedence is strict and each rule runs only if no earlier rule matched:
// explicit deep-link path, then listing id, conversation id, user id, and
// finally the trigger-type lookup. The returned rule name identifies the tier
// that fired; ok is false when nothing resolved (a deliberate no-op, never an
// error — bad deep links must not crash navigation).
func Resolve(payload models.NotificationPayload) (target models.NavigationTarget, rule string, ok bool) {
	if strings.TrimSpace(payload.DeepLinkPath) != "" {
		return resolvePath(payload.DeepLinkPath)
	}

	if payload.ListingID != "" {
		return listingTarget(payload.ListingID), RuleListingID, true
	}

	if payload.ConversationID != "" {
		return chatTarget(payload.ConversationID), RuleConversation, true
	}

	if payload.UserID != "" {
		return profileTarget(payload.UserID), RuleUserID, true
	}

	if payload.TriggerType != "" {
		screen, known := triggerScreens[payload.TriggerType]
		if !known {
			log.Printf("deeplink: unknown trigger type %q, ignoring", payload.TriggerType)
			return models.NavigationTarget{}, RuleNone, false
		}
		return models.NavigationTarget{Screen: screen}, RuleTrigger, true
	}

	return models.NavigationTarget{}, RuleNone, false
}

// resolvePath handles the explicit-path tier. Once the payload carries a path
// this branch owns the outcome: even an unresolvable path ends resolution
// without falling through to the id tiers.
func resolvePath(raw string) (models.NavigationTarget, string, bool) {
	path := strings.TrimSpace(raw)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	switch {
	case strings.HasPrefix(path, "/listing/"):
		return listingTarget(strings.TrimPrefix(path, "/listing/")), RulePath, true
	case strings.HasPrefix(path, "/chat/"):
		return chatTarget(strings.TrimPrefix(path, "/chat/")), RulePath, true
	case profilePrefix.MatchString(path):
		return profileTarget(profilePrefix.ReplaceAllString(path, "")), RulePath, true
	}

	if path == "/" {
		log.Printf("deeplink: unnavigable path %q, ignoring", raw)
		return models.NavigationTarget{}, RulePath, false
	}
	return models.NavigationTarget{
		Screen: models.ScreenPath,
		Params: map[string]string{"path": path},
	}, RulePath, true
}

func listingTarget(id string) models.NavigationTarget {
	return models.NavigationTarget{Screen: models.ScreenListingDetail, Params: map[string]string{"listing_id": id}}
}

func chatTarget(id string) models.NavigationTarget {
	return models.NavigationTarget{Screen: models.ScreenChatThread, Params: map[string]string{"conversation_id": id}}
}

func profileTarget(id string) models.NavigationTarget {
	return models.NavigationTarget{Screen: models.ScreenPublicProfile, Params: map[string]string{"user_id": id}}
}
