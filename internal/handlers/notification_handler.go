package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/anonto42/avida-market/gateway/internal/deeplink"
	"github.com/anonto42/avida-market/gateway/internal/models"
	"github.com/anonto42/avida-market/gateway/internal/repositories"
	"github.com/labstack/echo/v4"
)

// TrackingAPI is the slice of the upstream client the handler needs for
// notification analytics.
type TrackingAPI interface {
	TrackClick(ctx context.Context, notificationID string) error
	TrackConversion(ctx context.Context, notificationID, conversionType string, value float64, entityID string) error
}

// NotificationHandler resolves notification payloads to navigation targets
// and forwards click/conversion tracking
type NotificationHandler struct {
	tracking       TrackingAPI
	resolutionRepo repositories.ResolutionRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(tracking TrackingAPI, resolutionRepo repositories.ResolutionRepository) *NotificationHandler {
	return &NotificationHandler{
		tracking:       tracking,
		resolutionRepo: resolutionRepo,
	}
}

// RegisterNotificationRoutes registers consumer notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.POST("/notifications/resolve", h.ResolveDeepLink)
	g.POST("/notifications/:id/track/conversion", h.TrackConversion)
}

// RegisterAdminRoutes registers the QA view on the admin group
func (h *NotificationHandler) RegisterAdminRoutes(g *echo.Group) {
	g.GET("/deeplink-events", h.RecentResolutions)
}

// ResolveDeepLink resolves a tapped notification to exactly one navigation
// target. Click tracking and QA logging are fire-and-forget: their failures
// never block or change the resolved target.
func (h *NotificationHandler) ResolveDeepLink(c echo.Context) error {
	var payload models.NotificationPayload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	if payload.NotificationID != "" && getUserIDFromContext(c) != "" {
		go func(notificationID string) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := h.tracking.TrackClick(ctx, notificationID); err != nil {
				log.Printf("notification click tracking failed for %s: %v", notificationID, err)
			}
		}(payload.NotificationID)
	}

	target, rule, resolved := deeplink.Resolve(payload)

	go func(event models.ResolutionEvent) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.resolutionRepo.Record(ctx, &event); err != nil {
			log.Printf("failed to record deeplink resolution: %v", err)
		}
	}(models.ResolutionEvent{
		NotificationID: payload.NotificationID,
		MatchedRule:    rule,
		Screen:         target.Screen,
		Resolved:       resolved,
		ResolvedAt:     time.Now(),
	})

	if !resolved {
		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"data":    echo.Map{"resolved": false},
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"resolved": true,
			"target":   target,
		},
	})
}

// TrackConversion forwards a conversion event upstream
func (h *NotificationHandler) TrackConversion(c echo.Context) error {
	if getUserIDFromContext(c) == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.TrackConversionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	err := h.tracking.TrackConversion(c.Request().Context(), c.Param("id"), req.ConversionType, req.ConversionValue, req.EntityID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// RecentResolutions returns the latest deep-link resolution events for the
// admin QA view
func (h *NotificationHandler) RecentResolutions(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 || limit > 200 {
		limit = 50
	}

	events, err := h.resolutionRepo.Recent(c.Request().Context(), int64(limit))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"events": events},
	})
}
