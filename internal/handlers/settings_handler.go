package handlers

import (
	"log"
	"net/http"

	"github.com/anonto42/avida-market/gateway/internal/settings"
	"github.com/labstack/echo/v4"
)

// SettingsHandler serves the feature-settings record to both clients
type SettingsHandler struct {
	cache *settings.Cache
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(cache *settings.Cache) *SettingsHandler {
	return &SettingsHandler{cache: cache}
}

// RegisterSettingsRoutes registers feature-settings routes
func (h *SettingsHandler) RegisterSettingsRoutes(g *echo.Group) {
	g.GET("/feature-settings", h.GetSettings)
	g.POST("/feature-settings/refresh", h.RefreshSettings)
}

// GetSettings refreshes the record within the cache window and returns the
// current value. A failed fetch keeps the previous record, so the response is
// always fully populated.
func (h *SettingsHandler) GetSettings(c echo.Context) error {
	if err := h.cache.Fetch(c.Request().Context()); err != nil {
		log.Printf("feature settings fetch failed, serving cached values: %v", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"settings": h.cache.Values()},
	})
}

// RefreshSettings forces a fetch regardless of the cache window
func (h *SettingsHandler) RefreshSettings(c echo.Context) error {
	if err := h.cache.Refresh(c.Request().Context()); err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{
			"success": false,
			"error":   err.Error(),
			"data":    echo.Map{"settings": h.cache.Values()},
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"settings": h.cache.Values()},
	})
}
