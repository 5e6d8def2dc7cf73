package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/anonto42/avida-market/gateway/internal/feed"
	"github.com/anonto42/avida-market/gateway/internal/sandbox"
	"github.com/anonto42/avida-market/gateway/internal/settings"
	"github.com/labstack/echo/v4"
)

// FeedHandler serves the consumer listings feed with banners injected
type FeedHandler struct {
	router          *sandbox.Router
	settingsCache   *settings.Cache
	defaultInterval int
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(router *sandbox.Router, settingsCache *settings.Cache, defaultInterval int) *FeedHandler {
	return &FeedHandler{
		router:          router,
		settingsCache:   settingsCache,
		defaultInterval: defaultInterval,
	}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// GetFeed returns a page of listings with banner markers inserted between
// items. Banners are injected exactly once, on the raw upstream page.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}

	interval := h.defaultInterval
	if raw := c.QueryParam("banner_interval"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			interval = parsed
		}
	}
	category := c.QueryParam("category")

	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))
	if category != "" {
		params.Set("category", category)
	}

	result, err := h.router.GetListings(c.Request().Context(), params)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	items, ok := result.([]any)
	if !ok {
		// Non-array payload (e.g. a tagged sandbox object); serve it untouched.
		return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"items": result}})
	}

	injected := feed.InjectBanners(items, interval, category)

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"items": injected,
		},
		"meta": echo.Map{
			"currentPage":    page,
			"itemsPerPage":   limit,
			"bannerInterval": interval,
			"showTimeAgo":    h.settingsCache.ShouldShow("show_time_ago"),
			"showDistance":   h.settingsCache.ShouldShow("show_distance"),
		},
	})
}
