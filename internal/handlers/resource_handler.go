package handlers

import (
	"net/http"
	"net/url"

	"github.com/anonto42/avida-market/gateway/internal/sandbox"
	"github.com/labstack/echo/v4"
)

// ResourceHandler serves marketplace resources to the consumer app through
// the sandbox-aware router
type ResourceHandler struct {
	router *sandbox.Router
}

// NewResourceHandler creates a new ResourceHandler
func NewResourceHandler(router *sandbox.Router) *ResourceHandler {
	return &ResourceHandler{router: router}
}

// RegisterResourceRoutes registers resource routes
func (h *ResourceHandler) RegisterResourceRoutes(g *echo.Group) {
	g.GET("/listings", h.GetListings)
	g.GET("/listings/:id", h.GetListing)
	g.GET("/orders/my", h.GetMyOrders)
	g.GET("/notifications", h.GetNotifications)
	g.GET("/categories", h.GetCategories)
	g.POST("/conversations/:id/messages", h.SendMessage)
}

// listingQueryParams are the caller-supplied filters forwarded upstream.
var listingQueryParams = []string{"page", "limit", "category", "q", "sort"}

func listingParams(c echo.Context) url.Values {
	params := url.Values{}
	for _, key := range listingQueryParams {
		if value := c.QueryParam(key); value != "" {
			params.Set(key, value)
		}
	}
	return params
}

// GetListings returns listings, proxied through the sandbox when active
func (h *ResourceHandler) GetListings(c echo.Context) error {
	result, err := h.router.GetListings(c.Request().Context(), listingParams(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": result})
}

// GetListing returns a single listing
func (h *ResourceHandler) GetListing(c echo.Context) error {
	result, err := h.router.GetListing(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": result})
}

// GetMyOrders returns the caller's orders
func (h *ResourceHandler) GetMyOrders(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	result, err := h.router.GetMyOrders(c.Request().Context(), currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": result})
}

// GetNotifications returns the caller's notification inbox
func (h *ResourceHandler) GetNotifications(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	result, err := h.router.GetNotifications(c.Request().Context(), currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": result})
}

// GetCategories returns the category tree
func (h *ResourceHandler) GetCategories(c echo.Context) error {
	result, err := h.router.GetCategories(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": result})
}

// SendMessageRequest is the request body for posting a conversation message
type SendMessageRequest struct {
	Message string `json:"message" validate:"required,min=1"`
}

// SendMessage posts a message into a conversation
func (h *ResourceHandler) SendMessage(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.router.SendMessage(c.Request().Context(), c.Param("id"), currentUserID, req.Message)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": result})
}
