package handlers

import (
	"net/http"

	"github.com/anonto42/avida-market/gateway/internal/models"
	"github.com/anonto42/avida-market/gateway/internal/sandbox"
	"github.com/labstack/echo/v4"
)

// SandboxHandler handles sandbox-session HTTP requests for the admin dashboard
type SandboxHandler struct {
	store *sandbox.Store
}

// NewSandboxHandler creates a new SandboxHandler
func NewSandboxHandler(store *sandbox.Store) *SandboxHandler {
	return &SandboxHandler{store: store}
}

// RegisterSandboxRoutes registers sandbox routes on the admin group
func (h *SandboxHandler) RegisterSandboxRoutes(g *echo.Group) {
	g.POST("/sandbox/enter", h.Enter)
	g.POST("/sandbox/exit", h.Exit)
	g.POST("/sandbox/switch-role", h.SwitchRole)
	g.GET("/sandbox/status", h.Status)
}

// Enter starts a sandbox session in the requested role
func (h *SandboxHandler) Enter(c echo.Context) error {
	var req models.EnterSandboxRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.store.Enter(c.Request().Context(), req.Role); err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"success": false, "error": err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"session": h.store.Session()},
	})
}

// Exit ends the sandbox session and clears the persisted state
func (h *SandboxHandler) Exit(c echo.Context) error {
	if err := h.store.Exit(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// SwitchRole switches the sandbox role; switching to the current role succeeds
// without touching the backend
func (h *SandboxHandler) SwitchRole(c echo.Context) error {
	var req models.SwitchRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.store.SwitchRole(c.Request().Context(), req.Role); err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"success": false, "error": err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"session": h.store.Session()},
	})
}

// Status reports whether sandbox mode is active and the current session
func (h *SandboxHandler) Status(c echo.Context) error {
	session := h.store.Session()
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"active":  session != nil,
			"session": session,
		},
	})
}
