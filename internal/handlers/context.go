package handlers

import "github.com/labstack/echo/v4"

// getUserIDFromContext returns the Firebase UID set by the auth middleware,
// or "" for unauthenticated callers.
func getUserIDFromContext(c echo.Context) string {
	if uid, ok := c.Get("firebaseUID").(string); ok {
		return uid
	}
	return ""
}
