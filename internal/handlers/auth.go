package handlers

import (
	"net/http"
	"os"
	"time"

	"github.com/anonto42/avida-market/gateway/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler handles dashboard authentication requests
type AuthHandler struct {
	adminID           string
	adminEmail        string
	adminPasswordHash string
	jwtSecret         string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(adminID, adminEmail, adminPasswordHash string) *AuthHandler {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "supersecretjwtkey"
	}
	return &AuthHandler{
		adminID:           adminID,
		adminEmail:        adminEmail,
		adminPasswordHash: adminPasswordHash,
		jwtSecret:         jwtSecret,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/admin-login", h.AdminLogin)
}

// AdminLogin authenticates the dashboard admin and issues a JWT
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	var req models.AdminLoginRequest

	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if req.Email != h.adminEmail {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unknown admin email")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(h.adminPasswordHash), []byte(req.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid password")
	}

	token, err := h.generateJWT()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(http.StatusOK, echo.Map{"token": token})
}

// generateJWT generates a JWT token for the dashboard admin
func (h *AuthHandler) generateJWT() (string, error) {
	claims := &models.AdminClaims{
		AdminID: h.adminID,
		Email:   h.adminEmail,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 12)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	t, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		return "", err
	}
	return t, nil
}
