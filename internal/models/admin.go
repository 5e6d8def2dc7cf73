package models

import "github.com/golang-jwt/jwt/v4"

// AdminClaims are the custom claims carried by dashboard JWTs.
type AdminClaims struct {
	AdminID string `json:"admin_id"`
	Email   string `json:"email"`
	jwt.RegisteredClaims
}

// AdminLoginRequest is the dashboard sign-in request body.
type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
