package models

import "github.com/golang-jwt/jwt/v5"

// CustomClaims is the JWT payload issued at login and parsed back by the auth
// middleware.
type CustomClaims struct {
	UserID uint     `json:"user_id"`
	Email  string   `json:"email"`
	Role   UserRole `json:"role"`
	jwt.RegisteredClaims
}

// AuthResponse is returned from register and login.
type AuthResponse struct {
	User        *User  `json:"user"`
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}
