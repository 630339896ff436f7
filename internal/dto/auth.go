package dto

import "github.com/golang-jwt/jwt/v5"

// AuthClaims are the custom JWT claims carried by access and refresh tokens.
type AuthClaims struct {
	UserID    string `json:"uid"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"` // "access" or "refresh"
	jwt.RegisteredClaims
}

// GoogleUserInfo is the subset of Google's userinfo payload we consume.
type GoogleUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// TokenPairResponse carries freshly issued tokens.
type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RefreshTokenRequest asks for a new token pair.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}
