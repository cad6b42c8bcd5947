package auth

import "github.com/golang-jwt/jwt/v4"

// JWTClaims are the claims carried by both access and refresh tokens
type JWTClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	Type  string `json:"type"`
	jwt.RegisteredClaims
}

// TokenPair holds an access token and its refresh counterpart
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}
