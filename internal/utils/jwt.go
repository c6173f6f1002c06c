package utils

import (
	"errors" // Empty operator guard
	"time"   // Time for token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// JWT Claims
type Claims struct {
	Operator             string `json:"operator"` // Name stamped into audit fields
	jwt.RegisteredClaims                          // Standard JWT claims
}

// GenerateJWT creates a JWT token for a given operator
func GenerateJWT(operator, secret string, ttl time.Duration) (string, error) {
	if operator == "" {
		return "", errors.New("operator name is required") // Tokens always name someone
	}
	now := time.Now()
	// Set token claims
	claims := Claims{
		Operator: operator, // Custom claim for the operator
		// Standard claims
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   operator,                         // Subject mirrors the operator
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)), // Token expires after ttl
			IssuedAt:  jwt.NewNumericDate(now),          // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString([]byte(secret))                  // Sign the token with the secret
}

// ParseJWT parses and validates a JWT token string
func ParseJWT(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil // Return the secret key for validation
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	// Check for parsing errors
	if err != nil {
		return nil, err // Return error if parsing fails
	}
	// Validate token and extract claims
	if claims, ok := token.Claims.(*Claims); ok && token.Valid && claims.Operator != "" {
		return claims, nil // Return claims if valid
	}
	// Return error if token is invalid
	return nil, jwt.ErrTokenInvalidClaims
}
