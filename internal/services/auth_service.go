package services

import (
	"crypto/subtle"
	"fmt"
	"log"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// AuthService guards the admin console. An admin signs in with the
// configured API key and receives a short-lived session token; the key
// itself stays server-side and is only ever forwarded upstream by the
// gateway.
type AuthService struct {
	adminKey   string
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which the session token is valid
}

// NewAuthService creates a new AuthService. Admin sessions expire after
// 30 minutes, matching the storefront's admin-key expiry window.
func NewAuthService(adminKey, jwtSecret string) *AuthService {
	return &AuthService{
		adminKey:   adminKey,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 30 * time.Minute,
	}
}

// Login exchanges the admin API key for a session token.
func (s *AuthService) Login(apiKey string) (string, error) {
	if s.adminKey == "" {
		return "", fmt.Errorf("admin access is not configured")
	}
	if subtle.ConstantTimeCompare([]byte(apiKey), []byte(s.adminKey)) != 1 {
		return "", fmt.Errorf("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": "admin",
		"exp":  time.Now().Add(s.tokenDurat).Unix(),
		"iat":  time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken parses and validates a session token, returning the
// claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
