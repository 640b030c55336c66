package services_test

import (
	"testing"
	"time"

	"resinshop/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestAuthService_Login(t *testing.T) {
	service := services.NewAuthService("secret-admin-key", "test-jwt-secret")

	// Correct key yields a token.
	token, err := service.Login("secret-admin-key")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	// Wrong key does not.
	_, err = service.Login("guessed-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestAuthService_Login_Unconfigured(t *testing.T) {
	service := services.NewAuthService("", "test-jwt-secret")

	_, err := service.Login("")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestAuthService_ValidateToken(t *testing.T) {
	service := services.NewAuthService("secret-admin-key", "test-jwt-secret")

	token, err := service.Login("secret-admin-key")
	assert.NoError(t, err)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "admin", claims["role"])

	// The session expires 30 minutes after issue.
	exp := int64(claims["exp"].(float64))
	iat := int64(claims["iat"].(float64))
	assert.Equal(t, int64((30 * time.Minute).Seconds()), exp-iat)
}

func TestAuthService_ValidateToken_Invalid(t *testing.T) {
	service := services.NewAuthService("secret-admin-key", "test-jwt-secret")

	_, err := service.ValidateToken("not.a.token")
	assert.Error(t, err)

	// A token signed with a different secret is rejected.
	other := services.NewAuthService("secret-admin-key", "other-secret")
	token, err := other.Login("secret-admin-key")
	assert.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.Error(t, err)
}
