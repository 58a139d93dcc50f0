package util

import (
	"testing"
	"time"

	"twitter-backend/config"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
)

func init() {
	config.AppConfig.JWTSecret = "test-secret"
}

// TestTokenRoundTrip 签发的令牌可以解析出原始用户ID
func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("507f1f77bcf86cd799439011")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	userID, err := ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "507f1f77bcf86cd799439011", userID)
}

// TestValidateEmptyToken 空令牌直接失败
func TestValidateEmptyToken(t *testing.T) {
	_, err := ValidateToken("")
	assert.Error(t, err)
}

// TestValidateTamperedToken 签名不匹配的令牌失败
func TestValidateTamperedToken(t *testing.T) {
	other := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "507f1f77bcf86cd799439011",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := other.SignedString([]byte("another-secret"))
	assert.NoError(t, err)

	_, err = ValidateToken(signed)
	assert.Error(t, err)
}

// TestValidateExpiredToken 过期令牌失败
func TestValidateExpiredToken(t *testing.T) {
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "507f1f77bcf86cd799439011",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := expired.SignedString([]byte(config.AppConfig.JWTSecret))
	assert.NoError(t, err)

	_, err = ValidateToken(signed)
	assert.Error(t, err)
}

// TestValidateMalformedToken 无法解析的令牌失败
func TestValidateMalformedToken(t *testing.T) {
	_, err := ValidateToken("not-a-jwt")
	assert.Error(t, err)
}
