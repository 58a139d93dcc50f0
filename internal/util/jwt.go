package util

import (
	"errors"
	"net/http"
	"time"

	"twitter-backend/config"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

// TokenCookieName 是存放会话令牌的 cookie 名称
const TokenCookieName = "jwt"

// TokenLifetime 会话令牌有效期为15天
const TokenLifetime = 15 * 24 * time.Hour

// GenerateToken 为指定用户签发会话令牌
func GenerateToken(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(TokenLifetime).Unix(),
	})

	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}

// ValidateToken 验证会话令牌并返回其中的用户ID
func ValidateToken(tokenString string) (string, error) {
	if tokenString == "" {
		return "", errors.New("令牌为空")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("意外的签名方法")
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})

	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		userID, ok := claims["user_id"].(string)
		if !ok {
			return "", errors.New("无效的用户ID")
		}
		return userID, nil
	}

	return "", errors.New("无效的令牌")
}

// SetTokenCookie 将会话令牌写入响应的 jwt cookie
// httpOnly + SameSite=Strict，非开发环境下附加 secure 标志
func SetTokenCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(TokenCookieName, token, int(TokenLifetime.Seconds()), "/", "", !config.IsDevelopment(), true)
}

// ClearTokenCookie 清除会话 cookie；令牌本身在到期前仍然有效
func ClearTokenCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(TokenCookieName, "", -1, "/", "", !config.IsDevelopment(), true)
}
