package middleware

import (
	"context"
	"time"

	"twitter-backend/internal/errors"
	"twitter-backend/internal/model"
	"twitter-backend/internal/service"
	"twitter-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// contextUserKey 是解析出的用户在 gin 上下文中的键
const contextUserKey = "user"

// AuthMiddleware 从 jwt cookie 中取出会话令牌并解析出当前用户
// 无令牌或令牌无效返回401；令牌有效但用户已不存在返回404
func AuthMiddleware(userService service.UserServiceInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		token, err := c.Cookie(util.TokenCookieName)
		if err != nil || token == "" {
			errors.HandleError(c, errors.New(errors.ErrUnauthorized, "Unauthorized: No Token Provided"))
			c.Abort()
			return
		}

		userIDHex, err := util.ValidateToken(token)
		if err != nil {
			errors.HandleError(c, errors.Wrap(errors.ErrInvalidToken, "Unauthorized: Invalid Token", err))
			c.Abort()
			return
		}

		userID, err := primitive.ObjectIDFromHex(userIDHex)
		if err != nil {
			errors.HandleError(c, errors.Wrap(errors.ErrInvalidToken, "Unauthorized: Invalid Token", err))
			c.Abort()
			return
		}

		user, err := userService.GetUserByID(ctx, userID)
		if err != nil {
			errors.HandleError(c, err)
			c.Abort()
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

// CurrentUser 返回认证中间件解析出的当前用户
func CurrentUser(c *gin.Context) *model.User {
	value, exists := c.Get(contextUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*model.User)
	if !ok {
		return nil
	}
	return user
}
