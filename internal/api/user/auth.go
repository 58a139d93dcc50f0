package user

import (
	"net/http"

	"twitter-backend/internal/errors"
	"twitter-backend/internal/middleware"
	"twitter-backend/internal/model"
	"twitter-backend/internal/service"
	"twitter-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// AuthHandler 处理与认证相关的HTTP请求
type AuthHandler struct {
	userService service.UserServiceInterface
}

// NewAuthHandler 创建一个新的 AuthHandler 实例
func NewAuthHandler(userService service.UserServiceInterface) *AuthHandler {
	return &AuthHandler{userService}
}

// Signup 处理用户注册请求
func (h *AuthHandler) Signup(c *gin.Context) {
	var signupData struct {
		FullName string `json:"fullName" binding:"required"`
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&signupData); err != nil {
		util.Logger.Warn("注册失败，无效的请求数据", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "Invalid request data", err))
		return
	}

	if !util.IsValidEmail(signupData.Email) {
		errors.HandleError(c, errors.New(errors.ErrValidation, "Invalid email format"))
		return
	}

	if len(signupData.Password) < util.MinPasswordLength {
		errors.HandleError(c, errors.New(errors.ErrWeakPassword, "Password must be at least 6 characters long"))
		return
	}

	user := &model.User{
		ID:       primitive.NewObjectID(),
		FullName: signupData.FullName,
		Username: signupData.Username,
		Email:    signupData.Email,
		Password: signupData.Password,
	}

	if err := h.userService.Register(c.Request.Context(), user); err != nil {
		errors.HandleError(c, err)
		return
	}

	// 与写入顺序相反：先确认持久化成功再下发会话令牌，
	// 避免注册失败后客户端仍然持有有效 cookie
	token, err := util.GenerateToken(user.ID.Hex())
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "Internal Server Error", err))
		return
	}
	util.SetTokenCookie(c, token)

	user.Password = ""
	c.JSON(http.StatusCreated, gin.H{
		"message": "User Created Successfully",
		"user":    user,
	})
}

// Login 处理用户登录请求
func (h *AuthHandler) Login(c *gin.Context) {
	var loginData struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&loginData); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "Invalid request data", err))
		return
	}

	user, err := h.userService.Login(c.Request.Context(), loginData.Username, loginData.Password)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	token, err := util.GenerateToken(user.ID.Hex())
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "Internal Server Error", err))
		return
	}
	util.SetTokenCookie(c, token)

	c.JSON(http.StatusCreated, gin.H{
		"message": "User Logged In Successfully",
		"user":    user,
	})
}

// Logout 处理用户登出，仅清除客户端 cookie，无需认证
func (h *AuthHandler) Logout(c *gin.Context) {
	util.ClearTokenCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "User logged out successfully"})
}

// GetMe 返回当前登录用户的公开资料
func (h *AuthHandler) GetMe(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		errors.HandleError(c, errors.New(errors.ErrUnauthorized, "Unauthorized: No Token Provided"))
		return
	}
	c.JSON(http.StatusOK, user)
}
