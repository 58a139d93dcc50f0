package user

import (
	"net/http"

	"twitter-backend/internal/errors"
	"twitter-backend/internal/middleware"
	"twitter-backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProfileHandler 处理用户资料和关注关系相关的HTTP请求
type ProfileHandler struct {
	userService service.UserServiceInterface
}

// NewProfileHandler 创建一个新的 ProfileHandler 实例
func NewProfileHandler(userService service.UserServiceInterface) *ProfileHandler {
	return &ProfileHandler{userService}
}

// GetUserProfile 按用户名返回公开资料
func (h *ProfileHandler) GetUserProfile(c *gin.Context) {
	username := c.Param("username")

	user, err := h.userService.GetUserByUsername(c.Request.Context(), username)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// FollowUnfollowUser 关注/取消关注切换
func (h *ProfileHandler) FollowUnfollowUser(c *gin.Context) {
	caller := middleware.CurrentUser(c)

	targetID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "Invalid user ID", err))
		return
	}

	followed, err := h.userService.FollowUnfollow(c.Request.Context(), caller, targetID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	message := "User unfollowed successfully"
	if followed {
		message = "User followed successfully"
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// UpdateProfile 更新当前用户的资料
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	caller := middleware.CurrentUser(c)

	var updateData struct {
		FullName        string `json:"fullName"`
		Email           string `json:"email" binding:"omitempty,email_shape"`
		Bio             string `json:"bio"`
		Link            string `json:"link"`
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
		ProfileImg      string `json:"profileImg"`
		CoverImg        string `json:"coverImg"`
	}

	if err := c.ShouldBindJSON(&updateData); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "Invalid request data", err))
		return
	}

	updated, err := h.userService.UpdateProfile(c.Request.Context(), caller, service.ProfileUpdate{
		FullName:        updateData.FullName,
		Email:           updateData.Email,
		Bio:             updateData.Bio,
		Link:            updateData.Link,
		CurrentPassword: updateData.CurrentPassword,
		NewPassword:     updateData.NewPassword,
		ProfileImg:      updateData.ProfileImg,
		CoverImg:        updateData.CoverImg,
	})
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    updated,
	})
}
