package notification

import (
	"net/http"

	"twitter-backend/internal/errors"
	"twitter-backend/internal/middleware"
	"twitter-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// NotificationHandler 处理通知相关的HTTP请求
type NotificationHandler struct {
	notificationService service.NotificationServiceInterface
}

// NewNotificationHandler 创建一个新的 NotificationHandler 实例
func NewNotificationHandler(notificationService service.NotificationServiceInterface) *NotificationHandler {
	return &NotificationHandler{notificationService}
}

// GetNotifications 获取当前用户的全部通知
// 读取的同时把通知标记为已读，响应中的 read 字段反映读取前的状态
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	caller := middleware.CurrentUser(c)

	notifications, err := h.notificationService.GetNotifications(c.Request.Context(), caller.ID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Notifications retrieved successfully",
		"notifications": notifications,
	})
}

// DeleteNotifications 删除当前用户的全部通知
func (h *NotificationHandler) DeleteNotifications(c *gin.Context) {
	caller := middleware.CurrentUser(c)

	if err := h.notificationService.DeleteNotifications(c.Request.Context(), caller.ID); err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notifications deleted successfully"})
}
