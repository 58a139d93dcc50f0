package service

import (
	"context"
	"testing"

	"twitter-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TestGetNotifications 读取的同时标记已读，返回的是标记前的状态
func TestGetNotifications(t *testing.T) {
	mockNotifications := new(MockNotificationRepository)
	mockUsers := new(MockUserRepository)
	service := NewNotificationService(mockNotifications, mockUsers)

	recipientID := primitive.NewObjectID()
	senderID := primitive.NewObjectID()
	stored := []*model.Notification{
		{ID: primitive.NewObjectID(), From: senderID, To: recipientID, Type: model.NotificationTypeLike, Read: false},
	}

	mockNotifications.On("FindByRecipient", mock.Anything, recipientID).Return(stored, nil)
	mockUsers.On("FindByIDs", mock.Anything, []primitive.ObjectID{senderID}).Return([]*model.User{
		{ID: senderID, Username: "bob", ProfileImg: "https://img.example.com/bob", Email: "bob@example.com"},
	}, nil)
	mockNotifications.On("MarkAllRead", mock.Anything, recipientID).Return(nil)

	notifications, err := service.GetNotifications(context.Background(), recipientID)
	assert.NoError(t, err)
	assert.Len(t, notifications, 1)
	// 第一次读取时 read 仍为 false
	assert.False(t, notifications[0].Read)
	// 发送者只暴露用户名和头像
	assert.Equal(t, "bob", notifications[0].Sender.Username)
	assert.Equal(t, "https://img.example.com/bob", notifications[0].Sender.ProfileImg)
	assert.Empty(t, notifications[0].Sender.Email)
	mockNotifications.AssertCalled(t, "MarkAllRead", mock.Anything, recipientID)
}

// TestGetNotificationsSecondRead 第二次读取看到的是已读状态
func TestGetNotificationsSecondRead(t *testing.T) {
	mockNotifications := new(MockNotificationRepository)
	mockUsers := new(MockUserRepository)
	service := NewNotificationService(mockNotifications, mockUsers)

	recipientID := primitive.NewObjectID()
	senderID := primitive.NewObjectID()
	stored := []*model.Notification{
		{ID: primitive.NewObjectID(), From: senderID, To: recipientID, Type: model.NotificationTypeLike, Read: true},
	}

	mockNotifications.On("FindByRecipient", mock.Anything, recipientID).Return(stored, nil)
	mockUsers.On("FindByIDs", mock.Anything, mock.Anything).Return([]*model.User{{ID: senderID, Username: "bob"}}, nil)
	mockNotifications.On("MarkAllRead", mock.Anything, recipientID).Return(nil)

	notifications, err := service.GetNotifications(context.Background(), recipientID)
	assert.NoError(t, err)
	assert.True(t, notifications[0].Read)
}

// TestDeleteNotifications 批量删除当前用户的全部通知
func TestDeleteNotifications(t *testing.T) {
	mockNotifications := new(MockNotificationRepository)
	service := NewNotificationService(mockNotifications, new(MockUserRepository))

	recipientID := primitive.NewObjectID()
	mockNotifications.On("DeleteByRecipient", mock.Anything, recipientID).Return(nil)

	err := service.DeleteNotifications(context.Background(), recipientID)
	assert.NoError(t, err)
	mockNotifications.AssertExpectations(t)
}
