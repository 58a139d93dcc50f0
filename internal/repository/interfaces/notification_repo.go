package interfaces

import (
	"context"

	"twitter-backend/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationRepository 接口定义了通知仓库应该实现的方法
type NotificationRepository interface {
	Create(ctx context.Context, notification *model.Notification) error
	FindByRecipient(ctx context.Context, userID primitive.ObjectID) ([]*model.Notification, error)
	MarkAllRead(ctx context.Context, userID primitive.ObjectID) error
	DeleteByRecipient(ctx context.Context, userID primitive.ObjectID) error
}
