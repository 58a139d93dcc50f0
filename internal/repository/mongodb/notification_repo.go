package mongodb

import (
	"context"
	"time"

	"twitter-backend/internal/model"
	"twitter-backend/internal/repository/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type notificationRepository struct {
	collection *mongo.Collection
}

// NewNotificationRepository 创建基于 MongoDB 的通知仓库
func NewNotificationRepository(db *mongo.Database) interfaces.NotificationRepository {
	return &notificationRepository{collection: db.Collection("notifications")}
}

func (r *notificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	notification.CreatedAt = time.Now()
	notification.Read = false

	result, err := r.collection.InsertOne(ctx, notification)
	if err != nil {
		return err
	}
	notification.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *notificationRepository) FindByRecipient(ctx context.Context, userID primitive.ObjectID) ([]*model.Notification, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"to": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	notifications := []*model.Notification{}
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"to": userID},
		bson.M{"$set": bson.M{"read": true}})
	return err
}

func (r *notificationRepository) DeleteByRecipient(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"to": userID})
	return err
}
