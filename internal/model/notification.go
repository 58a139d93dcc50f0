package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 通知类型
const (
	NotificationTypeLike   = "like"
	NotificationTypeFollow = "follow"
)

// Notification 结构体表示通知模型，由点赞、关注等行为触发写入
type Notification struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	From      primitive.ObjectID `json:"from" bson:"from"`
	To        primitive.ObjectID `json:"to" bson:"to"`
	Type      string             `json:"type" bson:"type"`
	Read      bool               `json:"read" bson:"read"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`

	// Sender 由服务层显式关联（仅 username 和 profileImg），不落库
	Sender *User `json:"sender,omitempty" bson:"-"`
}
