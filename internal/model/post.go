package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post 结构体表示帖子模型，评论内嵌在帖子文档中
type Post struct {
	ID        primitive.ObjectID   `json:"_id,omitempty" bson:"_id,omitempty"`
	UserID    primitive.ObjectID   `json:"user" bson:"user"`
	Text      string               `json:"text,omitempty" bson:"text,omitempty"`
	Img       string               `json:"img,omitempty" bson:"img,omitempty"`
	Likes     []primitive.ObjectID `json:"likes" bson:"likes"`
	Comments  []Comment            `json:"comments" bson:"comments"`
	CreatedAt time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt" bson:"updatedAt"`

	// Author 由服务层显式关联，不落库
	Author *User `json:"author,omitempty" bson:"-"`
}

// Comment 内嵌评论，按插入顺序保存，没有独立的文档身份
type Comment struct {
	UserID    primitive.ObjectID `json:"user" bson:"user"`
	Text      string             `json:"text" bson:"text"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`

	Author *User `json:"author,omitempty" bson:"-"`
}

// IsLikedBy 判断指定用户是否已点赞该帖子
func (p *Post) IsLikedBy(userID primitive.ObjectID) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}
