package interfaces

import (
	"context"

	"twitter-backend/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostRepository 接口定义了帖子仓库应该实现的方法
// 列表查询一律按创建时间倒序返回
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error)
	FindAll(ctx context.Context) ([]*model.Post, error)
	FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*model.Post, error)
	FindByUserIDs(ctx context.Context, userIDs []primitive.ObjectID) ([]*model.Post, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*model.Post, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	AddComment(ctx context.Context, postID primitive.ObjectID, comment model.Comment) error
	AddLike(ctx context.Context, postID, userID primitive.ObjectID) error
	RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) error
}
