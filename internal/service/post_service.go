package service

import (
	"context"
	"strings"
	"time"

	"twitter-backend/internal/errors"
	"twitter-backend/internal/model"
	"twitter-backend/internal/repository/interfaces"
	"twitter-backend/internal/storage"
	"twitter-backend/internal/util"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// PostService 处理帖子、评论和点赞相关的业务逻辑
type PostService struct {
	postRepo         interfaces.PostRepository
	userRepo         interfaces.UserRepository
	notificationRepo interfaces.NotificationRepository
	storage          storage.FileStorage
}

// NewPostService 创建一个新的 PostService 实例
func NewPostService(postRepo interfaces.PostRepository, userRepo interfaces.UserRepository, notificationRepo interfaces.NotificationRepository, fileStorage storage.FileStorage) *PostService {
	return &PostService{
		postRepo:         postRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		storage:          fileStorage,
	}
}

// CreatePost 创建帖子，文字和图片至少要有一个
// 图片先上传到媒体存储，帖子里只保存返回的URL
func (s *PostService) CreatePost(ctx context.Context, userID primitive.ObjectID, text, img string) (*model.Post, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Internal Server Error", err)
	}
	if user == nil {
		// 认证之后、写入之前用户记录消失的边界情况
		return nil, errors.New(errors.ErrUserNotFound, "User not found")
	}

	if text == "" && img == "" {
		return nil, errors.New(errors.ErrValidation, "Post must have text or image")
	}

	imgURL := ""
	if img != "" {
		data, contentType, err := util.DecodeDataURL(img)
		if err != nil {
			return nil, errors.Wrap(errors.ErrValidation, "Invalid image data", err)
		}
		imgURL, err = s.storage.UploadFile(ctx, data, "posts/"+util.GenerateMediaID(), contentType)
		if err != nil {
			return nil, errors.Wrap(errors.ErrStorage, "Internal Server Error", err)
		}
	}

	post := &model.Post{
		UserID: userID,
		Text:   text,
		Img:    imgURL,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Internal Server Error", err)
	}

	util.Logger.Info("帖子创建成功",
		zap.String("post_id", post.ID.Hex()),
		zap.String("user_id", userID.Hex()))
	return post, nil
}

// DeletePost 删除帖子，仅限帖子作者
// 帖子带图片时先从媒体存储删除图片，再删除文档
func (s *PostService) DeletePost(ctx context.Context, userID, postID primitive.ObjectID) error {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "Internal Server Error", err)
	}
	if post == nil {
		return errors.New(errors.ErrPostNotFound, "Post not found")
	}

	if post.UserID != userID {
		return errors.New(errors.ErrForbidden, "You are not authorized to delete this post")
	}

	if post.Img != "" {
		mediaID := util.MediaIDFromURL(post.Img)
		if err := s.storage.DeleteFile(ctx, "posts/"+mediaID); err != nil {
			return errors.Wrap(errors.ErrStorage, "Internal Server Error", err)
		}
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return errors.Wrap(errors.ErrDatabase, "Internal Server Error", err)
	}

	util.Logger.Info("帖子删除成功", zap.String("post_id", postID.Hex()))
	return nil
}

// CommentOnPost 给帖子追加评论，评论按到达顺序保存
func (s *PostService) CommentOnPost(ctx context.Context, userID, postID primitive.ObjectID, text string) (*model.Post, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New(errors.ErrValidation, "Text field is required and cannot be empty")
	}

	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Internal Server Error", err)
	}
	if post == nil {
		return nil, errors.New(errors.ErrPostNotFound, "Post not found")
	}

	comment := model.Comment{
		UserID:    userID,
		Text:      text,
		CreatedAt: time.Now(),
	}
	if err := s.postRepo.AddComment(ctx, postID, comment); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Internal Server Error", err)
	}

	updated, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Internal Server Error", err)
	}
	if updated == nil {
		return nil, errors.New(errors.ErrPostNotFound, "Post not found")
	}
	return updated, nil
}

// LikeUnlikePost 点赞/取消点赞的切换操作
// 点赞关系同时维护在帖子的 likes 和用户的 likedPosts 两处，
// 两次写入之间没有事务保证；点赞时给帖子作者写入一条 like 通知，
// 取消点赞不产生通知。返回值表示本次操作后是否处于已点赞状态
func (s *PostService) LikeUnlikePost(ctx context.Context, userID, postID primitive.ObjectID) (bool, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return false, errors.Wrap(errors.ErrDatabase, "Internal Server Error", err)
	}
	if post == nil {
		return false, errors.New(errors.ErrPostNotFound, "Post not found")
	}

	if post.IsLikedBy(userID) {
		if err := s.postRepo.RemoveLike(ctx, postID, userID); err != nil {
			return false, errors.Wrap(errors.ErrDatabase, "Internal Server Error", err)
		}
		if err := s.userRepo.RemoveLikedPost(ctx, userID, postID); err != nil {
			return false, errors.Wrap(errors.ErrDatabase, "Internal Server Error", err)
		}
		return false, nil
	}

	if err := s.postRepo.AddLike(ctx, postID, userID); err != nil {
		return false, errors.Wrap(errors.ErrDatabase, "Internal Server Error", err)
	}
	if err := s.userRepo.AddLikedPost(ctx, userID, postID); err != nil {
		return false, errors.Wrap(errors.ErrDatabase, "Internal Server Error", err)
	}

	// 给自己的帖子点赞同样会产生通知
	notification := &model.Notification{
		From: userID,
		To:   post.UserID,
		Type: model.NotificationTypeLike,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return false, errors.Wrap(errors.ErrDatabase, "Internal Server Error", err)
	}

	return true, nil
}

// GetAllPosts 获取全部帖子，按创建时间倒序
func (s *PostService) GetAllPosts(ctx context.Context) ([]*model.Post, error) {
	posts, err := s.postRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Internal Server Error", err)
	}
	return s.attachAuthors(ctx, posts)
}

// GetFollowingPosts 获取当前用户关注的人发布的帖子
func (s *PostService) GetFollowingPosts(ctx context.Context, user *model.User) ([]*model.Post, error) {
	posts, err := s.postRepo.FindByUserIDs(ctx, user.Following)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Internal Server Error", err)
	}
	return s.attachAuthors(ctx, posts)
}

// GetUserPosts 获取指定用户名的用户发布的帖子
func (s *PostService) GetUserPosts(ctx context.Context, username string) ([]*model.Post, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Internal Server Error", err)
	}
	if user == nil {
		return nil, errors.New(errors.ErrUserNotFound, "User not found")
	}

	posts, err := s.postRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Internal Server Error", err)
	}
	return s.attachAuthors(ctx, posts)
}

// GetLikedPosts 获取指定用户点赞过的帖子
func (s *PostService) GetLikedPosts(ctx context.Context, userID primitive.ObjectID) ([]*model.Post, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Internal Server Error", err)
	}
	if user == nil {
		return nil, errors.New(errors.ErrUserNotFound, "User not found")
	}

	posts, err := s.postRepo.FindByIDs(ctx, user.LikedPosts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Internal Server Error", err)
	}
	return s.attachAuthors(ctx, posts)
}

// attachAuthors 显式的类型化关联：收集帖子和评论里的作者ID，
// 批量查询后挂到对应的结构上，作者信息不含密码
func (s *PostService) attachAuthors(ctx context.Context, posts []*model.Post) ([]*model.Post, error) {
	seen := make(map[primitive.ObjectID]bool)
	ids := []primitive.ObjectID{}
	for _, post := range posts {
		if !seen[post.UserID] {
			seen[post.UserID] = true
			ids = append(ids, post.UserID)
		}
		for _, comment := range post.Comments {
			if !seen[comment.UserID] {
				seen[comment.UserID] = true
				ids = append(ids, comment.UserID)
			}
		}
	}

	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Internal Server Error", err)
	}

	byID := make(map[primitive.ObjectID]*model.User, len(users))
	for _, user := range users {
		byID[user.ID] = user
	}

	for _, post := range posts {
		post.Author = byID[post.UserID]
		for i := range post.Comments {
			post.Comments[i].Author = byID[post.Comments[i].UserID]
		}
	}
	return posts, nil
}

// PostServiceInterface 供处理器依赖和测试替身使用
type PostServiceInterface interface {
	CreatePost(ctx context.Context, userID primitive.ObjectID, text, img string) (*model.Post, error)
	DeletePost(ctx context.Context, userID, postID primitive.ObjectID) error
	CommentOnPost(ctx context.Context, userID, postID primitive.ObjectID, text string) (*model.Post, error)
	LikeUnlikePost(ctx context.Context, userID, postID primitive.ObjectID) (bool, error)
	GetAllPosts(ctx context.Context) ([]*model.Post, error)
	GetFollowingPosts(ctx context.Context, user *model.User) ([]*model.Post, error)
	GetUserPosts(ctx context.Context, username string) ([]*model.Post, error)
	GetLikedPosts(ctx context.Context, userID primitive.ObjectID) ([]*model.Post, error)
}

// 确保 PostService 实现了 PostServiceInterface
var _ PostServiceInterface = (*PostService)(nil)
