package service

import (
	"context"

	"twitter-backend/internal/errors"
	"twitter-backend/internal/model"
	"twitter-backend/internal/repository/interfaces"
	"twitter-backend/internal/storage"
	"twitter-backend/internal/util"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// UserService 处理与用户相关的业务逻辑
type UserService struct {
	userRepo         interfaces.UserRepository
	notificationRepo interfaces.NotificationRepository
	storage          storage.FileStorage
}

// NewUserService 创建一个新的 UserService 实例
func NewUserService(userRepo interfaces.UserRepository, notificationRepo interfaces.NotificationRepository, fileStorage storage.FileStorage) *UserService {
	return &UserService{
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		storage:          fileStorage,
	}
}

// ProfileUpdate 描述一次资料更新请求，空字段表示不修改
type ProfileUpdate struct {
	FullName        string
	Email           string
	Bio             string
	Link            string
	CurrentPassword string
	NewPassword     string
	ProfileImg      string
	CoverImg        string
}

// Register 注册新用户，写入前检查用户名和邮箱的唯一性
func (s *UserService) Register(ctx context.Context, user *model.User) error {
	existing, err := s.userRepo.FindByUsername(ctx, user.Username)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "Internal Server Error", err)
	}
	if existing != nil {
		return errors.New(errors.ErrUserExists, "Username is already taken")
	}

	existing, err = s.userRepo.FindByEmail(ctx, user.Email)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "Internal Server Error", err)
	}
	if existing != nil {
		return errors.New(errors.ErrEmailExists, "Email is already in use")
	}

	hashed, err := util.HashPassword(user.Password)
	if err != nil {
		return errors.Wrap(errors.ErrInternal, "Internal Server Error", err)
	}
	user.Password = hashed

	if err := s.userRepo.Create(ctx, user); err != nil {
		return errors.Wrap(errors.ErrDatabase, "Internal Server Error", err)
	}

	util.Logger.Info("用户注册成功",
		zap.String("user_id", user.ID.Hex()),
		zap.String("username", user.Username))
	return nil
}

// Login 用户登录
// 用户不存在时按空哈希校验失败处理，错误信息与密码错误完全一致，
// 避免泄露是哪个字段出了问题
func (s *UserService) Login(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.userRepo.FindCredentialsByUsername(ctx, username)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Internal Server Error", err)
	}

	storedHash := ""
	if user != nil {
		storedHash = user.Password
	}

	if !util.CheckPassword(password, storedHash) {
		return nil, errors.New(errors.ErrInvalidCredentials, "Invalid username or password")
	}

	util.Logger.Info("用户登录成功", zap.String("user_id", user.ID.Hex()))

	user.Password = ""
	return user, nil
}

// GetUserByID 通过ID获取用户信息（不含密码）
func (s *UserService) GetUserByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Internal Server Error", err)
	}
	if user == nil {
		return nil, errors.New(errors.ErrUserNotFound, "User not found")
	}
	return user, nil
}

// GetUserByUsername 通过用户名获取公开资料
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Internal Server Error", err)
	}
	if user == nil {
		return nil, errors.New(errors.ErrUserNotFound, "User not found")
	}
	return user, nil
}

// FollowUnfollow 关注/取消关注的切换操作，双方文档同时更新
// 关注时给目标用户写入一条 follow 通知，取消关注不产生通知
func (s *UserService) FollowUnfollow(ctx context.Context, caller *model.User, targetID primitive.ObjectID) (bool, error) {
	if caller.ID == targetID {
		return false, errors.New(errors.ErrValidation, "You can't follow/unfollow yourself")
	}

	target, err := s.userRepo.FindByID(ctx, targetID)
	if err != nil {
		return false, errors.Wrap(errors.ErrDatabase, "Internal Server Error", err)
	}
	if target == nil {
		return false, errors.New(errors.ErrUserNotFound, "User not found")
	}

	if caller.IsFollowing(targetID) {
		if err := s.userRepo.Unfollow(ctx, caller.ID, targetID); err != nil {
			return false, errors.Wrap(errors.ErrDatabase, "Internal Server Error", err)
		}
		return false, nil
	}

	if err := s.userRepo.Follow(ctx, caller.ID, targetID); err != nil {
		return false, errors.Wrap(errors.ErrDatabase, "Internal Server Error", err)
	}

	notification := &model.Notification{
		From: caller.ID,
		To:   targetID,
		Type: model.NotificationTypeFollow,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		// 通知写入失败不回滚关注本身
		util.Logger.Error("写入关注通知失败", zap.Error(err),
			zap.String("from", caller.ID.Hex()),
			zap.String("to", targetID.Hex()))
	}

	return true, nil
}

// UpdateProfile 更新用户资料
// 修改密码需要同时提供当前密码和新密码；头像和封面图先上传再替换，
// 旧图从媒体存储中删除
func (s *UserService) UpdateProfile(ctx context.Context, caller *model.User, update ProfileUpdate) (*model.User, error) {
	if (update.CurrentPassword == "") != (update.NewPassword == "") {
		return nil, errors.New(errors.ErrValidation, "Please provide both current password and new password")
	}

	if update.NewPassword != "" {
		creds, err := s.userRepo.FindCredentialsByUsername(ctx, caller.Username)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, "Internal Server Error", err)
		}
		if creds == nil {
			return nil, errors.New(errors.ErrUserNotFound, "User not found")
		}
		if !util.CheckPassword(update.CurrentPassword, creds.Password) {
			return nil, errors.New(errors.ErrValidation, "Current password is incorrect")
		}
		if len(update.NewPassword) < util.MinPasswordLength {
			return nil, errors.New(errors.ErrWeakPassword, "Password must be at least 6 characters long")
		}
		hashed, err := util.HashPassword(update.NewPassword)
		if err != nil {
			return nil, errors.Wrap(errors.ErrInternal, "Internal Server Error", err)
		}
		caller.Password = hashed
	}

	if update.Email != "" && update.Email != caller.Email {
		if !util.IsValidEmail(update.Email) {
			return nil, errors.New(errors.ErrValidation, "Invalid email format")
		}
		existing, err := s.userRepo.FindByEmail(ctx, update.Email)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, "Internal Server Error", err)
		}
		if existing != nil {
			return nil, errors.New(errors.ErrEmailExists, "Email is already in use")
		}
		caller.Email = update.Email
	}

	if update.FullName != "" {
		caller.FullName = update.FullName
	}
	if update.Bio != "" {
		caller.Bio = update.Bio
	}
	if update.Link != "" {
		caller.Link = update.Link
	}

	if update.ProfileImg != "" {
		url, err := s.replaceImage(ctx, caller.ProfileImg, update.ProfileImg)
		if err != nil {
			return nil, err
		}
		caller.ProfileImg = url
	}
	if update.CoverImg != "" {
		url, err := s.replaceImage(ctx, caller.CoverImg, update.CoverImg)
		if err != nil {
			return nil, err
		}
		caller.CoverImg = url
	}

	if err := s.userRepo.Update(ctx, caller); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Internal Server Error", err)
	}

	util.Logger.Info("用户资料更新成功", zap.String("user_id", caller.ID.Hex()))

	caller.Password = ""
	return caller, nil
}

// replaceImage 上传新图并删除旧图，返回新图的URL
func (s *UserService) replaceImage(ctx context.Context, oldURL, dataURL string) (string, error) {
	data, contentType, err := util.DecodeDataURL(dataURL)
	if err != nil {
		return "", errors.Wrap(errors.ErrValidation, "Invalid image data", err)
	}

	url, err := s.storage.UploadFile(ctx, data, "avatars/"+util.GenerateMediaID(), contentType)
	if err != nil {
		return "", errors.Wrap(errors.ErrStorage, "Internal Server Error", err)
	}

	if oldURL != "" {
		if err := s.storage.DeleteFile(ctx, "avatars/"+util.MediaIDFromURL(oldURL)); err != nil {
			util.Logger.Error("删除旧头像失败", zap.Error(err), zap.String("url", oldURL))
		}
	}

	return url, nil
}

// UserServiceInterface 供处理器依赖和测试替身使用
type UserServiceInterface interface {
	Register(ctx context.Context, user *model.User) error
	Login(ctx context.Context, username, password string) (*model.User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	FollowUnfollow(ctx context.Context, caller *model.User, targetID primitive.ObjectID) (bool, error)
	UpdateProfile(ctx context.Context, caller *model.User, update ProfileUpdate) (*model.User, error)
}

// 确保 UserService 实现了 UserServiceInterface
var _ UserServiceInterface = (*UserService)(nil)
