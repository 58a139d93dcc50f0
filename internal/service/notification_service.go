package service

import (
	"context"

	"twitter-backend/internal/errors"
	"twitter-backend/internal/model"
	"twitter-backend/internal/repository/interfaces"
	"twitter-backend/internal/util"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// NotificationService 处理通知相关的业务逻辑
type NotificationService struct {
	notificationRepo interfaces.NotificationRepository
	userRepo         interfaces.UserRepository
}

// NewNotificationService 创建一个新的 NotificationService 实例
func NewNotificationService(notificationRepo interfaces.NotificationRepository, userRepo interfaces.UserRepository) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	}
}

// GetNotifications 获取发给当前用户的全部通知并附带发送者信息，
// 然后把它们全部标记为已读。返回的是标记之前的状态：
// 第一次调用看到 read=false，再次调用看到 read=true
func (s *NotificationService) GetNotifications(ctx context.Context, userID primitive.ObjectID) ([]*model.Notification, error) {
	notifications, err := s.notificationRepo.FindByRecipient(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Internal Server Error", err)
	}

	if err := s.attachSenders(ctx, notifications); err != nil {
		return nil, err
	}

	if err := s.notificationRepo.MarkAllRead(ctx, userID); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "Internal Server Error", err)
	}

	return notifications, nil
}

// DeleteNotifications 删除发给当前用户的全部通知
func (s *NotificationService) DeleteNotifications(ctx context.Context, userID primitive.ObjectID) error {
	if err := s.notificationRepo.DeleteByRecipient(ctx, userID); err != nil {
		return errors.Wrap(errors.ErrDatabase, "Internal Server Error", err)
	}
	util.Logger.Info("通知已清空", zap.String("user_id", userID.Hex()))
	return nil
}

// attachSenders 批量查询发送者，只暴露用户名和头像
func (s *NotificationService) attachSenders(ctx context.Context, notifications []*model.Notification) error {
	seen := make(map[primitive.ObjectID]bool)
	ids := []primitive.ObjectID{}
	for _, n := range notifications {
		if !seen[n.From] {
			seen[n.From] = true
			ids = append(ids, n.From)
		}
	}

	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "Internal Server Error", err)
	}

	byID := make(map[primitive.ObjectID]*model.User, len(users))
	for _, user := range users {
		byID[user.ID] = user
	}

	for _, n := range notifications {
		if sender, ok := byID[n.From]; ok {
			n.Sender = &model.User{
				ID:         sender.ID,
				Username:   sender.Username,
				ProfileImg: sender.ProfileImg,
			}
		}
	}
	return nil
}

// NotificationServiceInterface 供处理器依赖和测试替身使用
type NotificationServiceInterface interface {
	GetNotifications(ctx context.Context, userID primitive.ObjectID) ([]*model.Notification, error)
	DeleteNotifications(ctx context.Context, userID primitive.ObjectID) error
}

// 确保 NotificationService 实现了 NotificationServiceInterface
var _ NotificationServiceInterface = (*NotificationService)(nil)
