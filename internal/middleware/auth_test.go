package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"twitter-backend/config"
	apperrors "twitter-backend/internal/errors"
	"twitter-backend/internal/model"
	"twitter-backend/internal/service"
	"twitter-backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	config.AppConfig.JWTSecret = "test-secret"
}

// MockUserService 是 UserServiceInterface 的模拟实现
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserService) Login(ctx context.Context, username, password string) (*model.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) GetUserByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) FollowUnfollow(ctx context.Context, caller *model.User, targetID primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, caller, targetID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, caller *model.User, update service.ProfileUpdate) (*model.User, error) {
	args := m.Called(ctx, caller, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// 确保 MockUserService 实现了 UserServiceInterface
var _ service.UserServiceInterface = (*MockUserService)(nil)

func newAuthRouter(mockService *MockUserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthMiddleware(mockService), func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no user in context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"username": user.Username})
	})
	return router
}

// TestAuthNoToken 无 cookie 时返回401
func TestAuthNoToken(t *testing.T) {
	mockService := new(MockUserService)
	router := newAuthRouter(mockService)

	req, _ := http.NewRequest("GET", "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Unauthorized: No Token Provided", response["error"])
	mockService.AssertNotCalled(t, "GetUserByID", mock.Anything, mock.Anything)
}

// TestAuthInvalidToken 无效令牌返回401
func TestAuthInvalidToken(t *testing.T) {
	mockService := new(MockUserService)
	router := newAuthRouter(mockService)

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: util.TokenCookieName, Value: "garbage-token"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Unauthorized: Invalid Token", response["error"])
	mockService.AssertNotCalled(t, "GetUserByID", mock.Anything, mock.Anything)
}

// TestAuthValidToken 有效令牌时解析出用户并放入上下文
func TestAuthValidToken(t *testing.T) {
	mockService := new(MockUserService)
	router := newAuthRouter(mockService)

	userID := primitive.NewObjectID()
	mockUser := &model.User{ID: userID, Username: "testuser"}
	mockService.On("GetUserByID", mock.Anything, userID).Return(mockUser, nil)

	token, err := util.GenerateToken(userID.Hex())
	assert.NoError(t, err)

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: util.TokenCookieName, Value: token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "testuser", response["username"])
	mockService.AssertExpectations(t)
}

// TestAuthUserVanished 令牌有效但用户已被删除时返回404
func TestAuthUserVanished(t *testing.T) {
	mockService := new(MockUserService)
	router := newAuthRouter(mockService)

	userID := primitive.NewObjectID()
	mockService.On("GetUserByID", mock.Anything, userID).
		Return(nil, apperrors.New(apperrors.ErrUserNotFound, "User not found"))

	token, err := util.GenerateToken(userID.Hex())
	assert.NoError(t, err)

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: util.TokenCookieName, Value: token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "User not found", response["error"])
	mockService.AssertExpectations(t)
}
