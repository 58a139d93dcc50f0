package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"twitter-backend/config"
	"twitter-backend/internal/api/notification"
	"twitter-backend/internal/api/post"
	"twitter-backend/internal/api/user"
	"twitter-backend/internal/middleware"
	"twitter-backend/internal/repository/mongodb"
	"twitter-backend/internal/service"
	"twitter-backend/internal/storage"
	"twitter-backend/internal/util"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func main() {
	// 初始化配置
	config.Init()

	// 初始化日志
	util.InitLogger(config.AppConfig.LogLevel)
	defer util.Logger.Sync()

	util.Logger.Info("应用程序启动")

	// 连接数据库
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.AppConfig.MongoURI))
	if err != nil {
		util.Logger.Fatal("连接数据库失败", zap.Error(err))
	}
	defer client.Disconnect(context.Background())

	// 测试数据库连接
	if err := client.Ping(ctx, nil); err != nil {
		util.Logger.Fatal("数据库连接测试失败", zap.Error(err))
	}
	util.Logger.Info("数据库连接成功")

	db := client.Database(config.AppConfig.DBName)

	// 用户名和邮箱的唯一索引，支撑注册时的重复性检查
	if err := mongodb.EnsureUserIndexes(ctx, db); err != nil {
		util.Logger.Fatal("创建用户索引失败", zap.Error(err))
	}

	// 注册自定义验证器
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("email_shape", util.ValidateEmailShape)
	}

	// 初始化媒体存储后端
	fileStorage, err := storage.New(config.AppConfig)
	if err != nil {
		util.Logger.Fatal("初始化媒体存储失败", zap.Error(err))
	}

	// 初始化存储库、服务和处理器
	userRepo := mongodb.NewUserRepository(db)
	postRepo := mongodb.NewPostRepository(db)
	notificationRepo := mongodb.NewNotificationRepository(db)

	userService := service.NewUserService(userRepo, notificationRepo, fileStorage)
	postService := service.NewPostService(postRepo, userRepo, notificationRepo, fileStorage)
	notificationService := service.NewNotificationService(notificationRepo, userRepo)

	authHandler := user.NewAuthHandler(userService)
	profileHandler := user.NewProfileHandler(userService)
	postHandler := post.NewPostHandler(postService)
	notificationHandler := notification.NewNotificationHandler(notificationService)

	// 初始化错误监控
	errorMonitor := middleware.NewErrorMonitor()

	// 设置 Gin 路由
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.ErrorMonitorMiddleware(errorMonitor))

	// 配置 CORS，cookie 认证需要允许携带凭证
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{config.AppConfig.FrontendURL}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type"}
	r.Use(cors.New(corsConfig))

	// 本地存储后端通过静态路由对外提供已上传的文件
	if config.AppConfig.StorageBackend == "local" {
		r.Static("/uploads", config.AppConfig.LocalStoragePath)
	}

	// 调试模式下暴露错误统计
	if config.AppConfig.Debug {
		r.GET("/debug/errors", errorMonitor.Stats)
	}

	authRequired := middleware.AuthMiddleware(userService)

	// 定义 API 路由
	api := r.Group("/api")
	{
		// 认证相关路由
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", authRequired, authHandler.GetMe)
		}

		// 用户相关路由
		users := api.Group("/users")
		users.Use(authRequired)
		{
			users.GET("/profile/:username", profileHandler.GetUserProfile)
			users.POST("/follow/:id", profileHandler.FollowUnfollowUser)
			users.POST("/update", profileHandler.UpdateProfile)
		}

		// 帖子相关路由
		posts := api.Group("/posts")
		posts.Use(authRequired)
		{
			posts.POST("", postHandler.CreatePost)
			posts.DELETE("/:id", postHandler.DeletePost)
			posts.POST("/comment/:id", postHandler.CommentOnPost)
			posts.POST("/like/:id", postHandler.LikeUnlikePost)
			posts.GET("/all", postHandler.GetAllPosts)
			posts.GET("/following", postHandler.GetFollowingPosts)
			posts.GET("/user/:username", postHandler.GetUserPosts)
			posts.GET("/likes/:id", postHandler.GetLikedPosts)
		}

		// 通知相关路由
		notifications := api.Group("/notifications")
		notifications.Use(authRequired)
		{
			notifications.GET("", notificationHandler.GetNotifications)
			notifications.DELETE("", notificationHandler.DeleteNotifications)
		}
	}

	// 创建 http.Server 以支持优雅关闭
	srv := &http.Server{
		Addr:    ":" + config.AppConfig.Port,
		Handler: r,
	}

	// 在一个新的 goroutine 中启动服务器
	go func() {
		util.Logger.Info("服务器正在启动", zap.String("port", config.AppConfig.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			util.Logger.Fatal("启动服务器失败", zap.Error(err))
		}
	}()

	// 等待中断信号以优雅地关闭服务器（设置 5 秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	util.Logger.Info("正在关闭服务器...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		util.Logger.Fatal("服务器强制关闭", zap.Error(err))
	}

	util.Logger.Info("服务器已优雅关闭")
}
