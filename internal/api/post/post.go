package post

import (
	"net/http"

	"twitter-backend/internal/errors"
	"twitter-backend/internal/middleware"
	"twitter-backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostHandler 处理帖子相关的HTTP请求
type PostHandler struct {
	postService service.PostServiceInterface
}

// NewPostHandler 创建一个新的 PostHandler 实例
func NewPostHandler(postService service.PostServiceInterface) *PostHandler {
	return &PostHandler{postService}
}

// CreatePost 创建帖子，文字和图片至少提供一个
func (h *PostHandler) CreatePost(c *gin.Context) {
	caller := middleware.CurrentUser(c)

	var postData struct {
		Text string `json:"text"`
		Img  string `json:"img"`
	}

	if err := c.ShouldBindJSON(&postData); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "Invalid request data", err))
		return
	}

	post, err := h.postService.CreatePost(c.Request.Context(), caller.ID, postData.Text, postData.Img)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Post created successfully",
		"post":    post,
	})
}

// DeletePost 删除帖子，仅限作者本人
func (h *PostHandler) DeletePost(c *gin.Context) {
	caller := middleware.CurrentUser(c)

	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "Invalid post ID", err))
		return
	}

	if err := h.postService.DeletePost(c.Request.Context(), caller.ID, postID); err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

// CommentOnPost 给帖子追加评论
func (h *PostHandler) CommentOnPost(c *gin.Context) {
	caller := middleware.CurrentUser(c)

	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "Invalid post ID", err))
		return
	}

	var commentData struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&commentData); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "Invalid request data", err))
		return
	}

	post, err := h.postService.CommentOnPost(c.Request.Context(), caller.ID, postID, commentData.Text)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Comment added successfully",
		"post":    post,
	})
}

// LikeUnlikePost 点赞/取消点赞切换
func (h *PostHandler) LikeUnlikePost(c *gin.Context) {
	caller := middleware.CurrentUser(c)

	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "Invalid post ID", err))
		return
	}

	liked, err := h.postService.LikeUnlikePost(c.Request.Context(), caller.ID, postID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	message := "Post unliked successfully"
	if liked {
		message = "Post liked successfully"
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// GetAllPosts 获取全部帖子
func (h *PostHandler) GetAllPosts(c *gin.Context) {
	posts, err := h.postService.GetAllPosts(c.Request.Context())
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Posts retrieved successfully",
		"posts":   posts,
	})
}

// GetFollowingPosts 获取当前用户关注的人发布的帖子
func (h *PostHandler) GetFollowingPosts(c *gin.Context) {
	caller := middleware.CurrentUser(c)

	posts, err := h.postService.GetFollowingPosts(c.Request.Context(), caller)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Posts from followed users retrieved successfully",
		"posts":   posts,
	})
}

// GetUserPosts 获取指定用户名的用户发布的帖子
func (h *PostHandler) GetUserPosts(c *gin.Context) {
	posts, err := h.postService.GetUserPosts(c.Request.Context(), c.Param("username"))
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Posts retrieved successfully for user",
		"posts":   posts,
	})
}

// GetLikedPosts 获取指定用户点赞过的帖子
func (h *PostHandler) GetLikedPosts(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "Invalid user ID", err))
		return
	}

	posts, err := h.postService.GetLikedPosts(c.Request.Context(), userID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Liked posts retrieved successfully",
		"posts":   posts,
	})
}
