package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"marketplace_api/internal/api/dto"
	"marketplace_api/internal/middleware"
	"marketplace_api/internal/service"
)

type PostController struct {
	postSvc *service.PostService
}

func NewPostController(postSvc *service.PostService) *PostController {
	return &PostController{postSvc: postSvc}
}

// 非法 ID 与不存在同样处理
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	return id, err == nil && id > 0
}

// Create 发布动态
// @Summary 发布动态
// @Tags Posts (动态)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PostTextRequest true "内容"
// @Success 200 {object} model.Post
// @Failure 400 {object} MessageBody "Text is required"
// @Router /api/posts [post]
func (ctl *PostController) Create(c *gin.Context) {
	var req dto.PostTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err, &req))
		return
	}
	post, err := ctl.postSvc.Create(c.Request.Context(), middleware.GetUserID(c), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// List 全部动态
// @Summary 动态列表
// @Tags Posts (动态)
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Post
// @Router /api/posts [get]
func (ctl *PostController) List(c *gin.Context) {
	posts, err := ctl.postSvc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// Get 单条动态
// @Summary 动态详情
// @Tags Posts (动态)
// @Produce json
// @Security BearerAuth
// @Param id path int true "动态ID"
// @Success 200 {object} model.Post
// @Failure 404 {object} MessageBody "post not found"
// @Router /api/posts/{id} [get]
func (ctl *PostController) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		respondError(c, service.ErrPostNotFound)
		return
	}
	post, err := ctl.postSvc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// ListByUser 某用户的动态
// @Summary 用户动态
// @Tags Posts (动态)
// @Produce json
// @Security BearerAuth
// @Param user_id path int true "用户ID"
// @Success 200 {array} model.Post
// @Failure 404 {object} MessageBody "posts not found"
// @Router /api/posts/user/{user_id} [get]
func (ctl *PostController) ListByUser(c *gin.Context) {
	userID, ok := paramID(c, "user_id")
	if !ok {
		respondError(c, service.ErrPostsNotFound)
		return
	}
	posts, err := ctl.postSvc.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// Delete 删除动态
// @Summary 删除动态
// @Tags Posts (动态)
// @Produce json
// @Security BearerAuth
// @Param id path int true "动态ID"
// @Success 200 {object} MessageBody "post removed"
// @Failure 401 {object} MessageBody "user not authorized"
// @Failure 404 {object} MessageBody "post not found"
// @Router /api/posts/{id} [delete]
func (ctl *PostController) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		respondError(c, service.ErrPostNotFound)
		return
	}
	if err := ctl.postSvc.Delete(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "post removed")
}

// Like 点赞
// @Summary 点赞
// @Tags Posts (动态)
// @Produce json
// @Security BearerAuth
// @Param id path int true "动态ID"
// @Success 200 {array} model.PostLike
// @Failure 400 {object} MessageBody "post already liked"
// @Router /api/posts/like/{id} [put]
func (ctl *PostController) Like(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		respondError(c, service.ErrPostNotFound)
		return
	}
	likes, err := ctl.postSvc.Like(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, likes)
}

// Unlike 取消点赞
// @Summary 取消点赞
// @Tags Posts (动态)
// @Produce json
// @Security BearerAuth
// @Param id path int true "动态ID"
// @Success 200 {array} model.PostLike
// @Failure 400 {object} MessageBody "post hasn't been liked yet"
// @Router /api/posts/unlike/{id} [put]
func (ctl *PostController) Unlike(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		respondError(c, service.ErrPostNotFound)
		return
	}
	likes, err := ctl.postSvc.Unlike(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, likes)
}

// Comment 评论
// @Summary 评论
// @Tags Posts (动态)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "动态ID"
// @Param request body dto.PostTextRequest true "内容"
// @Success 200 {array} model.PostComment
// @Router /api/posts/comment/{id} [post]
func (ctl *PostController) Comment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		respondError(c, service.ErrPostNotFound)
		return
	}
	var req dto.PostTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err, &req))
		return
	}
	comments, err := ctl.postSvc.Comment(c.Request.Context(), middleware.GetUserID(c), id, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// DeleteComment 删除评论
// @Summary 删除评论
// @Tags Posts (动态)
// @Produce json
// @Security BearerAuth
// @Param post_id path int true "动态ID"
// @Param comment_id path int true "评论ID"
// @Success 200 {array} model.PostComment
// @Failure 401 {object} MessageBody "user not authorized"
// @Failure 404 {object} MessageBody "comment not found"
// @Router /api/posts/comment/{post_id}/{comment_id} [delete]
func (ctl *PostController) DeleteComment(c *gin.Context) {
	postID, ok := paramID(c, "post_id")
	if !ok {
		respondError(c, service.ErrPostNotFound)
		return
	}
	commentID, ok := paramID(c, "comment_id")
	if !ok {
		respondError(c, service.ErrCommentNotFound)
		return
	}
	comments, err := ctl.postSvc.DeleteComment(c.Request.Context(), middleware.GetUserID(c), postID, commentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}
