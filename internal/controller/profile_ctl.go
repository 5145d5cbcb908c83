package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace_api/internal/api/dto"
	"marketplace_api/internal/middleware"
	"marketplace_api/internal/service"
)

type ProfileController struct {
	profileSvc *service.ProfileService
}

func NewProfileController(profileSvc *service.ProfileService) *ProfileController {
	return &ProfileController{profileSvc: profileSvc}
}

// GetMine 我的资料
// @Summary 我的资料
// @Tags Profile (个人资料)
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ProfileView
// @Failure 400 {object} MessageBody "There is no profile for this user"
// @Router /api/profile/me [get]
func (ctl *ProfileController) GetMine(c *gin.Context) {
	profile, err := ctl.profileSvc.GetMine(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetField 我的资料中的单个字段
// @Summary 读取资料字段
// @Tags Profile (个人资料)
// @Produce json
// @Security BearerAuth
// @Param field path string true "username / bio / status / website / location / social / user_id"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} MessageBody "Unknown profile field"
// @Router /api/profile/me/{field} [get]
func (ctl *ProfileController) GetField(c *gin.Context) {
	value, err := ctl.profileSvc.GetField(c.Request.Context(), middleware.GetUserID(c), c.Param("field"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, value)
}

// Upsert 新建或覆盖资料
// @Summary 保存资料
// @Tags Profile (个人资料)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ProfileRequest true "资料"
// @Success 200 {object} dto.ProfileView
// @Router /api/profile [post]
func (ctl *ProfileController) Upsert(c *gin.Context) {
	var req dto.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err, &req))
		return
	}
	profile, err := ctl.profileSvc.Upsert(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// List 全部资料
// @Summary 资料列表
// @Tags Profile (个人资料)
// @Produce json
// @Success 200 {array} dto.ProfileView
// @Router /api/profile [get]
func (ctl *ProfileController) List(c *gin.Context) {
	profiles, err := ctl.profileSvc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

// GetByUser 指定用户的资料
// @Summary 用户资料
// @Tags Profile (个人资料)
// @Produce json
// @Param user_id path int true "用户ID"
// @Success 200 {object} dto.ProfileView
// @Failure 400 {object} MessageBody "Profile not found"
// @Router /api/profile/user/{user_id} [get]
func (ctl *ProfileController) GetByUser(c *gin.Context) {
	userID, ok := paramID(c, "user_id")
	if !ok {
		respondError(c, service.ErrProfileNotFound)
		return
	}
	profile, err := ctl.profileSvc.GetByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// DeleteAccount 删除账号及其全部数据
// @Summary 删除账号
// @Tags Profile (个人资料)
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MessageBody "user removed"
// @Router /api/profile [delete]
func (ctl *ProfileController) DeleteAccount(c *gin.Context) {
	if err := ctl.profileSvc.DeleteAccount(c.Request.Context(), middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "user removed")
}
