package controller

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace_api/internal/api/dto"
	"marketplace_api/internal/middleware"
	"marketplace_api/internal/service"
)

//go:embed pages/email_confirmed.html
var emailConfirmedPage []byte

type AuthController struct {
	authSvc *service.AuthService
}

func NewAuthController(authSvc *service.AuthService) *AuthController {
	return &AuthController{authSvc: authSvc}
}

// GetMe 当前登录用户
// @Summary 当前用户
// @Tags Auth (认证)
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserInfo
// @Failure 401 {object} MessageBody
// @Failure 404 {object} MessageBody "User doesnt exist"
// @Router /api/auth [get]
func (ctl *AuthController) GetMe(c *gin.Context) {
	user, err := ctl.authSvc.GetMe(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Register 注册
// @Summary 注册
// @Description 创建用户并发送确认邮件，返回 access token
// @Tags Auth (认证)
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "注册信息"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} MessageBody "校验失败"
// @Failure 409 {object} MessageBody "User already exists"
// @Router /api/auth/register [post]
func (ctl *AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err, &req))
		return
	}

	resp, err := ctl.authSvc.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Login 登录
// @Summary 登录
// @Tags Auth (认证)
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "邮箱与密码"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} MessageBody "校验失败"
// @Failure 401 {object} MessageBody "Invalid credentials"
// @Router /api/auth/login [post]
func (ctl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err, &req))
		return
	}

	resp, err := ctl.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ConfirmEmail 邮件中的确认链接
// @Summary 确认邮箱
// @Tags Auth (认证)
// @Produce html
// @Param token path string true "邮件令牌"
// @Success 200 {string} string "确认成功页面"
// @Failure 401 {object} MessageBody "Token is invalid or has expired"
// @Router /api/auth/confirm-email/{token} [get]
func (ctl *AuthController) ConfirmEmail(c *gin.Context) {
	if err := ctl.authSvc.ConfirmEmail(c.Request.Context(), c.Param("token")); err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", emailConfirmedPage)
}

// ResendConfirmEmail 重新发送确认邮件
// @Summary 重发确认邮件
// @Tags Auth (认证)
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MessageBody "success"
// @Failure 404 {object} MessageBody "User doesnt exist"
// @Router /api/auth/resend-confirm-email [post]
func (ctl *AuthController) ResendConfirmEmail(c *gin.Context) {
	if err := ctl.authSvc.ResendConfirmEmail(c.Request.Context(), middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "success")
}

// ForgotPassword 发送重置密码邮件
// @Summary 忘记密码
// @Tags Auth (认证)
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "邮箱"
// @Success 200 {object} MessageBody "success"
// @Failure 400 {object} MessageBody "No email attached"
// @Failure 404 {object} MessageBody "Email address doesnt exist"
// @Router /api/auth/forgot-password [post]
func (ctl *AuthController) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err, &req))
		return
	}
	if err := ctl.authSvc.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "success")
}

// ResetPassword 使用邮件令牌重置密码
// @Summary 重置密码
// @Tags Auth (认证)
// @Accept json
// @Produce json
// @Param token path string true "邮件令牌"
// @Param request body dto.ResetPasswordRequest true "新密码"
// @Success 200 {object} MessageBody "success"
// @Failure 400 {object} MessageBody "校验失败"
// @Failure 401 {object} MessageBody "Token is invalid or has expired"
// @Router /api/auth/reset-password/{token} [post]
func (ctl *AuthController) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err, &req))
		return
	}
	if err := ctl.authSvc.ResetPassword(c.Request.Context(), c.Param("token"), req.Password); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "success")
}
