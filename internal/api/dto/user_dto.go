package dto

import (
	"time"

	"marketplace_api/internal/model"
)

// ==================== 注册 / 登录 ====================

// RegisterRequest 注册请求
type RegisterRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
}

func (RegisterRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"first_name": "Name is required",
		"last_name":  "Name is required",
		"email":      "Please include a valid e-mail",
		"password":   "Please enter a password with 6 or more characters",
	}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (LoginRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"email":    "Please include a valid e-mail",
		"password": "Password is required",
	}
}

// AuthResponse 注册与登录响应
type AuthResponse struct {
	AccessToken string    `json:"accessToken"`
	User        *UserView `json:"user"`
}

// ==================== 邮件令牌 ====================

// ForgotPasswordRequest 忘记密码
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest 重置密码
type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

func (ResetPasswordRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"password": "Please enter a password with 6 or more characters",
	}
}

// ==================== 用户信息 ====================

// UserView 对外的用户信息 (不含密码与内部 ID)
type UserView struct {
	FirstName      string         `json:"first_name"`
	LastName       string         `json:"last_name"`
	DisplayName    string         `json:"display_name"`
	Email          string         `json:"email"`
	EmailConfirmed bool           `json:"email_confirmed"`
	DOB            *time.Time     `json:"dob,omitempty"`
	Store          model.StoreRef `json:"store"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// UserInfo 带 ID 的用户信息，GET /auth 使用
type UserInfo struct {
	ID int64 `json:"id"`
	*UserView
}

// NewUserView 转换用户
func NewUserView(u *model.User) *UserView {
	if u == nil {
		return nil
	}
	return &UserView{
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		DisplayName:    u.DisplayName,
		Email:          u.Email,
		EmailConfirmed: u.EmailConfirmed,
		DOB:            u.DOB,
		Store:          u.Store,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

// NewUserInfo 转换用户 (含 ID)
func NewUserInfo(u *model.User) *UserInfo {
	if u == nil {
		return nil
	}
	return &UserInfo{ID: u.ID, UserView: NewUserView(u)}
}

// MessageResponse 通用消息
type MessageResponse struct {
	Message string `json:"message"`
}
