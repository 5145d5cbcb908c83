package dto

import (
	"time"

	"marketplace_api/internal/model"
)

// ProfileRequest 新建或覆盖资料，字段均可选
type ProfileRequest struct {
	Bio       string `json:"bio"`
	Status    string `json:"status"`
	Website   string `json:"website" binding:"omitempty,url"`
	Location  string `json:"location"`
	Username  string `json:"username" binding:"max=100"`
	Twitter   string `json:"twitter"`
	Instagram string `json:"instagram"`
	Linkedin  string `json:"linkedin"`
}

func (ProfileRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"website":  "Website must be a valid URL",
		"username": "Username must be at most 100 characters",
	}
}

// UserSummary 资料中关联的用户
type UserSummary struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
}

// ProfileView 对外的资料
type ProfileView struct {
	ID        int64             `json:"id"`
	User      *UserSummary      `json:"user,omitempty"`
	Username  string            `json:"username"`
	Bio       string            `json:"bio"`
	Status    string            `json:"status"`
	Website   string            `json:"website"`
	Location  string            `json:"location"`
	Social    model.SocialLinks `json:"social"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// NewProfileView 转换资料
func NewProfileView(p *model.Profile) *ProfileView {
	if p == nil {
		return nil
	}
	v := &ProfileView{
		ID:        p.ID,
		Username:  p.Username,
		Bio:       p.Bio,
		Status:    p.Status,
		Website:   p.Website,
		Location:  p.Location,
		Social:    p.Social.Data(),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.User != nil {
		v.User = &UserSummary{ID: p.User.ID, DisplayName: p.User.DisplayName}
	} else {
		v.User = &UserSummary{ID: p.UserID}
	}
	return v
}
