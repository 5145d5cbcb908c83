package dto

import (
	"time"

	"marketplace_api/internal/model"
)

// ==================== 第一步：公司信息 ====================

// CompanyAddressRequest 公司地址
type CompanyAddressRequest struct {
	AddressLine1 string `json:"address_line_1" binding:"required"`
	AddressLine2 string `json:"address_line_2"`
	Postcode     string `json:"postcode" binding:"required"`
	City         string `json:"city" binding:"required"`
	Country      string `json:"country" binding:"required"`
}

// StoreCompanyRequest 新建 / 更新公司信息
type StoreCompanyRequest struct {
	CompanyName    string                 `json:"company_name" binding:"required"`
	CompanyNumber  string                 `json:"company_number"`
	CompanyAddress *CompanyAddressRequest `json:"company_address" binding:"required"`
}

func (StoreCompanyRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"company_name":                   "Company name is required",
		"company_address":                "Company address is required",
		"company_address.address_line_1": "Company address line 1 is required",
		"company_address.postcode":       "Company postcode is required",
		"company_address.city":           "Company city is required",
		"company_address.country":        "Company country is required",
	}
}

// CompanyInfo 转换为模型
func (r *StoreCompanyRequest) CompanyInfo() model.CompanyInfo {
	info := model.CompanyInfo{
		CompanyName:   r.CompanyName,
		CompanyNumber: r.CompanyNumber,
	}
	if a := r.CompanyAddress; a != nil {
		info.CompanyAddress = model.CompanyAddress{
			AddressLine1: a.AddressLine1,
			AddressLine2: a.AddressLine2,
			Postcode:     a.Postcode,
			City:         a.City,
			Country:      a.Country,
		}
	}
	return info
}

// ==================== 第二步：店铺资料 + 图片 ====================

// StoreMediaRequest multipart 文本字段，图片单独读取
type StoreMediaRequest struct {
	StoreName     string `form:"store_name" binding:"required"`
	StoreURL      string `form:"store_url" binding:"required"`
	Bio           string `form:"bio" binding:"required"`
	Email         string `form:"email" binding:"required"`
	ContactNumber string `form:"contact_number" binding:"required"`
}

func (StoreMediaRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"store_name":     "Store Name is required",
		"store_url":      "Store URL is required",
		"bio":            "Bio is required",
		"email":          "Email is required",
		"contact_number": "Contact number is required",
	}
}

// ==================== 名称 / URL 检查 ====================

// CheckStoreNameRequest 检查店铺名
type CheckStoreNameRequest struct {
	StoreName string `json:"store_name" binding:"required"`
}

func (CheckStoreNameRequest) ValidationMessages() map[string]string {
	return map[string]string{"store_name": "Store Name is required"}
}

// CheckStoreURLRequest 检查店铺 URL
type CheckStoreURLRequest struct {
	StoreURL string `json:"store_url" binding:"required"`
}

func (CheckStoreURLRequest) ValidationMessages() map[string]string {
	return map[string]string{"store_url": "Store URL is required"}
}

// ==================== 响应 ====================

// StoreView 对外的店铺信息，不含 store_status 与 super_admin_id
type StoreView struct {
	ID               int64             `json:"id"`
	CompanyInfo      model.CompanyInfo `json:"company_info"`
	StoreName        string            `json:"store_name"`
	StoreURL         string            `json:"store_url"`
	Bio              string            `json:"bio"`
	Email            string            `json:"email"`
	ContactNumber    string            `json:"contact_number"`
	ProfileImage     string            `json:"profile_image"`
	CoverPhoto       string            `json:"cover_photo"`
	RegistrationStep int               `json:"registration_step"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// NewStoreView 转换店铺
func NewStoreView(s *model.Store) *StoreView {
	if s == nil {
		return nil
	}
	return &StoreView{
		ID:               s.ID,
		CompanyInfo:      s.CompanyInfo,
		StoreName:        s.StoreName,
		StoreURL:         s.StoreURL,
		Bio:              s.Bio,
		Email:            s.Email,
		ContactNumber:    s.ContactNumber,
		ProfileImage:     s.ProfileImage,
		CoverPhoto:       s.CoverPhoto,
		RegistrationStep: s.RegistrationStep,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

// StoreStatusResponse GET /store 与第一步更新的响应
type StoreStatusResponse struct {
	StoreStatus string     `json:"store_status"`
	Store       *StoreView `json:"store,omitempty"`
}

// CreateStoreResponse 第一步新建的响应
type CreateStoreResponse struct {
	User        *UserView  `json:"user"`
	StoreStatus string     `json:"store_status"`
	Store       *StoreView `json:"store"`
}
