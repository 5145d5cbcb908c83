package model

// Store 状态常量
const (
	StoreStatusNone               = "NONE"
	StoreStatusPendingApplication = "PENDING_APPLICATION"
)

// 注册进度
const (
	RegistrationStepCompany = 1 // 公司信息
	RegistrationStepMedia   = 2 // 店铺资料 + 图片
)

// 店铺图片角色，同时作为对象存储 key 的一部分
const (
	StoreImageProfile = "profile_image"
	StoreImageCover   = "cover_photo"
)

// Store 卖家店铺
type Store struct {
	BaseModel

	CompanyInfo CompanyInfo `gorm:"embedded" json:"company_info"`

	// 第二步填写，之前为空串；唯一性由部分索引保证 (见 repository.Migrate)
	StoreName     string `gorm:"size:120;default:''" json:"store_name"`
	StoreURL      string `gorm:"size:160;default:''" json:"store_url"`
	Bio           string `gorm:"type:text" json:"bio"`
	Email         string `gorm:"size:255" json:"email"`
	ContactNumber string `gorm:"size:50" json:"contact_number"`

	ProfileImage string `gorm:"size:255" json:"profile_image"`
	CoverPhoto   string `gorm:"size:255" json:"cover_photo"`

	RegistrationStep int    `gorm:"not null;default:0" json:"registration_step"`
	StoreStatus      string `gorm:"size:32;not null;index" json:"store_status"`
	SuperAdminID     int64  `gorm:"not null;index" json:"super_admin_id"`
}

func (Store) TableName() string {
	return "stores"
}

// CompanyInfo 公司信息 (第一步)
type CompanyInfo struct {
	CompanyName    string         `gorm:"size:200" json:"company_name"`
	CompanyNumber  string         `gorm:"size:50" json:"company_number"`
	CompanyAddress CompanyAddress `gorm:"embedded;embeddedPrefix:company_" json:"company_address"`
}

// CompanyAddress 公司地址，列名带 company_ 前缀
type CompanyAddress struct {
	AddressLine1 string `gorm:"size:200" json:"address_line_1"`
	AddressLine2 string `gorm:"size:200" json:"address_line_2"`
	Postcode     string `gorm:"size:20" json:"postcode"`
	City         string `gorm:"size:100" json:"city"`
	Country      string `gorm:"size:100" json:"country"`
}
