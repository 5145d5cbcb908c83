package model

import "time"

// 店铺内角色 (只在关联某个店铺时有意义)
const (
	StoreRoleUser       = "user"
	StoreRoleAdmin      = "admin"
	StoreRoleSuperAdmin = "super_admin"
)

// User 平台用户
type User struct {
	BaseModel

	FirstName      string     `gorm:"size:100;not null" json:"first_name"`
	LastName       string     `gorm:"size:100;not null" json:"last_name"`
	DisplayName    string     `gorm:"size:200;not null" json:"display_name"`
	Email          string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	EmailConfirmed bool       `gorm:"default:false;not null" json:"email_confirmed"`
	Password       string     `gorm:"size:255;not null" json:"-"` // bcrypt 哈希
	DOB            *time.Time `json:"dob,omitempty"`

	// 店铺反向引用，store_id 与 role 必须同时存在或同时为空
	Store StoreRef `gorm:"embedded" json:"store"`
}

func (User) TableName() string {
	return "users"
}

// StoreRef 用户 -> 店铺的非拥有型引用
type StoreRef struct {
	StoreID *int64 `gorm:"column:store_id;index" json:"store_id,omitempty"`
	Role    string `gorm:"column:store_role;size:20;default:''" json:"role,omitempty"`
}

// HasStore 是否已关联店铺 (任一字段存在即视为已关联)
func (r StoreRef) HasStore() bool {
	return r.StoreID != nil || r.Role != ""
}

// CanEditStore admin 与 super_admin 可以修改店铺资料
func (r StoreRef) CanEditStore() bool {
	return r.Role == StoreRoleAdmin || r.Role == StoreRoleSuperAdmin
}
