package model

import "gorm.io/datatypes"

// Profile 用户公开资料，一个用户最多一条
type Profile struct {
	BaseModel

	UserID   int64  `gorm:"not null;uniqueIndex" json:"user_id"`
	Username string `gorm:"size:100" json:"username"`
	Bio      string `gorm:"type:text" json:"bio"`
	Status   string `gorm:"size:100" json:"status"`
	Website  string `gorm:"size:255" json:"website"`
	Location string `gorm:"size:100" json:"location"`

	Social datatypes.JSONType[SocialLinks] `json:"social"`

	// 只读，列表查询时关联用户
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Profile) TableName() string {
	return "profiles"
}

// SocialLinks 社交账号
type SocialLinks struct {
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
}
