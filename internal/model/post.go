package model

import "time"

// Post 用户动态
type Post struct {
	BaseModel

	UserID int64  `gorm:"not null;index" json:"user_id"`
	Text   string `gorm:"type:text;not null" json:"text"`
	Name   string `gorm:"size:200" json:"name"` // 发布时的作者名快照

	Likes    []PostLike    `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"likes"`
	Comments []PostComment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments"`
}

func (Post) TableName() string {
	return "posts"
}

// PostLike 点赞，每个用户对同一帖子只能有一条
type PostLike struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID    int64     `gorm:"not null;uniqueIndex:idx_post_like_user" json:"-"`
	UserID    int64     `gorm:"not null;uniqueIndex:idx_post_like_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (PostLike) TableName() string {
	return "post_likes"
}

// PostComment 评论
type PostComment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID    int64     `gorm:"not null;index" json:"-"`
	UserID    int64     `gorm:"not null;index" json:"user_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Name      string    `gorm:"size:200" json:"name"`
	CreatedAt time.Time `json:"date"`
}

func (PostComment) TableName() string {
	return "post_comments"
}
