package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"marketplace_api/internal/model"
)

// ==================== PostRepository 动态仓库 ====================

// PostRepository 动态仓库接口
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id int64) (*model.Post, error)
	List(ctx context.Context) ([]model.Post, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Post, error)
	Delete(ctx context.Context, id int64) error

	AddLike(ctx context.Context, postID, userID int64) (bool, error)
	RemoveLike(ctx context.Context, postID, userID int64) (bool, error)
	ListLikes(ctx context.Context, postID int64) ([]model.PostLike, error)

	AddComment(ctx context.Context, comment *model.PostComment) error
	GetComment(ctx context.Context, postID, commentID int64) (*model.PostComment, error)
	DeleteComment(ctx context.Context, commentID int64) error
	ListComments(ctx context.Context, postID int64) ([]model.PostComment, error)
}

// ==================== 实现 ====================

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository 创建动态仓库
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// 点赞/评论都按时间倒序返回
func (r *postRepository) withChildren(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Likes", func(db *gorm.DB) *gorm.DB { return db.Order("id DESC") }).
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("id DESC") })
}

// Create 创建动态
func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// GetByID 获取单条动态 (含点赞与评论)
func (r *postRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	var post model.Post
	err := r.withChildren(ctx).First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &post, err
}

// List 全部动态，最新在前
func (r *postRepository) List(ctx context.Context) ([]model.Post, error) {
	var posts []model.Post
	err := r.withChildren(ctx).Order("created_at DESC, id DESC").Find(&posts).Error
	return posts, err
}

// ListByUser 某用户的动态
func (r *postRepository) ListByUser(ctx context.Context, userID int64) ([]model.Post, error) {
	var posts []model.Post
	err := r.withChildren(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	return posts, err
}

// Delete 删除动态及其点赞、评论
func (r *postRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&model.PostLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&model.PostComment{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&model.Post{}, id).Error
	})
}

// AddLike 点赞，已点过返回 false
func (r *postRepository) AddLike(ctx context.Context, postID, userID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.PostLike{PostID: postID, UserID: userID})
	return result.RowsAffected > 0, result.Error
}

// RemoveLike 取消点赞，未点过返回 false
func (r *postRepository) RemoveLike(ctx context.Context, postID, userID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&model.PostLike{})
	return result.RowsAffected > 0, result.Error
}

// ListLikes 点赞列表，最新在前
func (r *postRepository) ListLikes(ctx context.Context, postID int64) ([]model.PostLike, error) {
	var likes []model.PostLike
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("id DESC").
		Find(&likes).Error
	return likes, err
}

// AddComment 添加评论
func (r *postRepository) AddComment(ctx context.Context, comment *model.PostComment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// GetComment 获取指定帖子下的评论
func (r *postRepository) GetComment(ctx context.Context, postID, commentID int64) (*model.PostComment, error) {
	var comment model.PostComment
	err := r.db.WithContext(ctx).
		Where("id = ? AND post_id = ?", commentID, postID).
		First(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &comment, err
}

// DeleteComment 删除评论
func (r *postRepository) DeleteComment(ctx context.Context, commentID int64) error {
	return r.db.WithContext(ctx).Delete(&model.PostComment{}, commentID).Error
}

// ListComments 评论列表，最新在前
func (r *postRepository) ListComments(ctx context.Context, postID int64) ([]model.PostComment, error) {
	var comments []model.PostComment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("id DESC").
		Find(&comments).Error
	return comments, err
}
