package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"marketplace_api/internal/model"
)

// ==================== UserRepository 用户仓库 ====================

// UserRepository 用户仓库接口
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ConfirmEmail(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, id int64, hashedPassword string) error
	DeleteAccount(ctx context.Context, id int64) error
}

// ==================== 实现 ====================

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓库
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create 创建用户，邮箱重复返回 ErrDuplicate
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

// GetByID 根据 ID 获取用户
func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

// GetByEmail 根据邮箱获取用户
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

// ExistsByEmail 检查邮箱是否已注册
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

// ConfirmEmail 标记邮箱已验证，返回是否找到用户
func (r *userRepository) ConfirmEmail(ctx context.Context, email string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("email = ?", email).
		Update("email_confirmed", true)
	return result.RowsAffected > 0, result.Error
}

// UpdatePassword 更新密码
func (r *userRepository) UpdatePassword(ctx context.Context, id int64, hashedPassword string) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("password", hashedPassword).Error
}

// DeleteAccount 删除账号及其全部数据 (资料、动态、点赞、评论、作为 super_admin 拥有的店铺)
func (r *userRepository) DeleteAccount(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}

		postIDs := tx.Model(&model.Post{}).Select("id").Where("user_id = ?", id)
		if err := tx.Where("(user_id = ? OR post_id IN (?))", id, postIDs).Delete(&model.PostLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("(user_id = ? OR post_id IN (?))", id, postIDs).Delete(&model.PostComment{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("user_id = ?", id).Delete(&model.Post{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("user_id = ?", id).Delete(&model.Profile{}).Error; err != nil {
			return err
		}

		if user.Store.StoreID != nil && user.Store.Role == model.StoreRoleSuperAdmin {
			if err := tx.Where("id = ? AND super_admin_id = ?", *user.Store.StoreID, id).
				Delete(&model.Store{}).Error; err != nil {
				return err
			}
			// 其余成员的引用一并解除
			if err := tx.Model(&model.User{}).
				Where("store_id = ? AND id <> ?", *user.Store.StoreID, id).
				Updates(map[string]interface{}{"store_id": nil, "store_role": ""}).Error; err != nil {
				return err
			}
		}

		return tx.Unscoped().Delete(&model.User{}, id).Error
	})
}
