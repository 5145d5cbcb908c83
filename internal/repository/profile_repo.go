package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"marketplace_api/internal/model"
)

// ==================== ProfileRepository 资料仓库 ====================

// ProfileRepository 用户资料仓库接口
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*model.Profile, error)
	Upsert(ctx context.Context, profile *model.Profile) error
	List(ctx context.Context) ([]model.Profile, error)
	GetField(ctx context.Context, userID int64, column string) (interface{}, bool, error)
}

// ==================== 实现 ====================

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository 创建资料仓库
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// 关联用户时只取展示字段
func selectUserSummary(db *gorm.DB) *gorm.DB {
	return db.Select("id", "display_name", "first_name", "last_name")
}

// GetByUserID 获取某用户资料
func (r *profileRepository) GetByUserID(ctx context.Context, userID int64) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.WithContext(ctx).
		Preload("User", selectUserSummary).
		Where("user_id = ?", userID).
		First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &profile, err
}

// Upsert 按 user_id 新建或覆盖资料
func (r *profileRepository) Upsert(ctx context.Context, profile *model.Profile) error {
	return r.db.WithContext(ctx).
		Omit("User").
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"username", "bio", "status", "website", "location", "social", "updated_at",
			}),
		}).
		Create(profile).Error
}

// List 全部资料
func (r *profileRepository) List(ctx context.Context) ([]model.Profile, error) {
	var profiles []model.Profile
	err := r.db.WithContext(ctx).
		Preload("User", selectUserSummary).
		Order("id ASC").
		Find(&profiles).Error
	return profiles, err
}

// GetField 读取单个列，column 必须由调用方白名单校验
func (r *profileRepository) GetField(ctx context.Context, userID int64, column string) (interface{}, bool, error) {
	var rows []map[string]interface{}
	err := r.db.WithContext(ctx).
		Model(&model.Profile{}).
		Select(column).
		Where("user_id = ?", userID).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, false, err
	}
	if len(rows) == 0 {
		return nil, false, nil
	}
	// 不同驱动对文本列的扫描类型不一致
	if b, ok := rows[0][column].([]byte); ok {
		return string(b), true, nil
	}
	return rows[0][column], true, nil
}
