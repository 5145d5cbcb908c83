package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"marketplace_api/internal/model"
)

// ==================== StoreRepository 店铺仓库 ====================

// StoreRepository 店铺仓库接口
type StoreRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Store, error)
	CreateForUser(ctx context.Context, store *model.Store, userID int64) error
	UpdateCompanyInfo(ctx context.Context, storeID, userID int64, info model.CompanyInfo) error
	UpdateProfile(ctx context.Context, storeID, userID int64, p StoreProfile) error
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)
	ExistsByURL(ctx context.Context, url string, excludeID int64) (bool, error)

	// 对账任务使用
	FindOrphans(ctx context.Context) ([]OrphanStore, error)
	RelinkOwner(ctx context.Context, storeID, ownerID int64) error
	Delete(ctx context.Context, id int64) error
}

// StoreProfile 第二步写入的店铺资料
type StoreProfile struct {
	StoreName     string
	StoreURL      string
	Bio           string
	Email         string
	ContactNumber string
	ProfileImage  string
	CoverPhoto    string
}

// OrphanStore super_admin 未指回店铺的记录
type OrphanStore struct {
	StoreID      int64
	OwnerID      int64
	OwnerExists  bool
	OwnerStoreID *int64
}

// ==================== 实现 ====================

type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository 创建店铺仓库
func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

// GetByID 根据 ID 获取店铺
func (r *storeRepository) GetByID(ctx context.Context, id int64) (*model.Store, error) {
	var store model.Store
	err := r.db.WithContext(ctx).First(&store, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &store, err
}

// CreateForUser 在同一事务内创建店铺并把创建者设为 super_admin
// 用户已有店铺引用时返回 ErrConditionNotMet，店铺插入随之回滚
func (r *storeRepository) CreateForUser(ctx context.Context, store *model.Store, userID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(store).Error; err != nil {
			return err
		}

		result := tx.Model(&model.User{}).
			Where("id = ? AND store_id IS NULL AND store_role = ''", userID).
			Updates(map[string]interface{}{
				"store_id":   store.ID,
				"store_role": model.StoreRoleSuperAdmin,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrConditionNotMet
		}
		return nil
	})
}

// memberOf 请求者当前引用的就是这家店铺
func memberOf(tx *gorm.DB, userID int64, roles ...string) *gorm.DB {
	q := tx.Model(&model.User{}).
		Select("1").
		Where("users.id = ? AND users.store_id = stores.id", userID)
	if len(roles) > 0 {
		q = q.Where("users.store_role IN ?", roles)
	}
	return q
}

// UpdateCompanyInfo 单条条件更新：只有请求者的 store_id 等于该店铺时才写入
func (r *storeRepository) UpdateCompanyInfo(ctx context.Context, storeID, userID int64, info model.CompanyInfo) error {
	db := r.db.WithContext(ctx)
	result := db.Model(&model.Store{}).
		Where("id = ? AND EXISTS (?)", storeID, memberOf(db, userID)).
		Updates(map[string]interface{}{
			"company_name":          info.CompanyName,
			"company_number":        info.CompanyNumber,
			"company_address_line1": info.CompanyAddress.AddressLine1,
			"company_address_line2": info.CompanyAddress.AddressLine2,
			"company_postcode":      info.CompanyAddress.Postcode,
			"company_city":          info.CompanyAddress.City,
			"company_country":       info.CompanyAddress.Country,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrConditionNotMet
	}
	return nil
}

// UpdateProfile 写入第二步资料，要求请求者是该店铺的 admin 或 super_admin
// registration_step 只前进不后退
func (r *storeRepository) UpdateProfile(ctx context.Context, storeID, userID int64, p StoreProfile) error {
	db := r.db.WithContext(ctx)
	result := db.Model(&model.Store{}).
		Where("id = ? AND EXISTS (?)", storeID,
			memberOf(db, userID, model.StoreRoleAdmin, model.StoreRoleSuperAdmin)).
		Updates(map[string]interface{}{
			"store_name":     p.StoreName,
			"store_url":      p.StoreURL,
			"bio":            p.Bio,
			"email":          p.Email,
			"contact_number": p.ContactNumber,
			"profile_image":  p.ProfileImage,
			"cover_photo":    p.CoverPhoto,
			"registration_step": gorm.Expr(
				"CASE WHEN registration_step < ? THEN ? ELSE registration_step END",
				model.RegistrationStepMedia, model.RegistrationStepMedia),
		})
	if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrConditionNotMet
	}
	return nil
}

// ExistsByName 店铺名是否已被占用 (大小写不敏感的完全匹配)
func (r *storeRepository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Store{}).
		Where("LOWER(store_name) = LOWER(?) AND id <> ?", name, excludeID).
		Count(&count).Error
	return count > 0, err
}

// ExistsByURL 店铺 URL 是否已被占用，调用方负责规范化
func (r *storeRepository) ExistsByURL(ctx context.Context, url string, excludeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Store{}).
		Where("store_url = ? AND id <> ?", url, excludeID).
		Count(&count).Error
	return count > 0, err
}

// FindOrphans 查找 super_admin 不存在或未指回本店铺的店铺
func (r *storeRepository) FindOrphans(ctx context.Context) ([]OrphanStore, error) {
	var rows []struct {
		StoreID      int64
		OwnerID      int64
		UserID       *int64
		OwnerStoreID *int64
	}
	err := r.db.WithContext(ctx).
		Table("stores").
		Select("stores.id AS store_id, stores.super_admin_id AS owner_id, users.id AS user_id, users.store_id AS owner_store_id").
		Joins("LEFT JOIN users ON users.id = stores.super_admin_id AND users.deleted_at IS NULL").
		Where("stores.deleted_at IS NULL").
		Where("(users.id IS NULL OR users.store_id IS NULL OR users.store_id <> stores.id)").
		Order("stores.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	orphans := make([]OrphanStore, 0, len(rows))
	for _, row := range rows {
		orphans = append(orphans, OrphanStore{
			StoreID:      row.StoreID,
			OwnerID:      row.OwnerID,
			OwnerExists:  row.UserID != nil,
			OwnerStoreID: row.OwnerStoreID,
		})
	}
	return orphans, nil
}

// RelinkOwner 把仍无店铺的 owner 重新指回店铺
func (r *storeRepository) RelinkOwner(ctx context.Context, storeID, ownerID int64) error {
	result := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ? AND store_id IS NULL", ownerID).
		Updates(map[string]interface{}{
			"store_id":   storeID,
			"store_role": model.StoreRoleSuperAdmin,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrConditionNotMet
	}
	return nil
}

// Delete 删除店铺（软删除）
func (r *storeRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Store{}, id).Error
}
