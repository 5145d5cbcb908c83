package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"marketplace_api/internal/model"
)

// ErrConditionNotMet 条件更新未命中任何行 (归属/角色校验失败或已被并发修改)
var ErrConditionNotMet = errors.New("repository: condition not met")

// ErrDuplicate 违反唯一索引，需要 gorm.Config.TranslateError
var ErrDuplicate = errors.New("repository: duplicate key")

// Models 需要建表的全部模型
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Store{},
		&model.Profile{},
		&model.Post{},
		&model.PostLike{},
		&model.PostComment{},
	}
}

// 店铺名大小写不敏感唯一，空值 (第一步创建后尚未填写) 不参与
var storeIndexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_stores_store_name_lower ON stores (LOWER(store_name)) WHERE store_name <> '' AND deleted_at IS NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_stores_store_url ON stores (store_url) WHERE store_url <> '' AND deleted_at IS NULL`,
}

// Migrate 自动建表并补充 gorm 标签无法表达的索引
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	for _, stmt := range storeIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}
