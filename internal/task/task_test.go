package task

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"marketplace_api/internal/model"
	"marketplace_api/internal/repository"
)

// ==================== 辅助函数 ====================

func setupTaskTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	if err := repository.Migrate(db); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) *model.User {
	u := &model.User{FirstName: "Test", LastName: "User", DisplayName: "Test User", Email: email, Password: "x"}
	require.NoError(t, db.Create(u).Error)
	return u
}

func createStore(t *testing.T, db *gorm.DB, ownerID int64) *model.Store {
	s := &model.Store{StoreStatus: model.StoreStatusPendingApplication, SuperAdminID: ownerID, RegistrationStep: 1}
	require.NoError(t, db.Create(s).Error)
	return s
}

func linkUser(t *testing.T, db *gorm.DB, userID, storeID int64) {
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{"store_id": storeID, "store_role": model.StoreRoleSuperAdmin}).Error)
}

func reloadUser(t *testing.T, db *gorm.DB, id int64) model.User {
	var u model.User
	require.NoError(t, db.First(&u, id).Error)
	return u
}

func storeAlive(db *gorm.DB, id int64) bool {
	var n int64
	db.Model(&model.Store{}).Where("id = ?", id).Count(&n)
	return n == 1
}

// ==================== StoreReconcileTask ====================

func TestStoreReconcileTask_Execute(t *testing.T) {
	db := setupTaskTestDB(t)
	ctx := context.Background()

	// 写入店铺后用户引用未落库
	storeless := createUser(t, db, "storeless@example.com")
	dangling := createStore(t, db, storeless.ID)

	// owner 已删除
	gone := createUser(t, db, "gone@example.com")
	abandoned := createStore(t, db, gone.ID)
	require.NoError(t, db.Unscoped().Delete(&model.User{}, gone.ID).Error)

	// owner 已挂在另一家店铺
	busy := createUser(t, db, "busy@example.com")
	detached := createStore(t, db, busy.ID)
	current := createStore(t, db, busy.ID)
	linkUser(t, db, busy.ID, current.ID)

	// 正常店铺
	healthy := createUser(t, db, "healthy@example.com")
	fine := createStore(t, db, healthy.ID)
	linkUser(t, db, healthy.ID, fine.ID)

	task := NewStoreReconcileTask(repository.NewStoreRepository(db), zap.NewNop())
	res, err := task.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, ReconcileResult{Relinked: 1, Deleted: 2}, res)

	u := reloadUser(t, db, storeless.ID)
	require.NotNil(t, u.Store.StoreID)
	assert.Equal(t, dangling.ID, *u.Store.StoreID)
	assert.Equal(t, model.StoreRoleSuperAdmin, u.Store.Role)

	assert.True(t, storeAlive(db, dangling.ID))
	assert.False(t, storeAlive(db, abandoned.ID))
	assert.False(t, storeAlive(db, detached.ID))
	assert.True(t, storeAlive(db, current.ID))
	assert.True(t, storeAlive(db, fine.ID))

	// 第二轮没有可处理的记录
	res, err = task.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, ReconcileResult{}, res)
}

func TestStoreReconcileTask_CanceledContext(t *testing.T) {
	db := setupTaskTestDB(t)
	owner := createUser(t, db, "owner@example.com")
	createStore(t, db, owner.ID)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	task := NewStoreReconcileTask(repository.NewStoreRepository(db), zap.NewNop())
	_, err := task.Execute(ctx)
	assert.Error(t, err)
	assert.Nil(t, reloadUser(t, db, owner.ID).Store.StoreID)
}

func TestStoreReconcileTask_StartRejectsBadSpec(t *testing.T) {
	task := NewStoreReconcileTask(repository.NewStoreRepository(setupTaskTestDB(t)), zap.NewNop())
	assert.Error(t, task.Start("not a cron spec"))
}

// ==================== TaskManager ====================

func TestTaskManager(t *testing.T) {
	db := setupTaskTestDB(t)
	owner := createUser(t, db, "owner@example.com")
	store := createStore(t, db, owner.ID)

	tm := NewTaskManager(&TaskManagerDeps{StoreRepo: repository.NewStoreRepository(db)}, nil)
	assert.Equal(t, map[string]bool{"reconcile": true}, tm.Status())

	require.NoError(t, tm.Start())
	res, err := tm.TriggerReconcile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Relinked)
	assert.Equal(t, store.ID, *reloadUser(t, db, owner.ID).Store.StoreID)
	tm.Stop()

	disabled := NewTaskManager(&TaskManagerDeps{}, &TaskManagerConfig{})
	_, err = disabled.TriggerReconcile(context.Background())
	assert.ErrorIs(t, err, ErrTaskDisabled)
	require.NoError(t, disabled.Start())
	disabled.Stop()
}
