package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"marketplace_api/internal/model"
	"marketplace_api/internal/repository"
)

// ==================== 测试辅助 ====================

func setupServiceTestDB(t *testing.T) *gorm.DB {
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
		t.Fatalf("迁移失败: %v", err)
	}
	return db
}

func createServiceUser(t *testing.T, db *gorm.DB, email string) *model.User {
	user := &model.User{
		FirstName:   "Test",
		LastName:    "User",
		DisplayName: "Test User",
		Email:       email,
		Password:    "hashed",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}
	return user
}

func testPNG(t *testing.T, w, h int) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.NRGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("编码测试图片失败: %v", err)
	}
	return buf.Bytes()
}

// ==================== fakes ====================

type storedObject struct {
	data        []byte
	contentType string
}

// fakeStorage 按 key 控制失败或阻塞
type fakeStorage struct {
	mu      sync.Mutex
	objects map[string]storedObject
	fail    map[string]error
	block   map[string]bool
	aborted map[string]bool
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		objects: make(map[string]storedObject),
		fail:    make(map[string]error),
		block:   make(map[string]bool),
		aborted: make(map[string]bool),
	}
}

func (f *fakeStorage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	f.mu.Lock()
	failErr, block := f.fail[key], f.block[key]
	f.mu.Unlock()

	if failErr != nil {
		return "", failErr
	}
	if block {
		<-ctx.Done()
		f.mu.Lock()
		f.aborted[key] = true
		f.mu.Unlock()
		return "", ctx.Err()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = storedObject{data: data, contentType: contentType}
	return "https://cdn.test/" + key, nil
}

func (f *fakeStorage) wasAborted(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.aborted[key]
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []Notification
	err  error
}

func (f *fakeNotifier) Notify(_ context.Context, n Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, n)
	return nil
}

func (f *fakeNotifier) last() (Notification, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return Notification{}, false
	}
	return f.sent[len(f.sent)-1], true
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
