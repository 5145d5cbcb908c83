package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"marketplace_api/internal/api/dto"
	"marketplace_api/internal/model"
	"marketplace_api/internal/repository"
)

func newTestStoreService(t *testing.T, storage StorageProvider, timeout time.Duration) (*StoreService, *gorm.DB) {
	db := setupServiceTestDB(t)
	svc := NewStoreService(
		repository.NewUserRepository(db),
		repository.NewStoreRepository(db),
		storage,
		timeout,
		testLogger(),
	)
	return svc, db
}

func companyRequest(name string) *dto.StoreCompanyRequest {
	return &dto.StoreCompanyRequest{
		CompanyName: name,
		CompanyAddress: &dto.CompanyAddressRequest{
			AddressLine1: "1 High Street",
			Postcode:     "M1 1AA",
			City:         "Manchester",
			Country:      "UK",
		},
	}
}

func mediaRequest(name, url string) *dto.StoreMediaRequest {
	return &dto.StoreMediaRequest{
		StoreName:     name,
		StoreURL:      url,
		Bio:           "We sell cheese",
		Email:         "shop@example.com",
		ContactNumber: "0123456789",
	}
}

func testImages(t *testing.T) (*ImageFile, *ImageFile) {
	return &ImageFile{Data: testPNG(t, 1000, 400), DeclaredType: "image/png"},
		&ImageFile{Data: testPNG(t, 60, 20), DeclaredType: "image/png"}
}

// ==================== 第一步 ====================

func TestStoreService_CreateCompanyInfo(t *testing.T) {
	svc, db := newTestStoreService(t, newFakeStorage(), 0)
	ctx := context.Background()
	user := createServiceUser(t, db, "owner@example.com")

	resp, err := svc.CreateCompanyInfo(ctx, user.ID, companyRequest("Acme Ltd"))
	require.NoError(t, err)
	assert.Equal(t, model.StoreStatusPendingApplication, resp.StoreStatus)
	assert.Equal(t, "Acme Ltd", resp.Store.CompanyInfo.CompanyName)
	assert.Equal(t, model.StoreRoleSuperAdmin, resp.User.Store.Role)
	require.NotNil(t, resp.User.Store.StoreID)
	assert.Equal(t, resp.Store.ID, *resp.User.Store.StoreID)

	_, err = svc.CreateCompanyInfo(ctx, user.ID, companyRequest("Second Ltd"))
	assert.ErrorIs(t, err, ErrStoreExists)

	_, err = svc.CreateCompanyInfo(ctx, 9999, companyRequest("Ghost Ltd"))
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestStoreService_CreateCompanyInfo_Concurrent(t *testing.T) {
	svc, db := newTestStoreService(t, newFakeStorage(), 0)
	ctx := context.Background()
	user := createServiceUser(t, db, "owner@example.com")

	const n = 5
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateCompanyInfo(ctx, user.ID, companyRequest(fmt.Sprintf("Acme %d", i)))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrStoreExists)
	}
	assert.Equal(t, 1, succeeded)

	var stores int64
	db.Model(&model.Store{}).Count(&stores)
	assert.Equal(t, int64(1), stores)
}

func TestStoreService_UpdateCompanyInfo(t *testing.T) {
	svc, db := newTestStoreService(t, newFakeStorage(), 0)
	ctx := context.Background()
	owner := createServiceUser(t, db, "owner@example.com")
	member := createServiceUser(t, db, "member@example.com")
	loner := createServiceUser(t, db, "loner@example.com")

	created, err := svc.CreateCompanyInfo(ctx, owner.ID, companyRequest("Acme Ltd"))
	require.NoError(t, err)
	db.Model(&model.User{}).Where("id = ?", member.ID).
		Updates(map[string]interface{}{"store_id": created.Store.ID, "store_role": model.StoreRoleUser})

	resp, err := svc.UpdateCompanyInfo(ctx, owner.ID, companyRequest("Acme Holdings"))
	require.NoError(t, err)
	assert.Equal(t, "Acme Holdings", resp.Store.CompanyInfo.CompanyName)

	// store_id 指向该店铺即可修改公司信息
	_, err = svc.UpdateCompanyInfo(ctx, member.ID, companyRequest("Member Ltd"))
	assert.NoError(t, err)

	_, err = svc.UpdateCompanyInfo(ctx, loner.ID, companyRequest("Nope"))
	assert.ErrorIs(t, err, ErrNoStore)
}

// vanishingStoreRepo 第一次之后的 GetByID 读不到店铺，模拟更新后店铺被删除
type vanishingStoreRepo struct {
	repository.StoreRepository
	reads int
}

func (r *vanishingStoreRepo) GetByID(ctx context.Context, id int64) (*model.Store, error) {
	r.reads++
	if r.reads > 1 {
		return nil, nil
	}
	return r.StoreRepository.GetByID(ctx, id)
}

func TestStoreService_UpdateCompanyInfo_StoreDeletedAfterUpdate(t *testing.T) {
	svc, db := newTestStoreService(t, newFakeStorage(), 0)
	ctx := context.Background()
	owner := createServiceUser(t, db, "owner@example.com")
	_, err := svc.CreateCompanyInfo(ctx, owner.ID, companyRequest("Acme Ltd"))
	require.NoError(t, err)

	racing := NewStoreService(
		repository.NewUserRepository(db),
		&vanishingStoreRepo{StoreRepository: repository.NewStoreRepository(db)},
		newFakeStorage(),
		0,
		testLogger(),
	)
	resp, err := racing.UpdateCompanyInfo(ctx, owner.ID, companyRequest("Acme Holdings"))
	assert.ErrorIs(t, err, ErrNoStore)
	assert.Nil(t, resp)
}

func TestStoreService_GetStore(t *testing.T) {
	svc, db := newTestStoreService(t, newFakeStorage(), 0)
	ctx := context.Background()
	user := createServiceUser(t, db, "owner@example.com")

	resp, err := svc.GetStore(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StoreStatusNone, resp.StoreStatus)
	assert.Nil(t, resp.Store)

	_, err = svc.CreateCompanyInfo(ctx, user.ID, companyRequest("Acme Ltd"))
	require.NoError(t, err)
	resp, err = svc.GetStore(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StoreStatusPendingApplication, resp.StoreStatus)
	require.NotNil(t, resp.Store)

	_, err = svc.GetStore(ctx, 9999)
	assert.ErrorIs(t, err, ErrUserDoesntExist)
}

// ==================== 第二步 ====================

func setupStoreWithOwner(t *testing.T, svc *StoreService, db *gorm.DB, email string) (*model.User, int64) {
	owner := createServiceUser(t, db, email)
	resp, err := svc.CreateCompanyInfo(context.Background(), owner.ID, companyRequest("Acme "+email))
	require.NoError(t, err)
	return owner, resp.Store.ID
}

func TestStoreService_UpdateMedia(t *testing.T) {
	storage := newFakeStorage()
	svc, db := newTestStoreService(t, storage, 0)
	ctx := context.Background()
	owner, storeID := setupStoreWithOwner(t, svc, db, "owner@example.com")

	profile, cover := testImages(t)
	err := svc.UpdateMedia(ctx, owner.ID, mediaRequest("Cheese Shop", "Cheese Shop"), profile, cover)
	require.NoError(t, err)

	profileKey := fmt.Sprintf("%d-%s.png", storeID, model.StoreImageProfile)
	coverKey := fmt.Sprintf("%d-%s.png", storeID, model.StoreImageCover)

	obj, ok := storage.objects[profileKey]
	require.True(t, ok, "头像未上传")
	cfg, _, err := image.DecodeConfig(bytes.NewReader(obj.data))
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.Width)
	assert.Equal(t, 500, cfg.Height)

	coverObj, ok := storage.objects[coverKey]
	require.True(t, ok, "封面未上传")
	assert.Equal(t, cover.Data, coverObj.data, "封面不应缩放")

	var store model.Store
	require.NoError(t, db.First(&store, storeID).Error)
	assert.Equal(t, "Cheese Shop", store.StoreName)
	assert.Equal(t, "cheese-shop", store.StoreURL)
	assert.Equal(t, "We sell cheese", store.Bio)
	assert.Equal(t, "shop@example.com", store.Email)
	assert.Equal(t, "0123456789", store.ContactNumber)
	assert.Equal(t, "https://cdn.test/"+profileKey, store.ProfileImage)
	assert.Equal(t, "https://cdn.test/"+coverKey, store.CoverPhoto)
	assert.Equal(t, model.RegistrationStepMedia, store.RegistrationStep)

	// 重复提交同名不视为冲突
	profile, cover = testImages(t)
	assert.NoError(t, svc.UpdateMedia(ctx, owner.ID, mediaRequest("Cheese Shop", "cheese-shop"), profile, cover))
}

func TestStoreService_UpdateMedia_Rejections(t *testing.T) {
	storage := newFakeStorage()
	svc, db := newTestStoreService(t, storage, 0)
	ctx := context.Background()
	owner, storeID := setupStoreWithOwner(t, svc, db, "owner@example.com")
	other, _ := setupStoreWithOwner(t, svc, db, "other@example.com")
	member := createServiceUser(t, db, "member@example.com")
	db.Model(&model.User{}).Where("id = ?", member.ID).
		Updates(map[string]interface{}{"store_id": storeID, "store_role": model.StoreRoleUser})
	loner := createServiceUser(t, db, "loner@example.com")

	profile, cover := testImages(t)
	require.NoError(t, svc.UpdateMedia(ctx, other.ID, mediaRequest("Cheese Shop", "cheese"), profile, cover))

	tests := []struct {
		name    string
		userID  int64
		req     *dto.StoreMediaRequest
		profile *ImageFile
		cover   *ImageFile
		want    error
	}{
		{"missing user", 9999, mediaRequest("A", "a"), profile, cover, ErrUserDoesntExist},
		{"no store", loner.ID, mediaRequest("A", "a"), profile, cover, ErrNoStore},
		{"role user", member.ID, mediaRequest("A", "a"), profile, cover, ErrStoreForbidden},
		{"missing cover", owner.ID, mediaRequest("A", "a"), profile, nil, ErrMissingImages},
		{"empty profile", owner.ID, mediaRequest("A", "a"), &ImageFile{}, cover, ErrMissingImages},
		{"name taken ignoring case", owner.ID, mediaRequest("cheese shop", "other"), profile, cover, ErrStoreNameTaken},
		{"url taken", owner.ID, mediaRequest("Brie", "Cheese"), profile, cover, ErrStoreURLTaken},
		{"not an image", owner.ID, mediaRequest("Brie", "brie"), &ImageFile{Data: []byte("plain text")}, cover, ErrInvalidImage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.UpdateMedia(ctx, tt.userID, tt.req, tt.profile, tt.cover)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	var store model.Store
	require.NoError(t, db.First(&store, storeID).Error)
	assert.Empty(t, store.StoreName, "被拒绝的请求不应写入")
}

func TestStoreService_UpdateMedia_Admin(t *testing.T) {
	storage := newFakeStorage()
	svc, db := newTestStoreService(t, storage, 0)
	ctx := context.Background()
	_, storeID := setupStoreWithOwner(t, svc, db, "owner@example.com")
	admin := createServiceUser(t, db, "admin@example.com")
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", admin.ID).
		Updates(map[string]interface{}{"store_id": storeID, "store_role": model.StoreRoleAdmin}).Error)

	profile, cover := testImages(t)
	require.NoError(t, svc.UpdateMedia(ctx, admin.ID, mediaRequest("Brie Corner", "Brie Corner"), profile, cover))

	var store model.Store
	require.NoError(t, db.First(&store, storeID).Error)
	assert.Equal(t, "Brie Corner", store.StoreName)
	assert.Equal(t, "brie-corner", store.StoreURL)
	assert.Equal(t, "We sell cheese", store.Bio)
	assert.NotEmpty(t, store.ProfileImage)
	assert.NotEmpty(t, store.CoverPhoto)
	assert.Equal(t, model.RegistrationStepMedia, store.RegistrationStep)
}

func TestStoreService_BlankNameAndURL(t *testing.T) {
	storage := newFakeStorage()
	svc, db := newTestStoreService(t, storage, 0)
	ctx := context.Background()
	owner, storeID := setupStoreWithOwner(t, svc, db, "owner@example.com")

	assertValidation := func(t *testing.T, err error, want ...string) {
		t.Helper()
		var ve *ValidationError
		require.True(t, errors.As(err, &ve), "error = %v", err)
		assert.Equal(t, want, ve.Messages)
	}

	// 只有自己的店铺时，空白值也不能写入
	profile, cover := testImages(t)
	err := svc.UpdateMedia(ctx, owner.ID, mediaRequest("   ", " \t "), profile, cover)
	assertValidation(t, err, "Store Name is required", "Store URL is required")
	assert.Empty(t, storage.objects, "校验失败不应上传")

	// 另有一家未填写名称的店铺时，空白值不应被当作重名
	setupStoreWithOwner(t, svc, db, "other@example.com")
	assertValidation(t, svc.CheckStoreName(ctx, "   "), "Store Name is required")
	assertValidation(t, svc.CheckStoreURL(ctx, "   "), "Store URL is required")
	err = svc.UpdateMedia(ctx, owner.ID, mediaRequest("Cheese Shop", "  "), profile, cover)
	assertValidation(t, err, "Store URL is required")

	var store model.Store
	require.NoError(t, db.First(&store, storeID).Error)
	assert.Empty(t, store.StoreName)
	assert.Empty(t, store.StoreURL)
	assert.Equal(t, model.RegistrationStepCompany, store.RegistrationStep)
}

func TestStoreService_UpdateMedia_UploadFailure(t *testing.T) {
	storage := newFakeStorage()
	svc, db := newTestStoreService(t, storage, 5*time.Second)
	ctx := context.Background()
	owner, storeID := setupStoreWithOwner(t, svc, db, "owner@example.com")

	profileKey := fmt.Sprintf("%d-%s.png", storeID, model.StoreImageProfile)
	coverKey := fmt.Sprintf("%d-%s.png", storeID, model.StoreImageCover)
	storage.block[profileKey] = true
	storage.fail[coverKey] = errors.New("bucket unavailable")

	profile, cover := testImages(t)
	err := svc.UpdateMedia(ctx, owner.ID, mediaRequest("Cheese Shop", "cheese"), profile, cover)
	require.Error(t, err)

	var se *Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, KindUpstream, se.Kind)
	assert.True(t, storage.wasAborted(profileKey), "另一张图片的上传应被取消")

	var store model.Store
	require.NoError(t, db.First(&store, storeID).Error)
	assert.Empty(t, store.StoreName)
	assert.Empty(t, store.ProfileImage)
	assert.Equal(t, model.RegistrationStepCompany, store.RegistrationStep)
}

func TestStoreService_UpdateMedia_Timeout(t *testing.T) {
	storage := newFakeStorage()
	svc, db := newTestStoreService(t, storage, 50*time.Millisecond)
	ctx := context.Background()
	owner, storeID := setupStoreWithOwner(t, svc, db, "owner@example.com")
	storage.block[fmt.Sprintf("%d-%s.png", storeID, model.StoreImageCover)] = true

	profile, cover := testImages(t)
	start := time.Now()
	err := svc.UpdateMedia(ctx, owner.ID, mediaRequest("Cheese Shop", "cheese"), profile, cover)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestStoreService_CheckNameAndURL(t *testing.T) {
	svc, db := newTestStoreService(t, newFakeStorage(), 0)
	ctx := context.Background()
	owner, _ := setupStoreWithOwner(t, svc, db, "owner@example.com")
	profile, cover := testImages(t)
	require.NoError(t, svc.UpdateMedia(ctx, owner.ID, mediaRequest("Cheese Shop", "cheese shop"), profile, cover))

	assert.ErrorIs(t, svc.CheckStoreName(ctx, "CHEESE SHOP"), ErrStoreNameTaken)
	assert.NoError(t, svc.CheckStoreName(ctx, "Cheese"))
	assert.ErrorIs(t, svc.CheckStoreURL(ctx, "Cheese Shop"), ErrStoreURLTaken)
	// 首尾空白先去掉再转 slug
	assert.ErrorIs(t, svc.CheckStoreURL(ctx, "  Cheese Shop  "), ErrStoreURLTaken)
	assert.NoError(t, svc.CheckStoreURL(ctx, "cheese"))
}

func TestPrepareImage_KeyFromDeclaredType(t *testing.T) {
	data := testPNG(t, 10, 10)

	up, err := prepareImage(7, model.StoreImageCover, &ImageFile{Data: data, DeclaredType: "image/jpeg"}, false)
	require.NoError(t, err)
	assert.Equal(t, "7-cover_photo.jpeg", up.key)
	assert.Equal(t, "image/png", up.contentType)

	up, err = prepareImage(7, model.StoreImageCover, &ImageFile{Data: data, DeclaredType: "application/octet-stream"}, false)
	require.NoError(t, err)
	assert.Equal(t, "7-cover_photo.png", up.key)
}

func TestPrepareImage_ResizedKeyFollowsContent(t *testing.T) {
	data := testPNG(t, 800, 300)

	// 声明类型与实际内容不一致时，缩放后的 key 与内容保持一致
	up, err := prepareImage(7, model.StoreImageProfile, &ImageFile{Data: data, DeclaredType: "image/webp"}, true)
	require.NoError(t, err)
	assert.Equal(t, "7-profile_image.png", up.key)
	assert.Equal(t, "image/png", up.contentType)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(up.data))
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.Width)
}
