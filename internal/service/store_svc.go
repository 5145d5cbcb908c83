package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"marketplace_api/internal/api/dto"
	"marketplace_api/internal/model"
	"marketplace_api/internal/repository"
	"marketplace_api/pkg/utils"
)

// 店铺头像统一尺寸
const (
	profileImageWidth  = 500
	profileImageHeight = 500
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ImageFile 上传的图片
type ImageFile struct {
	Data         []byte
	DeclaredType string // multipart 中声明的 Content-Type
}

// ==================== StoreService 店铺入驻 ====================

// StoreService 店铺入驻流程
type StoreService struct {
	userRepo      repository.UserRepository
	storeRepo     repository.StoreRepository
	storage       StorageProvider
	uploadTimeout time.Duration
	logger        *zap.Logger
}

// NewStoreService 创建店铺服务
func NewStoreService(
	userRepo repository.UserRepository,
	storeRepo repository.StoreRepository,
	storage StorageProvider,
	uploadTimeout time.Duration,
	logger *zap.Logger,
) *StoreService {
	if uploadTimeout <= 0 {
		uploadTimeout = 30 * time.Second
	}
	return &StoreService{
		userRepo:      userRepo,
		storeRepo:     storeRepo,
		storage:       storage,
		uploadTimeout: uploadTimeout,
		logger:        logger.Named("store"),
	}
}

// GetStore 当前用户的店铺与状态
func (s *StoreService) GetStore(ctx context.Context, userID int64) (*dto.StoreStatusResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserDoesntExist
	}
	if user.Store.StoreID == nil {
		return &dto.StoreStatusResponse{StoreStatus: model.StoreStatusNone}, nil
	}

	store, err := s.storeRepo.GetByID(ctx, *user.Store.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return &dto.StoreStatusResponse{StoreStatus: model.StoreStatusNone}, nil
	}
	return &dto.StoreStatusResponse{
		StoreStatus: store.StoreStatus,
		Store:       dto.NewStoreView(store),
	}, nil
}

// ==================== 第一步：公司信息 ====================

// CreateCompanyInfo 新建店铺，创建者成为 super_admin
func (s *StoreService) CreateCompanyInfo(ctx context.Context, userID int64, req *dto.StoreCompanyRequest) (resp *dto.CreateStoreResponse, err error) {
	defer func() { onboardingSteps.WithLabelValues("company_new", resultLabel(err)).Inc() }()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.Store.HasStore() {
		return nil, ErrStoreExists
	}

	store := &model.Store{
		CompanyInfo:      req.CompanyInfo(),
		RegistrationStep: model.RegistrationStepCompany,
		StoreStatus:      model.StoreStatusPendingApplication,
		SuperAdminID:     userID,
	}
	if err := s.storeRepo.CreateForUser(ctx, store, userID); err != nil {
		if errors.Is(err, repository.ErrConditionNotMet) {
			// 并发请求已先行关联，或用户刚被删除
			return nil, s.conflictCause(ctx, userID)
		}
		return nil, fmt.Errorf("创建店铺失败: %w", err)
	}

	user, err = s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("店铺已创建", zap.Int64("store_id", store.ID), zap.Int64("user_id", userID))

	return &dto.CreateStoreResponse{
		User:        dto.NewUserView(user),
		StoreStatus: store.StoreStatus,
		Store:       dto.NewStoreView(store),
	}, nil
}

func (s *StoreService) conflictCause(ctx context.Context, userID int64) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	return ErrStoreExists
}

// UpdateCompanyInfo 覆盖公司信息，只有 store_id 指向该店铺的用户可以修改
func (s *StoreService) UpdateCompanyInfo(ctx context.Context, userID int64, req *dto.StoreCompanyRequest) (resp *dto.StoreStatusResponse, err error) {
	defer func() { onboardingSteps.WithLabelValues("company_update", resultLabel(err)).Inc() }()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.Store.StoreID == nil {
		return nil, ErrNoStore
	}
	store, err := s.storeRepo.GetByID(ctx, *user.Store.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrNoStore
	}

	err = s.storeRepo.UpdateCompanyInfo(ctx, store.ID, userID, req.CompanyInfo())
	if errors.Is(err, repository.ErrConditionNotMet) {
		return nil, ErrStoreForbidden
	}
	if err != nil {
		return nil, fmt.Errorf("更新公司信息失败: %w", err)
	}

	store, err = s.storeRepo.GetByID(ctx, store.ID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		// 更新后店铺随账号一起被删除
		return nil, ErrNoStore
	}
	return &dto.StoreStatusResponse{
		StoreStatus: store.StoreStatus,
		Store:       dto.NewStoreView(store),
	}, nil
}

// ==================== 第二步：店铺资料 + 图片 ====================

// UpdateMedia 上传头像与封面并写入店铺资料
// 两张图并发上传，任一失败即取消另一张并整体失败，资料不落库
func (s *StoreService) UpdateMedia(ctx context.Context, userID int64, req *dto.StoreMediaRequest, profile, cover *ImageFile) (err error) {
	defer func() { onboardingSteps.WithLabelValues("media", resultLabel(err)).Inc() }()

	name := strings.TrimSpace(req.StoreName)
	slug := utils.Slugify(strings.TrimSpace(req.StoreURL))
	if err := requireNameAndURL(name, slug); err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserDoesntExist
	}
	if user.Store.StoreID == nil {
		return ErrNoStore
	}
	store, err := s.storeRepo.GetByID(ctx, *user.Store.StoreID)
	if err != nil {
		return err
	}
	if store == nil {
		return ErrNoStore
	}
	if !user.Store.CanEditStore() {
		return ErrStoreForbidden
	}
	if profile == nil || cover == nil || len(profile.Data) == 0 || len(cover.Data) == 0 {
		return ErrMissingImages
	}

	if err := s.ensureAvailable(ctx, name, slug, store.ID); err != nil {
		return err
	}

	profileUpload, err := prepareImage(store.ID, model.StoreImageProfile, profile, true)
	if err != nil {
		return err
	}
	coverUpload, err := prepareImage(store.ID, model.StoreImageCover, cover, false)
	if err != nil {
		return err
	}

	urls, err := s.uploadAll(ctx, profileUpload, coverUpload)
	if err != nil {
		s.logger.Warn("店铺图片上传失败", zap.Int64("store_id", store.ID), zap.Error(err))
		return uploadError(err)
	}

	err = s.storeRepo.UpdateProfile(ctx, store.ID, userID, repository.StoreProfile{
		StoreName:     name,
		StoreURL:      slug,
		Bio:           req.Bio,
		Email:         req.Email,
		ContactNumber: req.ContactNumber,
		ProfileImage:  urls[0],
		CoverPhoto:    urls[1],
	})
	switch {
	case errors.Is(err, repository.ErrConditionNotMet):
		// 角色在上传期间被调整
		return ErrStoreForbidden
	case errors.Is(err, repository.ErrDuplicate):
		if cerr := s.ensureAvailable(ctx, name, slug, store.ID); cerr != nil {
			return cerr
		}
		return ErrStoreNameTaken
	case err != nil:
		return fmt.Errorf("保存店铺资料失败: %w", err)
	}
	return nil
}

// requireNameAndURL 去除空白后名称与 slug 都不能为空
func requireNameAndURL(name, slug string) error {
	var msgs []string
	if name == "" {
		msgs = append(msgs, msgStoreNameRequired)
	}
	if slug == "" {
		msgs = append(msgs, msgStoreURLRequired)
	}
	if len(msgs) > 0 {
		return &ValidationError{Messages: msgs}
	}
	return nil
}

func (s *StoreService) ensureAvailable(ctx context.Context, name, slug string, storeID int64) error {
	exists, err := s.storeRepo.ExistsByName(ctx, name, storeID)
	if err != nil {
		return err
	}
	if exists {
		return ErrStoreNameTaken
	}
	exists, err = s.storeRepo.ExistsByURL(ctx, slug, storeID)
	if err != nil {
		return err
	}
	if exists {
		return ErrStoreURLTaken
	}
	return nil
}

type imageUpload struct {
	role        string
	key         string
	data        []byte
	contentType string
}

// prepareImage 校验类型，生成 {store_id}-{role}.{ext}，头像缩放到 500x500
func prepareImage(storeID int64, role string, f *ImageFile, resize bool) (*imageUpload, error) {
	detected := mimetype.Detect(f.Data).String()
	if !allowedImageTypes[detected] {
		return nil, ErrInvalidImage
	}

	// key 扩展名取声明类型，声明缺失或非图片时取探测结果
	declared := strings.ToLower(strings.TrimSpace(f.DeclaredType))
	if !allowedImageTypes[declared] {
		declared = detected
	}

	up := &imageUpload{
		role:        role,
		data:        f.Data,
		contentType: detected,
	}
	if resize {
		data, err := utils.ResizeContain(f.Data, detected, profileImageWidth, profileImageHeight)
		if err != nil {
			return nil, ErrInvalidImage
		}
		up.data = data
		if detected == "image/webp" {
			up.contentType = "image/png"
		}
		// 重新编码后扩展名跟随实际内容
		declared = up.contentType
	}
	up.key = fmt.Sprintf("%d-%s.%s", storeID, role, strings.TrimPrefix(declared, "image/"))
	return up, nil
}

// uploadAll 并发上传，返回与入参同序的 URL
func (s *StoreService) uploadAll(ctx context.Context, uploads ...*imageUpload) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.uploadTimeout)
	defer cancel()

	urls := make([]string, len(uploads))
	g, gctx := errgroup.WithContext(ctx)
	for i, up := range uploads {
		g.Go(func() error {
			start := time.Now()
			url, err := s.storage.Upload(gctx, up.key, up.data, up.contentType)
			imageUploadSeconds.WithLabelValues(up.role, resultLabel(err)).Observe(time.Since(start).Seconds())
			if err != nil {
				return fmt.Errorf("%s: %w", up.role, err)
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}

// ==================== 名称 / URL 检查 ====================

// CheckStoreName 大小写不敏感的完全匹配
func (s *StoreService) CheckStoreName(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &ValidationError{Messages: []string{msgStoreNameRequired}}
	}
	exists, err := s.storeRepo.ExistsByName(ctx, name, 0)
	if err != nil {
		return err
	}
	if exists {
		return ErrStoreNameTaken
	}
	return nil
}

// CheckStoreURL 先规范化为 slug 再查询
func (s *StoreService) CheckStoreURL(ctx context.Context, url string) error {
	slug := utils.Slugify(strings.TrimSpace(url))
	if slug == "" {
		return &ValidationError{Messages: []string{msgStoreURLRequired}}
	}
	exists, err := s.storeRepo.ExistsByURL(ctx, slug, 0)
	if err != nil {
		return err
	}
	if exists {
		return ErrStoreURLTaken
	}
	return nil
}
