package service

import (
	"context"
	"encoding/json"

	"gorm.io/datatypes"

	"marketplace_api/internal/api/dto"
	"marketplace_api/internal/model"
	"marketplace_api/internal/repository"
)

// 可单独读取的资料字段 -> 列名
var profileFields = map[string]string{
	"user_id":  "user_id",
	"username": "username",
	"bio":      "bio",
	"status":   "status",
	"website":  "website",
	"location": "location",
	"social":   "social",
}

// ==================== ProfileService 资料服务 ====================

// ProfileService 个人资料与账号删除
type ProfileService struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
}

// NewProfileService 创建资料服务
func NewProfileService(profileRepo repository.ProfileRepository, userRepo repository.UserRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo, userRepo: userRepo}
}

// GetMine 当前用户资料
func (s *ProfileService) GetMine(ctx context.Context, userID int64) (*dto.ProfileView, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrNoProfile
	}
	return dto.NewProfileView(profile), nil
}

// GetByUser 指定用户资料
func (s *ProfileService) GetByUser(ctx context.Context, userID int64) (*dto.ProfileView, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return dto.NewProfileView(profile), nil
}

// List 全部资料
func (s *ProfileService) List(ctx context.Context) ([]*dto.ProfileView, error) {
	profiles, err := s.profileRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]*dto.ProfileView, 0, len(profiles))
	for i := range profiles {
		views = append(views, dto.NewProfileView(&profiles[i]))
	}
	return views, nil
}

// Upsert 新建或整体覆盖资料
func (s *ProfileService) Upsert(ctx context.Context, userID int64, req *dto.ProfileRequest) (*dto.ProfileView, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserDoesntExist
	}

	profile := &model.Profile{
		UserID:   userID,
		Username: req.Username,
		Bio:      req.Bio,
		Status:   req.Status,
		Website:  req.Website,
		Location: req.Location,
		Social: datatypes.NewJSONType(model.SocialLinks{
			Twitter:   req.Twitter,
			Instagram: req.Instagram,
			Linkedin:  req.Linkedin,
		}),
	}
	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return s.GetMine(ctx, userID)
}

// GetField 读取单个字段，返回 {field: value}
func (s *ProfileService) GetField(ctx context.Context, userID int64, field string) (map[string]interface{}, error) {
	column, ok := profileFields[field]
	if !ok {
		return nil, ErrUnknownField
	}
	value, found, err := s.profileRepo.GetField(ctx, userID, column)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNoProfile
	}
	if field == "social" {
		if raw, ok := value.(string); ok && json.Valid([]byte(raw)) {
			value = json.RawMessage(raw)
		}
	}
	return map[string]interface{}{field: value}, nil
}

// DeleteAccount 删除资料、动态、点赞、评论与用户本身
func (s *ProfileService) DeleteAccount(ctx context.Context, userID int64) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserDoesntExist
	}
	return s.userRepo.DeleteAccount(ctx, userID)
}
