package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"marketplace_api/internal/api/dto"
	"marketplace_api/internal/model"
	"marketplace_api/internal/repository"
	"marketplace_api/pkg/auth"
	"marketplace_api/pkg/utils"
)

// TokenLedger 邮件令牌一次性消费台账
type TokenLedger interface {
	Record(ctx context.Context, id string, ttl time.Duration) error
	Consume(ctx context.Context, id string) (bool, error)
}

// ==================== AuthService 认证服务 ====================

// AuthService 注册、登录与邮件令牌
type AuthService struct {
	userRepo  repository.UserRepository
	jwt       *auth.JWTer
	ledger    TokenLedger
	notifier  Notifier
	publicURL string
	logger    *zap.Logger
}

// NewAuthService 创建认证服务
func NewAuthService(
	userRepo repository.UserRepository,
	jwt *auth.JWTer,
	ledger TokenLedger,
	notifier Notifier,
	publicURL string,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwt:       jwt,
		ledger:    ledger,
		notifier:  notifier,
		publicURL: strings.TrimRight(publicURL, "/"),
		logger:    logger.Named("auth"),
	}
}

// ==================== 注册 / 登录 ====================

// Register 注册并发送确认邮件
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := strings.TrimSpace(req.Email)
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserExists
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DisplayName: utils.CapitalizeFirst(req.FirstName) + " " + utils.CapitalizeFirst(req.LastName),
		Email:       email,
		Password:    hashed,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	// 注册不因邮件失败而失败
	if err := s.sendEmailToken(ctx, user, auth.PurposeConfirmEmail); err != nil {
		s.logger.Error("发送确认邮件失败", zap.Int64("user_id", user.ID), zap.Error(err))
	}

	return s.authResponse(user)
}

// Login 邮箱 + 密码登录
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		return nil, err
	}
	if user == nil || !utils.CheckPassword(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	return s.authResponse(user)
}

func (s *AuthService) authResponse(user *model.User) (*dto.AuthResponse, error) {
	token, err := s.jwt.IssueAccess(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &dto.AuthResponse{AccessToken: token, User: dto.NewUserView(user)}, nil
}

// GetMe 当前登录用户
func (s *AuthService) GetMe(ctx context.Context, userID int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserDoesntExist
	}
	return dto.NewUserInfo(user), nil
}

// ==================== 邮件令牌 ====================

// ConfirmEmail 校验并消费确认令牌
func (s *AuthService) ConfirmEmail(ctx context.Context, token string) error {
	claims, err := s.consume(ctx, token, auth.PurposeConfirmEmail)
	if err != nil {
		return err
	}
	found, err := s.userRepo.ConfirmEmail(ctx, claims.Email)
	if err != nil {
		return err
	}
	if !found {
		return ErrUserDoesntExist
	}
	return nil
}

// ResendConfirmEmail 重新发送确认邮件
func (s *AuthService) ResendConfirmEmail(ctx context.Context, userID int64) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserDoesntExist
	}
	return s.sendEmailToken(ctx, user, auth.PurposeConfirmEmail)
}

// ForgotPassword 发送重置密码邮件
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrNoEmail
	}
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrEmailNotFound
	}
	return s.sendEmailToken(ctx, user, auth.PurposePasswordReset)
}

// ResetPassword 校验并消费重置令牌，写入新密码
func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	claims, err := s.consume(ctx, token, auth.PurposePasswordReset)
	if err != nil {
		return err
	}
	user, err := s.userRepo.GetByEmail(ctx, claims.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserDoesntExist
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.userRepo.UpdatePassword(ctx, user.ID, hashed)
}

func (s *AuthService) consume(ctx context.Context, token, purpose string) (*auth.Claims, error) {
	claims, err := s.jwt.Parse(token, purpose)
	if err != nil || claims.Email == "" {
		return nil, ErrInvalidToken
	}
	ok, err := s.ledger.Consume(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("consume token: %w", err)
	}
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *AuthService) sendEmailToken(ctx context.Context, user *model.User, purpose string) error {
	token, jti, err := s.jwt.IssueEmailToken(user.Email, purpose)
	if err != nil {
		return fmt.Errorf("issue email token: %w", err)
	}
	if err := s.ledger.Record(ctx, jti, s.jwt.EmailTTL); err != nil {
		return fmt.Errorf("record email token: %w", err)
	}

	n := Notification{
		Kind:      NotificationConfirmEmail,
		To:        user.Email,
		FirstName: user.FirstName,
		ActionURL: s.publicURL + "/api/auth/confirm-email/" + token,
	}
	if purpose == auth.PurposePasswordReset {
		n.Kind = NotificationPasswordReset
		n.ActionURL = s.publicURL + "/api/auth/reset-password/" + token
	}
	return s.notifier.Notify(ctx, n)
}
