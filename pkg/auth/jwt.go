package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token 用途
const (
	PurposeAccess        = "access"
	PurposeConfirmEmail  = "confirm_email"
	PurposePasswordReset = "password_reset"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrTokenPurpose  = errors.New("token purpose mismatch")
	ErrMissingUserID = errors.New("token has no user id")
)

// Claims 访问令牌与邮件令牌共用
type Claims struct {
	UserID  int64  `json:"user_id,omitempty"`
	Email   string `json:"email,omitempty"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// JWTer 签发与校验 HS256 令牌
type JWTer struct {
	Secret   []byte
	Issuer   string
	TTL      time.Duration // access token
	EmailTTL time.Duration // 邮件确认 / 重置密码
}

// IssueAccess 签发访问令牌
func (j *JWTer) IssueAccess(userID int64) (string, error) {
	claims := Claims{
		UserID:           userID,
		Purpose:          PurposeAccess,
		RegisteredClaims: j.registered(strconv.FormatInt(userID, 10), j.TTL),
	}
	return j.sign(claims)
}

// IssueEmailToken 签发邮件令牌，返回令牌与 jti (用于一次性消费)
func (j *JWTer) IssueEmailToken(email, purpose string) (string, string, error) {
	claims := Claims{
		Email:            email,
		Purpose:          purpose,
		RegisteredClaims: j.registered(email, j.EmailTTL),
	}
	token, err := j.sign(claims)
	if err != nil {
		return "", "", err
	}
	return token, claims.ID, nil
}

// Parse 校验签名、签发者、有效期与用途
func (j *JWTer) Parse(tokenStr, purpose string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected alg")
		}
		return j.Secret, nil
	}, jwt.WithIssuer(j.Issuer), jwt.WithLeeway(60*time.Second), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	c, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return nil, ErrInvalidToken
	}
	if c.Purpose != purpose {
		return nil, ErrTokenPurpose
	}
	if purpose == PurposeAccess && c.UserID == 0 {
		return nil, ErrMissingUserID
	}
	return c, nil
}

func (j *JWTer) registered(subject string, ttl time.Duration) jwt.RegisteredClaims {
	now := time.Now()
	return jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    j.Issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}

func (j *JWTer) sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.Secret)
}
