package service

import (
	"context"
	"errors"
	"strings"

	"marketplace_api/internal/api/dto"
	"marketplace_api/pkg/mailchimp"
)

// ListClient *mailchimp.Client 实现
type ListClient interface {
	AddListMember(ctx context.Context, listID string, m mailchimp.Member) error
}

// MarketingService 邮件列表订阅
type MarketingService struct {
	client ListClient
	listID string
}

// NewMarketingService client 为 nil 时订阅接口返回 503
func NewMarketingService(client ListClient, listID string) *MarketingService {
	return &MarketingService{client: client, listID: listID}
}

// PreLaunchSignUp 订阅预发布名单
func (s *MarketingService) PreLaunchSignUp(ctx context.Context, req *dto.PreLaunchSignUpRequest) error {
	if s.client == nil || s.listID == "" {
		return ErrMailingListDisabled
	}

	err := s.client.AddListMember(ctx, s.listID, mailchimp.Member{
		EmailAddress: strings.TrimSpace(req.Email),
		Status:       "subscribed",
		MergeFields:  map[string]string{"FNAME": req.FirstName},
	})
	var apiErr *mailchimp.APIError
	if errors.As(err, &apiErr) {
		return &Error{Kind: KindUpstream, Msg: apiErr.Error(), Err: err}
	}
	return err
}
