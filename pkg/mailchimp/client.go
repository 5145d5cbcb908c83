package mailchimp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Options Mailchimp 连接参数
type Options struct {
	APIKey       string
	ServerPrefix string // 数据中心，例如 us21；为空时从 APIKey 后缀推导
	BaseURL      string // 测试用，覆盖 https://{dc}.api.mailchimp.com
	Timeout      time.Duration
}

// Member 列表成员
type Member struct {
	EmailAddress string            `json:"email_address"`
	Status       string            `json:"status"`
	MergeFields  map[string]string `json:"merge_fields,omitempty"`
}

// APIError Mailchimp 返回的 problem+json
type APIError struct {
	Status int    `json:"status"`
	Type   string `json:"type"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return e.Title
	}
	return e.Title + ": " + e.Detail
}

// Client Mailchimp Marketing API v3
type Client struct {
	http *resty.Client
}

// ErrMissingAPIKey 未配置 API key
var ErrMissingAPIKey = errors.New("mailchimp api key is not configured")

// New 创建客户端
func New(opt Options) (*Client, error) {
	if opt.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	baseURL := opt.BaseURL
	if baseURL == "" {
		dc := opt.ServerPrefix
		if dc == "" {
			dc = datacenter(opt.APIKey)
		}
		if dc == "" {
			return nil, fmt.Errorf("cannot determine mailchimp datacenter from api key")
		}
		baseURL = fmt.Sprintf("https://%s.api.mailchimp.com", dc)
	}

	timeout := opt.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	// Mailchimp 接受任意用户名 + API key 的 basic auth
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")+"/3.0").
		SetBasicAuth("anystring", opt.APIKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)

	return &Client{http: client}, nil
}

// AddListMember 添加列表成员
func (c *Client) AddListMember(ctx context.Context, listID string, m Member) error {
	var apiErr APIError
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("listID", listID).
		SetBody(m).
		SetError(&apiErr).
		Post("/lists/{listID}/members")
	if err != nil {
		return fmt.Errorf("mailchimp request failed: %w", err)
	}
	if resp.IsError() {
		if apiErr.Status == 0 {
			apiErr.Status = resp.StatusCode()
		}
		if apiErr.Title == "" {
			apiErr.Title = resp.Status()
		}
		return &apiErr
	}
	return nil
}

// datacenter key 形如 xxxxxxxx-us21
func datacenter(apiKey string) string {
	i := strings.LastIndex(apiKey, "-")
	if i < 0 || i == len(apiKey)-1 {
		return ""
	}
	return apiKey[i+1:]
}
