package service

import "strings"

// Kind 错误分类，控制器据此选择 HTTP 状态码
type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindUpstream
	KindUnavailable
)

// Error 面向调用方的业务错误，Msg 原样返回给客户端
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// ValidationError 汇总的字段校验错误
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, ", ")
}

// ==================== 错误定义 ====================

// 用户与认证
var (
	ErrUserNotFound       = newError(KindNotFound, "User not found")
	ErrUserDoesntExist    = newError(KindNotFound, "User doesnt exist")
	ErrUserExists         = newError(KindConflict, "User already exists")
	ErrInvalidCredentials = newError(KindUnauthorized, "Invalid credentials")
	ErrInvalidToken       = newError(KindUnauthorized, "Token is invalid or has expired")
	ErrNoEmail            = newError(KindBadRequest, "No email attached")
	ErrEmailNotFound      = newError(KindNotFound, "Email address doesnt exist")
)

// 店铺入驻
var (
	ErrStoreExists    = newError(KindConflict, "User already has an associated store")
	ErrNoStore        = newError(KindNotFound, "User has no store to update")
	ErrStoreForbidden = newError(KindForbidden, "Not authorized to edit this store")
	ErrMissingImages  = newError(KindBadRequest, "Missing images")
	ErrInvalidImage   = newError(KindBadRequest, "Images must be jpeg, png, gif or webp")
	ErrStoreNameTaken = newError(KindConflict, "Store name already exists")
	ErrStoreURLTaken  = newError(KindConflict, "URL already exists")
)

// 与请求绑定使用相同的字段提示
const (
	msgStoreNameRequired = "Store Name is required"
	msgStoreURLRequired  = "Store URL is required"
)

// 动态
var (
	ErrPostNotFound    = newError(KindNotFound, "post not found")
	ErrPostsNotFound   = newError(KindNotFound, "posts not found")
	ErrNotAuthorized   = newError(KindUnauthorized, "user not authorized")
	ErrAlreadyLiked    = newError(KindBadRequest, "post already liked")
	ErrNotLiked        = newError(KindBadRequest, "post hasn't been liked yet")
	ErrCommentNotFound = newError(KindNotFound, "comment not found")
)

// 个人资料
var (
	ErrNoProfile       = newError(KindBadRequest, "There is no profile for this user")
	ErrProfileNotFound = newError(KindBadRequest, "Profile not found")
	ErrUnknownField    = newError(KindBadRequest, "Unknown profile field")
)

// 营销
var ErrMailingListDisabled = newError(KindUnavailable, "Mailing list is not configured")

// uploadError 图片上传失败，保留底层错误便于日志
func uploadError(err error) error {
	return &Error{Kind: KindUpstream, Msg: "Image upload failed", Err: err}
}
