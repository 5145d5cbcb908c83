package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace_api/internal/service"
)

// MessageBody 统一错误 / 提示响应
type MessageBody struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

var kindStatus = map[service.Kind]int{
	service.KindInternal:     http.StatusInternalServerError,
	service.KindBadRequest:   http.StatusBadRequest,
	service.KindUnauthorized: http.StatusUnauthorized,
	service.KindForbidden:    http.StatusForbidden,
	service.KindNotFound:     http.StatusNotFound,
	service.KindConflict:     http.StatusConflict,
	service.KindUpstream:     http.StatusBadGateway,
	service.KindUnavailable:  http.StatusServiceUnavailable,
}

// respondError 把业务错误映射为 {message}，5xx 交给 ginzap 记录
func respondError(c *gin.Context, err error) {
	var ve *service.ValidationError
	if errors.As(err, &ve) && len(ve.Messages) > 0 {
		c.JSON(http.StatusBadRequest, MessageBody{Message: ve.Messages[0], Errors: ve.Messages})
		return
	}

	var se *service.Error
	if errors.As(err, &se) {
		status, ok := kindStatus[se.Kind]
		if !ok {
			status = http.StatusInternalServerError
		}
		if status >= http.StatusInternalServerError {
			_ = c.Error(err)
		}
		c.JSON(status, MessageBody{Message: se.Msg})
		return
	}

	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, MessageBody{Message: "Internal server error"})
}

func respondMessage(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, MessageBody{Message: msg})
}
