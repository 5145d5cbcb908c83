package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace_api/internal/api/dto"
	"marketplace_api/internal/service"
)

type MarketingController struct {
	marketingSvc *service.MarketingService
}

func NewMarketingController(marketingSvc *service.MarketingService) *MarketingController {
	return &MarketingController{marketingSvc: marketingSvc}
}

// PreLaunchSignUp 预发布订阅
// @Summary 预发布订阅
// @Description 加入 Mailchimp 邮件列表
// @Tags Marketing (营销)
// @Accept json
// @Produce json
// @Param request body dto.PreLaunchSignUpRequest true "姓名与邮箱"
// @Success 200 {string} string "success"
// @Failure 400 {object} MessageBody "校验失败"
// @Failure 502 {object} MessageBody "Mailchimp 返回错误"
// @Failure 503 {object} MessageBody "Mailing list is not configured"
// @Router /api/marketing/pre-launch-sign-up [post]
func (ctl *MarketingController) PreLaunchSignUp(c *gin.Context) {
	var req dto.PreLaunchSignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err, &req))
		return
	}
	if err := ctl.marketingSvc.PreLaunchSignUp(c.Request.Context(), &req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, "success")
}
