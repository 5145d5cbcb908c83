package controller

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace_api/internal/api/dto"
	"marketplace_api/internal/middleware"
	"marketplace_api/internal/model"
	"marketplace_api/internal/service"
)

// 单张图片上限
const maxImageBytes = 10 << 20

type StoreController struct {
	storeSvc *service.StoreService
}

func NewStoreController(storeSvc *service.StoreService) *StoreController {
	return &StoreController{storeSvc: storeSvc}
}

// GetStore 当前用户的店铺
// @Summary 获取我的店铺
// @Description 无店铺时只返回 store_status=NONE
// @Tags Store (店铺入驻)
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StoreStatusResponse
// @Failure 404 {object} MessageBody "User doesnt exist"
// @Router /api/store [get]
func (ctl *StoreController) GetStore(c *gin.Context) {
	resp, err := ctl.storeSvc.GetStore(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateCompanyInfo 第一步：新建店铺
// @Summary 入驻第一步 (新建)
// @Description 创建店铺并把当前用户设为 super_admin，每个用户只能创建一次
// @Tags Store (店铺入驻)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.StoreCompanyRequest true "公司信息"
// @Success 200 {object} dto.CreateStoreResponse
// @Failure 400 {object} MessageBody "校验失败"
// @Failure 404 {object} MessageBody "User not found"
// @Failure 409 {object} MessageBody "User already has an associated store"
// @Router /api/store/setup/step-1/new [post]
func (ctl *StoreController) CreateCompanyInfo(c *gin.Context) {
	var req dto.StoreCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err, &req))
		return
	}

	resp, err := ctl.storeSvc.CreateCompanyInfo(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateCompanyInfo 第一步：更新公司信息
// @Summary 入驻第一步 (更新)
// @Tags Store (店铺入驻)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.StoreCompanyRequest true "公司信息"
// @Success 200 {object} dto.StoreStatusResponse
// @Failure 403 {object} MessageBody "Not authorized to edit this store"
// @Failure 404 {object} MessageBody "User has no store to update"
// @Router /api/store/setup/step-1/update [post]
func (ctl *StoreController) UpdateCompanyInfo(c *gin.Context) {
	var req dto.StoreCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err, &req))
		return
	}

	resp, err := ctl.storeSvc.UpdateCompanyInfo(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateMedia 第二步：店铺资料与图片
// @Summary 入驻第二步
// @Description multipart 表单，头像缩放为 500x500 后与封面并发上传
// @Tags Store (店铺入驻)
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param store_name formData string true "店铺名"
// @Param store_url formData string true "店铺 URL"
// @Param bio formData string true "简介"
// @Param email formData string true "联系邮箱"
// @Param contact_number formData string true "联系电话"
// @Param profile_image formData file true "头像"
// @Param cover_photo formData file true "封面"
// @Success 200 {string} string "success"
// @Failure 400 {object} MessageBody "Missing images"
// @Failure 403 {object} MessageBody "Not authorized to edit this store"
// @Failure 409 {object} MessageBody "Store name already exists"
// @Failure 502 {object} MessageBody "Image upload failed"
// @Router /api/store/setup/step-2 [post]
func (ctl *StoreController) UpdateMedia(c *gin.Context) {
	var req dto.StoreMediaRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, bindError(err, &req))
		return
	}

	profile, err := readImage(c, model.StoreImageProfile)
	if err != nil {
		respondError(c, err)
		return
	}
	cover, err := readImage(c, model.StoreImageCover)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := ctl.storeSvc.UpdateMedia(c.Request.Context(), middleware.GetUserID(c), &req, profile, cover); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, "success")
}

// readImage 文件缺失时返回 nil，由服务层统一判定 Missing images
func readImage(c *gin.Context, field string) (*service.ImageFile, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}
	if fh.Size > maxImageBytes {
		return nil, &service.ValidationError{Messages: []string{"Image is too large"}}
	}
	data, err := readFileHeader(fh)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", field, err)
	}
	return &service.ImageFile{Data: data, DeclaredType: fh.Header.Get("Content-Type")}, nil
}

func readFileHeader(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, maxImageBytes))
}

// CheckStoreName 店铺名是否可用
// @Summary 检查店铺名
// @Tags Store (店铺入驻)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CheckStoreNameRequest true "店铺名"
// @Success 200 {string} string "Name is available"
// @Failure 409 {object} MessageBody "Store name already exists"
// @Router /api/store/setup/check-store-name [post]
func (ctl *StoreController) CheckStoreName(c *gin.Context) {
	var req dto.CheckStoreNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err, &req))
		return
	}
	if err := ctl.storeSvc.CheckStoreName(c.Request.Context(), req.StoreName); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, "Name is available")
}

// CheckStoreURL 店铺 URL 是否可用
// @Summary 检查店铺 URL
// @Description 先规范化为小写并以 - 替换空白
// @Tags Store (店铺入驻)
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CheckStoreURLRequest true "店铺 URL"
// @Success 200 {string} string "URL is available"
// @Failure 409 {object} MessageBody "URL already exists"
// @Router /api/store/setup/check-store-url [post]
func (ctl *StoreController) CheckStoreURL(c *gin.Context) {
	var req dto.CheckStoreURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err, &req))
		return
	}
	if err := ctl.storeSvc.CheckStoreURL(c.Request.Context(), req.StoreURL); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, "URL is available")
}
