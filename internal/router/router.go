package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/time/rate"

	"marketplace_api/internal/controller"
	"marketplace_api/internal/middleware"
	"marketplace_api/pkg/auth"

	_ "marketplace_api/docs"
)

// Controllers 控制器集合
type Controllers struct {
	Auth      *controller.AuthController
	Store     *controller.StoreController
	Post      *controller.PostController
	Profile   *controller.ProfileController
	Marketing *controller.MarketingController
}

// Options 路由级配置
type Options struct {
	JWT               *auth.JWTer
	Logger            *zap.Logger
	RPS               float64
	Burst             int
	MaxBodyBytes      int64
	UploadConcurrency int64
	UploadsDir        string // 本地存储时对外提供 /uploads
}

// SetupRouter 构建 gin 引擎并注册全部路由
func SetupRouter(ctl *Controllers, opt Options) *gin.Engine {
	controller.SetupValidator()

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(ginzap.GinzapWithConfig(opt.Logger, &ginzap.Config{
		TimeFormat: time.RFC3339,
		UTC:        true,
		SkipPaths:  []string{"/healthz", "/metrics"},
		Context: func(c *gin.Context) []zapcore.Field {
			return []zapcore.Field{zap.String("rid", middleware.GetRequestID(c))}
		},
	}))
	r.Use(ginzap.RecoveryWithZap(opt.Logger, true))
	r.Use(cors.New(corsConfig()))
	r.Use(middleware.Metrics())

	// 1. 运维路由
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if opt.UploadsDir != "" {
		r.Static("/uploads", opt.UploadsDir)
	}

	// 2. API 路由组
	api := r.Group("/api")
	if opt.RPS > 0 {
		api.Use(middleware.RateLimitPerIP(middleware.NewIPRateLimiter(rate.Limit(opt.RPS), opt.Burst)))
	}
	if opt.MaxBodyBytes > 0 {
		api.Use(middleware.MaxBodyBytes(opt.MaxBodyBytes))
	}
	requireAuth := middleware.JWTAuth(opt.JWT)

	api.GET("", func(c *gin.Context) { c.String(http.StatusOK, "API Running") })

	// auth 鉴权组
	authGroup := api.Group("/auth")
	{
		authGroup.GET("", requireAuth, ctl.Auth.GetMe)
		authGroup.POST("/register", ctl.Auth.Register)
		authGroup.POST("/login", ctl.Auth.Login)
		authGroup.GET("/confirm-email/:token", ctl.Auth.ConfirmEmail)
		authGroup.POST("/resend-confirm-email", requireAuth, ctl.Auth.ResendConfirmEmail)
		authGroup.POST("/forgot-password", ctl.Auth.ForgotPassword)
		authGroup.POST("/reset-password/:token", ctl.Auth.ResetPassword)
	}

	// store 店铺入驻
	store := api.Group("/store", requireAuth)
	{
		store.GET("", ctl.Store.GetStore)

		setup := store.Group("/setup")
		setup.POST("/step-1/new", ctl.Store.CreateCompanyInfo)
		setup.POST("/step-1/update", ctl.Store.UpdateCompanyInfo)
		// 图片处理占用内存，单独限制并发
		setup.POST("/step-2", uploadLimit(opt.UploadConcurrency), ctl.Store.UpdateMedia)
		setup.POST("/check-store-name", ctl.Store.CheckStoreName)
		setup.POST("/check-store-url", ctl.Store.CheckStoreURL)
	}

	// posts 动态
	posts := api.Group("/posts", requireAuth)
	{
		posts.POST("", ctl.Post.Create)
		posts.GET("", ctl.Post.List)
		posts.GET("/:id", ctl.Post.Get)
		posts.DELETE("/:id", ctl.Post.Delete)
		posts.GET("/user/:user_id", ctl.Post.ListByUser)
		posts.PUT("/like/:id", ctl.Post.Like)
		posts.PUT("/unlike/:id", ctl.Post.Unlike)
		posts.POST("/comment/:id", ctl.Post.Comment)
		posts.DELETE("/comment/:post_id/:comment_id", ctl.Post.DeleteComment)
	}

	// profile 个人资料
	profile := api.Group("/profile")
	{
		profile.GET("", ctl.Profile.List)
		profile.GET("/user/:user_id", ctl.Profile.GetByUser)
		profile.GET("/me", requireAuth, ctl.Profile.GetMine)
		profile.GET("/me/:field", requireAuth, ctl.Profile.GetField)
		profile.POST("", requireAuth, ctl.Profile.Upsert)
		profile.DELETE("", requireAuth, ctl.Profile.DeleteAccount)
	}

	// marketing 营销
	api.POST("/marketing/pre-launch-sign-up", ctl.Marketing.PreLaunchSignUp)

	return r
}

func uploadLimit(n int64) gin.HandlerFunc {
	if n <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return middleware.ConcurrencyLimit(n)
}

func corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowAllOrigins = true
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", "x-auth-token", middleware.KeyRequestID)
	cfg.ExposeHeaders = []string{middleware.KeyRequestID}
	return cfg
}
