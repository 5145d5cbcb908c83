package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"marketplace_api/internal/config"
	"marketplace_api/internal/controller"
	"marketplace_api/internal/repository"
	"marketplace_api/internal/router"
	"marketplace_api/internal/service"
	"marketplace_api/internal/task"
	"marketplace_api/internal/worker"
	"marketplace_api/pkg/auth"
	"marketplace_api/pkg/cache"
	"marketplace_api/pkg/database"
	"marketplace_api/pkg/logger"
	"marketplace_api/pkg/mailchimp"
	"marketplace_api/pkg/mailer"
	"marketplace_api/pkg/mq"
)

// @title						Marketplace API
// @version					1.0
// @description				卖家入驻、社区动态与个人资料接口
// @BasePath					/api
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	app := &cli.App{
		Name:  "marketplace-api",
		Usage: "marketplace backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML 配置文件路径",
				EnvVars: []string{"CONFIG_PATH"},
				Value:   "configs/config.yaml",
			},
		},
		Commands: []*cli.Command{
			{Name: "serve", Usage: "启动 HTTP 服务", Action: runServe},
			{Name: "migrate", Usage: "执行数据库迁移", Action: runMigrate},
			{Name: "worker", Usage: "消费通知队列并发送邮件", Action: runWorker},
			{Name: "reconcile", Usage: "立即执行一次店铺归属巡检", Action: runReconcile},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// ==================== 基础设施 ====================

// runtime 各命令共用的配置与日志
type runtime struct {
	cfg     *config.Config
	log     *zap.Logger
	cleanup func()
}

func bootstrap(c *cli.Context) (*runtime, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	log, cleanup := logger.New(logger.Options{
		Level:      cfg.Log.Level,
		JSON:       cfg.Log.JSON,
		Filename:   cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	})
	return &runtime{cfg: cfg, log: log.With(zap.String("app", cfg.App.Name)), cleanup: cleanup}, nil
}

func (rt *runtime) openDB() (*gorm.DB, error) {
	return database.InitDB(database.Options{
		DSN:             rt.cfg.DB.DSN,
		MaxOpenConns:    rt.cfg.DB.MaxOpenConns,
		MaxIdleConns:    rt.cfg.DB.MaxIdleConns,
		ConnMaxLifetime: time.Duration(rt.cfg.DB.ConnMaxLifetimeMin) * time.Minute,
		LogLevel:        rt.cfg.DB.LogLevel,
	}, rt.log)
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

// ==================== migrate ====================

func runMigrate(c *cli.Context) error {
	rt, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer rt.cleanup()

	db, err := rt.openDB()
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := repository.Migrate(db); err != nil {
		return err
	}
	rt.log.Info("数据库迁移完成")
	return nil
}

// ==================== reconcile ====================

func runReconcile(c *cli.Context) error {
	rt, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer rt.cleanup()

	db, err := rt.openDB()
	if err != nil {
		return err
	}
	defer database.Close(db)

	ctx, cancel := signalContext(c.Context)
	defer cancel()

	res, err := task.NewStoreReconcileTask(repository.NewStoreRepository(db), rt.log).Execute(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("relinked=%d deleted=%d skipped=%d failed=%d\n", res.Relinked, res.Deleted, res.Skipped, res.Failed)
	return nil
}

// ==================== worker ====================

func runWorker(c *cli.Context) error {
	rt, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer rt.cleanup()

	if rt.cfg.MQ.URL == "" {
		return errors.New("worker: mq.url is not configured")
	}
	consumer, err := mq.NewConsumer(rt.cfg.MQ.URL, rt.cfg.MQ.Exchange, rt.cfg.MQ.Queue, worker.NotificationKeys, rt.cfg.MQ.Prefetch)
	if err != nil {
		return err
	}
	defer consumer.Close()

	sender, err := newMailSender(rt)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(c.Context)
	defer cancel()

	deliveries, err := consumer.Deliveries(ctx)
	if err != nil {
		return err
	}

	rt.log.Info("通知 worker 已启动", zap.String("queue", rt.cfg.MQ.Queue))
	w := worker.NewNotificationWorker(service.NewNotificationHandler(sender), rt.cfg.Limits.NotifyWorkers, rt.log)
	err = w.Run(ctx, deliveries)
	rt.log.Info("通知 worker 已停止")
	return err
}

// ==================== serve ====================

func runServe(c *cli.Context) error {
	rt, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer rt.cleanup()
	cfg := rt.cfg

	// 1. 数据库
	db, err := rt.openDB()
	if err != nil {
		return err
	}
	defer database.Close(db)
	if cfg.DB.AutoMigrate {
		if err := repository.Migrate(db); err != nil {
			return err
		}
	}

	// 2. 依赖
	deps, err := initDependencies(rt, db)
	if err != nil {
		return err
	}
	defer deps.close()

	// 3. 定时任务
	tasks := task.NewTaskManager(&task.TaskManagerDeps{
		StoreRepo: deps.Repos.Store,
		Logger:    rt.log,
	}, &task.TaskManagerConfig{
		ReconcileEnabled: true,
		ReconcileSpec:    cfg.Cron.ReconcileSpec,
	})
	if err := tasks.Start(); err != nil {
		return err
	}
	defer tasks.Stop()

	// 4. 路由
	opt := router.Options{
		JWT:               deps.JWT,
		Logger:            rt.log,
		RPS:               cfg.Limits.RPS,
		Burst:             cfg.Limits.Burst,
		MaxBodyBytes:      cfg.Limits.MaxBodyMB << 20,
		UploadConcurrency: cfg.Limits.UploadConcurrency,
	}
	if cfg.Storage.Provider == "local" {
		opt.UploadsDir = cfg.Storage.BasePath
	}
	r := router.SetupRouter(deps.Controllers, opt)

	// 5. 启动服务
	return startServer(c.Context, rt, r)
}

func startServer(parent context.Context, rt *runtime, handler http.Handler) error {
	h := rt.cfg.App.HTTP
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", h.Host, h.Port),
		Handler:      handler,
		ReadTimeout:  time.Duration(h.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(h.WriteTimeoutSec) * time.Second,
		IdleTimeout:  time.Duration(h.IdleTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		rt.log.Info("HTTP 服务启动", zap.String("addr", srv.Addr), zap.String("env", rt.cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ctx, cancel := signalContext(parent)
	defer cancel()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	rt.log.Info("正在关闭服务...")
	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("服务关闭失败: %w", err)
	}
	rt.log.Info("服务已退出")
	return nil
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	JWT         *auth.JWTer
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
	closers     []func()
}

// Repositories 仓库集合
type Repositories struct {
	User    repository.UserRepository
	Store   repository.StoreRepository
	Post    repository.PostRepository
	Profile repository.ProfileRepository
}

// Services 服务集合
type Services struct {
	Auth      *service.AuthService
	Store     *service.StoreService
	Post      *service.PostService
	Profile   *service.ProfileService
	Marketing *service.MarketingService
}

func (d *Dependencies) close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
}

// initDependencies 初始化所有依赖
func initDependencies(rt *runtime, db *gorm.DB) (*Dependencies, error) {
	cfg := rt.cfg
	deps := &Dependencies{
		JWT: &auth.JWTer{
			Secret:   []byte(cfg.JWT.Secret),
			Issuer:   cfg.JWT.Issuer,
			TTL:      cfg.AccessTokenTTL(),
			EmailTTL: cfg.EmailTokenTTL(),
		},
	}

	// -------- Repo 层 --------
	repos := &Repositories{
		User:    repository.NewUserRepository(db),
		Store:   repository.NewStoreRepository(db),
		Post:    repository.NewPostRepository(db),
		Profile: repository.NewProfileRepository(db),
	}
	deps.Repos = repos

	// -------- 基础服务 --------
	ledger := initTokenLedger(rt, deps)

	notifier, err := initNotifier(rt, deps)
	if err != nil {
		deps.close()
		return nil, err
	}

	storage, err := service.NewStorageProvider(service.StorageConfig{
		Provider:  cfg.Storage.Provider,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
		CDNDomain: cfg.Storage.CDNDomain,
		BasePath:  cfg.Storage.BasePath,
	})
	if err != nil {
		deps.close()
		return nil, fmt.Errorf("存储服务初始化失败: %w", err)
	}

	var listClient service.ListClient
	if cfg.Mailchimp.APIKey != "" {
		client, err := mailchimp.New(mailchimp.Options{
			APIKey:       cfg.Mailchimp.APIKey,
			ServerPrefix: cfg.Mailchimp.ServerPrefix,
			BaseURL:      cfg.Mailchimp.BaseURL,
		})
		if err != nil {
			deps.close()
			return nil, fmt.Errorf("mailchimp 初始化失败: %w", err)
		}
		listClient = client
	} else {
		rt.log.Warn("未配置 mailchimp，预注册接口不可用")
	}

	// -------- 业务服务 --------
	svc := &Services{
		Auth:      service.NewAuthService(repos.User, deps.JWT, ledger, notifier, cfg.App.PublicURL, rt.log),
		Store:     service.NewStoreService(repos.User, repos.Store, storage, cfg.UploadTimeout(), rt.log),
		Post:      service.NewPostService(repos.Post, repos.User, repos.Profile),
		Profile:   service.NewProfileService(repos.Profile, repos.User),
		Marketing: service.NewMarketingService(listClient, cfg.Mailchimp.ListID),
	}
	deps.Services = svc

	// -------- Controller 层 --------
	deps.Controllers = &router.Controllers{
		Auth:      controller.NewAuthController(svc.Auth),
		Store:     controller.NewStoreController(svc.Store),
		Post:      controller.NewPostController(svc.Post),
		Profile:   controller.NewProfileController(svc.Profile),
		Marketing: controller.NewMarketingController(svc.Marketing),
	}
	return deps, nil
}

// initTokenLedger redis 不可用时退回进程内存 (仅适合单实例)
func initTokenLedger(rt *runtime, deps *Dependencies) service.TokenLedger {
	if rt.cfg.Redis.Addr == "" {
		rt.log.Warn("未配置 redis，邮件令牌台账使用进程内存")
		return cache.NewMemory()
	}

	rdb := cache.NewRedis(rt.cfg.Redis.Addr, rt.cfg.Redis.Password, rt.cfg.Redis.DB)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx); err != nil {
		rt.log.Warn("redis 连接失败，邮件令牌台账使用进程内存", zap.Error(err))
		_ = rdb.Close()
		return cache.NewMemory()
	}
	deps.closers = append(deps.closers, func() { _ = rdb.Close() })
	return rdb
}

// initNotifier 配置了 MQ 时发布到队列，否则进程内异步发送
func initNotifier(rt *runtime, deps *Dependencies) (service.Notifier, error) {
	cfg := rt.cfg
	if cfg.MQ.URL != "" {
		pub, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
		if err != nil {
			return nil, err
		}
		deps.closers = append(deps.closers, func() { _ = pub.Close() })
		rt.log.Info("通知经由 MQ 投递", zap.String("exchange", cfg.MQ.Exchange))
		return service.NewQueueNotifier(pub), nil
	}

	sender, err := newMailSender(rt)
	if err != nil {
		return nil, err
	}
	async := service.NewAsyncNotifier(service.NewNotificationHandler(sender), cfg.Limits.NotifyWorkers, 256, rt.log)
	deps.closers = append(deps.closers, async.Close)
	return async, nil
}

// newMailSender 未配置 SMTP 主机时只记录日志
func newMailSender(rt *runtime) (service.MailSender, error) {
	s := rt.cfg.SMTP
	if s.Host == "" {
		return service.NewLogSender(rt.log), nil
	}
	m, err := mailer.New(mailer.Options{
		Host:     s.Host,
		Port:     s.Port,
		Username: s.Username,
		Password: s.Password,
		From:     s.From,
		FromName: s.FromName,
		TLS:      s.TLS,
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}
