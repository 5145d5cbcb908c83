package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ==================== 配置结构 ====================

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int `mapstructure:"read_timeout_sec"`
	WriteTimeoutSec int `mapstructure:"write_timeout_sec"`
	IdleTimeoutSec  int `mapstructure:"idle_timeout_sec"`
}

type App struct {
	Name      string
	Env       string
	PublicURL string `mapstructure:"public_url"` // 邮件链接使用的外部地址
	HTTP      HTTP
}

type Log struct {
	Level      string
	JSON       bool
	File       string // 为空时只输出到 stdout
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool
}

type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLSec int `mapstructure:"access_token_ttl_sec"`
	EmailTokenTTLMin  int `mapstructure:"email_token_ttl_min"`
}

type DB struct {
	DSN                string
	MaxOpenConns       int    `mapstructure:"max_open_conns"`
	MaxIdleConns       int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeMin int    `mapstructure:"conn_max_lifetime_min"`
	AutoMigrate        bool   `mapstructure:"auto_migrate"`
	LogLevel           string `mapstructure:"log_level"`
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type Storage struct {
	Provider         string // "s3" | "local"
	Bucket           string
	Region           string
	AccessKey        string `mapstructure:"access_key"`
	SecretKey        string `mapstructure:"secret_key"`
	Endpoint         string // S3 兼容端点，或本地存储的访问前缀
	CDNDomain        string `mapstructure:"cdn_domain"`
	BasePath         string `mapstructure:"base_path"`
	UploadTimeoutSec int    `mapstructure:"upload_timeout_sec"`
}

type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string `mapstructure:"from_name"`
	TLS      bool
}

type Mailchimp struct {
	APIKey       string `mapstructure:"api_key"`
	ServerPrefix string `mapstructure:"server_prefix"`
	ListID       string `mapstructure:"list_id"`
	BaseURL      string `mapstructure:"base_url"` // 测试时覆盖
}

type MQ struct {
	URL      string // 为空时通知在进程内异步发送
	Exchange string
	Queue    string
	Prefetch int
}

type Limits struct {
	RPS               float64
	Burst             int
	MaxBodyMB         int64 `mapstructure:"max_body_mb"`
	UploadConcurrency int64 `mapstructure:"upload_concurrency"`
	NotifyWorkers     int   `mapstructure:"notify_workers"`
}

type Cron struct {
	ReconcileSpec string `mapstructure:"reconcile_spec"`
}

type Config struct {
	App       App
	Log       Log
	JWT       JWT
	DB        DB
	Redis     Redis
	Storage   Storage
	SMTP      SMTP
	Mailchimp Mailchimp
	MQ        MQ
	Limits    Limits
	Cron      Cron
}

// ==================== 加载 ====================

// Load 读取 YAML 配置，APP_ 前缀的环境变量覆盖同名键 (app.http.port -> APP_APP_HTTP_PORT)
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "marketplace-api")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.public_url", "http://localhost:5006")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 5006)
	v.SetDefault("app.http.read_timeout_sec", 15)
	v.SetDefault("app.http.write_timeout_sec", 60)
	v.SetDefault("app.http.idle_timeout_sec", 120)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file", "")
	v.SetDefault("log.compress", false)
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 7)
	v.SetDefault("log.max_age_days", 30)

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "marketplace-api")
	v.SetDefault("jwt.access_token_ttl_sec", 360000)
	v.SetDefault("jwt.email_token_ttl_min", 24*60)

	v.SetDefault("db.dsn", "host=localhost user=postgres password=postgres dbname=marketplace port=5432 sslmode=disable")
	v.SetDefault("db.max_open_conns", 100)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime_min", 60)
	v.SetDefault("db.auto_migrate", true)
	v.SetDefault("db.log_level", "warn")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("storage.provider", "local")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.region", "")
	v.SetDefault("storage.access_key", "")
	v.SetDefault("storage.secret_key", "")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.cdn_domain", "")
	v.SetDefault("storage.base_path", "./uploads")
	v.SetDefault("storage.upload_timeout_sec", 30)

	v.SetDefault("smtp.host", "localhost")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.username", "")
	v.SetDefault("smtp.password", "")
	v.SetDefault("smtp.from", "noreply@localhost")
	v.SetDefault("smtp.from_name", "My Local Deli")
	v.SetDefault("smtp.tls", true)

	v.SetDefault("mailchimp.api_key", "")
	v.SetDefault("mailchimp.server_prefix", "")
	v.SetDefault("mailchimp.list_id", "")
	v.SetDefault("mailchimp.base_url", "")

	v.SetDefault("mq.url", "")
	v.SetDefault("mq.exchange", "marketplace.events")
	v.SetDefault("mq.queue", "marketplace.notifications")
	v.SetDefault("mq.prefetch", 10)

	v.SetDefault("limits.rps", 20)
	v.SetDefault("limits.burst", 40)
	v.SetDefault("limits.max_body_mb", 16)
	v.SetDefault("limits.upload_concurrency", 8)
	v.SetDefault("limits.notify_workers", 4)

	v.SetDefault("cron.reconcile_spec", "0 */10 * * * *")
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		return errors.New("config: jwt.secret is required")
	}
	switch c.Storage.Provider {
	case "s3", "local":
	default:
		return fmt.Errorf("config: unsupported storage provider %q", c.Storage.Provider)
	}
	return nil
}

// ==================== 便捷方法 ====================

func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.JWT.AccessTokenTTLSec) * time.Second
}

func (c *Config) EmailTokenTTL() time.Duration {
	return time.Duration(c.JWT.EmailTokenTTLMin) * time.Minute
}

func (c *Config) UploadTimeout() time.Duration {
	return time.Duration(c.Storage.UploadTimeoutSec) * time.Second
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
