package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis 一次性令牌台账，key 存在即未被使用
type Redis struct {
	RDB    *redis.Client
	prefix string
}

// NewRedis 创建 Redis 台账
func NewRedis(addr, pass string, db int) *Redis {
	return &Redis{
		RDB:    redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
		prefix: "token:",
	}
}

// Ping 启动时检查连通性
func (r *Redis) Ping(ctx context.Context) error {
	return r.RDB.Ping(ctx).Err()
}

// Record 登记令牌，ttl 与令牌有效期一致
func (r *Redis) Record(ctx context.Context, id string, ttl time.Duration) error {
	return r.RDB.Set(ctx, r.prefix+id, 1, ttl).Err()
}

// Consume 删除成功即首次使用
func (r *Redis) Consume(ctx context.Context, id string) (bool, error) {
	n, err := r.RDB.Del(ctx, r.prefix+id).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// Close 关闭连接
func (r *Redis) Close() error {
	return r.RDB.Close()
}
