// Package cache 排行榜结果的 Redis 缓存
// 未配置 Redis 时所有操作直接穿透，调用方不需要判断
package cache

import (
	"citizens-link/config"
	"citizens-link/internal/global/sentry/tracing"
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	// KeyRankings 完整排行榜（已排序的 ranking.Entry 列表）
	KeyRankings = "citizens-link:rankings"
	// KeyRankingsGen 每次失效加一，刷新期间变化说明写入的结果已过期
	KeyRankingsGen = "citizens-link:rankings:gen"
)

var Client *redis.Client

// ErrMiss 缓存未命中或未启用缓存
var ErrMiss = errors.New("cache miss")

func Init() error {
	cfg := config.Get().Redis
	if !cfg.Enabled() {
		return nil
	}
	port := cfg.Port
	if port == "" {
		port = "6379"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if tracing.IsEnabled() {
		client.AddHook(tracing.NewRedisSentryHook())
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return errors.Wrap(err, "连接 Redis 失败")
	}
	Client = client
	return nil
}

func Close() {
	if Client != nil {
		_ = Client.Close()
	}
}

func GetJSON(ctx context.Context, key string, dst any) error {
	if Client == nil {
		return ErrMiss
	}
	raw, err := Client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return ErrMiss
	}
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(json.Unmarshal(raw, dst))
}

func SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if Client == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(Client.Set(ctx, key, raw, ttl).Err())
}

func Del(ctx context.Context, keys ...string) error {
	if Client == nil {
		return nil
	}
	return errors.WithStack(Client.Del(ctx, keys...).Err())
}

// GetInt key 不存在时返回 0
func GetInt(ctx context.Context, key string) (int64, error) {
	if Client == nil {
		return 0, nil
	}
	n, err := Client.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return n, errors.WithStack(err)
}

func Incr(ctx context.Context, key string) error {
	if Client == nil {
		return nil
	}
	return errors.WithStack(Client.Incr(ctx, key).Err())
}
