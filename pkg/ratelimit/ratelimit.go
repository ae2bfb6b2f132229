// Package ratelimit 提供基于 Redis 的滑动窗口限流，目录读接口共用
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
)

// Limiter 限流器
type Limiter interface {
	// Allow 检查指定 key 在给定规则下是否放行
	Allow(ctx context.Context, key string, limit Limit) (*Result, error)
}

// Limit 限流规则：Period 内 Rate 次，突发上限 Burst
type Limit struct {
	Rate   int
	Period time.Duration
	Burst  int
}

// Result 单次限流判定的结果
type Result struct {
	Allowed    bool
	Remaining  int
	ResetAfter time.Duration
	RetryAfter time.Duration
}

// PerSecond 构造每秒 qps 次、突发 burst 的规则
func PerSecond(qps, burst int) Limit {
	return Limit{Rate: qps, Period: time.Second, Burst: burst}
}

type redisLimiter struct {
	limiter *redis_rate.Limiter
}

// NewRedisLimiter 创建基于 redis_rate (GCRA) 的限流器。
// 多实例部署时各实例共享同一份配额。
func NewRedisLimiter(rdb *redis.Client) Limiter {
	return &redisLimiter{limiter: redis_rate.NewLimiter(rdb)}
}

func (r *redisLimiter) Allow(ctx context.Context, key string, limit Limit) (*Result, error) {
	res, err := r.limiter.Allow(ctx, key, redis_rate.Limit{
		Rate:   limit.Rate,
		Period: limit.Period,
		Burst:  limit.Burst,
	})
	if err != nil {
		return nil, fmt.Errorf("rate limit check failed: %w", err)
	}

	return &Result{
		Allowed:    res.Allowed > 0,
		Remaining:  res.Remaining,
		ResetAfter: res.ResetAfter,
		RetryAfter: res.RetryAfter,
	}, nil
}
