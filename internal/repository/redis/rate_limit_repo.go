package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/DRSN-tech/pharmacy-storefront/internal/cfg"
	"github.com/DRSN-tech/pharmacy-storefront/internal/usecase"
	"github.com/DRSN-tech/pharmacy-storefront/pkg/clients"
	"github.com/DRSN-tech/pharmacy-storefront/pkg/e"
	"github.com/DRSN-tech/pharmacy-storefront/pkg/logger"
	"github.com/jimlawless/whereami"
)

// RateLimitRepo считает запросы клиента в фиксированном окне.
type RateLimitRepo struct {
	client *clients.RedisClient
	cfg    *cfg.RedisCfg
	logger logger.Logger
	now    func() time.Time
}

func NewRateLimitRepo(client *clients.RedisClient, cfg *cfg.RedisCfg, logger logger.Logger) *RateLimitRepo {
	return &RateLimitRepo{
		client: client,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// Allow учитывает запрос клиента и сообщает, укладывается ли он в лимит.
// При недоступности Redis запрос пропускается, а ошибка логируется.
func (r *RateLimitRepo) Allow(ctx context.Context, clientKey string) (*usecase.RateQuota, error) {
	window := r.cfg.RateLimitTick
	key := r.windowKey(clientKey, window)

	pipe := r.client.Client.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Warnf("Redis rate limit pipeline failed (key: %s): %v", key, e.Wrap(whereami.WhereAmI(), err))
		return &usecase.RateQuota{Allowed: true, Limit: r.cfg.RateLimit, Remaining: r.cfg.RateLimit}, e.Wrap(whereami.WhereAmI(), err)
	}

	count := int(incr.Val())
	return &usecase.RateQuota{
		Allowed:   count <= r.cfg.RateLimit,
		Limit:     r.cfg.RateLimit,
		Remaining: max(0, r.cfg.RateLimit-count),
		ResetIn:   r.resetIn(window),
	}, nil
}

// windowKey формирует ключ счётчика для текущего окна.
func (r *RateLimitRepo) windowKey(clientKey string, window time.Duration) string {
	bucket := r.now().UnixNano() / max(int64(window), 1)
	return fmt.Sprintf("ratelimit:%s:%d", clientKey, bucket)
}

func (r *RateLimitRepo) resetIn(window time.Duration) time.Duration {
	if window <= 0 {
		return 0
	}

	elapsed := time.Duration(r.now().UnixNano() % int64(window))
	return window - elapsed
}
