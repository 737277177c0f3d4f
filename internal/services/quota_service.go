package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/vouchly/backend/internal/config"
	"github.com/vouchly/backend/internal/models"
	"go.uber.org/zap"
)

// PlanPolicy supplies the storage limit for a tenant's billing plan. The
// authoritative mapping lives in billing; this core only consumes it.
type PlanPolicy interface {
	LimitBytes(business *models.Business) int64
}

// ConfigPlanPolicy maps plan tiers to limits from static configuration
type ConfigPlanPolicy struct {
	cfg *config.Config
}

func NewConfigPlanPolicy(cfg *config.Config) *ConfigPlanPolicy {
	return &ConfigPlanPolicy{cfg: cfg}
}

func (p *ConfigPlanPolicy) LimitBytes(business *models.Business) int64 {
	return p.cfg.QuotaBytesForPlan(business.Plan)
}

// QuotaService fronts the plan policy with a Redis cache whose TTL comes
// from configuration. Cache misses and Redis outages fall through to the
// policy, so a stale or absent cache never blocks a lookup.
type QuotaService struct {
	policy PlanPolicy
	redis  *redis.Client
	cfg    *config.Config
	log    *zap.Logger
}

func NewQuotaService(policy PlanPolicy, redisClient *redis.Client, cfg *config.Config, log *zap.Logger) *QuotaService {
	return &QuotaService{policy: policy, redis: redisClient, cfg: cfg, log: log}
}

// LimitBytes returns the tenant's storage limit, cached for QuotaCacheTTL
func (q *QuotaService) LimitBytes(ctx context.Context, business *models.Business) int64 {
	key := fmt.Sprintf("quota_limit:%s", business.ID)

	if q.redis != nil {
		if val, err := q.redis.Get(ctx, key).Result(); err == nil {
			if limit, perr := strconv.ParseInt(val, 10, 64); perr == nil {
				return limit
			}
		} else if err != redis.Nil {
			q.log.Warn("quota cache read failed", zap.Error(err))
		}
	}

	limit := q.policy.LimitBytes(business)

	if q.redis != nil {
		if err := q.redis.Set(ctx, key, strconv.FormatInt(limit, 10), q.cfg.QuotaCacheTTL).Err(); err != nil {
			q.log.Warn("quota cache write failed", zap.Error(err))
		}
	}
	return limit
}

// Invalidate drops a tenant's cached limit, for plan changes pushed from billing
func (q *QuotaService) Invalidate(ctx context.Context, businessID string) {
	if q.redis == nil {
		return
	}
	if err := q.redis.Del(ctx, fmt.Sprintf("quota_limit:%s", businessID)).Err(); err != nil {
		q.log.Warn("quota cache invalidation failed", zap.Error(err))
	}
}
