package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vouchly/backend/internal/config"
	"github.com/vouchly/backend/internal/models"
	"go.uber.org/zap"
)

// countingPolicy records lookups so tests can tell cache hits from misses
type countingPolicy struct {
	limit int64
	calls int
}

func (p *countingPolicy) LimitBytes(business *models.Business) int64 {
	p.calls++
	return p.limit
}

func newQuotaFixture(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestQuotaLimitSecondLookupServedFromCache(t *testing.T) {
	_, client := newQuotaFixture(t)
	cfg := config.New()
	policy := &countingPolicy{limit: 42}
	svc := NewQuotaService(policy, client, cfg, zap.NewNop())
	business := &models.Business{ID: uuid.New(), Plan: "starter"}

	assert.EqualValues(t, 42, svc.LimitBytes(context.Background(), business))
	assert.EqualValues(t, 42, svc.LimitBytes(context.Background(), business))
	assert.Equal(t, 1, policy.calls)
}

func TestQuotaCacheKeyCarriesConfiguredTTL(t *testing.T) {
	mr, client := newQuotaFixture(t)
	cfg := config.New()
	cfg.QuotaCacheTTL = 2 * time.Minute
	policy := &countingPolicy{limit: 42}
	svc := NewQuotaService(policy, client, cfg, zap.NewNop())
	business := &models.Business{ID: uuid.New(), Plan: "starter"}

	svc.LimitBytes(context.Background(), business)
	key := fmt.Sprintf("quota_limit:%s", business.ID)
	require.True(t, mr.Exists(key))
	assert.Equal(t, cfg.QuotaCacheTTL, mr.TTL(key))

	// once the TTL elapses the policy is consulted again
	mr.FastForward(cfg.QuotaCacheTTL + time.Second)
	svc.LimitBytes(context.Background(), business)
	assert.Equal(t, 2, policy.calls)
}

func TestQuotaCacheFailsOpen(t *testing.T) {
	mr, client := newQuotaFixture(t)
	cfg := config.New()
	policy := &countingPolicy{limit: 42}
	svc := NewQuotaService(policy, client, cfg, zap.NewNop())
	business := &models.Business{ID: uuid.New(), Plan: "starter"}

	mr.Close()
	assert.EqualValues(t, 42, svc.LimitBytes(context.Background(), business))
	assert.Equal(t, 1, policy.calls)
}

func TestQuotaLimitWithoutRedis(t *testing.T) {
	policy := &countingPolicy{limit: 42}
	svc := NewQuotaService(policy, nil, config.New(), zap.NewNop())
	business := &models.Business{ID: uuid.New(), Plan: "starter"}

	assert.EqualValues(t, 42, svc.LimitBytes(context.Background(), business))
	assert.EqualValues(t, 42, svc.LimitBytes(context.Background(), business))
	assert.Equal(t, 2, policy.calls)
}

func TestQuotaInvalidateDropsCachedLimit(t *testing.T) {
	_, client := newQuotaFixture(t)
	cfg := config.New()
	policy := &countingPolicy{limit: 42}
	svc := NewQuotaService(policy, client, cfg, zap.NewNop())
	business := &models.Business{ID: uuid.New(), Plan: "starter"}

	assert.EqualValues(t, 42, svc.LimitBytes(context.Background(), business))

	// plan upgrade pushed from billing: invalidate, next lookup sees the new limit
	policy.limit = 4242
	svc.Invalidate(context.Background(), business.ID.String())
	assert.EqualValues(t, 4242, svc.LimitBytes(context.Background(), business))
	assert.Equal(t, 2, policy.calls)
}
