package ruleset

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	id "shiftwise/pkg/domain"
)

// NameSource resolves the rule-set name assigned to a tenant.
type NameSource interface {
	RuleSetFor(ctx context.Context, tenantID id.TenantID) (string, error)
}

// CacheMetrics receives cache lookup outcomes ("hit", "miss", "error").
type CacheMetrics interface {
	IncrementCacheLookup(result string)
}

// CachedNameSource decorates a NameSource with a Redis cache so hot
// evaluation paths avoid a tenant lookup per request. Redis failures fall
// through to the underlying source; the cache is an optimization, never a
// source of truth.
type CachedNameSource struct {
	source  NameSource
	rdb     redis.UniversalClient
	ttl     time.Duration
	logger  *slog.Logger
	metrics CacheMetrics
}

type CacheOption func(*CachedNameSource)

func WithCacheLogger(logger *slog.Logger) CacheOption {
	return func(c *CachedNameSource) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithCacheMetrics(metrics CacheMetrics) CacheOption {
	return func(c *CachedNameSource) {
		c.metrics = metrics
	}
}

// NewCachedNameSource wraps source with a Redis cache. A nil client disables
// caching and every lookup passes through.
func NewCachedNameSource(source NameSource, rdb redis.UniversalClient, ttl time.Duration, opts ...CacheOption) *CachedNameSource {
	c := &CachedNameSource{
		source: source,
		rdb:    rdb,
		ttl:    ttl,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func cacheKey(tenantID id.TenantID) string {
	return "shiftwise:tenant_ruleset:" + tenantID.String()
}

func (c *CachedNameSource) RuleSetFor(ctx context.Context, tenantID id.TenantID) (string, error) {
	if c.rdb == nil {
		return c.source.RuleSetFor(ctx, tenantID)
	}

	key := cacheKey(tenantID)
	name, err := c.rdb.Get(ctx, key).Result()
	switch {
	case err == nil:
		c.countLookup("hit")
		return name, nil
	case err == redis.Nil:
		c.countLookup("miss")
	default:
		c.countLookup("error")
		c.logger.WarnContext(ctx, "rule set cache read failed",
			"tenant_id", tenantID,
			"error", err,
		)
	}

	name, err = c.source.RuleSetFor(ctx, tenantID)
	if err != nil {
		return "", err
	}
	if err := c.rdb.Set(ctx, key, name, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "rule set cache write failed",
			"tenant_id", tenantID,
			"error", err,
		)
	}
	return name, nil
}

// Invalidate drops the cached assignment for a tenant. Call after rule-set
// reassignment so stale entries never outlive the TTL.
func (c *CachedNameSource) Invalidate(ctx context.Context, tenantID id.TenantID) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, cacheKey(tenantID)).Err()
}

func (c *CachedNameSource) countLookup(result string) {
	if c.metrics != nil {
		c.metrics.IncrementCacheLookup(result)
	}
}
