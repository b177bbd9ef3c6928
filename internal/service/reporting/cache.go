package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"poultryfarm/internal/domain/models"
)

// CachedService memoizes the read-only reports for a bounded TTL,
// keyed by the full request signature. Analytics generation writes and
// is never cached; listings bypass the cache so fresh snapshots are
// always visible.
type CachedService struct {
	inner Reports
	cache *expirable.LRU[string, any]
}

// NewCachedService decorates inner with an expiring LRU of at most
// size entries.
func NewCachedService(inner Reports, size int, ttl time.Duration) *CachedService {
	return &CachedService{
		inner: inner,
		cache: expirable.NewLRU[string, any](size, nil, ttl),
	}
}

// Financial serves the cached report when present, computing and
// storing it otherwise.
func (c *CachedService) Financial(ctx context.Context, q FinancialQuery) (*models.FinancialReport, error) {
	key := fmt.Sprintf("financial|%s|%s|%s|%t", q.FarmID, stampKey(q.From), stampKey(q.To), q.Detailed)
	if cached, ok := c.cache.Get(key); ok {
		return cached.(*models.FinancialReport), nil
	}

	report, err := c.inner.Financial(ctx, q)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, report)
	return report, nil
}

// Health serves the cached report when present, computing and storing
// it otherwise.
func (c *CachedService) Health(ctx context.Context, farmID string) (*models.HealthReport, error) {
	key := "health|" + farmID
	if cached, ok := c.cache.Get(key); ok {
		return cached.(*models.HealthReport), nil
	}

	report, err := c.inner.Health(ctx, farmID)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, report)
	return report, nil
}

// GenerateAnalytics always delegates; it mutates the analytics store.
func (c *CachedService) GenerateAnalytics(ctx context.Context, farmID, period string) (*models.Analytics, error) {
	return c.inner.GenerateAnalytics(ctx, farmID, period)
}

// ListAnalytics always delegates.
func (c *CachedService) ListAnalytics(ctx context.Context, farmID string) ([]models.Analytics, error) {
	return c.inner.ListAnalytics(ctx, farmID)
}

func stampKey(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.UTC().Format(time.RFC3339)
}
