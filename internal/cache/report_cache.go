package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ebolarium/baplikasyon/internal/persistence"
)

// ReportCache keeps rendered report summaries per user so repeated
// dashboard loads do not recompute aggregates. All failures degrade to a
// cache miss; the store stays the source of truth.
type ReportCache struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration
}

// NewReportCache wraps the shared redis client.
func NewReportCache(r *persistence.Redis, logger *zap.Logger, ttl time.Duration) *ReportCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	var client *redis.Client
	if r != nil {
		client = r.Client
	}
	return &ReportCache{client: client, logger: logger, ttl: ttl}
}

func summaryKey(userID string) string {
	return "report:summary:" + userID
}

// GetSummary returns the cached summary JSON for a user, or false on miss.
func (c *ReportCache) GetSummary(ctx context.Context, userID string) ([]byte, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	val, err := c.client.Get(ctx, summaryKey(userID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("report cache get failed", zap.Error(err))
		}
		return nil, false
	}
	return val, true
}

// SetSummary stores the summary JSON for a user.
func (c *ReportCache) SetSummary(ctx context.Context, userID string, payload []byte) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Set(ctx, summaryKey(userID), payload, c.ttl).Err(); err != nil {
		c.logger.Warn("report cache set failed", zap.Error(err))
	}
}

// Invalidate drops the cached summary after a case mutation.
func (c *ReportCache) Invalidate(ctx context.Context, userID string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, summaryKey(userID)).Err(); err != nil {
		c.logger.Warn("report cache invalidate failed", zap.Error(err))
	}
}
