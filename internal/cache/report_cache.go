package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/dermaline/studio-scheduler/internal/domain/retention"
)

const (
	reportKey = "retention:report"
	reportTTL = 60 * time.Second
)

// ReportCache keeps the last computed retention report for a short TTL.
// The engine itself stays recompute-on-read; the cache only absorbs
// repeated reads. Redis being down never fails a request.
type ReportCache struct {
	rdb *redis.Client
	log *zap.Logger
}

func NewReportCache(rdb *redis.Client, log *zap.Logger) *ReportCache {
	return &ReportCache{rdb: rdb, log: log}
}

func (c *ReportCache) Get(ctx context.Context) (*retention.Report, bool) {
	if c.rdb == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, reportKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("report cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var report retention.Report
	if err := json.Unmarshal(raw, &report); err != nil {
		c.log.Warn("report cache decode failed", zap.Error(err))
		return nil, false
	}
	return &report, true
}

func (c *ReportCache) Set(ctx context.Context, report *retention.Report) {
	if c.rdb == nil {
		return
	}

	raw, err := json.Marshal(report)
	if err != nil {
		c.log.Warn("report cache encode failed", zap.Error(err))
		return
	}

	if err := c.rdb.Set(ctx, reportKey, raw, reportTTL).Err(); err != nil {
		c.log.Warn("report cache write failed", zap.Error(err))
	}
}

// Invalidate drops the cached report after any lifecycle mutation.
func (c *ReportCache) Invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, reportKey).Err(); err != nil {
		c.log.Warn("report cache invalidate failed", zap.Error(err))
	}
}
