package training

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fitra/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
)

const (
	latestRecordKey  = "training::latest"
	DefaultLatestTTL = 24 * time.Hour
)

// LatestCache keeps the most recently analyzed record in redis.
type LatestCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewLatestCache(rdb *redis.Client, ttl time.Duration) *LatestCache {
	if ttl <= 0 {
		ttl = DefaultLatestTTL
	}
	return &LatestCache{
		rdb: rdb,
		ttl: ttl,
	}
}

// Get returns nil, nil on a cache miss.
func (c *LatestCache) Get(ctx context.Context) (_ *Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "cache.training.latest.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	val, err := c.rdb.Get(ctx, latestRecordKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get latest record: %w", err)
	}

	var record Record
	if err := json.Unmarshal([]byte(val), &record); err != nil {
		return nil, fmt.Errorf("unmarshal latest record: %w", err)
	}
	return &record, nil
}

func (c *LatestCache) Set(ctx context.Context, record Record) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "cache.training.latest.set")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	recordJson, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal latest record: %w", err)
	}
	if err := c.rdb.Set(ctx, latestRecordKey, string(recordJson), c.ttl).Err(); err != nil {
		return fmt.Errorf("set latest record: %w", err)
	}
	return nil
}
