// Package rediscache caches completed analysis reports in Redis so repeat
// report reads skip the database.
package rediscache

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jobwave/matchengine/internal/domain"
)

const keyPrefix = "report:"

// Cache implements domain.ReportCache on a Redis client.
type Cache struct {
	rdb *redis.Client
}

// New constructs a Cache around the given client.
func New(rdb *redis.Client) *Cache { return &Cache{rdb: rdb} }

// NewFromAddr dials Redis and verifies the connection.
func NewFromAddr(ctx domain.Context, addr string, db int) (*Cache, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("op=cache.ping: %w", err)
	}
	return &Cache{rdb: rdb}, nil
}

// Put stores the report under the run id with the given TTL.
func (c *Cache) Put(ctx domain.Context, runID string, rep domain.JobAnalysisReport, ttl time.Duration) error {
	b, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("op=cache.marshal: %w", err)
	}
	if err := c.rdb.Set(ctx, keyPrefix+runID, b, ttl).Err(); err != nil {
		return fmt.Errorf("op=cache.set: %w", err)
	}
	return nil
}

// Get returns ok=false on a miss. A corrupt cached document is treated as
// a miss so the caller falls through to the store.
func (c *Cache) Get(ctx domain.Context, runID string) (domain.JobAnalysisReport, bool, error) {
	b, err := c.rdb.Get(ctx, keyPrefix+runID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.JobAnalysisReport{}, false, nil
		}
		return domain.JobAnalysisReport{}, false, fmt.Errorf("op=cache.get: %w", err)
	}
	var rep domain.JobAnalysisReport
	if err := json.Unmarshal(b, &rep); err != nil {
		return domain.JobAnalysisReport{}, false, nil
	}
	return rep, true, nil
}

// Close closes the underlying client.
func (c *Cache) Close() error { return c.rdb.Close() }
