package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/equify/equify-backend/internal/logger"
	"github.com/equify/equify-backend/internal/types"
	"github.com/equify/equify-backend/internal/utils"
)

// StatsCache holds per-user dashboard aggregates. Writes to favors,
// relationships, or recommendations invalidate the owning user's entry.
// Cache trouble is never fatal; callers fall through to Postgres.
type StatsCache interface {
	GetDashboardStats(ctx context.Context, userID uuid.UUID) (*types.DashboardStats, bool)
	SetDashboardStats(ctx context.Context, userID uuid.UUID, stats *types.DashboardStats)
	Invalidate(ctx context.Context, userID uuid.UUID)
	Close() error
}

type statsCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewStatsCache(log *logger.Logger) (StatsCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	ttlSeconds := utils.GetEnvAsInt("STATS_CACHE_TTL_SECONDS", 300, log)

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &statsCache{
		log: log.With("service", "RedisStatsCache"),
		rdb: rdb,
		ttl: time.Duration(ttlSeconds) * time.Second,
	}, nil
}

func statsKey(userID uuid.UUID) string {
	return "equify:dashboard_stats:" + userID.String()
}

func (c *statsCache) GetDashboardStats(ctx context.Context, userID uuid.UUID) (*types.DashboardStats, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, statsKey(userID)).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Warn("Stats cache read failed", "error", err)
		}
		return nil, false
	}
	var stats types.DashboardStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		c.log.Warn("Bad stats cache payload, dropping", "error", err)
		_ = c.rdb.Del(ctx, statsKey(userID)).Err()
		return nil, false
	}
	return &stats, true
}

func (c *statsCache) SetDashboardStats(ctx context.Context, userID uuid.UUID, stats *types.DashboardStats) {
	if c == nil || c.rdb == nil || stats == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, statsKey(userID), raw, c.ttl).Err(); err != nil {
		c.log.Warn("Stats cache write failed", "error", err)
	}
}

func (c *statsCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, statsKey(userID)).Err(); err != nil {
		c.log.Warn("Stats cache invalidation failed", "error", err)
	}
}

func (c *statsCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
