package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tripplanner/config"
	"tripplanner/models"

	"github.com/charmbracelet/log"
	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// SummaryCache 按用户缓存预算汇总，任何写操作后失效
type SummaryCache interface {
	Get(ctx context.Context, ownerID uint) (*models.TripSummary, bool)
	Set(ctx context.Context, ownerID uint, summary *models.TripSummary)
	Invalidate(ctx context.Context, ownerID uint)
}

func summaryKey(ownerID uint) string {
	return fmt.Sprintf("tripplanner:summary:%d", ownerID)
}

// NewSummaryCache 根据配置选择 redis 或进程内缓存。redis 连不上时退回进程内缓存。
func NewSummaryCache(cfg config.CacheConfig, logger *log.Logger) SummaryCache {
	ttl := cfg.TTL()
	if cfg.Driver != "redis" {
		return NewMemorySummaryCache(ttl)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis连接失败，改用进程内缓存", "addr", cfg.RedisAddr, "error", err)
		_ = client.Close()
		return NewMemorySummaryCache(ttl)
	}
	logger.Info("Redis连接成功", "addr", cfg.RedisAddr)
	return NewRedisSummaryCache(client, ttl, logger)
}

// MemorySummaryCache 进程内缓存
type MemorySummaryCache struct {
	store *gocache.Cache
}

// NewMemorySummaryCache 创建进程内缓存
func NewMemorySummaryCache(ttl time.Duration) *MemorySummaryCache {
	return &MemorySummaryCache{store: gocache.New(ttl, 2*ttl)}
}

func (m *MemorySummaryCache) Get(_ context.Context, ownerID uint) (*models.TripSummary, bool) {
	v, ok := m.store.Get(summaryKey(ownerID))
	if !ok {
		return nil, false
	}
	summary, ok := v.(models.TripSummary)
	if !ok {
		return nil, false
	}
	return &summary, true
}

func (m *MemorySummaryCache) Set(_ context.Context, ownerID uint, summary *models.TripSummary) {
	if summary == nil {
		return
	}
	m.store.SetDefault(summaryKey(ownerID), *summary)
}

func (m *MemorySummaryCache) Invalidate(_ context.Context, ownerID uint) {
	m.store.Delete(summaryKey(ownerID))
}

// RedisSummaryCache redis 缓存，读写失败只记日志，不影响主流程
type RedisSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *log.Logger
}

// NewRedisSummaryCache 创建 redis 缓存
func NewRedisSummaryCache(client *redis.Client, ttl time.Duration, logger *log.Logger) *RedisSummaryCache {
	return &RedisSummaryCache{client: client, ttl: ttl, logger: logger}
}

func (r *RedisSummaryCache) Get(ctx context.Context, ownerID uint) (*models.TripSummary, bool) {
	cached, err := r.client.Get(ctx, summaryKey(ownerID)).Result()
	if err != nil {
		if err != redis.Nil {
			r.logger.Warn("读取汇总缓存失败", "owner", ownerID, "error", err)
		}
		return nil, false
	}
	var summary models.TripSummary
	if err := json.Unmarshal([]byte(cached), &summary); err != nil {
		return nil, false
	}
	return &summary, true
}

func (r *RedisSummaryCache) Set(ctx context.Context, ownerID uint, summary *models.TripSummary) {
	data, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := r.client.SetEx(ctx, summaryKey(ownerID), data, r.ttl).Err(); err != nil {
		r.logger.Warn("写入汇总缓存失败", "owner", ownerID, "error", err)
	}
}

func (r *RedisSummaryCache) Invalidate(ctx context.Context, ownerID uint) {
	if err := r.client.Del(ctx, summaryKey(ownerID)).Err(); err != nil {
		r.logger.Warn("清除汇总缓存失败", "owner", ownerID, "error", err)
	}
}
