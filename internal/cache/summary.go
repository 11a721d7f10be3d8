package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nexusretail/nexus-backend/internal/config"
	"github.com/nexusretail/nexus-backend/internal/domain"
)

const (
	summaryKeyPrefix  = "closing:summary"
	scanBatchSize     = 100
	defaultSummaryTTL = time.Minute
)

// SummaryCache keeps monthly closing aggregates warm for the dashboard.
type SummaryCache interface {
	GetSummary(ctx context.Context, empresaID, lojaID int64, mes string) (*domain.ClosingMonthlySummary, bool, error)
	SetSummary(ctx context.Context, empresaID, lojaID int64, mes string, summary *domain.ClosingMonthlySummary) error
	InvalidateAll(ctx context.Context) error
}

type redisSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopSummaryCache struct{}

func NewSummaryCache(cfg config.CacheConfig) (SummaryCache, error) {
	if !cfg.Enabled {
		return &noopSummaryCache{}, nil
	}

	opts, err := buildRedisOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	ttl := time.Duration(cfg.SummaryTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultSummaryTTL
	}

	return &redisSummaryCache{client: client, ttl: ttl}, nil
}

func NewNoopSummaryCache() SummaryCache {
	return &noopSummaryCache{}
}

func summaryKey(empresaID, lojaID int64, mes string) string {
	return fmt.Sprintf("%s:%d:%d:%s", summaryKeyPrefix, empresaID, lojaID, mes)
}

func (c *redisSummaryCache) GetSummary(ctx context.Context, empresaID, lojaID int64, mes string) (*domain.ClosingMonthlySummary, bool, error) {
	payload, err := c.client.Get(ctx, summaryKey(empresaID, lojaID, mes)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var summary domain.ClosingMonthlySummary
	if err := json.Unmarshal(payload, &summary); err != nil {
		return nil, false, fmt.Errorf("decode summary cache: %w", err)
	}

	return &summary, true, nil
}

func (c *redisSummaryCache) SetSummary(ctx context.Context, empresaID, lojaID int64, mes string, summary *domain.ClosingMonthlySummary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encode summary cache: %w", err)
	}

	if err := c.client.Set(ctx, summaryKey(empresaID, lojaID, mes), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (c *redisSummaryCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, summaryKeyPrefix, scanBatchSize)
}

func (n *noopSummaryCache) GetSummary(ctx context.Context, empresaID, lojaID int64, mes string) (*domain.ClosingMonthlySummary, bool, error) {
	return nil, false, nil
}

func (n *noopSummaryCache) SetSummary(ctx context.Context, empresaID, lojaID int64, mes string, summary *domain.ClosingMonthlySummary) error {
	return nil
}

func (n *noopSummaryCache) InvalidateAll(ctx context.Context) error {
	return nil
}
