// Package cache stores the last good upstream payloads in Redis so a
// restarted server can render something before its first fetch resolves,
// and an upstream outage degrades to stale data instead of an empty page.
// Opt-in: with the cache disabled a failed fetch simply leaves its section
// empty. Nothing here retries upstream.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/withlaguna/stonks-page/internal/models"
)

// ErrMiss is returned when no cached payload exists for a key.
var ErrMiss = errors.New("cache miss")

// Snapshots caches upstream payloads per subscriber.
type Snapshots struct {
	rdb *redis.Client
	ttl time.Duration
}

// New connects a Snapshots cache to Redis.
func New(addr string, ttl time.Duration) *Snapshots {
	return &Snapshots{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
		ttl: ttl,
	}
}

// Ping checks Redis connectivity.
func (s *Snapshots) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// Close releases the Redis connection.
func (s *Snapshots) Close() error {
	return s.rdb.Close()
}

// SaveHoldings stores a holdings snapshot.
func (s *Snapshots) SaveHoldings(ctx context.Context, sub string, holdings []models.Holding) error {
	return s.set(ctx, key("holdings", sub), holdings)
}

// LoadHoldings retrieves the cached holdings snapshot.
func (s *Snapshots) LoadHoldings(ctx context.Context, sub string) ([]models.Holding, error) {
	var holdings []models.Holding
	if err := s.getJSON(ctx, key("holdings", sub), &holdings); err != nil {
		return nil, err
	}
	return holdings, nil
}

// SaveTrades stores a trades snapshot.
func (s *Snapshots) SaveTrades(ctx context.Context, sub string, trades []models.Trade) error {
	return s.set(ctx, key("trades", sub), trades)
}

// LoadTrades retrieves the cached trades snapshot.
func (s *Snapshots) LoadTrades(ctx context.Context, sub string) ([]models.Trade, error) {
	var trades []models.Trade
	if err := s.getJSON(ctx, key("trades", sub), &trades); err != nil {
		return nil, err
	}
	return trades, nil
}

// SaveProfile stores a user profile.
func (s *Snapshots) SaveProfile(ctx context.Context, sub string, profile models.UserProfile) error {
	return s.set(ctx, key("userinfo", sub), profile)
}

// LoadProfile retrieves the cached user profile.
func (s *Snapshots) LoadProfile(ctx context.Context, sub string) (models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.getJSON(ctx, key("userinfo", sub), &profile); err != nil {
		return models.UserProfile{}, err
	}
	return profile, nil
}

func (s *Snapshots) set(ctx context.Context, k string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal cache payload: %w", err)
	}
	if err := s.rdb.Set(ctx, k, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache key %s: %w", k, err)
	}
	return nil
}

func (s *Snapshots) getJSON(ctx context.Context, k string, out any) error {
	data, err := s.rdb.Get(ctx, k).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return fmt.Errorf("failed to read cache key %s: %w", k, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal cache key %s: %w", k, err)
	}
	return nil
}

func key(kind, sub string) string {
	return "stonks:" + kind + ":" + sub
}
