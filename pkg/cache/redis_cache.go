package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"parking-backend/internal/models"
	"parking-backend/pkg/redis"

	redisClient "github.com/redis/go-redis/v9"
)

// RedisCacheManager implements CacheManager on top of Redis.
type RedisCacheManager struct {
	rdb    *redisClient.Client
	config CacheConfig
	stats  *cacheStats
	ctx    context.Context
}

type cacheStats struct {
	mu          sync.RWMutex
	totalHits   int64
	totalMisses int64
}

func NewRedisCacheManager(client *redis.Client, config CacheConfig) *RedisCacheManager {
	return newManager(client.GetClient(), config)
}

// NewRedisCacheManagerWithClient wires an explicit go-redis client; tests
// use it with miniredis.
func NewRedisCacheManagerWithClient(rdb *redisClient.Client, config CacheConfig) *RedisCacheManager {
	return newManager(rdb, config)
}

func newManager(rdb *redisClient.Client, config CacheConfig) *RedisCacheManager {
	return &RedisCacheManager{
		rdb:    rdb,
		config: config,
		stats:  &cacheStats{},
		ctx:    context.Background(),
	}
}

func (r *RedisCacheManager) buildKey(kind, id string) string {
	return fmt.Sprintf("%s%s:%s", r.config.KeyPrefix, kind, id)
}

// GetTariffRules returns the cached active rule set for a vehicle type.
// The whole set is stored as one value, so a reader always sees one
// consistent snapshot, never half of an update.
func (r *RedisCacheManager) GetTariffRules(vehicleTypeID string) ([]*models.TariffRule, error) {
	key := r.buildKey("tariff_rules", vehicleTypeID)

	data, err := r.rdb.Get(r.ctx, key).Result()
	if err != nil {
		if err == redisClient.Nil {
			r.recordMiss()
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tariff rules from cache: %w", err)
	}

	var rules []*models.TariffRule
	if err := json.Unmarshal([]byte(data), &rules); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tariff rules: %w", err)
	}

	r.recordHit()
	return rules, nil
}

func (r *RedisCacheManager) SetTariffRules(vehicleTypeID string, rules []*models.TariffRule, ttl time.Duration) error {
	key := r.buildKey("tariff_rules", vehicleTypeID)

	data, err := json.Marshal(rules)
	if err != nil {
		return fmt.Errorf("failed to marshal tariff rules: %w", err)
	}

	if err := r.rdb.Set(r.ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set tariff rules in cache: %w", err)
	}

	return nil
}

func (r *RedisCacheManager) InvalidateTariffRules(vehicleTypeID string) error {
	return r.rdb.Del(r.ctx, r.buildKey("tariff_rules", vehicleTypeID)).Err()
}

func (r *RedisCacheManager) GetVehicleType(id string) (*models.VehicleType, error) {
	key := r.buildKey("vehicle_type", id)

	data, err := r.rdb.Get(r.ctx, key).Result()
	if err != nil {
		if err == redisClient.Nil {
			r.recordMiss()
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get vehicle type from cache: %w", err)
	}

	var vt models.VehicleType
	if err := json.Unmarshal([]byte(data), &vt); err != nil {
		return nil, fmt.Errorf("failed to unmarshal vehicle type: %w", err)
	}

	r.recordHit()
	return &vt, nil
}

func (r *RedisCacheManager) SetVehicleType(id string, vt *models.VehicleType, ttl time.Duration) error {
	key := r.buildKey("vehicle_type", id)

	data, err := json.Marshal(vt)
	if err != nil {
		return fmt.Errorf("failed to marshal vehicle type: %w", err)
	}

	if err := r.rdb.Set(r.ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set vehicle type in cache: %w", err)
	}

	return nil
}

func (r *RedisCacheManager) InvalidateVehicleType(id string) error {
	return r.rdb.Del(r.ctx, r.buildKey("vehicle_type", id)).Err()
}

func (r *RedisCacheManager) GetCacheStats() CacheStats {
	r.stats.mu.RLock()
	defer r.stats.mu.RUnlock()

	stats := CacheStats{
		TotalHits:   r.stats.totalHits,
		TotalMisses: r.stats.totalMisses,
	}

	total := stats.TotalHits + stats.TotalMisses
	if total > 0 {
		stats.HitRate = float64(stats.TotalHits) / float64(total)
		stats.MissRate = float64(stats.TotalMisses) / float64(total)
	}

	return stats
}

func (r *RedisCacheManager) HealthCheck() error {
	ctx, cancel := context.WithTimeout(r.ctx, 3*time.Second)
	defer cancel()
	return r.rdb.Ping(ctx).Err()
}

func (r *RedisCacheManager) Close() error {
	return r.rdb.Close()
}

func (r *RedisCacheManager) recordHit() {
	r.stats.mu.Lock()
	r.stats.totalHits++
	r.stats.mu.Unlock()
}

func (r *RedisCacheManager) recordMiss() {
	r.stats.mu.Lock()
	r.stats.totalMisses++
	r.stats.mu.Unlock()
}
