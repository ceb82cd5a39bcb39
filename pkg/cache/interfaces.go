package cache

import (
	"time"

	"parking-backend/internal/models"
)

// CacheManager caches the read-heavy lookups behind tariff resolution:
// the active rule set per vehicle type and the vehicle type records
// themselves. A nil result with a nil error is a cache miss.
type CacheManager interface {
	GetTariffRules(vehicleTypeID string) ([]*models.TariffRule, error)
	SetTariffRules(vehicleTypeID string, rules []*models.TariffRule, ttl time.Duration) error
	InvalidateTariffRules(vehicleTypeID string) error

	GetVehicleType(id string) (*models.VehicleType, error)
	SetVehicleType(id string, vt *models.VehicleType, ttl time.Duration) error
	InvalidateVehicleType(id string) error

	GetCacheStats() CacheStats
	HealthCheck() error
	Close() error
}

// CacheStats provides cache performance metrics.
type CacheStats struct {
	HitRate     float64 `json:"hitRate"`
	MissRate    float64 `json:"missRate"`
	TotalHits   int64   `json:"totalHits"`
	TotalMisses int64   `json:"totalMisses"`
}
