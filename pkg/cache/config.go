package cache

import "time"

// CacheConfig holds TTL values and key namespacing for the back office
// cache. Tariff rule sets change rarely (admin edits only) but must drop
// out quickly after a write, so invalidation does the heavy lifting and
// the TTLs are just a backstop.
type CacheConfig struct {
	TariffRulesTTL time.Duration `json:"tariffRulesTTL"`
	VehicleTypeTTL time.Duration `json:"vehicleTypeTTL"`
	KeyPrefix      string        `json:"keyPrefix"`
}

func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		TariffRulesTTL: 5 * time.Minute,
		VehicleTypeTTL: 10 * time.Minute,
		KeyPrefix:      "parkir:",
	}
}
