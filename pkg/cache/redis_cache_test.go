package cache

import (
	"testing"
	"time"

	"parking-backend/internal/models"

	"github.com/alicebob/miniredis/v2"
	redisClient "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func setupManager(t *testing.T) (*RedisCacheManager, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redisClient.NewClient(&redisClient.Options{Addr: mr.Addr()})

	config := DefaultCacheConfig()
	config.KeyPrefix = "test:"

	return NewRedisCacheManagerWithClient(client, config), mr
}

func intPtr(v int) *int { return &v }

func TestTariffRulesRoundTrip(t *testing.T) {
	manager, _ := setupManager(t)

	typeID := primitive.NewObjectID()
	rules := []*models.TariffRule{
		{ID: primitive.NewObjectID(), VehicleTypeID: typeID, DurationMin: 0, DurationMax: intPtr(60), Price: 2000, Status: models.StatusActive},
		{ID: primitive.NewObjectID(), VehicleTypeID: typeID, DurationMin: 61, Price: 5000, Status: models.StatusActive},
	}

	require.NoError(t, manager.SetTariffRules(typeID.Hex(), rules, 30*time.Second))

	cached, err := manager.GetTariffRules(typeID.Hex())
	require.NoError(t, err)
	require.Len(t, cached, 2)
	assert.Equal(t, rules[0].Price, cached[0].Price)
	require.NotNil(t, cached[0].DurationMax)
	assert.Equal(t, 60, *cached[0].DurationMax)
	assert.Nil(t, cached[1].DurationMax)
}

func TestTariffRulesMiss(t *testing.T) {
	manager, _ := setupManager(t)

	cached, err := manager.GetTariffRules(primitive.NewObjectID().Hex())
	require.NoError(t, err)
	assert.Nil(t, cached)

	stats := manager.GetCacheStats()
	assert.Equal(t, int64(1), stats.TotalMisses)
}

func TestInvalidateTariffRules(t *testing.T) {
	manager, _ := setupManager(t)

	typeID := primitive.NewObjectID().Hex()
	rules := []*models.TariffRule{{DurationMin: 0, Price: 2000, Status: models.StatusActive}}
	require.NoError(t, manager.SetTariffRules(typeID, rules, 30*time.Second))

	require.NoError(t, manager.InvalidateTariffRules(typeID))

	cached, err := manager.GetTariffRules(typeID)
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestTariffRulesTTLExpiry(t *testing.T) {
	manager, mr := setupManager(t)

	typeID := primitive.NewObjectID().Hex()
	rules := []*models.TariffRule{{DurationMin: 0, Price: 2000, Status: models.StatusActive}}
	require.NoError(t, manager.SetTariffRules(typeID, rules, 100*time.Millisecond))

	mr.FastForward(200 * time.Millisecond)

	cached, err := manager.GetTariffRules(typeID)
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestVehicleTypeRoundTrip(t *testing.T) {
	manager, _ := setupManager(t)

	vt := &models.VehicleType{
		ID:     primitive.NewObjectID(),
		Code:   "MTR",
		Name:   "Motor",
		Status: models.StatusActive,
	}

	require.NoError(t, manager.SetVehicleType(vt.ID.Hex(), vt, 30*time.Second))

	cached, err := manager.GetVehicleType(vt.ID.Hex())
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, "MTR", cached.Code)
	assert.Equal(t, "Motor", cached.Name)

	require.NoError(t, manager.InvalidateVehicleType(vt.ID.Hex()))
	cached, err = manager.GetVehicleType(vt.ID.Hex())
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestCacheStats(t *testing.T) {
	manager, _ := setupManager(t)

	typeID := primitive.NewObjectID().Hex()
	_, _ = manager.GetTariffRules(typeID) // miss

	rules := []*models.TariffRule{{DurationMin: 0, Price: 2000, Status: models.StatusActive}}
	require.NoError(t, manager.SetTariffRules(typeID, rules, time.Minute))
	_, _ = manager.GetTariffRules(typeID) // hit

	stats := manager.GetCacheStats()
	assert.Equal(t, int64(1), stats.TotalHits)
	assert.Equal(t, int64(1), stats.TotalMisses)
	assert.InDelta(t, 0.5, stats.HitRate, 0.001)
}
