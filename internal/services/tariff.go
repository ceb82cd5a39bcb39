package services

import (
	"errors"
	"time"

	"parking-backend/internal/models"
	"parking-backend/internal/pricing"
	"parking-backend/pkg/cache"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TariffRuleStore is the persistence surface the tariff service needs.
// *repository.TariffRepository satisfies it; tests use in-memory fakes.
type TariffRuleStore interface {
	Create(rule *models.TariffRule) (*models.TariffRule, error)
	FindByID(id string) (*models.TariffRule, error)
	FindActiveByVehicleType(vehicleTypeID string) ([]*models.TariffRule, error)
	FindPage(vehicleTypeID string, page, limit int) ([]*models.TariffRule, int64, error)
	Update(id string, rule *models.TariffRule) (*models.TariffRule, error)
	SetStatus(id string, status string) error
	SoftDelete(id string) error
}

// VehicleTypeStore is the vehicle type lookup the tariff service needs.
type VehicleTypeStore interface {
	FindByID(id string) (*models.VehicleType, error)
}

type TariffService struct {
	ruleStore    TariffRuleStore
	typeStore    VehicleTypeStore
	cacheManager cache.CacheManager
	cacheConfig  cache.CacheConfig
}

func NewTariffService(ruleStore TariffRuleStore, typeStore VehicleTypeStore) *TariffService {
	return &TariffService{
		ruleStore:   ruleStore,
		typeStore:   typeStore,
		cacheConfig: cache.DefaultCacheConfig(),
	}
}

// SetCacheManager allows wiring the cache manager after construction.
func (s *TariffService) SetCacheManager(cacheManager cache.CacheManager) {
	s.cacheManager = cacheManager
}

// SetCacheConfig allows setting custom cache configuration.
func (s *TariffService) SetCacheConfig(config cache.CacheConfig) {
	s.cacheConfig = config
}

type CreateTariffRequest struct {
	VehicleTypeID string `json:"vehicleTypeId" validate:"required"`
	DurationMin   int    `json:"durationMin" validate:"gte=0"`
	DurationMax   *int   `json:"durationMax,omitempty"`
	Price         int64  `json:"price" validate:"gte=0"`
}

type UpdateTariffRequest struct {
	DurationMin *int   `json:"durationMin,omitempty"`
	DurationMax *int   `json:"durationMax,omitempty"`
	OpenEnded   bool   `json:"openEnded,omitempty"`
	Price       *int64 `json:"price,omitempty"`
	Status      string `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

// TariffQuote is the outcome of one tariff resolution.
type TariffQuote struct {
	VehicleTypeID   string `json:"vehicleTypeId"`
	DurationMinutes int    `json:"durationMinutes"`
	RuleID          string `json:"ruleId"`
	Price           int64  `json:"price"`
	FormattedPrice  string `json:"formattedPrice"`
}

func (s *TariffService) CreateRule(req *CreateTariffRequest) (*models.TariffRule, error) {
	vt, err := s.lookupVehicleType(req.VehicleTypeID)
	if err != nil {
		return nil, err
	}

	if req.DurationMax != nil && *req.DurationMax < req.DurationMin {
		return nil, errors.New("durationMax must not be below durationMin")
	}

	rule := &models.TariffRule{
		ID:            primitive.NewObjectID(),
		VehicleTypeID: vt.ID,
		DurationMin:   req.DurationMin,
		DurationMax:   req.DurationMax,
		Price:         req.Price,
		Status:        models.StatusActive,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	created, err := s.ruleStore.Create(rule)
	if err != nil {
		return nil, err
	}

	s.invalidateRules(req.VehicleTypeID)
	return created, nil
}

func (s *TariffService) GetRule(id string) (*models.TariffRule, error) {
	return s.ruleStore.FindByID(id)
}

func (s *TariffService) ListRules(vehicleTypeID string, page, limit int) ([]*models.TariffRule, int64, error) {
	return s.ruleStore.FindPage(vehicleTypeID, page, limit)
}

func (s *TariffService) UpdateRule(id string, req *UpdateTariffRequest) (*models.TariffRule, error) {
	rule, err := s.ruleStore.FindByID(id)
	if err != nil {
		return nil, errors.New("tariff rule not found")
	}

	if req.DurationMin != nil {
		if *req.DurationMin < 0 {
			return nil, errors.New("durationMin must not be negative")
		}
		rule.DurationMin = *req.DurationMin
	}
	if req.OpenEnded {
		rule.DurationMax = nil
	} else if req.DurationMax != nil {
		rule.DurationMax = req.DurationMax
	}
	if rule.DurationMax != nil && *rule.DurationMax < rule.DurationMin {
		return nil, errors.New("durationMax must not be below durationMin")
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, errors.New("price must not be negative")
		}
		rule.Price = *req.Price
	}
	if req.Status != "" {
		rule.Status = req.Status
	}

	updated, err := s.ruleStore.Update(id, rule)
	if err != nil {
		return nil, err
	}

	s.invalidateRules(rule.VehicleTypeID.Hex())
	return updated, nil
}

// DeleteRule soft-deletes: the rule disappears from resolution and lists
// but its history stays.
func (s *TariffService) DeleteRule(id string) error {
	rule, err := s.ruleStore.FindByID(id)
	if err != nil {
		return errors.New("tariff rule not found")
	}

	if err := s.ruleStore.SoftDelete(id); err != nil {
		return err
	}

	s.invalidateRules(rule.VehicleTypeID.Hex())
	return nil
}

// ResolveTariff finds the price for a vehicle type at the given parked
// duration. It reads one consistent snapshot of the active rule set
// (cache or a single repository read), so a concurrent admin edit is
// either fully visible or not at all.
func (s *TariffService) ResolveTariff(vehicleTypeID string, durationMinutes int) (*TariffQuote, error) {
	if _, err := s.lookupVehicleType(vehicleTypeID); err != nil {
		return nil, err
	}

	rules, err := s.activeRules(vehicleTypeID)
	if err != nil {
		return nil, err
	}

	match, err := pricing.Resolve(vehicleTypeID, toPricingRules(rules), durationMinutes)
	if err != nil {
		return nil, err
	}

	formatted, err := pricing.FormatPrice(match.Price)
	if err != nil {
		return nil, err
	}

	return &TariffQuote{
		VehicleTypeID:   vehicleTypeID,
		DurationMinutes: durationMinutes,
		RuleID:          match.RuleID,
		Price:           match.Price,
		FormattedPrice:  formatted,
	}, nil
}

func (s *TariffService) lookupVehicleType(id string) (*models.VehicleType, error) {
	if s.cacheManager != nil {
		if cached, err := s.cacheManager.GetVehicleType(id); err == nil && cached != nil {
			if cached.Status == models.StatusDeleted {
				return nil, &pricing.UnknownVehicleTypeError{VehicleTypeID: id}
			}
			return cached, nil
		}
	}

	vt, err := s.typeStore.FindByID(id)
	if err != nil || vt.Status == models.StatusDeleted {
		return nil, &pricing.UnknownVehicleTypeError{VehicleTypeID: id}
	}

	if s.cacheManager != nil {
		_ = s.cacheManager.SetVehicleType(id, vt, s.cacheConfig.VehicleTypeTTL)
	}

	return vt, nil
}

// activeRules returns one snapshot of the active rule set, from cache when
// possible. An empty set is never cached so that freshly configured types
// become resolvable immediately.
func (s *TariffService) activeRules(vehicleTypeID string) ([]*models.TariffRule, error) {
	if s.cacheManager != nil {
		if cached, err := s.cacheManager.GetTariffRules(vehicleTypeID); err == nil && cached != nil {
			return cached, nil
		}
	}

	rules, err := s.ruleStore.FindActiveByVehicleType(vehicleTypeID)
	if err != nil {
		return nil, err
	}

	if s.cacheManager != nil && len(rules) > 0 {
		_ = s.cacheManager.SetTariffRules(vehicleTypeID, rules, s.cacheConfig.TariffRulesTTL)
	}

	return rules, nil
}

func (s *TariffService) invalidateRules(vehicleTypeID string) {
	if s.cacheManager != nil {
		_ = s.cacheManager.InvalidateTariffRules(vehicleTypeID)
	}
}

func toPricingRules(rules []*models.TariffRule) []pricing.Rule {
	out := make([]pricing.Rule, 0, len(rules))
	for _, r := range rules {
		out = append(out, pricing.Rule{
			ID:            r.ID.Hex(),
			VehicleTypeID: r.VehicleTypeID.Hex(),
			DurationMin:   r.DurationMin,
			DurationMax:   r.DurationMax,
			Price:         r.Price,
			Status:        pricing.RuleStatus(r.Status),
		})
	}
	return out
}
