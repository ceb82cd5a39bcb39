package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"parking-backend/internal/models"
	"parking-backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubRuleStore struct {
	rules []*models.TariffRule
}

func (s *stubRuleStore) Create(rule *models.TariffRule) (*models.TariffRule, error) {
	s.rules = append(s.rules, rule)
	return rule, nil
}

func (s *stubRuleStore) FindByID(id string) (*models.TariffRule, error) {
	for _, rule := range s.rules {
		if rule.ID.Hex() == id && rule.Status != models.StatusDeleted {
			return rule, nil
		}
	}
	return nil, errors.New("tariff rule not found")
}

func (s *stubRuleStore) FindActiveByVehicleType(vehicleTypeID string) ([]*models.TariffRule, error) {
	var out []*models.TariffRule
	for _, rule := range s.rules {
		if rule.VehicleTypeID.Hex() == vehicleTypeID && rule.Status == models.StatusActive {
			out = append(out, rule)
		}
	}
	return out, nil
}

func (s *stubRuleStore) FindPage(vehicleTypeID string, page, limit int) ([]*models.TariffRule, int64, error) {
	return s.rules, int64(len(s.rules)), nil
}

func (s *stubRuleStore) Update(id string, rule *models.TariffRule) (*models.TariffRule, error) {
	return rule, nil
}

func (s *stubRuleStore) SetStatus(id string, status string) error { return nil }
func (s *stubRuleStore) SoftDelete(id string) error               { return nil }

type stubTypeStore struct {
	types map[string]*models.VehicleType
}

func (s *stubTypeStore) FindByID(id string) (*models.VehicleType, error) {
	vt, ok := s.types[id]
	if !ok {
		return nil, errors.New("vehicle type not found")
	}
	return vt, nil
}

// quoteRouter wires a real tariff service over in-memory stores behind
// the quote route only.
func quoteRouter(t *testing.T) (*gin.Engine, *models.VehicleType) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	vt := &models.VehicleType{
		ID:     primitive.NewObjectID(),
		Code:   "car",
		Name:   "Car",
		Status: models.StatusActive,
	}
	typeStore := &stubTypeStore{types: map[string]*models.VehicleType{vt.ID.Hex(): vt}}

	hour := 60
	ruleStore := &stubRuleStore{rules: []*models.TariffRule{
		{
			ID:            primitive.NewObjectID(),
			VehicleTypeID: vt.ID,
			DurationMin:   0,
			DurationMax:   &hour,
			Price:         2000,
			Status:        models.StatusActive,
		},
		{
			ID:            primitive.NewObjectID(),
			VehicleTypeID: vt.ID,
			DurationMin:   61,
			Price:         5000,
			Status:        models.StatusActive,
		},
	}}

	handler := NewTariffHandler(services.NewTariffService(ruleStore, typeStore))

	router := gin.New()
	router.GET("/api/v1/tariffs/quote", handler.GetQuote)
	return router, vt
}

func doQuote(router *gin.Engine, vehicleTypeID, duration string) *httptest.ResponseRecorder {
	url := fmt.Sprintf("/api/v1/tariffs/quote?vehicleTypeId=%s&durationMinutes=%s", vehicleTypeID, duration)
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGetQuote(t *testing.T) {
	router, vt := quoteRouter(t)

	rec := doQuote(router, vt.ID.Hex(), "45")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Price          int64  `json:"price"`
			FormattedPrice string `json:"formattedPrice"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, int64(2000), body.Data.Price)
	assert.Equal(t, "Rp 2.000", body.Data.FormattedPrice)
}

func TestGetQuoteOpenEndedBracket(t *testing.T) {
	router, vt := quoteRouter(t)

	rec := doQuote(router, vt.ID.Hex(), "180")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Rp 5.000")
}

func TestGetQuoteUnknownVehicleType(t *testing.T) {
	router, _ := quoteRouter(t)

	rec := doQuote(router, primitive.NewObjectID().Hex(), "45")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetQuoteInvalidDuration(t *testing.T) {
	router, vt := quoteRouter(t)

	assert.Equal(t, http.StatusBadRequest, doQuote(router, vt.ID.Hex(), "abc").Code)
	assert.Equal(t, http.StatusBadRequest, doQuote(router, vt.ID.Hex(), "-5").Code)
}

func TestGetQuoteMissingVehicleType(t *testing.T) {
	router, _ := quoteRouter(t)

	rec := doQuote(router, "", "45")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetQuoteNoTariffConfigured(t *testing.T) {
	gin.SetMode(gin.TestMode)

	empty := &models.VehicleType{
		ID:     primitive.NewObjectID(),
		Code:   "bus",
		Name:   "Bus",
		Status: models.StatusActive,
	}
	typeStore := &stubTypeStore{types: map[string]*models.VehicleType{empty.ID.Hex(): empty}}
	handler := NewTariffHandler(services.NewTariffService(&stubRuleStore{}, typeStore))

	router := gin.New()
	router.GET("/api/v1/tariffs/quote", handler.GetQuote)

	rec := doQuote(router, empty.ID.Hex(), "45")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
