package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"parking-backend/internal/pricing"
	"parking-backend/internal/services"
	"parking-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type TariffHandler struct {
	tariffService *services.TariffService
	validator     *validator.Validate
}

func NewTariffHandler(tariffService *services.TariffService) *TariffHandler {
	return &TariffHandler{
		tariffService: tariffService,
		validator:     validator.New(),
	}
}

// GetTariffs lists tariff rules, optionally for one vehicle type
func (h *TariffHandler) GetTariffs(c *gin.Context) {
	page, limit := parsePagination(c)

	rules, total, err := h.tariffService.ListRules(c.Query("vehicleTypeId"), page, limit)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve tariff rules", err)
		return
	}

	utils.PaginatedResponse(c, http.StatusOK, "Tariff rules retrieved successfully", rules, utils.NewPagination(page, limit, total))
}

// GetTariff retrieves a specific tariff rule by ID
func (h *TariffHandler) GetTariff(c *gin.Context) {
	rule, err := h.tariffService.GetRule(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, "Tariff rule not found", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Tariff rule retrieved successfully", rule)
}

// CreateTariff creates a new tariff rule
func (h *TariffHandler) CreateTariff(c *gin.Context) {
	var req services.CreateTariffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	rule, err := h.tariffService.CreateRule(&req)
	if err != nil {
		utils.ErrorResponse(c, tariffErrorStatus(err), "Failed to create tariff rule", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Tariff rule created successfully", rule)
}

// UpdateTariff updates an existing tariff rule
func (h *TariffHandler) UpdateTariff(c *gin.Context) {
	var req services.UpdateTariffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	rule, err := h.tariffService.UpdateRule(c.Param("id"), &req)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Failed to update tariff rule", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Tariff rule updated successfully", rule)
}

// DeleteTariff soft-deletes a tariff rule
func (h *TariffHandler) DeleteTariff(c *gin.Context) {
	if err := h.tariffService.DeleteRule(c.Param("id")); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Failed to delete tariff rule", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Tariff rule deleted successfully", nil)
}

// GetQuote resolves the price for a vehicle type at a parked duration
func (h *TariffHandler) GetQuote(c *gin.Context) {
	vehicleTypeID := c.Query("vehicleTypeId")
	if vehicleTypeID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "vehicleTypeId parameter is required", nil)
		return
	}

	durationMinutes, err := strconv.Atoi(c.Query("durationMinutes"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "durationMinutes must be an integer", err)
		return
	}

	quote, err := h.tariffService.ResolveTariff(vehicleTypeID, durationMinutes)
	if err != nil {
		utils.ErrorResponse(c, tariffErrorStatus(err), "Failed to resolve tariff", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Tariff resolved successfully", quote)
}

// tariffErrorStatus maps resolver error kinds onto HTTP statuses. All of
// them are caller-recoverable.
func tariffErrorStatus(err error) int {
	var unknownType *pricing.UnknownVehicleTypeError
	var noTariff *pricing.NoTariffError

	switch {
	case errors.As(err, &unknownType), errors.As(err, &noTariff):
		return http.StatusNotFound
	case errors.Is(err, pricing.ErrInvalidDuration), errors.Is(err, pricing.ErrInvalidAmount):
		return http.StatusBadRequest
	default:
		return http.StatusBadRequest
	}
}
