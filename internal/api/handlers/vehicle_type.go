package handlers

import (
	"net/http"

	"parking-backend/internal/services"
	"parking-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type VehicleTypeHandler struct {
	typeService *services.VehicleTypeService
	validator   *validator.Validate
}

func NewVehicleTypeHandler(typeService *services.VehicleTypeService) *VehicleTypeHandler {
	return &VehicleTypeHandler{
		typeService: typeService,
		validator:   validator.New(),
	}
}

// GetVehicleTypes lists all vehicle types
func (h *VehicleTypeHandler) GetVehicleTypes(c *gin.Context) {
	types, err := h.typeService.GetVehicleTypes()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve vehicle types", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Vehicle types retrieved successfully", types)
}

// GetVehicleType retrieves a specific vehicle type by ID
func (h *VehicleTypeHandler) GetVehicleType(c *gin.Context) {
	vt, err := h.typeService.GetVehicleTypeByID(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, "Vehicle type not found", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Vehicle type retrieved successfully", vt)
}

// CreateVehicleType creates a new vehicle type
func (h *VehicleTypeHandler) CreateVehicleType(c *gin.Context) {
	var req services.CreateVehicleTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	vt, err := h.typeService.CreateVehicleType(&req)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Failed to create vehicle type", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Vehicle type created successfully", vt)
}

// UpdateVehicleType updates an existing vehicle type
func (h *VehicleTypeHandler) UpdateVehicleType(c *gin.Context) {
	var req services.UpdateVehicleTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	vt, err := h.typeService.UpdateVehicleType(c.Param("id"), &req)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Failed to update vehicle type", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Vehicle type updated successfully", vt)
}

// DeleteVehicleType deletes a vehicle type when nothing references it
func (h *VehicleTypeHandler) DeleteVehicleType(c *gin.Context) {
	if err := h.typeService.DeleteVehicleType(c.Param("id")); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Failed to delete vehicle type", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Vehicle type deleted successfully", nil)
}
