package services

import (
	"errors"
	"time"

	"parking-backend/internal/models"
	"parking-backend/internal/repository"
	"parking-backend/pkg/cache"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VehicleTypeService struct {
	typeRepo     *repository.VehicleTypeRepository
	tariffRepo   *repository.TariffRepository
	vehicleRepo  *repository.VehicleRepository
	cacheManager cache.CacheManager
}

func NewVehicleTypeService(typeRepo *repository.VehicleTypeRepository, tariffRepo *repository.TariffRepository, vehicleRepo *repository.VehicleRepository) *VehicleTypeService {
	return &VehicleTypeService{
		typeRepo:    typeRepo,
		tariffRepo:  tariffRepo,
		vehicleRepo: vehicleRepo,
	}
}

// SetCacheManager allows wiring the cache manager after construction.
func (s *VehicleTypeService) SetCacheManager(cacheManager cache.CacheManager) {
	s.cacheManager = cacheManager
}

type CreateVehicleTypeRequest struct {
	Code        string `json:"code" validate:"required,min=1,max=20"`
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description"`
}

type UpdateVehicleTypeRequest struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

func (s *VehicleTypeService) CreateVehicleType(req *CreateVehicleTypeRequest) (*models.VehicleType, error) {
	if existing, _ := s.typeRepo.FindByCode(req.Code); existing != nil {
		return nil, errors.New("vehicle type code already exists")
	}

	vt := &models.VehicleType{
		ID:          primitive.NewObjectID(),
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Status:      models.StatusActive,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	return s.typeRepo.Create(vt)
}

func (s *VehicleTypeService) GetVehicleTypes() ([]*models.VehicleType, error) {
	return s.typeRepo.FindAll()
}

func (s *VehicleTypeService) GetVehicleTypeByID(id string) (*models.VehicleType, error) {
	return s.typeRepo.FindByID(id)
}

func (s *VehicleTypeService) UpdateVehicleType(id string, req *UpdateVehicleTypeRequest) (*models.VehicleType, error) {
	vt, err := s.typeRepo.FindByID(id)
	if err != nil {
		return nil, errors.New("vehicle type not found")
	}

	if req.Name != "" {
		vt.Name = req.Name
	}
	if req.Description != "" {
		vt.Description = req.Description
	}
	if req.Status != "" {
		vt.Status = req.Status
	}

	updated, err := s.typeRepo.Update(id, vt)
	if err != nil {
		return nil, err
	}

	if s.cacheManager != nil {
		_ = s.cacheManager.InvalidateVehicleType(id)
	}

	return updated, nil
}

// DeleteVehicleType hard-deletes a type, but only when nothing references
// it anymore: no non-deleted tariff rules and no non-deleted vehicles.
func (s *VehicleTypeService) DeleteVehicleType(id string) error {
	if _, err := s.typeRepo.FindByID(id); err != nil {
		return errors.New("vehicle type not found")
	}

	ruleCount, err := s.tariffRepo.CountByVehicleType(id)
	if err != nil {
		return err
	}
	if ruleCount > 0 {
		return errors.New("vehicle type has tariff rules, deactivate it instead")
	}

	vehicleCount, err := s.vehicleRepo.CountByVehicleType(id)
	if err != nil {
		return err
	}
	if vehicleCount > 0 {
		return errors.New("vehicle type has registered vehicles, deactivate it instead")
	}

	if err := s.typeRepo.Delete(id); err != nil {
		return err
	}

	if s.cacheManager != nil {
		_ = s.cacheManager.InvalidateVehicleType(id)
		_ = s.cacheManager.InvalidateTariffRules(id)
	}

	return nil
}
