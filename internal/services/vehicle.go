package services

import (
	"errors"
	"time"

	"parking-backend/internal/models"
	"parking-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VehicleService struct {
	vehicleRepo *repository.VehicleRepository
	typeRepo    *repository.VehicleTypeRepository
}

func NewVehicleService(vehicleRepo *repository.VehicleRepository, typeRepo *repository.VehicleTypeRepository) *VehicleService {
	return &VehicleService{
		vehicleRepo: vehicleRepo,
		typeRepo:    typeRepo,
	}
}

type CreateVehicleRequest struct {
	PlateNumber   string `json:"plateNumber" validate:"required,min=1,max=20"`
	OwnerName     string `json:"ownerName"`
	VehicleTypeID string `json:"vehicleTypeId" validate:"required"`
}

type UpdateVehicleRequest struct {
	OwnerName     string `json:"ownerName,omitempty"`
	VehicleTypeID string `json:"vehicleTypeId,omitempty"`
	Status        string `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

type AddMembershipRequest struct {
	StartDate time.Time `json:"startDate" validate:"required"`
	EndDate   time.Time `json:"endDate" validate:"required"`
	Kind      string    `json:"kind" validate:"required"`
	Notes     string    `json:"notes"`
}

// VehicleDetail pairs a vehicle with its membership valid at the request's
// reference time.
type VehicleDetail struct {
	*models.Vehicle
	CurrentMembership *models.Membership `json:"currentMembership,omitempty"`
}

func (s *VehicleService) CreateVehicle(req *CreateVehicleRequest) (*models.Vehicle, error) {
	if existing, _ := s.vehicleRepo.FindByPlateNumber(req.PlateNumber); existing != nil {
		return nil, errors.New("plate number already exists")
	}

	vt, err := s.typeRepo.FindByID(req.VehicleTypeID)
	if err != nil {
		return nil, errors.New("vehicle type not found")
	}

	vehicle := &models.Vehicle{
		ID:            primitive.NewObjectID(),
		PlateNumber:   req.PlateNumber,
		OwnerName:     req.OwnerName,
		VehicleTypeID: vt.ID,
		Status:        models.StatusActive,
		Memberships:   []models.Membership{},
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	return s.vehicleRepo.Create(vehicle)
}

func (s *VehicleService) GetVehicles(search string, page, limit int) ([]*models.Vehicle, int64, error) {
	return s.vehicleRepo.FindPage(search, page, limit)
}

// GetVehicleByID returns the vehicle with its membership valid at ref.
func (s *VehicleService) GetVehicleByID(id string, ref time.Time) (*VehicleDetail, error) {
	vehicle, err := s.vehicleRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	return &VehicleDetail{
		Vehicle:           vehicle,
		CurrentMembership: models.CurrentMembership(vehicle.Memberships, ref),
	}, nil
}

func (s *VehicleService) UpdateVehicle(id string, req *UpdateVehicleRequest) (*models.Vehicle, error) {
	vehicle, err := s.vehicleRepo.FindByID(id)
	if err != nil {
		return nil, errors.New("vehicle not found")
	}

	if req.OwnerName != "" {
		vehicle.OwnerName = req.OwnerName
	}
	if req.VehicleTypeID != "" {
		vt, err := s.typeRepo.FindByID(req.VehicleTypeID)
		if err != nil {
			return nil, errors.New("vehicle type not found")
		}
		vehicle.VehicleTypeID = vt.ID
	}
	if req.Status != "" {
		vehicle.Status = req.Status
	}

	return s.vehicleRepo.Update(id, vehicle)
}

func (s *VehicleService) AddMembership(id string, req *AddMembershipRequest) (*models.Vehicle, error) {
	vehicle, err := s.vehicleRepo.FindByID(id)
	if err != nil {
		return nil, errors.New("vehicle not found")
	}

	if req.EndDate.Before(req.StartDate) {
		return nil, errors.New("endDate must not be before startDate")
	}

	vehicle.Memberships = append(vehicle.Memberships, models.Membership{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Kind:      req.Kind,
		Notes:     req.Notes,
	})

	return s.vehicleRepo.Update(id, vehicle)
}

func (s *VehicleService) DeleteVehicle(id string) error {
	return s.vehicleRepo.SoftDelete(id)
}
