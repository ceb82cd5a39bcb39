package services

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"parking-backend/internal/models"
	"parking-backend/internal/pricing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransactionStore is the persistence surface the transaction service
// needs; *repository.TransactionRepository satisfies it.
type TransactionStore interface {
	Create(tx *models.ParkingTransaction) (*models.ParkingTransaction, error)
	FindByID(id string) (*models.ParkingTransaction, error)
	FindOpenByPlate(plateNumber string) (*models.ParkingTransaction, error)
	FindPage(status, plateNumber string, page, limit int) ([]*models.ParkingTransaction, int64, error)
	Update(id string, tx *models.ParkingTransaction) (*models.ParkingTransaction, error)
}

// VehicleLookup resolves registered vehicles by plate for the membership
// check at check-out. Unregistered plates are fine, they just never get
// the membership arrangement.
type VehicleLookup interface {
	FindByPlateNumber(plateNumber string) (*models.Vehicle, error)
}

// TariffResolver is what the check-out flow needs from the tariff side.
type TariffResolver interface {
	ResolveTariff(vehicleTypeID string, durationMinutes int) (*TariffQuote, error)
}

type TransactionService struct {
	txStore   TransactionStore
	typeStore VehicleTypeStore
	vehicles  VehicleLookup
	resolver  TariffResolver
	now       func() time.Time
}

func NewTransactionService(txStore TransactionStore, typeStore VehicleTypeStore, vehicles VehicleLookup, resolver TariffResolver) *TransactionService {
	return &TransactionService{
		txStore:   txStore,
		typeStore: typeStore,
		vehicles:  vehicles,
		resolver:  resolver,
		now:       time.Now,
	}
}

type CheckInRequest struct {
	PlateNumber   string `json:"plateNumber" validate:"required,min=1,max=20"`
	VehicleTypeID string `json:"vehicleTypeId" validate:"required"`
	Notes         string `json:"notes"`
}

// CheckIn opens a parking transaction for a plate. A plate can have at
// most one open transaction at a time.
func (s *TransactionService) CheckIn(req *CheckInRequest) (*models.ParkingTransaction, error) {
	vt, err := s.typeStore.FindByID(req.VehicleTypeID)
	if err != nil || vt.Status == models.StatusDeleted {
		return nil, &pricing.UnknownVehicleTypeError{VehicleTypeID: req.VehicleTypeID}
	}

	if open, _ := s.txStore.FindOpenByPlate(req.PlateNumber); open != nil {
		return nil, errors.New("plate already has an open transaction")
	}

	now := s.now()
	tx := &models.ParkingTransaction{
		TicketNumber:  newTicketNumber(now),
		PlateNumber:   req.PlateNumber,
		VehicleTypeID: vt.ID,
		EntryTime:     now,
		Status:        models.TransactionParked,
		Notes:         req.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	return s.txStore.Create(tx)
}

// CheckOut closes an open transaction: duration is computed from entry to
// now, the fee comes from the tariff resolver, and vehicles with a current
// membership park free.
func (s *TransactionService) CheckOut(id string) (*models.ParkingTransaction, error) {
	tx, err := s.txStore.FindByID(id)
	if err != nil {
		return nil, errors.New("transaction not found")
	}

	now := s.now()
	if err := tx.ApplyTransition(models.TransactionCompleted, now); err != nil {
		return nil, err
	}

	tx.DurationMin = durationMinutes(tx.EntryTime, now)

	if s.hasCurrentMembership(tx.PlateNumber, now) {
		tx.Price = 0
		formatted, _ := pricing.FormatPrice(0)
		tx.FormattedPrice = formatted
		tx.Notes = appendNote(tx.Notes, "membership")
		return s.txStore.Update(id, tx)
	}

	quote, err := s.resolver.ResolveTariff(tx.VehicleTypeID.Hex(), tx.DurationMin)
	if err != nil {
		return nil, err
	}

	ruleID, err := primitive.ObjectIDFromHex(quote.RuleID)
	if err != nil {
		return nil, errors.New("invalid rule ID in quote")
	}

	tx.AppliedRuleID = &ruleID
	tx.Price = quote.Price
	tx.FormattedPrice = quote.FormattedPrice

	return s.txStore.Update(id, tx)
}

// Cancel voids an open transaction without charging.
func (s *TransactionService) Cancel(id string) (*models.ParkingTransaction, error) {
	tx, err := s.txStore.FindByID(id)
	if err != nil {
		return nil, errors.New("transaction not found")
	}

	if err := tx.ApplyTransition(models.TransactionCancelled, s.now()); err != nil {
		return nil, err
	}

	return s.txStore.Update(id, tx)
}

func (s *TransactionService) GetTransaction(id string) (*models.ParkingTransaction, error) {
	return s.txStore.FindByID(id)
}

func (s *TransactionService) GetTransactions(status, plateNumber string, page, limit int) ([]*models.ParkingTransaction, int64, error) {
	return s.txStore.FindPage(status, plateNumber, page, limit)
}

func (s *TransactionService) hasCurrentMembership(plateNumber string, ref time.Time) bool {
	if s.vehicles == nil {
		return false
	}
	vehicle, err := s.vehicles.FindByPlateNumber(plateNumber)
	if err != nil || vehicle == nil || vehicle.Status != models.StatusActive {
		return false
	}
	return models.CurrentMembership(vehicle.Memberships, ref) != nil
}

// durationMinutes rounds a parked interval up to whole minutes.
func durationMinutes(entry, exit time.Time) int {
	d := exit.Sub(entry)
	if d <= 0 {
		return 0
	}
	minutes := int(d / time.Minute)
	if d%time.Minute > 0 {
		minutes++
	}
	return minutes
}

func newTicketNumber(now time.Time) string {
	return fmt.Sprintf("PKR-%s-%04d", now.Format("20060102-150405"), rand.IntN(10000))
}

func appendNote(notes, note string) string {
	if notes == "" {
		return note
	}
	return notes + "; " + note
}
