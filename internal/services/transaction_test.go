package services

import (
	"errors"
	"testing"
	"time"

	"parking-backend/internal/models"
	"parking-backend/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeTxStore struct {
	transactions map[string]*models.ParkingTransaction
}

func newFakeTxStore() *fakeTxStore {
	return &fakeTxStore{transactions: make(map[string]*models.ParkingTransaction)}
}

func (f *fakeTxStore) Create(tx *models.ParkingTransaction) (*models.ParkingTransaction, error) {
	if tx.ID.IsZero() {
		tx.ID = primitive.NewObjectID()
	}
	f.transactions[tx.ID.Hex()] = tx
	return tx, nil
}

func (f *fakeTxStore) FindByID(id string) (*models.ParkingTransaction, error) {
	tx, ok := f.transactions[id]
	if !ok {
		return nil, errors.New("transaction not found")
	}
	copied := *tx
	return &copied, nil
}

func (f *fakeTxStore) FindOpenByPlate(plateNumber string) (*models.ParkingTransaction, error) {
	for _, tx := range f.transactions {
		if tx.PlateNumber == plateNumber && tx.Status == models.TransactionParked {
			return tx, nil
		}
	}
	return nil, errors.New("transaction not found")
}

func (f *fakeTxStore) FindPage(status, plateNumber string, page, limit int) ([]*models.ParkingTransaction, int64, error) {
	var out []*models.ParkingTransaction
	for _, tx := range f.transactions {
		if status != "" && tx.Status != status {
			continue
		}
		out = append(out, tx)
	}
	return out, int64(len(out)), nil
}

func (f *fakeTxStore) Update(id string, tx *models.ParkingTransaction) (*models.ParkingTransaction, error) {
	if _, ok := f.transactions[id]; !ok {
		return nil, errors.New("transaction not found")
	}
	f.transactions[id] = tx
	return tx, nil
}

type fakeVehicleLookup struct {
	vehicles map[string]*models.Vehicle
}

func (f *fakeVehicleLookup) FindByPlateNumber(plateNumber string) (*models.Vehicle, error) {
	vehicle, ok := f.vehicles[plateNumber]
	if !ok {
		return nil, errors.New("vehicle not found")
	}
	return vehicle, nil
}

type txFixture struct {
	service   *TransactionService
	txStore   *fakeTxStore
	typeStore *fakeTypeStore
	vehicles  *fakeVehicleLookup
	motor     *models.VehicleType
	now       time.Time
}

func newTxFixture(t *testing.T) *txFixture {
	t.Helper()

	ruleStore := newFakeRuleStore()
	typeStore := newFakeTypeStore()
	motor := typeStore.add("MTR")
	addRule(ruleStore, motor, 0, intPtr(60), 2000, models.StatusActive)
	addRule(ruleStore, motor, 61, nil, 5000, models.StatusActive)

	txStore := newFakeTxStore()
	vehicles := &fakeVehicleLookup{vehicles: make(map[string]*models.Vehicle)}
	resolver := NewTariffService(ruleStore, typeStore)

	fixture := &txFixture{
		service:   NewTransactionService(txStore, typeStore, vehicles, resolver),
		txStore:   txStore,
		typeStore: typeStore,
		vehicles:  vehicles,
		motor:     motor,
		now:       time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC),
	}
	fixture.service.now = func() time.Time { return fixture.now }
	return fixture
}

func TestCheckIn(t *testing.T) {
	f := newTxFixture(t)

	tx, err := f.service.CheckIn(&CheckInRequest{PlateNumber: "B 1234 XYZ", VehicleTypeID: f.motor.ID.Hex()})
	require.NoError(t, err)
	assert.Equal(t, models.TransactionParked, tx.Status)
	assert.Equal(t, f.now, tx.EntryTime)
	assert.Contains(t, tx.TicketNumber, "PKR-")
	assert.Nil(t, tx.ExitTime)
}

func TestCheckInRejectsUnknownVehicleType(t *testing.T) {
	f := newTxFixture(t)

	_, err := f.service.CheckIn(&CheckInRequest{PlateNumber: "B 1 A", VehicleTypeID: primitive.NewObjectID().Hex()})

	var unknown *pricing.UnknownVehicleTypeError
	assert.ErrorAs(t, err, &unknown)
}

func TestCheckInRejectsDuplicateOpenPlate(t *testing.T) {
	f := newTxFixture(t)

	_, err := f.service.CheckIn(&CheckInRequest{PlateNumber: "B 1234 XYZ", VehicleTypeID: f.motor.ID.Hex()})
	require.NoError(t, err)

	_, err = f.service.CheckIn(&CheckInRequest{PlateNumber: "B 1234 XYZ", VehicleTypeID: f.motor.ID.Hex()})
	assert.Error(t, err)
}

func TestCheckOut(t *testing.T) {
	f := newTxFixture(t)

	tx, err := f.service.CheckIn(&CheckInRequest{PlateNumber: "B 1234 XYZ", VehicleTypeID: f.motor.ID.Hex()})
	require.NoError(t, err)

	f.now = f.now.Add(45 * time.Minute)

	completed, err := f.service.CheckOut(tx.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, models.TransactionCompleted, completed.Status)
	assert.Equal(t, 45, completed.DurationMin)
	assert.Equal(t, int64(2000), completed.Price)
	assert.Equal(t, "Rp 2.000", completed.FormattedPrice)
	require.NotNil(t, completed.ExitTime)
	require.NotNil(t, completed.AppliedRuleID)
}

func TestCheckOutRoundsPartialMinutesUp(t *testing.T) {
	f := newTxFixture(t)

	tx, err := f.service.CheckIn(&CheckInRequest{PlateNumber: "B 1234 XYZ", VehicleTypeID: f.motor.ID.Hex()})
	require.NoError(t, err)

	// 60m30s parked lands in the second bracket
	f.now = f.now.Add(60*time.Minute + 30*time.Second)

	completed, err := f.service.CheckOut(tx.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 61, completed.DurationMin)
	assert.Equal(t, int64(5000), completed.Price)
}

func TestCheckOutMemberParksFree(t *testing.T) {
	f := newTxFixture(t)

	f.vehicles.vehicles["B 1234 XYZ"] = &models.Vehicle{
		PlateNumber:   "B 1234 XYZ",
		VehicleTypeID: f.motor.ID,
		Status:        models.StatusActive,
		Memberships: []models.Membership{{
			StartDate: f.now.AddDate(0, -1, 0),
			EndDate:   f.now.AddDate(0, 1, 0),
			Kind:      "monthly",
		}},
	}

	tx, err := f.service.CheckIn(&CheckInRequest{PlateNumber: "B 1234 XYZ", VehicleTypeID: f.motor.ID.Hex()})
	require.NoError(t, err)

	f.now = f.now.Add(3 * time.Hour)

	completed, err := f.service.CheckOut(tx.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(0), completed.Price)
	assert.Equal(t, "Rp 0", completed.FormattedPrice)
	assert.Nil(t, completed.AppliedRuleID)
	assert.Contains(t, completed.Notes, "membership")
}

func TestCheckOutExpiredMembershipCharges(t *testing.T) {
	f := newTxFixture(t)

	f.vehicles.vehicles["B 1234 XYZ"] = &models.Vehicle{
		PlateNumber:   "B 1234 XYZ",
		VehicleTypeID: f.motor.ID,
		Status:        models.StatusActive,
		Memberships: []models.Membership{{
			StartDate: f.now.AddDate(0, -2, 0),
			EndDate:   f.now.AddDate(0, -1, 0),
			Kind:      "monthly",
		}},
	}

	tx, err := f.service.CheckIn(&CheckInRequest{PlateNumber: "B 1234 XYZ", VehicleTypeID: f.motor.ID.Hex()})
	require.NoError(t, err)

	f.now = f.now.Add(30 * time.Minute)

	completed, err := f.service.CheckOut(tx.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(2000), completed.Price)
}

func TestCheckOutTwiceFails(t *testing.T) {
	f := newTxFixture(t)

	tx, err := f.service.CheckIn(&CheckInRequest{PlateNumber: "B 1234 XYZ", VehicleTypeID: f.motor.ID.Hex()})
	require.NoError(t, err)

	f.now = f.now.Add(30 * time.Minute)
	first, err := f.service.CheckOut(tx.ID.Hex())
	require.NoError(t, err)

	// a second check-out hours later must fail, not re-settle the ticket
	// against the new clock at a higher bracket
	f.now = f.now.Add(2 * time.Hour)
	_, err = f.service.CheckOut(tx.ID.Hex())
	assert.Error(t, err)

	stored, err := f.service.GetTransaction(tx.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, first.Price, stored.Price)
	assert.Equal(t, first.DurationMin, stored.DurationMin)
	assert.Equal(t, *first.ExitTime, *stored.ExitTime)
}

func TestCancelTwiceFails(t *testing.T) {
	f := newTxFixture(t)

	tx, err := f.service.CheckIn(&CheckInRequest{PlateNumber: "B 1234 XYZ", VehicleTypeID: f.motor.ID.Hex()})
	require.NoError(t, err)

	_, err = f.service.Cancel(tx.ID.Hex())
	require.NoError(t, err)

	_, err = f.service.Cancel(tx.ID.Hex())
	assert.Error(t, err)
}

func TestCancel(t *testing.T) {
	f := newTxFixture(t)

	tx, err := f.service.CheckIn(&CheckInRequest{PlateNumber: "B 1234 XYZ", VehicleTypeID: f.motor.ID.Hex()})
	require.NoError(t, err)

	cancelled, err := f.service.Cancel(tx.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, models.TransactionCancelled, cancelled.Status)
	assert.Equal(t, int64(0), cancelled.Price)

	// a cancelled ticket frees the plate for a fresh check-in
	_, err = f.service.CheckIn(&CheckInRequest{PlateNumber: "B 1234 XYZ", VehicleTypeID: f.motor.ID.Hex()})
	assert.NoError(t, err)
}

func TestCancelCompletedFails(t *testing.T) {
	f := newTxFixture(t)

	tx, err := f.service.CheckIn(&CheckInRequest{PlateNumber: "B 1234 XYZ", VehicleTypeID: f.motor.ID.Hex()})
	require.NoError(t, err)

	f.now = f.now.Add(10 * time.Minute)
	_, err = f.service.CheckOut(tx.ID.Hex())
	require.NoError(t, err)

	_, err = f.service.Cancel(tx.ID.Hex())
	assert.Error(t, err)
}

func TestCheckOutNoTariffConfigured(t *testing.T) {
	ruleStore := newFakeRuleStore()
	typeStore := newFakeTypeStore()
	truk := typeStore.add("TRK")

	txStore := newFakeTxStore()
	service := NewTransactionService(txStore, typeStore, nil, NewTariffService(ruleStore, typeStore))
	now := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return now }

	tx, err := service.CheckIn(&CheckInRequest{PlateNumber: "B 9 TRK", VehicleTypeID: truk.ID.Hex()})
	require.NoError(t, err)

	now = now.Add(time.Hour)

	_, err = service.CheckOut(tx.ID.Hex())
	var noTariff *pricing.NoTariffError
	require.ErrorAs(t, err, &noTariff)

	// the failed check-out must not have closed the ticket
	stored, err := service.GetTransaction(tx.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, models.TransactionParked, stored.Status)
}
