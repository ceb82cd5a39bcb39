// Package pricing resolves parking tariffs: given the active duration
// brackets of one vehicle type and a parked duration, it picks the
// applicable bracket and computes the charge. It is a pure filter-then-rank
// function over an in-memory candidate set; fetching the candidates is the
// caller's job.
package pricing

import (
	"errors"
	"fmt"
)

type RuleStatus string

const (
	RuleActive   RuleStatus = "active"
	RuleInactive RuleStatus = "inactive"
	RuleDeleted  RuleStatus = "deleted"
)

// Rule is one duration bracket for one vehicle type. DurationMin and
// DurationMax are inclusive minutes; a nil DurationMax means the bracket is
// open-ended. Price is a whole-Rupiah amount.
type Rule struct {
	ID            string
	VehicleTypeID string
	DurationMin   int
	DurationMax   *int
	Price         int64
	Status        RuleStatus
}

// Match is the outcome of a successful resolution.
type Match struct {
	RuleID string
	Price  int64
}

var (
	ErrInvalidDuration = errors.New("duration must not be negative")
	ErrInvalidAmount   = errors.New("amount must not be negative")
)

// UnknownVehicleTypeError reports a resolution against a vehicle type that
// does not exist or has been deleted.
type UnknownVehicleTypeError struct {
	VehicleTypeID string
}

func (e *UnknownVehicleTypeError) Error() string {
	return fmt.Sprintf("unknown vehicle type %q", e.VehicleTypeID)
}

// NoTariffError reports that no active bracket covers the duration. It
// carries the inputs for diagnostics.
type NoTariffError struct {
	VehicleTypeID   string
	DurationMinutes int
}

func (e *NoTariffError) Error() string {
	return fmt.Sprintf("no tariff for vehicle type %q at %d minutes", e.VehicleTypeID, e.DurationMinutes)
}
