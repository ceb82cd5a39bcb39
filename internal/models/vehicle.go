package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Vehicle struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PlateNumber   string             `bson:"plate_number" json:"plateNumber" validate:"required"`
	OwnerName     string             `bson:"owner_name" json:"ownerName"`
	VehicleTypeID primitive.ObjectID `bson:"vehicle_type_id" json:"vehicleTypeId"`
	Status        string             `bson:"status" json:"status"`
	Memberships   []Membership       `bson:"memberships" json:"memberships"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updatedAt"`
}

// Membership is a time-bounded validity window granting a vehicle a
// subscription parking arrangement. Both bounds are inclusive dates.
type Membership struct {
	StartDate time.Time `bson:"start_date" json:"startDate"`
	EndDate   time.Time `bson:"end_date" json:"endDate"`
	Kind      string    `bson:"kind" json:"kind"`
	Notes     string    `bson:"notes" json:"notes"`
}

// Contains reports whether ref falls inside the membership window.
func (m Membership) Contains(ref time.Time) bool {
	return !ref.Before(m.StartDate) && !ref.After(m.EndDate)
}

// CurrentMembership returns the membership valid at ref, or nil when none
// is. If several windows overlap, the one with the latest end date wins.
// The reference instant is explicit so callers stay testable.
func CurrentMembership(memberships []Membership, ref time.Time) *Membership {
	var current *Membership
	for i := range memberships {
		m := &memberships[i]
		if !m.Contains(ref) {
			continue
		}
		if current == nil || m.EndDate.After(current.EndDate) {
			current = m
		}
	}
	return current
}
