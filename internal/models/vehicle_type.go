package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VehicleType classifies vehicles for tariff and slot sizing purposes.
// Unlike vehicles and tariff rules it is never soft-deleted; deletion is
// refused while anything still references the type.
type VehicleType struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Code        string             `bson:"code" json:"code" validate:"required,min=1,max=20"`
	Name        string             `bson:"name" json:"name" validate:"required,min=1,max=100"`
	Description string             `bson:"description" json:"description"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusDeleted  = "deleted"
)
