package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TariffRule maps a duration bracket to a fixed price for one vehicle type.
// DurationMax of nil means the bracket is open-ended. Prices are whole
// Rupiah, no minor units. Deleted rules keep their history (status flag,
// never removed from the collection).
//
// Brackets are not checked for overlap or gaps at write time; the resolver
// in internal/pricing breaks ties deterministically instead.
type TariffRule struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VehicleTypeID primitive.ObjectID `bson:"vehicle_type_id" json:"vehicleTypeId"`
	DurationMin   int                `bson:"durasi_min" json:"durationMin"`
	DurationMax   *int               `bson:"durasi_max,omitempty" json:"durationMax,omitempty"`
	Price         int64              `bson:"harga" json:"price"`
	Status        string             `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updatedAt"`
}
