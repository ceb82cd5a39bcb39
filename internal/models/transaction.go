package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ParkingTransaction struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	TicketNumber   string              `bson:"ticket_number" json:"ticketNumber"`
	PlateNumber    string              `bson:"plate_number" json:"plateNumber"`
	VehicleTypeID  primitive.ObjectID  `bson:"vehicle_type_id" json:"vehicleTypeId"`
	EntryTime      time.Time           `bson:"entry_time" json:"entryTime"`
	ExitTime       *time.Time          `bson:"exit_time,omitempty" json:"exitTime,omitempty"`
	DurationMin    int                 `bson:"duration_minutes" json:"durationMinutes"`
	AppliedRuleID  *primitive.ObjectID `bson:"applied_rule_id,omitempty" json:"appliedRuleId,omitempty"`
	Price          int64               `bson:"price" json:"price"`
	FormattedPrice string              `bson:"formatted_price" json:"formattedPrice"`
	Status         string              `bson:"status" json:"status"`
	Notes          string              `bson:"notes" json:"notes"`
	CreatedAt      time.Time           `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time           `bson:"updated_at" json:"updatedAt"`
}

const (
	TransactionParked    = "parked"
	TransactionCompleted = "completed"
	TransactionCancelled = "cancelled"
)

// transactionTransitions is the allowed state graph. Completed and
// cancelled are terminal.
var transactionTransitions = map[string][]string{
	TransactionParked:    {TransactionCompleted, TransactionCancelled},
	TransactionCompleted: {},
	TransactionCancelled: {},
}

// CanTransition reports whether from -> to is an allowed status change.
// Self transitions are rejected too: terminal states accept nothing, and
// re-entering parked would re-open a settled ticket.
func CanTransition(from, to string) bool {
	for _, s := range transactionTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ApplyTransition moves the transaction to the given status and stamps the
// exit time on terminal states. Callers pass now explicitly.
func (t *ParkingTransaction) ApplyTransition(to string, now time.Time) error {
	if !CanTransition(t.Status, to) {
		return fmt.Errorf("invalid transaction status transition: %s -> %s", t.Status, to)
	}

	t.Status = to
	t.UpdatedAt = now

	switch to {
	case TransactionCompleted, TransactionCancelled:
		if t.ExitTime == nil {
			exit := now
			t.ExitTime = &exit
		}
	}
	return nil
}
