package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	BackupTypeFull    = 1
	BackupTypePartial = 2
)

// BackupHistory is an append-only audit record of a database backup run.
// Rows are never mutated; they disappear only through explicit admin
// deletion.
type BackupHistory struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Filename    string             `bson:"filename" json:"filename"`
	BackupType  int                `bson:"backup_type" json:"backupType"`
	Collections []string           `bson:"collections" json:"collections"`
	SizeBytes   int64              `bson:"size_bytes" json:"sizeBytes"`
	Location    string             `bson:"location" json:"location"`
	CreatedBy   primitive.ObjectID `bson:"created_by" json:"createdBy"`
	Notes       string             `bson:"notes" json:"notes"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
}
