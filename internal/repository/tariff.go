package repository

import (
	"context"
	"errors"
	"time"

	"parking-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TariffRepository struct {
	collection *mongo.Collection
}

func NewTariffRepository(db *mongo.Database) *TariffRepository {
	return &TariffRepository{
		collection: db.Collection("tariff_rules"),
	}
}

func (r *TariffRepository) Create(rule *models.TariffRule) (*models.TariffRule, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, rule)
	if err != nil {
		return nil, err
	}

	rule.ID = result.InsertedID.(primitive.ObjectID)
	return rule, nil
}

func (r *TariffRepository) FindByID(id string) (*models.TariffRule, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.New("invalid tariff rule ID")
	}

	var rule models.TariffRule
	err = r.collection.FindOne(ctx, bson.M{
		"_id":    objectID,
		"status": bson.M{"$ne": models.StatusDeleted},
	}).Decode(&rule)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("tariff rule not found")
		}
		return nil, err
	}

	return &rule, nil
}

// FindActiveByVehicleType returns one consistent snapshot of the active
// brackets for a vehicle type; resolution works entirely off this result.
func (r *TariffRepository) FindActiveByVehicleType(vehicleTypeID string) ([]*models.TariffRule, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(vehicleTypeID)
	if err != nil {
		return nil, errors.New("invalid vehicle type ID")
	}

	cursor, err := r.collection.Find(ctx, bson.M{
		"vehicle_type_id": objectID,
		"status":          models.StatusActive,
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rules []*models.TariffRule
	for cursor.Next(ctx) {
		var rule models.TariffRule
		if err := cursor.Decode(&rule); err != nil {
			return nil, err
		}
		rules = append(rules, &rule)
	}

	return rules, nil
}

// FindPage lists non-deleted rules, optionally restricted to one vehicle
// type, ordered by bracket start.
func (r *TariffRepository) FindPage(vehicleTypeID string, page, limit int) ([]*models.TariffRule, int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{"status": bson.M{"$ne": models.StatusDeleted}}
	if vehicleTypeID != "" {
		objectID, err := primitive.ObjectIDFromHex(vehicleTypeID)
		if err != nil {
			return nil, 0, errors.New("invalid vehicle type ID")
		}
		filter["vehicle_type_id"] = objectID
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "vehicle_type_id", Value: 1}, {Key: "durasi_min", Value: 1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var rules []*models.TariffRule
	for cursor.Next(ctx) {
		var rule models.TariffRule
		if err := cursor.Decode(&rule); err != nil {
			return nil, 0, err
		}
		rules = append(rules, &rule)
	}

	return rules, total, nil
}

func (r *TariffRepository) Update(id string, rule *models.TariffRule) (*models.TariffRule, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.New("invalid tariff rule ID")
	}

	rule.UpdatedAt = time.Now()

	update := bson.M{"$set": bson.M{
		"vehicle_type_id": rule.VehicleTypeID,
		"durasi_min":      rule.DurationMin,
		"harga":           rule.Price,
		"status":          rule.Status,
		"updated_at":      rule.UpdatedAt,
	}}
	// nil max means the bracket became open-ended; drop the field
	if rule.DurationMax != nil {
		update["$set"].(bson.M)["durasi_max"] = *rule.DurationMax
	} else {
		update["$unset"] = bson.M{"durasi_max": ""}
	}

	result := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID, "status": bson.M{"$ne": models.StatusDeleted}},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated models.TariffRule
	if err := result.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("tariff rule not found")
		}
		return nil, err
	}

	return &updated, nil
}

func (r *TariffRepository) SetStatus(id string, status string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.New("invalid tariff rule ID")
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{
		"$set": bson.M{"status": status, "updated_at": time.Now()},
	})
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return errors.New("tariff rule not found")
	}

	return nil
}

// SoftDelete hides the rule from every read path while preserving history.
func (r *TariffRepository) SoftDelete(id string) error {
	return r.SetStatus(id, models.StatusDeleted)
}

func (r *TariffRepository) CountByVehicleType(vehicleTypeID string) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(vehicleTypeID)
	if err != nil {
		return 0, errors.New("invalid vehicle type ID")
	}

	return r.collection.CountDocuments(ctx, bson.M{
		"vehicle_type_id": objectID,
		"status":          bson.M{"$ne": models.StatusDeleted},
	})
}
