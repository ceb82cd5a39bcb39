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

type VehicleTypeRepository struct {
	collection *mongo.Collection
}

func NewVehicleTypeRepository(db *mongo.Database) *VehicleTypeRepository {
	return &VehicleTypeRepository{
		collection: db.Collection("vehicle_types"),
	}
}

func (r *VehicleTypeRepository) Create(vt *models.VehicleType) (*models.VehicleType, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, vt)
	if err != nil {
		return nil, err
	}

	vt.ID = result.InsertedID.(primitive.ObjectID)
	return vt, nil
}

func (r *VehicleTypeRepository) FindByID(id string) (*models.VehicleType, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.New("invalid vehicle type ID")
	}

	var vt models.VehicleType
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&vt)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("vehicle type not found")
		}
		return nil, err
	}

	return &vt, nil
}

func (r *VehicleTypeRepository) FindByCode(code string) (*models.VehicleType, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var vt models.VehicleType
	err := r.collection.FindOne(ctx, bson.M{"code": code}).Decode(&vt)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("vehicle type not found")
		}
		return nil, err
	}

	return &vt, nil
}

func (r *VehicleTypeRepository) FindAll() ([]*models.VehicleType, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "code", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var types []*models.VehicleType
	for cursor.Next(ctx) {
		var vt models.VehicleType
		if err := cursor.Decode(&vt); err != nil {
			return nil, err
		}
		types = append(types, &vt)
	}

	return types, nil
}

func (r *VehicleTypeRepository) Update(id string, vt *models.VehicleType) (*models.VehicleType, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.New("invalid vehicle type ID")
	}

	vt.UpdatedAt = time.Now()

	result := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": vt},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated models.VehicleType
	if err := result.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("vehicle type not found")
		}
		return nil, err
	}

	return &updated, nil
}

func (r *VehicleTypeRepository) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.New("invalid vehicle type ID")
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return errors.New("vehicle type not found")
	}

	return nil
}
