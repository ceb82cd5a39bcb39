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

type TransactionRepository struct {
	collection *mongo.Collection
}

func NewTransactionRepository(db *mongo.Database) *TransactionRepository {
	return &TransactionRepository{
		collection: db.Collection("transactions"),
	}
}

func (r *TransactionRepository) Create(tx *models.ParkingTransaction) (*models.ParkingTransaction, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, tx)
	if err != nil {
		return nil, err
	}

	tx.ID = result.InsertedID.(primitive.ObjectID)
	return tx, nil
}

func (r *TransactionRepository) FindByID(id string) (*models.ParkingTransaction, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.New("invalid transaction ID")
	}

	var tx models.ParkingTransaction
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&tx)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("transaction not found")
		}
		return nil, err
	}

	return &tx, nil
}

// FindOpenByPlate returns the in-progress transaction for a plate, if any.
// At most one should exist; check-in refuses duplicates through this.
func (r *TransactionRepository) FindOpenByPlate(plateNumber string) (*models.ParkingTransaction, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var tx models.ParkingTransaction
	err := r.collection.FindOne(ctx, bson.M{
		"plate_number": plateNumber,
		"status":       models.TransactionParked,
	}).Decode(&tx)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("transaction not found")
		}
		return nil, err
	}

	return &tx, nil
}

func (r *TransactionRepository) FindPage(status, plateNumber string, page, limit int) ([]*models.ParkingTransaction, int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	if plateNumber != "" {
		filter["plate_number"] = bson.M{"$regex": plateNumber, "$options": "i"}
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "entry_time", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var transactions []*models.ParkingTransaction
	for cursor.Next(ctx) {
		var tx models.ParkingTransaction
		if err := cursor.Decode(&tx); err != nil {
			return nil, 0, err
		}
		transactions = append(transactions, &tx)
	}

	return transactions, total, nil
}

func (r *TransactionRepository) Update(id string, tx *models.ParkingTransaction) (*models.ParkingTransaction, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.New("invalid transaction ID")
	}

	result := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": tx},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated models.ParkingTransaction
	if err := result.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("transaction not found")
		}
		return nil, err
	}

	return &updated, nil
}
