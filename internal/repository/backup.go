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

type BackupRepository struct {
	collection *mongo.Collection
}

func NewBackupRepository(db *mongo.Database) *BackupRepository {
	return &BackupRepository{
		collection: db.Collection("backup_history"),
	}
}

func (r *BackupRepository) Create(history *models.BackupHistory) (*models.BackupHistory, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, history)
	if err != nil {
		return nil, err
	}

	history.ID = result.InsertedID.(primitive.ObjectID)
	return history, nil
}

func (r *BackupRepository) FindByID(id string) (*models.BackupHistory, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.New("invalid backup ID")
	}

	var history models.BackupHistory
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&history)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("backup record not found")
		}
		return nil, err
	}

	return &history, nil
}

func (r *BackupRepository) FindAll() ([]*models.BackupHistory, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var histories []*models.BackupHistory
	for cursor.Next(ctx) {
		var history models.BackupHistory
		if err := cursor.Decode(&history); err != nil {
			return nil, err
		}
		histories = append(histories, &history)
	}

	return histories, nil
}

// Delete removes a history row. This is the only mutation allowed after
// creation, and only through explicit admin action.
func (r *BackupRepository) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.New("invalid backup ID")
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return errors.New("backup record not found")
	}

	return nil
}
