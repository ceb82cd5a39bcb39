package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"parking-backend/internal/models"
	"parking-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// backupCollections are the collections a full backup exports.
var backupCollections = []string{
	"users",
	"vehicle_types",
	"tariff_rules",
	"vehicles",
	"transactions",
}

type BackupService struct {
	db         *mongo.Database
	backupRepo *repository.BackupRepository
	backupDir  string
}

func NewBackupService(db *mongo.Database, backupRepo *repository.BackupRepository, backupDir string) *BackupService {
	return &BackupService{
		db:         db,
		backupRepo: backupRepo,
		backupDir:  backupDir,
	}
}

type RunBackupRequest struct {
	BackupType  int      `json:"backupType" validate:"required,oneof=1 2"`
	Collections []string `json:"collections,omitempty"`
	Notes       string   `json:"notes"`
}

// Run exports the requested collections as extended JSON lines to a
// timestamped file and records the result as an append-only history row.
func (s *BackupService) Run(req *RunBackupRequest, creatorID string) (*models.BackupHistory, error) {
	creator, err := primitive.ObjectIDFromHex(creatorID)
	if err != nil {
		return nil, errors.New("invalid creator ID")
	}

	collections, err := s.resolveCollections(req)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.backupDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}

	filename := fmt.Sprintf("backup-%s.jsonl", time.Now().Format("20060102-150405"))
	path := filepath.Join(s.backupDir, filename)

	size, err := s.export(path, collections)
	if err != nil {
		// do not leave a partial file behind
		os.Remove(path)
		return nil, err
	}

	history := &models.BackupHistory{
		ID:          primitive.NewObjectID(),
		Filename:    filename,
		BackupType:  req.BackupType,
		Collections: collections,
		SizeBytes:   size,
		Location:    path,
		CreatedBy:   creator,
		Notes:       req.Notes,
		CreatedAt:   time.Now(),
	}

	return s.backupRepo.Create(history)
}

func (s *BackupService) resolveCollections(req *RunBackupRequest) ([]string, error) {
	if req.BackupType == models.BackupTypeFull {
		return backupCollections, nil
	}

	if len(req.Collections) == 0 {
		return nil, errors.New("partial backup requires at least one collection")
	}

	known := make(map[string]bool, len(backupCollections))
	for _, name := range backupCollections {
		known[name] = true
	}
	for _, name := range req.Collections {
		if !known[name] {
			return nil, fmt.Errorf("unknown collection %q", name)
		}
	}

	return req.Collections, nil
}

func (s *BackupService) export(path string, collections []string) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create backup file: %w", err)
	}
	defer file.Close()

	for _, name := range collections {
		cursor, err := s.db.Collection(name).Find(ctx, bson.M{})
		if err != nil {
			return 0, fmt.Errorf("failed to read collection %s: %w", name, err)
		}

		for cursor.Next(ctx) {
			line, err := bson.MarshalExtJSON(cursor.Current, false, false)
			if err != nil {
				cursor.Close(ctx)
				return 0, fmt.Errorf("failed to encode document from %s: %w", name, err)
			}
			if _, err := fmt.Fprintf(file, "{%q:%q,\"doc\":%s}\n", "collection", name, line); err != nil {
				cursor.Close(ctx)
				return 0, fmt.Errorf("failed to write backup file: %w", err)
			}
		}
		if err := cursor.Err(); err != nil {
			cursor.Close(ctx)
			return 0, err
		}
		cursor.Close(ctx)
	}

	info, err := file.Stat()
	if err != nil {
		return 0, err
	}

	return info.Size(), nil
}

func (s *BackupService) GetHistory() ([]*models.BackupHistory, error) {
	return s.backupRepo.FindAll()
}

// DeleteHistory removes a history row and best-effort removes the file.
func (s *BackupService) DeleteHistory(id string) error {
	history, err := s.backupRepo.FindByID(id)
	if err != nil {
		return err
	}

	if err := s.backupRepo.Delete(id); err != nil {
		return err
	}

	if err := os.Remove(history.Location); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to remove backup file %s: %v", history.Location, err)
	}

	return nil
}
