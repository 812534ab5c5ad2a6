package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gelirgider/internal/models"
	"gelirgider/internal/store"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVStore persists ledger documents in the kv_entries table.
type KVStore struct {
	db  *gorm.DB
	now func() time.Time
}

var _ store.Persister = (*KVStore)(nil)

// NewKVStore creates a KVStore over db.
func NewKVStore(db *gorm.DB) *KVStore {
	return &KVStore{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// Load returns the value stored under key.
func (s *KVStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var entry models.KVEntry
	err := s.db.WithContext(ctx).Where(&models.KVEntry{Key: key}).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load %q: %w", key, err)
	}
	return []byte(entry.Value), true, nil
}

// Save inserts or replaces the value stored under key.
func (s *KVStore) Save(ctx context.Context, key string, value []byte) error {
	entry := models.KVEntry{Key: key, Value: string(value), UpdatedAt: s.now()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}
	return nil
}
