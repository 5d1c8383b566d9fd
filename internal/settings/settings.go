// Package settings persists a small set of runtime overrides (currently:
// the Art-Net broadcast address) in a SQLite-backed key/value table, the
// only piece of state this service keeps outside the preset store — live
// panel/engine state is never persisted.
package settings

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/lucsky/cuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// KeyArtNetBroadcastAddress is the single key this service currently uses.
const KeyArtNetBroadcastAddress = "artnet_broadcast_address"

// Setting is one key/value row.
type Setting struct {
	ID        string `gorm:"primaryKey"`
	Key       string `gorm:"uniqueIndex"`
	Value     string
	UpdatedAt time.Time
}

// Store wraps a GORM connection over a pure-Go SQLite file.
type Store struct {
	db *gorm.DB
}

// Open connects to (creating if needed) the SQLite file at path and
// migrates the settings table.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("settings: create db directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("settings: open sqlite: %w", err)
	}
	if err := db.AutoMigrate(&Setting{}); err != nil {
		return nil, fmt.Errorf("settings: migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Get returns the value for key, or ok=false if unset.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var row Setting
	result := s.db.WithContext(ctx).First(&row, "key = ?", key)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return "", false, nil
		}
		return "", false, result.Error
	}
	return row.Value, true, nil
}

// Set upserts the value for key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	var row Setting
	result := s.db.WithContext(ctx).First(&row, "key = ?", key)
	if result.Error == gorm.ErrRecordNotFound {
		row = Setting{ID: cuid.New(), Key: key, Value: value, UpdatedAt: time.Now()}
		return s.db.WithContext(ctx).Create(&row).Error
	}
	if result.Error != nil {
		return result.Error
	}
	row.Value = value
	row.UpdatedAt = time.Now()
	return s.db.WithContext(ctx).Save(&row).Error
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
