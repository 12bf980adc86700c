package kvcache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"metalprices/internal/model"
)

// PostgresStore keeps entries in the cache_entries table.
// Expired rows are overwritten by the next Put for the same key.
type PostgresStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db, now: time.Now}
}

func (that *PostgresStore) Get(ctx context.Context, key string) (string, error) {
	var entry model.CacheEntry

	query := that.db.WithContext(ctx).Where("cache_key = ? AND expires_at > ?", key, that.now())
	if err := query.Take(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("fetch cache entry from database: %w", err)
	}

	return entry.Value, nil
}

func (that *PostgresStore) Put(ctx context.Context, key string, value string, ttl time.Duration) error {
	entry := &model.CacheEntry{Key: key, Value: value, ExpiresAt: that.now().Add(ttl)}

	query := that.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cache_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
	})

	if err := query.Create(entry).Error; err != nil {
		return fmt.Errorf("upsert cache entry in database: %w", err)
	}

	return nil
}
