package model

import "time"

// CacheEntry is a single key-value row with an expiration time.
type CacheEntry struct {
	Key       string    `gorm:"column:cache_key;primaryKey"`
	Value     string    `gorm:"column:value;not null"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null;index"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (*CacheEntry) TableName() string {
	return "cache_entries"
}
