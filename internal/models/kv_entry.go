package models

import "time"

// KVEntry is a persisted key-value document.
type KVEntry struct {
	Key       string    `gorm:"primaryKey;size:191" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName pins the table name used by the migrations.
func (KVEntry) TableName() string {
	return "kv_entries"
}
