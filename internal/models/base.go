package models

import (
	"time"

	"fintrack/internal/uuid"

	"gorm.io/gorm"
)

// Base contains common columns for all tables. Identifiers are
// server-generated UUIDv7 strings; timestamps are assigned on create and
// refreshed on every update. Clients never supply any of these fields.
type Base struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New()
	}
	return nil
}
