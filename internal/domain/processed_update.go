package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProcessedUpdate struct - Journal row recording an update that was accepted for processing
type ProcessedUpdate struct {
	ID        *uuid.UUID `gorm:"type:uuid;primary_key;"`
	UpdateID  int64      `gorm:"not null;uniqueIndex"`
	Kind      string     `gorm:"type:varchar(32);not null;"`
	ChatID    int64      `gorm:"index"`
	CreatedAt time.Time  `gorm:"type:timestamp;index"`
}

// TableName func
func (p *ProcessedUpdate) TableName() string {
	return "processed_updates"
}

// BeforeCreate hook - generates UUID before creating
func (p *ProcessedUpdate) BeforeCreate(tx *gorm.DB) (err error) {
	id, err := uuid.NewRandom() // v4
	if err != nil {
		return err
	}
	p.ID = &id
	return nil
}

// MigrateDatabase func - Auto-migrate database schema
func MigrateDatabase(db *gorm.DB) error {
	if db == nil {
		return gorm.ErrInvalidDB
	}
	return db.AutoMigrate(&ProcessedUpdate{})
}
