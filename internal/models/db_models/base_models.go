package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"time"
)

// DocumentRecord is the PostgreSQL row holding one document of any collection.
type DocumentRecord struct {
	ID         string         `gorm:"type:uuid;primaryKey"`
	Collection string         `gorm:"type:varchar(64);not null;index"`
	Seq        int64          `gorm:"autoIncrement;uniqueIndex;not null"`
	Body       datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt  int64          `gorm:"autoCreateTime"`
	UpdatedAt  int64          `gorm:"autoUpdateTime"`
}

func (DocumentRecord) TableName() string {
	return "documents"
}

// Hooks to manage ids and int64 timestamps
func (r *DocumentRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		r.ID = id.String()
	}
	now := time.Now().Unix()
	r.CreatedAt = now
	r.UpdatedAt = now
	return nil
}

func (r *DocumentRecord) BeforeUpdate(tx *gorm.DB) error {
	r.UpdatedAt = time.Now().Unix()
	return nil
}
