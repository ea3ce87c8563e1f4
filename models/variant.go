package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Variant is a color/texture option of a product. At most one variant per
// product has IsDefault set.
type Variant struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null;index" json:"productId"`
	Name       string    `gorm:"not null" json:"name"`
	ColorHex   string    `gorm:"not null" json:"colorHex"`
	TextureURL *string   `json:"textureUrl"`
	IsDefault  bool      `gorm:"default:false" json:"isDefault"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (v *Variant) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
