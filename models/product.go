package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is a piece of furniture with a 3D model. The dimension columns
// (WidthCm through MaxLoadKg) are independently nullable.
type Product struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name                 string    `gorm:"not null" json:"name"`
	Slug                 string    `gorm:"uniqueIndex;not null" json:"slug"`
	Description          string    `gorm:"type:text;not null" json:"description"`
	CategoryID           uuid.UUID `gorm:"type:uuid;not null;index" json:"categoryId"`
	Category             Category  `gorm:"foreignKey:CategoryID" json:"category"`
	ModelURL             string    `gorm:"not null" json:"modelUrl"`
	ThumbnailURL         string    `gorm:"not null" json:"thumbnailUrl"`
	BaseColor            *string   `json:"baseColor"`
	UseOriginalColor     bool      `gorm:"default:false" json:"useOriginalColor"`
	OriginalColorName    *string   `json:"originalColorName"`
	OriginalColorPreview *string   `json:"originalColorPreview"`
	IsFeatured           bool      `gorm:"default:false" json:"isFeatured"`

	WidthCm   *float64 `json:"widthCm"`
	HeightCm  *float64 `json:"heightCm"`
	DepthCm   *float64 `json:"depthCm"`
	WeightKg  *float64 `json:"weightKg"`
	Material  *string  `json:"material"`
	MaxLoadKg *float64 `json:"maxLoadKg"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Variants  []Variant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants,omitempty"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
