package marketplace

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type MarketplaceItemImage struct {
	ID                uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	MarketplaceItemID uuid.UUID         `gorm:"type:uuid;not null;index" json:"marketplaceItemId"`
	StorageKey        string            `gorm:"column:storage_key;not null" json:"-"`
	StorageLocation   string            `gorm:"column:storage_location;not null" json:"storageLocation"`
	Active            bool              `gorm:"column:active;not null;default:true" json:"active"`
	Metadata          datatypes.JSONMap `gorm:"column:metadata" json:"metadata,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime;not null" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (MarketplaceItemImage) TableName() string { return "marketplace_item_image" }

func (img *MarketplaceItemImage) BeforeCreate(tx *gorm.DB) error {
	if img.ID == uuid.Nil {
		img.ID = uuid.New()
	}
	return nil
}
