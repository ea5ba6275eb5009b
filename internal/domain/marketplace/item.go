package marketplace

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MarketplaceItem struct {
	ID            uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	MarketplaceID uuid.UUID    `gorm:"type:uuid;not null;index" json:"marketplaceId"`
	Marketplace   *Marketplace `gorm:"foreignKey:MarketplaceID;references:ID;constraint:OnDelete:RESTRICT" json:"-"`
	Title         string       `gorm:"column:title;not null" json:"title"`
	Description   string       `gorm:"column:description;type:text;not null" json:"description"`
	PriceInCents  int64        `gorm:"column:price_in_cents;not null;default:0" json:"priceInCents"`
	PostedBy      string       `gorm:"column:posted_by;not null;index" json:"postedBy"`
	State         State        `gorm:"column:state;type:text;not null;default:'active';index" json:"-"`

	Images []MarketplaceItemImage `gorm:"foreignKey:MarketplaceItemID;references:ID" json:"-"`

	CreatedAt time.Time      `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime;not null" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt"`
}

func (MarketplaceItem) TableName() string { return "marketplace_item" }

func (i *MarketplaceItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.State == "" {
		i.State = StateActive
	}
	return nil
}

func (i *MarketplaceItem) Visible() bool {
	return i != nil && i.State.IsActive() && !i.DeletedAt.Valid
}

// ImageURL is the location of the first-inserted active image, or nil.
func (i *MarketplaceItem) ImageURL() *string {
	if i == nil {
		return nil
	}
	for idx := range i.Images {
		img := i.Images[idx]
		if img.Active && !img.DeletedAt.Valid && img.StorageLocation != "" {
			loc := img.StorageLocation
			return &loc
		}
	}
	return nil
}

func (i MarketplaceItem) MarshalJSON() ([]byte, error) {
	type alias MarketplaceItem
	return json.Marshal(struct {
		alias
		Active bool `json:"active"`
	}{alias: alias(i), Active: i.State.IsActive() && !i.DeletedAt.Valid})
}

// ItemSummary is one row of a paged item listing.
type ItemSummary struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	PriceInCents int64     `json:"priceInCents"`
	PostedBy     string    `json:"postedBy"`
	ImageURL     *string   `json:"imageUrl"`
	CreatedAt    time.Time `json:"createdAt"`
}

func NewItemSummary(i *MarketplaceItem) ItemSummary {
	return ItemSummary{
		ID:           i.ID,
		Title:        i.Title,
		Description:  i.Description,
		PriceInCents: i.PriceInCents,
		PostedBy:     i.PostedBy,
		ImageURL:     i.ImageURL(),
		CreatedAt:    i.CreatedAt,
	}
}

// ItemDetail is the single-item read model, carrying the owning scope.
type ItemDetail struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	PriceInCents  int64     `json:"priceInCents"`
	PostedBy      string    `json:"postedBy"`
	ImageURL      *string   `json:"imageUrl"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	ExperienceID  string    `json:"experienceId"`
	MarketplaceID uuid.UUID `json:"marketplaceId"`
}

func NewItemDetail(i *MarketplaceItem, experienceID string) ItemDetail {
	return ItemDetail{
		ID:            i.ID,
		Title:         i.Title,
		Description:   i.Description,
		PriceInCents:  i.PriceInCents,
		PostedBy:      i.PostedBy,
		ImageURL:      i.ImageURL(),
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
		ExperienceID:  experienceID,
		MarketplaceID: i.MarketplaceID,
	}
}

// ItemPage is a window of items plus the total visible count.
type ItemPage struct {
	Items   []ItemSummary `json:"items"`
	Total   int64         `json:"total"`
	HasMore bool          `json:"hasMore"`
}

// Page is an already validated limit/skip pair.
type Page struct {
	Limit int
	Skip  int
}
