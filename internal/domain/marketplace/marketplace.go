package marketplace

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Marketplace struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ExperienceID string    `gorm:"column:experience_id;not null;index" json:"experienceId"`
	Title        string    `gorm:"column:title;not null" json:"title"`
	TakeRate     float64   `gorm:"column:take_rate;type:numeric(5,2);not null;default:0" json:"takeRate"`
	State        State     `gorm:"column:state;type:text;not null;default:'active';index" json:"-"`

	CreatedAt time.Time      `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime;not null" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt"`
}

func (Marketplace) TableName() string { return "marketplace" }

func (m *Marketplace) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.State == "" {
		m.State = StateActive
	}
	return nil
}

// Visible reports whether the marketplace can be read or listed into.
func (m *Marketplace) Visible() bool {
	return m != nil && m.State.IsActive() && !m.DeletedAt.Valid
}

func (m Marketplace) MarshalJSON() ([]byte, error) {
	type alias Marketplace
	return json.Marshal(struct {
		alias
		Active bool `json:"active"`
	}{alias: alias(m), Active: m.State.IsActive() && !m.DeletedAt.Valid})
}
