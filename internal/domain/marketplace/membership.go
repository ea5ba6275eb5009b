package marketplace

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Membership is a platform-provisioned record of a user's access to an experience.
type Membership struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ExperienceID string    `gorm:"column:experience_id;not null;index" json:"experienceId"`
	UserID       string    `gorm:"column:user_id;not null;index" json:"userId"`
	AccessLevel  string    `gorm:"column:access_level;not null;default:'customer'" json:"accessLevel"`

	CreatedAt time.Time      `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime;not null" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Membership) TableName() string { return "membership" }

func (m *Membership) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
