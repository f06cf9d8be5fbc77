package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PreferredGender string

const (
	PreferMale   PreferredGender = "male"
	PreferFemale PreferredGender = "female"
	PreferAll    PreferredGender = "all"
)

type Algorithm string

const (
	AlgorithmRandom   Algorithm = "random"
	AlgorithmAffinity Algorithm = "affinity_based"
)

// MatchingPreference is the per-user pairing filter. At most one row per
// user; deleting it only removes the user from future pairing.
type MatchingPreference struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`
	PreferredGender PreferredGender `gorm:"not null;check:preferred_gender IN ('male','female','all')" json:"preferredGender"`
	MinAge          *int            `json:"minAge"`
	MaxAge          *int            `json:"maxAge"`
	Algorithm       Algorithm       `gorm:"not null;default:'random'" json:"algorithm"`
	IsActive        bool            `gorm:"default:true" json:"isActive"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func (p *MatchingPreference) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
