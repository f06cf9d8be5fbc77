package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Profile holds the static profile fields owned by the profile features
// of the app. Matching reads them for compatibility checks and the chat
// reveal policy discloses them tier by tier.
type Profile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`
	Gender    Gender    `gorm:"not null;check:gender IN ('male','female')" json:"gender"`
	Age       int       `gorm:"not null" json:"age"`
	Height    int       `json:"height"`
	Major     string    `json:"major"`
	MBTI      string    `gorm:"column:mbti" json:"mbti"`
	Hobbies   string    `json:"hobbies"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
