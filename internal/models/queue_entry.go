package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QueueEntry parks a user waiting to be paired. It snapshots both the
// preference and the user's own attributes at enqueue time, so candidate
// scans and affinity ordering need no joins against live profile data.
type QueueEntry struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`

	// preference snapshot
	PreferredGender PreferredGender `gorm:"not null" json:"preferredGender"`
	MinAge          *int            `json:"minAge"`
	MaxAge          *int            `json:"maxAge"`
	Algorithm       Algorithm       `gorm:"not null" json:"algorithm"`

	// own attributes snapshot, used for the counterpart's filter
	Gender      Gender  `gorm:"not null" json:"gender"`
	Age         int     `gorm:"not null" json:"age"`
	Temperature float64 `gorm:"not null" json:"temperature"`

	EnqueuedAt time.Time `gorm:"not null;index" json:"enqueuedAt"`
}

func (q *QueueEntry) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}
