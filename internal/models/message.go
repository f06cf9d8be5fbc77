package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageType string

const (
	MessageText  MessageType = "text"
	MessageImage MessageType = "image"
)

// ChatMessage belongs to exactly one matching. Rows are immutable once
// created; the only write after creation is a hard delete by the sender.
type ChatMessage struct {
	ID         uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	MatchingID uuid.UUID   `gorm:"type:uuid;not null;index:idx_matching_created,priority:1" json:"matchingId"`
	SenderID   uuid.UUID   `gorm:"type:uuid;not null" json:"senderId"`
	Content    string      `json:"message,omitempty"`   // message text for type=text
	Reference  string      `json:"reference,omitempty"` // upload reference for type=image
	Type       MessageType `gorm:"not null;default:'text'" json:"type"`
	CreatedAt  time.Time   `gorm:"index:idx_matching_created,priority:2" json:"createdAt"`

	Sender User `gorm:"foreignKey:SenderID" json:"-"`
}

func (m *ChatMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
