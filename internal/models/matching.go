package models

import (
	"bytes"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MatchingStatus string

const (
	MatchingActive    MatchingStatus = "active"
	MatchingCompleted MatchingStatus = "completed"
	MatchingBlocked   MatchingStatus = "blocked"
)

// ValidMatchingStatus reports whether s is one of the known literals.
func ValidMatchingStatus(s MatchingStatus) bool {
	switch s {
	case MatchingActive, MatchingCompleted, MatchingBlocked:
		return true
	}
	return false
}

// Matching is a time-boxed pairing between two users. completed and
// blocked are terminal; ExpiresAt is fixed at creation and never
// extended.
//
// PairLow/PairHigh hold the pair in normalized order under a partial
// unique index, so the database itself guarantees at most one active
// matching per unordered pair even when two creators race.
type Matching struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	User1ID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"user1Id"`
	User2ID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"user2Id"`
	PairLow   uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_active_pair,where:status = 'active'" json:"-"`
	PairHigh  uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_active_pair" json:"-"`
	Status    MatchingStatus `gorm:"not null;default:'active';check:status IN ('active','completed','blocked')" json:"status"`
	CreatedAt time.Time      `json:"createdAt"`
	ExpiresAt time.Time      `gorm:"not null;index" json:"expiresAt"`
}

func (m *Matching) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.PairLow, m.PairHigh = NormalizePair(m.User1ID, m.User2ID)
	return nil
}

// NormalizePair orders two user ids canonically so {a,b} and {b,a} map
// to the same pair key.
func NormalizePair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if bytes.Compare(a[:], b[:]) <= 0 {
		return a, b
	}
	return b, a
}

// HasParticipant reports whether userID is one of the two parties.
func (m *Matching) HasParticipant(userID uuid.UUID) bool {
	return m.User1ID == userID || m.User2ID == userID
}

// PartnerOf returns the other party of the pair.
func (m *Matching) PartnerOf(userID uuid.UUID) uuid.UUID {
	if m.User1ID == userID {
		return m.User2ID
	}
	return m.User1ID
}
