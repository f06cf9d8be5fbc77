package database

import (
	"context"
	"errors"
	"time"

	"github.com/campuslink/campuslink-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateMatching creates an active matching for the pair. Pair
// uniqueness is enforced by the partial unique index on the normalized
// pair columns, so two racing creators cannot both insert: the loser's
// insert fails and comes back as ErrDuplicatePairing. An expired pairing
// the sweep has not reached yet is completed first so it does not hold
// the index slot.
func (d *Database) CreateMatching(ctx context.Context, user1ID, user2ID uuid.UUID, expiresAt time.Time) (*models.Matching, error) {
	matching := &models.Matching{
		User1ID:   user1ID,
		User2ID:   user2ID,
		Status:    models.MatchingActive,
		ExpiresAt: expiresAt,
	}
	pairLow, pairHigh := models.NormalizePair(user1ID, user2ID)

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Matching{}).
			Where("pair_low = ? AND pair_high = ?", pairLow, pairHigh).
			Where("status = ? AND expires_at <= ?", models.MatchingActive, time.Now()).
			Update("status", models.MatchingCompleted).Error
		if err != nil {
			return err
		}
		return tx.Create(matching).Error
	})
	if errors.Is(err, ErrDuplicate) {
		return nil, ErrDuplicatePairing
	}
	if err != nil {
		return nil, err
	}
	return matching, nil
}

func (d *Database) GetMatching(ctx context.Context, id uuid.UUID) (*models.Matching, error) {
	var matching models.Matching
	if err := d.db.WithContext(ctx).First(&matching, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &matching, nil
}

// FindActiveByUser returns the user's active, unexpired matchings,
// newest first.
func (d *Database) FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]models.Matching, error) {
	var matchings []models.Matching
	err := d.db.WithContext(ctx).
		Where("status = ? AND expires_at > ?", models.MatchingActive, time.Now()).
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&matchings).Error
	if err != nil {
		return nil, err
	}
	return matchings, nil
}

// FindActiveForParticipant fetches the matching only if it is active,
// unexpired and the user is one of the two parties.
func (d *Database) FindActiveForParticipant(ctx context.Context, matchingID, userID uuid.UUID) (*models.Matching, error) {
	var matching models.Matching
	err := d.db.WithContext(ctx).
		Where("id = ? AND status = ? AND expires_at > ?", matchingID, models.MatchingActive, time.Now()).
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		First(&matching).Error
	if err != nil {
		return nil, err
	}
	return &matching, nil
}

// UpdateMatchingStatus moves an active matching into the given status.
// completed and blocked are terminal: the update is guarded on
// status='active', and losing that guard (already closed, or the expiry
// sweep got there first) returns ErrMatchingClosed.
func (d *Database) UpdateMatchingStatus(ctx context.Context, id uuid.UUID, status models.MatchingStatus) (*models.Matching, error) {
	var matching models.Matching
	if err := d.db.WithContext(ctx).First(&matching, "id = ?", id).Error; err != nil {
		return nil, err
	}

	if matching.Status == status {
		return &matching, nil
	}

	res := d.db.WithContext(ctx).
		Model(&models.Matching{}).
		Where("id = ? AND status = ?", id, models.MatchingActive).
		Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrMatchingClosed
	}

	matching.Status = status
	return &matching, nil
}

// CompleteExpiredMatchings bulk-moves every expired active matching to
// completed. Safe to run repeatedly and concurrently: the WHERE clause
// only ever selects rows still active.
func (d *Database) CompleteExpiredMatchings(ctx context.Context) (int64, error) {
	res := d.db.WithContext(ctx).
		Model(&models.Matching{}).
		Where("status = ? AND expires_at <= ?", models.MatchingActive, time.Now()).
		Update("status", models.MatchingCompleted)
	return res.RowsAffected, res.Error
}
