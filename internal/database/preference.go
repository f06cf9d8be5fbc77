package database

import (
	"context"
	"time"

	"github.com/campuslink/campuslink-backend/internal/models"
	"github.com/google/uuid"
)

func (d *Database) CreatePreference(ctx context.Context, pref *models.MatchingPreference) error {
	return d.db.WithContext(ctx).Create(pref).Error
}

func (d *Database) GetPreference(ctx context.Context, userID uuid.UUID) (*models.MatchingPreference, error) {
	var pref models.MatchingPreference
	if err := d.db.WithContext(ctx).First(&pref, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &pref, nil
}

// PreferenceUpdate carries the fields of a partial update. Nil means
// "leave unchanged".
type PreferenceUpdate struct {
	PreferredGender *models.PreferredGender
	MinAge          *int
	MaxAge          *int
	Algorithm       *models.Algorithm
}

// UpdatePreference applies only the provided fields and always refreshes
// updated_at.
func (d *Database) UpdatePreference(ctx context.Context, userID uuid.UUID, upd PreferenceUpdate) (*models.MatchingPreference, error) {
	var pref models.MatchingPreference
	if err := d.db.WithContext(ctx).First(&pref, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}

	updates := map[string]any{"updated_at": time.Now()}
	if upd.PreferredGender != nil {
		updates["preferred_gender"] = *upd.PreferredGender
	}
	if upd.MinAge != nil {
		updates["min_age"] = *upd.MinAge
	}
	if upd.MaxAge != nil {
		updates["max_age"] = *upd.MaxAge
	}
	if upd.Algorithm != nil {
		updates["algorithm"] = *upd.Algorithm
	}

	if err := d.db.WithContext(ctx).Model(&pref).Updates(updates).Error; err != nil {
		return nil, err
	}

	var fresh models.MatchingPreference
	if err := d.db.WithContext(ctx).First(&fresh, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &fresh, nil
}

func (d *Database) DeletePreference(ctx context.Context, userID uuid.UUID) error {
	return d.db.WithContext(ctx).Delete(&models.MatchingPreference{}, "user_id = ?", userID).Error
}

// SetPreferenceActive flips is_active without touching the filter fields.
func (d *Database) SetPreferenceActive(ctx context.Context, userID uuid.UUID, active bool) error {
	res := d.db.WithContext(ctx).
		Model(&models.MatchingPreference{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{"is_active": active, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
