package matching

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/campuslink/campuslink-backend/internal/apperr"
	"github.com/campuslink/campuslink-backend/internal/database"
	"github.com/campuslink/campuslink-backend/internal/models"
)

// PreferenceInput is the payload for creating a preference.
type PreferenceInput struct {
	PreferredGender models.PreferredGender
	MinAge          *int
	MaxAge          *int
	Algorithm       models.Algorithm
}

func validGender(g models.PreferredGender) bool {
	switch g {
	case models.PreferMale, models.PreferFemale, models.PreferAll:
		return true
	}
	return false
}

func validAlgorithm(a models.Algorithm) bool {
	switch a {
	case models.AlgorithmRandom, models.AlgorithmAffinity:
		return true
	}
	return false
}

func validateAgeRange(minAge, maxAge *int) error {
	if minAge != nil && *minAge < 0 {
		return apperr.Validation("INVALID_AGE_RANGE", "minAge must not be negative")
	}
	if minAge != nil && maxAge != nil && *minAge > *maxAge {
		return apperr.Validation("INVALID_AGE_RANGE", "minAge must not exceed maxAge")
	}
	return nil
}

// CreatePreference sets up the user's pairing filter. At most one per
// user; a second create is a conflict.
func (s *Service) CreatePreference(ctx context.Context, userID uuid.UUID, in PreferenceInput) (*models.MatchingPreference, error) {
	if !validGender(in.PreferredGender) {
		return nil, apperr.Validation("INVALID_GENDER", "preferredGender must be one of male, female, all")
	}
	if in.Algorithm == "" {
		in.Algorithm = models.AlgorithmRandom
	}
	if !validAlgorithm(in.Algorithm) {
		return nil, apperr.Validation("INVALID_ALGORITHM", "algorithm must be one of random, affinity_based")
	}
	if err := validateAgeRange(in.MinAge, in.MaxAge); err != nil {
		return nil, err
	}

	if _, err := s.db.GetPreference(ctx, userID); err == nil {
		return nil, apperr.ErrPreferenceExists
	} else if !errors.Is(err, database.ErrNotFound) {
		return nil, apperr.Map(err)
	}

	pref := &models.MatchingPreference{
		UserID:          userID,
		PreferredGender: in.PreferredGender,
		MinAge:          in.MinAge,
		MaxAge:          in.MaxAge,
		Algorithm:       in.Algorithm,
		IsActive:        true,
	}
	if err := s.db.CreatePreference(ctx, pref); err != nil {
		// a concurrent create can slip past the existence check; the
		// unique index on user_id catches it
		if errors.Is(err, database.ErrDuplicate) {
			return nil, apperr.ErrPreferenceExists
		}
		return nil, apperr.Map(err)
	}
	return pref, nil
}

func (s *Service) GetPreference(ctx context.Context, userID uuid.UUID) (*models.MatchingPreference, error) {
	pref, err := s.db.GetPreference(ctx, userID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, apperr.ErrPreferenceNotConfigured
	}
	if err != nil {
		return nil, apperr.Map(err)
	}
	return pref, nil
}

// UpdatePreference applies only the provided fields.
func (s *Service) UpdatePreference(ctx context.Context, userID uuid.UUID, upd database.PreferenceUpdate) (*models.MatchingPreference, error) {
	if upd.PreferredGender != nil && !validGender(*upd.PreferredGender) {
		return nil, apperr.Validation("INVALID_GENDER", "preferredGender must be one of male, female, all")
	}
	if upd.Algorithm != nil && !validAlgorithm(*upd.Algorithm) {
		return nil, apperr.Validation("INVALID_ALGORITHM", "algorithm must be one of random, affinity_based")
	}
	if err := validateAgeRange(upd.MinAge, upd.MaxAge); err != nil {
		return nil, err
	}

	pref, err := s.db.UpdatePreference(ctx, userID, upd)
	if errors.Is(err, database.ErrNotFound) {
		return nil, apperr.ErrPreferenceNotConfigured
	}
	if err != nil {
		return nil, apperr.Map(err)
	}
	return pref, nil
}

// DeletePreference removes the user from future pairing; existing
// matchings are untouched. The queue entry goes with it.
func (s *Service) DeletePreference(ctx context.Context, userID uuid.UUID) error {
	if err := s.db.DeletePreference(ctx, userID); err != nil {
		return apperr.Map(err)
	}
	return apperr.Map(s.db.RemoveFromQueue(ctx, userID))
}

// SetPreferenceActive flips the active flag without touching the filter.
func (s *Service) SetPreferenceActive(ctx context.Context, userID uuid.UUID, active bool) error {
	err := s.db.SetPreferenceActive(ctx, userID, active)
	if errors.Is(err, database.ErrNotFound) {
		return apperr.ErrPreferenceNotConfigured
	}
	return apperr.Map(err)
}
