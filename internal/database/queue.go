package database

import (
	"context"
	"time"

	"github.com/campuslink/campuslink-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

// Enqueue inserts a queue entry, or refreshes the existing one if the
// user is already waiting (re-requesting a match is idempotent).
func (d *Database) Enqueue(ctx context.Context, entry *models.QueueEntry) error {
	return d.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"preferred_gender", "min_age", "max_age", "algorithm",
				"gender", "age", "temperature", "enqueued_at",
			}),
		}).
		Create(entry).Error
}

// CandidateFilter describes the requester for a candidate scan. Gender
// and age checks are symmetric: the candidate must satisfy the
// requester's filter AND the requester must satisfy the candidate's.
type CandidateFilter struct {
	UserID          uuid.UUID
	Gender          models.Gender
	Age             int
	Temperature     float64
	PreferredGender models.PreferredGender
	MinAge          *int
	MaxAge          *int
	Affinity        bool
}

// FindCandidates returns queue entries mutually compatible with the
// requester, excluding anyone already in an active matching with them.
// Affinity orders by temperature distance, earliest enqueue breaking
// ties; otherwise entries come back in enqueue order.
func (d *Database) FindCandidates(ctx context.Context, f CandidateFilter) ([]models.QueueEntry, error) {
	now := time.Now()

	q := d.db.WithContext(ctx).
		Model(&models.QueueEntry{}).
		Where("user_id <> ?", f.UserID)

	// requester's filter over the candidate
	if f.PreferredGender != models.PreferAll {
		q = q.Where("gender = ?", f.PreferredGender)
	}
	if f.MinAge != nil {
		q = q.Where("age >= ?", *f.MinAge)
	}
	if f.MaxAge != nil {
		q = q.Where("age <= ?", *f.MaxAge)
	}

	// candidate's filter over the requester
	q = q.Where("preferred_gender IN ?", []models.PreferredGender{models.PreferAll, models.PreferredGender(f.Gender)}).
		Where("(min_age IS NULL OR min_age <= ?)", f.Age).
		Where("(max_age IS NULL OR max_age >= ?)", f.Age)

	// skip candidates already actively matched with the requester
	q = q.Where(`NOT EXISTS (
		SELECT 1 FROM matchings m
		WHERE m.status = ? AND m.expires_at > ?
		  AND ((m.user1_id = ? AND m.user2_id = queue_entries.user_id)
		    OR (m.user2_id = ? AND m.user1_id = queue_entries.user_id))
	)`, models.MatchingActive, now, f.UserID, f.UserID)

	if f.Affinity {
		q = q.Clauses(clause.OrderBy{
			Expression: clause.Expr{
				SQL:                "ABS(temperature - ?) ASC, enqueued_at ASC",
				Vars:               []interface{}{f.Temperature},
				WithoutParentheses: true,
			},
		})
	} else {
		q = q.Order("enqueued_at ASC")
	}

	var entries []models.QueueEntry
	if err := q.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ClaimQueueEntry removes the entry by id and reports whether this
// caller won the row. Two racing requesters can both see the same
// candidate; only the one whose delete takes effect pairs with it.
func (d *Database) ClaimQueueEntry(ctx context.Context, id uuid.UUID) (bool, error) {
	res := d.db.WithContext(ctx).Delete(&models.QueueEntry{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// RemoveFromQueue drops the user's entry ("stop matching").
func (d *Database) RemoveFromQueue(ctx context.Context, userID uuid.UUID) error {
	return d.db.WithContext(ctx).Delete(&models.QueueEntry{}, "user_id = ?", userID).Error
}

// PurgeStaleQueueEntries deletes entries older than ttl.
func (d *Database) PurgeStaleQueueEntries(ctx context.Context, ttl time.Duration) (int64, error) {
	res := d.db.WithContext(ctx).
		Where("enqueued_at < ?", time.Now().Add(-ttl)).
		Delete(&models.QueueEntry{})
	return res.RowsAffected, res.Error
}

func (d *Database) GetQueueEntry(ctx context.Context, userID uuid.UUID) (*models.QueueEntry, error) {
	var entry models.QueueEntry
	if err := d.db.WithContext(ctx).First(&entry, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}
