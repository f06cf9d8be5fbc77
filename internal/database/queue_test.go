package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuslink/campuslink-backend/internal/database"
	"github.com/campuslink/campuslink-backend/internal/models"
)

func queueEntry(userID uuid.UUID, gender models.Gender, age int, temperature float64) *models.QueueEntry {
	return &models.QueueEntry{
		UserID:          userID,
		PreferredGender: models.PreferAll,
		Algorithm:       models.AlgorithmRandom,
		Gender:          gender,
		Age:             age,
		Temperature:     temperature,
		EnqueuedAt:      time.Now(),
	}
}

func TestEnqueueUpsertsSingleRow(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	userID := uuid.New()

	first := queueEntry(userID, models.GenderMale, 21, 36.5)
	first.PreferredGender = models.PreferFemale
	require.NoError(t, db.Enqueue(ctx, first))

	// re-request with changed preference refreshes the same row
	second := queueEntry(userID, models.GenderMale, 21, 37.0)
	second.Algorithm = models.AlgorithmAffinity
	require.NoError(t, db.Enqueue(ctx, second))

	got, err := db.GetQueueEntry(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, models.PreferAll, got.PreferredGender)
	assert.Equal(t, models.AlgorithmAffinity, got.Algorithm)
	assert.Equal(t, 37.0, got.Temperature)

	entries, err := db.FindCandidates(ctx, database.CandidateFilter{
		UserID:          uuid.New(),
		Gender:          models.GenderFemale,
		Age:             22,
		PreferredGender: models.PreferAll,
	})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFindCandidatesSymmetricFilters(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	// candidate wants females aged 20-25
	picky := queueEntry(uuid.New(), models.GenderFemale, 22, 36.5)
	picky.PreferredGender = models.PreferFemale
	picky.MinAge = intPtr(20)
	picky.MaxAge = intPtr(25)
	require.NoError(t, db.Enqueue(ctx, picky))

	open := queueEntry(uuid.New(), models.GenderFemale, 23, 36.5)
	require.NoError(t, db.Enqueue(ctx, open))

	// male requester: picky rejects him even though he accepts her
	entries, err := db.FindCandidates(ctx, database.CandidateFilter{
		UserID:          uuid.New(),
		Gender:          models.GenderMale,
		Age:             22,
		PreferredGender: models.PreferFemale,
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, open.UserID, entries[0].UserID)

	// female requester of age 28: picky's age range rejects her
	entries, err = db.FindCandidates(ctx, database.CandidateFilter{
		UserID:          uuid.New(),
		Gender:          models.GenderFemale,
		Age:             28,
		PreferredGender: models.PreferAll,
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, open.UserID, entries[0].UserID)

	// female requester of age 22: both accept her
	entries, err = db.FindCandidates(ctx, database.CandidateFilter{
		UserID:          uuid.New(),
		Gender:          models.GenderFemale,
		Age:             22,
		PreferredGender: models.PreferAll,
	})
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestFindCandidatesExcludesActivePartner(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	requester, partner := uuid.New(), uuid.New()

	require.NoError(t, db.Enqueue(ctx, queueEntry(partner, models.GenderFemale, 22, 36.5)))

	_, err := db.CreateMatching(ctx, requester, partner, time.Now().Add(72*time.Hour))
	require.NoError(t, err)

	entries, err := db.FindCandidates(ctx, database.CandidateFilter{
		UserID:          requester,
		Gender:          models.GenderMale,
		Age:             22,
		PreferredGender: models.PreferAll,
	})
	require.NoError(t, err)
	assert.Empty(t, entries)

	// a fresh requester still sees the entry
	entries, err = db.FindCandidates(ctx, database.CandidateFilter{
		UserID:          uuid.New(),
		Gender:          models.GenderMale,
		Age:             22,
		PreferredGender: models.PreferAll,
	})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFindCandidatesAffinityOrder(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	cold := queueEntry(uuid.New(), models.GenderFemale, 22, 34.0)
	near := queueEntry(uuid.New(), models.GenderFemale, 22, 37.2)
	hot := queueEntry(uuid.New(), models.GenderFemale, 22, 41.0)
	for _, e := range []*models.QueueEntry{cold, near, hot} {
		require.NoError(t, db.Enqueue(ctx, e))
	}

	entries, err := db.FindCandidates(ctx, database.CandidateFilter{
		UserID:          uuid.New(),
		Gender:          models.GenderMale,
		Age:             22,
		Temperature:     37.0,
		PreferredGender: models.PreferAll,
		Affinity:        true,
	})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, near.UserID, entries[0].UserID)
	assert.Equal(t, cold.UserID, entries[1].UserID)
	assert.Equal(t, hot.UserID, entries[2].UserID)
}

func TestClaimQueueEntryOnlyOnce(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	entry := queueEntry(uuid.New(), models.GenderFemale, 22, 36.5)
	require.NoError(t, db.Enqueue(ctx, entry))

	claimed, err := db.ClaimQueueEntry(ctx, entry.ID)
	require.NoError(t, err)
	assert.True(t, claimed)

	// a racing second claim loses
	claimed, err = db.ClaimQueueEntry(ctx, entry.ID)
	require.NoError(t, err)
	assert.False(t, claimed)
}

func TestPurgeStaleQueueEntries(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	stale := queueEntry(uuid.New(), models.GenderFemale, 22, 36.5)
	stale.EnqueuedAt = time.Now().Add(-80 * time.Hour)
	require.NoError(t, db.Enqueue(ctx, stale))

	fresh := queueEntry(uuid.New(), models.GenderMale, 23, 36.5)
	require.NoError(t, db.Enqueue(ctx, fresh))

	purged, err := db.PurgeStaleQueueEntries(ctx, 72*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	_, err = db.GetQueueEntry(ctx, stale.UserID)
	assert.ErrorIs(t, err, database.ErrNotFound)

	_, err = db.GetQueueEntry(ctx, fresh.UserID)
	assert.NoError(t, err)
}
