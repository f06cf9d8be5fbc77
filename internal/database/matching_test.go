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

func TestCreateMatchingRejectsDuplicatePair(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	user1, user2 := uuid.New(), uuid.New()

	_, err := db.CreateMatching(ctx, user1, user2, time.Now().Add(72*time.Hour))
	require.NoError(t, err)

	// same pair, either order
	_, err = db.CreateMatching(ctx, user2, user1, time.Now().Add(72*time.Hour))
	assert.ErrorIs(t, err, database.ErrDuplicatePairing)

	// other partners are fine
	_, err = db.CreateMatching(ctx, user1, uuid.New(), time.Now().Add(72*time.Hour))
	assert.NoError(t, err)
}

func TestCreateMatchingAllowsRepairingAfterClose(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	user1, user2 := uuid.New(), uuid.New()

	first, err := db.CreateMatching(ctx, user1, user2, time.Now().Add(72*time.Hour))
	require.NoError(t, err)

	_, err = db.UpdateMatchingStatus(ctx, first.ID, models.MatchingCompleted)
	require.NoError(t, err)

	// pair uniqueness only binds active matchings
	_, err = db.CreateMatching(ctx, user1, user2, time.Now().Add(72*time.Hour))
	assert.NoError(t, err)
}

func TestCreateMatchingSupersedesExpiredPair(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	user1, user2 := uuid.New(), uuid.New()

	// expired but not yet swept
	stale, err := db.CreateMatching(ctx, user1, user2, time.Now().Add(-time.Hour))
	require.NoError(t, err)

	fresh, err := db.CreateMatching(ctx, user2, user1, time.Now().Add(72*time.Hour))
	require.NoError(t, err)

	got, err := db.GetMatching(ctx, stale.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MatchingCompleted, got.Status)

	got, err = db.GetMatching(ctx, fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MatchingActive, got.Status)
}

func TestUpdateMatchingStatusTerminal(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	matching, err := db.CreateMatching(ctx, uuid.New(), uuid.New(), time.Now().Add(72*time.Hour))
	require.NoError(t, err)

	updated, err := db.UpdateMatchingStatus(ctx, matching.ID, models.MatchingBlocked)
	require.NoError(t, err)
	assert.Equal(t, models.MatchingBlocked, updated.Status)

	// blocked is terminal
	_, err = db.UpdateMatchingStatus(ctx, matching.ID, models.MatchingCompleted)
	assert.ErrorIs(t, err, database.ErrMatchingClosed)

	_, err = db.UpdateMatchingStatus(ctx, uuid.New(), models.MatchingCompleted)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestFindActiveByUser(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	user := uuid.New()

	active, err := db.CreateMatching(ctx, user, uuid.New(), time.Now().Add(72*time.Hour))
	require.NoError(t, err)

	expired, err := db.CreateMatching(ctx, user, uuid.New(), time.Now().Add(-time.Hour))
	require.NoError(t, err)

	closed, err := db.CreateMatching(ctx, user, uuid.New(), time.Now().Add(72*time.Hour))
	require.NoError(t, err)
	_, err = db.UpdateMatchingStatus(ctx, closed.ID, models.MatchingCompleted)
	require.NoError(t, err)

	matchings, err := db.FindActiveByUser(ctx, user)
	require.NoError(t, err)
	require.Len(t, matchings, 1)
	assert.Equal(t, active.ID, matchings[0].ID)
	assert.NotEqual(t, expired.ID, matchings[0].ID)
}

func TestCompleteExpiredMatchingsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	expired, err := db.CreateMatching(ctx, uuid.New(), uuid.New(), time.Now().Add(-time.Minute))
	require.NoError(t, err)
	alive, err := db.CreateMatching(ctx, uuid.New(), uuid.New(), time.Now().Add(72*time.Hour))
	require.NoError(t, err)

	count, err := db.CompleteExpiredMatchings(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// second run finds nothing left to move
	count, err = db.CompleteExpiredMatchings(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	got, err := db.GetMatching(ctx, expired.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MatchingCompleted, got.Status)

	got, err = db.GetMatching(ctx, alive.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MatchingActive, got.Status)
}
