package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/campuslink/campuslink-backend/internal/database"
	"github.com/campuslink/campuslink-backend/internal/models"
)

// setup in-memory DB
func setupTestDB(t *testing.T) *database.Database {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := database.AutoMigrate(gdb); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return database.NewDatabase(gdb)
}

func intPtr(v int) *int { return &v }

func TestCreateAndGetPreference(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	userID := uuid.New()

	pref := &models.MatchingPreference{
		UserID:          userID,
		PreferredGender: models.PreferFemale,
		MinAge:          intPtr(20),
		MaxAge:          intPtr(26),
		Algorithm:       models.AlgorithmRandom,
		IsActive:        true,
	}
	require.NoError(t, db.CreatePreference(ctx, pref))

	got, err := db.GetPreference(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, models.PreferFemale, got.PreferredGender)
	assert.Equal(t, 20, *got.MinAge)

	// unique index rejects a second row for the same user
	dup := &models.MatchingPreference{
		UserID:          userID,
		PreferredGender: models.PreferAll,
		Algorithm:       models.AlgorithmRandom,
	}
	assert.ErrorIs(t, db.CreatePreference(ctx, dup), database.ErrDuplicate)
}

func TestUpdatePreferencePartial(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	userID := uuid.New()

	require.NoError(t, db.CreatePreference(ctx, &models.MatchingPreference{
		UserID:          userID,
		PreferredGender: models.PreferFemale,
		MinAge:          intPtr(20),
		Algorithm:       models.AlgorithmRandom,
		IsActive:        true,
	}))

	algo := models.AlgorithmAffinity
	updated, err := db.UpdatePreference(ctx, userID, database.PreferenceUpdate{
		Algorithm: &algo,
		MaxAge:    intPtr(25),
	})
	require.NoError(t, err)

	// untouched fields survive, provided ones change
	assert.Equal(t, models.PreferFemale, updated.PreferredGender)
	assert.Equal(t, 20, *updated.MinAge)
	assert.Equal(t, 25, *updated.MaxAge)
	assert.Equal(t, models.AlgorithmAffinity, updated.Algorithm)

	_, err = db.UpdatePreference(ctx, uuid.New(), database.PreferenceUpdate{MaxAge: intPtr(30)})
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestSetPreferenceActive(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	userID := uuid.New()

	require.NoError(t, db.CreatePreference(ctx, &models.MatchingPreference{
		UserID:          userID,
		PreferredGender: models.PreferAll,
		MinAge:          intPtr(20),
		Algorithm:       models.AlgorithmRandom,
		IsActive:        true,
	}))

	require.NoError(t, db.SetPreferenceActive(ctx, userID, false))

	got, err := db.GetPreference(ctx, userID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	// filter fields untouched
	assert.Equal(t, models.PreferAll, got.PreferredGender)
	assert.Equal(t, 20, *got.MinAge)

	assert.ErrorIs(t, db.SetPreferenceActive(ctx, uuid.New(), true), database.ErrNotFound)
}
