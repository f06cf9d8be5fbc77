// Package directory exposes the profile and user lookups the matching
// core consumes. The rest of the campus app owns these tables; matching
// and chat only read them through these interfaces.
package directory

import (
	"context"
	"errors"

	"github.com/campuslink/campuslink-backend/internal/cache"
	"github.com/campuslink/campuslink-backend/internal/database"
	"github.com/campuslink/campuslink-backend/internal/models"
	"github.com/google/uuid"
)

// Profile is the snapshot handed to matching responses and the reveal
// policy.
type Profile struct {
	UserID  uuid.UUID     `json:"userId"`
	Gender  models.Gender `json:"gender"`
	Age     int           `json:"age"`
	Height  int           `json:"height"`
	Major   string        `json:"major"`
	MBTI    string        `json:"mbti"`
	Hobbies string        `json:"hobbies"`
}

type User struct {
	ID          uuid.UUID `json:"id"`
	Nickname    string    `json:"nickname"`
	Temperature float64   `json:"temperature"`
}

type ProfileDirectory interface {
	// GetProfile returns nil (not an error) when the user has no profile.
	GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error)
}

type UserDirectory interface {
	GetUser(ctx context.Context, userID uuid.UUID) (*User, error)
	// GetTemperature is cache-backed; affinity matching calls it on the
	// hot path.
	GetTemperature(ctx context.Context, userID uuid.UUID) (float64, error)
}

// GormDirectory reads profiles and users straight from the shared
// database, with a redis cache in front of temperature lookups.
type GormDirectory struct {
	db    *database.Database
	cache *cache.RedisCache
}

func NewGormDirectory(db *database.Database, c *cache.RedisCache) *GormDirectory {
	return &GormDirectory{db: db, cache: c}
}

func (d *GormDirectory) GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	profile, err := d.db.GetProfileByUser(ctx, userID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &Profile{
		UserID:  profile.UserID,
		Gender:  profile.Gender,
		Age:     profile.Age,
		Height:  profile.Height,
		Major:   profile.Major,
		MBTI:    profile.MBTI,
		Hobbies: profile.Hobbies,
	}, nil
}

func (d *GormDirectory) GetUser(ctx context.Context, userID uuid.UUID) (*User, error) {
	user, err := d.db.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if d.cache != nil {
		_ = d.cache.SetTemperature(ctx, userID, user.Temperature)
	}
	return &User{
		ID:          user.ID,
		Nickname:    user.Nickname,
		Temperature: user.Temperature,
	}, nil
}

func (d *GormDirectory) GetTemperature(ctx context.Context, userID uuid.UUID) (float64, error) {
	if d.cache != nil {
		if t, ok, err := d.cache.GetTemperature(ctx, userID); err == nil && ok {
			return t, nil
		}
	}

	user, err := d.db.GetUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	if d.cache != nil {
		_ = d.cache.SetTemperature(ctx, userID, user.Temperature)
	}
	return user.Temperature, nil
}
