package database

import (
	"context"
	"time"

	"github.com/campuslink/campuslink-backend/internal/models"
	"github.com/google/uuid"
)

func (d *Database) SaveUser(ctx context.Context, user *models.User) error {
	return d.db.WithContext(ctx).Create(user).Error
}

func (d *Database) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := d.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *Database) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := d.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *Database) UpdateLastSeen(ctx context.Context, id uuid.UUID) error {
	return d.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("last_seen_at", time.Now()).Error
}

func (d *Database) SaveProfile(ctx context.Context, profile *models.Profile) error {
	return d.db.WithContext(ctx).Create(profile).Error
}

func (d *Database) GetProfileByUser(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := d.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}
