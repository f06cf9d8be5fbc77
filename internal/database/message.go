package database

import (
	"context"

	"github.com/campuslink/campuslink-backend/internal/models"
	"github.com/google/uuid"
)

func (d *Database) SaveMessage(ctx context.Context, message *models.ChatMessage) error {
	return d.db.WithContext(ctx).Create(message).Error
}

func (d *Database) GetMessage(ctx context.Context, id uuid.UUID) (*models.ChatMessage, error) {
	var message models.ChatMessage
	if err := d.db.WithContext(ctx).First(&message, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

func (d *Database) DeleteMessage(ctx context.Context, id uuid.UUID) error {
	return d.db.WithContext(ctx).Delete(&models.ChatMessage{}, "id = ?", id).Error
}

// GetMatchingMessages returns messages newest-first with the sender
// preloaded for the nickname join. Ties on created_at fall back to id
// so the order stays stable.
func (d *Database) GetMatchingMessages(ctx context.Context, matchingID uuid.UUID, limit, offset int) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := d.db.WithContext(ctx).
		Where("matching_id = ?", matchingID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Preload("Sender").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// CountMessages is the live recount the reveal policy is computed from.
func (d *Database) CountMessages(ctx context.Context, matchingID uuid.UUID) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).
		Model(&models.ChatMessage{}).
		Where("matching_id = ?", matchingID).
		Count(&count).Error
	return count, err
}
