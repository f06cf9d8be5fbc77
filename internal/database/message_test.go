package database_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuslink/campuslink-backend/internal/models"
)

func TestGetMatchingMessagesOrderAndSender(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	sender := &models.User{Nickname: "minsu", Email: "minsu@campus.test", PasswordHash: "x"}
	require.NoError(t, db.SaveUser(ctx, sender))

	matchingID := uuid.New()
	base := time.Now().Add(-time.Minute)
	for i := 0; i < 3; i++ {
		require.NoError(t, db.SaveMessage(ctx, &models.ChatMessage{
			MatchingID: matchingID,
			SenderID:   sender.ID,
			Content:    fmt.Sprintf("message %d", i),
			Type:       models.MessageText,
			CreatedAt:  base.Add(time.Duration(i) * time.Second),
		}))
	}

	messages, err := db.GetMatchingMessages(ctx, matchingID, 50, 0)
	require.NoError(t, err)
	require.Len(t, messages, 3)

	// newest first, sender preloaded
	assert.Equal(t, "message 2", messages[0].Content)
	assert.Equal(t, "message 0", messages[2].Content)
	assert.Equal(t, "minsu", messages[0].Sender.Nickname)

	// pagination walks backwards through history
	page, err := db.GetMatchingMessages(ctx, matchingID, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "message 1", page[0].Content)
}

func TestCountMessagesFollowsDeletes(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	sender := &models.User{Nickname: "jiho", Email: "jiho@campus.test", PasswordHash: "x"}
	require.NoError(t, db.SaveUser(ctx, sender))

	matchingID := uuid.New()
	msg := &models.ChatMessage{
		MatchingID: matchingID,
		SenderID:   sender.ID,
		Content:    "hello",
		Type:       models.MessageText,
		CreatedAt:  time.Now(),
	}
	require.NoError(t, db.SaveMessage(ctx, msg))

	count, err := db.CountMessages(ctx, matchingID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, db.DeleteMessage(ctx, msg.ID))

	count, err = db.CountMessages(ctx, matchingID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
