package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/campuslink/campuslink-backend/internal/apperr"
	"github.com/campuslink/campuslink-backend/internal/database"
	"github.com/campuslink/campuslink-backend/internal/directory"
	"github.com/campuslink/campuslink-backend/internal/models"
	"github.com/campuslink/campuslink-backend/internal/reveal"
)

// Service orchestrates chat inside a matching: it is the sole writer of
// the message log, cross-checks matching validity against the registry
// instead of trusting the client, and derives the reveal state from a
// live message count on every read.
type Service struct {
	db       *database.Database
	profiles directory.ProfileDirectory
	users    directory.UserDirectory
}

func NewService(db *database.Database, profiles directory.ProfileDirectory, users directory.UserDirectory) *Service {
	return &Service{db: db, profiles: profiles, users: users}
}

// SendPayload is an incoming message. Text messages carry Message,
// image messages carry an upload Reference.
type SendPayload struct {
	Message   string
	Reference string
	Type      models.MessageType
}

// SendMessage appends a message after verifying the sender currently
// holds the matching as active.
func (s *Service) SendMessage(ctx context.Context, matchingID, senderID uuid.UUID, payload SendPayload) (*models.ChatMessage, error) {
	msgType := payload.Type
	if msgType == "" {
		msgType = models.MessageText
	}
	if msgType != models.MessageText && msgType != models.MessageImage {
		return nil, apperr.Validation("INVALID_MESSAGE_TYPE", "message type must be text or image")
	}

	_, err := s.db.FindActiveForParticipant(ctx, matchingID, senderID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, apperr.ErrInvalidMatching
	}
	if err != nil {
		return nil, apperr.Map(err)
	}

	switch msgType {
	case models.MessageText:
		if strings.TrimSpace(payload.Message) == "" {
			return nil, apperr.ErrEmptyMessage
		}
	case models.MessageImage:
		if payload.Reference == "" {
			return nil, apperr.Validation("MISSING_REFERENCE", "image message requires a reference")
		}
	}

	message := &models.ChatMessage{
		MatchingID: matchingID,
		SenderID:   senderID,
		Content:    payload.Message,
		Reference:  payload.Reference,
		Type:       msgType,
		CreatedAt:  time.Now(),
	}
	if err := s.db.SaveMessage(ctx, message); err != nil {
		return nil, apperr.Map(err)
	}

	return message, nil
}

// MessageView is a message joined with the sender's nickname.
type MessageView struct {
	ID             uuid.UUID          `json:"id"`
	MatchingID     uuid.UUID          `json:"matchingId"`
	SenderID       uuid.UUID          `json:"senderId"`
	SenderNickname string             `json:"senderNickname"`
	Message        string             `json:"message,omitempty"`
	Reference      string             `json:"reference,omitempty"`
	Type           models.MessageType `json:"type"`
	CreatedAt      time.Time          `json:"createdAt"`
}

// GetMessages returns messages newest-first. Participants of completed
// matchings can still read history; non-participants cannot.
func (s *Service) GetMessages(ctx context.Context, matchingID, callerID uuid.UUID, limit, offset int) ([]MessageView, error) {
	if _, err := s.requireParticipant(ctx, matchingID, callerID); err != nil {
		return nil, err
	}

	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	messages, err := s.db.GetMatchingMessages(ctx, matchingID, limit, offset)
	if err != nil {
		return nil, apperr.Map(err)
	}

	views := make([]MessageView, len(messages))
	for i, msg := range messages {
		views[i] = MessageView{
			ID:             msg.ID,
			MatchingID:     msg.MatchingID,
			SenderID:       msg.SenderID,
			SenderNickname: msg.Sender.Nickname,
			Message:        msg.Content,
			Reference:      msg.Reference,
			Type:           msg.Type,
			CreatedAt:      msg.CreatedAt,
		}
	}
	return views, nil
}

// RevealInfo is the reveal state plus the partner fields visible at the
// current level.
type RevealInfo struct {
	Level                  reveal.Level   `json:"level"`
	RevealedFields         []string       `json:"revealedFields"`
	MessagesUntilNextLevel int64          `json:"messagesUntilNextLevel"`
	Partner                map[string]any `json:"partner"`
}

// GetProfileRevealInfo recounts the message log and applies the reveal
// policy. Nothing is cached: deleting messages can lower the level and
// the next read reflects that immediately.
func (s *Service) GetProfileRevealInfo(ctx context.Context, matchingID, callerID uuid.UUID) (*RevealInfo, error) {
	matching, err := s.requireParticipant(ctx, matchingID, callerID)
	if err != nil {
		return nil, err
	}

	count, err := s.db.CountMessages(ctx, matchingID)
	if err != nil {
		return nil, apperr.Map(err)
	}
	state := reveal.Compute(count)

	partnerID := matching.PartnerOf(callerID)
	partnerProfile, err := s.profiles.GetProfile(ctx, partnerID)
	if err != nil {
		return nil, apperr.Map(err)
	}
	var partnerUser *directory.User
	if state.Level >= reveal.LevelFull {
		partnerUser, err = s.users.GetUser(ctx, partnerID)
		if err != nil {
			return nil, apperr.Map(err)
		}
	}

	return &RevealInfo{
		Level:                  state.Level,
		RevealedFields:         state.RevealedFields,
		MessagesUntilNextLevel: state.MessagesUntilNextLevel,
		Partner:                reveal.Apply(partnerProfile, partnerUser, state.Level),
	}, nil
}

// DeleteMessage hard-deletes the sender's own message. The reveal level
// is derived from a recount, so deletions can drop it.
func (s *Service) DeleteMessage(ctx context.Context, messageID, callerID uuid.UUID) error {
	message, err := s.db.GetMessage(ctx, messageID)
	if errors.Is(err, database.ErrNotFound) {
		return apperr.ErrMessageNotFound
	}
	if err != nil {
		return apperr.Map(err)
	}

	if message.SenderID != callerID {
		return apperr.ErrNotMessageSender
	}

	return apperr.Map(s.db.DeleteMessage(ctx, messageID))
}

func (s *Service) requireParticipant(ctx context.Context, matchingID, callerID uuid.UUID) (*models.Matching, error) {
	matching, err := s.db.GetMatching(ctx, matchingID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, apperr.ErrMatchingNotFound
	}
	if err != nil {
		return nil, apperr.Map(err)
	}
	if !matching.HasParticipant(callerID) {
		return nil, apperr.Forbidden("NOT_PARTICIPANT", "matching belongs to other users")
	}
	return matching, nil
}
