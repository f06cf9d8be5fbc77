package matching

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/campuslink/campuslink-backend/internal/apperr"
	"github.com/campuslink/campuslink-backend/internal/database"
	"github.com/campuslink/campuslink-backend/internal/directory"
	"github.com/campuslink/campuslink-backend/internal/logger"
	"github.com/campuslink/campuslink-backend/internal/models"
	ws "github.com/campuslink/campuslink-backend/internal/websocket"
)

// StatusWaiting is returned when no compatible counterpart exists and
// the requester was parked in the queue.
const StatusWaiting = "waiting"

// Notifier pushes matching lifecycle events to connected users. The
// websocket hub implements it; tests pass nil.
type Notifier interface {
	SendToUser(userID uuid.UUID, eventType ws.EventType, data any)
}

// Service is the matching engine: it checks preconditions, scans the
// queue for a mutually compatible counterpart, claims it atomically and
// creates the matching - or parks the requester when nobody fits.
type Service struct {
	db       *database.Database
	profiles directory.ProfileDirectory
	users    directory.UserDirectory
	notifier Notifier
	matchTTL time.Duration
}

func NewService(
	db *database.Database,
	profiles directory.ProfileDirectory,
	users directory.UserDirectory,
	notifier Notifier,
	matchTTL time.Duration,
) *Service {
	return &Service{
		db:       db,
		profiles: profiles,
		users:    users,
		notifier: notifier,
		matchTTL: matchTTL,
	}
}

// MatchResult is the outcome of one pairing attempt. Either Matching is
// set (with the partner snapshot) or Status is "waiting".
type MatchResult struct {
	Matching       *models.Matching   `json:"matching"`
	PartnerProfile *directory.Profile `json:"partnerProfile,omitempty"`
	PartnerUser    *directory.User    `json:"partnerUser,omitempty"`
	Status         string             `json:"status,omitempty"`
}

// RequestMatch runs one atomic pairing attempt for userID with the
// given algorithm. Gender and age compatibility is symmetric: both
// sides' filters must accept the other.
//
// Racing requesters can pick the same queue entry; the conditional
// delete decides the winner and the loser moves on to the next
// candidate, falling back to being enqueued itself.
func (s *Service) RequestMatch(ctx context.Context, userID uuid.UUID, algorithm models.Algorithm) (*MatchResult, error) {
	pref, err := s.db.GetPreference(ctx, userID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, apperr.ErrPreferenceNotConfigured
	}
	if err != nil {
		return nil, apperr.Map(err)
	}
	if !pref.IsActive {
		return nil, apperr.ErrPreferenceInactive
	}

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, apperr.Map(err)
	}
	if profile == nil {
		return nil, apperr.ErrProfileNotFound
	}

	temperature, err := s.users.GetTemperature(ctx, userID)
	if err != nil {
		return nil, apperr.Map(err)
	}

	candidates, err := s.db.FindCandidates(ctx, database.CandidateFilter{
		UserID:          userID,
		Gender:          profile.Gender,
		Age:             profile.Age,
		Temperature:     temperature,
		PreferredGender: pref.PreferredGender,
		MinAge:          pref.MinAge,
		MaxAge:          pref.MaxAge,
		Affinity:        algorithm == models.AlgorithmAffinity,
	})
	if err != nil {
		return nil, apperr.Map(err)
	}

	for i := range candidates {
		candidate := &candidates[i]

		claimed, err := s.db.ClaimQueueEntry(ctx, candidate.ID)
		if err != nil {
			return nil, apperr.Map(err)
		}
		if !claimed {
			// another requester won this entry
			continue
		}

		matching, err := s.db.CreateMatching(ctx, userID, candidate.UserID, time.Now().Add(s.matchTTL))
		if errors.Is(err, database.ErrDuplicatePairing) {
			// the pair got matched concurrently through the other side
			continue
		}
		if err != nil {
			return nil, apperr.Map(err)
		}

		// the requester may hold an entry from an earlier waiting
		// request; pairing removes both sides from the queue
		if err := s.db.RemoveFromQueue(ctx, userID); err != nil {
			logger.Warn("failed to drop requester queue entry", "user", userID, "err", err)
		}

		result, err := s.buildResult(ctx, matching, candidate.UserID)
		if err != nil {
			return nil, err
		}

		s.notifyPairing(ctx, matching, userID, candidate.UserID, profile, result)

		logger.Info("matching created",
			"matching", matching.ID,
			"requester", userID,
			"partner", candidate.UserID,
			"algorithm", algorithm)

		return result, nil
	}

	// no counterpart: park the requester with a snapshot of the
	// preference and their own attributes
	entry := &models.QueueEntry{
		UserID:          userID,
		PreferredGender: pref.PreferredGender,
		MinAge:          pref.MinAge,
		MaxAge:          pref.MaxAge,
		Algorithm:       algorithm,
		Gender:          profile.Gender,
		Age:             profile.Age,
		Temperature:     temperature,
		EnqueuedAt:      time.Now(),
	}
	if err := s.db.Enqueue(ctx, entry); err != nil {
		return nil, apperr.Map(err)
	}

	logger.Debug("requester enqueued", "user", userID, "algorithm", algorithm)

	return &MatchResult{Status: StatusWaiting}, nil
}

func (s *Service) buildResult(ctx context.Context, matching *models.Matching, partnerID uuid.UUID) (*MatchResult, error) {
	partnerProfile, err := s.profiles.GetProfile(ctx, partnerID)
	if err != nil {
		return nil, apperr.Map(err)
	}
	partnerUser, err := s.users.GetUser(ctx, partnerID)
	if err != nil {
		return nil, apperr.Map(err)
	}
	return &MatchResult{
		Matching:       matching,
		PartnerProfile: partnerProfile,
		PartnerUser:    partnerUser,
	}, nil
}

// notifyPairing pushes match_found to both sides. The queued side gets
// the requester's snapshot, the requester's own connections mirror the
// REST response.
func (s *Service) notifyPairing(ctx context.Context, matching *models.Matching, requesterID, partnerID uuid.UUID, requesterProfile *directory.Profile, requesterResult *MatchResult) {
	if s.notifier == nil {
		return
	}

	requesterUser, err := s.users.GetUser(ctx, requesterID)
	if err != nil {
		logger.Warn("failed to load requester snapshot for push", "user", requesterID, "err", err)
		requesterUser = nil
	}

	s.notifier.SendToUser(partnerID, ws.TypeMatchFound, &MatchResult{
		Matching:       matching,
		PartnerProfile: requesterProfile,
		PartnerUser:    requesterUser,
	})
	s.notifier.SendToUser(requesterID, ws.TypeMatchFound, requesterResult)
}

// StopMatching removes the caller's queue entry, if any.
func (s *Service) StopMatching(ctx context.Context, userID uuid.UUID) error {
	return apperr.Map(s.db.RemoveFromQueue(ctx, userID))
}

// ActiveMatchings lists the caller's active, unexpired matchings.
func (s *Service) ActiveMatchings(ctx context.Context, userID uuid.UUID) ([]models.Matching, error) {
	matchings, err := s.db.FindActiveByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Map(err)
	}
	return matchings, nil
}

// UpdateStatus transitions the matching. Only a participant may do it
// and only active matchings can move; completed and blocked are
// terminal, attempting to leave them is a conflict error.
func (s *Service) UpdateStatus(ctx context.Context, callerID, matchingID uuid.UUID, status models.MatchingStatus) (*models.Matching, error) {
	if !models.ValidMatchingStatus(status) {
		return nil, apperr.Validation("INVALID_STATUS", "status must be one of active, completed, blocked")
	}

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

	updated, err := s.db.UpdateMatchingStatus(ctx, matchingID, status)
	if errors.Is(err, database.ErrMatchingClosed) {
		return nil, apperr.ErrMatchingClosed
	}
	if err != nil {
		return nil, apperr.Map(err)
	}

	if s.notifier != nil && (status == models.MatchingCompleted || status == models.MatchingBlocked) {
		s.notifier.SendToUser(updated.PartnerOf(callerID), ws.TypeMatchingClosed, updated)
	}

	return updated, nil
}

// CloseMatching is the DELETE form of closing: active -> completed.
func (s *Service) CloseMatching(ctx context.Context, callerID, matchingID uuid.UUID) (*models.Matching, error) {
	return s.UpdateStatus(ctx, callerID, matchingID, models.MatchingCompleted)
}
