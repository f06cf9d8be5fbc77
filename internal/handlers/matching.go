package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campuslink/campuslink-backend/internal/apperr"
	"github.com/campuslink/campuslink-backend/internal/database"
	"github.com/campuslink/campuslink-backend/internal/handlers/dto"
	"github.com/campuslink/campuslink-backend/internal/matching"
	"github.com/campuslink/campuslink-backend/internal/middleware"
	"github.com/campuslink/campuslink-backend/internal/models"
)

type MatchingHandler struct {
	svc *matching.Service
}

func NewMatchingHandler(svc *matching.Service) *MatchingHandler {
	return &MatchingHandler{svc: svc}
}

func callerID(c *gin.Context) uuid.UUID {
	return c.MustGet(middleware.UserIDKey).(uuid.UUID)
}

func (h *MatchingHandler) CreatePreference(c *gin.Context) {
	var req dto.CreatePreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	pref, err := h.svc.CreatePreference(c.Request.Context(), callerID(c), matching.PreferenceInput{
		PreferredGender: models.PreferredGender(req.PreferredGender),
		MinAge:          req.MinAge,
		MaxAge:          req.MaxAge,
		Algorithm:       models.Algorithm(req.Algorithm),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, pref)
}

func (h *MatchingHandler) GetPreference(c *gin.Context) {
	pref, err := h.svc.GetPreference(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, pref)
}

func (h *MatchingHandler) UpdatePreference(c *gin.Context) {
	var req dto.UpdatePreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	upd := database.PreferenceUpdate{MinAge: req.MinAge, MaxAge: req.MaxAge}
	if req.PreferredGender != nil {
		g := models.PreferredGender(*req.PreferredGender)
		upd.PreferredGender = &g
	}
	if req.Algorithm != nil {
		a := models.Algorithm(*req.Algorithm)
		upd.Algorithm = &a
	}

	pref, err := h.svc.UpdatePreference(c.Request.Context(), callerID(c), upd)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, pref)
}

func (h *MatchingHandler) DeletePreference(c *gin.Context) {
	if err := h.svc.DeletePreference(c.Request.Context(), callerID(c)); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, nil)
}

func (h *MatchingHandler) Activate(c *gin.Context) {
	if err := h.svc.SetPreferenceActive(c.Request.Context(), callerID(c), true); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, nil)
}

func (h *MatchingHandler) Deactivate(c *gin.Context) {
	if err := h.svc.SetPreferenceActive(c.Request.Context(), callerID(c), false); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, nil)
}

// MatchRandom pairs with any compatible waiting user.
func (h *MatchingHandler) MatchRandom(c *gin.Context) {
	h.requestMatch(c, models.AlgorithmRandom)
}

// MatchTempus pairs with the waiting user whose temperature is closest
// to the caller's.
func (h *MatchingHandler) MatchTempus(c *gin.Context) {
	h.requestMatch(c, models.AlgorithmAffinity)
}

func (h *MatchingHandler) requestMatch(c *gin.Context, algorithm models.Algorithm) {
	result, err := h.svc.RequestMatch(c.Request.Context(), callerID(c), algorithm)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, result)
}

// StopMatching removes the caller from the waiting queue.
func (h *MatchingHandler) StopMatching(c *gin.Context) {
	if err := h.svc.StopMatching(c.Request.Context(), callerID(c)); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, nil)
}

func (h *MatchingHandler) ActiveMatchings(c *gin.Context) {
	matchings, err := h.svc.ActiveMatchings(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, matchings)
}

func (h *MatchingHandler) UpdateStatus(c *gin.Context) {
	matchingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperr.Validation("INVALID_MATCHING_ID", "invalid matching id"))
		return
	}

	var req dto.UpdateMatchingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	updated, err := h.svc.UpdateStatus(c.Request.Context(), callerID(c), matchingID, models.MatchingStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, updated)
}

func (h *MatchingHandler) CloseMatching(c *gin.Context) {
	matchingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperr.Validation("INVALID_MATCHING_ID", "invalid matching id"))
		return
	}

	updated, err := h.svc.CloseMatching(c.Request.Context(), callerID(c), matchingID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, updated)
}
