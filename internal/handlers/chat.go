package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campuslink/campuslink-backend/internal/apperr"
	"github.com/campuslink/campuslink-backend/internal/chat"
	"github.com/campuslink/campuslink-backend/internal/handlers/dto"
	"github.com/campuslink/campuslink-backend/internal/models"
)

type ChatHandler struct {
	svc *chat.Service
}

func NewChatHandler(svc *chat.Service) *ChatHandler {
	return &ChatHandler{svc: svc}
}

func matchingIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("matchingId"))
	if err != nil {
		respondError(c, apperr.Validation("INVALID_MATCHING_ID", "invalid matching id"))
		return uuid.Nil, false
	}
	return id, true
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	matchingID, ok := matchingIDParam(c)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	message, err := h.svc.SendMessage(c.Request.Context(), matchingID, callerID(c), chat.SendPayload{
		Message:   req.Message,
		Reference: req.Reference,
		Type:      models.MessageType(req.Type),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, message)
}

// GetMessages returns the matching's messages newest-first with
// limit/offset pagination.
func (h *ChatHandler) GetMessages(c *gin.Context) {
	matchingID, ok := matchingIDParam(c)
	if !ok {
		return
	}

	limit := 50
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}
	offset := 0
	if o := c.Query("offset"); o != "" {
		if parsed, err := strconv.Atoi(o); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	messages, err := h.svc.GetMessages(c.Request.Context(), matchingID, callerID(c), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{
		"messages": messages,
		"hasMore":  len(messages) == limit,
	})
}

func (h *ChatHandler) GetProfileReveal(c *gin.Context) {
	matchingID, ok := matchingIDParam(c)
	if !ok {
		return
	}

	info, err := h.svc.GetProfileRevealInfo(c.Request.Context(), matchingID, callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, info)
}

func (h *ChatHandler) DeleteMessage(c *gin.Context) {
	messageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperr.Validation("INVALID_MESSAGE_ID", "invalid message id"))
		return
	}

	if err := h.svc.DeleteMessage(c.Request.Context(), messageID, callerID(c)); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, nil)
}
