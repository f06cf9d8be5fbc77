package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/campuslink/campuslink-backend/internal/apperr"
	"github.com/campuslink/campuslink-backend/internal/cache"
	"github.com/campuslink/campuslink-backend/internal/database"
	"github.com/campuslink/campuslink-backend/internal/handlers/dto"
	"github.com/campuslink/campuslink-backend/internal/models"
	"github.com/campuslink/campuslink-backend/pkg/auth"
)

type AuthHandler struct {
	db         *database.Database
	jwtManager *auth.JWTManager
	cache      *cache.RedisCache
}

func NewAuthHandler(db *database.Database, jwtMgr *auth.JWTManager, c *cache.RedisCache) *AuthHandler {
	return &AuthHandler{db: db, jwtManager: jwtMgr, cache: c}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, err)
		return
	}

	user := &models.User{
		Nickname:     req.Nickname,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := h.db.SaveUser(c.Request.Context(), user); err != nil {
		respondError(c, apperr.Conflict("USER_EXISTS", "nickname or email already taken"))
		return
	}

	respondOK(c, http.StatusCreated, gin.H{"id": user.ID, "nickname": user.Nickname})
}

// Login issues a JWT and refreshes last_seen.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	invalidCredentials := apperr.New(apperr.KindUnauthenticated, "INVALID_CREDENTIALS", "invalid credentials")

	user, err := h.db.FindUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, invalidCredentials)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respondError(c, invalidCredentials)
		return
	}

	if err := h.db.UpdateLastSeen(c.Request.Context(), user.ID); err != nil {
		respondError(c, err)
		return
	}

	token, err := h.jwtManager.Generate(user.ID.String())
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, gin.H{"token": token})
}

// Logout blacklists the token in redis until its natural expiry.
func (h *AuthHandler) Logout(c *gin.Context) {
	rawToken, err := auth.ExtractTokenFromHeader(c.Request)
	if err != nil {
		respondError(c, apperr.Validation("INVALID_REQUEST", err.Error()))
		return
	}

	exp, err := h.jwtManager.Expiry(rawToken)
	if err != nil {
		respondError(c, apperr.New(apperr.KindUnauthenticated, "INVALID_TOKEN", "invalid token"))
		return
	}

	if err := h.cache.BlacklistToken(c.Request.Context(), rawToken, time.Until(exp)); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, nil)
}
