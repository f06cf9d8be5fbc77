package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campuslink/campuslink-backend/internal/cache"
	"github.com/campuslink/campuslink-backend/pkg/auth"
)

const UserIDKey = "userID"

// AuthMiddleware verifies the bearer JWT, rejects blacklisted tokens
// and stores the caller's user id in the request context.
func AuthMiddleware(jwtManager *auth.JWTManager, redisCache *cache.RedisCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractTokenFromHeader(c.Request)
		if err != nil {
			abortUnauthorized(c, "missing or invalid token")
			return
		}

		blacklisted, err := redisCache.IsTokenBlacklisted(c.Request.Context(), token)
		if err != nil || blacklisted {
			abortUnauthorized(c, "token is blacklisted")
			return
		}

		claims, err := jwtManager.Verify(token)
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			abortUnauthorized(c, "invalid user id")
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// WSAuthMiddleware authenticates the websocket upgrade. Browsers cannot
// set headers on websocket requests, so the token may also come in as a
// query parameter.
func WSAuthMiddleware(jwtManager *auth.JWTManager, redisCache *cache.RedisCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader != "" {
				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
					token = parts[1]
				}
			}
		}

		if token == "" {
			abortUnauthorized(c, "missing token")
			return
		}

		blacklisted, err := redisCache.IsTokenBlacklisted(c.Request.Context(), token)
		if err != nil || blacklisted {
			abortUnauthorized(c, "token is blacklisted")
			return
		}

		claims, err := jwtManager.Verify(token)
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			abortUnauthorized(c, "invalid user id")
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   gin.H{"code": "UNAUTHENTICATED", "message": msg},
	})
}
