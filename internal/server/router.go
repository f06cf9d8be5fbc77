package server

import (
	"github.com/gin-gonic/gin"

	"github.com/campuslink/campuslink-backend/internal/cache"
	"github.com/campuslink/campuslink-backend/internal/handlers"
	"github.com/campuslink/campuslink-backend/internal/middleware"
	"github.com/campuslink/campuslink-backend/pkg/auth"
)

func APIEndpoints(
	r *gin.Engine,
	authH *handlers.AuthHandler,
	matchingH *handlers.MatchingHandler,
	chatH *handlers.ChatHandler,
	wsH *handlers.WebSocketHandler,
	jwtMgr *auth.JWTManager,
	redisCache *cache.RedisCache,
) {
	// Auth endpoints
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authH.Register)
		authGroup.POST("/login", authH.Login)
		authGroup.POST("/logout", authH.Logout)
	}

	authorized := r.Group("/")
	authorized.Use(middleware.AuthMiddleware(jwtMgr, redisCache))
	{
		matchingGroup := authorized.Group("/matching")
		{
			matchingGroup.POST("/preference", matchingH.CreatePreference)
			matchingGroup.GET("/preference", matchingH.GetPreference)
			matchingGroup.PUT("/preference", matchingH.UpdatePreference)
			matchingGroup.DELETE("/preference", matchingH.DeletePreference)

			matchingGroup.POST("/activate", matchingH.Activate)
			matchingGroup.POST("/deactivate", matchingH.Deactivate)

			matchingGroup.POST("/random", matchingH.MatchRandom)
			matchingGroup.POST("/tempus", matchingH.MatchTempus)
			matchingGroup.DELETE("/queue", matchingH.StopMatching)

			matchingGroup.GET("/active", matchingH.ActiveMatchings)
			matchingGroup.PUT("/:id/status", matchingH.UpdateStatus)
			matchingGroup.DELETE("/:id", matchingH.CloseMatching)
		}

		chatGroup := authorized.Group("/chat")
		{
			chatGroup.POST("/:matchingId/messages", chatH.SendMessage)
			chatGroup.GET("/:matchingId/messages", chatH.GetMessages)
			chatGroup.GET("/:matchingId/profile-reveal", chatH.GetProfileReveal)
			chatGroup.DELETE("/messages/:id", chatH.DeleteMessage)
		}
	}

	wsGroup := r.Group("/ws")
	wsGroup.Use(middleware.WSAuthMiddleware(jwtMgr, redisCache))
	{
		wsGroup.GET("", wsH.HandleWebSocket)
	}
}
