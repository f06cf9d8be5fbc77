package server

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/campuslink/campuslink-backend/internal/cache"
	"github.com/campuslink/campuslink-backend/internal/chat"
	"github.com/campuslink/campuslink-backend/internal/config"
	"github.com/campuslink/campuslink-backend/internal/database"
	"github.com/campuslink/campuslink-backend/internal/directory"
	"github.com/campuslink/campuslink-backend/internal/handlers"
	"github.com/campuslink/campuslink-backend/internal/logger"
	"github.com/campuslink/campuslink-backend/internal/matching"
	ws "github.com/campuslink/campuslink-backend/internal/websocket"
	"github.com/campuslink/campuslink-backend/pkg/auth"
)

type Server struct {
	Router  *gin.Engine
	DB      *database.Database
	Cache   *cache.RedisCache
	Hub     *ws.Hub
	Sweeper *matching.Sweeper

	cfg *config.Config
}

// New wires the whole application: one gorm connection and one redis
// client created here and injected everywhere else.
func New(cfg *config.Config) (*Server, error) {
	gormDB, err := database.Open(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}
	db := database.NewDatabase(gormDB)

	redisCache, err := cache.NewRedisCache(cfg.Redis.URL)
	if err != nil {
		return nil, err
	}
	if err := redisCache.Ping(context.Background()); err != nil {
		return nil, err
	}

	jwtMgr := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Duration)

	hub := ws.NewHub()
	dir := directory.NewGormDirectory(db, redisCache)

	matchSvc := matching.NewService(db, dir, dir, hub, cfg.Matching.MatchTTL)
	chatSvc := chat.NewService(db, dir, dir)
	sweeper := matching.NewSweeper(db, cfg.Matching.SweepInterval, cfg.Matching.QueueTTL)

	authH := handlers.NewAuthHandler(db, jwtMgr, redisCache)
	matchingH := handlers.NewMatchingHandler(matchSvc)
	chatH := handlers.NewChatHandler(chatSvc)
	wsH := handlers.NewWebSocketHandler(hub)

	router := gin.Default()
	APIEndpoints(router, authH, matchingH, chatH, wsH, jwtMgr, redisCache)

	return &Server{
		Router:  router,
		DB:      db,
		Cache:   redisCache,
		Hub:     hub,
		Sweeper: sweeper,
		cfg:     cfg,
	}, nil
}

func (s *Server) Run() error {
	go s.Hub.Run()
	s.Sweeper.Start()
	defer func() {
		s.Sweeper.Stop()
		s.Hub.Stop()
	}()

	logger.Info("server starting", "port", s.cfg.HTTP.Port)
	return s.Router.Run(":" + s.cfg.HTTP.Port)
}
