package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"tippy-tappy/internal/config"
	"tippy-tappy/internal/tipping"
)

type Server struct {
	store *tipping.Store
	cfg   config.Config
	loc   *time.Location
	log   zerolog.Logger
	feed  *feedHub
}

func New(store *tipping.Store, cfg config.Config, log zerolog.Logger) *Server {
	loc, err := cfg.Location()
	if err != nil {
		log.Warn().Err(err).Str("timezone", cfg.Timezone).Msg("unknown timezone, displaying UTC")
		loc = time.UTC
	}
	return &Server{
		store: store,
		cfg:   cfg,
		loc:   loc,
		log:   log,
		feed:  newFeedHub(),
	}
}

func (s *Server) Handler() http.Handler {
	registerValidators()

	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())

	api := router.Group("/api")
	api.GET("/teams", s.handleListTeams)
	api.POST("/teams", s.handleAddTeam)
	api.GET("/games", s.handleListGames)
	api.POST("/games", s.handleAddGame)
	api.PUT("/games/:short/result", s.handleSetResult)
	api.PUT("/games/:short/bets/:user", s.handleUpsertBet)
	api.GET("/global-bets", s.handleListGlobalBets)
	api.POST("/global-bets", s.handleAddGlobalBet)
	api.PUT("/global-bets/:short/result", s.handleSetGlobalBetResult)
	api.PUT("/global-bets/:short/bets/:user", s.handleUpsertPrediction)
	api.GET("/users/:user/bets", s.handleUserBets)
	api.GET("/leaderboard", s.handleLeaderboard)

	router.GET("/leaderboard", s.handleLeaderboardView)
	router.GET("/ws/leaderboard", s.handleLeaderboardWebsocket)

	return cors.New(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(router)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()
		s.log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(started)).
			Msg("request handled")
	}
}
