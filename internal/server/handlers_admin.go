package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tippy-tappy/internal/tipping"
)

func (s *Server) handleAddTeam(c *gin.Context) {
	var req teamRequest
	if !bindJSON(c, &req, teamMessages, "invalid team") {
		return
	}
	team := tipping.Team{Name: req.Name, ISO: req.ISO, Flag: req.Flag}
	if !s.mutate(c, func(session *tipping.Session) error {
		return session.AddTeam(team)
	}) {
		return
	}
	c.JSON(http.StatusCreated, team)
}

func (s *Server) handleAddGame(c *gin.Context) {
	var req gameRequest
	if !bindJSON(c, &req, gameMessages, "invalid game") {
		return
	}
	var game tipping.Game
	if !s.mutate(c, func(session *tipping.Session) error {
		var err error
		game, err = session.AddGame(tipping.GameSpec{
			Name:  req.Name,
			Short: req.Short,
			Team1: req.Team1,
			Team2: req.Team2,
			Start: req.StartTime,
		})
		return err
	}) {
		return
	}
	c.JSON(http.StatusCreated, game)
}

func (s *Server) handleSetResult(c *gin.Context) {
	var req resultRequest
	if !bindJSON(c, &req, scoreMessages, "invalid result") {
		return
	}
	var game tipping.Game
	if !s.mutate(c, func(session *tipping.Session) error {
		var err error
		game, err = session.SetResult(c.Param("short"), *req.Team1, *req.Team2, req.Note)
		return err
	}) {
		return
	}
	c.JSON(http.StatusOK, game)
}

func (s *Server) handleAddGlobalBet(c *gin.Context) {
	var req globalBetRequest
	if !bindJSON(c, &req, globalBetMessages, "invalid global bet") {
		return
	}
	var global tipping.GlobalBet
	if !s.mutate(c, func(session *tipping.Session) error {
		var err error
		global, err = session.AddGlobalBet(tipping.GlobalBetSpec{
			Name:   req.Name,
			Short:  req.Short,
			Points: req.Points,
			Start:  req.StartTime,
		})
		return err
	}) {
		return
	}
	c.JSON(http.StatusCreated, global)
}

func (s *Server) handleSetGlobalBetResult(c *gin.Context) {
	var req teamChoiceRequest
	if !bindJSON(c, &req, teamChoiceMessages, "invalid result") {
		return
	}
	var global tipping.GlobalBet
	if !s.mutate(c, func(session *tipping.Session) error {
		var err error
		global, err = session.SetGlobalBetResult(c.Param("short"), req.Team)
		return err
	}) {
		return
	}
	c.JSON(http.StatusOK, global)
}

// mutate runs fn in a session and pushes the new leaderboard to the feed
// once the session is released.
func (s *Server) mutate(c *gin.Context, fn func(*tipping.Session) error) bool {
	var standings []tipping.Standing
	err := s.store.With(c.Request.Context(), func(session *tipping.Session) error {
		if err := fn(session); err != nil {
			return err
		}
		var err error
		standings, err = session.Leaderboard()
		return err
	})
	if standings != nil {
		s.feed.Broadcast(leaderboardPayload(standings))
	}
	if err != nil {
		s.writeStoreError(c, err)
		return false
	}
	return true
}

// read runs fn in a session and writes the error response on failure.
func (s *Server) read(c *gin.Context, fn func(*tipping.Session) error) bool {
	if err := s.store.With(c.Request.Context(), fn); err != nil {
		s.writeStoreError(c, err)
		return false
	}
	return true
}
