package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tippy-tappy/internal/tipping"
)

func (s *Server) handleListTeams(c *gin.Context) {
	var teams []tipping.Team
	if !s.read(c, func(session *tipping.Session) error {
		var err error
		teams, err = session.ListTeams()
		return err
	}) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"teams": teams})
}

func (s *Server) handleListGames(c *gin.Context) {
	var query listQuery
	if !bindQuery(c, &query) {
		return
	}
	var games []tipping.Game
	if !s.read(c, func(session *tipping.Session) error {
		var err error
		if query.Open {
			games, err = session.OpenGames()
		} else {
			games, err = session.ListGames()
		}
		return err
	}) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"games": games})
}

func (s *Server) handleListGlobalBets(c *gin.Context) {
	var query listQuery
	if !bindQuery(c, &query) {
		return
	}
	var globals []tipping.GlobalBet
	if !s.read(c, func(session *tipping.Session) error {
		var err error
		if query.Open {
			globals, err = session.OpenGlobalBets()
		} else {
			globals, err = session.ListGlobalBets()
		}
		return err
	}) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"global_bets": globals})
}

func (s *Server) handleUpsertBet(c *gin.Context) {
	var req betRequest
	if !bindJSON(c, &req, scoreMessages, "invalid bet") {
		return
	}
	var bet tipping.Bet
	if !s.mutate(c, func(session *tipping.Session) error {
		var err error
		bet, err = session.UpsertBet(c.Param("short"), tipping.UserID(c.Param("user")), *req.Team1, *req.Team2)
		return err
	}) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"game": c.Param("short"), "bet": bet})
}

func (s *Server) handleUpsertPrediction(c *gin.Context) {
	var req teamChoiceRequest
	if !bindJSON(c, &req, teamChoiceMessages, "invalid prediction") {
		return
	}
	user := tipping.UserID(c.Param("user"))
	if !s.mutate(c, func(session *tipping.Session) error {
		return session.UpsertGlobalBetPrediction(c.Param("short"), user, req.Team)
	}) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"global_bet": c.Param("short"), "user": user, "team": req.Team})
}

func (s *Server) handleUserBets(c *gin.Context) {
	var bets tipping.UserBets
	if !s.read(c, func(session *tipping.Session) error {
		var err error
		bets, err = session.UserBets(tipping.UserID(c.Param("user")))
		return err
	}) {
		return
	}
	c.JSON(http.StatusOK, bets)
}

func (s *Server) handleLeaderboard(c *gin.Context) {
	var standings []tipping.Standing
	if !s.read(c, func(session *tipping.Session) error {
		var err error
		standings, err = session.Leaderboard()
		return err
	}) {
		return
	}
	c.JSON(http.StatusOK, leaderboardPayload(standings))
}

func leaderboardPayload(standings []tipping.Standing) gin.H {
	if standings == nil {
		standings = []tipping.Standing{}
	}
	return gin.H{"leaderboard": standings}
}
