package server

import (
	"fmt"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"

	"tippy-tappy/internal/tipping"
	"tippy-tappy/internal/web"
)

func (s *Server) handleLeaderboardView(c *gin.Context) {
	var page web.LeaderboardPage
	if !s.read(c, func(session *tipping.Session) error {
		var err error
		page, err = s.leaderboardPage(session)
		return err
	}) {
		return
	}
	templ.Handler(web.Leaderboard(page)).ServeHTTP(c.Writer, c.Request)
}

func (s *Server) leaderboardPage(session *tipping.Session) (web.LeaderboardPage, error) {
	standings, err := session.Leaderboard()
	if err != nil {
		return web.LeaderboardPage{}, err
	}
	data, err := session.Data()
	if err != nil {
		return web.LeaderboardPage{}, err
	}
	games, err := session.ListGames()
	if err != nil {
		return web.LeaderboardPage{}, err
	}
	open, err := session.OpenGames()
	if err != nil {
		return web.LeaderboardPage{}, err
	}
	openShorts := make(map[string]bool, len(open))
	for _, game := range open {
		openShorts[game.Short] = true
	}
	teamNames := make(map[string]string, len(data.Teams))
	for _, team := range data.Teams {
		teamNames[team.ISO] = team.Name
	}
	teamLabel := func(iso string) string {
		if name, ok := teamNames[iso]; ok {
			return name
		}
		return iso
	}

	page := web.LeaderboardPage{Location: s.loc}
	for _, standing := range standings {
		page.Standings = append(page.Standings, web.StandingRow{
			Rank:         standing.Rank,
			User:         string(standing.User),
			Points:       standing.Points,
			Exact:        standing.Exact,
			Differential: standing.Differential,
			Direction:    standing.Direction,
			Global:       standing.Global,
		})
	}
	for _, game := range games {
		row := web.GameRow{
			Name:      game.Name,
			Short:     game.Short,
			Team1:     teamLabel(game.Team1ISO),
			Team2:     teamLabel(game.Team2ISO),
			StartTime: game.StartTime,
			Open:      openShorts[game.Short],
		}
		if game.Result != nil {
			row.Score = fmt.Sprintf("%d:%d", game.Result.Team1, game.Result.Team2)
			row.Note = game.Result.Note
		}
		page.Games = append(page.Games, row)
	}
	return page, nil
}
