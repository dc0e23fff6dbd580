package web

import "time"

type StandingRow struct {
	Rank         int
	User         string
	Points       int
	Exact        int
	Differential int
	Direction    int
	Global       int
}

type GameRow struct {
	Name      string
	Short     string
	Team1     string
	Team2     string
	StartTime time.Time
	Score     string
	Note      string
	Open      bool
}

type LeaderboardPage struct {
	Standings []StandingRow
	Games     []GameRow
	Location  *time.Location
}
