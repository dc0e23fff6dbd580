package server

type teamRequest struct {
	Name string `json:"name" binding:"required,max=64"`
	ISO  string `json:"iso" binding:"required,iso"`
	Flag string `json:"flag" binding:"max=32"`
}

type gameRequest struct {
	Name      string `json:"name" binding:"required,max=64"`
	Short     string `json:"short" binding:"required,short"`
	Team1     string `json:"team1" binding:"required,iso"`
	Team2     string `json:"team2" binding:"required,iso"`
	StartTime string `json:"start_time" binding:"required,kickoff"`
}

type resultRequest struct {
	Team1 *int   `json:"team1_score" binding:"required,min=0"`
	Team2 *int   `json:"team2_score" binding:"required,min=0"`
	Note  string `json:"note" binding:"max=140"`
}

type betRequest struct {
	Team1 *int `json:"team1_score" binding:"required,min=0"`
	Team2 *int `json:"team2_score" binding:"required,min=0"`
}

type globalBetRequest struct {
	Name      string `json:"name" binding:"required,max=64"`
	Short     string `json:"short" binding:"required,short"`
	Points    int    `json:"points"`
	StartTime string `json:"start_time" binding:"required,kickoff"`
}

type teamChoiceRequest struct {
	Team string `json:"team" binding:"required,iso"`
}

type listQuery struct {
	Open bool `form:"open"`
}

var teamMessages = bindMessages{
	"Name": {"required": "team name is required", "max": "team name must be 64 characters or fewer"},
	"ISO":  {"required": "iso is required", "iso": "iso must be 2 or 3 upper-case letters"},
	"Flag": {"max": "flag must be 32 characters or fewer"},
}

var gameMessages = bindMessages{
	"Name":      {"required": "game name is required", "max": "game name must be 64 characters or fewer"},
	"Short":     {"required": "short is required", "short": "short must be 1-16 letters, digits, - or _"},
	"Team1":     {"required": "team1 is required", "iso": "team1 must be an iso code"},
	"Team2":     {"required": "team2 is required", "iso": "team2 must be an iso code"},
	"StartTime": {"required": "start_time is required", "kickoff": "start_time must look like YYYY MM DD HH:MM"},
}

var scoreMessages = bindMessages{
	"Team1": {"required": "team1_score is required", "min": "scores must not be negative"},
	"Team2": {"required": "team2_score is required", "min": "scores must not be negative"},
	"Note":  {"max": "note must be 140 characters or fewer"},
}

var globalBetMessages = bindMessages{
	"Name":      {"required": "global bet name is required", "max": "global bet name must be 64 characters or fewer"},
	"Short":     {"required": "short is required", "short": "short must be 1-16 letters, digits, - or _"},
	"StartTime": {"required": "start_time is required", "kickoff": "start_time must look like YYYY MM DD HH:MM"},
}

var teamChoiceMessages = bindMessages{
	"Team": {"required": "team is required", "iso": "team must be an iso code"},
}
