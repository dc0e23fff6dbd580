package tipping

import (
	"sort"
	"time"
)

// UserID is the chat platform's identifier for a bettor. The store never
// interprets it.
type UserID string

type Team struct {
	Name string `json:"name"`
	ISO  string `json:"iso"`
	Flag string `json:"flag"`
}

type Result struct {
	Team1 int    `json:"team1_score"`
	Team2 int    `json:"team2_score"`
	Note  string `json:"note"`
}

type Game struct {
	Name      string    `json:"name"`
	Short     string    `json:"short"`
	Team1ISO  string    `json:"team1_iso"`
	Team2ISO  string    `json:"team2_iso"`
	StartTime time.Time `json:"start_time"`
	Result    *Result   `json:"result"`
}

type Bet struct {
	User  UserID `json:"user"`
	Team1 int    `json:"team1_score"`
	Team2 int    `json:"team2_score"`
}

type GlobalBet struct {
	Name      string            `json:"name"`
	Short     string            `json:"short"`
	Points    int               `json:"points"`
	StartTime time.Time         `json:"start_time"`
	Result    *string           `json:"result"`
	Bets      map[UserID]string `json:"bets"`
}

// Data is the aggregate owned by a Store. Games reference teams and bets
// reference games by key only.
type Data struct {
	Teams      []Team               `json:"teams"`
	Games      []Game               `json:"games"`
	Bets       map[string][]Bet     `json:"bets"`
	GlobalBets map[string]GlobalBet `json:"global_bets"`
}

// GameSpec describes a game to create. Start is the raw "YYYY MM DD HH:MM" text.
type GameSpec struct {
	Name  string
	Short string
	Team1 string
	Team2 string
	Start string
}

type GlobalBetSpec struct {
	Name   string
	Short  string
	Points int
	Start  string
}

func newData() Data {
	return Data{
		Teams:      []Team{},
		Games:      []Game{},
		Bets:       make(map[string][]Bet),
		GlobalBets: make(map[string]GlobalBet),
	}
}

// normalize fills nil containers so a decoded snapshot behaves like a fresh one.
func (d *Data) normalize() {
	if d.Teams == nil {
		d.Teams = []Team{}
	}
	if d.Games == nil {
		d.Games = []Game{}
	}
	if d.Bets == nil {
		d.Bets = make(map[string][]Bet)
	}
	if d.GlobalBets == nil {
		d.GlobalBets = make(map[string]GlobalBet)
	}
	for short, global := range d.GlobalBets {
		if global.Bets == nil {
			global.Bets = make(map[UserID]string)
			d.GlobalBets[short] = global
		}
	}
}

// Clone returns a deep copy that shares no memory with d.
func (d Data) Clone() Data {
	out := Data{
		Teams:      append([]Team{}, d.Teams...),
		Games:      make([]Game, 0, len(d.Games)),
		Bets:       make(map[string][]Bet, len(d.Bets)),
		GlobalBets: make(map[string]GlobalBet, len(d.GlobalBets)),
	}
	for _, game := range d.Games {
		out.Games = append(out.Games, game.clone())
	}
	for short, bets := range d.Bets {
		out.Bets[short] = append([]Bet{}, bets...)
	}
	for short, global := range d.GlobalBets {
		out.GlobalBets[short] = global.clone()
	}
	return out
}

func (g Game) clone() Game {
	if g.Result != nil {
		result := *g.Result
		g.Result = &result
	}
	return g
}

func (g GlobalBet) clone() GlobalBet {
	if g.Result != nil {
		result := *g.Result
		g.Result = &result
	}
	bets := make(map[UserID]string, len(g.Bets))
	for user, iso := range g.Bets {
		bets[user] = iso
	}
	g.Bets = bets
	return g
}

func (d *Data) findTeam(iso string) (*Team, bool) {
	for i := range d.Teams {
		if d.Teams[i].ISO == iso {
			return &d.Teams[i], true
		}
	}
	return nil, false
}

func (d *Data) findGame(short string) (*Game, bool) {
	for i := range d.Games {
		if d.Games[i].Short == short {
			return &d.Games[i], true
		}
	}
	return nil, false
}

func sortGamesByStart(games []Game) {
	sort.SliceStable(games, func(i, j int) bool {
		return games[i].StartTime.Before(games[j].StartTime)
	})
}

func sortGlobalBets(globals []GlobalBet) {
	sort.Slice(globals, func(i, j int) bool {
		if !globals[i].StartTime.Equal(globals[j].StartTime) {
			return globals[i].StartTime.Before(globals[j].StartTime)
		}
		return globals[i].Short < globals[j].Short
	})
}
