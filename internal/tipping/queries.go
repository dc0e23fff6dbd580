package tipping

import "sort"

type UserGameBet struct {
	Game   Game `json:"game"`
	Bet    Bet  `json:"bet"`
	Open   bool `json:"open"`
	Points *int `json:"points"`
}

type UserGlobalBet struct {
	GlobalBet GlobalBet `json:"global_bet"`
	Team      string    `json:"team"`
	Open      bool      `json:"open"`
	Points    *int      `json:"points"`
}

type UserBets struct {
	User   UserID          `json:"user"`
	Games  []UserGameBet   `json:"games"`
	Global []UserGlobalBet `json:"global"`
}

// Data returns a deep copy of the aggregate for read-only use outside the session.
func (s *Session) Data() (Data, error) {
	d, err := s.data()
	if err != nil {
		return Data{}, err
	}
	return d.Clone(), nil
}

// ListTeams returns the teams in insertion order.
func (s *Session) ListTeams() ([]Team, error) {
	d, err := s.data()
	if err != nil {
		return nil, err
	}
	return append([]Team{}, d.Teams...), nil
}

// ListGames returns every game ordered by start time.
func (s *Session) ListGames() ([]Game, error) {
	d, err := s.data()
	if err != nil {
		return nil, err
	}
	games := make([]Game, 0, len(d.Games))
	for _, game := range d.Games {
		games = append(games, game.clone())
	}
	sortGamesByStart(games)
	return games, nil
}

// OpenGames returns the games that still accept bets.
func (s *Session) OpenGames() ([]Game, error) {
	games, err := s.ListGames()
	if err != nil {
		return nil, err
	}
	open := games[:0]
	for _, game := range games {
		if s.store.gate.IsOpen(game.StartTime) {
			open = append(open, game)
		}
	}
	return open, nil
}

func (s *Session) ListGlobalBets() ([]GlobalBet, error) {
	d, err := s.data()
	if err != nil {
		return nil, err
	}
	globals := make([]GlobalBet, 0, len(d.GlobalBets))
	for _, global := range d.GlobalBets {
		globals = append(globals, global.clone())
	}
	sortGlobalBets(globals)
	return globals, nil
}

func (s *Session) OpenGlobalBets() ([]GlobalBet, error) {
	globals, err := s.ListGlobalBets()
	if err != nil {
		return nil, err
	}
	open := globals[:0]
	for _, global := range globals {
		if s.store.gate.IsOpen(global.StartTime) {
			open = append(open, global)
		}
	}
	return open, nil
}

// UserBets collects the user's game bets (by game start) and global
// predictions, with points once a result is known.
func (s *Session) UserBets(user UserID) (UserBets, error) {
	d, err := s.data()
	if err != nil {
		return UserBets{}, err
	}
	out := UserBets{User: user, Games: []UserGameBet{}, Global: []UserGlobalBet{}}
	for _, game := range d.Games {
		for _, bet := range d.Bets[game.Short] {
			if bet.User != user {
				continue
			}
			entry := UserGameBet{Game: game.clone(), Bet: bet, Open: s.store.gate.IsOpen(game.StartTime)}
			if game.Result != nil {
				pts := BetPoints(bet, *game.Result, s.store.points)
				entry.Points = &pts
			}
			out.Games = append(out.Games, entry)
		}
	}
	sort.SliceStable(out.Games, func(i, j int) bool {
		return out.Games[i].Game.StartTime.Before(out.Games[j].Game.StartTime)
	})
	for _, global := range d.GlobalBets {
		iso, ok := global.Bets[user]
		if !ok {
			continue
		}
		entry := UserGlobalBet{GlobalBet: global.clone(), Team: iso, Open: s.store.gate.IsOpen(global.StartTime)}
		if global.Result != nil {
			pts := 0
			if *global.Result == iso {
				pts = global.Points
			}
			entry.Points = &pts
		}
		out.Global = append(out.Global, entry)
	}
	sort.Slice(out.Global, func(i, j int) bool {
		a, b := out.Global[i].GlobalBet, out.Global[j].GlobalBet
		if !a.StartTime.Equal(b.StartTime) {
			return a.StartTime.Before(b.StartTime)
		}
		return a.Short < b.Short
	})
	return out, nil
}

// Scores runs the scoring engine over the current aggregate.
func (s *Session) Scores() (map[UserID]int, error) {
	d, err := s.data()
	if err != nil {
		return nil, err
	}
	return Score(*d, s.store.points), nil
}

func (s *Session) Leaderboard() ([]Standing, error) {
	d, err := s.data()
	if err != nil {
		return nil, err
	}
	return Rank(*d, s.store.points), nil
}
