package tipping

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrSessionReleased is returned when a session is used after Release.
var ErrSessionReleased = errors.New("session already released")

// Session is the exclusive view of the aggregate. It must stay on the
// goroutine that acquired it.
type Session struct {
	store    *Store
	ctx      context.Context
	acquired time.Time
	released bool
	dirty    bool
}

// Release writes the snapshot and frees the store for the next waiter. The
// flush runs even if the acquiring context was cancelled. Calling Release
// more than once is a no-op.
func (s *Session) Release() error {
	if s.released {
		return nil
	}
	s.released = true
	defer func() {
		sessionHold.Observe(time.Since(s.acquired).Seconds())
		<-s.store.sem
	}()
	return s.store.flush(context.WithoutCancel(s.ctx), s.dirty)
}

// Dirty reports whether a write succeeded during this session.
func (s *Session) Dirty() bool {
	return s.dirty
}

func (s *Session) data() (*Data, error) {
	if s.released {
		return nil, ErrSessionReleased
	}
	return &s.store.data, nil
}

func (s *Session) AddTeam(team Team) error {
	d, err := s.data()
	if err != nil {
		return err
	}
	team.Name = strings.TrimSpace(team.Name)
	team.ISO = strings.TrimSpace(team.ISO)
	team.Flag = strings.TrimSpace(team.Flag)
	if team.Name == "" || team.ISO == "" {
		return fmt.Errorf("%w: team name and iso are required", ErrInvalidInput)
	}
	if _, ok := d.findTeam(team.ISO); ok {
		return fmt.Errorf("%w: team %s", ErrDuplicateKey, team.ISO)
	}
	d.Teams = append(d.Teams, team)
	s.dirty = true
	s.store.log.Info().Str("iso", team.ISO).Str("name", team.Name).Msg("team added")
	return nil
}

func (s *Session) AddGame(spec GameSpec) (Game, error) {
	d, err := s.data()
	if err != nil {
		return Game{}, err
	}
	name := strings.TrimSpace(spec.Name)
	short := strings.TrimSpace(spec.Short)
	if name == "" || short == "" {
		return Game{}, fmt.Errorf("%w: game name and short are required", ErrInvalidInput)
	}
	if _, ok := d.findGame(short); ok {
		return Game{}, fmt.Errorf("%w: game %s", ErrDuplicateKey, short)
	}
	for _, iso := range []string{spec.Team1, spec.Team2} {
		if _, ok := d.findTeam(iso); !ok {
			return Game{}, fmt.Errorf("%w: %s", ErrUnknownTeam, iso)
		}
	}
	start, err := ParseStartTime(spec.Start, s.store.loc)
	if err != nil {
		return Game{}, err
	}
	game := Game{
		Name:      name,
		Short:     short,
		Team1ISO:  spec.Team1,
		Team2ISO:  spec.Team2,
		StartTime: start,
	}
	d.Games = append(d.Games, game)
	s.dirty = true
	s.store.log.Info().
		Str("game", short).
		Str("team1", spec.Team1).
		Str("team2", spec.Team2).
		Time("start", start).
		Msg("game added")
	return game.clone(), nil
}

// SetResult records the final score. It is allowed at any time and
// overwrites an earlier result.
func (s *Session) SetResult(short string, team1, team2 int, note string) (Game, error) {
	d, err := s.data()
	if err != nil {
		return Game{}, err
	}
	if team1 < 0 || team2 < 0 {
		return Game{}, ErrInvalidScore
	}
	game, ok := d.findGame(short)
	if !ok {
		return Game{}, fmt.Errorf("%w: %s", ErrUnknownGame, short)
	}
	game.Result = &Result{Team1: team1, Team2: team2, Note: strings.TrimSpace(note)}
	s.dirty = true
	s.store.log.Info().Str("game", short).Int("team1", team1).Int("team2", team2).Msg("game result set")
	return game.clone(), nil
}

// UpsertBet stores the user's prediction for a game that has not started,
// replacing any earlier one.
func (s *Session) UpsertBet(short string, user UserID, team1, team2 int) (Bet, error) {
	d, err := s.data()
	if err != nil {
		return Bet{}, err
	}
	if user == "" {
		return Bet{}, fmt.Errorf("%w: user is required", ErrInvalidInput)
	}
	if team1 < 0 || team2 < 0 {
		return Bet{}, ErrInvalidScore
	}
	game, ok := d.findGame(short)
	if !ok {
		return Bet{}, fmt.Errorf("%w: %s", ErrUnknownGame, short)
	}
	if !s.store.gate.IsOpen(game.StartTime) {
		return Bet{}, fmt.Errorf("%w: game %s started at %s", ErrBettingClosed, short, game.StartTime.Format(time.RFC3339))
	}
	bet := Bet{User: user, Team1: team1, Team2: team2}
	bets := d.Bets[short]
	replaced := false
	for i := range bets {
		if bets[i].User == user {
			bets[i] = bet
			replaced = true
			break
		}
	}
	if !replaced {
		d.Bets[short] = append(bets, bet)
	}
	s.dirty = true
	predictionsStored.WithLabelValues("game").Inc()
	s.store.log.Info().
		Str("game", short).
		Str("user", string(user)).
		Int("team1", team1).
		Int("team2", team2).
		Bool("replaced", replaced).
		Msg("bet stored")
	return bet, nil
}

func (s *Session) AddGlobalBet(spec GlobalBetSpec) (GlobalBet, error) {
	d, err := s.data()
	if err != nil {
		return GlobalBet{}, err
	}
	name := strings.TrimSpace(spec.Name)
	short := strings.TrimSpace(spec.Short)
	if name == "" || short == "" {
		return GlobalBet{}, fmt.Errorf("%w: global bet name and short are required", ErrInvalidInput)
	}
	if _, ok := d.GlobalBets[short]; ok {
		return GlobalBet{}, fmt.Errorf("%w: global bet %s", ErrDuplicateKey, short)
	}
	start, err := ParseStartTime(spec.Start, s.store.loc)
	if err != nil {
		return GlobalBet{}, err
	}
	global := GlobalBet{
		Name:      name,
		Short:     short,
		Points:    spec.Points,
		StartTime: start,
		Bets:      make(map[UserID]string),
	}
	d.GlobalBets[short] = global
	s.dirty = true
	s.store.log.Info().Str("global_bet", short).Int("points", spec.Points).Time("start", start).Msg("global bet added")
	return global.clone(), nil
}

func (s *Session) UpsertGlobalBetPrediction(short string, user UserID, iso string) error {
	d, err := s.data()
	if err != nil {
		return err
	}
	if user == "" {
		return fmt.Errorf("%w: user is required", ErrInvalidInput)
	}
	global, ok := d.GlobalBets[short]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownGlobalBet, short)
	}
	if _, ok := d.findTeam(iso); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTeam, iso)
	}
	if !s.store.gate.IsOpen(global.StartTime) {
		return fmt.Errorf("%w: global bet %s started at %s", ErrBettingClosed, short, global.StartTime.Format(time.RFC3339))
	}
	if global.Bets == nil {
		global.Bets = make(map[UserID]string)
	}
	global.Bets[user] = iso
	d.GlobalBets[short] = global
	s.dirty = true
	predictionsStored.WithLabelValues("global").Inc()
	s.store.log.Info().Str("global_bet", short).Str("user", string(user)).Str("team", iso).Msg("global prediction stored")
	return nil
}

func (s *Session) SetGlobalBetResult(short, iso string) (GlobalBet, error) {
	d, err := s.data()
	if err != nil {
		return GlobalBet{}, err
	}
	global, ok := d.GlobalBets[short]
	if !ok {
		return GlobalBet{}, fmt.Errorf("%w: %s", ErrUnknownGlobalBet, short)
	}
	if _, ok := d.findTeam(iso); !ok {
		return GlobalBet{}, fmt.Errorf("%w: %s", ErrUnknownTeam, iso)
	}
	result := iso
	global.Result = &result
	d.GlobalBets[short] = global
	s.dirty = true
	s.store.log.Info().Str("global_bet", short).Str("team", iso).Msg("global bet result set")
	return global.clone(), nil
}
