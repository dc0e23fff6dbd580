package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"tippy-tappy/internal/config"
	"tippy-tappy/internal/db"
	"tippy-tappy/internal/logging"
	"tippy-tappy/internal/tipping"
)

type fixtureFile struct {
	Teams []struct {
		Name string `yaml:"name"`
		ISO  string `yaml:"iso"`
		Flag string `yaml:"flag"`
	} `yaml:"teams"`
	Games []struct {
		Name  string `yaml:"name"`
		Short string `yaml:"short"`
		Team1 string `yaml:"team1"`
		Team2 string `yaml:"team2"`
		Start string `yaml:"start"`
	} `yaml:"games"`
	GlobalBets []struct {
		Name   string `yaml:"name"`
		Short  string `yaml:"short"`
		Points int    `yaml:"points"`
		Start  string `yaml:"start"`
	} `yaml:"global_bets"`
}

type loadStats struct {
	Added   int
	Skipped int
}

func main() {
	filePath := flag.String("file", "fixtures.yaml", "path to fixtures yaml")
	flag.Parse()

	boot := logging.New("info", false)
	if err := config.LoadDotEnv(".env"); err != nil {
		boot.Warn().Err(err).Msg("failed to load .env")
	}
	cfg, err := config.Load()
	if err != nil {
		boot.Fatal().Err(err).Msg("invalid configuration")
	}
	log := logging.New(cfg.LogLevel, cfg.LogPretty)

	fixtures, err := readFixtures(*filePath)
	if err != nil {
		log.Fatal().Err(err).Str("file", *filePath).Msg("failed to read fixtures")
	}

	backend, err := db.OpenBackend(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("snapshot backend unavailable")
	}
	if backend == nil {
		log.Fatal().Msg("fixtures need a persistent store, set TIPPY_STORE_PATH or TIPPY_STORE_DRIVER=postgres")
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.Timezone).Msg("unknown timezone")
	}

	ctx := context.Background()
	store := tipping.NewStore(ctx, tipping.Options{
		Backend:  backend,
		Clock:    clockwork.NewRealClock(),
		Location: loc,
		Points:   cfg.Points(),
		Logger:   log,
	})

	var stats loadStats
	err = store.With(ctx, func(session *tipping.Session) error {
		var err error
		stats, err = applyFixtures(session, fixtures, log)
		return err
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load fixtures")
	}
	log.Info().Int("added", stats.Added).Int("skipped", stats.Skipped).Msg("fixtures loaded")
}

func readFixtures(path string) (fixtureFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fixtureFile{}, err
	}
	return parseFixtures(data)
}

func parseFixtures(data []byte) (fixtureFile, error) {
	var fixtures fixtureFile
	if err := yaml.Unmarshal(data, &fixtures); err != nil {
		return fixtureFile{}, fmt.Errorf("parse fixtures: %w", err)
	}
	return fixtures, nil
}

// applyFixtures adds teams, then games, then global bets. Entries that
// already exist are skipped so a file can be loaded again after edits.
func applyFixtures(session *tipping.Session, fixtures fixtureFile, log zerolog.Logger) (loadStats, error) {
	var stats loadStats
	record := func(kind, key string, err error) error {
		switch {
		case err == nil:
			stats.Added++
			return nil
		case errors.Is(err, tipping.ErrDuplicateKey):
			stats.Skipped++
			log.Debug().Str("kind", kind).Str("key", key).Msg("fixture already present")
			return nil
		default:
			return fmt.Errorf("%s %s: %w", kind, key, err)
		}
	}

	for _, team := range fixtures.Teams {
		err := session.AddTeam(tipping.Team{Name: team.Name, ISO: team.ISO, Flag: team.Flag})
		if err := record("team", team.ISO, err); err != nil {
			return stats, err
		}
	}
	for _, game := range fixtures.Games {
		_, err := session.AddGame(tipping.GameSpec{
			Name:  game.Name,
			Short: game.Short,
			Team1: game.Team1,
			Team2: game.Team2,
			Start: game.Start,
		})
		if err := record("game", game.Short, err); err != nil {
			return stats, err
		}
	}
	for _, global := range fixtures.GlobalBets {
		_, err := session.AddGlobalBet(tipping.GlobalBetSpec{
			Name:   global.Name,
			Short:  global.Short,
			Points: global.Points,
			Start:  global.Start,
		})
		if err := record("global bet", global.Short, err); err != nil {
			return stats, err
		}
	}
	return stats, nil
}
