package tipping

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

var testNow = time.Date(2026, 6, 14, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T, backend Backend) (*Store, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClockAt(testNow)
	store := NewStore(context.Background(), Options{
		Backend: backend,
		Clock:   clock,
		Logger:  zerolog.Nop(),
	})
	return store, clock
}

func withSession(t *testing.T, store *Store, fn func(*Session) error) {
	t.Helper()
	if err := store.With(context.Background(), fn); err != nil {
		t.Fatalf("session failed: %v", err)
	}
}

// seed adds FRA, GER and ESP plus a future game "FRAGER" and a past game "ESPFRA".
func seed(t *testing.T, store *Store) {
	t.Helper()
	withSession(t, store, func(s *Session) error {
		for _, team := range []Team{
			{Name: "France", ISO: "FRA", Flag: "🇫🇷"},
			{Name: "Germany", ISO: "GER", Flag: "🇩🇪"},
			{Name: "Spain", ISO: "ESP", Flag: "🇪🇸"},
		} {
			if err := s.AddTeam(team); err != nil {
				return err
			}
		}
		if _, err := s.AddGame(GameSpec{Name: "Group A", Short: "FRAGER", Team1: "FRA", Team2: "GER", Start: "2026 06 20 18:00"}); err != nil {
			return err
		}
		if _, err := s.AddGame(GameSpec{Name: "Opener", Short: "ESPFRA", Team1: "ESP", Team2: "FRA", Start: "2026 06 10 21:00"}); err != nil {
			return err
		}
		return nil
	})
}

type memoryBackend struct {
	payload []byte
	writes  int
	readErr error
	failErr error
}

func (m *memoryBackend) Read(ctx context.Context) ([]byte, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	if m.payload == nil {
		return nil, ErrNoSnapshot
	}
	return m.payload, nil
}

func (m *memoryBackend) Write(ctx context.Context, payload []byte) error {
	if m.failErr != nil {
		return m.failErr
	}
	m.writes++
	m.payload = append([]byte(nil), payload...)
	return nil
}
