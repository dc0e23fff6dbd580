package tipping

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

type Options struct {
	// Backend receives a full snapshot on every Session release. Nil keeps
	// the store in memory only.
	Backend Backend
	Clock   clockwork.Clock
	// Location is the zone start times are entered in. Defaults to UTC.
	Location *time.Location
	Points   Points
	Logger   zerolog.Logger
}

// Store owns the aggregate. All access, reads included, goes through a
// Session, and only one Session is live at a time.
type Store struct {
	sem     chan struct{}
	data    Data
	backend Backend
	gate    Gate
	loc     *time.Location
	points  Points
	log     zerolog.Logger
}

// NewStore builds a store and loads the last snapshot from opts.Backend.
// A missing or damaged snapshot yields an empty aggregate.
func NewStore(ctx context.Context, opts Options) *Store {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	points := opts.Points
	if points == (Points{}) {
		points = DefaultPoints()
	}
	s := &Store{
		sem:     make(chan struct{}, 1),
		backend: opts.Backend,
		gate:    NewGate(opts.Clock),
		loc:     loc,
		points:  points,
		log:     opts.Logger,
	}
	s.data = s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) Data {
	if s.backend == nil {
		s.log.Info().Msg("store running without persistence")
		return newData()
	}
	payload, err := s.backend.Read(ctx)
	if errors.Is(err, ErrNoSnapshot) {
		s.log.Info().Msg("no store snapshot found, starting empty")
		return newData()
	}
	if err != nil {
		s.log.Warn().Err(err).Msg("store snapshot unreadable, starting empty")
		return newData()
	}
	data, err := decodeData(payload)
	if err != nil {
		s.log.Warn().Err(err).Msg("store snapshot unparsable, starting empty")
		return newData()
	}
	s.log.Info().
		Int("teams", len(data.Teams)).
		Int("games", len(data.Games)).
		Int("global_bets", len(data.GlobalBets)).
		Msg("store snapshot loaded")
	return data
}

// Acquire blocks until the session is free. Waiters are served in arrival
// order. The caller must Release the returned session.
func (s *Store) Acquire(ctx context.Context) (*Session, error) {
	started := time.Now()
	select {
	case s.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	now := time.Now()
	sessionWait.Observe(now.Sub(started).Seconds())
	return &Session{store: s, ctx: ctx, acquired: now}, nil
}

// With runs fn inside a session and releases it on every exit path,
// panics included. Errors from fn and from the release flush are joined.
func (s *Store) With(ctx context.Context, fn func(*Session) error) (err error) {
	session, err := s.Acquire(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if relErr := session.Release(); relErr != nil {
			err = errors.Join(err, relErr)
		}
	}()
	return fn(session)
}

// Close takes the session one last time so the final state reaches the backend.
func (s *Store) Close(ctx context.Context) error {
	return s.With(ctx, func(*Session) error { return nil })
}

func (s *Store) flush(ctx context.Context, dirty bool) error {
	if s.backend == nil {
		return nil
	}
	payload, err := encodeData(s.data)
	if err == nil {
		err = s.backend.Write(ctx, payload)
	}
	if err != nil {
		persistenceFailures.Inc()
		s.log.Error().Err(err).Bool("dirty", dirty).Msg("store snapshot failed, memory and disk diverge")
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	s.log.Debug().Int("bytes", len(payload)).Bool("dirty", dirty).Msg("store snapshot written")
	return nil
}
