package tipping

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
)

// StartTimeLayout is the text form accepted for game and global bet kickoffs.
const StartTimeLayout = "2006 01 02 15:04"

// Gate decides whether predictions against an event may still change.
type Gate struct {
	clock clockwork.Clock
}

func NewGate(clock clockwork.Clock) Gate {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return Gate{clock: clock}
}

// IsOpen reports whether start lies strictly in the future.
func (g Gate) IsOpen(start time.Time) bool {
	return start.After(g.clock.Now())
}

func (g Gate) Now() time.Time {
	return g.clock.Now()
}

// ParseStartTime reads text in StartTimeLayout as wall time in loc and
// returns the instant in UTC.
func ParseStartTime(text string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	parsed, err := time.ParseInLocation(StartTimeLayout, strings.TrimSpace(text), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, text)
	}
	return parsed.UTC(), nil
}
