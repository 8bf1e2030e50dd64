package server

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdemtable/internal/game"
	"github.com/lox/holdemtable/internal/gametype"
)

// testLogger creates a logger that discards output for tests
func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func newTestRunner(t *testing.T, cfg RunnerConfig, seed int64) (*TableRunner, *quartz.Mock) {
	t.Helper()
	clock := quartz.NewMock(t)
	g, err := gametype.New(gametype.Holdem, gametype.Config{
		SmallBlind:    10,
		BigBlind:      20,
		StartingChips: 1000,
		Seed:          seed,
		Logger:        testLogger(),
	})
	require.NoError(t, err)
	r := NewTableRunner("t1", "test", g, cfg, clock, testLogger())
	t.Cleanup(r.Close)
	return r, clock
}

func advance(t *testing.T, clock *quartz.Mock, d time.Duration) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	clock.Advance(d).MustWait(ctx)
}

func human(id string) game.Seat { return game.Seat{ID: id} }

func robot(id string) game.Seat { return game.Seat{ID: id, Bot: true} }

func activeSeats(v game.View) int {
	n := 0
	for _, s := range v.Seats {
		if s.Chips > 0 {
			n++
		}
	}
	return n
}
