package game

import (
	"io"
	rand "math/rand/v2"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdemtable/internal/action"
	"github.com/lox/holdemtable/poker"
)

// stackedDecks deals the given card runs on successive hands, then falls
// back to shuffled decks. Cards go out two at a time starting left of the
// button, then flop, turn and river.
func stackedDecks(runs ...string) TableOption {
	i := 0
	return WithDeckFactory(func(rng *rand.Rand) *poker.Deck {
		if i < len(runs) {
			d := poker.NewDeckFromCards(poker.MustParseCards(runs[i]))
			i++
			return d
		}
		return poker.NewDeck(rng)
	})
}

type seatSetup struct {
	id    string
	chips int
}

func newTestTable(t *testing.T, seats []seatSetup, opts ...TableOption) *Table {
	t.Helper()
	base := []TableOption{
		WithSeed(42),
		WithBlinds(10, 20),
		WithLogger(log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})),
	}
	tbl, err := NewTable(append(base, opts...)...)
	require.NoError(t, err)
	for _, s := range seats {
		chips := s.chips
		if chips == 0 {
			chips = DefaultStartingChips
		}
		require.NoError(t, tbl.AddSeatWithChips(Seat{ID: s.id, Name: s.id}, chips))
	}
	return tbl
}

func seats(ids ...string) []seatSetup {
	out := make([]seatSetup, len(ids))
	for i, id := range ids {
		out[i] = seatSetup{id: id}
	}
	return out
}

func mustApply(t *testing.T, tbl *Table, seat string, a action.Action) Summary {
	t.Helper()
	s, err := tbl.Apply(seat, a)
	require.NoError(t, err, "%s %s", seat, a)
	return s
}

func requireActor(t *testing.T, tbl *Table, want string) {
	t.Helper()
	actor, ok := tbl.Actor()
	require.True(t, ok, "expected %s to act, nobody is", want)
	require.Equal(t, want, actor.ID)
}

func chips(t *testing.T, tbl *Table, id string) int {
	t.Helper()
	c, ok := tbl.Chips(id)
	require.True(t, ok, "unknown seat %s", id)
	return c
}

func stackSum(tbl *Table) int {
	total := 0
	for _, s := range tbl.Seats() {
		c, _ := tbl.Chips(s.ID)
		total += c
	}
	return total
}
