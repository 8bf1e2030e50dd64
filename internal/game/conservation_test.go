package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/holdemtable/internal/bot"
	"github.com/lox/holdemtable/internal/randutil"
)

// Bots play many hands with random stacks, departures and rebuys. After
// every action the pots must match the contributions, and chips are only
// ever created by seating or rebuying.
func TestChipsAreConserved(t *testing.T) {
	t.Parallel()
	difficulties := []bot.Difficulty{bot.Easy, bot.Medium, bot.Hard}

	for seed := range int64(25) {
		t.Run(fmt.Sprintf("seed-%d", seed), func(t *testing.T) {
			t.Parallel()
			rng := randutil.New(seed)
			tbl := newTestTable(t, nil, WithRNG(randutil.Derive(seed, 1)), WithBlinds(5, 10))

			n := 2 + rng.IntN(5)
			for i := range n {
				require.NoError(t, tbl.AddSeatWithChips(Seat{
					ID:          fmt.Sprintf("bot-%d", i),
					Bot:         true,
					Difficulty:  difficulties[rng.IntN(len(difficulties))],
					Personality: bot.Personalities[rng.IntN(len(bot.Personalities))],
				}, 50+rng.IntN(500)))
			}

			for hand := 0; hand < 60; hand++ {
				if tbl.ActiveSeats() < 2 {
					break
				}
				require.NoError(t, tbl.StartHand())

				for steps := 0; !tbl.HandOver(); steps++ {
					require.Less(t, steps, 500, "hand did not finish")
					actor, ok := tbl.Actor()
					require.True(t, ok)

					if rng.IntN(200) == 0 && len(tbl.Seats()) > 2 {
						require.NoError(t, tbl.RemoveSeat(actor.ID))
						continue
					}

					d, err := tbl.DecideForSeat(actor.ID)
					require.NoError(t, err)
					_, err = tbl.Apply(actor.ID, d.Action)
					require.NoError(t, err)

					v := tbl.ViewerState("")
					require.Equal(t, v.Pot, TotalPots(v.Pots))
					require.Equal(t, tbl.ChipTotal(), stackSum(tbl)+v.Pot*boolInt(!tbl.HandOver()))
				}

				require.Equal(t, tbl.ChipTotal(), stackSum(tbl))
				res := tbl.Result()
				require.NotNil(t, res)
				awarded := 0
				for _, a := range res.Awards {
					awarded += a.Amount
				}
				require.Equal(t, TotalPots(tbl.ViewerState("").Pots), awarded)

				for _, s := range tbl.Seats() {
					if c, _ := tbl.Chips(s.ID); c == 0 && rng.IntN(3) == 0 {
						_, err := tbl.Rebuy(s.ID)
						require.NoError(t, err)
					}
				}
			}
		})
	}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
