// Package simulator plays bot-only tables to completion or a hand limit,
// checking that no chips are created or lost along the way.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdemtable/internal/bot"
	"github.com/lox/holdemtable/internal/game"
	"github.com/lox/holdemtable/internal/randutil"
	"github.com/lox/holdemtable/internal/statistics"
)

// ErrChipsNotConserved is returned when a table's chips stop adding up.
var ErrChipsNotConserved = errors.New("chips not conserved")

// Config holds configuration for running simulations
type Config struct {
	Tables        int
	Hands         int // per table
	Seats         int // per table
	Seed          int64
	SmallBlind    int
	BigBlind      int
	StartingChips int
	Schedule      game.BlindSchedule
	Rebuy         bool // refill busted bots instead of ending the table
	Logger        *log.Logger
}

func (c *Config) applyDefaults() {
	if c.Tables == 0 {
		c.Tables = 1
	}
	if c.Hands == 0 {
		c.Hands = 100
	}
	if c.Seats == 0 {
		c.Seats = 6
	}
	if c.SmallBlind == 0 {
		c.SmallBlind = game.DefaultSmallBlind
	}
	if c.BigBlind == 0 {
		c.BigBlind = 2 * c.SmallBlind
	}
	if c.StartingChips == 0 {
		c.StartingChips = game.DefaultStartingChips
	}
	if c.Logger == nil {
		c.Logger = log.New(io.Discard)
	}
}

// Report is the outcome of a simulation.
type Report struct {
	Tables        int
	Hands         int
	Showdowns     int
	Uncontested   int
	Elapsed       time.Duration
	ByPersonality map[bot.Personality]*statistics.Statistics
	ByDifficulty  map[bot.Difficulty]*statistics.Statistics
}

var difficulties = []bot.Difficulty{bot.Easy, bot.Medium, bot.Hard}

// Lineup is the bots seated at table n: difficulties cycle by seat and
// personalities shift by table so every pairing gets played.
func Lineup(table, seats int) []game.Seat {
	out := make([]game.Seat, seats)
	for i := range seats {
		id := fmt.Sprintf("t%d-bot%d", table, i+1)
		out[i] = game.Seat{
			ID:          id,
			Name:        id,
			Bot:         true,
			Difficulty:  difficulties[i%len(difficulties)],
			Personality: bot.Personalities[(table+i)%len(bot.Personalities)],
		}
	}
	return out
}

// Run plays cfg.Tables tables concurrently. Each table draws from its own
// stream derived from cfg.Seed, so results do not depend on scheduling.
func Run(ctx context.Context, cfg Config) (*Report, error) {
	cfg.applyDefaults()
	if cfg.Seats < 2 || cfg.Seats > game.DefaultMaxSeats {
		return nil, fmt.Errorf("seats must be between 2 and %d, got %d", game.DefaultMaxSeats, cfg.Seats)
	}

	start := time.Now()
	results := make([]*tableResult, cfg.Tables)
	g, ctx := errgroup.WithContext(ctx)
	for i := range cfg.Tables {
		g.Go(func() error {
			res, err := playTable(ctx, cfg, i)
			if err != nil {
				return fmt.Errorf("table %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{
		Tables:        cfg.Tables,
		ByPersonality: make(map[bot.Personality]*statistics.Statistics),
		ByDifficulty:  make(map[bot.Difficulty]*statistics.Statistics),
	}
	for _, res := range results {
		report.Hands += res.hands
		report.Showdowns += res.showdowns
		report.Uncontested += res.uncontested
		for p, s := range res.byPersonality {
			merge(report.ByPersonality, p, s)
		}
		for d, s := range res.byDifficulty {
			merge(report.ByDifficulty, d, s)
		}
	}
	report.Elapsed = time.Since(start)
	cfg.Logger.Info("Simulation complete", "tables", report.Tables, "hands", report.Hands, "elapsed", report.Elapsed)
	return report, nil
}

func merge[K comparable](m map[K]*statistics.Statistics, k K, s *statistics.Statistics) {
	if m[k] == nil {
		m[k] = &statistics.Statistics{}
	}
	m[k].Merge(s)
}

type tableResult struct {
	hands         int
	showdowns     int
	uncontested   int
	byPersonality map[bot.Personality]*statistics.Statistics
	byDifficulty  map[bot.Difficulty]*statistics.Statistics
}

func playTable(ctx context.Context, cfg Config, n int) (res *tableResult, err error) {
	logger := cfg.Logger.With("table", n)
	tbl, err := game.NewTable(
		game.WithRNG(randutil.Derive(cfg.Seed, uint64(n))),
		game.WithBlinds(cfg.SmallBlind, cfg.BigBlind),
		game.WithStartingChips(cfg.StartingChips),
		game.WithBlindSchedule(cfg.Schedule),
		game.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	lineup := Lineup(n, cfg.Seats)
	seats := make(map[string]game.Seat, len(lineup))
	for _, s := range lineup {
		if err := tbl.AddSeat(s); err != nil {
			return nil, err
		}
		seats[s.ID] = s
	}

	defer func() {
		if r := recover(); r != nil {
			var inv *game.InvariantError
			if e, ok := r.(error); ok && errors.As(e, &inv) {
				err = fmt.Errorf("hand %d: %w", tbl.HandsCompleted()+1, inv)
				return
			}
			panic(r)
		}
	}()

	res = &tableResult{
		byPersonality: make(map[bot.Personality]*statistics.Statistics),
		byDifficulty:  make(map[bot.Difficulty]*statistics.Statistics),
	}
	for res.hands < cfg.Hands {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if tbl.ActiveSeats() < 2 {
			if !cfg.Rebuy {
				logger.Debug("Table finished", "hands", res.hands)
				break
			}
			for _, s := range tbl.Seats() {
				if chips, _ := tbl.Chips(s.ID); chips == 0 {
					if _, err := tbl.Rebuy(s.ID); err != nil {
						return nil, err
					}
				}
			}
		}
		if err := playHand(tbl, seats, res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

const maxStepsPerHand = 1000

func playHand(tbl *game.Table, seats map[string]game.Seat, res *tableResult) error {
	before := stacks(tbl)
	total := tbl.ChipTotal()
	if err := tbl.StartHand(); err != nil {
		return err
	}
	start := tbl.ViewerState("")

	for steps := 0; !tbl.HandOver(); steps++ {
		if steps >= maxStepsPerHand {
			return fmt.Errorf("hand %d did not finish after %d actions", start.Hand, steps)
		}
		actor, ok := tbl.Actor()
		if !ok {
			return fmt.Errorf("hand %d has no seat to act", start.Hand)
		}
		d, err := tbl.DecideForSeat(actor.ID)
		if err != nil {
			return err
		}
		if _, err := tbl.Apply(actor.ID, d.Action); err != nil {
			return fmt.Errorf("bot %s: %w", actor.ID, err)
		}
	}

	after := stacks(tbl)
	if tbl.ChipTotal() != total || sum(after) != total {
		return fmt.Errorf("%w after hand %d: started with %d, table holds %d, stacks hold %d",
			ErrChipsNotConserved, start.Hand, total, tbl.ChipTotal(), sum(after))
	}

	end := tbl.ViewerState("")
	result := end.Result
	res.hands++
	if result.Uncontested {
		res.uncontested++
	} else {
		res.showdowns++
	}

	street := streetReached(len(end.Board))
	pot := game.TotalPots(end.Pots)
	dealer := slices.IndexFunc(start.Seats, func(s game.SeatView) bool { return s.Dealer })
	for i, sv := range start.Seats {
		if !sv.InHand {
			continue
		}
		hr := statistics.HandResult{
			NetChips:       after[sv.ID] - before[sv.ID],
			BigBlind:       start.BigBlind,
			Position:       (i - dealer + len(start.Seats)) % len(start.Seats),
			WentToShowdown: slices.ContainsFunc(result.Showdown, func(h game.ShownHand) bool { return h.SeatID == sv.ID }),
			PotChips:       pot,
			StreetReached:  street,
		}
		s := seats[sv.ID]
		add(res.byPersonality, s.Personality, hr)
		add(res.byDifficulty, s.Difficulty, hr)
	}
	return nil
}

func add[K comparable](m map[K]*statistics.Statistics, k K, hr statistics.HandResult) {
	if m[k] == nil {
		m[k] = &statistics.Statistics{}
	}
	m[k].Add(hr)
}

func stacks(tbl *game.Table) map[string]int {
	out := make(map[string]int)
	for _, s := range tbl.Seats() {
		out[s.ID], _ = tbl.Chips(s.ID)
	}
	return out
}

func sum(m map[string]int) int {
	total := 0
	for _, v := range m {
		total += v
	}
	return total
}

func streetReached(boardCards int) string {
	switch boardCards {
	case 0:
		return "preflop"
	case 3:
		return "flop"
	case 4:
		return "turn"
	default:
		return "river"
	}
}
