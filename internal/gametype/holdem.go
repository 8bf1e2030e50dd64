package gametype

import (
	"github.com/lox/holdemtable/internal/game"
	"github.com/lox/holdemtable/internal/randutil"
)

// Holdem is the no-limit Texas Hold'em game type.
const Holdem = "holdem"

func init() {
	Register(Holdem, newHoldem)
}

type holdem struct {
	*game.Table
}

func (holdem) Type() string { return Holdem }

func newHoldem(cfg Config) (Game, error) {
	opts := []game.TableOption{game.WithBlindSchedule(cfg.Schedule)}
	if cfg.SmallBlind != 0 || cfg.BigBlind != 0 {
		opts = append(opts, game.WithBlinds(cfg.SmallBlind, cfg.BigBlind))
	}
	if cfg.StartingChips != 0 {
		opts = append(opts, game.WithStartingChips(cfg.StartingChips))
	}
	if cfg.MaxSeats != 0 {
		opts = append(opts, game.WithMaxSeats(cfg.MaxSeats))
	}
	if cfg.Seed != 0 {
		opts = append(opts, game.WithRNG(randutil.New(cfg.Seed)))
	}
	if cfg.Logger != nil {
		opts = append(opts, game.WithLogger(cfg.Logger))
	}

	t, err := game.NewTable(opts...)
	if err != nil {
		return nil, err
	}
	return holdem{t}, nil
}
