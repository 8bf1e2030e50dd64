package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/lox/holdemtable/internal/game"
	"github.com/lox/holdemtable/internal/randutil"
	"github.com/lox/holdemtable/internal/simulator"
)

type SimulateCmd struct {
	Tables        int     `short:"t" help:"Tables to run in parallel" default:"4"`
	Hands         int     `short:"n" help:"Hands per table" default:"500"`
	Seats         int     `short:"s" help:"Bots per table" default:"6"`
	Seed          int64   `help:"Random seed for reproducible results (0 picks one)"`
	SmallBlind    int     `help:"Small blind" default:"10"`
	BigBlind      int     `help:"Big blind" default:"20"`
	StartingChips int     `help:"Starting stack" default:"1000"`
	EscalateEvery int     `help:"Raise the blinds every N hands (0 disables)" default:"0"`
	Multiplier    float64 `help:"Blind multiplier when escalating" default:"1.5"`
	Rebuy         bool    `help:"Refill busted bots so every table plays all its hands" default:"true" negatable:""`
}

func (c *SimulateCmd) Run(cli *CLI) error {
	logger, err := newLogger(cli.LogLevel, "warn")
	if err != nil {
		return err
	}

	seed := c.Seed
	if seed == 0 {
		seed = randutil.Seed()
	}
	logger.Info("Starting simulation", "tables", c.Tables, "hands", c.Hands, "seats", c.Seats, "seed", seed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := simulator.Run(ctx, simulator.Config{
		Tables:        c.Tables,
		Hands:         c.Hands,
		Seats:         c.Seats,
		Seed:          seed,
		SmallBlind:    c.SmallBlind,
		BigBlind:      c.BigBlind,
		StartingChips: c.StartingChips,
		Schedule:      game.BlindSchedule{EveryHands: c.EscalateEvery, Multiplier: c.Multiplier},
		Rebuy:         c.Rebuy,
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("simulation failed (seed %d): %w", seed, err)
	}

	fmt.Print(report.Render())
	fmt.Printf("seed %d\n", seed)
	return nil
}
