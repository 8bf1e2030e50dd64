package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/coder/quartz"

	"github.com/lox/holdemtable/internal/server"
)

type ServeCmd struct {
	Config string `short:"c" help:"HCL config file; defaults apply when missing" default:"holdem.hcl" type:"path"`
	Port   int    `short:"p" help:"Override the configured port"`
}

func (c *ServeCmd) Run(cli *CLI) error {
	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	if c.Port != 0 {
		cfg.Server.Port = c.Port
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(cli.LogLevel, cfg.Server.LogLevel)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	manager := server.NewTableManager(quartz.NewReal(), logger)
	defer manager.Close()
	if err := manager.Bootstrap(cfg); err != nil {
		return err
	}
	for _, t := range manager.List() {
		logger.Info("Table ready", "name", t.Name, "id", t.ID, "blinds", t.SmallBlind, "seats", t.Seats)
	}

	return server.NewServer(cfg.ListenAddress(), manager, logger).ListenAndServe(ctx)
}
