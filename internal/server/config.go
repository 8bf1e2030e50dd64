package server

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/holdemtable/internal/bot"
	"github.com/lox/holdemtable/internal/game"
	"github.com/lox/holdemtable/internal/gametype"
)

// Config is the complete server configuration.
type Config struct {
	Server ServerSettings
	Tables []TableConfig
	Bots   []BotConfig
}

type fileConfig struct {
	Server *ServerSettings `hcl:"server,block"`
	Tables []TableConfig   `hcl:"table,block"`
	Bots   []BotConfig     `hcl:"bot,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// TableConfig defines a table created at startup.
type TableConfig struct {
	Name            string           `hcl:"name,label"`
	GameType        string           `hcl:"game_type,optional"`
	SmallBlind      int              `hcl:"small_blind,optional"`
	BigBlind        int              `hcl:"big_blind,optional"`
	StartingChips   int              `hcl:"starting_chips,optional"`
	MaxSeats        int              `hcl:"max_seats,optional"`
	ActionTimeout   string           `hcl:"action_timeout,optional"`
	HandPause       string           `hcl:"hand_pause,optional"`
	Seed            int64            `hcl:"seed,optional"`
	BlindEscalation *BlindEscalation `hcl:"blind_escalation,block"`
}

// BlindEscalation multiplies the blinds every few hands.
type BlindEscalation struct {
	EveryHands int     `hcl:"every_hands"`
	Multiplier float64 `hcl:"multiplier"`
}

// BotConfig seats a bot at a table on startup. An empty table means every
// table.
type BotConfig struct {
	Name        string `hcl:"name,label"`
	Table       string `hcl:"table,optional"`
	Difficulty  string `hcl:"difficulty,optional"`
	Personality string `hcl:"personality,optional"`
}

const (
	defaultAddress       = "localhost"
	defaultPort          = 8080
	defaultLogLevel      = "info"
	defaultActionTimeout = "30s"
	defaultHandPause     = "3s"
)

// DefaultConfig is used when no config file exists: one table with two
// bots waiting for a human.
func DefaultConfig() *Config {
	cfg := &Config{
		Tables: []TableConfig{{Name: "main"}},
		Bots: []BotConfig{
			{Name: "alice", Table: "main", Difficulty: "medium", Personality: "balanced"},
			{Name: "bob", Table: "main", Difficulty: "easy", Personality: "aggressive"},
		},
	}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig reads an HCL config file. A missing file yields DefaultConfig.
func LoadConfig(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return ParseConfig(src, filename)
}

// ParseConfig decodes HCL source and fills in defaults. It does not
// validate.
func ParseConfig(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := &Config{Tables: raw.Tables, Bots: raw.Bots}
	if raw.Server != nil {
		cfg.Server = *raw.Server
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = defaultAddress
	}
	if c.Server.Port == 0 {
		c.Server.Port = defaultPort
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = defaultLogLevel
	}

	for i := range c.Tables {
		t := &c.Tables[i]
		if t.GameType == "" {
			t.GameType = gametype.Holdem
		}
		if t.SmallBlind == 0 {
			t.SmallBlind = game.DefaultSmallBlind
		}
		if t.BigBlind == 0 {
			t.BigBlind = 2 * t.SmallBlind
		}
		if t.StartingChips == 0 {
			t.StartingChips = game.DefaultStartingChips
		}
		if t.MaxSeats == 0 {
			t.MaxSeats = 8
		}
		if t.ActionTimeout == "" {
			t.ActionTimeout = defaultActionTimeout
		}
		if t.HandPause == "" {
			t.HandPause = defaultHandPause
		}
	}

	for i := range c.Bots {
		if c.Bots[i].Difficulty == "" {
			c.Bots[i].Difficulty = string(bot.Medium)
		}
		if c.Bots[i].Personality == "" {
			c.Bots[i].Personality = string(bot.Balanced)
		}
	}
}

// Validate validates the server configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if _, err := log.ParseLevel(c.Server.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", c.Server.LogLevel)
	}
	if len(c.Tables) == 0 {
		return fmt.Errorf("at least one table must be configured")
	}

	seen := map[string]bool{}
	for _, table := range c.Tables {
		if seen[table.Name] {
			return fmt.Errorf("table %s: defined twice", table.Name)
		}
		seen[table.Name] = true

		if !gametype.Known(table.GameType) {
			return fmt.Errorf("table %s: unknown game type %q", table.Name, table.GameType)
		}
		if table.SmallBlind <= 0 {
			return fmt.Errorf("table %s: small blind must be positive", table.Name)
		}
		if table.BigBlind < table.SmallBlind {
			return fmt.Errorf("table %s: big blind must be at least the small blind", table.Name)
		}
		if table.StartingChips < table.BigBlind {
			return fmt.Errorf("table %s: starting chips must cover the big blind", table.Name)
		}
		if table.MaxSeats < 2 || table.MaxSeats > 10 {
			return fmt.Errorf("table %s: max seats must be between 2 and 10", table.Name)
		}
		if _, err := table.Runner(); err != nil {
			return fmt.Errorf("table %s: %w", table.Name, err)
		}
		if e := table.BlindEscalation; e != nil && (e.EveryHands <= 0 || e.Multiplier <= 1) {
			return fmt.Errorf("table %s: blind escalation needs every_hands > 0 and multiplier > 1", table.Name)
		}
	}

	for _, b := range c.Bots {
		if b.Table != "" && !seen[b.Table] {
			return fmt.Errorf("bot %s: unknown table %s", b.Name, b.Table)
		}
		if _, err := bot.ParseDifficulty(b.Difficulty); err != nil {
			return fmt.Errorf("bot %s: %w", b.Name, err)
		}
		if _, err := bot.ParsePersonality(b.Personality); err != nil {
			return fmt.Errorf("bot %s: %w", b.Name, err)
		}
	}

	return nil
}

// ListenAddress returns the host:port to serve on.
func (c *Config) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// GetTableByName returns a table configuration by name
func (c *Config) GetTableByName(name string) *TableConfig {
	for i := range c.Tables {
		if c.Tables[i].Name == name {
			return &c.Tables[i]
		}
	}
	return nil
}

// GetBotsForTable returns all bots configured for a specific table
func (c *Config) GetBotsForTable(tableName string) []BotConfig {
	var bots []BotConfig
	for _, b := range c.Bots {
		if b.Table == "" || b.Table == tableName {
			bots = append(bots, b)
		}
	}
	return bots
}

// Runner converts the timing settings. A zero hand pause turns off
// automatic dealing.
func (t TableConfig) Runner() (RunnerConfig, error) {
	timeout, err := time.ParseDuration(t.ActionTimeout)
	if err != nil {
		return RunnerConfig{}, fmt.Errorf("action_timeout: %w", err)
	}
	if timeout <= 0 {
		return RunnerConfig{}, fmt.Errorf("action_timeout must be positive")
	}
	pause, err := time.ParseDuration(t.HandPause)
	if err != nil {
		return RunnerConfig{}, fmt.Errorf("hand_pause: %w", err)
	}
	if pause < 0 {
		return RunnerConfig{}, fmt.Errorf("hand_pause must not be negative")
	}
	return RunnerConfig{ActionTimeout: timeout, HandPause: pause, AutoStart: true}, nil
}

// Game builds the game-type configuration for this table.
func (t TableConfig) Game(logger *log.Logger) gametype.Config {
	cfg := gametype.Config{
		SmallBlind:    t.SmallBlind,
		BigBlind:      t.BigBlind,
		StartingChips: t.StartingChips,
		MaxSeats:      t.MaxSeats,
		Seed:          t.Seed,
		Logger:        logger,
	}
	if e := t.BlindEscalation; e != nil {
		cfg.Schedule = game.BlindSchedule{EveryHands: e.EveryHands, Multiplier: e.Multiplier}
	}
	return cfg
}

// Seat converts a bot entry to a table seat.
func (b BotConfig) Seat() game.Seat {
	d, _ := bot.ParseDifficulty(b.Difficulty)
	p, _ := bot.ParsePersonality(b.Personality)
	return game.Seat{ID: b.Name, Name: b.Name, Bot: true, Difficulty: d, Personality: p}
}
