package game

import (
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/holdemtable/internal/randutil"
	"github.com/lox/holdemtable/poker"
)

const (
	DefaultSmallBlind    = 10
	DefaultBigBlind      = 20
	DefaultStartingChips = 1000
	DefaultMaxSeats      = 10
)

// TableOption configures a Table during creation.
type TableOption func(*tableConfig)

type tableConfig struct {
	rng           *rand.Rand
	smallBlind    int
	bigBlind      int
	startingChips int
	maxSeats      int
	schedule      BlindSchedule
	logger        *log.Logger
	deckFactory   func(*rand.Rand) *poker.Deck
}

// WithRNG sets the random source used for shuffles and bot noise.
func WithRNG(rng *rand.Rand) TableOption {
	return func(c *tableConfig) { c.rng = rng }
}

// WithSeed is WithRNG(randutil.New(seed)).
func WithSeed(seed int64) TableOption {
	return func(c *tableConfig) { c.rng = randutil.New(seed) }
}

func WithBlinds(small, big int) TableOption {
	return func(c *tableConfig) {
		c.smallBlind = small
		c.bigBlind = big
	}
}

// WithStartingChips sets the stack given to new seats and to rebuys.
func WithStartingChips(chips int) TableOption {
	return func(c *tableConfig) { c.startingChips = chips }
}

func WithMaxSeats(seats int) TableOption {
	return func(c *tableConfig) { c.maxSeats = seats }
}

func WithBlindSchedule(s BlindSchedule) TableOption {
	return func(c *tableConfig) { c.schedule = s }
}

func WithLogger(logger *log.Logger) TableOption {
	return func(c *tableConfig) { c.logger = logger }
}

// WithDeckFactory replaces the per-hand deck. Tests use it to stack decks.
func WithDeckFactory(f func(*rand.Rand) *poker.Deck) TableOption {
	return func(c *tableConfig) { c.deckFactory = f }
}

func defaultTableConfig() tableConfig {
	return tableConfig{
		smallBlind:    DefaultSmallBlind,
		bigBlind:      DefaultBigBlind,
		startingChips: DefaultStartingChips,
		maxSeats:      DefaultMaxSeats,
		deckFactory:   poker.NewDeck,
	}
}

func (c *tableConfig) finish() {
	if c.rng == nil {
		c.rng = randutil.New(randutil.Seed())
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	if c.deckFactory == nil {
		c.deckFactory = poker.NewDeck
	}
}
