// Package gametype selects a table implementation by game-type name. Each
// variant satisfies Game; the server only ever talks to that interface.
package gametype

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lox/holdemtable/internal/action"
	"github.com/lox/holdemtable/internal/bot"
	"github.com/lox/holdemtable/internal/game"
)

// ErrUnknownType is returned by New for an unregistered game type.
var ErrUnknownType = errors.New("unknown game type")

// Game is what a table runner needs from a variant.
type Game interface {
	Type() string

	StartHand() error
	Apply(seatID string, a action.Action) (game.Summary, error)
	ViewerState(viewerID string) game.View
	HandOver() bool
	Actor() (game.Seat, bool)

	AddSeat(s game.Seat) error
	RemoveSeat(id string) error
	Rebuy(id string) (int, error)
	RevealCards(id string) error
	Seats() []game.Seat
	ActiveSeats() int

	IsBot(id string) bool
	DecideForSeat(id string) (bot.Decision, error)

	HandsCompleted() int
	ChipTotal() int
}

// Config is the variant-independent table configuration.
type Config struct {
	SmallBlind    int
	BigBlind      int
	StartingChips int
	MaxSeats      int
	Schedule      game.BlindSchedule
	Seed          int64 // zero seeds from the clock
	Logger        *log.Logger
}

// Factory builds a Game from a Config.
type Factory func(Config) (Game, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register makes a variant available to New. Registering the same name
// twice panics.
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	if f == nil {
		panic("gametype: Register factory is nil")
	}
	if _, dup := factories[name]; dup {
		panic("gametype: Register called twice for " + name)
	}
	factories[name] = f
}

// New builds a table of the named type.
func New(name string, cfg Config) (Game, error) {
	mu.RLock()
	f, ok := factories[name]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
	return f(cfg)
}

// Types lists the registered game types, sorted.
func Types() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Known reports whether name is registered.
func Known(name string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := factories[name]
	return ok
}
