package server

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdemtable/internal/gameid"
	"github.com/lox/holdemtable/internal/gametype"
)

// ErrTableClosed is returned by a runner after it has been closed.
var ErrTableClosed = errors.New("table closed")

// TableInstance is one running table and the configuration it was built
// from.
type TableInstance struct {
	ID     string
	Config TableConfig
	Runner *TableRunner
}

// TableSummary holds lightweight metadata for clients.
type TableSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	GameType    string `json:"game_type"`
	SmallBlind  int    `json:"small_blind"`
	BigBlind    int    `json:"big_blind"`
	Seats       int    `json:"seats"`
	MaxSeats    int    `json:"max_seats"`
	HandsPlayed int    `json:"hands_played"`
	Phase       string `json:"phase"`
}

// TableManager is the directory of running tables.
type TableManager struct {
	logger *log.Logger
	clock  quartz.Clock

	mu     sync.RWMutex
	tables map[string]*TableInstance
}

// NewTableManager constructs an empty manager. Runners it creates use
// clock for their timers.
func NewTableManager(clock quartz.Clock, logger *log.Logger) *TableManager {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &TableManager{
		logger: logger.WithPrefix("tables"),
		clock:  clock,
		tables: make(map[string]*TableInstance),
	}
}

// Create builds a table of the configured game type and seats nobody.
func (m *TableManager) Create(cfg TableConfig) (*TableInstance, error) {
	rc, err := cfg.Runner()
	if err != nil {
		return nil, fmt.Errorf("table %s: %w", cfg.Name, err)
	}
	id := gameid.New()
	logger := m.logger.With("table", cfg.Name, "id", id)
	g, err := gametype.New(cfg.GameType, cfg.Game(logger))
	if err != nil {
		return nil, fmt.Errorf("table %s: %w", cfg.Name, err)
	}

	inst := &TableInstance{
		ID:     id,
		Config: cfg,
		Runner: NewTableRunner(id, cfg.Name, g, rc, m.clock, m.logger),
	}
	m.mu.Lock()
	m.tables[id] = inst
	m.mu.Unlock()

	m.logger.Info("Table created", "table", cfg.Name, "id", id, "game_type", cfg.GameType)
	return inst, nil
}

// Get retrieves a table by ID.
func (m *TableManager) Get(id string) (*TableInstance, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	inst, ok := m.tables[id]
	return inst, ok
}

// Find looks a table up by ID, then by name.
func (m *TableManager) Find(idOrName string) (*TableInstance, bool) {
	if inst, ok := m.Get(idOrName); ok {
		return inst, true
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, inst := range m.tables {
		if inst.Config.Name == idOrName {
			return inst, true
		}
	}
	return nil, false
}

// Delete closes and removes a table.
func (m *TableManager) Delete(id string) bool {
	m.mu.Lock()
	inst, ok := m.tables[id]
	delete(m.tables, id)
	m.mu.Unlock()
	if !ok {
		return false
	}
	inst.Runner.Close()
	m.logger.Info("Table deleted", "table", inst.Config.Name, "id", id)
	return true
}

// List returns a snapshot of every table, oldest first.
func (m *TableManager) List() []TableSummary {
	m.mu.RLock()
	instances := make([]*TableInstance, 0, len(m.tables))
	for _, inst := range m.tables {
		instances = append(instances, inst)
	}
	m.mu.RUnlock()

	slices.SortFunc(instances, func(a, b *TableInstance) int { return strings.Compare(a.ID, b.ID) })
	out := make([]TableSummary, len(instances))
	for i, inst := range instances {
		out[i] = inst.Runner.Summary()
		out[i].MaxSeats = inst.Config.MaxSeats
	}
	return out
}

// Close closes every table.
func (m *TableManager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, inst := range m.tables {
		inst.Runner.Close()
		delete(m.tables, id)
	}
}

// Bootstrap creates every configured table and seats its bots.
func (m *TableManager) Bootstrap(cfg *Config) error {
	for _, tc := range cfg.Tables {
		inst, err := m.Create(tc)
		if err != nil {
			return err
		}
		for _, b := range cfg.GetBotsForTable(tc.Name) {
			if err := inst.Runner.Join(b.Seat()); err != nil {
				return fmt.Errorf("seating bot %s at %s: %w", b.Name, tc.Name, err)
			}
		}
	}
	return nil
}
