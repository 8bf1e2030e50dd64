package game

import (
	"fmt"
	rand "math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lox/holdemtable/internal/bot"
)

// Table is a single Hold'em table: its seats in rotation order, the
// button, the blind level and the current hand.
type Table struct {
	cfg    tableConfig
	rng    *rand.Rand
	logger *log.Logger

	players []*Player
	bots    map[string]*bot.Engine

	dealer         int // rotation index of the button, -1 before the first hand
	hand           *hand
	handsCompleted int
	smallBlind     int
	bigBlind       int

	// chips the table is accountable for: stacks plus anything committed
	// to an unsettled hand
	chipTotal int
}

// NewTable returns an empty table.
func NewTable(opts ...TableOption) (*Table, error) {
	cfg := defaultTableConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.finish()

	switch {
	case cfg.smallBlind <= 0:
		return nil, fmt.Errorf("%w: small blind must be positive", ErrInvalidConfig)
	case cfg.bigBlind < cfg.smallBlind:
		return nil, fmt.Errorf("%w: big blind %d below small blind %d", ErrInvalidConfig, cfg.bigBlind, cfg.smallBlind)
	case cfg.startingChips <= 0:
		return nil, fmt.Errorf("%w: starting chips must be positive", ErrInvalidConfig)
	case cfg.maxSeats < 2 || cfg.maxSeats > 22:
		return nil, fmt.Errorf("%w: max seats %d out of range", ErrInvalidConfig, cfg.maxSeats)
	}

	return &Table{
		cfg:        cfg,
		rng:        cfg.rng,
		logger:     cfg.logger.WithPrefix("table"),
		bots:       make(map[string]*bot.Engine),
		dealer:     -1,
		smallBlind: cfg.smallBlind,
		bigBlind:   cfg.bigBlind,
	}, nil
}

// AddSeat seats a player with the table's starting stack. A seat added
// while a hand is running sits out until the next hand.
func (t *Table) AddSeat(s Seat) error {
	return t.AddSeatWithChips(s, t.cfg.startingChips)
}

// AddSeatWithChips seats a player with a specific stack.
func (t *Table) AddSeatWithChips(s Seat, chips int) error {
	if s.ID == "" {
		return fmt.Errorf("%w: empty seat id", ErrUnknownSeat)
	}
	if t.indexOf(s.ID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateSeat, s.ID)
	}
	if len(t.players) >= t.cfg.maxSeats {
		return ErrTableFull
	}
	if chips < 0 {
		return fmt.Errorf("%w: negative stack", ErrInvalidConfig)
	}
	if s.Name == "" {
		s.Name = s.ID
	}
	if s.Bot {
		if s.Difficulty == "" {
			s.Difficulty = bot.Medium
		}
		if s.Personality == "" {
			s.Personality = bot.Balanced
		}
		t.bots[s.ID] = bot.New(s.Difficulty, s.Personality, t.rng, t.logger.With("seat", s.ID))
	}

	t.players = append(t.players, &Player{Seat: s, Chips: chips})
	t.chipTotal += chips
	t.logger.Debug("Seat added", "seat", s.ID, "name", s.Name, "bot", s.Bot, "chips", chips)
	return nil
}

// RemoveSeat takes a seat off the table. If it is in the current hand it
// folds first; chips it already committed stay in the pot. Its stack
// leaves with it.
func (t *Table) RemoveSeat(id string) error {
	idx := t.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownSeat, id)
	}
	p := t.players[idx]
	h := t.hand
	live := h != nil && h.phase.Betting()
	wasActor := live && idx == h.actionOn
	wasContesting := live && p.contesting()

	if wasContesting {
		p.Folded = true
		h.round.acted[p.ID] = true
		if idx == h.bb {
			h.round.bbOption = false
		}
		h.log = append(h.log, Summary{
			Hand: h.number, SeatID: p.ID, Name: p.Name, Action: "leave",
			Phase: h.phase, Pot: t.committed(),
		})
	}
	if h != nil && !h.phase.Over() && p.TotalBet > 0 {
		h.departed = append(h.departed, p)
	}

	t.players = slices.Delete(t.players, idx, idx+1)
	delete(t.bots, id)
	t.chipTotal -= p.Chips
	t.excise(idx)
	t.logger.Debug("Seat removed", "seat", id, "mid_hand", wasContesting)

	if wasContesting {
		switch {
		case t.contenders() <= 1:
			t.finishUncontested()
		case t.streetComplete():
			t.closeStreet()
		case wasActor:
			h.actionOn = t.nextIndex(h.actionOn, (*Player).canAct)
		}
	}
	t.checkInvariants()
	return nil
}

// excise shifts every rotation index after a seat at idx was removed.
func (t *Table) excise(idx int) {
	n := len(t.players)
	back := func(i int) int {
		if n == 0 {
			return -1
		}
		return (i - 1 + n) % n
	}
	shift := func(p *int, onRemoved func() int) {
		switch {
		case *p < 0:
		case *p > idx:
			*p--
		case *p == idx:
			*p = onRemoved()
		}
	}

	// the button and the action move back one so that advancing from them
	// reaches the seat that followed the removed one
	shift(&t.dealer, func() int { return back(idx) })
	if h := t.hand; h != nil {
		shift(&h.actionOn, func() int { return back(idx) })
		shift(&h.sb, func() int { return -1 })
		shift(&h.bb, func() int { return -1 })
		shift(&h.round.lastAggressor, func() int { return -1 })
	}
}

// Rebuy refills a busted seat to the starting stack. It is refused while
// the seat still has chips or is contesting the current hand.
func (t *Table) Rebuy(id string) (int, error) {
	p := t.player(id)
	if p == nil {
		return 0, fmt.Errorf("%w: %s", ErrUnknownSeat, id)
	}
	if p.Chips > 0 {
		return 0, fmt.Errorf("%w: %s still has %d chips", ErrRebuyNotAllowed, id, p.Chips)
	}
	if t.hand != nil && !t.hand.phase.Over() && p.contesting() {
		return 0, fmt.Errorf("%w: %s is in the current hand", ErrRebuyNotAllowed, id)
	}
	p.Chips = t.cfg.startingChips
	t.chipTotal += p.Chips
	t.logger.Debug("Rebuy", "seat", id, "chips", p.Chips)
	return p.Chips, nil
}

// RevealCards shows a seat's hole cards to everyone after it won without a
// showdown, or after it was dealt into a hand that ended that way.
func (t *Table) RevealCards(id string) error {
	p := t.player(id)
	if p == nil {
		return fmt.Errorf("%w: %s", ErrUnknownSeat, id)
	}
	if t.hand == nil || t.hand.phase != Uncontested || len(p.HoleCards) == 0 {
		return ErrRevealNotAllowed
	}
	p.Revealed = true
	return nil
}

// Seats returns the seats in rotation order.
func (t *Table) Seats() []Seat {
	out := make([]Seat, len(t.players))
	for i, p := range t.players {
		out[i] = p.Seat
	}
	return out
}

// Chips returns a seat's stack.
func (t *Table) Chips(id string) (int, bool) {
	if p := t.player(id); p != nil {
		return p.Chips, true
	}
	return 0, false
}

// Blinds returns the current small and big blind.
func (t *Table) Blinds() (int, int) { return t.smallBlind, t.bigBlind }

// StartingChips is the stack new seats and rebuys receive.
func (t *Table) StartingChips() int { return t.cfg.startingChips }

// HandsCompleted counts settled hands.
func (t *Table) HandsCompleted() int { return t.handsCompleted }

// ChipTotal is every chip the table holds: stacks plus the pot.
func (t *Table) ChipTotal() int { return t.chipTotal }

// Phase is the current hand's phase, or Waiting before the first hand.
func (t *Table) Phase() Phase {
	if t.hand == nil {
		return Waiting
	}
	return t.hand.phase
}

// HandOver reports whether a new hand may be started.
func (t *Table) HandOver() bool {
	return t.hand == nil || t.hand.phase.Over()
}

// Actor returns the seat that must act next.
func (t *Table) Actor() (Seat, bool) {
	h := t.hand
	if h == nil || !h.phase.Betting() || h.actionOn < 0 {
		return Seat{}, false
	}
	return t.players[h.actionOn].Seat, true
}

// Result returns the settlement of the most recent hand once it is over.
func (t *Table) Result() *Result {
	if t.hand == nil {
		return nil
	}
	return t.hand.result
}

// ActiveSeats counts seats with chips.
func (t *Table) ActiveSeats() int {
	n := 0
	for _, p := range t.players {
		if p.Chips > 0 {
			n++
		}
	}
	return n
}

func (t *Table) indexOf(id string) int {
	return slices.IndexFunc(t.players, func(p *Player) bool { return p.ID == id })
}

func (t *Table) player(id string) *Player {
	if i := t.indexOf(id); i >= 0 {
		return t.players[i]
	}
	return nil
}

// nextIndex returns the first rotation index after from whose player
// satisfies pred, or -1.
func (t *Table) nextIndex(from int, pred func(*Player) bool) int {
	n := len(t.players)
	for i := 1; i <= n; i++ {
		j := ((from+i)%n + n) % n
		if pred(t.players[j]) {
			return j
		}
	}
	return -1
}

func (t *Table) contenders() int {
	n := 0
	for _, p := range t.players {
		if p.contesting() {
			n++
		}
	}
	return n
}

func (t *Table) countCanAct() int {
	n := 0
	for _, p := range t.players {
		if p.canAct() {
			n++
		}
	}
	return n
}
