package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdemtable/internal/action"
	"github.com/lox/holdemtable/internal/game"
	"github.com/lox/holdemtable/internal/gametype"
)

// RunnerConfig holds the timing policy for a table.
type RunnerConfig struct {
	ActionTimeout time.Duration // a human seat that has not acted by then folds
	HandPause     time.Duration // delay before dealing the next hand; zero disables
	AutoStart     bool          // deal as soon as two seats have chips
	MaxBotSteps   int
}

const defaultMaxBotSteps = 1000

// TableRunner is the only way the server touches a Game. Every call holds
// the runner's lock, bots act inline, and subscribers get a fresh view
// after each change.
type TableRunner struct {
	id     string
	name   string
	cfg    RunnerConfig
	clock  quartz.Clock
	logger *log.Logger

	mu      sync.Mutex
	game    gametype.Game
	turn    uint64 // bumped whenever the seat to act may have changed
	settled int    // last hand reported as complete
	timer   *quartz.Timer
	pause   *quartz.Timer
	subs    map[int]*subscriber
	nextSub int
	closed  bool
}

type subscriber struct {
	viewer string
	ch     chan game.View
}

const subscriberBuffer = 16

// NewTableRunner wraps g.
func NewTableRunner(id, name string, g gametype.Game, cfg RunnerConfig, clock quartz.Clock, logger *log.Logger) *TableRunner {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if cfg.MaxBotSteps == 0 {
		cfg.MaxBotSteps = defaultMaxBotSteps
	}
	return &TableRunner{
		id:     id,
		name:   name,
		cfg:    cfg,
		clock:  clock,
		logger: logger.WithPrefix("runner").With("table", name),
		game:   g,
		subs:   make(map[int]*subscriber),
	}
}

func (r *TableRunner) ID() string   { return r.id }
func (r *TableRunner) Name() string { return r.name }

// Join seats a player or bot. With AutoStart the first hand is dealt as
// soon as two seats have chips.
func (r *TableRunner) Join(s game.Seat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrTableClosed
	}
	if err := r.game.AddSeat(s); err != nil {
		return err
	}
	r.logger.Info("Seat joined", "seat", s.ID, "bot", s.Bot)
	if r.cfg.AutoStart && r.game.HandOver() && r.pause == nil {
		r.tryStartLocked()
	}
	r.broadcastLocked()
	return nil
}

// Leave removes a seat, folding it if it is in the hand.
func (r *TableRunner) Leave(seatID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.game.RemoveSeat(seatID); err != nil {
		return err
	}
	r.logger.Info("Seat left", "seat", seatID)
	r.advanceLocked()
	r.broadcastLocked()
	return nil
}

// Act applies a human seat's action, then lets the bots play until a
// human must act or the hand ends. A rejected action changes nothing and
// nobody is notified.
func (r *TableRunner) Act(seatID string, a action.Action) (game.Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return game.Summary{}, ErrTableClosed
	}
	s, err := r.game.Apply(seatID, a)
	if err != nil {
		r.logger.Debug("Action rejected", "seat", seatID, "action", a, "error", err)
		return game.Summary{}, err
	}
	r.logSummary(s)
	r.advanceLocked()
	r.broadcastLocked()
	return s, nil
}

// StartHand deals the next hand now.
func (r *TableRunner) StartHand() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrTableClosed
	}
	if err := r.startLocked(); err != nil {
		return err
	}
	r.broadcastLocked()
	return nil
}

// Rebuy refills a busted seat.
func (r *TableRunner) Rebuy(seatID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	chips, err := r.game.Rebuy(seatID)
	if err != nil {
		return 0, err
	}
	r.logger.Info("Rebuy", "seat", seatID, "chips", chips)
	if r.cfg.AutoStart && r.game.HandOver() && r.pause == nil {
		r.tryStartLocked()
	}
	r.broadcastLocked()
	return chips, nil
}

// Reveal shows a seat's cards after an uncontested hand.
func (r *TableRunner) Reveal(seatID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.game.RevealCards(seatID); err != nil {
		return err
	}
	r.broadcastLocked()
	return nil
}

// Snapshot renders the table for one viewer.
func (r *TableRunner) Snapshot(viewerID string) game.View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.game.ViewerState(viewerID)
}

// Summary describes the table for listings.
func (r *TableRunner) Summary() TableSummary {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := r.game.ViewerState("")
	return TableSummary{
		ID:          r.id,
		Name:        r.name,
		GameType:    r.game.Type(),
		SmallBlind:  v.SmallBlind,
		BigBlind:    v.BigBlind,
		Seats:       len(r.game.Seats()),
		HandsPlayed: r.game.HandsCompleted(),
		Phase:       v.Phase.String(),
	}
}

// Subscribe returns a channel of views for viewerID, starting with the
// current one. A subscriber that falls behind misses views rather than
// blocking the table. Call the returned func to unsubscribe.
func (r *TableRunner) Subscribe(viewerID string) (<-chan game.View, func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub := &subscriber{viewer: viewerID, ch: make(chan game.View, subscriberBuffer)}
	if r.closed {
		close(sub.ch)
		return sub.ch, func() {}
	}
	id := r.nextSub
	r.nextSub++
	r.subs[id] = sub
	sub.ch <- r.game.ViewerState(viewerID)

	var once sync.Once
	return sub.ch, func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			if _, ok := r.subs[id]; ok {
				delete(r.subs, id)
				close(sub.ch)
			}
		})
	}
}

// Close stops the timers and ends every subscription.
func (r *TableRunner) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	r.stopTimersLocked()
	for id, sub := range r.subs {
		close(sub.ch)
		delete(r.subs, id)
	}
}

func (r *TableRunner) tryStartLocked() {
	if r.game.ActiveSeats() < 2 {
		return
	}
	if err := r.startLocked(); err != nil {
		r.logger.Warn("Could not start hand", "error", err)
	}
}

func (r *TableRunner) startLocked() error {
	if r.pause != nil {
		r.pause.Stop()
		r.pause = nil
	}
	if err := r.game.StartHand(); err != nil {
		return err
	}
	v := r.game.ViewerState("")
	r.logger.Debug("Hand started", "hand", v.Hand, "dealer", v.DealerID, "blinds", fmt.Sprintf("%d/%d", v.SmallBlind, v.BigBlind))
	r.advanceLocked()
	return nil
}

// advanceLocked plays bot turns until a human is to act or the hand ends,
// then arms the matching timer.
func (r *TableRunner) advanceLocked() {
	r.turn++
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}

	for steps := 0; ; steps++ {
		if r.game.HandOver() {
			r.handOverLocked()
			return
		}
		actor, ok := r.game.Actor()
		if !ok {
			return
		}
		if !r.game.IsBot(actor.ID) {
			r.armTurnTimerLocked(actor.ID)
			return
		}
		if steps >= r.cfg.MaxBotSteps {
			r.logger.Error("Bots did not finish the hand", "steps", steps)
			return
		}

		a := action.FoldAction()
		if d, err := r.game.DecideForSeat(actor.ID); err != nil {
			r.logger.Error("Bot decision failed", "seat", actor.ID, "error", err)
		} else {
			a = d.Action
		}
		s, err := r.game.Apply(actor.ID, a)
		if err != nil {
			r.logger.Error("Bot action rejected", "seat", actor.ID, "action", a, "error", err)
			if s, err = r.game.Apply(actor.ID, action.FoldAction()); err != nil {
				r.logger.Error("Bot fold rejected", "seat", actor.ID, "error", err)
				return
			}
		}
		r.logSummary(s)
	}
}

func (r *TableRunner) armTurnTimerLocked(seatID string) {
	turn := r.turn
	r.timer = r.clock.AfterFunc(r.cfg.ActionTimeout, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.closed || r.turn != turn {
			return
		}
		r.logger.Info("Turn timed out", "seat", seatID, "timeout", r.cfg.ActionTimeout)
		s, err := r.game.Apply(seatID, action.FoldAction())
		if err != nil {
			r.logger.Error("Timeout fold rejected", "seat", seatID, "error", err)
			return
		}
		r.logSummary(s)
		r.advanceLocked()
		r.broadcastLocked()
	}, "runner", "turn")
}

func (r *TableRunner) handOverLocked() {
	res := r.game.ViewerState("").Result
	if res == nil || res.Hand == r.settled {
		return
	}
	r.settled = res.Hand
	r.logger.Info("Hand complete", "hand", res.Hand, "winners", res.Winners(), "uncontested", res.Uncontested)
	if r.cfg.HandPause <= 0 || r.pause != nil || r.game.ActiveSeats() < 2 {
		return
	}

	completed := r.game.HandsCompleted()
	r.pause = r.clock.AfterFunc(r.cfg.HandPause, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.pause = nil
		if r.closed || !r.game.HandOver() || r.game.HandsCompleted() != completed {
			return
		}
		r.tryStartLocked()
		r.broadcastLocked()
	}, "runner", "pause")
}

func (r *TableRunner) stopTimersLocked() {
	r.turn++
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	if r.pause != nil {
		r.pause.Stop()
		r.pause = nil
	}
}

func (r *TableRunner) broadcastLocked() {
	for _, sub := range r.subs {
		select {
		case sub.ch <- r.game.ViewerState(sub.viewer):
		default:
			r.logger.Debug("Subscriber behind, dropping view", "viewer", sub.viewer)
		}
	}
}

func (r *TableRunner) logSummary(s game.Summary) {
	r.logger.Debug("Player action",
		"hand", s.Hand,
		"seat", s.SeatID,
		"action", s.Action,
		"amount", s.Amount,
		"pot", s.Pot,
		"next", s.Next)
}
