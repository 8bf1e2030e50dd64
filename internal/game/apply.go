package game

import (
	"fmt"

	"github.com/lox/holdemtable/internal/action"
)

// Summary records one accepted action, or a blind or departure.
type Summary struct {
	Hand     int    `json:"hand"`
	SeatID   string `json:"seat_id"`
	Name     string `json:"name"`
	Action   string `json:"action"` // what actually happened, e.g. a short raise reads "call"
	Amount   int    `json:"amount"` // chips moved from the stack
	BetTo    int    `json:"bet_to"` // seat's street bet afterwards
	AllIn    bool   `json:"all_in,omitempty"`
	Phase    Phase  `json:"phase"` // street the action was taken on
	Pot      int    `json:"pot"`   // chips committed to the hand afterwards
	Next     Phase  `json:"next"`  // phase after any street changes it caused
	HandOver bool   `json:"hand_over,omitempty"`
}

// ValidActions returns the legal moves for the seat to act.
func (t *Table) ValidActions(seatID string) (ValidActions, error) {
	p, err := t.checkTurn(seatID)
	if err != nil {
		return ValidActions{}, err
	}
	return t.validActions(p), nil
}

func (t *Table) checkTurn(seatID string) (*Player, error) {
	h := t.hand
	if h == nil || !h.phase.Betting() {
		return nil, ErrNoBettingRound
	}
	idx := t.indexOf(seatID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %w", ErrCannotAct, ErrUnknownSeat)
	}
	p := t.players[idx]
	if !p.canAct() {
		return nil, ErrCannotAct
	}
	if idx != h.actionOn {
		return nil, ErrNotYourTurn
	}
	return p, nil
}

// Apply performs an action for the seat to act.
//
// Raises name the total street bet wanted. A raise below the minimum is
// lifted to the minimum and one above the stack is cut to all-in; if that
// leaves it no bigger than the current bet it is taken as a call. Any
// increase of the current bet reopens the action to everyone else, while
// only a full raise changes the minimum raise.
func (t *Table) Apply(seatID string, a action.Action) (Summary, error) {
	p, err := t.checkTurn(seatID)
	if err != nil {
		t.logger.Debug("Action rejected", "seat", seatID, "action", a, "error", err)
		return Summary{}, &ActionError{SeatID: seatID, Action: a, Err: err}
	}
	h := t.hand
	idx := h.actionOn
	r := &h.round
	toCall := max(r.currentBet-p.Bet, 0)

	s := Summary{Hand: h.number, SeatID: p.ID, Name: p.Name, Phase: h.phase}
	switch a.Kind {
	case action.Fold:
		p.Folded = true
		s.Action = "fold"
	case action.Check:
		if toCall > 0 {
			return Summary{}, &ActionError{SeatID: seatID, Action: a, Err: ErrIllegalCheck}
		}
		s.Action = "check"
	case action.Call:
		s.Amount = p.commit(toCall)
		s.Action = "call"
		if s.Amount == 0 {
			s.Action = "check"
		}
	case action.Raise:
		target := max(a.Amount, r.currentBet+r.minRaise)
		target = min(target, p.Bet+p.Chips)
		if target <= r.currentBet {
			s.Amount = p.commit(toCall)
			s.Action = "call"
			break
		}
		if inc := target - r.currentBet; inc >= r.minRaise {
			r.minRaise = inc
		}
		s.Amount = p.commit(target - p.Bet)
		r.currentBet = target
		r.lastAggressor = idx
		clear(r.acted)
		s.Action = "raise"
	default:
		return Summary{}, &ActionError{SeatID: seatID, Action: a, Err: ErrUnknownAction}
	}

	r.acted[p.ID] = true
	if idx == h.bb && h.phase == Preflop {
		r.bbOption = false
	}
	s.BetTo = p.Bet
	s.AllIn = p.AllIn

	t.logger.Debug("Action", "hand", h.number, "seat", p.ID, "action", s.Action, "amount", s.Amount, "bet", p.Bet, "street", h.phase)

	t.settle(idx)
	t.checkInvariants()

	s.Pot = t.committed()
	s.Next = h.phase
	s.HandOver = h.phase.Over()
	h.log = append(h.log, s)
	return s, nil
}

// Log returns the current hand's actions so far.
func (t *Table) Log() []Summary {
	if t.hand == nil {
		return nil
	}
	out := make([]Summary, len(t.hand.log))
	copy(out, t.hand.log)
	return out
}
