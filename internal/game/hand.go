package game

import (
	"fmt"

	"github.com/lox/holdemtable/poker"
)

type hand struct {
	number     int
	phase      Phase
	board      []poker.Card
	deck       *poker.Deck
	smallBlind int
	bigBlind   int
	sb, bb     int // rotation indexes of the blinds, -1 once gone
	actionOn   int // rotation index of the seat to act, -1 when nobody is
	round      bettingRound
	departed   []*Player // left mid-hand with chips committed
	pots       []Pot     // as of the last street boundary
	log        []Summary
	result     *Result
}

// StartHand moves the button, posts blinds and deals hole cards.
func (t *Table) StartHand() error {
	if !t.HandOver() {
		return ErrHandInProgress
	}
	if t.ActiveSeats() < 2 {
		return ErrNotEnoughPlayers
	}

	level := t.cfg.schedule.Level(t.handsCompleted)
	sb, bb := t.cfg.schedule.Blinds(t.cfg.smallBlind, t.cfg.bigBlind, level)
	if sb != t.smallBlind || bb != t.bigBlind {
		t.logger.Info("Blinds up", "level", level, "small_blind", sb, "big_blind", bb)
		t.smallBlind, t.bigBlind = sb, bb
	}

	for _, p := range t.players {
		p.resetForHand()
	}
	inHand := func(p *Player) bool { return p.InHand }

	number := 1
	if t.hand != nil {
		number = t.hand.number + 1
	}
	h := &hand{
		number:     number,
		phase:      Preflop,
		deck:       t.cfg.deckFactory(t.rng),
		smallBlind: t.smallBlind,
		bigBlind:   t.bigBlind,
		round:      newBettingRound(t.bigBlind),
	}
	t.hand = h

	t.dealer = t.nextIndex(t.dealer, inHand)
	if t.ActiveSeats() == 2 {
		// heads-up: the button posts the small blind and acts first preflop
		h.sb = t.dealer
	} else {
		h.sb = t.nextIndex(t.dealer, inHand)
	}
	h.bb = t.nextIndex(h.sb, inHand)

	i := t.dealer
	for range t.ActiveSeats() {
		i = t.nextIndex(i, inHand)
		cards, err := h.deck.Deal(2)
		if err != nil {
			t.violation(fmt.Sprintf("dealing hole cards: %v", err))
		}
		t.players[i].HoleCards = cards
	}

	sbp, bbp := t.players[h.sb], t.players[h.bb]
	sbPosted := sbp.commit(h.smallBlind)
	bbPosted := bbp.commit(h.bigBlind)
	h.round.currentBet = h.bigBlind
	h.round.lastAggressor = h.bb
	h.round.bbOption = bbp.canAct()
	h.log = append(h.log,
		Summary{Hand: h.number, SeatID: sbp.ID, Name: sbp.Name, Action: "small blind", Amount: sbPosted, BetTo: sbp.Bet, AllIn: sbp.AllIn, Phase: Preflop},
		Summary{Hand: h.number, SeatID: bbp.ID, Name: bbp.Name, Action: "big blind", Amount: bbPosted, BetTo: bbp.Bet, AllIn: bbp.AllIn, Phase: Preflop},
	)

	t.logger.Debug("Hand started",
		"hand", h.number,
		"dealer", t.players[t.dealer].ID,
		"small_blind", sbp.ID,
		"big_blind", bbp.ID,
		"players", t.ActiveSeats())

	t.settle(h.bb)
	t.checkInvariants()
	return nil
}

// settle moves the hand on after the seat at from acted (or posted).
func (t *Table) settle(from int) {
	h := t.hand
	switch {
	case t.contenders() <= 1:
		t.finishUncontested()
	case t.streetComplete():
		t.closeStreet()
	default:
		h.actionOn = t.nextIndex(from, (*Player).canAct)
		if h.actionOn < 0 {
			t.violation("betting open but no seat can act")
		}
	}
}

// closeStreet gathers the street's bets and deals the next street. When
// fewer than two seats can still bet, remaining streets are dealt without
// betting and the hand goes to showdown.
func (t *Table) closeStreet() {
	h := t.hand
	for {
		h.pots = t.computePots()
		for _, p := range t.players {
			p.Bet = 0
		}
		if h.phase == River {
			t.showdown()
			return
		}

		h.phase++
		cards, err := h.deck.Deal(h.phase.boardSize() - len(h.board))
		if err != nil {
			t.violation(fmt.Sprintf("dealing %s: %v", h.phase, err))
		}
		h.board = append(h.board, cards...)
		h.round = newBettingRound(h.bigBlind)
		h.actionOn = -1
		t.logger.Debug("Street dealt", "hand", h.number, "street", h.phase, "board", poker.FormatCards(h.board), "pot", TotalPots(h.pots))

		if t.countCanAct() >= 2 {
			h.actionOn = t.nextIndex(t.dealer, (*Player).canAct)
			return
		}
	}
}

// committed is every chip put into the current hand, including by seats
// that have since left.
func (t *Table) committed() int {
	total := 0
	for _, p := range t.players {
		total += p.TotalBet
	}
	if t.hand != nil {
		for _, p := range t.hand.departed {
			total += p.TotalBet
		}
	}
	return total
}

func (t *Table) contributions() []Contribution {
	var out []Contribution
	add := func(p *Player) {
		if p.TotalBet > 0 {
			out = append(out, Contribution{SeatID: p.ID, Amount: p.TotalBet, Folded: p.Folded || !p.InHand, AllIn: p.AllIn})
		}
	}
	// seat order starting left of the button so pot eligibility lists
	// read in acting order
	n := len(t.players)
	for i := 1; i <= n; i++ {
		add(t.players[((t.dealer+i)%n+n)%n])
	}
	if t.hand != nil {
		for _, p := range t.hand.departed {
			add(p)
		}
	}
	return out
}

// computePots rebuilds the pots and checks they hold every committed chip.
func (t *Table) computePots() []Pot {
	pots := ComputePots(t.contributions())
	if got, want := TotalPots(pots), t.committed(); got != want {
		t.violation(fmt.Sprintf("pots hold %d chips, players committed %d", got, want))
	}
	return pots
}
