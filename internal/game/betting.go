package game

// bettingRound encapsulates the state for one street of betting.
type bettingRound struct {
	currentBet    int
	minRaise      int // size of the last full raise
	lastAggressor int // rotation index, -1 when nobody has bet
	bbOption      bool
	acted         map[string]bool
}

func newBettingRound(bigBlind int) bettingRound {
	return bettingRound{
		minRaise:      bigBlind,
		lastAggressor: -1,
		acted:         make(map[string]bool),
	}
}

// ValidActions is what the seat to act may do right now.
type ValidActions struct {
	SeatID     string `json:"seat_id"`
	CanFold    bool   `json:"can_fold"`
	CanCheck   bool   `json:"can_check"`
	CanCall    bool   `json:"can_call"`
	CanRaise   bool   `json:"can_raise"`
	ToCall     int    `json:"to_call"`      // chips a call would move
	MinRaiseTo int    `json:"min_raise_to"` // smallest total bet a raise becomes
	MaxRaiseTo int    `json:"max_raise_to"` // all-in total
}

func (t *Table) validActions(p *Player) ValidActions {
	r := t.hand.round
	toCall := max(r.currentBet-p.Bet, 0)
	va := ValidActions{
		SeatID:   p.ID,
		CanFold:  true,
		CanCheck: toCall == 0,
		CanCall:  toCall > 0,
		ToCall:   min(toCall, p.Chips),
	}
	if p.Chips > toCall {
		va.CanRaise = true
		va.MaxRaiseTo = p.Bet + p.Chips
		va.MinRaiseTo = min(r.currentBet+r.minRaise, va.MaxRaiseTo)
	}
	return va
}

// streetComplete reports whether no seat still owes an action this street.
func (t *Table) streetComplete() bool {
	h := t.hand
	var able []*Player
	for _, p := range t.players {
		if p.canAct() {
			able = append(able, p)
		}
	}
	if len(able) == 0 {
		return true
	}
	if len(able) == 1 && able[0].Bet >= h.round.currentBet {
		// nobody left to bet against
		return true
	}
	if h.round.bbOption && h.bb >= 0 && t.players[h.bb].canAct() {
		return false
	}
	for _, p := range able {
		if !h.round.acted[p.ID] || p.Bet != h.round.currentBet {
			return false
		}
	}
	return true
}
