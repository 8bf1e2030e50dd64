package game

import (
	"fmt"
	"slices"

	"github.com/lox/holdemtable/internal/evaluator"
	"github.com/lox/holdemtable/poker"
)

// UncontestedLabel is the hand description given to a seat that won
// because everyone else folded.
const UncontestedLabel = "won uncontested"

// Result is the settlement of a finished hand.
type Result struct {
	Hand        int          `json:"hand"`
	Uncontested bool         `json:"uncontested"`
	Board       []poker.Card `json:"board"`
	Awards      []Award      `json:"awards"`   // one per winning seat, seat order
	Pots        []PotResult  `json:"pots"`     // main pot first
	Showdown    []ShownHand  `json:"showdown"` // empty when uncontested
}

// Award is what one seat took from the hand.
type Award struct {
	SeatID string `json:"seat_id"`
	Name   string `json:"name"`
	Amount int    `json:"amount"`
	Hand   string `json:"hand"`
}

// PotResult is how one pot was split.
type PotResult struct {
	Amount   int      `json:"amount"`
	Eligible []string `json:"eligible"`
	Winners  []string `json:"winners"`
}

// ShownHand is a contender's cards at showdown.
type ShownHand struct {
	SeatID    string       `json:"seat_id"`
	Name      string       `json:"name"`
	HoleCards []poker.Card `json:"hole_cards"`
	Hand      string       `json:"hand"`
	BestFive  []poker.Card `json:"best_five"`
	Won       int          `json:"won"`
}

// AwardTo returns the chips a seat won, zero if none.
func (r *Result) AwardTo(seatID string) int {
	for _, a := range r.Awards {
		if a.SeatID == seatID {
			return a.Amount
		}
	}
	return 0
}

// Winners lists the seats that won chips.
func (r *Result) Winners() []string {
	out := make([]string, len(r.Awards))
	for i, a := range r.Awards {
		out[i] = a.SeatID
	}
	return out
}

func (t *Table) finishUncontested() {
	h := t.hand
	idx := slices.IndexFunc(t.players, (*Player).contesting)
	if idx < 0 {
		t.violation("hand ended with no contenders")
	}
	winner := t.players[idx]
	pots := t.computePots()

	res := &Result{Hand: h.number, Uncontested: true, Board: slices.Clone(h.board)}
	total := 0
	for _, pot := range pots {
		total += pot.Amount
		res.Pots = append(res.Pots, PotResult{Amount: pot.Amount, Eligible: pot.Eligible, Winners: []string{winner.ID}})
	}
	winner.Chips += total
	res.Awards = []Award{{SeatID: winner.ID, Name: winner.Name, Amount: total, Hand: UncontestedLabel}}

	h.pots = pots
	h.phase = Uncontested
	t.finish(res)
}

func (t *Table) showdown() {
	h := t.hand
	h.phase = Showdown
	pots := t.computePots()

	var contenders []evaluator.Contender
	for _, p := range t.players {
		if p.contesting() {
			contenders = append(contenders, evaluator.Contender{ID: p.ID, HoleCards: p.HoleCards})
		}
	}
	all, err := evaluator.DetermineWinners(contenders, h.board)
	if err != nil {
		t.violation(fmt.Sprintf("evaluating showdown: %v", err))
	}

	won := map[string]int{}
	res := &Result{Hand: h.number, Board: slices.Clone(h.board)}
	for _, pot := range pots {
		var eligible []evaluator.Contender
		for _, c := range contenders {
			if slices.Contains(pot.Eligible, c.ID) {
				eligible = append(eligible, c)
			}
		}
		if len(eligible) == 0 {
			t.violation(fmt.Sprintf("pot of %d has no live contender", pot.Amount))
		}
		sd, err := evaluator.DetermineWinners(eligible, h.board)
		if err != nil {
			t.violation(fmt.Sprintf("evaluating pot: %v", err))
		}
		winners := t.inButtonOrder(sd.Winners)
		share, odd := pot.Amount/len(winners), pot.Amount%len(winners)
		for i, id := range winners {
			amt := share
			if i < odd {
				amt++
			}
			won[id] += amt
		}
		res.Pots = append(res.Pots, PotResult{Amount: pot.Amount, Eligible: pot.Eligible, Winners: winners})
	}

	for _, p := range t.players {
		if !p.contesting() {
			continue
		}
		best, _ := all.HandFor(p.ID)
		p.Chips += won[p.ID]
		res.Showdown = append(res.Showdown, ShownHand{
			SeatID:    p.ID,
			Name:      p.Name,
			HoleCards: p.HoleCards,
			Hand:      best.Name(),
			BestFive:  best.Cards,
			Won:       won[p.ID],
		})
		if won[p.ID] > 0 {
			res.Awards = append(res.Awards, Award{SeatID: p.ID, Name: p.Name, Amount: won[p.ID], Hand: best.Name()})
		}
	}

	h.pots = pots
	t.finish(res)
}

// inButtonOrder sorts seat IDs by position, starting left of the button.
func (t *Table) inButtonOrder(ids []string) []string {
	n := len(t.players)
	pos := func(id string) int {
		return ((t.indexOf(id)-t.dealer-1)%n + n) % n
	}
	out := slices.Clone(ids)
	slices.SortStableFunc(out, func(a, b string) int { return pos(a) - pos(b) })
	return out
}

func (t *Table) finish(res *Result) {
	h := t.hand
	h.actionOn = -1
	h.result = res
	for _, p := range t.players {
		p.Bet = 0
	}
	t.handsCompleted++
	t.logger.Debug("Hand finished",
		"hand", h.number,
		"phase", h.phase,
		"board", poker.FormatCards(h.board),
		"winners", res.Winners(),
		"pot", TotalPots(h.pots))
	t.checkInvariants()
}
