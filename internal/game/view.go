package game

import (
	"slices"

	"github.com/lox/holdemtable/internal/evaluator"
	"github.com/lox/holdemtable/poker"
)

// View is the table as one seat (or a spectator) is allowed to see it.
type View struct {
	Hand       int           `json:"hand"`
	Phase      Phase         `json:"phase"`
	Board      []poker.Card  `json:"board"`
	SmallBlind int           `json:"small_blind"`
	BigBlind   int           `json:"big_blind"`
	Pot        int           `json:"pot"`
	Pots       []Pot         `json:"pots"`
	CurrentBet int           `json:"current_bet"`
	MinRaise   int           `json:"min_raise"`
	DealerID   string        `json:"dealer_id,omitempty"`
	ActorID    string        `json:"actor_id,omitempty"`
	Seats      []SeatView    `json:"seats"`
	Viewer     string        `json:"viewer,omitempty"`
	HandLabel  string        `json:"hand_label,omitempty"` // what the viewer holds
	Actions    *ValidActions `json:"actions,omitempty"`    // set when the viewer is to act
	Log        []Summary     `json:"log,omitempty"`
	Result     *Result       `json:"result,omitempty"`
}

// SeatView is one seat as seen by the viewer. Cards is empty unless the
// cards are visible to the viewer.
type SeatView struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Bot       bool         `json:"bot"`
	Chips     int          `json:"chips"`
	Bet       int          `json:"bet"`
	TotalBet  int          `json:"total_bet"`
	InHand    bool         `json:"in_hand"`
	Folded    bool         `json:"folded"`
	AllIn     bool         `json:"all_in"`
	Dealer    bool         `json:"dealer"`
	Acting    bool         `json:"acting"`
	CardCount int          `json:"card_count"`
	Cards     []poker.Card `json:"cards,omitempty"`
}

// ViewerState renders the table for viewerID. Other seats' hole cards are
// hidden unless they were shown down or voluntarily revealed. An empty or
// unknown viewer gets the spectator view.
func (t *Table) ViewerState(viewerID string) View {
	v := View{
		Phase:      t.Phase(),
		SmallBlind: t.smallBlind,
		BigBlind:   t.bigBlind,
		Viewer:     viewerID,
	}
	h := t.hand
	if h != nil {
		v.Hand = h.number
		v.Board = slices.Clone(h.board)
		v.Pot = t.committed()
		if h.phase.Over() {
			v.Pots = h.pots
			v.Result = h.result
		} else {
			v.Pots = ComputePots(t.contributions())
			v.CurrentBet = h.round.currentBet
			v.MinRaise = h.round.minRaise
		}
		v.Log = t.Log()
	}
	if t.dealer >= 0 && t.dealer < len(t.players) {
		v.DealerID = t.players[t.dealer].ID
	}
	if actor, ok := t.Actor(); ok {
		v.ActorID = actor.ID
	}

	for i, p := range t.players {
		sv := SeatView{
			ID:        p.ID,
			Name:      p.Name,
			Bot:       p.Bot,
			Chips:     p.Chips,
			Bet:       p.Bet,
			TotalBet:  p.TotalBet,
			InHand:    p.InHand,
			Folded:    p.Folded,
			AllIn:     p.AllIn,
			Dealer:    i == t.dealer,
			Acting:    p.ID == v.ActorID,
			CardCount: len(p.HoleCards),
		}
		shown := p.ID == viewerID || p.Revealed || (v.Phase == Showdown && p.contesting())
		if shown && len(p.HoleCards) > 0 {
			sv.Cards = slices.Clone(p.HoleCards)
		}
		v.Seats = append(v.Seats, sv)

		if p.ID == viewerID && h != nil && len(p.HoleCards) == 2 {
			v.HandLabel = evaluator.Label(p.HoleCards, h.board)
		}
	}

	if viewerID != "" && viewerID == v.ActorID {
		va := t.validActions(t.player(viewerID))
		v.Actions = &va
	}
	return v
}
