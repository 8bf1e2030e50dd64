package game

import (
	"github.com/lox/holdemtable/internal/bot"
	"github.com/lox/holdemtable/poker"
)

// Seat identifies who is sitting at the table. Bots carry the style the
// decision engine should play with.
type Seat struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Bot         bool            `json:"bot"`
	Difficulty  bot.Difficulty  `json:"difficulty,omitempty"`
	Personality bot.Personality `json:"personality,omitempty"`
}

// Player is a seat plus its chips and its state in the current hand.
type Player struct {
	Seat
	Chips     int
	HoleCards []poker.Card
	Bet       int // on the current street
	TotalBet  int // over the whole hand
	Folded    bool
	AllIn     bool
	InHand    bool // dealt into the current hand
	Revealed  bool
}

func (p *Player) canAct() bool { return p.InHand && !p.Folded && !p.AllIn }

func (p *Player) contesting() bool { return p.InHand && !p.Folded }

func (p *Player) resetForHand() {
	p.HoleCards = nil
	p.Bet = 0
	p.TotalBet = 0
	p.Folded = false
	p.AllIn = false
	p.Revealed = false
	p.InHand = p.Chips > 0
}

// commit moves up to n chips from the stack into the street bet and
// returns how many moved.
func (p *Player) commit(n int) int {
	n = min(max(n, 0), p.Chips)
	p.Chips -= n
	p.Bet += n
	p.TotalBet += n
	if p.Chips == 0 && p.InHand {
		p.AllIn = true
	}
	return n
}
