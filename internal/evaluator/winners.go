package evaluator

import (
	"fmt"
	"slices"

	"github.com/lox/holdemtable/poker"
)

// Contender is a player still holding cards at showdown.
type Contender struct {
	ID        string
	HoleCards []poker.Card
}

// Ranked is a contender's evaluated hand.
type Ranked struct {
	ID   string
	Hand Hand
}

// Showdown is the outcome of comparing several contenders on one board.
type Showdown struct {
	// Ranked holds every contender, strongest first. Equal hands keep
	// their input order.
	Ranked []Ranked
	// Winners holds the IDs sharing the best hand, in input order.
	Winners []string
}

// DetermineWinners evaluates each contender's hole cards with the board
// and returns the contenders holding the best hand.
func DetermineWinners(contenders []Contender, board []poker.Card) (Showdown, error) {
	if len(contenders) == 0 {
		return Showdown{}, fmt.Errorf("%w: no contenders", ErrInvalidHand)
	}
	ranked := make([]Ranked, 0, len(contenders))
	for _, c := range contenders {
		cards := make([]poker.Card, 0, len(c.HoleCards)+len(board))
		cards = append(cards, c.HoleCards...)
		cards = append(cards, board...)
		h, err := Evaluate(cards)
		if err != nil {
			return Showdown{}, fmt.Errorf("contender %s: %w", c.ID, err)
		}
		ranked = append(ranked, Ranked{ID: c.ID, Hand: h})
	}

	sorted := slices.Clone(ranked)
	slices.SortStableFunc(sorted, func(a, b Ranked) int { return b.Hand.Compare(a.Hand) })

	var winners []string
	for _, r := range ranked {
		if r.Hand.Compare(sorted[0].Hand) == 0 {
			winners = append(winners, r.ID)
		}
	}
	return Showdown{Ranked: sorted, Winners: winners}, nil
}

// HandFor returns the evaluated hand for id.
func (s Showdown) HandFor(id string) (Hand, bool) {
	for _, r := range s.Ranked {
		if r.ID == id {
			return r.Hand, true
		}
	}
	return Hand{}, false
}
