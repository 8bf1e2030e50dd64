package evaluator

import (
	"fmt"

	"github.com/lox/holdemtable/poker"
)

// Label describes what a player currently holds. Before the flop it names
// the starting hand ("Pocket Qs", "A-K Suited", "J-9 Off-suit"); once the
// board has three or more cards it is the category of the best hand.
func Label(hole, board []poker.Card) string {
	if len(hole) != 2 {
		return ""
	}
	if len(board) < 3 {
		return startingHandLabel(hole[0], hole[1])
	}
	h, err := Evaluate(append(append([]poker.Card{}, hole...), board...))
	if err != nil {
		return ""
	}
	return h.Name()
}

func startingHandLabel(a, b poker.Card) string {
	if a.Rank < b.Rank {
		a, b = b, a
	}
	switch {
	case a.Rank == b.Rank:
		return fmt.Sprintf("Pocket %ss", a.Rank)
	case a.Suit == b.Suit:
		return fmt.Sprintf("%s-%s Suited", a.Rank, b.Rank)
	default:
		return fmt.Sprintf("%s-%s Off-suit", a.Rank, b.Rank)
	}
}
