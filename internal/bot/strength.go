package bot

import (
	"github.com/lox/holdemtable/internal/evaluator"
	"github.com/lox/holdemtable/poker"
)

// HandStrength estimates how good a holding is on a 0..1 scale. Before the
// flop it scores the two hole cards; afterwards it is the category of the
// best made hand divided by the strongest category.
func HandStrength(hole, board []poker.Card) float64 {
	if len(board) < 3 {
		return PreflopStrength(hole)
	}
	h, err := evaluator.Evaluate(append(append([]poker.Card{}, hole...), board...))
	if err != nil {
		return PreflopStrength(hole)
	}
	return float64(h.Rank) / float64(evaluator.RoyalFlush)
}

// PreflopStrength scores a starting hand from high card, pairing, suitedness
// and connectedness. Premium pairs and big aces get a floor.
func PreflopStrength(hole []poker.Card) float64 {
	if len(hole) < 2 {
		return 0.3
	}
	hi, lo := hole[0].Rank, hole[1].Rank
	if lo > hi {
		hi, lo = lo, hi
	}
	pair := hi == lo

	s := float64(hi) / 14 * 0.4
	if pair {
		s += 0.3 + float64(hi)/14*0.2
	}
	if hole[0].Suit == hole[1].Suit {
		s += 0.05
	}
	if !pair && hi-lo <= 2 {
		s += 0.05
	}
	if pair && hi >= poker.Queen {
		s = max(s, 0.8)
	}
	if hi == poker.Ace && lo >= poker.Queen {
		s = max(s, 0.7)
	}
	return min(s, 1)
}
