package evaluator

import (
	"errors"
	"fmt"
	"slices"

	"github.com/lox/holdemtable/poker"
)

var ErrInvalidHand = errors.New("invalid hand")

// Evaluate returns the best five-card hand that can be made from 5 to 7
// cards. Every five-card subset is scored and the strongest kept.
func Evaluate(cards []poker.Card) (Hand, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return Hand{}, fmt.Errorf("%w: need 5 to 7 cards, got %d", ErrInvalidHand, len(cards))
	}
	seen := make(map[poker.Card]bool, len(cards))
	for _, c := range cards {
		if !c.Valid() {
			return Hand{}, fmt.Errorf("%w: bad card %v", ErrInvalidHand, c)
		}
		if seen[c] {
			return Hand{}, fmt.Errorf("%w: duplicate card %s", ErrInvalidHand, c)
		}
		seen[c] = true
	}

	var best Hand
	n := len(cards)
	var five [5]poker.Card
	for a := 0; a < n-4; a++ {
		for b := a + 1; b < n-3; b++ {
			for c := b + 1; c < n-2; c++ {
				for d := c + 1; d < n-1; d++ {
					for e := d + 1; e < n; e++ {
						five = [5]poker.Card{cards[a], cards[b], cards[c], cards[d], cards[e]}
						h := evaluate5(five)
						if best.Score == nil || h.Compare(best) > 0 {
							best = h
						}
					}
				}
			}
		}
	}
	return best, nil
}

// MustEvaluate is like Evaluate but panics on invalid input.
func MustEvaluate(cards []poker.Card) Hand {
	h, err := Evaluate(cards)
	if err != nil {
		panic(err)
	}
	return h
}

type rankGroup struct {
	rank  poker.Rank
	count int
}

func evaluate5(five [5]poker.Card) Hand {
	cards := five[:]
	slices.SortFunc(cards, func(x, y poker.Card) int { return int(y.Rank) - int(x.Rank) })

	flush := true
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			flush = false
			break
		}
	}

	var groups []rankGroup
	for _, c := range cards {
		if len(groups) > 0 && groups[len(groups)-1].rank == c.Rank {
			groups[len(groups)-1].count++
			continue
		}
		groups = append(groups, rankGroup{rank: c.Rank, count: 1})
	}
	// larger groups first, higher rank breaks ties
	slices.SortStableFunc(groups, func(x, y rankGroup) int {
		if x.count != y.count {
			return y.count - x.count
		}
		return int(y.rank) - int(x.rank)
	})

	straight, high := false, 0
	if len(groups) == 5 {
		switch {
		case cards[0].Rank-cards[4].Rank == 4:
			straight, high = true, int(cards[0].Rank)
		case cards[0].Rank == poker.Ace && cards[1].Rank == poker.Five:
			// wheel: the ace plays low
			straight, high = true, int(poker.Five)
			cards = append(cards[1:], cards[0])
		}
	}

	ordered := orderByGroups(cards, groups)
	groupRanks := func() []int {
		out := make([]int, len(groups))
		for i, g := range groups {
			out[i] = int(g.rank)
		}
		return out
	}

	switch {
	case straight && flush && high == int(poker.Ace):
		return Hand{Rank: RoyalFlush, Score: []int{int(RoyalFlush), high}, Cards: cards}
	case straight && flush:
		return Hand{Rank: StraightFlush, Score: []int{int(StraightFlush), high}, Cards: cards}
	case groups[0].count == 4:
		return Hand{Rank: FourOfAKind, Score: append([]int{int(FourOfAKind)}, groupRanks()...), Cards: ordered}
	case groups[0].count == 3 && groups[1].count == 2:
		return Hand{Rank: FullHouse, Score: append([]int{int(FullHouse)}, groupRanks()...), Cards: ordered}
	case flush:
		return Hand{Rank: Flush, Score: append([]int{int(Flush)}, groupRanks()...), Cards: ordered}
	case straight:
		return Hand{Rank: Straight, Score: []int{int(Straight), high}, Cards: cards}
	case groups[0].count == 3:
		return Hand{Rank: ThreeOfAKind, Score: append([]int{int(ThreeOfAKind)}, groupRanks()...), Cards: ordered}
	case groups[0].count == 2 && groups[1].count == 2:
		return Hand{Rank: TwoPair, Score: append([]int{int(TwoPair)}, groupRanks()...), Cards: ordered}
	case groups[0].count == 2:
		return Hand{Rank: OnePair, Score: append([]int{int(OnePair)}, groupRanks()...), Cards: ordered}
	default:
		return Hand{Rank: HighCard, Score: append([]int{int(HighCard)}, groupRanks()...), Cards: ordered}
	}
}

func orderByGroups(cards []poker.Card, groups []rankGroup) []poker.Card {
	out := make([]poker.Card, 0, len(cards))
	for _, g := range groups {
		for _, c := range cards {
			if c.Rank == g.rank {
				out = append(out, c)
			}
		}
	}
	return out
}
