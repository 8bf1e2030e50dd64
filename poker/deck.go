package poker

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
)

var ErrDeckExhausted = errors.New("deck exhausted")

// Deck is an ordered 52-card deck dealt from the top.
type Deck struct {
	cards [52]Card
	next  int
}

// NewDeck returns a freshly shuffled deck. The rng is required so that
// every shuffle in the process is reproducible from a seed.
func NewDeck(rng *rand.Rand) *Deck {
	if rng == nil {
		panic("poker: NewDeck requires an rng")
	}
	d := &Deck{}
	i := 0
	for _, suit := range Suits {
		for _, rank := range Ranks {
			d.cards[i] = Card{Rank: rank, Suit: suit}
			i++
		}
	}
	d.shuffle(rng)
	return d
}

// NewDeckFromCards returns a deck whose top cards are exactly top, in order.
// The rest of the 52 cards follow in suit/rank order. It panics on invalid
// or duplicate cards.
func NewDeckFromCards(top []Card) *Deck {
	if len(top) > 52 {
		panic("poker: more than 52 cards")
	}
	d := &Deck{}
	var seen [52]bool
	for i, c := range top {
		if !c.Valid() {
			panic(fmt.Sprintf("poker: invalid card %v", c))
		}
		if seen[c.Index()] {
			panic(fmt.Sprintf("poker: duplicate card %s", c))
		}
		seen[c.Index()] = true
		d.cards[i] = c
	}
	i := len(top)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			c := Card{Rank: rank, Suit: suit}
			if !seen[c.Index()] {
				d.cards[i] = c
				i++
			}
		}
	}
	return d
}

// Fisher-Yates
func (d *Deck) shuffle(rng *rand.Rand) {
	d.next = 0
	for i := len(d.cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes n cards from the top of the deck. Asking for more cards
// than remain returns ErrDeckExhausted and leaves the deck untouched.
func (d *Deck) Deal(n int) ([]Card, error) {
	if n < 0 || d.next+n > len(d.cards) {
		return nil, fmt.Errorf("%w: want %d, have %d", ErrDeckExhausted, n, d.Remaining())
	}
	out := make([]Card, n)
	copy(out, d.cards[d.next:d.next+n])
	d.next += n
	return out, nil
}

// Remaining returns the number of undealt cards.
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}
