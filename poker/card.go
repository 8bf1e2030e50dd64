package poker

import (
	"errors"
	"fmt"
	"strings"
)

// Suit is one of the four French suits.
type Suit uint8

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

// Suits lists every suit in deck order.
var Suits = [...]Suit{Hearts, Diamonds, Clubs, Spades}

var suitNames = [...]string{"hearts", "diamonds", "clubs", "spades"}

func (s Suit) String() string {
	if int(s) < len(suitNames) {
		return suitNames[s]
	}
	return fmt.Sprintf("Suit(%d)", s)
}

// Char returns the single letter used in compact card notation.
func (s Suit) Char() byte {
	return "hdcs?"[min(int(s), 4)]
}

// Symbol returns the unicode pip for the suit.
func (s Suit) Symbol() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	}
	return "?"
}

// Rank is a card rank from Two (2) to Ace (14).
type Rank uint8

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// Ranks lists every rank from lowest to highest.
var Ranks = [...]Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

// Valid reports whether r is a real rank.
func (r Rank) Valid() bool { return r >= Two && r <= Ace }

// Char returns the single character used in compact card notation.
func (r Rank) Char() byte {
	if !r.Valid() {
		return '?'
	}
	return "23456789TJQKA"[r-Two]
}

func (r Rank) String() string {
	switch r {
	case Ten:
		return "10"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	}
	if r.Valid() {
		return string(r.Char())
	}
	return fmt.Sprintf("Rank(%d)", r)
}

// Name returns the long name of the rank, e.g. "Queen".
func (r Rank) Name() string {
	names := [...]string{"Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine", "Ten", "Jack", "Queen", "King", "Ace"}
	if !r.Valid() {
		return r.String()
	}
	return names[r-Two]
}

// Card is a single playing card. The zero value is not a valid card.
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard returns the card with the given rank and suit.
func NewCard(r Rank, s Suit) Card {
	return Card{Rank: r, Suit: s}
}

// Valid reports whether c is one of the 52 real cards.
func (c Card) Valid() bool {
	return c.Rank.Valid() && c.Suit <= Spades
}

// String returns compact notation such as "Ah" or "Td".
func (c Card) String() string {
	return string([]byte{c.Rank.Char(), c.Suit.Char()})
}

// Pretty returns the card with a unicode suit, e.g. "A♥".
func (c Card) Pretty() string {
	return c.Rank.String() + c.Suit.Symbol()
}

// Index returns a dense 0..51 index for the card.
func (c Card) Index() int {
	return int(c.Suit)*13 + int(c.Rank-Two)
}

// MarshalText encodes the card in compact notation.
func (c Card) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid card %d/%d", c.Rank, c.Suit)
	}
	return []byte(c.String()), nil
}

// UnmarshalText decodes compact notation.
func (c *Card) UnmarshalText(b []byte) error {
	parsed, err := ParseCard(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

var ErrInvalidCard = errors.New("invalid card")

// ParseCard parses a single card such as "Ah", "td" or "10s".
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || len(s) > 3 {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}
	rank, err := parseRank(s[:len(s)-1])
	if err != nil {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}
	suit, err := parseSuit(s[len(s)-1])
	if err != nil {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}
	return Card{Rank: rank, Suit: suit}, nil
}

func parseRank(s string) (Rank, error) {
	if s == "10" {
		return Ten, nil
	}
	if len(s) != 1 {
		return 0, fmt.Errorf("bad rank %q", s)
	}
	switch ch := s[0]; ch {
	case 'T', 't':
		return Ten, nil
	case 'J', 'j':
		return Jack, nil
	case 'Q', 'q':
		return Queen, nil
	case 'K', 'k':
		return King, nil
	case 'A', 'a':
		return Ace, nil
	default:
		if ch >= '2' && ch <= '9' {
			return Rank(ch-'0'), nil
		}
	}
	return 0, fmt.Errorf("bad rank %q", s)
}

func parseSuit(ch byte) (Suit, error) {
	switch ch {
	case 'h', 'H':
		return Hearts, nil
	case 'd', 'D':
		return Diamonds, nil
	case 'c', 'C':
		return Clubs, nil
	case 's', 'S':
		return Spades, nil
	}
	return 0, fmt.Errorf("bad suit %q", ch)
}

// ParseCards parses a run of cards. Cards may be concatenated ("AhKd")
// or separated by spaces or commas ("Ah Kd", "10h,9h").
func ParseCards(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	var cards []Card
	for _, f := range fields {
		for len(f) > 0 {
			n := 2
			if strings.HasPrefix(f, "10") {
				n = 3
			}
			if len(f) < n {
				return nil, fmt.Errorf("%w: %q", ErrInvalidCard, f)
			}
			c, err := ParseCard(f[:n])
			if err != nil {
				return nil, err
			}
			cards = append(cards, c)
			f = f[n:]
		}
	}
	return cards, nil
}

// MustParseCards is like ParseCards but panics on error. Intended for tests.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

// FormatCards renders cards in compact notation separated by spaces.
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
