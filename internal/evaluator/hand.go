package evaluator

import (
	"fmt"
	"strings"

	"github.com/lox/holdemtable/poker"
)

// HandRank is the category of a five-card poker hand. Higher is stronger.
type HandRank int

const (
	HighCard HandRank = iota + 1
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns the display name of a hand rank
func (hr HandRank) String() string {
	switch hr {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

func (hr HandRank) MarshalText() ([]byte, error) {
	return []byte(hr.String()), nil
}

// Hand is the evaluation of the best five cards available to a player.
//
// Score is the ordered comparison vector: the category first, then the
// ranks that decide ties within the category in order of significance.
// Two hands compare lexicographically on Score.
type Hand struct {
	Rank  HandRank
	Score []int
	Cards []poker.Card // best five, most significant first
}

// Name is the category name shown to players.
func (h Hand) Name() string { return h.Rank.String() }

func (h Hand) String() string {
	var cardStrs []string
	for _, card := range h.Cards {
		cardStrs = append(cardStrs, card.String())
	}
	return fmt.Sprintf("%s [%s]", h.Rank, strings.Join(cardStrs, " "))
}

// Compare returns 1 if h beats other, -1 if it loses and 0 on a tie.
func (h Hand) Compare(other Hand) int {
	return CompareScores(h.Score, other.Score)
}

// CompareScores compares two score vectors lexicographically. A vector
// that is a strict prefix of the other is the weaker one.
func CompareScores(a, b []int) int {
	for i := range min(len(a), len(b)) {
		switch {
		case a[i] > b[i]:
			return 1
		case a[i] < b[i]:
			return -1
		}
	}
	switch {
	case len(a) > len(b):
		return 1
	case len(a) < len(b):
		return -1
	}
	return 0
}
