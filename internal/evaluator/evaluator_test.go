package evaluator

import (
	"testing"

	"github.com/lox/holdemtable/poker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateCategories(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		cards string
		rank  HandRank
		score []int
	}{
		{"royal flush", "AhKhQhJhTh2c3d", RoyalFlush, []int{10, 14}},
		{"straight flush", "9s8s7s6s5sAhAd", StraightFlush, []int{9, 9}},
		{"steel wheel", "5d4d3d2dAdKcKh", StraightFlush, []int{9, 5}},
		{"quads", "7h7d7c7sKd2c3h", FourOfAKind, []int{8, 7, 13}},
		{"full house picks best trips", "QhQdQc9s9d9hAc", FullHouse, []int{7, 12, 9}},
		{"flush", "Ah9h7h4h2hKdKs", Flush, []int{6, 14, 9, 7, 4, 2}},
		{"straight", "Tc9d8h7s6c2d2h", Straight, []int{5, 10}},
		{"wheel", "Ac2d3h4s5c9dKh", Straight, []int{5, 5}},
		{"trips", "8h8d8cAsKd3c2h", ThreeOfAKind, []int{4, 8, 14, 13}},
		{"two pair uses best kicker", "KhKdJcJs4d4hAc", TwoPair, []int{3, 13, 11, 14}},
		{"one pair", "ThTd9c7s4d3h2c", OnePair, []int{2, 10, 9, 7, 4}},
		{"high card", "AhJd9c7s4d3h2c", HighCard, []int{1, 14, 11, 9, 7, 4}},
		{"five cards", "AsKsQsJs9d", HighCard, []int{1, 14, 13, 12, 11, 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, err := Evaluate(poker.MustParseCards(tt.cards))
			require.NoError(t, err)
			assert.Equal(t, tt.rank, h.Rank)
			assert.Equal(t, tt.score, h.Score)
			assert.Len(t, h.Cards, 5)
		})
	}
}

func TestEvaluateRejectsBadInput(t *testing.T) {
	t.Parallel()
	_, err := Evaluate(poker.MustParseCards("AhKh"))
	assert.ErrorIs(t, err, ErrInvalidHand)

	_, err = Evaluate(poker.MustParseCards("AhKhQhJhTh9h8h7h"))
	assert.ErrorIs(t, err, ErrInvalidHand)

	_, err = Evaluate(poker.MustParseCards("AhAhQhJhTh"))
	assert.ErrorIs(t, err, ErrInvalidHand)
}

func TestCompare(t *testing.T) {
	t.Parallel()
	eval := func(s string) Hand { return MustEvaluate(poker.MustParseCards(s)) }

	assert.Equal(t, -1, eval("Ac2d3h4s5c").Compare(eval("2c3d4h5s6c")), "wheel loses to six-high straight")
	assert.Equal(t, 1, eval("AhAdKc7s4d").Compare(eval("AcAsQc7h4h")), "kicker decides")
	assert.Equal(t, 0, eval("AhKdQc7s4d").Compare(eval("AcKsQd7h4h")), "suits never break ties")
	assert.Equal(t, 1, eval("2h2d2c3s3d").Compare(eval("AhKhQh9h7h")), "full house beats flush")
	assert.Equal(t, 1, CompareScores([]int{2, 5, 3}, []int{2, 5}))
}

func TestCompareIsAntisymmetric(t *testing.T) {
	t.Parallel()
	hands := []Hand{
		MustEvaluate(poker.MustParseCards("AhKhQhJhTh")),
		MustEvaluate(poker.MustParseCards("7h7d7c7sKd")),
		MustEvaluate(poker.MustParseCards("Ac2d3h4s5c")),
		MustEvaluate(poker.MustParseCards("KhKdJcJs4d")),
		MustEvaluate(poker.MustParseCards("AhJd9c7s4d")),
	}
	for _, a := range hands {
		for _, b := range hands {
			assert.Equal(t, a.Compare(b), -b.Compare(a))
		}
	}
}

func TestDetermineWinners(t *testing.T) {
	t.Parallel()
	board := poker.MustParseCards("AhKd7c7s2h")

	result, err := DetermineWinners([]Contender{
		{ID: "alice", HoleCards: poker.MustParseCards("AcQd")},
		{ID: "bob", HoleCards: poker.MustParseCards("7dKc")},
		{ID: "carol", HoleCards: poker.MustParseCards("AsQh")},
	}, board)
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, result.Winners)
	assert.Equal(t, "bob", result.Ranked[0].ID)
	assert.Equal(t, FullHouse, result.Ranked[0].Hand.Rank)

	result, err = DetermineWinners([]Contender{
		{ID: "alice", HoleCards: poker.MustParseCards("AcQd")},
		{ID: "carol", HoleCards: poker.MustParseCards("AsQh")},
	}, board)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "carol"}, result.Winners)

	h, ok := result.HandFor("carol")
	require.True(t, ok)
	assert.Equal(t, TwoPair, h.Rank)
}

func TestDetermineWinnersBoardPlays(t *testing.T) {
	t.Parallel()
	result, err := DetermineWinners([]Contender{
		{ID: "a", HoleCards: poker.MustParseCards("2c3d")},
		{ID: "b", HoleCards: poker.MustParseCards("4c2d")},
	}, poker.MustParseCards("AhKhQhJhTh"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, result.Winners)
}

func TestLabel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		hole, board, want string
	}{
		{"QhQd", "", "Pocket Qs"},
		{"KsAs", "", "A-K Suited"},
		{"9dJc", "", "J-9 Off-suit"},
		{"TcTd", "", "Pocket 10s"},
		{"AhAd", "Ac7s2d", "Three of a Kind"},
		{"2c7d", "AhKhQhJhTh", "Royal Flush"},
	}
	for _, tt := range tests {
		got := Label(poker.MustParseCards(tt.hole), poker.MustParseCards(tt.board))
		assert.Equal(t, tt.want, got, tt.hole+" "+tt.board)
	}
}
