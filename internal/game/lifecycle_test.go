package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdemtable/internal/action"
	"github.com/lox/holdemtable/poker"
)

func TestRemoveSeatMidHandKeepsContribution(t *testing.T) {
	t.Parallel()
	tbl := newTestTable(t, seats("a", "b", "c"))
	require.NoError(t, tbl.StartHand())
	requireActor(t, tbl, "a")

	// b posted the small blind and walks away
	require.NoError(t, tbl.RemoveSeat("b"))
	requireActor(t, tbl, "a")
	assert.Equal(t, 30, tbl.ViewerState("").Pot)

	s := mustApply(t, tbl, "a", action.FoldAction())
	require.True(t, s.HandOver)
	assert.Equal(t, 1000, chips(t, tbl, "a"))
	assert.Equal(t, 1010, chips(t, tbl, "c"))
	assert.Equal(t, 2010, tbl.ChipTotal())
	assert.Equal(t, tbl.ChipTotal(), stackSum(tbl))
}

func TestRemoveActingSeatPassesTheAction(t *testing.T) {
	t.Parallel()
	tbl := newTestTable(t, seats("a", "b", "c"))
	require.NoError(t, tbl.StartHand())
	requireActor(t, tbl, "a")

	require.NoError(t, tbl.RemoveSeat("a"))
	requireActor(t, tbl, "b")
	assert.Equal(t, "c", tbl.ViewerState("").DealerID)

	mustApply(t, tbl, "b", action.CallAction())
	requireActor(t, tbl, "c")
	s := mustApply(t, tbl, "c", action.CheckAction())
	assert.Equal(t, Flop, s.Next)
	requireActor(t, tbl, "b")

	_, ok := tbl.Chips("a")
	assert.False(t, ok)
}

func TestRemoveSeatLeavingOneContenderEndsHand(t *testing.T) {
	t.Parallel()
	tbl := newTestTable(t, seats("a", "b"))
	require.NoError(t, tbl.StartHand())

	require.NoError(t, tbl.RemoveSeat("b"))
	assert.True(t, tbl.HandOver())
	assert.Equal(t, Uncontested, tbl.Phase())
	assert.Equal(t, 1020, chips(t, tbl, "a"))
	assert.Equal(t, 1020, tbl.ChipTotal())

	assert.ErrorIs(t, tbl.RemoveSeat("b"), ErrUnknownSeat)
	assert.ErrorIs(t, tbl.StartHand(), ErrNotEnoughPlayers)
}

func TestRemoveSeatBetweenHandsMovesButtonOn(t *testing.T) {
	t.Parallel()
	tbl := newTestTable(t, seats("a", "b", "c", "d"))
	require.NoError(t, tbl.StartHand())
	mustApply(t, tbl, "d", action.FoldAction())
	mustApply(t, tbl, "a", action.FoldAction())
	mustApply(t, tbl, "b", action.FoldAction())
	require.True(t, tbl.HandOver())
	assert.Equal(t, "a", tbl.ViewerState("").DealerID)

	// the button would pass to b; with b gone it goes to c
	require.NoError(t, tbl.RemoveSeat("b"))
	require.NoError(t, tbl.StartHand())
	assert.Equal(t, "c", tbl.ViewerState("").DealerID)
}

func TestRebuy(t *testing.T) {
	t.Parallel()
	tbl := newTestTable(t,
		[]seatSetup{{"a", 20}, {"b", 1000}, {"c", 1000}},
		stackedDecks("2c3d AsAd 7h2s KcKd9h 5s 4c"),
	)
	require.NoError(t, tbl.StartHand())

	_, err := tbl.Rebuy("b")
	assert.ErrorIs(t, err, ErrRebuyNotAllowed, "seat with chips")

	mustApply(t, tbl, "a", action.CallAction())
	_, err = tbl.Rebuy("a")
	assert.ErrorIs(t, err, ErrRebuyNotAllowed, "all-in seat still contesting")

	// with only c able to bet and nothing to call, the board runs out
	s := mustApply(t, tbl, "b", action.FoldAction())
	require.True(t, s.HandOver)
	assert.Equal(t, Showdown, tbl.Phase())
	assert.Equal(t, 1030, chips(t, tbl, "c"))
	assert.Equal(t, 0, chips(t, tbl, "a"))

	stack, err := tbl.Rebuy("a")
	require.NoError(t, err)
	assert.Equal(t, 1000, stack)
	assert.Equal(t, 1000+990+1030, tbl.ChipTotal())

	_, err = tbl.Rebuy("nobody")
	assert.ErrorIs(t, err, ErrUnknownSeat)
}

func TestBustedSeatSitsOutUntilRebuy(t *testing.T) {
	t.Parallel()
	tbl := newTestTable(t,
		[]seatSetup{{"a", 20}, {"b", 1000}, {"c", 1000}},
		stackedDecks("2c3d AsAd 7h2s KcKd9h 5s 4c"),
	)
	require.NoError(t, tbl.StartHand())
	mustApply(t, tbl, "a", action.CallAction())
	mustApply(t, tbl, "b", action.FoldAction())
	require.True(t, tbl.HandOver())

	require.NoError(t, tbl.StartHand())
	assert.Equal(t, "b", tbl.ViewerState("").DealerID)
	for _, sv := range tbl.ViewerState("").Seats {
		assert.Equal(t, sv.ID != "a", sv.InHand, sv.ID)
	}
}

func TestRevealCards(t *testing.T) {
	t.Parallel()
	tbl := newTestTable(t, seats("a", "b"), stackedDecks("KsKd 7c2d"))
	require.NoError(t, tbl.StartHand())

	assert.ErrorIs(t, tbl.RevealCards("b"), ErrRevealNotAllowed)
	mustApply(t, tbl, "a", action.FoldAction())

	seatView := func(v View, id string) SeatView {
		for _, sv := range v.Seats {
			if sv.ID == id {
				return sv
			}
		}
		t.Fatalf("seat %s missing", id)
		return SeatView{}
	}
	assert.Empty(t, seatView(tbl.ViewerState("a"), "b").Cards)
	assert.Equal(t, 2, seatView(tbl.ViewerState("a"), "b").CardCount)

	require.NoError(t, tbl.RevealCards("b"))
	assert.Equal(t, poker.MustParseCards("KsKd"), seatView(tbl.ViewerState("a"), "b").Cards)
	assert.Equal(t, poker.MustParseCards("KsKd"), seatView(tbl.ViewerState(""), "b").Cards)
}

func TestViewerStateRedaction(t *testing.T) {
	t.Parallel()
	tbl := newTestTable(t, seats("a", "b", "c"),
		WithBlinds(5, 10),
		stackedDecks("2c3d 4c5d 6c7d AhKhQh Jh Th"),
	)
	require.NoError(t, tbl.StartHand())

	view := tbl.ViewerState("a")
	assert.Equal(t, "a", view.ActorID)
	require.NotNil(t, view.Actions)
	assert.Equal(t, 10, view.Actions.ToCall)
	assert.Equal(t, "7-6 Off-suit", view.HandLabel)
	for _, sv := range view.Seats {
		if sv.ID == "a" {
			assert.Equal(t, poker.MustParseCards("6c7d"), sv.Cards)
		} else {
			assert.Empty(t, sv.Cards, sv.ID)
			assert.Equal(t, 2, sv.CardCount)
		}
	}
	assert.Nil(t, tbl.ViewerState("b").Actions, "not b's turn")

	mustApply(t, tbl, "a", action.CallAction())
	mustApply(t, tbl, "b", action.FoldAction())
	mustApply(t, tbl, "c", action.CheckAction())
	assert.Equal(t, "High Card", tbl.ViewerState("c").HandLabel)
	for range 3 {
		mustApply(t, tbl, "c", action.CheckAction())
		mustApply(t, tbl, "a", action.CheckAction())
	}

	view = tbl.ViewerState("")
	require.NotNil(t, view.Result)
	for _, sv := range view.Seats {
		switch sv.ID {
		case "b":
			assert.Empty(t, sv.Cards, "folded hand stays hidden")
		default:
			assert.Len(t, sv.Cards, 2, sv.ID)
		}
	}
}

func TestBlindsEscalate(t *testing.T) {
	t.Parallel()
	tbl := newTestTable(t, seats("a", "b"), WithBlindSchedule(BlindSchedule{EveryHands: 2, Multiplier: 2}))

	for range 2 {
		require.NoError(t, tbl.StartHand())
		actor, _ := tbl.Actor()
		mustApply(t, tbl, actor.ID, action.FoldAction())
	}
	assert.Equal(t, 2, tbl.HandsCompleted())

	require.NoError(t, tbl.StartHand())
	sb, bb := tbl.Blinds()
	assert.Equal(t, 20, sb)
	assert.Equal(t, 40, bb)
	assert.Equal(t, 60, tbl.ViewerState("").Pot)
}
