package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdemtable/internal/action"
	"github.com/lox/holdemtable/internal/game"
)

const turnTimeout = 30 * time.Second

func TestRunnerTimeoutFoldsHuman(t *testing.T) {
	t.Parallel()
	r, clock := newTestRunner(t, RunnerConfig{ActionTimeout: turnTimeout, AutoStart: true}, 1)

	require.NoError(t, r.Join(human("h")))
	assert.Equal(t, game.Waiting, r.Snapshot("h").Phase)
	require.NoError(t, r.Join(robot("b")))

	// heads-up the first seat has the button and acts first preflop
	v := r.Snapshot("h")
	require.Equal(t, "h", v.ActorID)
	require.NotNil(t, v.Actions)

	advance(t, clock, turnTimeout-time.Second)
	assert.Equal(t, "h", r.Snapshot("").ActorID)

	advance(t, clock, time.Second)
	v = r.Snapshot("")
	require.NotNil(t, v.Result)
	assert.Equal(t, game.Uncontested, v.Phase)
	assert.Equal(t, []string{"b"}, v.Result.Winners())
	assert.Equal(t, 1, r.Summary().HandsPlayed)
}

func TestRunnerActionCancelsTimeout(t *testing.T) {
	t.Parallel()
	r, clock := newTestRunner(t, RunnerConfig{ActionTimeout: turnTimeout, AutoStart: true}, 2)
	require.NoError(t, r.Join(human("h")))
	require.NoError(t, r.Join(robot("b")))

	updates, unsubscribe := r.Subscribe("h")
	defer unsubscribe()
	first := <-updates
	assert.Equal(t, "h", first.ActorID)

	s, err := r.Act("h", action.FoldAction())
	require.NoError(t, err)
	assert.True(t, s.HandOver)

	after := <-updates
	require.NotNil(t, after.Result)
	assert.Equal(t, 1, after.Hand)

	// the stale timer must not fire into the finished hand
	advance(t, clock, turnTimeout)
	assert.Equal(t, 1, r.Summary().HandsPlayed)
	assert.Empty(t, updates)
}

func TestRunnerRejectsOutOfTurnAction(t *testing.T) {
	t.Parallel()
	r, _ := newTestRunner(t, RunnerConfig{ActionTimeout: turnTimeout, AutoStart: true}, 3)
	require.NoError(t, r.Join(human("h")))
	require.NoError(t, r.Join(robot("b")))

	updates, unsubscribe := r.Subscribe("h")
	defer unsubscribe()
	before := <-updates

	_, err := r.Act("b", action.CheckAction())
	assert.ErrorIs(t, err, game.ErrNotYourTurn)
	_, err = r.Act("nobody", action.CallAction())
	assert.ErrorIs(t, err, game.ErrInvalidAction)

	assert.Empty(t, updates)
	assert.Equal(t, before, r.Snapshot("h"))
}

func TestRunnerDealsNextHandAfterPause(t *testing.T) {
	t.Parallel()
	r, clock := newTestRunner(t, RunnerConfig{ActionTimeout: turnTimeout, HandPause: 3 * time.Second, AutoStart: true}, 4)
	require.NoError(t, r.Join(human("h")))
	require.NoError(t, r.Join(robot("b")))

	_, err := r.Act("h", action.FoldAction())
	require.NoError(t, err)
	assert.Equal(t, 1, r.Snapshot("").Hand)

	advance(t, clock, 3*time.Second)
	v := r.Snapshot("")
	assert.Equal(t, 2, v.Hand)
	assert.Equal(t, "b", v.DealerID)
}

func TestRunnerPlaysBotOnlyTables(t *testing.T) {
	t.Parallel()
	r, clock := newTestRunner(t, RunnerConfig{ActionTimeout: turnTimeout, HandPause: time.Second, AutoStart: true}, 5)
	require.NoError(t, r.Join(robot("b1")))
	require.NoError(t, r.Join(robot("b2")))

	// bots play the whole hand inline
	v := r.Snapshot("")
	require.NotNil(t, v.Result)
	assert.Equal(t, 1, r.Summary().HandsPlayed)

	require.NoError(t, r.Join(robot("b3")))
	advance(t, clock, time.Second)
	assert.GreaterOrEqual(t, r.Summary().HandsPlayed, 2)

	v = r.Snapshot("")
	total := 0
	for _, s := range v.Seats {
		total += s.Chips
	}
	assert.Equal(t, 3000, total)
}

func TestRunnerLeaveFoldsActingSeat(t *testing.T) {
	t.Parallel()
	r, clock := newTestRunner(t, RunnerConfig{ActionTimeout: turnTimeout, AutoStart: true}, 6)
	require.NoError(t, r.Join(human("h")))
	require.NoError(t, r.Join(robot("b")))
	require.Equal(t, "h", r.Snapshot("").ActorID)

	require.NoError(t, r.Leave("h"))
	v := r.Snapshot("")
	require.NotNil(t, v.Result)
	assert.Equal(t, []string{"b"}, v.Result.Winners())
	assert.Len(t, v.Seats, 1)

	advance(t, clock, turnTimeout)
	assert.Equal(t, 1, r.Summary().HandsPlayed)
	assert.ErrorIs(t, r.Leave("h"), game.ErrUnknownSeat)
}

func TestRunnerCloseEndsSubscriptions(t *testing.T) {
	t.Parallel()
	r, _ := newTestRunner(t, RunnerConfig{ActionTimeout: turnTimeout}, 7)
	updates, _ := r.Subscribe("")
	<-updates

	r.Close()
	_, ok := <-updates
	assert.False(t, ok)
	assert.ErrorIs(t, r.Join(human("h")), ErrTableClosed)
	assert.ErrorIs(t, r.StartHand(), ErrTableClosed)
}

func TestRunnerManualStart(t *testing.T) {
	t.Parallel()
	r, _ := newTestRunner(t, RunnerConfig{ActionTimeout: turnTimeout}, 8)
	require.NoError(t, r.Join(human("h")))
	assert.ErrorIs(t, r.StartHand(), game.ErrNotEnoughPlayers)

	require.NoError(t, r.Join(human("g")))
	assert.Equal(t, game.Waiting, r.Snapshot("").Phase)
	require.NoError(t, r.StartHand())
	assert.Equal(t, game.Preflop, r.Snapshot("").Phase)
	assert.ErrorIs(t, r.StartHand(), game.ErrHandInProgress)
}
