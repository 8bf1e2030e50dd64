// Package game implements a no-limit Texas Hold'em table.
//
// The main type is Table. It owns the seats, the button, the blind level
// and the hand in progress, and it is the only thing that moves chips.
//
// # Basic Usage
//
//	t, err := game.NewTable(game.WithBlinds(10, 20), game.WithSeed(42))
//	_ = t.AddSeat(game.Seat{ID: "alice", Name: "Alice"})
//	_ = t.AddSeat(game.Seat{ID: "bob", Name: "Bob"})
//	_ = t.StartHand()
//	actor, _ := t.Actor()
//	summary, err := t.Apply(actor.ID, action.CallAction())
//	if summary.HandOver {
//	    res := t.Result()
//	}
//
// # Deterministic Testing
//
// Every shuffle draws from the table's rng. Supply WithSeed or WithRNG to
// reproduce a session, or WithDeckFactory with poker.NewDeckFromCards to
// fix the exact cards dealt.
//
// # Money
//
// Chips only move through blinds, actions and settlement. Side pots are
// rebuilt from each seat's cumulative contribution every time they are
// needed, and the table panics with an InvariantError if the pots ever
// disagree with the contributions or chips appear from nowhere.
//
// A Table is not safe for concurrent use; callers serialize access.
package game
