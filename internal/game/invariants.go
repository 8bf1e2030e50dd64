package game

import "fmt"

func (t *Table) violation(msg string) {
	t.logger.Error("Invariant violated", "msg", msg)
	panic(&InvariantError{Msg: msg})
}

// checkInvariants verifies that no chips were created or lost.
func (t *Table) checkInvariants() {
	stacks := 0
	for _, p := range t.players {
		if p.Chips < 0 {
			t.violation(fmt.Sprintf("seat %s has %d chips", p.ID, p.Chips))
		}
		stacks += p.Chips
	}
	inPlay := 0
	if t.hand != nil && !t.hand.phase.Over() {
		inPlay = t.committed()
	}
	if stacks+inPlay != t.chipTotal {
		t.violation(fmt.Sprintf("table holds %d in stacks and %d in play, expected %d", stacks, inPlay, t.chipTotal))
	}
}
