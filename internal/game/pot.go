package game

import "slices"

// Pot is the main pot or a side pot.
type Pot struct {
	Amount   int      `json:"amount"`
	Eligible []string `json:"eligible"` // seats that can win it, in seat order
}

// Contribution is what one seat has put in over the whole hand.
type Contribution struct {
	SeatID string
	Amount int
	Folded bool
	AllIn  bool
}

// ComputePots slices the contributions into a main pot and side pots.
//
// Each distinct all-in amount below the largest contribution closes a
// slice. Every seat pays into a slice whatever part of its contribution
// falls inside it, folded or not. A seat is eligible for a slice if it has
// not folded and either reached the slice's top or can still bet. A slice
// nobody is eligible for rolls into the next one. The pots always sum to
// the total contributed.
func ComputePots(contribs []Contribution) []Pot {
	top := 0
	for _, c := range contribs {
		top = max(top, c.Amount)
	}
	if top == 0 {
		return nil
	}

	var levels []int
	for _, c := range contribs {
		if c.AllIn && c.Amount > 0 && c.Amount < top && !slices.Contains(levels, c.Amount) {
			levels = append(levels, c.Amount)
		}
	}
	slices.Sort(levels)
	levels = append(levels, top)

	var pots []Pot
	prev, carry := 0, 0
	for _, level := range levels {
		pot := Pot{Amount: carry}
		for _, c := range contribs {
			pot.Amount += max(min(c.Amount, level)-prev, 0)
			if !c.Folded && (c.Amount >= level || !c.AllIn) {
				pot.Eligible = append(pot.Eligible, c.SeatID)
			}
		}
		prev = level
		if len(pot.Eligible) == 0 {
			carry = pot.Amount
			continue
		}
		carry = 0
		if pot.Amount > 0 {
			pots = append(pots, pot)
		}
	}
	if carry > 0 {
		// Only reachable if every contributor folded, which a live hand
		// never allows. Keep the chips visible rather than dropping them.
		if len(pots) == 0 {
			pots = append(pots, Pot{})
		}
		pots[len(pots)-1].Amount += carry
	}
	return pots
}

// TotalPots sums the pots.
func TotalPots(pots []Pot) int {
	total := 0
	for _, p := range pots {
		total += p.Amount
	}
	return total
}
