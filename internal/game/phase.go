package game

import "fmt"

// Phase is the stage a hand is in.
type Phase int

const (
	Waiting Phase = iota
	Preflop
	Flop
	Turn
	River
	Showdown
	Uncontested // everyone but one seat folded
)

var phaseNames = [...]string{"waiting", "preflop", "flop", "turn", "river", "showdown", "uncontested"}

func (p Phase) String() string {
	if p >= 0 && int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(b []byte) error {
	for i, name := range phaseNames {
		if name == string(b) {
			*p = Phase(i)
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", b)
}

// Betting reports whether actions are accepted in this phase.
func (p Phase) Betting() bool { return p >= Preflop && p <= River }

// Over reports whether the hand has been settled.
func (p Phase) Over() bool { return p == Showdown || p == Uncontested }

// boardSize is the number of community cards showing once p begins.
func (p Phase) boardSize() int {
	switch p {
	case Flop:
		return 3
	case Turn:
		return 4
	case River, Showdown:
		return 5
	}
	return 0
}
