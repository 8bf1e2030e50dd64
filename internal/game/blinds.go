package game

import "math"

// BlindSchedule raises the blinds every EveryHands completed hands by
// Multiplier, rounded to a multiple of Round. A zero schedule keeps the
// blinds fixed.
type BlindSchedule struct {
	EveryHands int
	Multiplier float64
	Round      int
}

// Enabled reports whether the schedule ever changes the blinds.
func (s BlindSchedule) Enabled() bool {
	return s.EveryHands > 0 && s.Multiplier > 1
}

// Level returns how many times the blinds have gone up after
// handsCompleted hands.
func (s BlindSchedule) Level(handsCompleted int) int {
	if !s.Enabled() || handsCompleted <= 0 {
		return 0
	}
	return handsCompleted / s.EveryHands
}

// Blinds returns the small and big blind at level, starting from the base
// blinds.
func (s BlindSchedule) Blinds(small, big, level int) (int, int) {
	if level <= 0 || !s.Enabled() {
		return small, big
	}
	g := s.Round
	if g <= 0 {
		g = 1
		if small >= 5 {
			g = 5
		}
	}
	factor := math.Pow(s.Multiplier, float64(level))
	sb := max(roundTo(float64(small)*factor, g), small)
	bb := max(roundTo(float64(big)*factor, g), big, sb)
	return sb, bb
}

func roundTo(x float64, g int) int {
	return int(math.Round(x/float64(g))) * g
}
