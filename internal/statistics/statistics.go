// Package statistics accumulates per-hand results in big blinds.
package statistics

import (
	"fmt"
	"math"
	"slices"
)

// MaxPositions is the number of seat positions tracked, counted from the
// button (0) clockwise.
const MaxPositions = 10

// BigPotBB is the pot size, in big blinds, from which a pot counts as big.
const BigPotBB = 50

// HandResult is one seat's outcome in one hand.
type HandResult struct {
	NetChips       int    // chips won or lost
	BigBlind       int    // big blind the hand was played at
	Position       int    // seats after the button, 0 = button
	WentToShowdown bool   // still contesting at showdown
	PotChips       int    // final pot size in chips
	StreetReached  string // preflop, flop, turn or river
}

// NetBB is NetChips in big blinds.
func (r HandResult) NetBB() float64 {
	if r.BigBlind == 0 {
		return 0
	}
	return float64(r.NetChips) / float64(r.BigBlind)
}

// PositionStats tracks statistics for a specific table position
type PositionStats struct {
	Hands  int
	SumBB  float64
	SumBB2 float64
}

// Statistics tracks simulation results for one seat or group of seats.
type Statistics struct {
	Hands  int
	SumBB  float64
	SumBB2 float64   // Sum of squares for variance calculation
	Values []float64 // Store all values for median/percentile calculation

	ShowdownHands   int
	ShowdownWins    int     // Hands won at showdown
	NonShowdownWins int     // Hands won without showdown
	ShowdownBB      float64 // BB from showdown (wins AND losses)
	NonShowdownBB   float64 // BB without showdown (wins AND losses)
	AllBB           float64 // Total BB for sanity check

	PositionResults [MaxPositions]PositionStats
	Streets         map[string]int

	MaxPotChips int
	MaxPotBB    float64
	BigPots     int     // Pots >= BigPotBB
	BigPotsBB   float64 // BB from big pots
}

// Mean returns the arithmetic mean of all results in big blinds per hand
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumBB / float64(s.Hands)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return max(0, (s.SumBB2-float64(s.Hands)*mean*mean)/float64(s.Hands-1))
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// BBPer100 is the win rate per hundred hands.
func (s *Statistics) BBPer100() float64 {
	return s.Mean() * 100
}

// Add incorporates a new hand result into the statistics
func (s *Statistics) Add(result HandResult) {
	netBB := result.NetBB()
	s.Hands++
	s.SumBB += netBB
	s.SumBB2 += netBB * netBB
	s.Values = append(s.Values, netBB)

	if result.WentToShowdown {
		s.ShowdownHands++
		s.ShowdownBB += netBB
		if netBB > 0 {
			s.ShowdownWins++
		}
	} else {
		s.NonShowdownBB += netBB
		if netBB > 0 {
			s.NonShowdownWins++
		}
	}
	s.AllBB += netBB

	if pos := result.Position; pos >= 0 && pos < MaxPositions {
		s.PositionResults[pos].Hands++
		s.PositionResults[pos].SumBB += netBB
		s.PositionResults[pos].SumBB2 += netBB * netBB
	}

	if result.StreetReached != "" {
		if s.Streets == nil {
			s.Streets = make(map[string]int)
		}
		s.Streets[result.StreetReached]++
	}

	var potBB float64
	if result.BigBlind > 0 {
		potBB = float64(result.PotChips) / float64(result.BigBlind)
	}
	if result.PotChips > s.MaxPotChips {
		s.MaxPotChips = result.PotChips
		s.MaxPotBB = potBB
	}
	if potBB >= BigPotBB {
		s.BigPots++
		s.BigPotsBB += netBB
	}
}

// Merge folds other into s.
func (s *Statistics) Merge(other *Statistics) {
	s.Hands += other.Hands
	s.SumBB += other.SumBB
	s.SumBB2 += other.SumBB2
	s.Values = append(s.Values, other.Values...)
	s.ShowdownHands += other.ShowdownHands
	s.ShowdownWins += other.ShowdownWins
	s.NonShowdownWins += other.NonShowdownWins
	s.ShowdownBB += other.ShowdownBB
	s.NonShowdownBB += other.NonShowdownBB
	s.AllBB += other.AllBB
	for i, ps := range other.PositionResults {
		s.PositionResults[i].Hands += ps.Hands
		s.PositionResults[i].SumBB += ps.SumBB
		s.PositionResults[i].SumBB2 += ps.SumBB2
	}
	for street, n := range other.Streets {
		if s.Streets == nil {
			s.Streets = make(map[string]int)
		}
		s.Streets[street] += n
	}
	if other.MaxPotChips > s.MaxPotChips {
		s.MaxPotChips = other.MaxPotChips
		s.MaxPotBB = other.MaxPotBB
	}
	s.BigPots += other.BigPots
	s.BigPotsBB += other.BigPotsBB
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0),
// interpolating between neighbours.
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := slices.Clone(s.Values)
	slices.Sort(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// PositionMean returns the mean result for a position.
func (s *Statistics) PositionMean(position int) float64 {
	if position < 0 || position >= MaxPositions {
		return 0
	}
	ps := s.PositionResults[position]
	if ps.Hands == 0 {
		return 0
	}
	return ps.SumBB / float64(ps.Hands)
}

// IsLedgerBalanced checks if the accounting is consistent
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.AllBB-s.ShowdownBB-s.NonShowdownBB) <= 1e-6
}

// Validate checks the accumulated counters agree with each other.
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: AllBB=%.6f, ShowdownBB=%.6f, NonShowdownBB=%.6f",
			s.AllBB, s.ShowdownBB, s.NonShowdownBB)
	}
	if s.Hands <= 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}
	if len(s.Values) != s.Hands {
		return fmt.Errorf("values array length (%d) does not match hands count (%d)",
			len(s.Values), s.Hands)
	}
	if wins := s.ShowdownWins + s.NonShowdownWins; wins > s.Hands {
		return fmt.Errorf("total wins (%d) exceeds total hands (%d)", wins, s.Hands)
	}
	if s.ShowdownWins > s.ShowdownHands {
		return fmt.Errorf("showdown wins (%d) exceed showdown hands (%d)", s.ShowdownWins, s.ShowdownHands)
	}
	positionHands := 0
	for _, ps := range s.PositionResults {
		positionHands += ps.Hands
	}
	if positionHands != s.Hands {
		return fmt.Errorf("position hands total (%d) does not match total hands (%d)",
			positionHands, s.Hands)
	}
	return nil
}
