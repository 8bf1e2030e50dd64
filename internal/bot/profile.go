package bot

import (
	"fmt"
	"strings"
)

// Difficulty controls how much noise is mixed into a bot's read of its hand
// and how tight its base thresholds are.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Personality shifts a bot's thresholds toward a playing style.
type Personality string

const (
	Balanced   Personality = "balanced"
	Aggressive Personality = "aggressive"
	Passive    Personality = "passive"
	Bluffer    Personality = "bluffer"
	Maniac     Personality = "maniac"
)

// Personalities lists every personality in a stable order.
var Personalities = []Personality{Balanced, Aggressive, Passive, Bluffer, Maniac}

// ParseDifficulty returns the difficulty named by s. Empty means Medium.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case "":
		return Medium, nil
	case Easy, Medium, Hard:
		return d, nil
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

// ParsePersonality returns the personality named by s. Empty means Balanced.
func ParsePersonality(s string) (Personality, error) {
	switch p := Personality(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return Balanced, nil
	case Balanced, Aggressive, Passive, Bluffer, Maniac:
		return p, nil
	}
	return "", fmt.Errorf("unknown personality %q", s)
}

// Thresholds are the probabilities and strength cut-offs a bot plays by.
type Thresholds struct {
	Fold            float64 // below this strength the hand is given up
	Raise           float64 // at or above this strength the hand is played for value
	BigRaise        float64 // above this a bet may be re-raised
	BluffChance     float64 // chance to call anyway with a weak hand
	MediumBetChance float64 // chance to open the betting with a medium hand
	StrongBetChance float64 // chance to open the betting with a strong hand
	BetSizing       float64 // opening bet as a fraction of the pot
	CallRatio       float64 // largest call for a medium hand, as a fraction of the stack
	ReraiseChance   float64
	AllIn           float64 // strength needed to call off the whole stack
}

var baseThresholds = map[Difficulty]Thresholds{
	Easy:   {Fold: 0.20, Raise: 0.50, BigRaise: 0.70, BluffChance: 0.30},
	Medium: {Fold: 0.25, Raise: 0.55, BigRaise: 0.75, BluffChance: 0.15},
	Hard:   {Fold: 0.30, Raise: 0.60, BigRaise: 0.80, BluffChance: 0.10},
}

var noiseRange = map[Difficulty]float64{
	Easy:   0.30,
	Medium: 0.15,
	Hard:   0.05,
}

// ThresholdsFor combines a difficulty's base thresholds with a
// personality's adjustments. Unknown values fall back to medium/balanced.
func ThresholdsFor(d Difficulty, p Personality) Thresholds {
	t, ok := baseThresholds[d]
	if !ok {
		t = baseThresholds[Medium]
	}
	t.MediumBetChance = 0.3
	t.StrongBetChance = 0.7
	t.BetSizing = 0.5
	t.CallRatio = 0.3
	t.ReraiseChance = 0.5
	t.AllIn = 0.7

	switch p {
	case Aggressive:
		t.Fold -= 0.1
		t.BluffChance += 0.1
		t.MediumBetChance = 0.6
		t.StrongBetChance = 0.95
		t.BetSizing = 0.75
		t.ReraiseChance = 0.75
	case Passive:
		t.Fold += 0.05
		t.BluffChance = 0.05
		t.MediumBetChance = 0.1
		t.StrongBetChance = 0.4
		t.BetSizing = 0.3
		t.CallRatio = 0.2
		t.ReraiseChance = 0.2
	case Bluffer:
		t.BluffChance = 0.5
		t.Fold -= 0.05
		t.MediumBetChance = 0.5
		t.BetSizing = 0.6
	case Maniac:
		t.Fold = 0.05
		t.BluffChance = 0.7
		t.MediumBetChance = 0.8
		t.StrongBetChance = 1.0
		t.BetSizing = 1.0
		t.CallRatio = 0.9
		t.ReraiseChance = 0.9
		t.AllIn = 0.3
	}
	return t
}

// NoiseRange is the half-width of the uniform noise added to hand strength.
func NoiseRange(d Difficulty) float64 {
	if r, ok := noiseRange[d]; ok {
		return r
	}
	return noiseRange[Medium]
}
