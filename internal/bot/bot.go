// Package bot decides actions for computer-controlled seats from a
// noisy hand-strength estimate and a table of style thresholds.
package bot

import (
	"fmt"
	"io"
	"math"
	rand "math/rand/v2"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/holdemtable/internal/action"
	"github.com/lox/holdemtable/poker"
)

// View is everything a bot may see when it is asked to act.
type View struct {
	HoleCards  []poker.Card
	Board      []poker.Card
	CurrentBet int // highest street bet at the table
	MyBet      int // this seat's street bet
	MyChips    int // behind, not counting MyBet
	Pot        int // all chips committed this hand
	BigBlind   int
}

// ToCall is the number of chips needed to match the current bet.
func (v View) ToCall() int { return max(v.CurrentBet-v.MyBet, 0) }

// Decision is the chosen action plus the reasoning behind it.
type Decision struct {
	Action    action.Action
	Strength  float64
	Reasoning string
}

// Engine makes decisions for one seat.
type Engine struct {
	difficulty  Difficulty
	personality Personality
	thresholds  Thresholds
	rng         *rand.Rand
	logger      *log.Logger
}

// New returns an engine for the given style. The rng is required; a nil
// logger discards output.
func New(d Difficulty, p Personality, rng *rand.Rand, logger *log.Logger) *Engine {
	if rng == nil {
		panic("bot: New requires an rng")
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Engine{
		difficulty:  d,
		personality: p,
		thresholds:  ThresholdsFor(d, p),
		rng:         rng,
		logger:      logger.WithPrefix("bot").With("difficulty", d, "personality", p),
	}
}

func (e *Engine) Difficulty() Difficulty   { return e.difficulty }
func (e *Engine) Personality() Personality { return e.personality }
func (e *Engine) Thresholds() Thresholds   { return e.thresholds }

type thinking struct {
	thoughts []string
}

func (t *thinking) add(format string, args ...any) {
	t.thoughts = append(t.thoughts, fmt.Sprintf(format, args...))
}

func (t *thinking) String() string {
	return strings.Join(t.thoughts, ". ")
}

// Decide picks an action for the view. Raise amounts are street totals and
// never commit more than the seat has.
func (e *Engine) Decide(v View) Decision {
	var think thinking
	th := e.thresholds

	raw := HandStrength(v.HoleCards, v.Board)
	noise := (e.rng.Float64() - 0.5) * NoiseRange(e.difficulty) * 2
	s := math.Max(0, math.Min(1, raw+noise))
	think.add("strength %.2f (raw %.2f)", s, raw)

	toCall := v.ToCall()
	free := toCall == 0

	var a action.Action
	switch {
	case s < th.Fold:
		switch {
		case free:
			think.add("weak hand, checking for free")
			a = action.CheckAction()
		case e.rng.Float64() < th.BluffChance:
			think.add("weak hand, calling %d as a bluff", toCall)
			a = action.CallAction()
		default:
			think.add("weak hand, folding to %d", toCall)
			a = action.FoldAction()
		}

	case s < th.Raise:
		switch {
		case free:
			bet := min(v.MyChips, int(math.Floor(float64(v.Pot)*th.BetSizing)))
			if bet > 0 && e.rng.Float64() < th.MediumBetChance {
				think.add("medium hand, betting %d", bet)
				a = action.RaiseTo(v.CurrentBet + bet)
			} else {
				think.add("medium hand, checking")
				a = action.CheckAction()
			}
		case float64(toCall) <= float64(v.MyChips)*th.CallRatio:
			think.add("medium hand, %d is a comfortable call", toCall)
			a = action.CallAction()
		default:
			think.add("medium hand, %d is too expensive", toCall)
			a = action.FoldAction()
		}

	default:
		switch {
		case free:
			bet := min(v.MyChips, int(math.Floor(float64(v.Pot)*(th.BetSizing+s*0.5))))
			if bet > 0 && e.rng.Float64() < th.StrongBetChance {
				think.add("strong hand, betting %d", bet)
				a = action.RaiseTo(v.CurrentBet + bet)
			} else {
				think.add("strong hand, checking")
				a = action.CheckAction()
			}
		case toCall <= v.MyChips:
			if s > th.BigRaise && e.rng.Float64() < th.ReraiseChance {
				commit := min(v.MyChips, toCall+int(math.Floor(float64(v.Pot)*0.75)))
				think.add("very strong hand, re-raising with %d", commit)
				a = action.RaiseTo(v.MyBet + commit)
			} else {
				think.add("strong hand, calling %d", toCall)
				a = action.CallAction()
			}
		case s > th.AllIn:
			think.add("strong enough to call all-in")
			a = action.CallAction()
		default:
			think.add("cannot cover %d, folding", toCall)
			a = action.FoldAction()
		}
	}

	e.logger.Debug("Bot decision", "action", a, "strength", s, "to_call", toCall, "pot", v.Pot)
	return Decision{Action: a, Strength: s, Reasoning: think.String()}
}
