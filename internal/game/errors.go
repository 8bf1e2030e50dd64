package game

import (
	"errors"
	"fmt"

	"github.com/lox/holdemtable/internal/action"
)

// ErrInvalidAction is the root of every error returned for a rejected
// action. A rejected action leaves the table untouched.
var ErrInvalidAction = errors.New("invalid action")

var (
	ErrNotYourTurn    = fmt.Errorf("%w: not your turn", ErrInvalidAction)
	ErrNoBettingRound = fmt.Errorf("%w: no betting round in progress", ErrInvalidAction)
	ErrCannotAct      = fmt.Errorf("%w: seat cannot act", ErrInvalidAction)
	ErrIllegalCheck   = fmt.Errorf("%w: cannot check facing a bet", ErrInvalidAction)
	ErrUnknownAction  = fmt.Errorf("%w: unknown action", ErrInvalidAction)
)

// Errors for operations requested when the table is not in a state to
// perform them.
var (
	ErrInvalidConfig    = errors.New("invalid table config")
	ErrNotEnoughPlayers = errors.New("not enough players with chips")
	ErrHandInProgress   = errors.New("hand in progress")
	ErrNoHand           = errors.New("no hand has been played")
	ErrUnknownSeat      = errors.New("unknown seat")
	ErrDuplicateSeat    = errors.New("seat already taken")
	ErrTableFull        = errors.New("table is full")
	ErrRebuyNotAllowed  = errors.New("rebuy not allowed")
	ErrRevealNotAllowed = errors.New("reveal not allowed")
	ErrNotBot           = errors.New("seat is not a bot")
)

// ActionError describes a rejected action.
type ActionError struct {
	SeatID string
	Action action.Action
	Err    error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("seat %s: %s: %v", e.SeatID, e.Action, e.Err)
}

func (e *ActionError) Unwrap() error { return e.Err }

// InvariantError is the panic value used when the table's money or
// turn bookkeeping is found to be inconsistent. It always indicates a bug.
type InvariantError struct {
	Msg string
}

func (e *InvariantError) Error() string { return "invariant violated: " + e.Msg }
