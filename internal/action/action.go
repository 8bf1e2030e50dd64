// Package action defines the moves a seat can make during a betting round.
package action

import (
	"fmt"
	"strings"
)

// Kind is the type of a betting action.
type Kind uint8

const (
	Fold Kind = iota
	Check
	Call
	Raise
)

var kindNames = [...]string{"fold", "check", "call", "raise"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// ParseKind accepts the lower-case names used on the wire. "bet" and
// "allin" are accepted as aliases of raise.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fold":
		return Fold, nil
	case "check":
		return Check, nil
	case "call":
		return Call, nil
	case "raise", "bet", "allin", "all-in":
		return Raise, nil
	}
	return 0, fmt.Errorf("unknown action %q", s)
}

func (k Kind) MarshalText() ([]byte, error) {
	if int(k) >= len(kindNames) {
		return nil, fmt.Errorf("unknown action kind %d", k)
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Action is a requested move. For Raise, Amount is the total bet the seat
// wants to have in front of it for the street; it is ignored otherwise.
type Action struct {
	Kind   Kind `json:"kind"`
	Amount int  `json:"amount,omitempty"`
}

func FoldAction() Action  { return Action{Kind: Fold} }
func CheckAction() Action { return Action{Kind: Check} }
func CallAction() Action  { return Action{Kind: Call} }

// RaiseTo requests a raise to a total street bet of amount.
func RaiseTo(amount int) Action { return Action{Kind: Raise, Amount: amount} }

func (a Action) String() string {
	if a.Kind == Raise {
		return fmt.Sprintf("raise to %d", a.Amount)
	}
	return a.Kind.String()
}
