package server

import (
	"github.com/lox/holdemtable/internal/game"
)

// MessageType identifies a websocket message.
type MessageType string

// Client → Server
const (
	MessageTypeAction   MessageType = "action"
	MessageTypeReveal   MessageType = "reveal"
	MessageTypeRebuy    MessageType = "rebuy"
	MessageTypeNextHand MessageType = "next_hand"
)

// Server → Client
const (
	MessageTypeState MessageType = "state"
	MessageTypeError MessageType = "error"
)

// ClientMessage is anything a seat sends. Action and Amount are only read
// for action messages; Amount is the total street bet for a raise.
type ClientMessage struct {
	Type   MessageType `json:"type"`
	Action string      `json:"action,omitempty"`
	Amount int         `json:"amount,omitempty"`
}

// ServerMessage is anything the server pushes.
type ServerMessage struct {
	Type  MessageType `json:"type"`
	State *game.View  `json:"state,omitempty"`
	Error *ErrorData  `json:"error,omitempty"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func stateMessage(v game.View) ServerMessage {
	return ServerMessage{Type: MessageTypeState, State: &v}
}

func errorMessage(code, msg string) ServerMessage {
	return ServerMessage{Type: MessageTypeError, Error: &ErrorData{Code: code, Message: msg}}
}
