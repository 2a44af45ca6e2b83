package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	MessageTypeMove      MessageType = "move"
	MessageTypeReset     MessageType = "reset"
	MessageTypeVerdict   MessageType = "verdict"
	MessageTypeGameState MessageType = "gameState"
	MessageTypeError     MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// MovePayload is the body of an inbound move message. File and Rank are
// pointers so an absent coordinate fails validation instead of reading as 0.
// Out-of-range values pass and are rejected by the engine as outOfBounds.
type MovePayload struct {
	PieceID int  `json:"pieceId" validate:"required,min=1"`
	File    *int `json:"file" validate:"required"`
	Rank    *int `json:"rank" validate:"required"`
}

// ErrorPayload is the body of an outbound error message.
type ErrorPayload struct {
	Error string `json:"error"`
}

// NewMessage marshals payload into a Message of type t.
func NewMessage(t MessageType, payload interface{}) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: raw}, nil
}
