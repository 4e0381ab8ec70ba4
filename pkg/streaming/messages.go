package streaming

import (
	"encoding/json"

	"github.com/pitchside/engine/internal/model"
)

// Message type constants matching the streaming protocol.
const (
	TypeStartMatch      = "start_match"
	TypeEndMatch        = "end_match"
	TypeBallTick        = "ball_tick"
	TypePossessionEvent = "possession_event"
	TypePerformance     = "performance"
)

// Envelope wraps all messages sent over the WebSocket.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// AckMessage is the server's acknowledgement response.
type AckMessage struct {
	Type string `json:"type"` // always "ack"
	For  string `json:"for"`  // the message type being acknowledged
}

// StartMatchPayload carries the match header.
type StartMatchPayload struct {
	Match *model.Match `json:"match"`
}
