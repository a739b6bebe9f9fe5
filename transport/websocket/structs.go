package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/entity"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type PlayerPayload struct {
	Player struct {
		ID string `json:"id"`
	} `json:"player"`
}

type TurnPayload struct {
	Player struct {
		ID string `json:"id"`
	} `json:"player"`
	Board entity.Position `json:"board"`
	Cell  entity.Position `json:"cell"`
}

type StatePayload struct {
	Match struct {
		ID string `json:"id"`
	} `json:"match"`
}

type ResponsePayload struct {
	Player *entity.Player `json:"player,omitempty"`
	Match  *entity.Match  `json:"match,omitempty"`
	Error  string         `json:"error,omitempty"`
}
