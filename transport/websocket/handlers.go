package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
)

// handleConnect - resolves the player's session, creating one for an empty ID.
func (that *Server) handleConnect(ctx context.Context, conn *websocket.Conn, message *Message) error {
	var payload PlayerPayload
	if len(message.Payload) > 0 {
		if err := json.Unmarshal(message.Payload, &payload); err != nil {
			return fmt.Errorf("failed to unmarshal payload: %w", err)
		}
	}

	player, err := that.games.GetOrCreatePlayer(ctx, payload.Player.ID)
	if err != nil {
		return fmt.Errorf("failed to get or create player: %w", err)
	}

	return that.sendMessage(conn, message.Action, ResponsePayload{Player: player})
}

// handleNewGame - returns the player's current match or starts a fresh
// human-vs-bot one.
func (that *Server) handleNewGame(ctx context.Context, conn *websocket.Conn, message *Message) error {
	var payload PlayerPayload
	if err := json.Unmarshal(message.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	currentMatch, err := that.games.GetOrCreateMatch(ctx, payload.Player.ID)
	if err != nil {
		return fmt.Errorf("failed to get or create match: %w", err)
	}

	return that.sendMessage(conn, message.Action, ResponsePayload{Match: currentMatch})
}

// handleTurn - applies the human's move. Rejected moves are reported back to
// the client so it can re-prompt; they never corrupt engine state.
func (that *Server) handleTurn(ctx context.Context, conn *websocket.Conn, message *Message) error {
	var payload TurnPayload
	if err := json.Unmarshal(message.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	currentMatch, err := that.games.MakeTurn(ctx, payload.Player.ID, payload.Board, payload.Cell)
	if err != nil {
		return that.sendMessage(conn, message.Action, ResponsePayload{Match: currentMatch, Error: err.Error()})
	}

	return that.sendMessage(conn, message.Action, ResponsePayload{Match: currentMatch})
}

// handleState - serves the current match snapshot.
func (that *Server) handleState(ctx context.Context, conn *websocket.Conn, message *Message) error {
	var payload StatePayload
	if err := json.Unmarshal(message.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	currentMatch, err := that.games.GetMatch(ctx, payload.Match.ID)
	if err != nil {
		return that.sendMessage(conn, message.Action, ResponsePayload{Error: err.Error()})
	}

	return that.sendMessage(conn, message.Action, ResponsePayload{Match: currentMatch})
}
