// Package transport is the WebSocket-to-queue shim at the edge: it
// forwards each client's frames into its broker queue pair and pumps
// the reply queue back out over the same connection (spec §1, §2 —
// "out of scope" as a collaborator, kept here so the server is
// runnable end to end).
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"holdem-broker/apperr"
	"holdem-broker/broker"
)

const outPopInterval = time.Second

// Bridge owns no state beyond the broker it forwards through; one
// Bridge serves every connection.
type Bridge struct {
	Broker broker.Broker
}

func New(b broker.Broker) *Bridge {
	return &Bridge{Broker: b}
}

// Serve reads the connection's first frame as the {type:connect}
// envelope, pushes it onto the lobby queue, then bridges every
// subsequent frame against the player-session queue pair the
// envelope names (spec §4.8, §6 queue naming).
func (b *Bridge) Serve(ctx context.Context, conn *websocket.Conn) error {
	defer conn.Close()

	_, raw, err := conn.ReadMessage()
	if err != nil {
		return err
	}
	var connectMsg map[string]any
	if err := json.Unmarshal(raw, &connectMsg); err != nil {
		return apperr.FormatError(err.Error())
	}

	playerMsg, _ := connectMsg["player"].(map[string]any)
	playerID, _ := playerMsg["id"].(string)
	sessionID, _ := connectMsg["session_id"].(string)
	if playerID == "" || sessionID == "" {
		return errors.New("bridge: connect message missing player.id or session_id")
	}

	lobbyQueue := broker.NewMessageQueue(b.Broker, broker.LobbyQueueName)
	if err := lobbyQueue.Push(ctx, connectMsg); err != nil {
		return err
	}

	inName, outName := broker.QueueNames(playerID, sessionID)
	inQueue := broker.NewMessageQueue(b.Broker, inName)
	outQueue := broker.NewMessageQueue(b.Broker, outName)

	done := make(chan struct{})
	go b.pumpOut(ctx, conn, outQueue, done)
	b.pumpIn(ctx, conn, inQueue, playerID)
	close(done)
	return nil
}

// pumpIn reads client frames and pushes them to the server-read queue
// until the connection closes, at which point it pushes a synthetic
// {type:disconnect} so PlayerEndpoint.Recv treats peer loss uniformly
// whether the client or the network closed first (spec §4.2).
func (b *Bridge) pumpIn(ctx context.Context, conn *websocket.Conn, in *broker.MessageQueue, playerID string) {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[Bridge %s] read error: %v", playerID, err)
			}
			_ = in.Push(ctx, map[string]any{"type": "disconnect"})
			return
		}
		var msg map[string]any
		if err := json.Unmarshal(raw, &msg); err != nil {
			log.Printf("[Bridge %s] dropping malformed frame: %v", playerID, err)
			continue
		}
		if err := in.Push(ctx, msg); err != nil {
			log.Printf("[Bridge %s] forward failed: %v", playerID, err)
			return
		}
	}
}

// pumpOut polls the server-write queue and relays every message to
// the WebSocket connection until done fires or ctx is cancelled.
func (b *Bridge) pumpOut(ctx context.Context, conn *websocket.Conn, out *broker.MessageQueue, done chan struct{}) {
	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		default:
		}

		msg, err := out.Pop(ctx, time.Now().Add(outPopInterval))
		if err != nil {
			if apperr.IsTimeout(err) {
				continue
			}
			return
		}
		if err := conn.WriteJSON(msg); err != nil {
			return
		}
	}
}
