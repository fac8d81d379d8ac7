package session

import (
	"context"
	"log"
	"time"

	"holdem-broker/apperr"
	"holdem-broker/broker"
)

const (
	pingTimeout  = 2 * time.Second
	readyTimeout = 2 * time.Second
)

// PlayerEndpoint is the engine-side handle to a seated player:
// identity, chip state, and send/recv/ping/readiness over a broker
// Channel (spec §4.2).
type PlayerEndpoint struct {
	Identity  Identity
	channel   broker.Channel
	connected bool
}

func NewPlayerEndpoint(id Identity, ch broker.Channel) *PlayerEndpoint {
	return &PlayerEndpoint{Identity: id, channel: ch, connected: true}
}

func (e *PlayerEndpoint) Connected() bool { return e.connected }

// Channel exposes the endpoint's current queue pair, e.g. for Rejoin
// to splice a reconnecting player's new channel into its seat.
func (e *PlayerEndpoint) Channel() broker.Channel { return e.channel }

// UpdateChannel rebinds the queues on reconnection; identity and
// chips are preserved, the old channel's queues are simply dropped by
// the caller (their TTL will expire them broker-side).
func (e *PlayerEndpoint) UpdateChannel(ch broker.Channel) {
	e.channel = ch
	e.connected = true
}

func (e *PlayerEndpoint) Send(ctx context.Context, msg map[string]any) error {
	return e.channel.Out.Push(ctx, msg)
}

// TrySend swallows broker errors — used for best-effort broadcast
// where one dead recipient must not stall delivery to the rest.
func (e *PlayerEndpoint) TrySend(ctx context.Context, msg map[string]any) bool {
	if err := e.Send(ctx, msg); err != nil {
		log.Printf("[endpoint %s] try_send dropped: %v", e.Identity.ID, err)
		return false
	}
	return true
}

// Recv waits for the next inbound message. A {type:disconnect}
// envelope is converted into a BrokerError so callers treat peer loss
// uniformly regardless of whether the transport or the client closed
// first.
func (e *PlayerEndpoint) Recv(ctx context.Context, deadline time.Time) (map[string]any, error) {
	msg, err := e.channel.In.Pop(ctx, deadline)
	if err != nil {
		return nil, err
	}
	if t, _ := msg["type"].(string); t == "disconnect" {
		e.connected = false
		return nil, apperr.NewBrokerError("recv", errDisconnectEnvelope)
	}
	return msg, nil
}

var errDisconnectEnvelope = disconnectEnvelopeError{}

type disconnectEnvelopeError struct{}

func (disconnectEnvelopeError) Error() string { return "peer sent disconnect envelope" }

// Ping sends {type:ping} and expects {type:pong} within 2s; failure
// marks the endpoint disconnected.
func (e *PlayerEndpoint) Ping(ctx context.Context) bool {
	if err := e.Send(ctx, map[string]any{"type": "ping"}); err != nil {
		e.connected = false
		return false
	}
	msg, err := e.Recv(ctx, time.Now().Add(pingTimeout))
	if err != nil {
		e.connected = false
		return false
	}
	if t, _ := msg["type"].(string); t != "pong" {
		e.connected = false
		return false
	}
	return true
}

// RefreshReady sends {type:ping-state} and updates Ready from the
// reply's {type:ready-state-change, ready:bool}.
func (e *PlayerEndpoint) RefreshReady(ctx context.Context) bool {
	if err := e.Send(ctx, map[string]any{"type": "ping-state"}); err != nil {
		e.connected = false
		return false
	}
	msg, err := e.Recv(ctx, time.Now().Add(readyTimeout))
	if err != nil {
		e.connected = false
		return false
	}
	if t, _ := msg["type"].(string); t != "ready-state-change" {
		return false
	}
	ready, _ := msg["ready"].(bool)
	e.Identity.Ready = ready
	return true
}

func (e *PlayerEndpoint) Disconnect() {
	e.connected = false
}
