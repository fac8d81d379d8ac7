package broker

import (
	"context"
	"encoding/json"
	"time"

	"holdem-broker/apperr"
)

const (
	// DefaultTTL is refreshed on every push so an idle queue (an
	// abandoned session) self-collects server-side state.
	DefaultTTL = 300 * time.Second

	pollInterval = 10 * time.Millisecond
)

// MessageQueue is a named FIFO over a shared Broker, JSON-encoded,
// TTL-refreshed (spec §4.1).
type MessageQueue struct {
	broker Broker
	name   string
	ttl    time.Duration
}

func NewMessageQueue(b Broker, name string) *MessageQueue {
	return &MessageQueue{broker: b, name: name, ttl: DefaultTTL}
}

func (q *MessageQueue) Name() string { return q.name }

// Push serializes msg to JSON and appends it, refreshing the TTL.
func (q *MessageQueue) Push(ctx context.Context, msg any) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return apperr.FormatError(err.Error())
	}
	if err := q.broker.LPush(ctx, q.name, payload, q.ttl); err != nil {
		return apperr.NewBrokerError("push", err)
	}
	return nil
}

// Pop polls the queue until a message arrives or deadline passes. An
// empty queue is retried every 10ms — a deliberate portability
// choice; a broker with a native blocking pop should prefer it but
// must still honor the deadline (spec §9).
func (q *MessageQueue) Pop(ctx context.Context, deadline time.Time) (map[string]any, error) {
	for {
		payload, ok, err := q.broker.RPop(ctx, q.name)
		if err != nil {
			return nil, apperr.NewBrokerError("pop", err)
		}
		if ok {
			var msg map[string]any
			if err := json.Unmarshal(payload, &msg); err != nil {
				return nil, apperr.FormatError(err.Error())
			}
			return msg, nil
		}
		if time.Now().After(deadline) {
			return nil, apperr.ErrTimeout
		}
		select {
		case <-ctx.Done():
			return nil, apperr.NewBrokerError("pop", ctx.Err())
		case <-time.After(pollInterval):
		}
	}
}
