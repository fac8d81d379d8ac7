// Package broker provides the FIFO message-queue substrate the
// engine treats each player as a pair of (spec §4.1): push appends at
// the left, pop polls the right with a short cooperative sleep.
package broker

import (
	"context"
	"time"
)

// Broker is the minimal primitive the rest of the stack needs: a
// named FIFO with TTL, shared across however many server processes
// sit in front of it.
type Broker interface {
	// LPush appends payload to the left of queue and refreshes its TTL.
	LPush(ctx context.Context, queue string, payload []byte, ttl time.Duration) error
	// RPop removes and returns the rightmost element of queue, or
	// (nil, false) if the queue is currently empty.
	RPop(ctx context.Context, queue string) ([]byte, bool, error)
}
