package broker

import (
	"context"
	"sync"
	"time"
)

// MemoryBroker is an in-process Broker for tests and single-node
// deployments: a mutex-protected map of deques. The TTL argument is
// ignored; queues never expire and live until the process exits.
type MemoryBroker struct {
	mu     sync.Mutex
	queues map[string][][]byte
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{queues: make(map[string][][]byte)}
}

func (m *MemoryBroker) LPush(_ context.Context, queue string, payload []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queues[queue] = append([][]byte{payload}, m.queues[queue]...)
	return nil
}

func (m *MemoryBroker) RPop(_ context.Context, queue string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q := m.queues[queue]
	if len(q) == 0 {
		return nil, false, nil
	}
	last := len(q) - 1
	v := q[last]
	m.queues[queue] = q[:last]
	return v, true, nil
}
