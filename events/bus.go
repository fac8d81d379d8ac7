package events

import "sync"

// GameSubscriber receives every event a Bus publishes. The room
// implements this to re-broadcast into seated endpoints' outbound
// queues; it subscribes immediately before play_hand and unsubscribes
// immediately after, so the Room<->HandEngine reference cycle never
// outlives one hand (spec §9).
type GameSubscriber interface {
	OnEvent(Event)
}

// Bus is a single-producer, multi-subscriber fan-out. The hand engine
// owns one per hand; subscribers are added and removed around the
// hand's lifetime rather than held long-term.
type Bus struct {
	mu   sync.RWMutex
	subs []GameSubscriber
}

func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) Subscribe(s GameSubscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, s)
}

func (b *Bus) Unsubscribe(s GameSubscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, sub := range b.subs {
		if sub == s {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	subs := make([]GameSubscriber, len(b.subs))
	copy(subs, b.subs)
	b.mu.RUnlock()

	for _, s := range subs {
		s.OnEvent(e)
	}
}
