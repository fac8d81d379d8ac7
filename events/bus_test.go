package events

import "testing"

type recordingSubscriber struct {
	received []Event
}

func (r *recordingSubscriber) OnEvent(e Event) {
	r.received = append(r.received, e)
}

func TestBus_PublishFansOutToAllSubscribers(t *testing.T) {
	bus := NewBus()
	a := &recordingSubscriber{}
	b := &recordingSubscriber{}
	bus.Subscribe(a)
	bus.Subscribe(b)

	bus.Publish(New(TypeBet, "game-1", map[string]any{"amount": 10}))

	if len(a.received) != 1 || len(b.received) != 1 {
		t.Fatalf("expected both subscribers to receive one event, got a=%d b=%d", len(a.received), len(b.received))
	}
}

func TestBus_UnsubscribeStopsDelivery(t *testing.T) {
	bus := NewBus()
	a := &recordingSubscriber{}
	bus.Subscribe(a)
	bus.Unsubscribe(a)

	bus.Publish(New(TypeFold, "game-1", nil))

	if len(a.received) != 0 {
		t.Fatalf("expected no events after unsubscribe, got %d", len(a.received))
	}
}

func TestEvent_TargetedSetsTarget(t *testing.T) {
	e := New(TypeCardsAssignment, "game-1", nil).Targeted("player-1")
	if e.Target != "player-1" {
		t.Fatalf("expected target to be set, got %q", e.Target)
	}
}
