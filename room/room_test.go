package room

import (
	"context"
	"testing"
	"time"

	"holdem-broker/broker"
	"holdem-broker/events"
	"holdem-broker/holdem"
	"holdem-broker/repository"
	"holdem-broker/session"
)

func shortDeadline() time.Time {
	return time.Now().Add(100 * time.Millisecond)
}

func seatEndpoint(t *testing.T, b broker.Broker, id string, chips int64) *session.PlayerEndpoint {
	t.Helper()
	ch := broker.NewPlayerChannel(b, id, "sess-"+id)
	return session.NewPlayerEndpoint(session.Identity{ID: id, DisplayName: id, Chips: chips}, ch)
}

func newTestRoom() (*Room, broker.Broker) {
	mem := broker.NewMemoryBroker()
	repo := repository.NewMemoryRepository()
	mode := holdem.NewConfigFactory(holdem.DefaultConfig(6, 5, 10))
	return New("room-1", 6, mode, repo, true), mem
}

func TestRoom_AdmitFirstPlayerBecomesOwner(t *testing.T) {
	r, mem := newTestRoom()
	ctx := context.Background()

	epA := seatEndpoint(t, mem, "a", 1000)
	if err := r.Admit(ctx, epA); err != nil {
		t.Fatalf("admit a: %v", err)
	}

	if r.seats.OwnerID() != "a" {
		t.Fatalf("expected a to be owner, got %q", r.seats.OwnerID())
	}
	if r.SeatedCount() != 1 {
		t.Fatalf("expected 1 seated, got %d", r.SeatedCount())
	}
}

func TestRoom_AdmitDuplicateIDRejoinsInstead(t *testing.T) {
	r, mem := newTestRoom()
	ctx := context.Background()

	epA := seatEndpoint(t, mem, "a", 1000)
	if err := r.Admit(ctx, epA); err != nil {
		t.Fatalf("admit a: %v", err)
	}

	epA2 := seatEndpoint(t, mem, "a", 1000)
	if err := r.Admit(ctx, epA2); err != nil {
		t.Fatalf("rejoin a: %v", err)
	}

	if r.SeatedCount() != 1 {
		t.Fatalf("rejoin should not add a second seat, got %d seated", r.SeatedCount())
	}
}

func TestRoom_RemoveTransfersOwnershipToNextSeat(t *testing.T) {
	r, mem := newTestRoom()
	ctx := context.Background()

	epA := seatEndpoint(t, mem, "a", 1000)
	epB := seatEndpoint(t, mem, "b", 1000)
	if err := r.Admit(ctx, epA); err != nil {
		t.Fatalf("admit a: %v", err)
	}
	if err := r.Admit(ctx, epB); err != nil {
		t.Fatalf("admit b: %v", err)
	}

	if err := r.Remove(ctx, "a"); err != nil {
		t.Fatalf("remove a: %v", err)
	}
	if r.seats.OwnerID() != "b" {
		t.Fatalf("expected b to inherit ownership, got %q", r.seats.OwnerID())
	}
}

func TestRoom_SwitchModeRefusedForNonOwner(t *testing.T) {
	r, mem := newTestRoom()
	ctx := context.Background()
	epA := seatEndpoint(t, mem, "a", 1000)
	if err := r.Admit(ctx, epA); err != nil {
		t.Fatalf("admit a: %v", err)
	}

	newMode := holdem.NewConfigFactory(holdem.DefaultConfig(6, 10, 20))
	if err := r.SwitchMode("someone-else", newMode); err != ErrNotOwner {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}

func TestRoom_SwitchModeAcceptedBetweenHandsForOwner(t *testing.T) {
	r, mem := newTestRoom()
	ctx := context.Background()
	epA := seatEndpoint(t, mem, "a", 1000)
	if err := r.Admit(ctx, epA); err != nil {
		t.Fatalf("admit a: %v", err)
	}

	newMode := holdem.NewConfigFactory(holdem.DefaultConfig(6, 10, 20))
	if err := r.SwitchMode("a", newMode); err != nil {
		t.Fatalf("expected mode switch to succeed, got %v", err)
	}
}

func TestRoom_SwitchModeRefusedDuringHand(t *testing.T) {
	r, mem := newTestRoom()
	ctx := context.Background()
	epA := seatEndpoint(t, mem, "a", 1000)
	if err := r.Admit(ctx, epA); err != nil {
		t.Fatalf("admit a: %v", err)
	}

	r.mu.Lock()
	r.handRunning = true
	r.mu.Unlock()

	newMode := holdem.NewConfigFactory(holdem.DefaultConfig(6, 10, 20))
	if err := r.SwitchMode("a", newMode); err != ErrModeSwitchDuringHand {
		t.Fatalf("expected ErrModeSwitchDuringHand, got %v", err)
	}
}

func TestRoom_OnEventBroadcastsToSeatedEndpointsAndRespectsTarget(t *testing.T) {
	r, mem := newTestRoom()
	ctx := context.Background()
	epA := seatEndpoint(t, mem, "a", 1000)
	epB := seatEndpoint(t, mem, "b", 1000)
	if err := r.Admit(ctx, epA); err != nil {
		t.Fatalf("admit a: %v", err)
	}
	if err := r.Admit(ctx, epB); err != nil {
		t.Fatalf("admit b: %v", err)
	}

	// Drain the room-update notices Admit pushed to both queues.
	for _, ep := range []*session.PlayerEndpoint{epA, epB} {
		for {
			if _, err := ep.Channel().Out.Pop(ctx, shortDeadline()); err != nil {
				break
			}
		}
	}

	r.OnEvent(events.New(events.TypeCardsAssignment, "game-1", map[string]any{"hole_cards": []string{"Ah"}}).Targeted("a"))

	msgA, err := epA.Channel().Out.Pop(ctx, shortDeadline())
	if err != nil {
		t.Fatalf("pop for a: %v", err)
	}
	if msgA["event"] != events.TypeCardsAssignment {
		t.Fatalf("unexpected event for a: %v", msgA)
	}

	if _, err := epB.Channel().Out.Pop(ctx, shortDeadline()); err == nil {
		t.Fatalf("expected b to receive nothing from a targeted event")
	}
}

func TestRoom_ReplayLogSkipsEventsTargetedAtOthers(t *testing.T) {
	r, mem := newTestRoom()
	ctx := context.Background()
	epA := seatEndpoint(t, mem, "a", 1000)
	if err := r.Admit(ctx, epA); err != nil {
		t.Fatalf("admit a: %v", err)
	}

	r.OnEvent(events.New(events.TypeCardsAssignment, "game-1", map[string]any{"hole_cards": []string{"Ah"}}).Targeted("a"))
	r.OnEvent(events.New(events.TypeBet, "game-1", map[string]any{"player": "a", "amount": 10}))

	epB := seatEndpoint(t, mem, "b", 1000)
	if err := r.Admit(ctx, epB); err != nil {
		t.Fatalf("admit b: %v", err)
	}

	sawTargetedCards := false
	for {
		msg, err := epB.Channel().Out.Pop(ctx, shortDeadline())
		if err != nil {
			break
		}
		if msg["event"] == events.TypeCardsAssignment {
			sawTargetedCards = true
		}
	}
	if sawTargetedCards {
		t.Fatalf("expected b's replay to skip a's targeted cards-assignment event")
	}
}
