package broker

import (
	"context"
	"testing"
	"time"
)

func TestMessageQueue_PushThenPopRoundTrips(t *testing.T) {
	b := NewMemoryBroker()
	q := NewMessageQueue(b, "test-queue")

	if err := q.Push(context.Background(), map[string]any{"type": "ping"}); err != nil {
		t.Fatalf("push: %v", err)
	}

	msg, err := q.Pop(context.Background(), time.Now().Add(time.Second))
	if err != nil {
		t.Fatalf("pop: %v", err)
	}
	if msg["type"] != "ping" {
		t.Fatalf("expected type=ping, got %v", msg["type"])
	}
}

func TestMessageQueue_PopTimesOutOnEmptyQueue(t *testing.T) {
	b := NewMemoryBroker()
	q := NewMessageQueue(b, "empty-queue")

	_, err := q.Pop(context.Background(), time.Now().Add(20*time.Millisecond))
	if err == nil {
		t.Fatalf("expected a timeout error")
	}
}

func TestMessageQueue_FIFOOrder(t *testing.T) {
	b := NewMemoryBroker()
	q := NewMessageQueue(b, "fifo-queue")

	for i := 0; i < 3; i++ {
		if err := q.Push(context.Background(), map[string]any{"seq": i}); err != nil {
			t.Fatalf("push %d: %v", i, err)
		}
	}

	for i := 0; i < 3; i++ {
		msg, err := q.Pop(context.Background(), time.Now().Add(time.Second))
		if err != nil {
			t.Fatalf("pop %d: %v", i, err)
		}
		if int(msg["seq"].(float64)) != i {
			t.Fatalf("expected seq=%d, got %v", i, msg["seq"])
		}
	}
}
