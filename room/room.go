// Package room implements the per-table hand loop: liveness and
// readiness gating, dealer rotation, mode switching between hands, and
// broadcasting the hand engine's events back into every seated
// endpoint's outbound queue (spec §4.7).
package room

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"holdem-broker/apperr"
	"holdem-broker/events"
	"holdem-broker/holdem"
	"holdem-broker/repository"
	"holdem-broker/session"
)

const idleLoopPause = time.Second

// Room owns one SeatTable and drives one hand after another across a
// changing set of seated players. It is itself a GameSubscriber: it
// subscribes to the per-hand EventBus immediately before PlayHand and
// unsubscribes immediately after, so the Room<->HandEngine reference
// cycle never outlives one hand (spec §9).
type Room struct {
	ID      string
	Public  bool
	Repo    repository.Repository

	mu          sync.Mutex
	seats       *session.SeatTable
	mode        holdem.GameFactory
	active      bool
	handRunning bool
	dealerIdx   int
	eventLog    []events.Event

	done chan struct{}
}

// New constructs a Room with the given seat capacity and starting
// game mode. Public rooms are offered to connections with no
// requested room_id; private rooms are only reachable by their id.
func New(id string, capacity int, mode holdem.GameFactory, repo repository.Repository, public bool) *Room {
	return &Room{
		ID:     id,
		Public: public,
		Repo:   repo,
		seats:  session.NewSeatTable(capacity),
		mode:   mode,
		active: true,
		done:   make(chan struct{}),
	}
}

func (r *Room) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

func (r *Room) SeatedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seats.SeatedCount()
}

func (r *Room) Full() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seats.SeatedCount() >= r.seats.Size()
}

// Admit places endpoint in the room, converting a duplicate id into a
// rejoin, and broadcasts the corresponding room-update sub-event
// (spec §4.3, §6).
func (r *Room) Admit(ctx context.Context, endpoint *session.PlayerEndpoint) error {
	r.mu.Lock()
	if !r.active {
		r.mu.Unlock()
		return ErrInactive
	}

	priorOwner := r.seats.OwnerID()
	_, err := r.seats.Add(endpoint)
	subEvent := events.SubEventPlayerAdded
	if err == apperr.ErrDuplicate {
		err = r.seats.Rejoin(endpoint.Identity.ID, endpoint)
		subEvent = events.SubEventPlayerRejoined
	}
	if err != nil {
		r.mu.Unlock()
		return err
	}
	newOwner := r.seats.OwnerID()
	r.mu.Unlock()

	r.broadcastNow(ctx, events.New(events.TypeRoomUpdate, "", map[string]any{
		"sub_event": subEvent,
		"player":    endpoint.Identity.ID,
	}))
	r.replayLogTo(ctx, endpoint)
	if priorOwner != newOwner {
		r.broadcastNow(ctx, events.New(events.TypeRoomUpdate, "", map[string]any{
			"sub_event": events.SubEventOwnerAssigned,
			"player":    newOwner,
		}))
	}
	return nil
}

// Remove frees id's seat, transferring ownership if needed.
func (r *Room) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	priorOwner := r.seats.OwnerID()
	err := r.seats.Remove(id)
	if err != nil {
		r.mu.Unlock()
		return err
	}
	newOwner := r.seats.OwnerID()
	r.mu.Unlock()

	r.broadcastNow(ctx, events.New(events.TypeRoomUpdate, "", map[string]any{
		"sub_event": events.SubEventPlayerRemoved,
		"player":    id,
	}))
	if priorOwner != newOwner && newOwner != "" {
		r.broadcastNow(ctx, events.New(events.TypeRoomUpdate, "", map[string]any{
			"sub_event": events.SubEventOwnerAssigned,
			"player":    newOwner,
		}))
	}
	return nil
}

// SwitchMode swaps the GameFactory the next hand will snapshot.
// Refused while a hand is in progress, or from anyone but the owner
// (spec §4.7).
func (r *Room) SwitchMode(requesterID string, mode holdem.GameFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if requesterID != r.seats.OwnerID() {
		return ErrNotOwner
	}
	if r.handRunning {
		return ErrModeSwitchDuringHand
	}
	r.mode = mode
	return nil
}

// OnEvent implements events.GameSubscriber: it broadcasts into every
// seated endpoint's outbound queue (or only the Target endpoint, for
// a targeted event) and appends the event to the log tail that late
// joiners replay against.
func (r *Room) OnEvent(e events.Event) {
	ctx := context.Background()
	r.mu.Lock()
	r.eventLog = append(r.eventLog, e)
	if e.Type == events.TypeGameOver {
		r.eventLog = nil
	}
	ids := r.seats.AllIDs()
	endpoints := make([]*session.PlayerEndpoint, 0, len(ids))
	for _, id := range ids {
		if e.Target != "" && e.Target != id {
			continue
		}
		if ep, ok := r.seats.Endpoint(id); ok {
			endpoints = append(endpoints, ep)
		}
	}
	r.mu.Unlock()

	msg := eventMessage(e)
	for _, ep := range endpoints {
		ep.TrySend(ctx, msg)
	}
}

// broadcastNow publishes a room-level event (not hand-scoped) the
// same way OnEvent would, for admission/removal notices that happen
// outside any HandEngine's lifetime.
func (r *Room) broadcastNow(ctx context.Context, e events.Event) {
	r.mu.Lock()
	r.eventLog = append(r.eventLog, e)
	ids := r.seats.AllIDs()
	endpoints := make([]*session.PlayerEndpoint, 0, len(ids))
	for _, id := range ids {
		if ep, ok := r.seats.Endpoint(id); ok {
			endpoints = append(endpoints, ep)
		}
	}
	r.mu.Unlock()

	msg := eventMessage(e)
	for _, ep := range endpoints {
		ep.TrySend(ctx, msg)
	}
}

// replayLogTo replays the room's event-log tail to a newly admitted
// endpoint, skipping events targeted at a different id, so a mid-hand
// joiner sees a consistent view of the hand in progress (spec §4.7,
// property 9).
func (r *Room) replayLogTo(ctx context.Context, endpoint *session.PlayerEndpoint) {
	r.mu.Lock()
	tail := make([]events.Event, len(r.eventLog))
	copy(tail, r.eventLog)
	r.mu.Unlock()

	for _, e := range tail {
		if e.Target != "" && e.Target != endpoint.Identity.ID {
			continue
		}
		endpoint.TrySend(ctx, eventMessage(e))
	}
}

func eventMessage(e events.Event) map[string]any {
	msg := make(map[string]any, len(e.Data)+2)
	for k, v := range e.Data {
		msg[k] = v
	}
	msg["event"] = e.Type
	if e.GameID != "" {
		msg["game_id"] = e.GameID
	}
	return msg
}

// Run drives the hand loop until Stop is called or a GameError ends
// the room (spec §4.7): liveness sweep, readiness sweep, dealer
// rotation, one hand, persist, repeat.
func (r *Room) Run(ctx context.Context) {
	for {
		select {
		case <-r.done:
			return
		case <-ctx.Done():
			return
		default:
		}

		r.livenessSweep(ctx)
		r.readinessSweep(ctx)

		r.mu.Lock()
		ids := r.seats.AllIDs()
		notAllReady := false
		for _, id := range ids {
			if ep, ok := r.seats.Endpoint(id); ok && !ep.Identity.Ready {
				notAllReady = true
				break
			}
		}
		r.mu.Unlock()

		if len(ids) < 2 || notAllReady {
			select {
			case <-time.After(idleLoopPause):
			case <-r.done:
				return
			case <-ctx.Done():
				return
			}
			continue
		}

		if err := r.playOneHand(ctx, ids); err != nil {
			log.Printf("[Room %s] hand loop terminating: %v", r.ID, err)
			r.mu.Lock()
			r.active = false
			r.mu.Unlock()
			return
		}
	}
}

func (r *Room) playOneHand(ctx context.Context, ids []string) error {
	r.mu.Lock()
	r.dealerIdx = (r.dealerIdx + 1) % len(ids)
	dealerID := ids[r.dealerIdx]
	mode := r.mode
	r.handRunning = true
	r.mu.Unlock()

	bus := events.NewBus()
	deps := holdem.EngineDeps{Seats: r.seats, Bus: bus, Repo: r.Repo}
	engine, err := mode.NewHandEngine(deps)
	if err != nil {
		r.mu.Lock()
		r.handRunning = false
		r.mu.Unlock()
		return err
	}

	bus.Subscribe(r)
	err = engine.PlayHand(ctx, uuid.NewString(), dealerID)
	bus.Unsubscribe(r)

	r.mu.Lock()
	r.handRunning = false
	r.mu.Unlock()
	return err
}

// livenessSweep pings every seated endpoint concurrently and evicts
// any that fail, per spec §4.7 step 1.
func (r *Room) livenessSweep(ctx context.Context) {
	r.mu.Lock()
	ids := r.seats.AllIDs()
	endpoints := make(map[string]*session.PlayerEndpoint, len(ids))
	for _, id := range ids {
		if ep, ok := r.seats.Endpoint(id); ok {
			endpoints[id] = ep
		}
	}
	r.mu.Unlock()

	var wg sync.WaitGroup
	dead := make(chan string, len(endpoints))
	for id, ep := range endpoints {
		wg.Add(1)
		go func(id string, ep *session.PlayerEndpoint) {
			defer wg.Done()
			if !ep.Ping(ctx) {
				dead <- id
			}
		}(id, ep)
	}
	wg.Wait()
	close(dead)

	for id := range dead {
		_ = r.Remove(ctx, id)
	}
}

// readinessSweep refreshes every seated endpoint's ready flag
// concurrently, per spec §4.7 step 2.
func (r *Room) readinessSweep(ctx context.Context) {
	r.mu.Lock()
	ids := r.seats.AllIDs()
	endpoints := make([]*session.PlayerEndpoint, 0, len(ids))
	for _, id := range ids {
		if ep, ok := r.seats.Endpoint(id); ok {
			endpoints = append(endpoints, ep)
		}
	}
	r.mu.Unlock()

	var wg sync.WaitGroup
	for _, ep := range endpoints {
		wg.Add(1)
		go func(ep *session.PlayerEndpoint) {
			defer wg.Done()
			ep.RefreshReady(ctx)
		}(ep)
	}
	wg.Wait()
}

// Stop terminates the hand loop after the current hand, if any,
// finishes.
func (r *Room) Stop() {
	r.mu.Lock()
	r.active = false
	r.mu.Unlock()
	select {
	case <-r.done:
	default:
		close(r.done)
	}
}
