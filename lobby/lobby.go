// Package lobby implements connection intake from the broker: it
// consumes the well-known lobby queue, resolves a connecting
// identity's profile, and routes it into a public or private room
// (spec §4.8).
package lobby

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"holdem-broker/apperr"
	"holdem-broker/broker"
	"holdem-broker/holdem"
	"holdem-broker/repository"
	"holdem-broker/room"
	"holdem-broker/session"
)

const connectTimeout = 30 * time.Second

// Lobby owns the room registry and the default game mode newly
// created public rooms start in.
type Lobby struct {
	Broker broker.Broker
	Repo   repository.Repository

	defaultMode holdem.GameFactory
	roomSize    int

	mu    sync.Mutex
	rooms map[string]*room.Room

	queue *broker.MessageQueue
}

func New(b broker.Broker, repo repository.Repository, defaultMode holdem.GameFactory, roomSize int) *Lobby {
	return &Lobby{
		Broker:      b,
		Repo:        repo,
		defaultMode: defaultMode,
		roomSize:    roomSize,
		rooms:       make(map[string]*room.Room),
		queue:       broker.NewMessageQueue(b, broker.LobbyQueueName),
	}
}

// Run pops connect messages off the lobby queue until ctx is
// cancelled. One malformed message never stalls the next — each is
// handled in its own goroutine bounded by connectTimeout.
func (l *Lobby) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		msg, err := l.queue.Pop(ctx, time.Now().Add(time.Second))
		if err != nil {
			if apperr.IsTimeout(err) {
				continue
			}
			log.Printf("[Lobby] pop failed: %v", err)
			continue
		}

		go l.handleConnect(msg)
	}
}

// handleConnect validates an inbound connect envelope, resolves the
// player's profile, builds its session Channel, and routes it into a
// room (spec §4.8, §6).
func (l *Lobby) handleConnect(msg map[string]any) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	sessionID, _ := msg["session_id"].(string)
	playerMsg, _ := msg["player"].(map[string]any)
	playerID, _ := playerMsg["id"].(string)
	playerName, _ := playerMsg["name"].(string)
	timeoutEpoch, _ := msg["timeout_epoch"].(float64)
	roomID, _ := msg["room_id"].(string)

	if sessionID == "" || playerID == "" {
		log.Printf("[Lobby] rejecting connect: missing session_id or player.id")
		return
	}
	if timeoutEpoch > 0 && time.Now().Unix() > int64(timeoutEpoch) {
		l.replyError(ctx, playerID, sessionID, "connect request expired")
		return
	}

	profile, err := l.Repo.LoadProfile(ctx, playerID)
	if err != nil {
		log.Printf("[Lobby] load_profile(%s) failed: %v", playerID, err)
		l.replyError(ctx, playerID, sessionID, "profile unavailable")
		return
	}
	displayName := profile.DisplayName
	if strings.TrimSpace(displayName) == "" {
		displayName = playerName
	}

	identity := session.Identity{
		ID:          playerID,
		DisplayName: displayName,
		Chips:       profile.Chips,
		LoanCount:   profile.LoanCount,
	}
	channel := broker.NewPlayerChannel(l.Broker, playerID, sessionID)
	endpoint := session.NewPlayerEndpoint(identity, channel)

	r, err := l.routeToRoom(roomID)
	if err != nil {
		log.Printf("[Lobby] routing failed for %s: %v", playerID, err)
		l.replyError(ctx, playerID, sessionID, err.Error())
		return
	}

	endpoint.TrySend(ctx, map[string]any{
		"type":      "connect",
		"server_id": r.ID,
		"player": map[string]any{
			"id":         playerID,
			"name":       displayName,
			"chips":      identity.Chips,
			"loan_count": identity.LoanCount,
		},
	})

	if err := r.Admit(ctx, endpoint); err != nil {
		log.Printf("[Lobby] admit failed for %s into %s: %v", playerID, r.ID, err)
		l.replyError(ctx, playerID, sessionID, err.Error())
		return
	}
}

// routeToRoom implements spec §4.8's routing rule: a present room_id
// gets-or-creates that private room; otherwise the first non-full
// public room is used, or a new public room is created.
func (l *Lobby) routeToRoom(roomID string) (*room.Room, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if roomID != "" {
		if r, ok := l.rooms[roomID]; ok {
			if !r.Active() {
				return nil, apperr.GameError("room is no longer active")
			}
			return r, nil
		}
		r := room.New(roomID, l.roomSize, l.defaultMode, l.Repo, false)
		l.rooms[roomID] = r
		go r.Run(context.Background())
		return r, nil
	}

	for _, r := range l.rooms {
		if r.Public && r.Active() && !r.Full() {
			return r, nil
		}
	}

	id := uuid.NewString()
	r := room.New(id, l.roomSize, l.defaultMode, l.Repo, true)
	l.rooms[id] = r
	go r.Run(context.Background())
	return r, nil
}

// replyError pushes {type:error} directly to a session's outbound
// queue — used before a PlayerEndpoint exists to route through, e.g.
// when admission itself fails (spec §7).
func (l *Lobby) replyError(ctx context.Context, playerID, sessionID, reason string) {
	_, outName := broker.QueueNames(playerID, sessionID)
	out := broker.NewMessageQueue(l.Broker, outName)
	if err := out.Push(ctx, map[string]any{"type": "error", "error": reason}); err != nil {
		log.Printf("[Lobby] failed to deliver error to %s: %v", playerID, err)
	}
}

// Room returns a registered room by id, for admin/test inspection.
func (l *Lobby) Room(id string) (*room.Room, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	r, ok := l.rooms[id]
	return r, ok
}

// Stop halts every room's hand loop.
func (l *Lobby) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, r := range l.rooms {
		r.Stop()
	}
}
