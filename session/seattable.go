package session

import "holdem-broker/apperr"

// SeatTable is the fixed-capacity ordered slot vector for one room:
// each slot is empty or holds a player id, plus a side map to the
// live endpoint and an owner id (spec §3, §4.3).
type SeatTable struct {
	seats   []string // "" marks an empty seat
	byID    map[string]*PlayerEndpoint
	ownerID string
}

func NewSeatTable(size int) *SeatTable {
	return &SeatTable{
		seats: make([]string, size),
		byID:  make(map[string]*PlayerEndpoint),
	}
}

func (t *SeatTable) Size() int { return len(t.seats) }

func (t *SeatTable) OwnerID() string { return t.ownerID }

// Add places endpoint in the lowest-index empty seat, or fails
// RoomFull. A duplicate id fails Duplicate; callers convert that into
// a rejoin via Rejoin.
func (t *SeatTable) Add(endpoint *PlayerEndpoint) (seatIndex int, err error) {
	id := endpoint.Identity.ID
	if _, exists := t.byID[id]; exists {
		return -1, apperr.ErrDuplicate
	}
	for i, occupant := range t.seats {
		if occupant == "" {
			t.seats[i] = id
			t.byID[id] = endpoint
			if t.ownerID == "" {
				t.ownerID = id
			}
			return i, nil
		}
	}
	return -1, apperr.ErrRoomFull
}

// Rejoin replaces the channel of an already-seated player, preserving
// identity and chips and leaving the seat index unchanged (spec S6).
func (t *SeatTable) Rejoin(id string, newEndpoint *PlayerEndpoint) error {
	existing, ok := t.byID[id]
	if !ok {
		return apperr.ErrUnknownPlayer
	}
	existing.UpdateChannel(newEndpoint.Channel())
	existing.Identity.DisplayName = newEndpoint.Identity.DisplayName
	return nil
}

// Remove frees id's seat. If id was owner, ownership passes to the
// next occupied seat in order.
func (t *SeatTable) Remove(id string) error {
	endpoint, ok := t.byID[id]
	if !ok {
		return apperr.ErrUnknownPlayer
	}
	_ = endpoint
	idx := -1
	for i, occupant := range t.seats {
		if occupant == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return apperr.ErrUnknownPlayer
	}
	t.seats[idx] = ""
	delete(t.byID, id)

	if t.ownerID == id {
		t.ownerID = t.nextOccupiedAfter(idx)
	}
	return nil
}

func (t *SeatTable) nextOccupiedAfter(idx int) string {
	n := len(t.seats)
	for step := 1; step <= n; step++ {
		i := (idx + step) % n
		if t.seats[i] != "" {
			return t.seats[i]
		}
	}
	return ""
}

func (t *SeatTable) Endpoint(id string) (*PlayerEndpoint, bool) {
	e, ok := t.byID[id]
	return e, ok
}

func (t *SeatTable) SeatedCount() int {
	n := 0
	for _, occupant := range t.seats {
		if occupant != "" {
			n++
		}
	}
	return n
}

// SeatIndex returns the seat holding id, or -1.
func (t *SeatTable) SeatIndex(id string) int {
	for i, occupant := range t.seats {
		if occupant == id {
			return i
		}
	}
	return -1
}

// IDAtSeat returns the occupant of seat i, or "" if empty.
func (t *SeatTable) IDAtSeat(i int) string {
	if i < 0 || i >= len(t.seats) {
		return ""
	}
	return t.seats[i]
}

// Round enumerates seated ids starting such that dealerID appears
// last: small blind first, big blind second, dealer last. Round
// applies no heads-up special case: with two seated players it yields
// [other, dealer], and HandEngine.blindSeats makes the dealer the
// small blind and the other player the big blind.
func (t *SeatTable) Round(dealerID string) []string {
	dealerIdx := t.SeatIndex(dealerID)
	if dealerIdx == -1 {
		return nil
	}
	n := len(t.seats)
	order := make([]string, 0, t.SeatedCount())
	for step := 1; step <= n; step++ {
		i := (dealerIdx + step) % n
		if t.seats[i] != "" {
			order = append(order, t.seats[i])
		}
	}
	return order
}

// AllIDs returns every seated id in physical seat order.
func (t *SeatTable) AllIDs() []string {
	ids := make([]string, 0, t.SeatedCount())
	for _, occupant := range t.seats {
		if occupant != "" {
			ids = append(ids, occupant)
		}
	}
	return ids
}
