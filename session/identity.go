// Package session implements the engine-side player handle and the
// per-room seat/identity map (spec §3 Player/PlayerEndpoint/SeatTable,
// §4.2, §4.3).
package session

// Identity is the persistent half of a seated player: the part that
// survives a reconnect and outlives any single hand. The engine's
// per-hand chip/bet state (holdem.Player) is rebuilt from this at the
// start of each hand and reconciled back into it at payout.
type Identity struct {
	ID          string
	DisplayName string
	Chips       int64
	LoanCount   int
	Ready       bool
}
