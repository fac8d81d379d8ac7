// Package repository is the profile/ranking store contract the core
// treats as a black box (spec §4.6 Persistence, §6 Repository
// contract). The core logs repository errors but never retries them.
package repository

import "context"

// Profile is what load_profile resolves for a connecting player —
// their durable chip count, loan history, and hand count.
type Profile struct {
	Chips       int64
	LoanCount   int
	HandsPlayed int
	DisplayName string
}

// RankingEntry is one row of a ranking snapshot.
type RankingEntry struct {
	Name      string
	Chips     int64
	BB100     float64
	HandsPlayed int
}

// Repository is the durable user/stats store. Implementations
// (Postgres, SQLite, in-memory) are picked by the process entry point
// from an environment variable and injected into the lobby and the
// hand engine via constructor parameters — never reached for from
// deep components (spec §9).
type Repository interface {
	LoadProfile(ctx context.Context, userID string) (Profile, error)
	PersistHand(ctx context.Context, playerID string, chipDelta int64, loanDelta int, handsDelta int) error
	FetchRanking(ctx context.Context) ([]RankingEntry, error)
}
