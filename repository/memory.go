package repository

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepository keeps profiles in process memory. Used for tests
// and for REPO_MODE=memory deployments with no persistence story.
type MemoryRepository struct {
	mu       sync.Mutex
	profiles map[string]Profile
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{profiles: make(map[string]Profile)}
}

// Seed preloads a profile, e.g. for tests that assert a starting
// chip count without going through LoadProfile's default-profile path.
func (m *MemoryRepository) Seed(userID string, p Profile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[userID] = p
}

func (m *MemoryRepository) LoadProfile(_ context.Context, userID string) (Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[userID]
	if !ok {
		p = Profile{Chips: 1000, DisplayName: userID}
		m.profiles[userID] = p
	}
	return p, nil
}

func (m *MemoryRepository) PersistHand(_ context.Context, playerID string, chipDelta int64, loanDelta int, handsDelta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.profiles[playerID]
	p.Chips += chipDelta
	p.LoanCount += loanDelta
	p.HandsPlayed += handsDelta
	m.profiles[playerID] = p
	return nil
}

func (m *MemoryRepository) FetchRanking(_ context.Context) ([]RankingEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := make([]RankingEntry, 0, len(m.profiles))
	for _, p := range m.profiles {
		bb100 := 0.0
		if p.HandsPlayed > 0 {
			bb100 = float64(p.Chips) / float64(p.HandsPlayed) / 100
		}
		entries = append(entries, RankingEntry{
			Name:        p.DisplayName,
			Chips:       p.Chips,
			BB100:       bb100,
			HandsPlayed: p.HandsPlayed,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Chips > entries[j].Chips })
	return entries, nil
}
