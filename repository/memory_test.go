package repository

import (
	"context"
	"testing"
)

func TestMemoryRepository_LoadProfileDefaultsStartingChips(t *testing.T) {
	repo := NewMemoryRepository()
	p, err := repo.LoadProfile(context.Background(), "alice")
	if err != nil {
		t.Fatalf("load profile: %v", err)
	}
	if p.Chips != 1000 {
		t.Fatalf("expected default 1000 chips, got %d", p.Chips)
	}
}

func TestMemoryRepository_PersistHandAccumulates(t *testing.T) {
	repo := NewMemoryRepository()
	repo.Seed("bob", Profile{Chips: 500, DisplayName: "bob"})

	if err := repo.PersistHand(context.Background(), "bob", 200, 1, 1); err != nil {
		t.Fatalf("persist hand: %v", err)
	}

	p, _ := repo.LoadProfile(context.Background(), "bob")
	if p.Chips != 700 || p.LoanCount != 1 || p.HandsPlayed != 1 {
		t.Fatalf("unexpected profile after persist: %+v", p)
	}
}

func TestMemoryRepository_FetchRankingOrdersByChipsDescending(t *testing.T) {
	repo := NewMemoryRepository()
	repo.Seed("low", Profile{Chips: 100, DisplayName: "low"})
	repo.Seed("high", Profile{Chips: 900, DisplayName: "high"})

	ranking, err := repo.FetchRanking(context.Background())
	if err != nil {
		t.Fatalf("fetch ranking: %v", err)
	}
	if len(ranking) != 2 || ranking[0].Name != "high" {
		t.Fatalf("expected high-chip player first, got %+v", ranking)
	}
}
