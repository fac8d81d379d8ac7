package holdem

import (
	"context"
	"testing"
)

func newActivePlayer(id string, chips, streetBet int64) *Player {
	p := NewPlayer(id, id, chips+streetBet, 0)
	p.PlaceBet(streetBet)
	return p
}

func TestBetRounder_FoldIsHonored(t *testing.T) {
	a := newActivePlayer("a", 995, 5)  // dealer/small blind
	b := newActivePlayer("b", 990, 10) // big blind
	players := map[string]*Player{"a": a, "b": b}
	order := []string{"b", "a"} // heads-up: bb first, dealer(sb) last

	rounder := &BetRounder{
		Order:      order,
		Players:    players,
		StartIndex: 1, // heads-up pre-flop: dealer (small blind) acts first
		BlindRound: true,
		RequestBet: func(ctx context.Context, p *Player, min, max int64) (int64, BetOutcome) {
			return -1, OutcomeFold
		},
	}
	_, err := rounder.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !a.Folded() {
		t.Fatalf("expected dealer to be folded")
	}
}

func TestBetRounder_CallAroundEndsWhenActionReturnsToOpener(t *testing.T) {
	a := newActivePlayer("a", 990, 10)
	b := newActivePlayer("b", 995, 5)
	c := newActivePlayer("c", 1000, 0)
	players := map[string]*Player{"a": a, "b": b, "c": c}
	order := []string{"c", "b", "a"} // c has not bet, b has 5 in, a has 10 in; c acts first

	calls := 0
	rounder := &BetRounder{
		Order:      order,
		Players:    players,
		StartIndex: 0,
		RequestBet: func(ctx context.Context, p *Player, min, max int64) (int64, BetOutcome) {
			calls++
			return min, OutcomeAmount
		},
	}
	best, err := rounder.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if best == "" {
		t.Fatalf("expected a best player id")
	}
	if calls == 0 {
		t.Fatalf("expected request_bet to be invoked")
	}
	if a.Bet() != 10 || b.Bet() != 10 || c.Bet() != 10 {
		t.Fatalf("expected all ledgers to equal the big blind after calls, got a=%d b=%d c=%d", a.Bet(), b.Bet(), c.Bet())
	}
}

func TestBetRounder_RaiseExtendsRoundUntilBackToRaiser(t *testing.T) {
	a := newActivePlayer("a", 1000, 0)
	b := newActivePlayer("b", 1000, 0)
	players := map[string]*Player{"a": a, "b": b}
	order := []string{"a", "b"}

	seenByA := 0
	rounder := &BetRounder{
		Order:      order,
		Players:    players,
		StartIndex: 0,
		RequestBet: func(ctx context.Context, p *Player, min, max int64) (int64, BetOutcome) {
			if p.ID == "a" {
				seenByA++
				if seenByA == 1 {
					return 20, OutcomeAmount // raise
				}
				return min, OutcomeAmount // call the re-raise... none here, just close
			}
			return 20, OutcomeAmount // call a's raise
		},
	}
	best, err := rounder.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if best != "a" {
		t.Fatalf("expected a to be best_player after raising, got %s", best)
	}
	if a.Bet() != 20 || b.Bet() != 20 {
		t.Fatalf("expected both to have matched the raise, got a=%d b=%d", a.Bet(), b.Bet())
	}
}
