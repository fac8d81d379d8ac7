package holdem

import "context"

// BetOutcome classifies what a request_bet callback returned for one
// player's turn (spec §4.4).
type BetOutcome byte

const (
	OutcomeAmount BetOutcome = iota
	OutcomeFold
	OutcomeDead
)

// RequestBetFunc prompts one player for an action within [min, max]
// and returns either a call/raise amount, OutcomeFold (sentinel -1 on
// the wire), or OutcomeDead (timeout / malformed).
type RequestBetFunc func(ctx context.Context, player *Player, min, max int64) (amount int64, outcome BetOutcome)

// OnResultFunc is notified of every settled action, valid or not, so
// the engine can broadcast the corresponding bet/fold/dead-player
// event.
type OnResultFunc func(player *Player, outcome BetOutcome, amount int64)

// BetRounder drives one street of betting over a fixed seat order
// (spec §4.4). Order must already reflect the traversal the caller
// wants — the pre-flop street passes the full dealer-last round
// starting after the big blind; later streets start at Order[0].
type BetRounder struct {
	Order        []string
	Players      map[string]*Player
	StartIndex   int
	BlindRound   bool
	RequestBet   RequestBetFunc
	OnResult     OnResultFunc
}

// Run executes the round and returns the id of best_player: the last
// player whose bet strictly exceeded min_bet at their turn, or the
// first player to act if nobody raised.
func (r *BetRounder) Run(ctx context.Context) (string, error) {
	n := len(r.Order)
	if n == 0 {
		return "", ErrNoSeats
	}

	idx := r.StartIndex % n
	bestPlayerID := r.Order[idx]
	streak := 0

	for {
		ac := r.activeCount()
		if ac <= 1 {
			break
		}

		id := r.Order[idx]
		p := r.Players[id]
		if p.Active() {
			maxBet := r.maxBetFor(p)
			minBet := r.minBetFor(p)

			if maxBet <= 0 {
				streak++
			} else {
				amount, outcome := r.RequestBet(ctx, p, minBet, maxBet)
				switch outcome {
				case OutcomeFold:
					p.Fold()
					streak++
				case OutcomeDead:
					p.MarkDead()
					streak++
				default:
					if amount < 0 {
						amount = 0
					}
					if amount > maxBet {
						amount = maxBet
					}
					p.PlaceBet(amount)
					if amount > minBet {
						bestPlayerID = id
						streak = 1
					} else {
						streak++
					}
				}
				if r.OnResult != nil {
					r.OnResult(p, outcome, amount)
				}
			}
		}

		idx = (idx + 1) % n
		if streak >= ac {
			break
		}
	}

	return bestPlayerID, nil
}

func (r *BetRounder) activeCount() int {
	c := 0
	for _, id := range r.Order {
		if r.Players[id].Active() {
			c++
		}
	}
	return c
}

// maxBetFor is min(player.chips, max over other active players of
// (their_chips + their_ledger) - player.ledger).
func (r *BetRounder) maxBetFor(p *Player) int64 {
	var maxOther int64 = -1
	for _, id := range r.Order {
		other := r.Players[id]
		if other == p || !other.Active() {
			continue
		}
		v := other.Chips + other.Bet()
		if v > maxOther {
			maxOther = v
		}
	}
	if maxOther < 0 {
		return 0
	}
	cap := maxOther - p.Bet()
	if cap < 0 {
		cap = 0
	}
	if p.Chips < cap {
		return p.Chips
	}
	return cap
}

// minBetFor is min(max over active ledgers - player.ledger, player.chips).
func (r *BetRounder) minBetFor(p *Player) int64 {
	var maxLedger int64
	for _, id := range r.Order {
		other := r.Players[id]
		if !other.Active() {
			continue
		}
		if other.Bet() > maxLedger {
			maxLedger = other.Bet()
		}
	}
	need := maxLedger - p.Bet()
	if need < 0 {
		need = 0
	}
	if need > p.Chips {
		return p.Chips
	}
	return need
}
