package holdem

import "holdem-broker/card"

// Player is one seated hand participant: identity, chip stack, and
// the per-hand state the engine mutates as the hand progresses.
// Chips never go negative; Take enforces that at the call site.
type Player struct {
	ID          string
	DisplayName string
	Chips       int64
	LoanCount   int

	Ready bool

	bet        int64
	allIn      bool
	folded     bool
	dead       bool
	holeCards  []card.Card
	bestScore  Score
	haveScore  bool
}

// NewPlayer constructs a seated player with the given identity and
// starting chip count, as resolved from the profile repository (the
// client never supplies its own chip count).
func NewPlayer(id, displayName string, chips int64, loanCount int) *Player {
	return &Player{ID: id, DisplayName: displayName, Chips: chips, LoanCount: loanCount}
}

// Take debits n chips. n must not exceed Chips; Take(0) is a legal
// no-op. A negative n or an overdraft returns an error and leaves
// Chips unchanged. Blind posting and bet settlement use PlaceBet,
// which clamps to the stack itself.
func (p *Player) Take(n int64) error {
	if n < 0 {
		return ErrInvalidState("negative take")
	}
	if n == 0 {
		return nil
	}
	if n > p.Chips {
		return ErrInvalidState("take exceeds chips")
	}
	p.Chips -= n
	return nil
}

// Add credits n chips, e.g. a pot payout or a loan grant.
func (p *Player) Add(n int64) {
	if n <= 0 {
		return
	}
	p.Chips += n
}

func (p *Player) ResetForNewHand() {
	p.bet = 0
	p.allIn = false
	p.folded = false
	p.dead = false
	p.holeCards = nil
	p.bestScore = Score{}
	p.haveScore = false
}

func (p *Player) Bet() int64    { return p.bet }
func (p *Player) AllIn() bool   { return p.allIn }
func (p *Player) Folded() bool  { return p.folded }
func (p *Player) Dead() bool    { return p.dead }
func (p *Player) Active() bool  { return !p.folded && !p.dead }
func (p *Player) HoleCards() []card.Card { return p.holeCards }

func (p *Player) DealHole(cards ...card.Card) {
	p.holeCards = append(p.holeCards, cards...)
}

func (p *Player) SetScore(s Score) {
	p.bestScore = s
	p.haveScore = true
}

func (p *Player) Score() (Score, bool) { return p.bestScore, p.haveScore }

// PlaceBet commits amount from the player's stack to their street
// ledger, clamping to the stack and flagging all-in when it is
// exhausted.
func (p *Player) PlaceBet(amount int64) int64 {
	if amount <= 0 {
		return 0
	}
	if amount >= p.Chips {
		amount = p.Chips
		p.allIn = true
	}
	p.Chips -= amount
	p.bet += amount
	return amount
}

func (p *Player) ResetStreetBet() { p.bet = 0 }

func (p *Player) Fold() { p.folded = true }

func (p *Player) MarkDead() {
	p.dead = true
	p.folded = true
}

// GrantLoan gives the player 1000 chips of last resort and records
// it against their loan count (spec §4.6).
func (p *Player) GrantLoan() {
	p.Chips += 1000
	p.LoanCount++
}

// RefundLoans claws back one outstanding loan for every full 1000
// chips the player holds above 1000, until the excess or the loan
// count runs out (3200 chips with 3 loans leaves 1200 and 1 loan).
func (p *Player) RefundLoans() {
	for p.Chips > 1000 && p.LoanCount > 0 {
		refunds := (p.Chips - 1000) / 1000
		if refunds <= 0 {
			break
		}
		if int64(p.LoanCount) < refunds {
			refunds = int64(p.LoanCount)
		}
		p.Chips -= refunds * 1000
		p.LoanCount -= int(refunds)
	}
}
