package holdem

import (
	"context"
	"log"
	"math/rand"
	"time"

	"holdem-broker/card"
	"holdem-broker/events"
	"holdem-broker/repository"
	"holdem-broker/session"
)

// Phase is one state of the hand state machine (spec §4.6).
type Phase byte

const (
	PhasePreDeal Phase = iota
	PhaseBlinds
	PhasePreFlop
	PhaseFlop
	PhaseTurn
	PhaseRiver
	PhaseShowdown
	PhasePayout
	PhaseDone
)

// EngineDeps are the collaborators a HandEngine is constructed with —
// injected by the Room, never reached for from a global (spec §9).
type EngineDeps struct {
	Seats *session.SeatTable
	Bus   *events.Bus
	Repo  repository.Repository
}

// HandEngine drives exactly one hand: blinds, deal, the street loop,
// showdown, and payout. It owns the deck, the running pot
// commitments, and each participant's per-hand chip state.
type HandEngine struct {
	cfg  Config
	deps EngineDeps

	gameID  string
	phase   Phase
	dealer  string
	order   []string
	players map[string]*Player

	deck        *card.Deck
	community   []card.Card
	commitments map[string]int64
	pots        []Pot
}

func newHandEngine(cfg Config, deps EngineDeps) *HandEngine {
	return &HandEngine{cfg: cfg, deps: deps, players: make(map[string]*Player)}
}

// PlayHand runs the full state machine for one hand with dealerID as
// the button. It returns ErrTooFewPlayers if fewer than
// Config.MinPlayers seated players are available to start.
func (e *HandEngine) PlayHand(ctx context.Context, gameID, dealerID string) error {
	e.gameID = gameID
	e.dealer = dealerID
	e.phase = PhasePreDeal
	e.commitments = make(map[string]int64)

	order := e.deps.Seats.Round(dealerID)
	if len(order) < e.cfg.MinPlayers {
		return ErrTooFewPlayers
	}
	e.order = order

	for _, id := range order {
		endpoint, ok := e.deps.Seats.Endpoint(id)
		if !ok {
			return ErrUnknownPlayerInOrder
		}
		p := NewPlayer(id, endpoint.Identity.DisplayName, endpoint.Identity.Chips, endpoint.Identity.LoanCount)
		e.players[id] = p
	}

	e.emit(events.TypeNewGame, nil)

	e.phase = PhaseBlinds
	sbID, bbID := e.blindSeats()
	e.postBlind(sbID, e.cfg.SmallBlind, events.BetTypeBlind)
	e.postBlind(bbID, e.cfg.BigBlind, events.BetTypeBlind)

	e.deck = card.NewDeck(rand.New(rand.NewSource(e.seed())))
	e.dealHoleCards()

	e.phase = PhasePreFlop
	bbIdx := indexOf(order, bbID)
	if e.runStreet(ctx, (bbIdx+1)%len(order), true) {
		e.payout(ctx)
		return nil
	}

	streetCounts := []int{3, 1, 1}
	phases := []Phase{PhaseFlop, PhaseTurn, PhaseRiver}
	for i, n := range streetCounts {
		e.phase = phases[i]
		if e.countWithChips() <= 1 {
			e.dealCommunity(n)
			continue
		}
		e.dealCommunity(n)
		if e.runStreet(ctx, 0, false) {
			e.payout(ctx)
			return nil
		}
	}

	e.phase = PhaseShowdown
	e.showdown()
	e.payout(ctx)
	return nil
}

// blindSeats implements the heads-up exception: with exactly two
// seats the dealer posts small, the other posts big; otherwise the
// two seats immediately preceding the dealer (first and second in
// traversal order) post small and big (spec §4.6, §4.3).
func (e *HandEngine) blindSeats() (sb, bb string) {
	n := len(e.order)
	if n == 2 {
		return e.order[1], e.order[0]
	}
	return e.order[0], e.order[1]
}

func (e *HandEngine) postBlind(id string, amount int64, betType string) {
	p := e.players[id]
	for p.Chips < amount {
		p.GrantLoan()
	}
	committed := p.PlaceBet(amount)
	e.emit(events.TypeBet, map[string]any{
		"player": id, "amount": committed, "bet_type": betType,
	})
}

func (e *HandEngine) dealHoleCards() {
	for _, id := range e.order {
		p := e.players[id]
		p.DealHole(e.deck.Pop(2)...)
		e.emitTo(id, events.TypeCardsAssignment, map[string]any{
			"hole_cards": cardStrings(p.HoleCards()),
		})
	}
}

func (e *HandEngine) dealCommunity(n int) {
	e.community = append(e.community, e.deck.Pop(n)...)
	e.emit(events.TypeSharedCards, map[string]any{
		"cards": cardStrings(e.community),
	})
}

// runStreet runs one BetRounder pass and folds its ledger into the
// running commitment map. It returns true if the hand should
// short-circuit straight to payout (one or zero active players left).
func (e *HandEngine) runStreet(ctx context.Context, startIndex int, blindRound bool) bool {
	rounder := &BetRounder{
		Order:      e.order,
		Players:    e.players,
		StartIndex: startIndex,
		BlindRound: blindRound,
		RequestBet: e.requestBet,
		OnResult:   e.onBetResult,
	}
	if _, err := rounder.Run(ctx); err != nil {
		log.Printf("[hand %s] bet round error: %v", e.gameID, err)
	}

	for _, id := range e.order {
		p := e.players[id]
		e.commitments[id] += p.Bet()
		p.ResetStreetBet()
	}

	return e.countActive() <= 1
}

func (e *HandEngine) countActive() int {
	n := 0
	for _, id := range e.order {
		if e.players[id].Active() {
			n++
		}
	}
	return n
}

func (e *HandEngine) countWithChips() int {
	n := 0
	for _, id := range e.order {
		p := e.players[id]
		if p.Active() && p.Chips > 0 {
			n++
		}
	}
	return n
}

// requestBet prompts a seated player over its endpoint with a
// player-action event and waits for a bet reply, honoring the
// configured action timeout. A malformed or absent reply is dead; an
// explicit -1 is fold.
func (e *HandEngine) requestBet(ctx context.Context, p *Player, min, max int64) (int64, BetOutcome) {
	endpoint, ok := e.deps.Seats.Endpoint(p.ID)
	if !ok {
		return 0, OutcomeDead
	}

	deadline := time.Now().Add(e.cfg.ActionTimeout)
	e.emitTo(p.ID, events.TypePlayerAction, map[string]any{
		"min_bet": min, "max_bet": max, "timeout": e.cfg.ActionTimeout.Seconds(),
		"timeout_date": deadline,
	})

	msg, err := endpoint.Recv(ctx, deadline)
	if err != nil {
		e.emitTo(p.ID, events.TypeError, map[string]any{"error": err.Error()})
		e.emit(events.TypeDeadPlayer, map[string]any{"player": p.ID})
		return 0, OutcomeDead
	}
	if t, _ := msg["type"].(string); t != "bet" {
		return 0, OutcomeDead
	}
	raw, ok := msg["bet"].(float64)
	if !ok {
		return 0, OutcomeDead
	}
	amount := int64(raw)
	if amount < 0 {
		return -1, OutcomeFold
	}
	return amount, OutcomeAmount
}

func (e *HandEngine) onBetResult(p *Player, outcome BetOutcome, amount int64) {
	switch outcome {
	case OutcomeFold:
		e.emit(events.TypeFold, map[string]any{"player": p.ID})
	case OutcomeDead:
		_ = e.deps.Seats.Remove(p.ID)
	case OutcomeAmount:
		betType := events.BetTypeCall
		if p.AllIn() {
			betType = events.BetTypeAllIn
		} else if amount == 0 {
			betType = events.BetTypeCheck
		} else {
			betType = events.BetTypeRaise
		}
		e.emit(events.TypeBet, map[string]any{"player": p.ID, "amount": amount, "bet_type": betType})
	}
}

func (e *HandEngine) showdown() {
	data := make(map[string]any)
	for _, id := range e.order {
		p := e.players[id]
		if !p.Active() {
			continue
		}
		score := EvalBestOf7(append(append([]card.Card{}, p.HoleCards()...), e.community...))
		p.SetScore(score)
		data[id] = map[string]any{"hole_cards": cardStrings(p.HoleCards()), "category": score.Category}
	}
	e.emit(events.TypeShowdown, data)
}

func (e *HandEngine) payout(ctx context.Context) {
	e.phase = PhasePayout

	folded := make(map[string]bool, len(e.order))
	for _, id := range e.order {
		folded[id] = !e.players[id].Active()
	}
	pots, err := BuildPots(e.commitments, folded)
	if err != nil {
		log.Printf("[hand %s] pot construction failed: %v", e.gameID, err)
	}
	e.pots = pots
	e.emit(events.TypePotsUpdate, map[string]any{"pots": pots})

	startChips := make(map[string]int64, len(e.order))
	startLoans := make(map[string]int, len(e.order))
	for _, id := range e.order {
		endpoint, _ := e.deps.Seats.Endpoint(id)
		if endpoint != nil {
			startChips[id] = endpoint.Identity.Chips
			startLoans[id] = endpoint.Identity.LoanCount
		}
	}

	for _, pot := range pots {
		winners := e.potWinners(pot)
		if len(winners) == 0 {
			continue
		}
		share := pot.Amount / int64(len(winners))
		for _, id := range winners {
			e.players[id].Add(share)
		}
		e.emit(events.TypeWinnerDesignation, map[string]any{
			"pot_amount": pot.Amount, "winners": winners, "share": share,
		})
	}

	for _, id := range e.order {
		p := e.players[id]
		if p.Chips < e.cfg.BigBlind {
			p.GrantLoan()
		}
	}
	for _, id := range e.order {
		e.players[id].RefundLoans()
	}

	for _, id := range e.order {
		p := e.players[id]
		endpoint, ok := e.deps.Seats.Endpoint(id)
		if !ok {
			continue
		}
		endpoint.Identity.Chips = p.Chips
		endpoint.Identity.LoanCount = p.LoanCount

		if e.deps.Repo != nil {
			chipDelta := p.Chips - startChips[id]
			loanDelta := p.LoanCount - startLoans[id]
			if err := e.deps.Repo.PersistHand(ctx, id, chipDelta, loanDelta, 1); err != nil {
				log.Printf("[hand %s] persist_hand(%s) failed: %v", e.gameID, id, err)
			}
		}
	}

	if e.deps.Repo != nil {
		ranking, err := e.deps.Repo.FetchRanking(ctx)
		if err != nil {
			log.Printf("[hand %s] fetch_ranking failed: %v", e.gameID, err)
		} else {
			e.emit(events.TypeUpdateRankingData, map[string]any{"ranking": repository.RankingDTO(ranking)})
		}
	}

	e.emit(events.TypeGameOver, nil)
	e.phase = PhaseDone
}

// potWinners returns the eligible, active player ids whose score ties
// for best among pot.Eligible. An uncontested pot (a single eligible
// survivor, e.g. everyone else folded) is awarded without evaluating
// a hand at all — there may not even be enough cards dealt to score.
func (e *HandEngine) potWinners(pot Pot) []string {
	candidates := make([]string, 0, len(pot.Eligible))
	for _, id := range pot.Eligible {
		if p, ok := e.players[id]; ok && p.Active() {
			candidates = append(candidates, id)
		}
	}
	if len(candidates) <= 1 {
		return candidates
	}

	var best Score
	haveBest := false
	var winners []string
	for _, id := range candidates {
		p := e.players[id]
		score, ok := p.Score()
		if !ok {
			score = EvalBestOf7(append(append([]card.Card{}, p.HoleCards()...), e.community...))
		}
		switch {
		case !haveBest || Compare(score, best) > 0:
			best = score
			haveBest = true
			winners = []string{id}
		case Compare(score, best) == 0:
			winners = append(winners, id)
		}
	}
	return winners
}

func (e *HandEngine) emit(eventType string, data map[string]any) {
	e.deps.Bus.Publish(events.New(eventType, e.gameID, data))
}

func (e *HandEngine) emitTo(playerID, eventType string, data map[string]any) {
	e.deps.Bus.Publish(events.New(eventType, e.gameID, data).Targeted(playerID))
}

func (e *HandEngine) seed() int64 {
	if e.cfg.Seed != 0 {
		return e.cfg.Seed
	}
	return time.Now().UnixNano()
}

func cardStrings(cards []card.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}

func indexOf(order []string, id string) int {
	for i, v := range order {
		if v == id {
			return i
		}
	}
	return 0
}
