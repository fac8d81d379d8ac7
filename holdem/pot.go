package holdem

import "sort"

// Pot is one main or side pot: an amount and the player ids eligible
// to win it.
type Pot struct {
	Amount   int64
	Eligible []string
}

// InvalidBetsError is raised when a commitment ledger cannot be
// reconciled into pots without a leftover remainder.
type InvalidBetsError string

func (e InvalidBetsError) Error() string { return "invalid bets: " + string(e) }

// BuildPots folds a per-player commitment ledger into the ordered list
// of main/side pots, honoring all-ins and folds (spec §4.5).
// commitments holds every seated (non-dead) player's total chips
// committed this hand; folded marks which of them have folded.
func BuildPots(commitments map[string]int64, folded map[string]bool) ([]Pot, error) {
	type entry struct {
		id     string
		active bool
	}
	entries := make([]entry, 0, len(commitments))
	remaining := make(map[string]int64, len(commitments))
	for id, amt := range commitments {
		entries = append(entries, entry{id: id, active: !folded[id]})
		remaining[id] = amt
	}
	sort.Slice(entries, func(i, j int) bool {
		if remaining[entries[i].id] != remaining[entries[j].id] {
			return remaining[entries[i].id] < remaining[entries[j].id]
		}
		return entries[i].id < entries[j].id
	})

	var spare int64
	var pots []Pot

	for i, e := range entries {
		if !e.active {
			spare += remaining[e.id]
			remaining[e.id] = 0
			continue
		}
		v := remaining[e.id]
		if v <= 0 {
			continue
		}

		pot := Pot{Amount: spare}
		spare = 0
		for j := i; j < len(entries); j++ {
			other := entries[j]
			if remaining[other.id] <= 0 {
				continue
			}
			pot.Amount += v
			remaining[other.id] -= v
			if other.active {
				pot.Eligible = append(pot.Eligible, other.id)
			}
		}
		if len(pot.Eligible) > 0 {
			pots = append(pots, pot)
		} else {
			spare += pot.Amount
		}
	}

	if spare != 0 {
		return nil, InvalidBetsError("non-zero remainder after pot construction")
	}
	return mergePotsWithSameEligibility(pots), nil
}

func mergePotsWithSameEligibility(pots []Pot) []Pot {
	merged := make([]Pot, 0, len(pots))
	for _, p := range pots {
		if len(merged) > 0 && sameEligibility(merged[len(merged)-1].Eligible, p.Eligible) {
			merged[len(merged)-1].Amount += p.Amount
			continue
		}
		merged = append(merged, p)
	}
	return merged
}

func sameEligibility(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	sa := append([]string{}, a...)
	sb := append([]string{}, b...)
	sort.Strings(sa)
	sort.Strings(sb)
	for i := range sa {
		if sa[i] != sb[i] {
			return false
		}
	}
	return true
}
