package holdem

import (
	"sort"

	"holdem-broker/card"
)

// Category orders the nine Hold'em hand categories strictly: a higher
// Category always beats a lower one regardless of tiebreak.
type Category byte

const (
	NoPair Category = iota
	Pair
	TwoPair
	Trips
	Straight
	Flush
	FullHouse
	Quads
	StraightFlush
)

// Score is a category plus up to five tiebreak ranks in descending
// relevance (e.g. Quads carries [quad-rank, kicker]; NoPair carries
// all five ranks descending).
type Score struct {
	Category Category
	Tiebreak []byte
}

// Compare returns -1 if a < b, 0 if equal, 1 if a > b.
func Compare(a, b Score) int {
	if a.Category != b.Category {
		if a.Category < b.Category {
			return -1
		}
		return 1
	}
	n := len(a.Tiebreak)
	if len(b.Tiebreak) < n {
		n = len(b.Tiebreak)
	}
	for i := 0; i < n; i++ {
		if a.Tiebreak[i] != b.Tiebreak[i] {
			if a.Tiebreak[i] < b.Tiebreak[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// EvalBestOf7 returns the best 5-card score obtainable from 7 cards,
// trying all 21 five-card combinations and keeping the highest.
func EvalBestOf7(cards []card.Card) Score {
	var best Score
	haveBest := false
	idx := [5]int{}
	for a := 0; a < 3; a++ {
		for b := a + 1; b < 4; b++ {
			for c := b + 1; c < 5; c++ {
				for d := c + 1; d < 6; d++ {
					for e := d + 1; e < 7; e++ {
						idx[0], idx[1], idx[2], idx[3], idx[4] = a, b, c, d, e
						hand := [5]card.Card{cards[a], cards[b], cards[c], cards[d], cards[e]}
						score := eval5(hand)
						if !haveBest || Compare(score, best) > 0 {
							best = score
							haveBest = true
						}
					}
				}
			}
		}
	}
	return best
}

type rankGroup struct {
	rank  byte
	count int
}

func eval5(cards [5]card.Card) Score {
	ranks := make([]byte, 5)
	for i, c := range cards {
		ranks[i] = c.Rank()
	}

	flush := true
	suit0 := cards[0].Suit()
	for _, c := range cards {
		if c.Suit() != suit0 {
			flush = false
			break
		}
	}

	straightHigh, isStraight := detectStraight(ranks)

	groups := groupByRank(ranks)
	sortGroups(groups)

	desc := append([]byte{}, ranks...)
	sort.Slice(desc, func(i, j int) bool { return desc[i] > desc[j] })

	switch {
	case isStraight && flush:
		return Score{StraightFlush, []byte{straightHigh}}
	case groups[0].count == 4:
		kicker := highestNotRank(desc, groups[0].rank)
		return Score{Quads, []byte{groups[0].rank, kicker}}
	case groups[0].count == 3 && groups[1].count >= 2:
		return Score{FullHouse, []byte{groups[0].rank, groups[1].rank}}
	case flush:
		return Score{Flush, desc}
	case isStraight:
		return Score{Straight, []byte{straightHigh}}
	case groups[0].count == 3:
		kickers := ranksExcluding(desc, groups[0].rank, 2)
		return Score{Trips, append([]byte{groups[0].rank}, kickers...)}
	case groups[0].count == 2 && groups[1].count == 2:
		hi, lo := groups[0].rank, groups[1].rank
		if lo > hi {
			hi, lo = lo, hi
		}
		kicker := highestNotRank(desc, hi, lo)
		return Score{TwoPair, []byte{hi, lo, kicker}}
	case groups[0].count == 2:
		kickers := ranksExcluding(desc, groups[0].rank, 3)
		return Score{Pair, append([]byte{groups[0].rank}, kickers...)}
	default:
		return Score{NoPair, desc}
	}
}

// detectStraight reports whether ranks (exactly 5, duplicates allowed)
// form a straight and, if so, its high card — treating the wheel
// (A-2-3-4-5) as 5-high.
func detectStraight(ranks []byte) (byte, bool) {
	seen := map[byte]bool{}
	for _, r := range ranks {
		seen[r] = true
	}
	if len(seen) != 5 {
		return 0, false
	}
	distinct := make([]byte, 0, 5)
	for r := range seen {
		distinct = append(distinct, r)
	}
	sort.Slice(distinct, func(i, j int) bool { return distinct[i] < distinct[j] })

	if distinct[4]-distinct[0] == 4 {
		return distinct[4], true
	}
	// Wheel: A,2,3,4,5
	if distinct[0] == 2 && distinct[1] == 3 && distinct[2] == 4 && distinct[3] == 5 && distinct[4] == 14 {
		return 5, true
	}
	return 0, false
}

func groupByRank(ranks []byte) []rankGroup {
	counts := map[byte]int{}
	for _, r := range ranks {
		counts[r]++
	}
	groups := make([]rankGroup, 0, len(counts))
	for r, n := range counts {
		groups = append(groups, rankGroup{rank: r, count: n})
	}
	return groups
}

func sortGroups(groups []rankGroup) {
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].rank > groups[j].rank
	})
}

func highestNotRank(desc []byte, exclude ...byte) byte {
	skip := map[byte]bool{}
	for _, r := range exclude {
		skip[r] = true
	}
	for _, r := range desc {
		if !skip[r] {
			return r
		}
	}
	return 0
}

func ranksExcluding(desc []byte, exclude byte, n int) []byte {
	out := make([]byte, 0, n)
	for _, r := range desc {
		if r == exclude {
			continue
		}
		out = append(out, r)
		if len(out) == n {
			break
		}
	}
	return out
}
