package holdem

import (
	"testing"

	"holdem-broker/card"
)

func c(rank byte, suit card.Suit) card.Card { return card.New(rank, suit) }

func TestEvalBestOf7_RoyalFlushBeatsStraightFlush(t *testing.T) {
	royal := EvalBestOf7([]card.Card{
		c(14, card.Spade), c(13, card.Spade), c(12, card.Spade), c(11, card.Spade), c(10, card.Spade),
		c(2, card.Heart), c(3, card.Club),
	})
	if royal.Category != StraightFlush {
		t.Fatalf("expected straight flush category for royal, got %v", royal.Category)
	}

	lower := EvalBestOf7([]card.Card{
		c(13, card.Heart), c(12, card.Heart), c(11, card.Heart), c(10, card.Heart), c(9, card.Heart),
		c(2, card.Club), c(3, card.Club),
	})
	if Compare(royal, lower) <= 0 {
		t.Fatalf("expected royal flush to beat king-high straight flush")
	}
}

func TestEvalBestOf7_WheelIsLowestStraight(t *testing.T) {
	wheel := EvalBestOf7([]card.Card{
		c(14, card.Spade), c(2, card.Heart), c(3, card.Club), c(4, card.Diamond), c(5, card.Spade),
		c(9, card.Club), c(10, card.Club),
	})
	if wheel.Category != Straight {
		t.Fatalf("expected straight for wheel, got %v", wheel.Category)
	}

	sixHigh := EvalBestOf7([]card.Card{
		c(2, card.Spade), c(3, card.Heart), c(4, card.Club), c(5, card.Diamond), c(6, card.Spade),
		c(9, card.Club), c(10, card.Club),
	})
	if Compare(sixHigh, wheel) <= 0 {
		t.Fatalf("expected 6-high straight to beat the wheel")
	}
}

func TestEvalBestOf7_TwoPairBeatsOnePair(t *testing.T) {
	twoPair := EvalBestOf7([]card.Card{
		c(14, card.Spade), c(14, card.Heart), c(13, card.Club), c(13, card.Diamond), c(2, card.Spade),
		c(5, card.Club), c(8, card.Diamond),
	})
	onePair := EvalBestOf7([]card.Card{
		c(14, card.Spade), c(14, card.Heart), c(9, card.Club), c(7, card.Diamond), c(2, card.Spade),
		c(5, card.Club), c(8, card.Diamond),
	})
	if twoPair.Category != TwoPair || onePair.Category != Pair {
		t.Fatalf("expected categories twopair/pair, got %v/%v", twoPair.Category, onePair.Category)
	}
	if Compare(twoPair, onePair) <= 0 {
		t.Fatalf("expected two pair to beat one pair")
	}
}

func TestEvalBestOf7_FullHouseBeatsFlush(t *testing.T) {
	fullHouse := EvalBestOf7([]card.Card{
		c(9, card.Spade), c(9, card.Heart), c(9, card.Club), c(4, card.Diamond), c(4, card.Spade),
		c(2, card.Club), c(7, card.Diamond),
	})
	flush := EvalBestOf7([]card.Card{
		c(2, card.Spade), c(5, card.Spade), c(8, card.Spade), c(11, card.Spade), c(13, card.Spade),
		c(3, card.Club), c(4, card.Diamond),
	})
	if fullHouse.Category != FullHouse || flush.Category != Flush {
		t.Fatalf("expected fullhouse/flush, got %v/%v", fullHouse.Category, flush.Category)
	}
	if Compare(fullHouse, flush) <= 0 {
		t.Fatalf("expected full house to beat flush")
	}
}

func TestCompare_TotalOrderAcrossCategories(t *testing.T) {
	scores := []Score{
		{NoPair, []byte{10}},
		{Pair, []byte{5}},
		{Straight, []byte{9}},
		{StraightFlush, []byte{14}},
	}
	for i := 0; i < len(scores)-1; i++ {
		if Compare(scores[i], scores[i+1]) >= 0 {
			t.Fatalf("expected strictly increasing category strength at index %d", i)
		}
	}
}
