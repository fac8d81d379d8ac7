package holdem

import "testing"

func TestBuildPots_SinglePotNoFolds(t *testing.T) {
	commitments := map[string]int64{"a": 50, "b": 50, "c": 50}
	folded := map[string]bool{}

	pots, err := BuildPots(commitments, folded)
	if err != nil {
		t.Fatalf("build pots: %v", err)
	}
	if len(pots) != 1 || pots[0].Amount != 150 {
		t.Fatalf("expected one pot of 150, got %+v", pots)
	}
	if len(pots[0].Eligible) != 3 {
		t.Fatalf("expected all three eligible, got %v", pots[0].Eligible)
	}
}

func TestBuildPots_ThreeWayAllInSidePot(t *testing.T) {
	// S2: A(200) commits 50, B(100) commits 50, C(50) commits 50 (all-in).
	// Equal commitments -> a single pot, no side pot.
	commitments := map[string]int64{"a": 50, "b": 50, "c": 50}
	folded := map[string]bool{}

	pots, err := BuildPots(commitments, folded)
	if err != nil {
		t.Fatalf("build pots: %v", err)
	}
	if len(pots) != 1 || pots[0].Amount != 150 {
		t.Fatalf("expected single 150 pot, got %+v", pots)
	}
}

func TestBuildPots_UnequalAllInCreatesSidePot(t *testing.T) {
	// A commits 200, B commits 100 (all-in), C commits 200.
	commitments := map[string]int64{"a": 200, "b": 100, "c": 200}
	folded := map[string]bool{}

	pots, err := BuildPots(commitments, folded)
	if err != nil {
		t.Fatalf("build pots: %v", err)
	}
	if len(pots) != 2 {
		t.Fatalf("expected main + side pot, got %+v", pots)
	}
	if pots[0].Amount != 300 {
		t.Fatalf("expected main pot of 300, got %d", pots[0].Amount)
	}
	if len(pots[0].Eligible) != 3 {
		t.Fatalf("expected main pot eligible to all three, got %v", pots[0].Eligible)
	}
	if pots[1].Amount != 200 {
		t.Fatalf("expected side pot of 200, got %d", pots[1].Amount)
	}
	if len(pots[1].Eligible) != 2 {
		t.Fatalf("expected side pot eligible to a and c only, got %v", pots[1].Eligible)
	}
}

func TestBuildPots_FoldedCommitmentBecomesSpare(t *testing.T) {
	commitments := map[string]int64{"a": 100, "b": 100, "c": 20}
	folded := map[string]bool{"c": true}

	pots, err := BuildPots(commitments, folded)
	if err != nil {
		t.Fatalf("build pots: %v", err)
	}
	total := int64(0)
	for _, p := range pots {
		total += p.Amount
	}
	if total != 220 {
		t.Fatalf("expected all chips (including folded c's 20) conserved in pots, got %d", total)
	}
	for _, p := range pots {
		for _, id := range p.Eligible {
			if id == "c" {
				t.Fatalf("folded player must not be pot-eligible")
			}
		}
	}
}
