package holdem

import "testing"

func TestPlayer_TakeRejectsOverdraft(t *testing.T) {
	p := NewPlayer("a", "Alice", 100, 0)
	if err := p.Take(150); err == nil {
		t.Fatalf("expected error taking more than chips")
	}
}

func TestPlayer_TakeZeroIsNoop(t *testing.T) {
	p := NewPlayer("a", "Alice", 100, 0)
	if err := p.Take(0); err != nil {
		t.Fatalf("take(0) should be legal, got %v", err)
	}
	if p.Chips != 100 {
		t.Fatalf("expected chips unchanged, got %d", p.Chips)
	}
}

func TestPlayer_PlaceBetClampsToStackAndSetsAllIn(t *testing.T) {
	p := NewPlayer("a", "Alice", 50, 0)
	committed := p.PlaceBet(80)
	if committed != 50 {
		t.Fatalf("expected committed amount clamped to 50, got %d", committed)
	}
	if !p.AllIn() {
		t.Fatalf("expected all-in after betting entire stack")
	}
	if p.Chips != 0 {
		t.Fatalf("expected 0 chips remaining, got %d", p.Chips)
	}
}

func TestPlayer_LoanAndRefundRoundTrip(t *testing.T) {
	// S4: start chips=2500, loan_count=3; end chips=3200 -> 2 refunds, loan_count=1.
	p := NewPlayer("a", "Alice", 3200, 3)
	p.RefundLoans()
	if p.Chips != 1200 || p.LoanCount != 1 {
		t.Fatalf("expected chips=1200 loan_count=1, got chips=%d loan_count=%d", p.Chips, p.LoanCount)
	}
}

func TestPlayer_GrantLoanOnInsufficientBlind(t *testing.T) {
	// S3: chips=3, BB=10 -> one loan of 1000 makes chips=1003, then posting BB leaves 993.
	p := NewPlayer("a", "Alice", 3, 0)
	for p.Chips < 10 {
		p.GrantLoan()
	}
	if p.Chips != 1003 || p.LoanCount != 1 {
		t.Fatalf("expected chips=1003 loan_count=1 after loan, got chips=%d loan_count=%d", p.Chips, p.LoanCount)
	}
	p.PlaceBet(10)
	if p.Chips != 993 {
		t.Fatalf("expected chips=993 after posting BB, got %d", p.Chips)
	}
}
