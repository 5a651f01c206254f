package finasist

import (
	"math"
	"testing"
)

func TestDailyNetReturn(t *testing.T) {
	tests := []struct {
		name string
		cash float64
		rate float64
		tax  float64
	}{
		{"typical overnight deposit", 100000, 50, 5},
		{"no withholding", 100000, 50, 0},
		{"low rate", 25000, 17, 15},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := DailyNetReturn(TRY(tc.cash), tc.rate, tc.tax).Decimal().InexactFloat64()
			want := (math.Pow(1+tc.rate/100, 1.0/365) - 1) * (1 - tc.tax/100) * tc.cash
			if math.Abs(got-want) > 1e-6 {
				t.Errorf("DailyNetReturn() = %v, want %v", got, want)
			}
		})
	}
}

func TestDailyNetReturnZeroRate(t *testing.T) {
	if got := DailyNetReturn(TRY(100000), 0, 5); !got.IsZero() {
		t.Errorf("DailyNetReturn() at 0%% = %s, want zero", got)
	}
}

func TestPostInterest(t *testing.T) {
	s := newTestStore(t)

	tx, err := s.PostInterest(TRY(100000), 50, 5)
	if err != nil {
		t.Fatalf("PostInterest() error = %v", err)
	}
	if tx.Kind != Income || tx.Category != CategoryInterest {
		t.Errorf("PostInterest() posting = %+v, want an Interest income", tx)
	}
	if tx.ID == 0 {
		t.Error("PostInterest() did not persist the posting")
	}

	// ~105.6 TRY for 100k at 50% with 5% withholding
	got := tx.Amount.Decimal().InexactFloat64()
	if got < 105 || got > 106 {
		t.Errorf("PostInterest() amount = %v, want about 105.6", got)
	}

	balance, err := s.CashBalance()
	if err != nil {
		t.Fatalf("CashBalance() error = %v", err)
	}
	if !balance.Equal(tx.Amount) {
		t.Errorf("CashBalance() = %s, want the posted %s", balance, tx.Amount)
	}
}

func TestPostInterestRejectsZeroReturn(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.PostInterest(TRY(0), 50, 5); err == nil {
		t.Error("PostInterest() accepted a zero principal")
	}
	if _, err := s.PostInterest(TRY(-1000), 50, 5); err == nil {
		t.Error("PostInterest() accepted a negative principal")
	}

	txs, err := s.Transactions()
	if err != nil {
		t.Fatalf("Transactions() error = %v", err)
	}
	if len(txs) != 0 {
		t.Errorf("rejected postings left %d ledger entries", len(txs))
	}
}
