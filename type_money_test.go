package finasist

import "testing"

func TestMoneyArithmetic(t *testing.T) {
	a := TRY(100.5)
	b := TRY(0.25)

	if got := a.Add(b); !got.Equal(TRY(100.75)) {
		t.Errorf("Add() = %s, want 100.75", got)
	}
	if got := a.Sub(b); !got.Equal(TRY(100.25)) {
		t.Errorf("Sub() = %s, want 100.25", got)
	}
	if got := a.Mul(Q(2)); !got.Equal(TRY(201)) {
		t.Errorf("Mul(2) = %s, want 201", got)
	}
	if got := a.Neg(); !got.Equal(TRY(-100.5)) {
		t.Errorf("Neg() = %s, want -100.5", got)
	}
	// exact decimal arithmetic, no float drift
	sum := TRY(0)
	for i := 0; i < 10; i++ {
		sum = sum.Add(TRY(0.1))
	}
	if !sum.Equal(TRY(1)) {
		t.Errorf("10 × 0.1 = %s, want exactly 1", sum)
	}
}

func TestMoneyWeakCurrency(t *testing.T) {
	// the "" currency is weak: it takes the other operand's currency
	if got := M(5, "").Add(TRY(5)); got.Currency() != "TRY" {
		t.Errorf("weak add currency = %q, want TRY", got.Currency())
	}

	defer func() {
		if recover() == nil {
			t.Error("mixing TRY and USD must panic")
		}
	}()
	TRY(1).Add(M(1, "USD"))
}

func TestMoneySignedString(t *testing.T) {
	if got := TRY(0).SignedString(); got != "-" {
		t.Errorf("SignedString(0) = %q, want -", got)
	}
	if got := TRY(5).SignedString(); got[0] != '+' {
		t.Errorf("SignedString(5) = %q, want a + prefix", got)
	}
	if got := TRY(-5).SignedString(); got[0] == '+' {
		t.Errorf("SignedString(-5) = %q, must not have a + prefix", got)
	}
}
