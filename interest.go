package finasist

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

// DailyNetReturn converts an annual nominal rate (percent) to its daily
// compounding equivalent, nets the withholding tax (percent), and applies it
// to the principal:
//
//	((1+r/100)^(1/365) − 1) × (1 − t/100) × cash
//
// The exponentiation is intrinsically a float operation; the result is
// carried back into an exact decimal for posting.
func DailyNetReturn(cash Money, annualRate, taxRate float64) Money {
	dailyRate := math.Pow(1+annualRate/100, 1.0/365) - 1
	net := dailyRate * (1 - taxRate/100)
	return Money{
		value: cash.Decimal().Mul(decimal.NewFromFloat(net)),
		cur:   cash.Currency(),
	}
}

// PostInterest computes today's net interest return on the principal and
// records it as an income entry with the interest marker.
func (s *Store) PostInterest(cash Money, annualRate, taxRate float64) (Transaction, error) {
	amount := DailyNetReturn(cash, annualRate, taxRate)
	if !amount.IsPositive() {
		return Transaction{}, errors.New("daily return is not positive, nothing to post")
	}
	posting := newInterestPosting(Today(), amount, annualRate)
	if err := s.AddTransaction(&posting); err != nil {
		return Transaction{}, err
	}
	return posting, nil
}
