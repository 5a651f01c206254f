package finasist

import (
	"errors"
	"fmt"
)

// Kind is the direction of a ledger entry. Amounts are always stored
// positive; the kind alone carries the sign.
type Kind string

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

// ParseKind parses a string into a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "income":
		return Income, nil
	case "expense":
		return Expense, nil
	default:
		return "", fmt.Errorf("unknown transaction kind: %q", s)
	}
}

// Categories with a meaning to the system. Any other category is free text.
const (
	// CategoryInvestment marks entries generated by buy/sell actions.
	CategoryInvestment = "Investment"
	// CategoryInterest marks entries generated by interest accrual postings.
	CategoryInterest = "Interest"
)

// Labels appended to the symbol in generated investment descriptions.
const (
	buyLabel  = "Buy"
	sellLabel = "Sell"
)

// Currencies accepted in the ledger.
var currencies = []string{"TRY", "USD", "EUR"}

// Transaction is a single income or expense event in the ledger.
type Transaction struct {
	ID          int64  `json:"id"`
	Date        Date   `json:"date"`
	Kind        Kind   `json:"kind"`
	Category    string `json:"category"`
	Amount      Money  `json:"amount"` // always positive, direction is in Kind
	Description string `json:"description"`

	// PositionSymbol links an investment posting to the position that
	// generated it. Empty for manual entries.
	PositionSymbol string `json:"position_symbol,omitempty"`
}

// NewTransaction creates a manual ledger entry.
func NewTransaction(day Date, kind Kind, category string, amount Money, description string) Transaction {
	return Transaction{Date: day, Kind: kind, Category: category, Amount: amount, Description: description}
}

// newTradePosting creates the ledger entry paired with a buy or sell action.
// A buy spends cash (expense), a sell returns cash (income).
func newTradePosting(day Date, symbol string, quantity Quantity, price Money, buy bool) Transaction {
	kind, label := Income, sellLabel
	if buy {
		kind, label = Expense, buyLabel
	}
	return Transaction{
		Date:           day,
		Kind:           kind,
		Category:       CategoryInvestment,
		Amount:         price.Mul(quantity),
		Description:    symbol + " " + label,
		PositionSymbol: symbol,
	}
}

// newInterestPosting creates the income entry for a daily interest accrual.
func newInterestPosting(day Date, amount Money, annualRate float64) Transaction {
	return Transaction{
		Date:        day,
		Kind:        Income,
		Category:    CategoryInterest,
		Amount:      amount,
		Description: fmt.Sprintf("Daily interest return (%.0f%%)", annualRate),
	}
}

// Validate checks a transaction for correctness. It sets the date to today
// if it is zero.
func (t *Transaction) Validate() error {
	if t.Date.IsZero() {
		t.Date = Today()
	}
	if t.Kind != Income && t.Kind != Expense {
		return fmt.Errorf("unknown transaction kind: %q", t.Kind)
	}
	if !t.Amount.IsPositive() {
		return errors.New("amount must be positive")
	}
	valid := false
	for _, c := range currencies {
		if t.Amount.Currency() == c {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unsupported currency %q", t.Amount.Currency())
	}
	return nil
}

// Signed returns the amount with the sign implied by the kind.
func (t Transaction) Signed() Money {
	if t.Kind == Expense {
		return t.Amount.Neg()
	}
	return t.Amount
}

func (t Transaction) String() string {
	return fmt.Sprintf("%s %s %s %s (%s)", t.Date, t.Kind, t.Amount, t.Category, t.Description)
}
