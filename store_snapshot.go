package finasist

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Snapshot is one daily record of net worth and its components.
// At most one snapshot exists per calendar date.
type Snapshot struct {
	Date           Date  `json:"date"`
	NetWorth       Money `json:"net_worth"`
	CashBalance    Money `json:"cash_balance"`
	PortfolioValue Money `json:"portfolio_value"`
}

// UpsertSnapshot writes the snapshot for its date, replacing any previous
// value for that day. Revisiting the same day is idempotent.
func (s *Store) UpsertSnapshot(snap Snapshot) error {
	if snap.Date.IsZero() {
		snap.Date = Today()
	}
	_, err := s.db.Exec(
		`INSERT INTO history (date, net_worth, cash_balance, portfolio_value) VALUES (?, ?, ?, ?)
		 ON CONFLICT(date) DO UPDATE SET net_worth=excluded.net_worth, cash_balance=excluded.cash_balance, portfolio_value=excluded.portfolio_value`,
		snap.Date.String(), snap.NetWorth.Decimal().String(), snap.CashBalance.Decimal().String(), snap.PortfolioValue.Decimal().String(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert snapshot for %s: %w", snap.Date, err)
	}
	return nil
}

// History returns all snapshots ordered by date ascending, for trend charting.
func (s *Store) History() ([]Snapshot, error) {
	rows, err := s.db.Query("SELECT date, net_worth, cash_balance, portfolio_value FROM history ORDER BY date ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var history []Snapshot
	for rows.Next() {
		var day, netWorth, cash, value string
		if err := rows.Scan(&day, &netWorth, &cash, &value); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snap, err := parseSnapshot(day, netWorth, cash, value)
		if err != nil {
			return nil, err
		}
		history = append(history, snap)
	}
	return history, rows.Err()
}

func parseSnapshot(day, netWorth, cash, value string) (Snapshot, error) {
	date, err := ParseDate(day)
	if err != nil {
		return Snapshot{}, fmt.Errorf("corrupt date in history: %w", err)
	}
	fields := [3]decimal.Decimal{}
	for i, raw := range [3]string{netWorth, cash, value} {
		fields[i], err = decimal.NewFromString(raw)
		if err != nil {
			return Snapshot{}, fmt.Errorf("corrupt snapshot for %s: %w", day, err)
		}
	}
	return Snapshot{
		Date:           date,
		NetWorth:       M(fields[0], "TRY"),
		CashBalance:    M(fields[1], "TRY"),
		PortfolioValue: M(fields[2], "TRY"),
	}, nil
}
