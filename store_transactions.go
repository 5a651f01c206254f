package finasist

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
)

// AddTransaction validates and inserts a ledger entry, assigning its ID.
func (s *Store) AddTransaction(t *Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	res, err := s.db.Exec(
		"INSERT INTO transactions (date, kind, category, amount, currency, description, position_symbol) VALUES (?, ?, ?, ?, ?, ?, ?)",
		t.Date.String(), string(t.Kind), t.Category, t.Amount.Decimal().String(), t.Amount.Currency(), t.Description, t.PositionSymbol,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	t.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read generated id: %w", err)
	}
	return nil
}

// UpdateTransaction overwrites an existing entry identified by its ID.
func (s *Store) UpdateTransaction(t Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	res, err := s.db.Exec(
		"UPDATE transactions SET date = ?, kind = ?, category = ?, amount = ?, currency = ?, description = ? WHERE id = ?",
		t.Date.String(), string(t.Kind), t.Category, t.Amount.Decimal().String(), t.Amount.Currency(), t.Description, t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %d: %w", t.ID, err)
	}
	return oneRow(res)
}

// DeleteTransaction removes an entry by ID.
func (s *Store) DeleteTransaction(id int64) error {
	res, err := s.db.Exec("DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %d: %w", id, err)
	}
	return oneRow(res)
}

// Transactions returns the full ledger ordered by date descending
// (newest first, the display order).
func (s *Store) Transactions() ([]Transaction, error) {
	rows, err := s.db.Query(
		"SELECT id, date, kind, category, amount, currency, description, position_symbol FROM transactions ORDER BY date DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txs []Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

// CashBalance computes total income minus total expense over the whole ledger.
// Amounts are summed exactly regardless of currency; the single TRY pivot of
// the tracker means every stored amount is already in TRY terms.
func (s *Store) CashBalance() (Money, error) {
	rows, err := s.db.Query("SELECT kind, amount FROM transactions")
	if err != nil {
		return Money{}, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	balance := M(decimal.Zero, "TRY")
	for rows.Next() {
		var kind, amount string
		if err := rows.Scan(&kind, &amount); err != nil {
			return Money{}, fmt.Errorf("failed to scan transaction: %w", err)
		}
		value, err := decimal.NewFromString(amount)
		if err != nil {
			return Money{}, fmt.Errorf("corrupt amount %q: %w", amount, err)
		}
		switch Kind(kind) {
		case Income:
			balance = balance.Add(M(value, "TRY"))
		case Expense:
			balance = balance.Sub(M(value, "TRY"))
		}
	}
	return balance, rows.Err()
}

func scanTransaction(rows *sql.Rows) (Transaction, error) {
	var t Transaction
	var day, kind, amount, currency string
	if err := rows.Scan(&t.ID, &day, &kind, &t.Category, &amount, &currency, &t.Description, &t.PositionSymbol); err != nil {
		return t, fmt.Errorf("failed to scan transaction: %w", err)
	}
	date, err := ParseDate(day)
	if err != nil {
		return t, fmt.Errorf("corrupt date in transaction %d: %w", t.ID, err)
	}
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return t, fmt.Errorf("corrupt amount in transaction %d: %w", t.ID, err)
	}
	t.Date = date
	t.Kind = Kind(kind)
	t.Amount = M(value, currency)
	return t, nil
}

// oneRow converts a zero-row update/delete into ErrNotFound.
func oneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
