package finasist

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Action is the direction of a trade.
type Action string

const (
	ActionBuy  Action = "buy"
	ActionSell Action = "sell"
)

// ParseAction parses a string into an Action.
func ParseAction(s string) (Action, error) {
	switch s {
	case "buy":
		return ActionBuy, nil
	case "sell":
		return ActionSell, nil
	default:
		return "", fmt.Errorf("unknown trade action: %q", s)
	}
}

// Positions returns all held positions.
func (s *Store) Positions() ([]Position, error) {
	rows, err := s.db.Query("SELECT id, asset_class, symbol, quantity, avg_cost FROM positions ORDER BY symbol")
	if err != nil {
		return nil, fmt.Errorf("failed to query positions: %w", err)
	}
	defer rows.Close()

	var positions []Position
	for rows.Next() {
		p, err := scanPosition(rows)
		if err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

// PositionBySymbol returns the position held for symbol, or ErrNoPosition.
func (s *Store) PositionBySymbol(symbol string) (Position, error) {
	row := s.db.QueryRow("SELECT id, asset_class, symbol, quantity, avg_cost FROM positions WHERE symbol = ?", symbol)
	p, err := scanPosition(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Position{}, ErrNoPosition
	}
	return p, err
}

// RecordTrade applies a buy or sell to the position ledger and posts the
// paired income/expense entry, both committed in a single transaction.
//
//   - Buy on a new symbol creates the position at the trade price.
//   - Buy on a held symbol recomputes the weighted-average cost.
//   - Sell of the whole holding (or more) deletes the position.
//   - Sell of part of the holding reduces the quantity, avg cost untouched.
//   - Sell of a symbol not held is rejected with ErrNoPosition.
//
// It returns the generated ledger posting.
func (s *Store) RecordTrade(day Date, class AssetClass, symbol string, quantity Quantity, price Money, action Action) (Transaction, error) {
	if symbol == "" {
		return Transaction{}, errors.New("symbol is missing")
	}
	if !quantity.IsPositive() {
		return Transaction{}, errors.New("quantity must be positive")
	}
	if !price.IsPositive() {
		return Transaction{}, errors.New("price must be positive")
	}
	if day.IsZero() {
		day = Today()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return Transaction{}, fmt.Errorf("failed to begin trade: %w", err)
	}
	defer tx.Rollback()

	held, err := positionInTx(tx, symbol)
	exists := err == nil
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return Transaction{}, err
	}

	switch action {
	case ActionBuy:
		if exists {
			updated := applyBuy(held, quantity, price)
			_, err = tx.Exec("UPDATE positions SET quantity = ?, avg_cost = ? WHERE id = ?",
				updated.Quantity.Decimal().String(), updated.AvgCost.Decimal().String(), held.ID)
		} else {
			_, err = tx.Exec("INSERT INTO positions (asset_class, symbol, quantity, avg_cost) VALUES (?, ?, ?, ?)",
				string(class), symbol, quantity.Decimal().String(), price.Decimal().String())
		}
	case ActionSell:
		if !exists {
			return Transaction{}, ErrNoPosition
		}
		updated, liquidated := applySell(held, quantity)
		if liquidated {
			_, err = tx.Exec("DELETE FROM positions WHERE id = ?", held.ID)
		} else {
			_, err = tx.Exec("UPDATE positions SET quantity = ? WHERE id = ?",
				updated.Quantity.Decimal().String(), held.ID)
		}
	default:
		return Transaction{}, fmt.Errorf("unknown trade action: %q", action)
	}
	if err != nil {
		return Transaction{}, fmt.Errorf("failed to apply %s of %s: %w", action, symbol, err)
	}

	posting := newTradePosting(day, symbol, quantity, price, action == ActionBuy)
	if err := posting.Validate(); err != nil {
		return Transaction{}, err
	}
	res, err := tx.Exec(
		"INSERT INTO transactions (date, kind, category, amount, currency, description, position_symbol) VALUES (?, ?, ?, ?, ?, ?, ?)",
		posting.Date.String(), string(posting.Kind), posting.Category,
		posting.Amount.Decimal().String(), posting.Amount.Currency(), posting.Description, posting.PositionSymbol,
	)
	if err != nil {
		return Transaction{}, fmt.Errorf("failed to post %s of %s: %w", action, symbol, err)
	}
	posting.ID, err = res.LastInsertId()
	if err != nil {
		return Transaction{}, fmt.Errorf("failed to read generated id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Transaction{}, fmt.Errorf("failed to commit trade: %w", err)
	}
	return posting, nil
}

// EditPosition directly overrides quantity and average cost, bypassing the
// trade math. Meant for correcting data-entry mistakes. Setting the quantity
// to zero removes the position (a zero position is never persisted); the
// ledger is left untouched in that case.
func (s *Store) EditPosition(id int64, quantity Quantity, avgCost Money) error {
	if quantity.IsNegative() {
		return errors.New("quantity cannot be negative")
	}
	if avgCost.IsNegative() {
		return errors.New("average cost cannot be negative")
	}
	if quantity.IsZero() {
		res, err := s.db.Exec("DELETE FROM positions WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("failed to delete position %d: %w", id, err)
		}
		return oneRow(res)
	}
	res, err := s.db.Exec("UPDATE positions SET quantity = ?, avg_cost = ? WHERE id = ?",
		quantity.Decimal().String(), avgCost.Decimal().String(), id)
	if err != nil {
		return fmt.Errorf("failed to edit position %d: %w", id, err)
	}
	return oneRow(res)
}

// DeletePosition removes a position and cascades to the investment postings
// it generated. Postings are matched by the position tag; rows without a tag
// (imported from older data) fall back to the "<symbol> " description prefix.
// The space in the prefix keeps "BTC" from matching "BTC-USD" postings.
// Zero matched postings is not an error.
func (s *Store) DeletePosition(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin delete: %w", err)
	}
	defer tx.Rollback()

	var symbol string
	if err := tx.QueryRow("SELECT symbol FROM positions WHERE id = ?", id).Scan(&symbol); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to read position %d: %w", id, err)
	}

	if _, err := tx.Exec("DELETE FROM positions WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete position %d: %w", id, err)
	}
	_, err = tx.Exec(
		"DELETE FROM transactions WHERE category = ? AND (position_symbol = ? OR (position_symbol = '' AND description LIKE ?))",
		CategoryInvestment, symbol, symbol+" %",
	)
	if err != nil {
		return fmt.Errorf("failed to cascade delete postings of %s: %w", symbol, err)
	}
	return tx.Commit()
}

// scannable is satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

func scanPosition(row scannable) (Position, error) {
	var p Position
	var class, quantity, avgCost string
	if err := row.Scan(&p.ID, &class, &p.Symbol, &quantity, &avgCost); err != nil {
		return p, err
	}
	qty, err := decimal.NewFromString(quantity)
	if err != nil {
		return p, fmt.Errorf("corrupt quantity in position %d: %w", p.ID, err)
	}
	cost, err := decimal.NewFromString(avgCost)
	if err != nil {
		return p, fmt.Errorf("corrupt avg cost in position %d: %w", p.ID, err)
	}
	p.Class = AssetClass(class)
	p.Quantity = Q(qty)
	p.AvgCost = M(cost, "TRY")
	return p, nil
}

func positionInTx(tx *sql.Tx, symbol string) (Position, error) {
	return scanPosition(tx.QueryRow("SELECT id, asset_class, symbol, quantity, avg_cost FROM positions WHERE symbol = ?", symbol))
}
