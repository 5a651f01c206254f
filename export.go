package finasist

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// this file contains functions to handle the import/export format.
// It should remain human readable, single file and be easy to merge into a database.
//
// The format is JSONL: one record per line, each line a JSON object with a
// "record" property naming the set it belongs to (transaction, position,
// snapshot).

type recordKind string

const (
	recTransaction recordKind = "transaction"
	recPosition    recordKind = "position"
	recSnapshot    recordKind = "snapshot"
)

// jamount reads a Money persisted as two fields.
type jamount struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func (a jamount) Money() Money { return M(a.Amount, a.Currency) }

type jtransaction struct {
	Record recordKind `json:"record"`
	Date   Date       `json:"date"`
	Kind   Kind       `json:"kind"`
	jamount
	Category       string `json:"category"`
	Description    string `json:"description,omitempty"`
	PositionSymbol string `json:"position_symbol,omitempty"`
}

type jposition struct {
	Record   recordKind      `json:"record"`
	Class    AssetClass      `json:"asset_class"`
	Symbol   string          `json:"symbol"`
	Quantity Quantity        `json:"quantity"`
	AvgCost  decimal.Decimal `json:"avg_cost"`
}

type jsnapshot struct {
	Record         recordKind      `json:"record"`
	Date           Date            `json:"date"`
	NetWorth       decimal.Decimal `json:"net_worth"`
	CashBalance    decimal.Decimal `json:"cash_balance"`
	PortfolioValue decimal.Decimal `json:"portfolio_value"`
}

// Export writes every record of the store to w in the import/export format,
// one JSON object per line. IDs are not exported, they are reassigned on
// import.
func (s *Store) Export(w io.Writer) error {
	enc := json.NewEncoder(w)

	txs, err := s.Transactions()
	if err != nil {
		return err
	}
	// oldest first so a re-import preserves the ledger order
	for i := len(txs) - 1; i >= 0; i-- {
		t := txs[i]
		j := jtransaction{
			Record: recTransaction, Date: t.Date, Kind: t.Kind,
			jamount:        jamount{Amount: t.Amount.Decimal(), Currency: t.Amount.Currency()},
			Category:       t.Category,
			Description:    t.Description,
			PositionSymbol: t.PositionSymbol,
		}
		if err := enc.Encode(j); err != nil {
			return fmt.Errorf("cannot export transaction %d: %w", t.ID, err)
		}
	}

	positions, err := s.Positions()
	if err != nil {
		return err
	}
	for _, p := range positions {
		j := jposition{Record: recPosition, Class: p.Class, Symbol: p.Symbol, Quantity: p.Quantity, AvgCost: p.AvgCost.Decimal()}
		if err := enc.Encode(j); err != nil {
			return fmt.Errorf("cannot export position %q: %w", p.Symbol, err)
		}
	}

	history, err := s.History()
	if err != nil {
		return err
	}
	for _, snap := range history {
		j := jsnapshot{
			Record: recSnapshot, Date: snap.Date,
			NetWorth:       snap.NetWorth.Decimal(),
			CashBalance:    snap.CashBalance.Decimal(),
			PortfolioValue: snap.PortfolioValue.Decimal(),
		}
		if err := enc.Encode(j); err != nil {
			return fmt.Errorf("cannot export snapshot %s: %w", snap.Date, err)
		}
	}
	return nil
}

// Import reads records in the import/export format from r and merges them
// into the store: transactions are appended, positions are bought into the
// ledger via the trade-free direct path, snapshots are upserted.
func (s *Store) Import(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var identifier struct {
			Record recordKind `json:"record"`
		}
		if err := json.Unmarshal(line, &identifier); err != nil {
			return fmt.Errorf("could not identify record in line %q: %w", string(line), err)
		}

		switch identifier.Record {
		case recTransaction:
			var j jtransaction
			if err := json.Unmarshal(line, &j); err != nil {
				return fmt.Errorf("cannot parse transaction line %q: %w", string(line), err)
			}
			t := Transaction{Date: j.Date, Kind: j.Kind, Category: j.Category, Amount: j.Money(), Description: j.Description, PositionSymbol: j.PositionSymbol}
			if err := s.AddTransaction(&t); err != nil {
				return err
			}
		case recPosition:
			var j jposition
			if err := json.Unmarshal(line, &j); err != nil {
				return fmt.Errorf("cannot parse position line %q: %w", string(line), err)
			}
			_, err := s.db.Exec("INSERT INTO positions (asset_class, symbol, quantity, avg_cost) VALUES (?, ?, ?, ?)",
				string(j.Class), j.Symbol, j.Quantity.Decimal().String(), j.AvgCost.String())
			if err != nil {
				return fmt.Errorf("cannot import position %q: %w", j.Symbol, err)
			}
		case recSnapshot:
			var j jsnapshot
			if err := json.Unmarshal(line, &j); err != nil {
				return fmt.Errorf("cannot parse snapshot line %q: %w", string(line), err)
			}
			snap := Snapshot{Date: j.Date, NetWorth: M(j.NetWorth, "TRY"), CashBalance: M(j.CashBalance, "TRY"), PortfolioValue: M(j.PortfolioValue, "TRY")}
			if err := s.UpsertSnapshot(snap); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown record kind %q in line %q", identifier.Record, string(line))
		}
	}
	return scanner.Err()
}
