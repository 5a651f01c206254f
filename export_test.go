package finasist

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestExportImportRoundTrip(t *testing.T) {
	src := newTestStore(t)
	day := NewDate(2025, time.March, 1)

	salary := NewTransaction(day, Income, "Salary", TRY(50000), "march salary")
	if err := src.AddTransaction(&salary); err != nil {
		t.Fatalf("AddTransaction() error = %v", err)
	}
	if _, err := src.RecordTrade(day.Add(1), StockCrypto, "THYAO.IS", Q(100), TRY(10), ActionBuy); err != nil {
		t.Fatalf("RecordTrade() error = %v", err)
	}
	snap := Snapshot{Date: day.Add(2), NetWorth: TRY(50200), CashBalance: TRY(49000), PortfolioValue: TRY(1200)}
	if err := src.UpsertSnapshot(snap); err != nil {
		t.Fatalf("UpsertSnapshot() error = %v", err)
	}

	var buf bytes.Buffer
	if err := src.Export(&buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	dst := newTestStore(t)
	if err := dst.Import(&buf); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	srcTxs, _ := src.Transactions()
	dstTxs, err := dst.Transactions()
	if err != nil {
		t.Fatalf("Transactions() error = %v", err)
	}
	if len(dstTxs) != len(srcTxs) {
		t.Fatalf("round trip kept %d transactions, want %d", len(dstTxs), len(srcTxs))
	}
	for i := range srcTxs {
		a, b := srcTxs[i], dstTxs[i]
		if a.Date != b.Date || a.Kind != b.Kind || a.Category != b.Category ||
			!a.Amount.Equal(b.Amount) || a.Description != b.Description || a.PositionSymbol != b.PositionSymbol {
			t.Errorf("transaction %d differs after round trip:\n got %+v\nwant %+v", i, b, a)
		}
	}

	p, err := dst.PositionBySymbol("THYAO.IS")
	if err != nil {
		t.Fatalf("PositionBySymbol() error = %v", err)
	}
	if !p.Quantity.Equal(Q(100)) || !p.AvgCost.Equal(TRY(10)) || p.Class != StockCrypto {
		t.Errorf("position after round trip = %s, want 100 @ 10", p)
	}

	history, err := dst.History()
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 1 || !history[0].NetWorth.Equal(snap.NetWorth) || history[0].Date != snap.Date {
		t.Errorf("snapshot after round trip = %+v, want %+v", history, snap)
	}

	// derived values survive too
	srcBalance, _ := src.CashBalance()
	dstBalance, err := dst.CashBalance()
	if err != nil {
		t.Fatalf("CashBalance() error = %v", err)
	}
	if !srcBalance.Equal(dstBalance) {
		t.Errorf("cash balance after round trip = %s, want %s", dstBalance, srcBalance)
	}
}

func TestExportOrder(t *testing.T) {
	s := newTestStore(t)

	first := NewTransaction(NewDate(2025, time.January, 1), Income, "Salary", TRY(100), "first")
	second := NewTransaction(NewDate(2025, time.February, 1), Income, "Salary", TRY(200), "second")
	for _, tx := range []*Transaction{&first, &second} {
		if err := s.AddTransaction(tx); err != nil {
			t.Fatalf("AddTransaction() error = %v", err)
		}
	}

	var buf bytes.Buffer
	if err := s.Export(&buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Export() wrote %d lines, want 2", len(lines))
	}
	// oldest first so a re-import preserves the ledger order
	if !strings.Contains(lines[0], "first") || !strings.Contains(lines[1], "second") {
		t.Errorf("Export() not oldest first:\n%s", buf.String())
	}
}

func TestImportSkipsBlankLines(t *testing.T) {
	s := newTestStore(t)

	input := `{"record":"transaction","date":"2025-03-01","kind":"income","amount":100,"currency":"TRY","category":"Salary"}

{"record":"snapshot","date":"2025-03-01","net_worth":100,"cash_balance":100,"portfolio_value":0}
`
	if err := s.Import(strings.NewReader(input)); err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	txs, _ := s.Transactions()
	history, _ := s.History()
	if len(txs) != 1 || len(history) != 1 {
		t.Errorf("Import() kept %d transactions and %d snapshots, want 1 and 1", len(txs), len(history))
	}
}

func TestImportRejectsUnknownRecord(t *testing.T) {
	s := newTestStore(t)

	if err := s.Import(strings.NewReader(`{"record":"budget","amount":1}`)); err == nil {
		t.Error("Import() accepted an unknown record kind")
	}
}
