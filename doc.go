// Package finasist provides the types and functions for tracking a
// household's finances: a cash ledger, an investment portfolio and the
// net worth they add up to. It is designed to be local-first, with all
// data kept in a single SQLite file the user owns.
//
// The core functionalities include:
//   - Ledger Management: Recording income and expense entries, each with a
//     date, a category and an amount, and deriving the cash balance from them.
//   - Position Tracking: Maintaining one position per symbol with a
//     weighted-average cost, updated atomically by buy and sell trades that
//     also post their cash leg to the ledger.
//   - Market Data Integration: Fetching live fund and quote prices, falling
//     back to average cost when a price cannot be obtained, so valuations
//     stay meaningful offline.
//   - Net-Worth History: Recording one valuation snapshot per day and
//     serving it back as a time series.
//   - Interest Accrual: Computing the net daily return of an overnight
//     deposit and posting it to the ledger.
//   - Data Persistence: Exporting and importing the whole database as
//     human-readable JSONL.
//
// This package serves as the foundational logic for the `fa` command-line
// tool, ensuring that all operations are consistent and based on a single
// source of truth.
package finasist
