// Package position folds a transaction ledger into per-ticker holdings and derives the
// portfolio metrics, dividend calendar and chart series shown on the dashboard.
//
// Every function in this package is pure: it reads its arguments, allocates its result and
// has no side effects, so callers may recompute on every change to the ledger or market data.
package position
