package interfaces

import (
	"context"
)

// LedgerStore is the durable medium behind the order ledger.
// Implementations are not required to serialize writers themselves; the
// ledger package holds the single-writer lock around EnsureHeader and AppendRow.
type LedgerStore interface {
	// EnsureHeader writes the header row if the store is absent or empty.
	EnsureHeader(ctx context.Context) error
	// AppendRow commits one complete data row.
	AppendRow(ctx context.Context, row []string) error
	// ReadRows returns every committed row, header first, or nothing if the
	// store was never initialized.
	ReadRows(ctx context.Context) ([][]string, error)
	Close() error
}
