package ledger

import (
	"context"
	"sync"

	"github.com/sheikh-saqib/tea-order-assistant/internal/apperr"
	interfaces "github.com/sheikh-saqib/tea-order-assistant/internal/interfaces"
	"github.com/sheikh-saqib/tea-order-assistant/internal/models"
)

// Ledger is the append-only record of confirmed orders.
// It holds a reference to the storage layer and the single-writer lock:
// header creation and row appends all go through writeMu, so rows are never
// interleaved and the header is written at most once.
type Ledger struct {
	store   interfaces.LedgerStore // any LedgerStore implementation (csv file, memory, postgres)
	writeMu sync.Mutex
	ready   bool // header known to exist; guarded by writeMu
}

// NewLedger creates a Ledger on top of store. Nothing is written until the
// first EnsureInitialized or Append.
func NewLedger(store interfaces.LedgerStore) *Ledger {
	return &Ledger{
		store: store,
	}
}

// EnsureInitialized writes the header row if the store is absent or empty.
// Safe to call any number of times.
func (l *Ledger) EnsureInitialized(ctx context.Context) error {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()

	return l.ensureLocked(ctx)
}

func (l *Ledger) ensureLocked(ctx context.Context) error {
	if l.ready {
		return nil
	}
	if err := l.store.EnsureHeader(ctx); err != nil {
		return apperr.Storage("ledger.init", err)
	}
	l.ready = true
	return nil
}

// Append commits exactly one row for rec. The row is fully written before the
// lock is released, so concurrent readers never see part of it.
func (l *Ledger) Append(ctx context.Context, rec models.OrderRecord) error {
	if rec.Quantity < 0 {
		return apperr.Validation("ledger.append", "quantity must not be negative, got %d", rec.Quantity)
	}

	l.writeMu.Lock()
	defer l.writeMu.Unlock()

	if err := l.ensureLocked(ctx); err != nil {
		return err
	}
	if err := l.store.AppendRow(ctx, rec.Row()); err != nil {
		return apperr.Storage("ledger.append", err)
	}
	return nil
}

// ReadAll returns the raw rows, header first, or an empty slice if the ledger
// was never initialized. It does not take the write lock.
func (l *Ledger) ReadAll(ctx context.Context) ([][]string, error) {
	rows, err := l.store.ReadRows(ctx)
	if err != nil {
		return nil, apperr.Storage("ledger.read", err)
	}
	if rows == nil {
		rows = [][]string{}
	}
	return rows, nil
}

// Close releases the underlying store. Called once at shutdown.
func (l *Ledger) Close() error {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()

	l.ready = false
	if err := l.store.Close(); err != nil {
		return apperr.Storage("ledger.close", err)
	}
	return nil
}
