package memory

import (
	"context" // standard Go package for request-scoped context (timeouts, cancellation)
	"sync"    // standard Go package for concurrency primitives like Mutex

	interfaces "github.com/sheikh-saqib/tea-order-assistant/internal/interfaces" // interface LedgerStore
	"github.com/sheikh-saqib/tea-order-assistant/internal/models"                // ledger header
)

// MemoryLedgerStore is an in-memory implementation of interfaces.LedgerStore.
// Rows live in a slice and vanish with the process; useful for tests and demos.
type MemoryLedgerStore struct {
	mu   sync.RWMutex // protects rows; readers share, writers exclude
	rows [][]string   // header first once initialized
}

// NewMemoryLedgerStore creates and returns an uninitialized store
func NewMemoryLedgerStore() *MemoryLedgerStore {
	return &MemoryLedgerStore{}
}

// EnsureHeader adds the header row if the store is still empty.
func (m *MemoryLedgerStore) EnsureHeader(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ensureHeaderLocked()
	return nil
}

func (m *MemoryLedgerStore) ensureHeaderLocked() {
	if len(m.rows) == 0 {
		m.rows = append(m.rows, cloneRow(models.LedgerHeader))
	}
}

// AppendRow stores a copy of row so later caller mutations cannot leak in.
func (m *MemoryLedgerStore) AppendRow(ctx context.Context, row []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ensureHeaderLocked()
	m.rows = append(m.rows, cloneRow(row))
	return nil
}

// ReadRows returns a deep copy of all rows so external code can't modify internal state.
func (m *MemoryLedgerStore) ReadRows(ctx context.Context) ([][]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	copied := make([][]string, len(m.rows))
	for i, row := range m.rows {
		copied[i] = cloneRow(row)
	}
	return copied, nil
}

func (m *MemoryLedgerStore) Close() error { return nil }

func cloneRow(row []string) []string {
	out := make([]string, len(row))
	copy(out, row)
	return out
}

// Compile-time check: ensure MemoryLedgerStore implements LedgerStore interface
var _ interfaces.LedgerStore = (*MemoryLedgerStore)(nil)
