package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLedgerStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryLedgerStore()

	rows, err := m.ReadRows(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)

	require.NoError(t, m.EnsureHeader(ctx))
	require.NoError(t, m.EnsureHeader(ctx))

	row := []string{"t1", "Alice", "Green Tea", "20"}
	require.NoError(t, m.AppendRow(ctx, row))
	row[1] = "Mallory"

	rows, err = m.ReadRows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Time", "Buyer", "Product", "Quantity"}, rows[0])
	assert.Equal(t, "Alice", rows[1][1])

	rows[1][1] = "Eve"
	again, _ := m.ReadRows(ctx)
	assert.Equal(t, "Alice", again[1][1])
}

func TestMemoryLedgerStore_AppendInitializes(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryLedgerStore()
	require.NoError(t, m.AppendRow(ctx, []string{"t1", "Bob", "Black Tea", "3"}))

	rows, err := m.ReadRows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Time", rows[0][0])
}
