package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikh-saqib/tea-order-assistant/internal/config"
	"github.com/sheikh-saqib/tea-order-assistant/internal/storage/csvfile"
	"github.com/sheikh-saqib/tea-order-assistant/internal/storage/memory"
	"github.com/sheikh-saqib/tea-order-assistant/internal/storage/postgres"
)

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv")

	s, err := Open(config.Config{LedgerBackend: config.BackendCSV, LedgerPath: path})
	require.NoError(t, err)
	assert.IsType(t, &csvfile.CSVLedgerStore{}, s)
	assert.NoFileExists(t, path)

	s, err = Open(config.Config{LedgerBackend: config.BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &memory.MemoryLedgerStore{}, s)

	// sql.Open does not dial, so no server is needed here.
	s, err = Open(config.Config{LedgerBackend: config.BackendPostgres, DatabaseURL: "postgres://localhost/tea?sslmode=disable"})
	require.NoError(t, err)
	assert.IsType(t, &postgres.PostgresLedgerStore{}, s)
	_ = s.Close()

	_, err = Open(config.Config{LedgerBackend: "bolt"})
	assert.Error(t, err)
}
