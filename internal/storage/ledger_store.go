package storage

import (
	"database/sql"
	"fmt"

	"github.com/sheikh-saqib/tea-order-assistant/internal/config"
	interfaces "github.com/sheikh-saqib/tea-order-assistant/internal/interfaces"
	"github.com/sheikh-saqib/tea-order-assistant/internal/storage/csvfile"
	"github.com/sheikh-saqib/tea-order-assistant/internal/storage/memory"
	"github.com/sheikh-saqib/tea-order-assistant/internal/storage/postgres"
)

// Open builds the ledger backend selected by cfg.LedgerBackend.
// Nothing is created on disk or in the database until the first write.
func Open(cfg config.Config) (interfaces.LedgerStore, error) {
	switch cfg.LedgerBackend {
	case config.BackendCSV, "":
		return csvfile.NewCSVLedgerStore(cfg.LedgerPath), nil
	case config.BackendMemory:
		return memory.NewMemoryLedgerStore(), nil
	case config.BackendPostgres:
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return postgres.NewPostgresLedgerStore(db), nil
	default:
		return nil, fmt.Errorf("unknown ledger backend %q", cfg.LedgerBackend)
	}
}
