package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/lib/pq"

	interfaces "github.com/sheikh-saqib/tea-order-assistant/internal/interfaces" // interface LedgerStore
	"github.com/sheikh-saqib/tea-order-assistant/internal/models"
)

// undefinedTable is the SQLSTATE postgres returns for a missing relation.
const undefinedTable = "42P01"

// PostgresLedgerStore keeps ledger rows verbatim in the order_ledger table.
// The serial seq column preserves append order; the header row is implied by
// the table existing.
type PostgresLedgerStore struct {
	db          *sql.DB
	initialized atomic.Bool
}

func NewPostgresLedgerStore(db *sql.DB) *PostgresLedgerStore {
	return &PostgresLedgerStore{
		db: db,
	}
}

func (p *PostgresLedgerStore) EnsureHeader(ctx context.Context) error {
	if p.initialized.Load() {
		return nil
	}
	const query = `CREATE TABLE IF NOT EXISTS order_ledger (
	seq BIGSERIAL PRIMARY KEY,
	ordered_at TEXT NOT NULL,
	buyer TEXT NOT NULL,
	product TEXT NOT NULL,
	quantity TEXT NOT NULL
)`
	if _, err := p.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create order_ledger: %w", err)
	}
	p.initialized.Store(true)
	return nil
}

func (p *PostgresLedgerStore) AppendRow(ctx context.Context, row []string) error {
	if len(row) != len(models.LedgerHeader) {
		return fmt.Errorf("ledger row has %d fields, want %d", len(row), len(models.LedgerHeader))
	}
	if err := p.EnsureHeader(ctx); err != nil {
		return err
	}

	const query = `INSERT INTO order_ledger (ordered_at, buyer, product, quantity)
	VALUES ($1,$2,$3,$4)`

	_, err := p.db.ExecContext(ctx, query, row[0], row[1], row[2], row[3])
	return err
}

func (p *PostgresLedgerStore) ReadRows(ctx context.Context) ([][]string, error) {
	const query = `SELECT ordered_at, buyer, product, quantity FROM order_ledger ORDER BY seq`

	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == undefinedTable {
			return [][]string{}, nil
		}
		return nil, err
	}
	defer rows.Close()

	out := [][]string{append([]string(nil), models.LedgerHeader...)}
	for rows.Next() {
		var ts, buyer, product, quantity string
		if err := rows.Scan(&ts, &buyer, &product, &quantity); err != nil {
			// Skip the row, keep reading the rest.
			continue
		}
		out = append(out, []string{ts, buyer, product, quantity})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *PostgresLedgerStore) Close() error {
	return p.db.Close()
}

var _ interfaces.LedgerStore = (*PostgresLedgerStore)(nil)
