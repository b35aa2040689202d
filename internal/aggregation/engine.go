// Package aggregation projects the order ledger into the dashboard snapshot.
package aggregation

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/tea-order-assistant/internal/models"
	"github.com/sheikh-saqib/tea-order-assistant/internal/pkg/logger"
)

// RowReader is the read side of the ledger.
type RowReader interface {
	ReadAll(ctx context.Context) ([][]string, error)
}

// Engine is stateless: every Snapshot call rescans the ledger.
type Engine struct {
	rows RowReader
	log  *logger.Logger
}

func NewEngine(rows RowReader, log *logger.Logger) *Engine {
	if log == nil {
		log = logger.NewNop()
	}
	return &Engine{rows: rows, log: log}
}

// Snapshot builds the parallel arrays in ledger order. Rows with a missing
// field are dropped; an unparseable quantity counts as 0. Only a failure to
// read the ledger is returned as an error.
func (e *Engine) Snapshot(ctx context.Context) (models.Snapshot, error) {
	rows, err := e.rows.ReadAll(ctx)
	if err != nil {
		return models.NewSnapshot(0), err
	}

	snap := models.NewSnapshot(len(rows))
	dropped := 0
	for i, row := range rows {
		if i == 0 && isHeader(row) {
			continue
		}
		if !complete(row) {
			dropped++
			continue
		}
		snap.Labels = append(snap.Labels, strings.TrimSpace(row[0]))
		snap.Buyers = append(snap.Buyers, strings.TrimSpace(row[1]))
		snap.Products = append(snap.Products, strings.TrimSpace(row[2]))
		snap.Quantities = append(snap.Quantities, ParseQuantity(row[3]))
	}
	if dropped > 0 {
		e.log.Debug("dropped malformed ledger rows", "dropped", dropped, "kept", snap.Len())
	}
	return snap, nil
}

var maxQuantity = decimal.NewFromInt(math.MaxInt)

// Exponents outside this window make decimal rescale into huge big.Ints.
const (
	minQuantityExp = -64
	maxQuantityExp = 18
)

// ParseQuantity coerces a ledger quantity to a non-negative int.
// "20" and "20.0" both give 20; anything unparseable or out of range gives 0.
func ParseQuantity(raw string) int {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		if n < 0 {
			return 0
		}
		return n
	}

	d, err := decimal.NewFromString(raw)
	if err != nil || d.Exponent() < minQuantityExp || d.Exponent() > maxQuantityExp {
		return 0
	}
	if d.IsNegative() || d.GreaterThan(maxQuantity) {
		return 0
	}
	return int(d.IntPart())
}

func isHeader(row []string) bool {
	if len(row) != len(models.LedgerHeader) {
		return false
	}
	for i, col := range models.LedgerHeader {
		if !strings.EqualFold(strings.TrimSpace(row[i]), col) {
			return false
		}
	}
	return true
}

func complete(row []string) bool {
	if len(row) < len(models.LedgerHeader) {
		return false
	}
	for _, field := range row[:len(models.LedgerHeader)] {
		if strings.TrimSpace(field) == "" {
			return false
		}
	}
	return true
}
