package models

import (
	"strconv"
	"time"
)

// LedgerHeader is the fixed column layout of the order ledger.
// Every backend must emit it as the first row.
var LedgerHeader = []string{"Time", "Buyer", "Product", "Quantity"}

// LedgerTimeLayout is how OrderRecord.Time is written into a ledger row.
const LedgerTimeLayout = time.RFC3339

// OrderRecord represents a single confirmed order in the ledger.
// Records are immutable once appended.
type OrderRecord struct {
	Time     time.Time // when the order was captured
	Buyer    string    // who placed the order
	Product  string    // e.g. "Green Tea"
	Quantity int       // kilograms, never negative
}

// Row renders the record in ledger column order.
func (r OrderRecord) Row() []string {
	return []string{
		r.Time.UTC().Format(LedgerTimeLayout),
		r.Buyer,
		r.Product,
		strconv.Itoa(r.Quantity),
	}
}
