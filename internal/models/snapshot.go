package models

// Snapshot is the dashboard projection of the ledger.
// All four slices have the same length and are index-aligned, oldest order first.
type Snapshot struct {
	Labels     []string `json:"labels"`
	Buyers     []string `json:"buyers"`
	Products   []string `json:"products"`
	Quantities []int    `json:"quantities"`
}

// NewSnapshot returns an empty snapshot whose slices marshal as [] rather than null.
func NewSnapshot(capacity int) Snapshot {
	return Snapshot{
		Labels:     make([]string, 0, capacity),
		Buyers:     make([]string, 0, capacity),
		Products:   make([]string, 0, capacity),
		Quantities: make([]int, 0, capacity),
	}
}

// Len reports the number of orders in the snapshot.
func (s Snapshot) Len() int { return len(s.Labels) }
