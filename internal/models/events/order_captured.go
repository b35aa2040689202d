package events

import "time"

// OrderCaptured is published after an order row has been committed to the ledger.
type OrderCaptured struct {
	EventID    string    `json:"event_id"`
	Buyer      string    `json:"buyer"`
	Product    string    `json:"product"`
	Quantity   int       `json:"quantity"`
	Source     string    `json:"source"` // chat, whatsapp, api
	OccurredAt time.Time `json:"occurred_at"`
}
