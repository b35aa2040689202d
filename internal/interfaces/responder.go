package interfaces

import "context"

// Responder produces an open-domain reply for messages no rule understood.
type Responder interface {
	Respond(ctx context.Context, text string) (string, error)
}
