// Package intent turns free-text chat messages into structured intents and
// renders the reply for each intent.
package intent

import "fmt"

type Kind int

const (
	KindUnknown Kind = iota
	KindOrder
	KindPriceInquiry
	KindGreeting
)

func (k Kind) String() string {
	switch k {
	case KindOrder:
		return "order"
	case KindPriceInquiry:
		return "price_inquiry"
	case KindGreeting:
		return "greeting"
	default:
		return "unknown"
	}
}

// Intent is the classified purpose of one message. Product and Quantity are
// only set for KindOrder.
type Intent struct {
	Kind     Kind
	Product  string
	Quantity int
}

func Order(product string, quantity int) Intent {
	return Intent{Kind: KindOrder, Product: product, Quantity: quantity}
}

func PriceInquiry() Intent { return Intent{Kind: KindPriceInquiry} }

func Greeting() Intent { return Intent{Kind: KindGreeting} }

func Unknown() Intent { return Intent{Kind: KindUnknown} }

func (i Intent) String() string {
	if i.Kind == KindOrder {
		return fmt.Sprintf("order(%d kg %s)", i.Quantity, i.Product)
	}
	return i.Kind.String()
}
