package intent

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/shopspring/decimal"
)

// RandomSource picks canned reply variants. *rand.Rand satisfies it.
type RandomSource interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Price is the list price of one product per kilogram, in USD.
type Price struct {
	Product string
	PerKg   decimal.Decimal
}

var DefaultPrices = []Price{
	{Product: "Green Tea", PerKg: decimal.RequireFromString("4.50")},
	{Product: "Black Tea", PerKg: decimal.RequireFromString("3.80")},
	{Product: "Herbal Tea", PerKg: decimal.RequireFromString("5.20")},
}

var GreetingReplies = []string{
	"Hello! I'm the Rwanda Mountain Tea assistant. How can I help you today?",
	`Hi there! Looking to order tea? Send something like "50kg green tea".`,
	`Hey! Ask me about prices or place an order, e.g. "100kg black tea".`,
}

var UnknownReplies = []string{
	`Sorry, I didn't catch that. You can order with a message like "200kg herbal tea".`,
	`I can help with tea orders and prices. Try asking "what's the price?".`,
	"I'm not sure I understood. To order, send the quantity in kg and the tea type (green, black or herbal).",
}

// Replier renders reply text for an intent. It does not classify.
type Replier struct {
	rng    RandomSource
	prices []Price
}

type ReplierOption func(*Replier)

func WithRandomSource(rng RandomSource) ReplierOption {
	return func(r *Replier) { r.rng = rng }
}

func WithPrices(prices []Price) ReplierOption {
	return func(r *Replier) { r.prices = prices }
}

func NewReplier(opts ...ReplierOption) *Replier {
	r := &Replier{rng: globalSource{}, prices: DefaultPrices}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Replier) Reply(in Intent) string {
	switch in.Kind {
	case KindOrder:
		return r.confirmation(in)
	case KindPriceInquiry:
		return r.PriceTable()
	case KindGreeting:
		return r.pick(GreetingReplies)
	default:
		return r.Fallback()
	}
}

// Fallback is the reply used for unknown messages and internal faults.
func (r *Replier) Fallback() string {
	return r.pick(UnknownReplies)
}

func (r *Replier) PriceTable() string {
	var b strings.Builder
	b.WriteString("💰 Current prices per kg:")
	for _, p := range r.prices {
		fmt.Fprintf(&b, "\n- %s: $%s", p.Product, p.PerKg.StringFixed(2))
	}
	return b.String()
}

// Estimate returns the list price of an order, or false for unpriced products.
func (r *Replier) Estimate(product string, quantity int) (decimal.Decimal, bool) {
	for _, p := range r.prices {
		if strings.EqualFold(p.Product, product) {
			return p.PerKg.Mul(decimal.NewFromInt(int64(quantity))), true
		}
	}
	return decimal.Zero, false
}

func (r *Replier) confirmation(in Intent) string {
	msg := fmt.Sprintf("✅ Order confirmed: %dkg of %s.", in.Quantity, in.Product)
	if total, ok := r.Estimate(in.Product, in.Quantity); ok {
		msg += fmt.Sprintf(" Estimated total: $%s.", total.StringFixed(2))
	}
	return msg + " Our team will contact you shortly."
}

func (r *Replier) pick(variants []string) string {
	if len(variants) == 0 {
		return ""
	}
	i := r.rng.IntN(len(variants))
	if i < 0 || i >= len(variants) {
		i = 0
	}
	return variants[i]
}
