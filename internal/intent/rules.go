package intent

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Rule inspects raw message text. ok reports a match; a
// non-nil error means the rule matched but could not build its intent.
type Rule struct {
	Name  string
	Match func(text string) (in Intent, ok bool, err error)
}

// teaKinds are the products the order rule recognizes.
var teaKinds = []string{"green", "black", "herbal"}

var orderPattern = regexp.MustCompile(`(?is)(\d+)\s*kgs?\b.*?\b(` + strings.Join(teaKinds, "|") + `)\s+tea\b`)

// OrderRule matches "<n> kg ... <kind> tea" with any words in between.
func OrderRule() Rule {
	return Rule{
		Name: "order",
		Match: func(text string) (Intent, bool, error) {
			m := orderPattern.FindStringSubmatch(text)
			if m == nil {
				return Intent{}, false, nil
			}
			qty, err := strconv.Atoi(m[1])
			if err != nil {
				return Intent{}, true, fmt.Errorf("parse quantity %q: %w", m[1], err)
			}
			return Order(productName(m[2]), qty), true, nil
		},
	}
}

// KeywordRule matches when any keyword occurs as a case-insensitive substring.
// Substring matching means "hi" also fires inside "history".
func KeywordRule(name string, build func() Intent, keywords ...string) Rule {
	return Rule{
		Name: name,
		Match: func(text string) (Intent, bool, error) {
			lower := strings.ToLower(text)
			for _, kw := range keywords {
				if strings.Contains(lower, kw) {
					return build(), true, nil
				}
			}
			return Intent{}, false, nil
		},
	}
}

// DefaultRules returns the rule set in priority order.
func DefaultRules() []Rule {
	return []Rule{
		OrderRule(),
		KeywordRule("price", PriceInquiry, "price", "cost"),
		KeywordRule("greeting", Greeting, "hi", "hello", "hey"),
	}
}

// productName turns "BLACK" into "Black Tea".
func productName(kind string) string {
	kind = strings.ToLower(kind)
	if kind == "" {
		return "Tea"
	}
	return strings.ToUpper(kind[:1]) + kind[1:] + " Tea"
}
