package intent

// Classifier evaluates rules in order; the first match wins. It holds no
// mutable state and is safe for concurrent use.
type Classifier struct {
	rules []Rule
}

func NewClassifier(rules ...Rule) *Classifier {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Classifier{rules: rules}
}

// Classify never fails: a rule that errors or panics resolves to Unknown.
func (c *Classifier) Classify(text string) (in Intent) {
	defer func() {
		if r := recover(); r != nil {
			in = Unknown()
		}
	}()

	for _, rule := range c.rules {
		got, ok, err := rule.Match(text)
		if err != nil {
			return Unknown()
		}
		if ok {
			return got
		}
	}
	return Unknown()
}
