package classifier

import (
	"strings"

	"github.com/helmcode/sentiment-triage/pkg/model"
)

// Classifier assigns a sentiment and severity to text by keyword matching.
// It holds no mutable state and is safe for concurrent use.
type Classifier struct {
	rules RuleSet
}

// New returns a Classifier using the built-in keyword table.
func New() *Classifier {
	return &Classifier{rules: DefaultRules().normalized()}
}

// NewWithRules returns a Classifier for a custom rule table.
func NewWithRules(rs RuleSet) (*Classifier, error) {
	if err := rs.Validate(); err != nil {
		return nil, err
	}
	return &Classifier{rules: rs.normalized()}, nil
}

// NewFromFile loads a rule table from path. An empty path means the
// built-in table.
func NewFromFile(path string) (*Classifier, error) {
	if path == "" {
		return New(), nil
	}
	rs, err := LoadRules(path)
	if err != nil {
		return nil, err
	}
	return &Classifier{rules: rs}, nil
}

// Classify lower-cases text and returns the result of the first rule with a
// keyword contained in it, or the default result.
func (c *Classifier) Classify(text string) model.ClassificationResult {
	lower := strings.ToLower(text)
	for _, r := range c.rules.Rules {
		for _, kw := range r.Keywords {
			if strings.Contains(lower, kw) {
				return model.ClassificationResult{Sentiment: r.Sentiment, Severity: r.Severity}
			}
		}
	}
	return c.rules.Default
}

var defaultClassifier = New()

// Classify classifies text with the built-in keyword table.
func Classify(text string) model.ClassificationResult {
	return defaultClassifier.Classify(text)
}
