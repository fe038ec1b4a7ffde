package classifier

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/helmcode/sentiment-triage/pkg/model"
)

// Rule maps a keyword set to a sentiment/severity pair.
type Rule struct {
	Sentiment model.Sentiment `yaml:"sentiment"`
	Severity  model.Severity  `yaml:"severity"`
	Keywords  []string        `yaml:"keywords"`
}

// RuleSet is an ordered list of rules evaluated first-match-wins, plus the
// result used when nothing matches.
type RuleSet struct {
	Rules   []Rule                     `yaml:"rules"`
	Default model.ClassificationResult `yaml:"default"`
}

// DefaultRules returns the built-in keyword table.
func DefaultRules() RuleSet {
	return RuleSet{
		Rules: []Rule{
			{
				Sentiment: model.SentimentNegative,
				Severity:  model.SeverityHigh,
				Keywords:  []string{"emergency", "danger", "attack", "incident", "harassment", "assault", "unsafe", "bad touch"},
			},
			{
				Sentiment: model.SentimentPositive,
				Severity:  model.SeverityLow,
				Keywords:  []string{"safe", "help", "support", "positive", "consent", "empower", "resource"},
			},
			{
				Sentiment: model.SentimentNegative,
				Severity:  model.SeverityMedium,
				Keywords:  []string{"alert", "warning"},
			},
		},
		Default: model.ClassificationResult{
			Sentiment: model.SentimentNeutral,
			Severity:  model.SeverityLow,
		},
	}
}

// LoadRules reads a YAML rule table from path.
func LoadRules(path string) (RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RuleSet{}, fmt.Errorf("read rules file: %w", err)
	}
	return ParseRules(data)
}

// ParseRules decodes and validates a YAML rule table. An omitted default
// falls back to neutral/low.
func ParseRules(data []byte) (RuleSet, error) {
	var rs RuleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return RuleSet{}, fmt.Errorf("parse rules: %w", err)
	}
	if rs.Default == (model.ClassificationResult{}) {
		rs.Default = DefaultRules().Default
	}
	if err := rs.Validate(); err != nil {
		return RuleSet{}, err
	}
	return rs.normalized(), nil
}

// Validate checks that every label is known and every rule has keywords.
func (rs RuleSet) Validate() error {
	if len(rs.Rules) == 0 {
		return fmt.Errorf("rule set has no rules")
	}
	for i, r := range rs.Rules {
		if !r.Sentiment.Valid() {
			return fmt.Errorf("rule %d: unknown sentiment %q", i, r.Sentiment)
		}
		if !r.Severity.Valid() {
			return fmt.Errorf("rule %d: unknown severity %q", i, r.Severity)
		}
		if len(r.Keywords) == 0 {
			return fmt.Errorf("rule %d: no keywords", i)
		}
		for _, kw := range r.Keywords {
			if strings.TrimSpace(kw) == "" {
				return fmt.Errorf("rule %d: empty keyword", i)
			}
		}
	}
	if !rs.Default.Sentiment.Valid() {
		return fmt.Errorf("default: unknown sentiment %q", rs.Default.Sentiment)
	}
	if !rs.Default.Severity.Valid() {
		return fmt.Errorf("default: unknown severity %q", rs.Default.Severity)
	}
	return nil
}

// normalized returns a copy with lower-cased keywords so matching against
// lower-cased text stays case-insensitive.
func (rs RuleSet) normalized() RuleSet {
	out := RuleSet{Default: rs.Default, Rules: make([]Rule, len(rs.Rules))}
	for i, r := range rs.Rules {
		kws := make([]string, len(r.Keywords))
		for j, kw := range r.Keywords {
			kws[j] = strings.ToLower(kw)
		}
		out.Rules[i] = Rule{Sentiment: r.Sentiment, Severity: r.Severity, Keywords: kws}
	}
	return out
}
