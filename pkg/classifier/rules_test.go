package classifier

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helmcode/sentiment-triage/pkg/model"
)

const customRules = `
rules:
  - sentiment: negative
    severity: high
    keywords: ["Fire", "smoke"]
  - sentiment: positive
    severity: low
    keywords: [thanks]
default:
  sentiment: neutral
  severity: medium
`

func TestParseRules(t *testing.T) {
	rs, err := ParseRules([]byte(customRules))
	require.NoError(t, err)

	require.Len(t, rs.Rules, 2)
	assert.Equal(t, []string{"fire", "smoke"}, rs.Rules[0].Keywords)
	assert.Equal(t, model.SeverityMedium, rs.Default.Severity)
}

func TestParseRulesDefaultsOmittedDefault(t *testing.T) {
	rs, err := ParseRules([]byte("rules:\n  - {sentiment: negative, severity: low, keywords: [x]}\n"))
	require.NoError(t, err)
	assert.Equal(t, neuLow, rs.Default)
}

func TestParseRulesErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"no rules", "rules: []\n", "no rules"},
		{"bad sentiment", "rules:\n  - {sentiment: angry, severity: low, keywords: [x]}\n", "unknown sentiment"},
		{"bad severity", "rules:\n  - {sentiment: negative, severity: extreme, keywords: [x]}\n", "unknown severity"},
		{"no keywords", "rules:\n  - {sentiment: negative, severity: low}\n", "no keywords"},
		{"blank keyword", "rules:\n  - {sentiment: negative, severity: low, keywords: [\" \"]}\n", "empty keyword"},
		{"bad default", "rules:\n  - {sentiment: negative, severity: low, keywords: [x]}\ndefault: {sentiment: meh, severity: low}\n", "default"},
		{"not yaml", "rules: [", "parse rules"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRules([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(customRules), 0o644))

	c, err := NewFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, negHigh, c.Classify("I smell SMOKE"))
	assert.Equal(t, posLow, c.Classify("thanks a lot"))
	assert.Equal(t, model.ClassificationResult{Sentiment: model.SentimentNeutral, Severity: model.SeverityMedium}, c.Classify("emergency"))
}

func TestNewFromFileMissing(t *testing.T) {
	_, err := NewFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read rules file")
}
