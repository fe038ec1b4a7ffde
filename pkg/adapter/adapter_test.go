package adapter

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/helmcode/sentiment-triage/pkg/classifier"
	"github.com/helmcode/sentiment-triage/pkg/model"
	"github.com/helmcode/sentiment-triage/pkg/parser"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func run(t *testing.T, input string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err = New(nil, zap.NewNop()).Run(strings.NewReader(input), &out, &errOut)
	return out.String(), errOut.String(), err
}

func TestRunScenarios(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"emergency", `{"text":"There was an emergency"}`, `{"sentiment":"negative","severity":"high"}`},
		{"safe space", `{"text":"This is a safe space with support"}`, `{"sentiment":"positive","severity":"low"}`},
		{"warning", `{"text":"Please heed this warning"}`, `{"sentiment":"negative","severity":"medium"}`},
		{"normal day", `{"text":"Just a normal day"}`, `{"sentiment":"neutral","severity":"low"}`},
		{"missing text", `{"other":"danger"}`, `{"sentiment":"neutral","severity":"low"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, err := run(t, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want+"\n", stdout)
			assert.Empty(t, stderr)
		})
	}
}

func TestRunInvalidJSON(t *testing.T) {
	stdout, stderr, err := run(t, "not valid json")

	assert.True(t, errors.Is(err, parser.ErrInvalidJSON))
	assert.Empty(t, stdout)
	assert.Equal(t, `{"error":"Invalid JSON input"}`+"\n", stderr)
}

func TestRunGenericError(t *testing.T) {
	stdout, stderr, err := run(t, `{"text": 12}`)

	require.Error(t, err)
	assert.False(t, errors.Is(err, parser.ErrInvalidJSON))
	assert.Empty(t, stdout)
	assert.Equal(t, `{"error":"field \"text\" must be a string"}`+"\n", stderr)
}

func TestRunNullTextIsReported(t *testing.T) {
	stdout, stderr, err := run(t, `{"text":null}`)

	require.Error(t, err)
	assert.False(t, errors.Is(err, parser.ErrInvalidJSON))
	assert.Empty(t, stdout)
	assert.Equal(t, `{"error":"field \"text\" must be a string"}`+"\n", stderr)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("stdin closed") }

func TestRunReadError(t *testing.T) {
	var out, errOut bytes.Buffer
	err := New(nil, nil).Run(failingReader{}, &out, &errOut)

	require.Error(t, err)
	assert.Empty(t, out.String())
	assert.Equal(t, `{"error":"read input: stdin closed"}`+"\n", errOut.String())
}

func TestRunCustomClassifier(t *testing.T) {
	c, err := classifier.NewWithRules(classifier.RuleSet{
		Rules: []classifier.Rule{{
			Sentiment: model.SentimentPositive,
			Severity:  model.SeverityMedium,
			Keywords:  []string{"<ok>"},
		}},
		Default: model.ClassificationResult{Sentiment: model.SentimentNeutral, Severity: model.SeverityLow},
	})
	require.NoError(t, err)

	var out, errOut bytes.Buffer
	require.NoError(t, New(c, nil).Run(strings.NewReader(`{"text":"<OK>"}`), &out, &errOut))
	assert.Equal(t, `{"sentiment":"positive","severity":"medium"}`+"\n", out.String())
}
