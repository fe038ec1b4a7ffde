package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helmcode/sentiment-triage/pkg/analyzer"
	"github.com/helmcode/sentiment-triage/pkg/model"
)

type downUpstream struct{}

func (downUpstream) Analyze(context.Context, string) (model.ClassificationResult, error) {
	return model.ClassificationResult{}, errors.New("dial tcp: connection refused")
}

func do(t *testing.T, s *Server, method, path, body string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k := range header {
		req.Header.Set(k, header.Get(k))
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestAnalyzeSentiment(t *testing.T) {
	s := New(analyzer.New(nil, nil), nil)

	rec := do(t, s, http.MethodPost, AnalyzePath, `{"text":"There was an emergency"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got model.Analysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, model.SentimentNegative, got.Sentiment)
	assert.Equal(t, model.SeverityHigh, got.Severity)
	assert.Equal(t, model.SourceKeywords, got.Source)
	assert.Empty(t, got.Warning)
}

func TestAnalyzeSentimentFallbackWarning(t *testing.T) {
	s := New(analyzer.NewWithUpstream(nil, downUpstream{}, nil), nil)

	rec := do(t, s, http.MethodPost, AnalyzePath, `{"text":"This is a safe space with support"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"sentiment": "positive",
		"severity": "low",
		"source": "keywords",
		"warning": "ML service call failed, using fallback sentiment."
	}`, rec.Body.String())
}

func TestAnalyzeSentimentTextRequired(t *testing.T) {
	s := New(analyzer.New(nil, nil), nil)

	for _, body := range []string{`{}`, `{"text":""}`, `not json`, `{"text":7}`, ``} {
		rec := do(t, s, http.MethodPost, AnalyzePath, body, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
		assert.JSONEq(t, `{"error":"Text is required"}`, rec.Body.String(), "body %q", body)
	}
}

func TestHealth(t *testing.T) {
	s := New(analyzer.New(nil, nil), nil)

	rec := do(t, s, http.MethodGet, HealthPath, "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRequestID(t *testing.T) {
	s := New(analyzer.New(nil, nil), nil)

	rec := do(t, s, http.MethodGet, HealthPath, "", http.Header{RequestIDHeader: {"abc-123"}})
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))

	rec = do(t, s, http.MethodGet, HealthPath, "", nil)
	_, err := uuid.Parse(rec.Header().Get(RequestIDHeader))
	assert.NoError(t, err)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	s := New(analyzer.New(nil, nil), nil)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	client := &http.Client{Timeout: time.Second}
	resp, err := client.Get("http://" + ln.Addr().String() + HealthPath)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}

	_, err = client.Get("http://" + ln.Addr().String() + HealthPath)
	assert.Error(t, err, "listener still accepting after shutdown")
}

func TestRunInvalidAddr(t *testing.T) {
	s := New(analyzer.New(nil, nil), nil)
	assert.Error(t, s.Run(context.Background(), "127.0.0.1:notaport"))
}
