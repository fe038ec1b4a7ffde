package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/helmcode/sentiment-triage/pkg/model"
)

const (
	// DefaultTimeout bounds a single call to the sentiment service.
	DefaultTimeout = 10 * time.Second

	// MaxResponseBytes caps how much of a service response is read.
	MaxResponseBytes = 1 << 20
)

// Client calls an external sentiment service that accepts {"text": ...}
// and answers {"sentiment": ..., "severity": ...}.
type Client struct {
	url    string
	client *http.Client
}

func New(url string) *Client {
	return NewWithTimeout(url, DefaultTimeout)
}

func NewWithTimeout(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// URL returns the endpoint this client posts to
func (c *Client) URL() string {
	return c.url
}

func (c *Client) Timeout() time.Duration {
	return c.client.Timeout
}

func (c *Client) Analyze(ctx context.Context, text string) (model.ClassificationResult, error) {
	jsonBody, err := json.Marshal(model.ClassificationInput{Text: text})
	if err != nil {
		return model.ClassificationResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return model.ClassificationResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return model.ClassificationResult{}, err
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBytes+1))
	if err != nil {
		return model.ClassificationResult{}, err
	}
	if len(respBytes) > MaxResponseBytes {
		return model.ClassificationResult{}, fmt.Errorf("sentiment service response exceeds %d bytes", MaxResponseBytes)
	}

	// The service reports failures as {"error": "..."}.
	var svcResp struct {
		Sentiment model.Sentiment `json:"sentiment"`
		Severity  model.Severity  `json:"severity"`
		Error     string          `json:"error"`
	}
	decodeErr := json.Unmarshal(respBytes, &svcResp)

	if resp.StatusCode != http.StatusOK {
		msg := svcResp.Error
		if decodeErr != nil || msg == "" {
			msg = "Unknown error"
		}
		return model.ClassificationResult{}, fmt.Errorf("sentiment service responded with status %d: %s", resp.StatusCode, msg)
	}
	if decodeErr != nil {
		return model.ClassificationResult{}, fmt.Errorf("decode sentiment service response: %w", decodeErr)
	}
	if svcResp.Error != "" {
		return model.ClassificationResult{}, fmt.Errorf("sentiment service error: %s", svcResp.Error)
	}
	if !svcResp.Sentiment.Valid() || !svcResp.Severity.Valid() {
		return model.ClassificationResult{}, fmt.Errorf("sentiment service returned unknown labels %q/%q", svcResp.Sentiment, svcResp.Severity)
	}
	return model.ClassificationResult{Sentiment: svcResp.Sentiment, Severity: svcResp.Severity}, nil
}
