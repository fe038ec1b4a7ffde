// Package adapter connects the classifier to a pair of byte streams: one JSON
// request in, one JSON result or error object out.
package adapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/helmcode/sentiment-triage/pkg/classifier"
	"github.com/helmcode/sentiment-triage/pkg/model"
	"github.com/helmcode/sentiment-triage/pkg/parser"
)

type Adapter struct {
	classifier *classifier.Classifier
	logger     *zap.Logger
}

func New(c *classifier.Classifier, logger *zap.Logger) *Adapter {
	if c == nil {
		c = classifier.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{classifier: c, logger: logger}
}

// Run reads the whole of in, classifies the "text" field and writes the
// result to out. On failure a single {"error": ...} object is written to
// errOut instead and the reported error is returned. Exactly one object is
// written per call.
func (a *Adapter) Run(in io.Reader, out, errOut io.Writer) error {
	result, err := a.process(in)
	if err != nil {
		a.logger.Debug("Classification failed", zap.Error(err))
		if werr := WriteError(errOut, err); werr != nil {
			return fmt.Errorf("write error result: %w", werr)
		}
		return err
	}

	a.logger.Debug("Classified input",
		zap.String("sentiment", string(result.Sentiment)),
		zap.String("severity", string(result.Severity)))
	if err := writeJSON(out, result); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

func (a *Adapter) process(in io.Reader) (model.ClassificationResult, error) {
	raw, err := io.ReadAll(in)
	if err != nil {
		return model.ClassificationResult{}, fmt.Errorf("read input: %w", err)
	}
	a.logger.Debug("Read input", zap.Int("bytes", len(raw)))

	input, err := parser.ParseInput(raw)
	if err != nil {
		if errors.Is(err, parser.ErrInvalidJSON) {
			return model.ClassificationResult{}, parser.ErrInvalidJSON
		}
		return model.ClassificationResult{}, err
	}
	return a.classifier.Classify(input.Text), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// WriteError writes err as a single {"error": ...} object.
func WriteError(w io.Writer, err error) error {
	return writeJSON(w, model.ErrorResult{Error: err.Error()})
}
