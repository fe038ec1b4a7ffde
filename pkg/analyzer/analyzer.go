package analyzer

import (
	"context"

	"go.uber.org/zap"

	"github.com/helmcode/sentiment-triage/pkg/classifier"
	"github.com/helmcode/sentiment-triage/pkg/model"
)

// FallbackWarning is attached to an Analysis produced by the keyword
// classifier after the upstream service failed.
const FallbackWarning = "ML service call failed, using fallback sentiment."

// Upstream is an external sentiment service.
type Upstream interface {
	Analyze(ctx context.Context, text string) (model.ClassificationResult, error)
}

type Analyzer struct {
	classifier *classifier.Classifier
	upstream   Upstream
	logger     *zap.Logger
}

// New returns an Analyzer that only uses keyword classification.
func New(c *classifier.Classifier, logger *zap.Logger) *Analyzer {
	return NewWithUpstream(c, nil, logger)
}

// NewWithUpstream returns an Analyzer that asks up first and falls back to
// keyword classification when it fails. A nil up behaves like New.
func NewWithUpstream(c *classifier.Classifier, up Upstream, logger *zap.Logger) *Analyzer {
	if c == nil {
		c = classifier.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{classifier: c, upstream: up, logger: logger}
}

// Analyze never fails: upstream errors are logged and replaced by the
// keyword result with FallbackWarning set.
func (a *Analyzer) Analyze(ctx context.Context, text string) *model.Analysis {
	if a.upstream == nil {
		return a.fromKeywords(text, "")
	}

	res, err := a.upstream.Analyze(ctx, text)
	if err != nil {
		a.logger.Warn("Sentiment service call failed, using keyword fallback", zap.Error(err))
		return a.fromKeywords(text, FallbackWarning)
	}
	return &model.Analysis{
		Sentiment: res.Sentiment,
		Severity:  res.Severity,
		Source:    model.SourceUpstream,
	}
}

func (a *Analyzer) fromKeywords(text, warning string) *model.Analysis {
	res := a.classifier.Classify(text)
	return &model.Analysis{
		Sentiment: res.Sentiment,
		Severity:  res.Severity,
		Source:    model.SourceKeywords,
		Warning:   warning,
	}
}
