package model

// Sentiment is the coarse polarity assigned to a text.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Valid reports whether s is one of the known sentiments.
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
		return true
	}
	return false
}

// Severity is the coarse urgency tag assigned alongside a sentiment.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	}
	return false
}

type ClassificationInput struct {
	Text string `json:"text"`
}

type ClassificationResult struct {
	Sentiment Sentiment `json:"sentiment" yaml:"sentiment"`
	Severity  Severity  `json:"severity" yaml:"severity"`
}

type ErrorResult struct {
	Error string `json:"error"`
}

// Source tells where an Analysis came from.
type Source string

const (
	SourceUpstream Source = "upstream"
	SourceKeywords Source = "keywords"
)

// Analysis is a ClassificationResult as returned by the analyzer and the
// HTTP endpoint. Warning is set when the upstream service failed and the
// keyword classifier was used instead.
type Analysis struct {
	Sentiment Sentiment `json:"sentiment" yaml:"sentiment"`
	Severity  Severity  `json:"severity" yaml:"severity"`
	Source    Source    `json:"source,omitempty" yaml:"source,omitempty"`
	Warning   string    `json:"warning,omitempty" yaml:"warning,omitempty"`
}
