package parser

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/helmcode/sentiment-triage/pkg/model"
)

// ErrInvalidJSON is returned when the input is not syntactically valid JSON.
// Its message is written verbatim to callers.
var ErrInvalidJSON = errors.New("Invalid JSON input")

// ParseInput decodes a classification request. A missing "text" field yields
// an empty string and unknown fields are ignored. Valid JSON that is not an
// object, or a "text" that is not a string (null included), is an error
// distinct from ErrInvalidJSON.
func ParseInput(raw []byte) (*model.ClassificationInput, error) {
	if !json.Valid(raw) {
		return nil, ErrInvalidJSON
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return nil, fmt.Errorf("input must be a JSON object")
	}

	input := &model.ClassificationInput{}
	rawText, ok := fields["text"]
	if !ok {
		return input, nil
	}
	var text *string
	if err := json.Unmarshal(rawText, &text); err != nil || text == nil {
		return nil, fmt.Errorf("field \"text\" must be a string")
	}
	input.Text = *text
	return input, nil
}
