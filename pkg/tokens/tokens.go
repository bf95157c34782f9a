// Package tokens estimates how many model tokens a rendered prompt uses.
package tokens

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// DefaultEncoding is used when no encoding or model name is configured.
const DefaultEncoding = "cl100k_base"

// Counter counts the tokens in a piece of text.
type Counter interface {
	Count(text string) (int, error)
}

// Tiktoken counts tokens with a BPE encoding.
type Tiktoken struct {
	encoding string
	tke      *tiktoken.Tiktoken
}

// NewTiktoken loads the named encoding, or the encoding of the named model.
// Encodings are fetched on first use and cached by tiktoken-go.
func NewTiktoken(encodingOrModel string) (*Tiktoken, error) {
	if encodingOrModel == "" {
		encodingOrModel = DefaultEncoding
	}

	tke, err := tiktoken.GetEncoding(encodingOrModel)
	if err != nil {
		var modelErr error
		tke, modelErr = tiktoken.EncodingForModel(encodingOrModel)
		if modelErr != nil {
			return nil, fmt.Errorf("failed to load token encoding %q: %w", encodingOrModel, err)
		}
	}
	return &Tiktoken{encoding: encodingOrModel, tke: tke}, nil
}

// Encoding returns the configured encoding or model name.
func (t *Tiktoken) Encoding() string {
	return t.encoding
}

// Count returns the number of tokens in text.
func (t *Tiktoken) Count(text string) (int, error) {
	if t.tke == nil {
		return 0, fmt.Errorf("token encoder %s is not initialized", t.encoding)
	}
	return len(t.tke.Encode(text, nil, nil)), nil
}
