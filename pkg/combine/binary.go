// File: pkg/combine/binary.go
package combine

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
)

// ErrNotText is reported for files whose content is not valid UTF-8 text.
var ErrNotText = errors.New("content is not valid UTF-8 text")

// decodeText converts raw file bytes into prompt text. Line endings are
// normalised to "\n" the way a text-mode read does. Content that is not
// valid UTF-8 is rejected with its detected MIME type for the diagnostic.
func decodeText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w (detected %s)", ErrNotText, mimetype.Detect(data).String())
	}
	text := string(data)
	if strings.IndexByte(text, '\r') >= 0 {
		text = strings.ReplaceAll(text, "\r\n", "\n")
		text = strings.ReplaceAll(text, "\r", "\n")
	}
	return text, nil
}
