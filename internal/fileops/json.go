package fileops

import (
	"strings"
	"unicode/utf8"

	"github.com/bytedance/sonic"
	"golang.org/x/text/encoding/unicode"
)

// JSON is the codec for every JSON payload jetpack writes or decodes. Map
// keys are sorted so the same value always serializes to the same bytes.
var JSON = sonic.Config{
	SortMapKeys:    true,
	ValidateString: true,
}.Froze()

// EncodeJSON serializes v, indented by indent spaces when indent > 0.
func EncodeJSON(v any, indent int) ([]byte, error) {
	if indent > 0 {
		return JSON.MarshalIndent(v, "", strings.Repeat(" ", indent))
	}
	return JSON.Marshal(v)
}

// DecodeJSON parses data into v. Invalid UTF-8 sequences are replaced with
// U+FFFD first, the way text decoding treats them.
func DecodeJSON(data []byte, v any) error {
	if !utf8.Valid(data) {
		corrected, err := unicode.UTF8.NewDecoder().Bytes(data)
		if err != nil {
			return err
		}
		data = corrected
	}
	return JSON.Unmarshal(data, v)
}
