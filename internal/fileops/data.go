package fileops

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// stringEncoders converts string payloads to bytes for appends. The empty
// key is the default.
var stringEncoders = map[string]func(string) ([]byte, error){
	"":      encodeUTF8,
	"utf8":  encodeUTF8,
	"utf-8": encodeUTF8,
	"hex":   hex.DecodeString,
	"base64": func(s string) ([]byte, error) {
		return base64.StdEncoding.DecodeString(s)
	},
	"latin1": func(s string) ([]byte, error) {
		return charmap.ISO8859_1.NewEncoder().Bytes([]byte(s))
	},
}

func encodeUTF8(s string) ([]byte, error) {
	return []byte(s), nil
}

// normalizeData turns a payload into the bytes to write. Raw bytes and text
// pass through; nil is empty content; anything else is serialized as JSON.
func normalizeData(data any, indent int) ([]byte, error) {
	switch v := data.(type) {
	case nil:
		return []byte{}, nil
	case []byte:
		return v, nil
	case json.RawMessage:
		return v, nil
	case string:
		return []byte(v), nil
	}

	out, err := EncodeJSON(data, indent)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize data as JSON: %w", err)
	}
	return out, nil
}

// normalizeAppendData is normalizeData with the string encoding applied.
func normalizeAppendData(data any, encoding string) ([]byte, error) {
	s, ok := data.(string)
	if !ok {
		return normalizeData(data, 0)
	}

	out, err := stringEncoders[strings.ToLower(encoding)](s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode data as %s: %w", encoding, err)
	}
	return out, nil
}
