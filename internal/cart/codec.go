package cart

import (
	"encoding/json"
	"strings"
)

// EncodeOptions renders an options mapping into its canonical stored string
// form. Encoding is order-independent: encoding/json writes map keys in
// sorted order, so structurally equal mappings always encode identically.
// Empty and nil mappings both encode to the empty string.
func EncodeOptions(options map[string]any) string {
	if len(options) == 0 {
		return ""
	}
	raw, err := json.Marshal(options)
	if err != nil {
		return ""
	}
	return string(raw)
}

// DecodeOptions parses a stored options string back into a mapping. Corrupt
// input yields an empty mapping, never an error.
func DecodeOptions(encoded string) map[string]any {
	trimmed := strings.TrimSpace(encoded)
	if trimmed == "" {
		return map[string]any{}
	}
	var options map[string]any
	if err := json.Unmarshal([]byte(trimmed), &options); err != nil || options == nil {
		return map[string]any{}
	}
	return options
}
