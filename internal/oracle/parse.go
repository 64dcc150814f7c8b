package oracle

import (
	"encoding/json"
	"strings"
)

// StripFences removes a Markdown code-fence wrapper from model output.
// Models frequently wrap requested JSON in ```json ... ``` despite being told
// not to.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	// Drop an optional language tag on the opening fence.
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		first := strings.TrimSpace(s[:idx])
		if first == "" || isLanguageTag(first) {
			s = s[idx+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func isLanguageTag(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return len(s) <= 10
}

// DecodeJSON strips code fences then strictly parses the result into v.
// Callers substitute their documented fallback shape when this fails.
func DecodeJSON(raw string, v interface{}) error {
	return json.Unmarshal([]byte(StripFences(raw)), v)
}
