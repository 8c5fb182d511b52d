package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CleanMarkdownWrapper strips markdown code-fence wrappers that models
// commonly add around JSON responses.
func CleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)

	if !strings.HasPrefix(content, "```") {
		return content
	}

	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")

	return strings.TrimSpace(content)
}

// DecodeObject parses an inference response into a canonical JSON object.
// It strips code fences, unwraps a top-level list to its first element,
// and rejects anything that is not an object. Every stage that inspects
// structured output goes through this one normalization step.
func DecodeObject(content string) (map[string]any, error) {
	cleaned := CleanMarkdownWrapper(content)

	var value any
	if err := json.Unmarshal([]byte(cleaned), &value); err != nil {
		return nil, fmt.Errorf("invalid JSON in response: %w", err)
	}

	if list, ok := value.([]any); ok {
		if len(list) == 0 {
			return nil, fmt.Errorf("response is an empty list")
		}
		value = list[0]
	}

	obj, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object (got %T)", value)
	}

	return obj, nil
}

// String extracts a string field from a decoded object, tolerating
// missing keys.
func String(obj map[string]any, key string) string {
	if v, ok := obj[key].(string); ok {
		return v
	}
	return ""
}

// Float extracts a numeric field from a decoded object. JSON numbers
// decode as float64; numeric strings are tolerated.
func Float(obj map[string]any, key string) float64 {
	switch v := obj[key].(type) {
	case float64:
		return v
	case string:
		var f float64
		if _, err := fmt.Sscanf(strings.TrimSpace(v), "%f", &f); err == nil {
			return f
		}
	}
	return 0
}

// StringList extracts a list of strings from a decoded object. A
// stringified JSON list is re-parsed; a bare string becomes a one-element
// list.
func StringList(obj map[string]any, key string) []string {
	switch v := obj[key].(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		trimmed := strings.TrimSpace(v)
		if strings.HasPrefix(trimmed, "[") {
			var parsed []string
			if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil {
				return parsed
			}
		}
		if trimmed == "" {
			return nil
		}
		return []string{trimmed}
	}
	return nil
}
