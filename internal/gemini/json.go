package gemini

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/agentstation/strainmap/pkg/errors"
)

var codeFence = regexp.MustCompile("(?is)^```(?:json)?\\s*(.*?)\\s*```$")

// ParseJSON decodes the first JSON object in a model response. A Markdown
// code fence around the payload is stripped. When the text is not valid JSON
// as a whole, the first balanced {...} object inside it is tried.
func ParseJSON(text string) (map[string]any, error) {
	cleaned := stripCodeFence(text)

	var obj map[string]any
	err := json.Unmarshal([]byte(cleaned), &obj)
	if err == nil && obj != nil {
		return obj, nil
	}

	extracted := firstObject(cleaned)
	if extracted == "" {
		return nil, errors.NewParseError("json", "", "no JSON object in model response", err)
	}
	obj = nil
	if err := json.Unmarshal([]byte(extracted), &obj); err != nil {
		return nil, errors.NewParseError("json", "", "invalid JSON object in model response", err)
	}
	return obj, nil
}

func stripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if m := codeFence.FindStringSubmatch(trimmed); m != nil {
		return strings.TrimSpace(m[1])
	}
	return trimmed
}

// firstObject returns the first brace-balanced object, ignoring braces
// inside string literals. Empty when none closes.
func firstObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString, escaped := false, false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
