package strains

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// isListDelimiter matches commas, semicolons, line breaks and bullet glyphs.
func isListDelimiter(r rune) bool {
	switch r {
	case ',', ';', '\n', '\r', '•', '∙', '·', '▪', '●', '◦':
		return true
	}
	return false
}

// SplitList splits free text into trimmed, non-empty items.
func SplitList(s string) []string {
	parts := strings.FieldsFunc(s, isListDelimiter)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if item := strings.TrimSpace(part); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Dedupe drops empty and repeated (after trim) entries, keeping first occurrence order.
func Dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

// toText coerces an arbitrary decoded value to a trimmed string.
func toText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		// YAML decoders may turn unquoted timestamps into time values
		return x.UTC().Format(time.RFC3339)
	case fmt.Stringer:
		return strings.TrimSpace(x.String())
	case []any:
		items := make([]string, 0, len(x))
		for _, item := range x {
			if s := toText(item); s != "" {
				items = append(items, s)
			}
		}
		return strings.Join(items, ", ")
	case []string:
		return strings.TrimSpace(strings.Join(x, ", "))
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}

// toList coerces a decoded value to a list. Arrays keep their element
// boundaries, strings are split on list delimiters.
func toList(v any) []string {
	switch x := v.(type) {
	case nil:
		return []string{}
	case []string:
		out := make([]string, 0, len(x))
		for _, item := range x {
			if s := strings.TrimSpace(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			if s := toText(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		return SplitList(x)
	default:
		return SplitList(toText(x))
	}
}
