package parser

import (
	"regexp"
	"strings"
)

// EffectRule maps a keyword pattern to a canonical effect label.
type EffectRule struct {
	Pattern *regexp.Regexp
	Label   string
}

// EffectRules are applied in order. Patterns match German and English stems.
var EffectRules = []EffectRule{
	{regexp.MustCompile(`(?i)entspann|beruhig|relax|calm|gelassen`), "Relaxing"},
	{regexp.MustCompile(`(?i)euphor|glücklich|happy|gute laune`), "Euphoric"},
	{regexp.MustCompile(`(?i)kreativ|creativ`), "Creative"},
	{regexp.MustCompile(`(?i)fokus|konzentr|focus`), "Focused"},
	{regexp.MustCompile(`(?i)schläfr|schlaf|sedier|sleep|sedat|müde`), "Sleepy"},
	{regexp.MustCompile(`(?i)energ|aktivier|uplift|anregend|belebend`), "Energizing"},
	{regexp.MustCompile(`(?i)hunger|hungrig|appetit|munch`), "Hungry"},
	{regexp.MustCompile(`(?i)gesprächig|talkativ|sozial|social|kommunikativ`), "Talkative"},
}

// InferEffects returns the labels of every rule matching text, in rule order.
func InferEffects(text string) []string {
	out := []string{}
	if strings.TrimSpace(text) == "" {
		return out
	}
	for _, rule := range EffectRules {
		if rule.Pattern.MatchString(text) {
			out = append(out, rule.Label)
		}
	}
	return out
}

// unionEffects appends inferred labels not already present (case-insensitive).
func unionEffects(effects, inferred []string) []string {
	seen := make(map[string]struct{}, len(effects))
	for _, e := range effects {
		seen[strings.ToLower(strings.TrimSpace(e))] = struct{}{}
	}
	for _, label := range inferred {
		key := strings.ToLower(label)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		effects = append(effects, label)
	}
	return effects
}
