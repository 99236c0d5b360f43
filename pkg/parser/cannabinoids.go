package parser

import (
	"regexp"
	"strings"
)

// amount matches "22%", "<1 %", "0,7%", "18-22%".
const amount = `[<>≤≥~]?\s*\d+(?:[.,]\d+)?(?:\s*-\s*\d+(?:[.,]\d+)?)?\s*%`

type cannabinoid struct {
	amountFirst *regexp.Regexp // "22% THC"
	labelFirst  *regexp.Regexp // "THC: 22%"
	other       string
}

var (
	thcAmounts = newCannabinoid("THC", "CBD")
	cbdAmounts = newCannabinoid("CBD", "THC")
)

func newCannabinoid(label, other string) cannabinoid {
	return cannabinoid{
		amountFirst: regexp.MustCompile(`(?i)(` + amount + `)\s*` + label),
		labelFirst:  regexp.MustCompile(`(?i)` + label + `\s*:?\s*(` + amount + `)`),
		other:       other,
	}
}

// find prefers "22% THC" over "THC 22%". An amount-first match directly
// after the other label belongs to that label: in "THC 20% CBD 1%" the
// 20% is THC.
func (c cannabinoid) find(value string) string {
	for _, m := range c.amountFirst.FindAllStringSubmatchIndex(value, -1) {
		if hasSuffixFold(strings.TrimRight(value[:m[2]], " \t:"), c.other) {
			continue
		}
		return compact(value[m[2]:m[3]])
	}
	if m := c.labelFirst.FindStringSubmatch(value); m != nil {
		return compact(m[1])
	}
	return ""
}

// splitCannabinoids extracts the THC and CBD amounts from a combined value
// like "22% THC, <1% CBD". Either result may be empty.
func splitCannabinoids(value string) (thcAmount, cbdAmount string) {
	return thcAmounts.find(value), cbdAmounts.find(value)
}

func hasSuffixFold(s, suffix string) bool {
	return len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix)
}

func compact(s string) string {
	return strings.Join(strings.Fields(s), "")
}
