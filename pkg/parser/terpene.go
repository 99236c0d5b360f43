package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/agentstation/strainmap/pkg/constants"
	"github.com/agentstation/strainmap/pkg/strains"
)

var trailingAmount = regexp.MustCompile(`^(.*?)\s*\(([^()]*)\)\s*$`)

// ParseTerpeneLine reads one terpene entry such as
// "Myrcene (0.8%) - Sedierend, Entspannend".
//
// The first standalone " - " separates the name from its effects; without
// one the first colon does. A hyphen inside a name followed by " - " later
// in the line is not disambiguated: "Beta - Caryophyllene" splits at the
// first dash. It returns false when the name is shorter than two runes.
func ParseTerpeneLine(line string) (strains.Terpene, bool) {
	line = stripBullet(strings.TrimSpace(line))

	namePart, tail := line, ""
	if i := strings.Index(line, " - "); i >= 0 {
		namePart, tail = line[:i], line[i+3:]
	} else if i := strings.Index(line, ":"); i >= 0 {
		namePart, tail = line[:i], line[i+1:]
	}

	name, amount := strings.TrimSpace(namePart), ""
	if m := trailingAmount.FindStringSubmatch(name); m != nil {
		name, amount = strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}

	if utf8.RuneCountInString(name) < constants.MinTerpeneNameLength {
		return strains.Terpene{}, false
	}
	return strains.Terpene{
		Name:    name,
		Amount:  amount,
		Effects: strains.SplitList(tail),
	}, true
}
